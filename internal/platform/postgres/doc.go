// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. Connections go
// through the pgx stdlib driver; schema changes live in internal/migrations.
package postgres
