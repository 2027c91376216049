// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the authentication core and the HTTP handlers, allowing them to remain
// independent of specific database technologies.
package store
