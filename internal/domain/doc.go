// Package domain contains the core business entities of the application:
// users (the identities behind issued tokens) and the service records
// clients post. It is independent of storage and transport.
package domain
