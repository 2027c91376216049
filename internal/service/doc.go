// Package service contains the application use cases for users and service
// records. It orchestrates domain objects and the repositories defined in
// internal/store, and applies transactional boundaries where an operation
// touches more than one store.
//
// Authentication lives in the auth subpackage.
package service
