// Package api handles incoming HTTP requests, request validation and response
// formatting. Handlers translate HTTP concerns into calls on the login flow and
// the user and service record services, and map their errors to status codes.
package api
