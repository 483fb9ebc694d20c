// Package service contains the application use cases. It orchestrates domain
// objects and the repositories defined in internal/store to register
// customers, verify their credentials, and open and list their accounts.
//
// Services receive their dependencies through constructor injection and never
// depend on a specific storage implementation. Expected business outcomes are
// reported as the sentinel errors declared in errors.go, wrapped with context
// where useful; the API layer maps them to HTTP status codes.
package service
