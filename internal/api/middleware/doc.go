// Package middleware contains the HTTP middleware shared by the API routes:
// request tracing and bearer-token authentication.
package middleware
