// Package api handles incoming HTTP requests: request decoding and validation,
// calls into the customer and account services, and mapping of their results
// and errors onto JSON responses and status codes.
package api
