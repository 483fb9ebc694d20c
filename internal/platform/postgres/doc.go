// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in the internal/store package, together with the
// embedded goose migrations that create the schema they rely on.
//
// Statements run through the pgx stdlib driver. Driver errors are translated
// with MapError so that callers only ever see store sentinel errors.
package postgres
