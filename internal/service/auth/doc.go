// Package auth issues and validates HS256 session tokens and hashes
// customer passwords with bcrypt.
package auth
