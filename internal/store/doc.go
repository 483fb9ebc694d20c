// Package store defines the persistence contracts for customers, accounts and
// the country allow-list, together with the error vocabulary every
// implementation maps its failures onto. Uniqueness of usernames is the
// store's responsibility: a pre-check in the service is not enough.
package store
