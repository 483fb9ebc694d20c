// Package mocks provides shared test doubles for the application's interfaces.
//
// Service-level collaborators (JWTService, PasswordHasher, identifier.Source)
// use function fields with sensible defaults. Store interfaces are backed by
// testify's mock.Mock so tests can assert on calls:
//
//	customers := new(mocks.MockCustomerStore)
//	customers.On("GetByUsername", mock.Anything, "alice").
//	    Return(nil, store.ErrCustomerNotFound)
package mocks
