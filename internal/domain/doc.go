// Package domain contains the core banking entities (customers and their
// accounts) together with the invariants that hold for them regardless of
// how they are stored or delivered: minimum onboarding age, username shape,
// the supported account types and the non-negative, two-decimal balance.
package domain
