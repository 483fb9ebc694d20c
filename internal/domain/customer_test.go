package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func validDetails() CustomerDetails {
	return CustomerDetails{
		Name:        "Bob Builder",
		DateOfBirth: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Address:     "Damrak 1, Amsterdam",
		Country:     "NL",
		IDDocument:  "NL1234567",
		Username:    "bob",
	}
}

func TestNewCustomer(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	customer, err := NewCustomer(validDetails(), "$2a$10$hash", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if customer.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if customer.Username != "bob" {
		t.Errorf("Expected username bob, got %s", customer.Username)
	}
	if !customer.RegisteredAt.Equal(now) {
		t.Errorf("Expected RegisteredAt %v, got %v", now, customer.RegisteredAt)
	}
	if len(customer.Accounts) != 0 {
		t.Errorf("Expected no accounts, got %d", len(customer.Accounts))
	}

	_, err = NewCustomer(validDetails(), "", now)
	if !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestCustomerValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *CustomerDetails)
		wantErr error
	}{
		{"valid", func(d *CustomerDetails) {}, nil},
		{"empty name", func(d *CustomerDetails) { d.Name = "" }, ErrEmptyName},
		{"empty address", func(d *CustomerDetails) { d.Address = "" }, ErrEmptyAddress},
		{"empty id document", func(d *CustomerDetails) { d.IDDocument = "" }, ErrEmptyIDDocument},
		{"username too short", func(d *CustomerDetails) { d.Username = "ab" }, ErrInvalidUsername},
		{"username too long", func(d *CustomerDetails) { d.Username = "abcdefghijklmnopqrstu" }, ErrInvalidUsername},
		{"username max length", func(d *CustomerDetails) { d.Username = "abcdefghijklmnopqrst" }, nil},
		{"country too long", func(d *CustomerDetails) { d.Country = "NLD" }, ErrInvalidCountryCode},
		{"country with digit", func(d *CustomerDetails) { d.Country = "N1" }, ErrInvalidCountryCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)

			_, err := NewCustomer(d, "hash", time.Now())
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to wrap ErrValidation, got %v", err)
			}
		})
	}
}

func TestAgeAt(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		dob  time.Time
		now  time.Time
		want int
	}{
		{"birthday today", date(2000, 1, 1), date(2018, 1, 1), 18},
		{"day before birthday", date(2000, 1, 2), date(2018, 1, 1), 17},
		{"later in year", date(2000, 6, 15), date(2024, 12, 31), 24},
		{"leap day before march", date(2000, 2, 29), date(2018, 2, 28), 17},
		{"leap day on march first", date(2000, 2, 29), date(2018, 3, 1), 18},
		{"future dob", date(2030, 1, 1), date(2024, 1, 1), -6},
		{
			"birthday already started east of UTC",
			date(2000, 1, 1),
			time.Date(2018, 1, 1, 0, 30, 0, 0, time.FixedZone("UTC+1", 3600)),
			18,
		},
		{
			"birthday not yet started west of UTC",
			date(2000, 1, 1),
			time.Date(2017, 12, 31, 23, 30, 0, 0, time.FixedZone("UTC-1", -3600)),
			17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeAt(tt.dob, tt.now); got != tt.want {
				t.Errorf("AgeAt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckAge(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	if err := CheckAge(time.Date(2006, 3, 10, 0, 0, 0, 0, time.UTC), now, DefaultMinimumAge); err != nil {
		t.Errorf("Expected 18th birthday to be eligible, got %v", err)
	}

	err := CheckAge(time.Date(2006, 3, 11, 0, 0, 0, 0, time.UTC), now, DefaultMinimumAge)
	if !errors.Is(err, ErrIneligibleAge) {
		t.Errorf("Expected error %v, got %v", ErrIneligibleAge, err)
	}
}
