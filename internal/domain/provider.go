package domain

import "time"

// Provider owns a grid of time slots
type Provider struct {
	ID          int64
	Name        string
	Email       string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactInfo is the mutable part of a provider
type ContactInfo struct {
	Name        *string
	Email       *string
	PhoneNumber *string
}

// IsEmpty returns true if no field is set
func (c ContactInfo) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.PhoneNumber == nil
}
