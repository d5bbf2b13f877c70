// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Signup represents one persisted waitlist registration.
//
// WHY *string FOR CountryCode AND Phone?
// Both fields are optional on the form. A nil pointer maps to SQL NULL and
// serializes as absent JSON (omitempty), which keeps "not provided" distinct
// from "provided but empty". Required fields stay plain strings — they are
// never absent after validation.
//
// Email is stored lowercase and carries a UNIQUE constraint in the database;
// duplicate detection is delegated entirely to that constraint rather than
// re-implemented with a read-before-write (which would race).
type Signup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CountryCode *string   `json:"countryCode,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Subject     string    `json:"subject"`
	StayInLoop  bool      `json:"stayInLoop"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Selection is one persisted challenge choice: a row in the signup_challenges
// join table. Challenge holds a catalog slug, never a display label.
// OtherDescription is non-nil only on the sentinel ("other") row.
type Selection struct {
	SignupID         string  `json:"signupId"`
	Challenge        string  `json:"challenge"`
	OtherDescription *string `json:"otherDescription,omitempty"`
}
