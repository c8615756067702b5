package user

import "time"

// DateFormat is the wire and storage representation of a date of birth.
// Dates of birth are calendar dates only; no time-of-day or timezone
// semantics apply.
const DateFormat = "2006-01-02"

// User represents a registered person.
type User struct {
	ID          int64
	Name        string
	Age         int
	Email       string
	Phone       string
	DateOfBirth time.Time
}

// RegistrationInput carries raw form values submitted for registration.
// Age and DOB arrive as strings and are parsed and validated by the
// service before anything reaches the store.
type RegistrationInput struct {
	Name  string
	Age   string
	Email string
	Phone string
	DOB   string
}
