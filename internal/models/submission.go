package models

import "time"

// ContactSubmission is a stored contact-form submission.
type ContactSubmission struct {
	ID        string    `json:"id"` // ULID
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	ClientIP  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
