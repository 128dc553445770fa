// Package contact stores contact form submissions and relays them to the
// site owner.
package contact

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrIncomplete = errors.New("submission is missing a required field")
	ErrNotFound   = errors.New("message not found")
)

// Status of a stored message.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	// StatusSkipped means no relay is configured.
	StatusSkipped Status = "skipped"
)

// Submission is what the visitor typed into the form.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}

// Check mirrors the form's required attributes: name and email.
func (s Submission) Check() error {
	if s.Name == "" || s.Email == "" {
		return ErrIncomplete
	}
	return nil
}

// Message is a stored submission.
type Message struct {
	ID string
	Submission
	Relay     string
	Status    Status
	LastError string
	HashedIP  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
