// Package contact accepts contact-form submissions and records them in the
// event log. Nothing is delivered.
package contact

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	syncx "github.com/mind-engage/uc-planner/internal/sync"
	"github.com/mind-engage/uc-planner/internal/validation"
)

const (
	AckMessage       = "Message received successfully. We'll get back to you soon!"
	minMessageLength = 10
)

type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Receipt struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (m Message) Validate() error {
	var v validation.Error
	v.Required("name", m.Name, "Name is required")
	if !validation.IsEmail(strings.TrimSpace(m.Email)) {
		v.Add("email", "Invalid email address")
	}
	v.Required("subject", m.Subject, "Subject is required")
	if utf8.RuneCountInString(strings.TrimSpace(m.Message)) < minMessageLength {
		v.Add("message", "Message must be at least 10 characters")
	}
	return v.Err()
}

type Service struct {
	log    syncx.Log
	siteID string
}

func NewService(log syncx.Log, siteID string) *Service {
	return &Service{log: log, siteID: siteID}
}

// Submit validates m, stores it as a ContactSubmitted event and returns the
// acknowledgement.
func (s *Service) Submit(ctx context.Context, m Message) (Receipt, error) {
	if err := m.Validate(); err != nil {
		return Receipt{}, err
	}
	m.Email = strings.TrimSpace(m.Email)
	id := uuid.NewString()
	ev, err := syncx.NewEvent(s.siteID, syncx.ContactSubmitted, id, m)
	if err != nil {
		return Receipt{}, err
	}
	if err := s.log.Append(ctx, ev); err != nil {
		return Receipt{}, fmt.Errorf("contact: record submission: %w", err)
	}
	return Receipt{Success: true, Message: AckMessage, ID: id}, nil
}
