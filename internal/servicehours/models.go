package servicehours

import (
	"errors"
	"strings"
	"time"

	"github.com/mind-engage/uc-planner/internal/validation"
)

var ErrNotFound = errors.New("service hours not found")

const maxHoursPerEntry = 24

// Record is one logged block of community service.
type Record struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Organization    string    `json:"organization"`
	Description     string    `json:"description"`
	Hours           float64   `json:"hours"`
	Date            time.Time `json:"date"`
	Verified        bool      `json:"verified"`
	SupervisorName  *string   `json:"supervisorName"`
	SupervisorEmail *string   `json:"supervisorEmail"`
	SupervisorPhone *string   `json:"supervisorPhone"`
}

// NewRecord is the create payload; ID and Verified are assigned by the store.
type NewRecord struct {
	UserID          int64
	Organization    string
	Description     string
	Hours           float64
	Date            time.Time
	SupervisorName  *string
	SupervisorEmail *string
	SupervisorPhone *string
}

// Patch holds optional field updates; nil means "leave unchanged".
type Patch struct {
	Organization    *string
	Description     *string
	Hours           *float64
	Date            *time.Time
	Verified        *bool
	SupervisorName  *string
	SupervisorEmail *string
	SupervisorPhone *string
}

// Summary aggregates a user's records.
type Summary struct {
	UserID        int64   `json:"userId"`
	Entries       int     `json:"entries"`
	TotalHours    float64 `json:"totalHours"`
	AverageHours  float64 `json:"averageHours"`
	VerifiedHours float64 `json:"verifiedHours"`
}

func (n NewRecord) Validate() error {
	var v validation.Error
	if n.UserID <= 0 {
		v.Add("userId", "must be a positive integer")
	}
	v.Required("organization", n.Organization, "Organization is required")
	v.Required("description", n.Description, "Description is required")
	validateHours(&v, n.Hours)
	if n.Date.IsZero() {
		v.Add("date", "Date is required")
	}
	validateSupervisorEmail(&v, n.SupervisorEmail)
	return v.Err()
}

func (p Patch) Validate() error {
	var v validation.Error
	if p.Organization != nil {
		v.Required("organization", *p.Organization, "Organization cannot be blank")
	}
	if p.Description != nil {
		v.Required("description", *p.Description, "Description cannot be blank")
	}
	if p.Hours != nil {
		validateHours(&v, *p.Hours)
	}
	if p.Date != nil && p.Date.IsZero() {
		v.Add("date", "Date cannot be empty")
	}
	validateSupervisorEmail(&v, p.SupervisorEmail)
	return v.Err()
}

func validateHours(v *validation.Error, h float64) {
	if !(h > 0) || h > maxHoursPerEntry {
		v.Add("hours", "Hours must be greater than 0 and at most 24")
	}
}

func validateSupervisorEmail(v *validation.Error, s *string) {
	if s != nil && *s != "" && !validation.IsEmail(*s) {
		v.Add("supervisorEmail", "Invalid email address")
	}
}

// ParseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
// Fractional seconds are dropped; stores keep whole seconds.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Truncate(time.Second), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.New("date must be RFC 3339 or YYYY-MM-DD")
	}
	return t.UTC(), nil
}

func (r Record) apply(p Patch) Record {
	if p.Organization != nil {
		r.Organization = *p.Organization
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Hours != nil {
		r.Hours = *p.Hours
	}
	if p.Date != nil {
		r.Date = p.Date.UTC().Truncate(time.Second)
	}
	if p.Verified != nil {
		r.Verified = *p.Verified
	}
	if p.SupervisorName != nil {
		r.SupervisorName = p.SupervisorName
	}
	if p.SupervisorEmail != nil {
		r.SupervisorEmail = p.SupervisorEmail
	}
	if p.SupervisorPhone != nil {
		r.SupervisorPhone = p.SupervisorPhone
	}
	return r
}

func summarize(userID int64, recs []Record) Summary {
	s := Summary{UserID: userID, Entries: len(recs)}
	for _, r := range recs {
		s.TotalHours += r.Hours
		if r.Verified {
			s.VerifiedHours += r.Hours
		}
	}
	if s.Entries > 0 {
		s.AverageHours = s.TotalHours / float64(s.Entries)
	}
	return s
}
