package contact_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mind-engage/uc-planner/internal/contact"
	syncx "github.com/mind-engage/uc-planner/internal/sync"
	"github.com/mind-engage/uc-planner/internal/validation"
)

type failingLog struct{ syncx.Log }

func (failingLog) Append(context.Context, syncx.Event) error { return errors.New("disk full") }

func TestSubmit_RecordsEvent(t *testing.T) {
	log := syncx.NewMemoryLog()
	svc := contact.NewService(log, "site-a")
	msg := contact.Message{Name: "Ana", Email: "ana@example.com", Subject: "Hi", Message: "Question about GPA"}

	r, err := svc.Submit(context.Background(), msg)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !r.Success || r.Message != contact.AckMessage {
		t.Fatalf("receipt = %+v", r)
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		t.Fatalf("id %q is not a uuid", r.ID)
	}

	evs, _ := log.List(context.Background(), 0, 0)
	if len(evs) != 1 {
		t.Fatalf("got %d events", len(evs))
	}
	e := evs[0]
	if e.Type != syncx.ContactSubmitted || e.Key != r.ID || e.SiteID != "site-a" {
		t.Fatalf("event = %+v", e)
	}
	var stored contact.Message
	if err := json.Unmarshal([]byte(e.DataJSON), &stored); err != nil || stored != msg {
		t.Fatalf("stored %+v (%v)", stored, err)
	}
}

func TestSubmit_Validation(t *testing.T) {
	svc := contact.NewService(syncx.NewMemoryLog(), "")
	cases := map[string]struct {
		msg   contact.Message
		field string
	}{
		"missing name":  {contact.Message{Email: "a@b.co", Subject: "s", Message: "long enough text"}, "name"},
		"bad email":     {contact.Message{Name: "n", Email: "not-an-email", Subject: "s", Message: "long enough text"}, "email"},
		"no subject":    {contact.Message{Name: "n", Email: "a@b.co", Message: "long enough text"}, "subject"},
		"short message": {contact.Message{Name: "n", Email: "a@b.co", Subject: "s", Message: "too short"}, "message"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.msg)
			var ve *validation.Error
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(ve.Fields) != 1 || ve.Fields[0].Field != tc.field {
				t.Fatalf("fields = %+v", ve.Fields)
			}
		})
	}
}

func TestSubmit_LogFailure(t *testing.T) {
	svc := contact.NewService(failingLog{}, "")
	_, err := svc.Submit(context.Background(), contact.Message{Name: "n", Email: "a@b.co", Subject: "s", Message: "long enough text"})
	if err == nil {
		t.Fatal("expected error")
	}
	var ve *validation.Error
	if errors.As(err, &ve) {
		t.Fatal("storage failure must not look like a validation error")
	}
}
