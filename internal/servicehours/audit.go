package servicehours

import (
	"context"
	"errors"
	"log"
	"strconv"

	syncx "github.com/mind-engage/uc-planner/internal/sync"
)

// auditedStore appends an event for every successful mutation. Event log
// failures are logged and do not fail the request.
type auditedStore struct {
	Store
	events syncx.Log
	siteID string
}

// WithAudit wraps s so that create, update and delete are recorded in events.
func WithAudit(s Store, events syncx.Log, siteID string) Store {
	if events == nil {
		return s
	}
	return &auditedStore{Store: s, events: events, siteID: siteID}
}

func (a *auditedStore) Create(ctx context.Context, n NewRecord) (Record, error) {
	r, err := a.Store.Create(ctx, n)
	if err == nil {
		a.record(ctx, syncx.ServiceHoursCreated, r.ID, r)
	}
	return r, err
}

func (a *auditedStore) Update(ctx context.Context, id int64, p Patch) (Record, error) {
	r, err := a.Store.Update(ctx, id, p)
	if err == nil {
		a.record(ctx, syncx.ServiceHoursUpdated, r.ID, r)
	}
	return r, err
}

// Delete records an event only when the record existed.
func (a *auditedStore) Delete(ctx context.Context, id int64) error {
	_, err := a.Store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return a.Store.Delete(ctx, id)
	}
	if err != nil {
		return err
	}
	err = a.Store.Delete(ctx, id)
	if err == nil {
		a.record(ctx, syncx.ServiceHoursDeleted, id, map[string]int64{"id": id})
	}
	return err
}

func (a *auditedStore) record(ctx context.Context, typ string, id int64, data any) {
	ev, err := syncx.NewEvent(a.siteID, typ, strconv.FormatInt(id, 10), data)
	if err == nil {
		err = a.events.Append(ctx, ev)
	}
	if err != nil {
		log.Printf("servicehours: audit %s id=%d: %v", typ, id, err)
	}
}
