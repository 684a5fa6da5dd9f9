// Package activity maintains the append-only activity log collection.
package activity

import (
	"context"
	"time"

	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
)

// TimestampLayout matches the format the log has always been written in.
const TimestampLayout = "2006-01-02 15:04:05"

// Entry is one recorded event. Entries are only ever appended; an explicit
// admin clear replaces the whole collection.
type Entry struct {
	Datetime string `json:"datetime"`
	Username string `json:"username"`
	Type     string `json:"type"`
}

// ServiceParams groups dependencies for the activity log service.
type ServiceParams struct {
	Store    *docstore.Store
	Locks    *lockmanager.Manager
	Location *time.Location
	Now      func() time.Time
}

// Service records and exposes the activity log.
type Service interface {
	Append(ctx context.Context, username, event string) error
	List(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
}

type service struct {
	store    *docstore.Store
	locks    *lockmanager.Manager
	location *time.Location
	now      func() time.Time
}

// NewService builds an activity log service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document store is required")
	}
	if params.Locks == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lock manager is required")
	}
	if params.Location == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "time location is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		store:    params.Store,
		locks:    params.Locks,
		location: params.Location,
		now:      now,
	}, nil
}

// Append adds one entry under the log's own lock. Entries commit in the order
// their critical sections serialize, which is the ordering guarantee callers
// get; wall-clock submission order under contention is not.
func (s *service) Append(ctx context.Context, username, event string) error {
	unlock := s.locks.Lock(docstore.CollectionActivityLog)
	defer unlock()

	entries := []Entry{}
	if err := s.store.Load(docstore.CollectionActivityLog, &entries); err != nil {
		return err
	}

	entries = append(entries, Entry{
		Datetime: s.now().In(s.location).Format(TimestampLayout),
		Username: username,
		Type:     event,
	})

	return s.store.Save(docstore.CollectionActivityLog, entries)
}

// List returns the committed log without taking the lock.
func (s *service) List(ctx context.Context) ([]Entry, error) {
	entries := []Entry{}
	if err := s.store.Load(docstore.CollectionActivityLog, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Clear replaces the collection with an empty sequence.
func (s *service) Clear(ctx context.Context) error {
	unlock := s.locks.Lock(docstore.CollectionActivityLog)
	defer unlock()

	return s.store.Save(docstore.CollectionActivityLog, []Entry{})
}
