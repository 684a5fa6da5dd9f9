// Package giftcards issues uniquely identified gift-card records. Cards have
// no further lifecycle; redemption is not modeled.
package giftcards

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/types"
)

// GiftCard is one issued record. Field names match the persisted document
// layout the collection has always used.
type GiftCard struct {
	Amount         types.Money `json:"amount"`
	Message        string      `json:"message"`
	SenderName     string      `json:"yourName"`
	RecipientEmail string      `json:"recipientEmail"`
	Date           string      `json:"date"`
}

// Collection is the persisted shape: numeric id (as a document key) to card.
type Collection map[string]GiftCard

// IssueInput carries the checkout payload for a new gift card.
type IssueInput struct {
	Amount         string
	Message        string
	SenderName     string
	RecipientEmail string
}

// ServiceParams groups dependencies for the gift card service.
type ServiceParams struct {
	Store    *docstore.Store
	Locks    *lockmanager.Manager
	Location *time.Location
	Now      func() time.Time
}

// Service issues gift cards.
type Service interface {
	Issue(ctx context.Context, input IssueInput) (int64, error)
}

type service struct {
	store    *docstore.Store
	locks    *lockmanager.Manager
	location *time.Location
	now      func() time.Time

	// lastID is the floor for the next id; only touched under the
	// collection's lock.
	lastID int64
}

// NewService builds a gift card service with the required dependencies.
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

// Issue validates the payload, generates a unique id, and stores the record.
// The id starts from the millisecond clock but is bumped past both the
// last id issued by this process and any id already in the collection, so
// concurrent issuance within one clock tick cannot collide.
func (s *service) Issue(ctx context.Context, input IssueInput) (int64, error) {
	amount, err := types.MoneyFromString(strings.TrimSpace(input.Amount))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "gift card amount must be a number")
	}
	if amount.Negative() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "gift card amount must not be negative")
	}

	unlock := s.locks.Lock(docstore.CollectionGiftCards)
	defer unlock()

	cards := Collection{}
	if err := s.store.Load(docstore.CollectionGiftCards, &cards); err != nil {
		return 0, err
	}

	id := s.nextID(cards)
	cards[strconv.FormatInt(id, 10)] = GiftCard{
		Amount:         amount,
		Message:        input.Message,
		SenderName:     input.SenderName,
		RecipientEmail: input.RecipientEmail,
		Date:           s.now().In(s.location).Format(time.RFC3339),
	}

	if err := s.store.Save(docstore.CollectionGiftCards, cards); err != nil {
		return 0, err
	}
	s.lastID = id
	return id, nil
}

func (s *service) nextID(cards Collection) int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for {
		if _, taken := cards[strconv.FormatInt(id, 10)]; !taken {
			return id
		}
		id++
	}
}
