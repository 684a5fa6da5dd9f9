// Package checkout moves a user's cart into their purchase history as one
// all-or-nothing step.
package checkout

import (
	"context"

	"go.uber.org/multierr"

	"github.com/sneakhead/sneakhead-backend/internal/cart"
	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/types"
)

// ErrEmptyCart signals a checkout against a cart with no lines.
var ErrEmptyCart = pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")

// Summary is the outcome of a checkout: the lines purchased and their total.
type Summary struct {
	Lines []cart.Item `json:"lines"`
	Total types.Money `json:"total"`
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Store *docstore.Store
	Locks *lockmanager.Manager
}

// Service exposes checkout and the purchase history read path.
type Service interface {
	Preview(ctx context.Context, username string) (Summary, error)
	Complete(ctx context.Context, username string) (Summary, error)
	History(ctx context.Context, username string) ([]cart.Item, error)
}

type service struct {
	store *docstore.Store
	locks *lockmanager.Manager
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document store is required")
	}
	if params.Locks == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lock manager is required")
	}
	return &service{store: params.Store, locks: params.Locks}, nil
}

// Preview returns the lines and total the user would purchase, without locking.
func (s *service) Preview(ctx context.Context, username string) (Summary, error) {
	carts := cart.Collection{}
	if err := s.store.Load(docstore.CollectionCart, &carts); err != nil {
		return Summary{}, err
	}
	lines := carts[username]
	if len(lines) == 0 {
		return Summary{}, ErrEmptyCart
	}
	return Summary{Lines: lines, Total: total(lines)}, nil
}

// Complete appends every cart line to the user's purchase history and empties
// the cart, under both collections' locks in their fixed order. Both saves
// happen inside the critical section; if the cart save fails after purchases
// committed, the prior purchases value is restored so no partial outcome is
// left behind.
func (s *service) Complete(ctx context.Context, username string) (Summary, error) {
	unlock := s.locks.Lock(docstore.CollectionCart, docstore.CollectionPurchases)
	defer unlock()

	carts := cart.Collection{}
	if err := s.store.Load(docstore.CollectionCart, &carts); err != nil {
		return Summary{}, err
	}
	lines := carts[username]
	if len(lines) == 0 {
		return Summary{}, ErrEmptyCart
	}

	purchases := cart.Collection{}
	if err := s.store.Load(docstore.CollectionPurchases, &purchases); err != nil {
		return Summary{}, err
	}
	previous := purchases[username]

	purchases[username] = append(append([]cart.Item{}, previous...), lines...)
	carts[username] = []cart.Item{}

	if err := s.store.Save(docstore.CollectionPurchases, purchases); err != nil {
		return Summary{}, err
	}
	if err := s.store.Save(docstore.CollectionCart, carts); err != nil {
		purchases[username] = previous
		if restoreErr := s.store.Save(docstore.CollectionPurchases, purchases); restoreErr != nil {
			err = multierr.Append(err, restoreErr)
		}
		return Summary{}, err
	}

	return Summary{Lines: lines, Total: total(lines)}, nil
}

// History returns the user's committed purchases.
func (s *service) History(ctx context.Context, username string) ([]cart.Item, error) {
	purchases := cart.Collection{}
	if err := s.store.Load(docstore.CollectionPurchases, &purchases); err != nil {
		return nil, err
	}
	lines, ok := purchases[username]
	if !ok {
		return []cart.Item{}, nil
	}
	return lines, nil
}

func total(lines []cart.Item) types.Money {
	sum := types.MoneyFromInt(0)
	for _, line := range lines {
		sum = sum.Plus(line.Price.Times(line.Quantity))
	}
	return sum
}
