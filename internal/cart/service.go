// Package cart mutates a user's slot inside the shared cart collection. The
// lock is collection-granular: concurrent mutations for different users still
// serialize, which is an accepted trade at this scale.
package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/sneakhead/sneakhead-backend/internal/activity"
	"github.com/sneakhead/sneakhead-backend/internal/catalog"
	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/types"
)

var (
	// ErrCartNotFound signals a user that has never had a cart slot.
	ErrCartNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	// ErrLineNotFound signals a mutation that matched no cart line.
	ErrLineNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "item not found in cart")
)

// Item is one cart line: a product snapshot frozen at add time plus the
// chosen size and the running quantity.
type Item struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Price       types.Money `json:"price"`
	Quantity    int         `json:"quantity"`
	Size        string      `json:"size"`
}

// Collection is the persisted shape: username to cart lines.
type Collection map[string][]Item

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store    *docstore.Store
	Locks    *lockmanager.Manager
	Catalog  catalog.Service
	Activity activity.Service
}

// Service exposes the cart mutations.
type Service interface {
	Get(ctx context.Context, username string) ([]Item, error)
	AddToCart(ctx context.Context, username, title, size string) error
	IncreaseQuantity(ctx context.Context, username, title string) error
	DecreaseQuantity(ctx context.Context, username, title string) error
	RemoveFromCart(ctx context.Context, username, title string) error
}

type service struct {
	store    *docstore.Store
	locks    *lockmanager.Manager
	catalog  catalog.Service
	activity activity.Service
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document store is required")
	}
	if params.Locks == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lock manager is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog service is required")
	}
	if params.Activity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity service is required")
	}
	return &service{
		store:    params.Store,
		locks:    params.Locks,
		catalog:  params.Catalog,
		activity: params.Activity,
	}, nil
}

// Get returns the user's current lines without taking the lock.
func (s *service) Get(ctx context.Context, username string) ([]Item, error) {
	carts := Collection{}
	if err := s.store.Load(docstore.CollectionCart, &carts); err != nil {
		return nil, err
	}
	lines, ok := carts[username]
	if !ok {
		return []Item{}, nil
	}
	return lines, nil
}

// AddToCart resolves the product (case-insensitive title match), then under
// the cart lock merges into an existing (title, size) line or appends a new
// line carrying a snapshot of the product at add time. The activity entry is
// appended after the critical section commits.
func (s *service) AddToCart(ctx context.Context, username, title, size string) error {
	product, err := s.catalog.FindByTitle(ctx, title)
	if err != nil {
		return err
	}

	if err := s.mergeLine(username, product, size); err != nil {
		return err
	}

	return s.activity.Append(ctx, username, fmt.Sprintf("Added to cart: %s (Size: %s)", title, size))
}

func (s *service) mergeLine(username string, product catalog.Product, size string) error {
	unlock := s.locks.Lock(docstore.CollectionCart)
	defer unlock()

	carts := Collection{}
	if err := s.store.Load(docstore.CollectionCart, &carts); err != nil {
		return err
	}

	lines := carts[username]
	merged := false
	for i := range lines {
		if strings.EqualFold(lines[i].Title, product.Title) && lines[i].Size == size {
			lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, Item{
			Title:       product.Title,
			Description: product.Description,
			Image:       product.Image,
			Price:       product.Price,
			Quantity:    1,
			Size:        size,
		})
	}
	carts[username] = lines

	return s.store.Save(docstore.CollectionCart, carts)
}

// IncreaseQuantity adds one to the line matching the title.
func (s *service) IncreaseQuantity(ctx context.Context, username, title string) error {
	return s.adjustQuantity(username, title, +1)
}

// DecreaseQuantity subtracts one from the line matching the title, removing
// the line entirely when the result would drop below one.
func (s *service) DecreaseQuantity(ctx context.Context, username, title string) error {
	return s.adjustQuantity(username, title, -1)
}

func (s *service) adjustQuantity(username, title string, delta int) error {
	unlock := s.locks.Lock(docstore.CollectionCart)
	defer unlock()

	carts := Collection{}
	if err := s.store.Load(docstore.CollectionCart, &carts); err != nil {
		return err
	}

	lines, ok := carts[username]
	if !ok {
		return ErrCartNotFound
	}

	idx := -1
	for i := range lines {
		if lines[i].Title == title {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrLineNotFound
	}

	next := lines[idx].Quantity + delta
	if next < 1 {
		lines = append(lines[:idx], lines[idx+1:]...)
	} else {
		lines[idx].Quantity = next
	}
	carts[username] = lines

	return s.store.Save(docstore.CollectionCart, carts)
}

// RemoveFromCart removes every line whose title matches case-insensitively,
// across all sizes. Removal deliberately matches on title only, unlike add.
func (s *service) RemoveFromCart(ctx context.Context, username, title string) error {
	unlock := s.locks.Lock(docstore.CollectionCart)
	defer unlock()

	carts := Collection{}
	if err := s.store.Load(docstore.CollectionCart, &carts); err != nil {
		return err
	}

	lines, ok := carts[username]
	if !ok {
		return ErrCartNotFound
	}

	kept := make([]Item, 0, len(lines))
	for _, line := range lines {
		if !strings.EqualFold(line.Title, title) {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return ErrLineNotFound
	}
	carts[username] = kept

	return s.store.Save(docstore.CollectionCart, carts)
}
