// Package wishlist mutates a user's slot inside the wishlist collection,
// independent of the cart.
package wishlist

import (
	"context"

	"github.com/sneakhead/sneakhead-backend/internal/catalog"
	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
)

// PricePlaceholder is shown for wishlist items whose title has left the catalog.
const PricePlaceholder = "N/A"

// Item is one stored wishlist entry. Only the identity pair is persisted;
// price and image are joined in at view time.
type Item struct {
	Title string `json:"title"`
	Size  string `json:"size"`
}

// Collection is the persisted shape: username to wishlist entries.
type Collection map[string][]Item

// DetailedItem is a wishlist entry joined against the live catalog. A title
// no longer in the catalog keeps a nil image and the price placeholder.
type DetailedItem struct {
	Title string  `json:"title"`
	Size  string  `json:"size"`
	Image *string `json:"image"`
	Price any     `json:"price"`
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Store   *docstore.Store
	Locks   *lockmanager.Manager
	Catalog catalog.Service
}

// Service exposes wishlist reads and mutations.
type Service interface {
	View(ctx context.Context, username string) ([]DetailedItem, error)
	Add(ctx context.Context, username, title, size string) (added bool, err error)
	Remove(ctx context.Context, username, title, size string) error
}

type service struct {
	store   *docstore.Store
	locks   *lockmanager.Manager
	catalog catalog.Service
}

// NewService builds a wishlist service with the required dependencies.
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
	return &service{store: params.Store, locks: params.Locks, catalog: params.Catalog}, nil
}

// View joins the user's entries against the current catalog by title to
// attach live price and image. No lock is taken; each load is a consistent
// committed snapshot.
func (s *service) View(ctx context.Context, username string) ([]DetailedItem, error) {
	wishlists := Collection{}
	if err := s.store.Load(docstore.CollectionWishlist, &wishlists); err != nil {
		return nil, err
	}

	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]catalog.Product, len(products))
	for _, product := range products {
		byTitle[product.Title] = product
	}

	detailed := make([]DetailedItem, 0, len(wishlists[username]))
	for _, item := range wishlists[username] {
		entry := DetailedItem{Title: item.Title, Size: item.Size, Price: PricePlaceholder}
		if product, ok := byTitle[item.Title]; ok {
			image := product.Image
			entry.Image = &image
			entry.Price = product.Price
		}
		detailed = append(detailed, entry)
	}
	return detailed, nil
}

// Add stores the (title, size) pair unless it is already present; a duplicate
// is rejected with a not-added outcome rather than merged or failed.
func (s *service) Add(ctx context.Context, username, title, size string) (bool, error) {
	unlock := s.locks.Lock(docstore.CollectionWishlist)
	defer unlock()

	wishlists := Collection{}
	if err := s.store.Load(docstore.CollectionWishlist, &wishlists); err != nil {
		return false, err
	}

	for _, item := range wishlists[username] {
		if item.Title == title && item.Size == size {
			return false, nil
		}
	}

	wishlists[username] = append(wishlists[username], Item{Title: title, Size: size})
	if err := s.store.Save(docstore.CollectionWishlist, wishlists); err != nil {
		return false, err
	}
	return true, nil
}

// Remove drops every entry matching the (title, size) pair; removing an
// absent pair is a no-op success.
func (s *service) Remove(ctx context.Context, username, title, size string) error {
	unlock := s.locks.Lock(docstore.CollectionWishlist)
	defer unlock()

	wishlists := Collection{}
	if err := s.store.Load(docstore.CollectionWishlist, &wishlists); err != nil {
		return err
	}

	items, ok := wishlists[username]
	if !ok {
		return nil
	}

	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Title != title || item.Size != size {
			kept = append(kept, item)
		}
	}
	wishlists[username] = kept

	return s.store.Save(docstore.CollectionWishlist, wishlists)
}
