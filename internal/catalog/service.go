// Package catalog manages the product catalog collection: a lock-free read
// path for browsing plus the admin add/remove mutations.
package catalog

import (
	"context"
	"strings"

	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/types"
)

// ErrProductNotFound signals a title lookup that matched nothing.
var ErrProductNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")

// Product is one catalog entry. Title is the identity within the catalog.
type Product struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Price       types.Money `json:"price"`
}

// AddProductInput carries the admin payload for a new product. Price arrives
// as the raw form value and is parsed here.
type AddProductInput struct {
	Title       string
	Description string
	Image       string
	Price       string
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Store *docstore.Store
	Locks *lockmanager.Manager
}

// Service exposes catalog reads and the admin mutation path. The mutation
// path assumes the admin predicate already held at the boundary; only
// business invariants are enforced here.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	FindByTitle(ctx context.Context, title string) (Product, error)
	AddProduct(ctx context.Context, input AddProductInput) (Product, error)
	DeleteProduct(ctx context.Context, title string) error
}

type service struct {
	store *docstore.Store
	locks *lockmanager.Manager
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document store is required")
	}
	if params.Locks == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lock manager is required")
	}
	return &service{store: params.Store, locks: params.Locks}, nil
}

// List returns the current catalog without taking a lock.
func (s *service) List(ctx context.Context) ([]Product, error) {
	products := []Product{}
	if err := s.store.Load(docstore.CollectionProducts, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByTitle locates a product by case-insensitive exact title match.
func (s *service) FindByTitle(ctx context.Context, title string) (Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, product := range products {
		if strings.EqualFold(product.Title, title) {
			return product, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// AddProduct validates the payload and appends it to the catalog.
func (s *service) AddProduct(ctx context.Context, input AddProductInput) (Product, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product title is required")
	}
	price, err := types.MoneyFromString(strings.TrimSpace(input.Price))
	if err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "product price must be a number")
	}
	if price.Negative() {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product price must not be negative")
	}

	product := Product{
		Title:       title,
		Description: input.Description,
		Image:       input.Image,
		Price:       price,
	}

	unlock := s.locks.Lock(docstore.CollectionProducts)
	defer unlock()

	products := []Product{}
	if err := s.store.Load(docstore.CollectionProducts, &products); err != nil {
		return Product{}, err
	}
	products = append(products, product)
	if err := s.store.Save(docstore.CollectionProducts, products); err != nil {
		return Product{}, err
	}
	return product, nil
}

// DeleteProduct removes every product with the exact title. Deleting a title
// that is not present succeeds as a no-op; removal is filter-based.
func (s *service) DeleteProduct(ctx context.Context, title string) error {
	unlock := s.locks.Lock(docstore.CollectionProducts)
	defer unlock()

	products := []Product{}
	if err := s.store.Load(docstore.CollectionProducts, &products); err != nil {
		return err
	}

	kept := products[:0]
	for _, product := range products {
		if product.Title != title {
			kept = append(kept, product)
		}
	}
	return s.store.Save(docstore.CollectionProducts, kept)
}
