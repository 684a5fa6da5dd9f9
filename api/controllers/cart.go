package controllers

import (
	"net/http"

	"github.com/sneakhead/sneakhead-backend/api/middleware"
	"github.com/sneakhead/sneakhead-backend/api/responses"
	"github.com/sneakhead/sneakhead-backend/api/validators"
	cartsvc "github.com/sneakhead/sneakhead-backend/internal/cart"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/logger"
	"github.com/sneakhead/sneakhead-backend/pkg/types"
)

type cartAddRequest struct {
	Title string `json:"title" validate:"required"`
	Size  string `json:"size" validate:"required"`
}

type cartLineRequest struct {
	Title string `json:"title" validate:"required"`
}

func usernameFromContext(r *http.Request) (string, error) {
	username := middleware.UsernameFromContext(r.Context())
	if username == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return username, nil
}

// CartFetch returns the caller's cart lines.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		username, err := usernameFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Get(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if items == nil {
			items = []cartsvc.Item{}
		}

		responses.WriteSuccess(w, items)
	}
}

// CartAdd adds one unit of a product in a given size, merging with an
// existing line when title and size already match.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		username, err := usernameFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddToCart(r.Context(), username, payload.Title, payload.Size); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, types.MessageResponse{Message: "added to cart"})
	}
}

// CartIncrease bumps the quantity of the first line matching the title.
func CartIncrease(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartQuantityHandler(svc, logg, func(svc cartsvc.Service, r *http.Request, username, title string) error {
		return svc.IncreaseQuantity(r.Context(), username, title)
	})
}

// CartDecrease lowers the quantity, dropping the line when it reaches zero.
func CartDecrease(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartQuantityHandler(svc, logg, func(svc cartsvc.Service, r *http.Request, username, title string) error {
		return svc.DecreaseQuantity(r.Context(), username, title)
	})
}

func cartQuantityHandler(svc cartsvc.Service, logg *logger.Logger, apply func(cartsvc.Service, *http.Request, string, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		username, err := usernameFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := apply(svc, r, username, payload.Title); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.MessageResponse{Message: "cart updated"})
	}
}

// CartRemove deletes every line matching the title, across all sizes.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		username, err := usernameFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		title, err := validators.RequiredQuery(r, "title")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveFromCart(r.Context(), username, title); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.MessageResponse{Message: "removed from cart"})
	}
}
