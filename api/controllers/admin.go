package controllers

import (
	"net/http"

	"github.com/sneakhead/sneakhead-backend/api/responses"
	"github.com/sneakhead/sneakhead-backend/api/validators"
	"github.com/sneakhead/sneakhead-backend/internal/activity"
	"github.com/sneakhead/sneakhead-backend/internal/catalog"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/logger"
	"github.com/sneakhead/sneakhead-backend/pkg/types"
)

type addProductRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"max=1024"`
	Price       string `json:"price" validate:"required"`
}

type dashboardResponse struct {
	Activity []activity.Entry  `json:"activity"`
	Products []catalog.Product `json:"products"`
}

// AdminDashboard bundles the activity log and the catalog into one payload.
func AdminDashboard(activitySvc activity.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if activitySvc == nil || catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin services unavailable"))
			return
		}

		entries, err := activitySvc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if entries == nil {
			entries = []activity.Entry{}
		}

		products, err := catalogSvc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if products == nil {
			products = []catalog.Product{}
		}

		responses.WriteSuccess(w, dashboardResponse{Activity: entries, Products: products})
	}
}

// AdminProductCreate adds a product to the catalog.
func AdminProductCreate(catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload addProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.AddProduct(r.Context(), catalog.AddProductInput{
			Title:       payload.Title,
			Description: payload.Description,
			Image:       payload.Image,
			Price:       payload.Price,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductDelete removes every product whose title matches exactly.
func AdminProductDelete(catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		title, err := validators.RequiredQuery(r, "title")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := catalogSvc.DeleteProduct(r.Context(), title); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.MessageResponse{Message: "product deleted"})
	}
}

// AdminClearLogs wipes the activity log.
func AdminClearLogs(activitySvc activity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if activitySvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activity service unavailable"))
			return
		}

		if err := activitySvc.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.MessageResponse{Message: "activity log cleared"})
	}
}
