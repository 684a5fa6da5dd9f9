package controllers

import (
	"net/http"

	"github.com/sneakhead/sneakhead-backend/api/responses"
	"github.com/sneakhead/sneakhead-backend/api/validators"
	"github.com/sneakhead/sneakhead-backend/pkg/logger"
	"github.com/sneakhead/sneakhead-backend/pkg/types"
)

type contactRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	OrderNumber string `json:"orderNumber" validate:"max=64"`
	Reason      string `json:"reason" validate:"max=128"`
	Message     string `json:"message" validate:"required,max=2000"`
}

// ContactSubmit accepts a contact form submission. Submissions are logged,
// not stored.
func ContactSubmit(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"contact_name":  payload.Name,
				"contact_email": payload.Email,
				"order_number":  payload.OrderNumber,
				"reason":        payload.Reason,
			})
			logg.Info(ctx, "contact.submitted")
		}

		responses.WriteSuccess(w, types.MessageResponse{Message: "message received"})
	}
}
