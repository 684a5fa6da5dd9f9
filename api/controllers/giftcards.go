package controllers

import (
	"net/http"

	"github.com/sneakhead/sneakhead-backend/api/responses"
	"github.com/sneakhead/sneakhead-backend/api/validators"
	giftcardsvc "github.com/sneakhead/sneakhead-backend/internal/giftcards"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/logger"
)

type giftCardRequest struct {
	Amount         string `json:"amount" validate:"required"`
	Message        string `json:"message" validate:"max=500"`
	YourName       string `json:"yourName" validate:"required"`
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
}

type giftCardResponse struct {
	ID int64 `json:"id"`
}

// GiftCardIssue stores a new gift card and returns its identifier.
func GiftCardIssue(svc giftcardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift card service unavailable"))
			return
		}

		var payload giftCardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := svc.Issue(r.Context(), giftcardsvc.IssueInput{
			Amount:         payload.Amount,
			Message:        payload.Message,
			SenderName:     payload.YourName,
			RecipientEmail: payload.RecipientEmail,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, giftCardResponse{ID: id})
	}
}
