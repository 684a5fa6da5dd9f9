package controllers

import (
	"net/http"
	"time"

	"github.com/sneakhead/sneakhead-backend/api/responses"
	"github.com/sneakhead/sneakhead-backend/api/validators"
	"github.com/sneakhead/sneakhead-backend/internal/accounts"
	"github.com/sneakhead/sneakhead-backend/internal/activity"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/logger"
	"github.com/sneakhead/sneakhead-backend/pkg/session"
	"github.com/sneakhead/sneakhead-backend/pkg/types"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1"`
}

type loginRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type loginResponse struct {
	Username string `json:"username"`
}

// AuthRegister creates a new account. It does not start a session; the
// client logs in afterwards.
func AuthRegister(accountsSvc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if accountsSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := accountsSvc.Register(r.Context(), payload.Username, payload.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, types.MessageResponse{Message: "registered"})
	}
}

// AuthLogin verifies credentials, records the login in the activity log, and
// sets the session cookie.
func AuthLogin(accountsSvc accounts.Service, activitySvc activity.Service, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if accountsSvc == nil || sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth services unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := accountsSvc.Authenticate(r.Context(), payload.Username, payload.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, expiry, err := sessions.Issue(payload.Username, payload.RememberMe, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue session"))
			return
		}

		if activitySvc != nil {
			if err := activitySvc.Append(r.Context(), payload.Username, "Login"); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		http.SetCookie(w, sessions.Cookie(token, expiry))
		responses.WriteSuccess(w, loginResponse{Username: payload.Username})
	}
}

// AuthLogout clears the session cookie. When the request still carries a
// valid session, the logout lands in the activity log under that username.
func AuthLogout(activitySvc activity.Service, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		if activitySvc != nil {
			if cookie, err := r.Cookie(sessions.CookieName()); err == nil && cookie.Value != "" {
				if username, err := sessions.Parse(cookie.Value); err == nil {
					if err := activitySvc.Append(r.Context(), username, "Logout"); err != nil {
						responses.WriteError(r.Context(), logg, w, err)
						return
					}
				}
			}
		}

		http.SetCookie(w, sessions.ClearCookie())
		responses.WriteSuccess(w, types.MessageResponse{Message: "logged out"})
	}
}
