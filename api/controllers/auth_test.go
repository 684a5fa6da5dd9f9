package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sneakhead/sneakhead-backend/internal/activity"
	"github.com/sneakhead/sneakhead-backend/pkg/config"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/session"
)

type stubAccounts struct {
	registerErr error
	authErr     error
	isAdmin     bool
}

func (s stubAccounts) Register(ctx context.Context, username, password string) error {
	return s.registerErr
}

func (s stubAccounts) Authenticate(ctx context.Context, username, password string) error {
	return s.authErr
}

func (s stubAccounts) IsAdminUser(ctx context.Context, username string) (bool, error) {
	return s.isAdmin, nil
}

type stubActivity struct {
	entries []string
	err     error
}

func (s *stubActivity) Append(ctx context.Context, username, event string) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, username+": "+event)
	return nil
}

func (s *stubActivity) List(ctx context.Context) ([]activity.Entry, error) {
	return nil, nil
}

func (s *stubActivity) Clear(ctx context.Context) error {
	return nil
}

func testSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	manager, err := session.NewManager(config.SessionConfig{
		Secret:         "test-secret",
		TTL:            30 * time.Minute,
		RememberMeTTL:  240 * time.Hour,
		CookieName:     "session",
		CookieHTTPOnly: true,
		Issuer:         "sneakhead",
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return manager
}

func TestAuthRegisterSuccess(t *testing.T) {
	handler := AuthRegister(stubAccounts{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username":"alice","password":"secret"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestAuthRegisterConflict(t *testing.T) {
	handler := AuthRegister(stubAccounts{registerErr: pkgerrors.New(pkgerrors.CodeConflict, "user already exists")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username":"alice","password":"secret"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestAuthRegisterRejectsMissingFields(t *testing.T) {
	handler := AuthRegister(stubAccounts{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username":"alice"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginSetsCookieAndLogsActivity(t *testing.T) {
	sessions := testSessionManager(t)
	recorder := &stubActivity{}
	handler := AuthLogin(stubAccounts{}, recorder, sessions, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "session" || cookies[0].Value == "" {
		t.Fatalf("expected a session cookie, got %+v", cookies)
	}
	if username, err := sessions.Parse(cookies[0].Value); err != nil || username != "alice" {
		t.Fatalf("cookie does not carry the username: %q %v", username, err)
	}

	if len(recorder.entries) != 1 || recorder.entries[0] != "alice: Login" {
		t.Fatalf("unexpected activity entries: %v", recorder.entries)
	}

	var envelope struct {
		Data loginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Username != "alice" {
		t.Fatalf("unexpected username: %s", envelope.Data.Username)
	}
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	sessions := testSessionManager(t)
	recorder := &stubActivity{}
	handler := AuthLogin(stubAccounts{authErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")}, recorder, sessions, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("no cookie should be set on failed login")
	}
	if len(recorder.entries) != 0 {
		t.Fatalf("no activity expected, got %v", recorder.entries)
	}
}

func TestAuthLogoutClearsCookieAndLogsActivity(t *testing.T) {
	sessions := testSessionManager(t)
	recorder := &stubActivity{}
	handler := AuthLogout(recorder, sessions, nil)

	token, expiry, err := sessions.Issue("alice", false, time.Now())
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(sessions.Cookie(token, expiry))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected an expired cookie, got %+v", cookies)
	}
	if len(recorder.entries) != 1 || recorder.entries[0] != "alice: Logout" {
		t.Fatalf("unexpected activity entries: %v", recorder.entries)
	}
}

func TestAuthLogoutWithoutSessionStillSucceeds(t *testing.T) {
	sessions := testSessionManager(t)
	recorder := &stubActivity{}
	handler := AuthLogout(recorder, sessions, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(recorder.entries) != 0 {
		t.Fatalf("no activity expected, got %v", recorder.entries)
	}
}
