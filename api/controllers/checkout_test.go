package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cartsvc "github.com/sneakhead/sneakhead-backend/internal/cart"
	checkoutsvc "github.com/sneakhead/sneakhead-backend/internal/checkout"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/types"
)

type stubCheckout struct {
	summary checkoutsvc.Summary
	history []cartsvc.Item
	err     error
}

func (s stubCheckout) Preview(ctx context.Context, username string) (checkoutsvc.Summary, error) {
	return s.summary, s.err
}

func (s stubCheckout) Complete(ctx context.Context, username string) (checkoutsvc.Summary, error) {
	return s.summary, s.err
}

func (s stubCheckout) History(ctx context.Context, username string) ([]cartsvc.Item, error) {
	return s.history, s.err
}

func TestCheckoutPreviewSuccess(t *testing.T) {
	summary := checkoutsvc.Summary{
		Lines: []cartsvc.Item{{Title: "Air Jordan 1", Price: types.MoneyFromInt(180), Quantity: 2, Size: "42"}},
		Total: types.MoneyFromInt(360),
	}
	handler := CheckoutPreview(stubCheckout{summary: summary}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/checkout", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Lines []cartsvc.Item  `json:"lines"`
			Total json.RawMessage `json:"total"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(envelope.Data.Total) != "360" {
		t.Fatalf("total must serialize as a bare number, got %s", envelope.Data.Total)
	}
	if len(envelope.Data.Lines) != 1 {
		t.Fatalf("unexpected lines: %+v", envelope.Data.Lines)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	handler := CheckoutComplete(stubCheckout{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", ""))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestCheckoutCompleteReturnsCreated(t *testing.T) {
	summary := checkoutsvc.Summary{
		Lines: []cartsvc.Item{{Title: "Air Jordan 1", Price: types.MoneyFromInt(180), Quantity: 1, Size: "42"}},
		Total: types.MoneyFromInt(180),
	}
	handler := CheckoutComplete(stubCheckout{summary: summary}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", ""))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestPurchaseHistoryEmptyIsAnArray(t *testing.T) {
	handler := PurchaseHistory(stubCheckout{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/purchases", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []cartsvc.Item `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data == nil || len(envelope.Data) != 0 {
		t.Fatalf("expected empty array, got %+v", envelope.Data)
	}
}
