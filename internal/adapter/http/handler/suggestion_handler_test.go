package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/transfermatch/internal/adapter/http/dto"
	"github.com/iho/transfermatch/internal/matcher"
	"github.com/iho/transfermatch/internal/usecase"
)

func newSuggestionHandler(t *testing.T) *SuggestionHandler {
	t.Helper()

	txnRepo, accountRepo := seededRepos(t)
	uc := usecase.NewSuggestionUseCase(txnRepo, accountRepo, nil, matcher.DefaultConfig())

	return NewSuggestionHandler(uc, nil)
}

func TestSuggestionHandler_Generate(t *testing.T) {
	handler := newSuggestionHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/user-1/suggestions", nil)
	req = setChiURLParam(req, "userID", "user-1")
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.SuggestionSetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Accepted) != 1 {
		t.Fatalf("expected 1 accepted suggestion, got %d", len(resp.Accepted))
	}
	if resp.Accepted[0].MatchType != "exact" || resp.Accepted[0].Score != 100 {
		t.Fatalf("unexpected suggestion: %+v", resp.Accepted[0])
	}
}

func TestSuggestionHandler_Generate_DateRange(t *testing.T) {
	handler := newSuggestionHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/user-1/suggestions?from=2024-02-01", nil)
	req = setChiURLParam(req, "userID", "user-1")
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.SuggestionSetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Accepted) != 0 {
		t.Fatalf("expected no suggestions outside range, got %d", len(resp.Accepted))
	}
}

func TestSuggestionHandler_Generate_InvalidDate(t *testing.T) {
	handler := newSuggestionHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/user-1/suggestions?from=notadate", nil)
	req = setChiURLParam(req, "userID", "user-1")
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSuggestionHandler_Generate_MissingUser(t *testing.T) {
	handler := newSuggestionHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users//suggestions", nil)
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
