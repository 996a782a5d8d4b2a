package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stwms/workforce-portal/internal/core/domain"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tasks/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrNoSession, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotAssignee, http.StatusForbidden},
		{domain.ErrTaskNotFound, http.StatusNotFound},
		{domain.ErrAssigneeRequired, http.StatusUnprocessableEntity},
		{domain.ErrTaskNotOpen, http.StatusConflict},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrUpstream, http.StatusBadGateway},
	}
	for _, tc := range cases {
		rec := handleError(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%v: invalid envelope: %v", tc.err, err)
		}
		if resp["error"] == "" {
			t.Errorf("%v: empty error message", tc.err)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	rec := handleError(t, fmt.Errorf("assign task 1: %w", domain.ErrTaskNotOpen))
	if rec.Code != http.StatusConflict {
		t.Fatalf("wrapped domain error must keep its mapping, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_AssigneeRequiredKeepsGuidance(t *testing.T) {
	rec := handleError(t, domain.ErrAssigneeRequired)

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "Please assign this task to a team member." {
		t.Errorf("guidance lost: %q", resp["error"])
	}
}

func TestHTTPErrorHandler_UpstreamDetailNotLeaked(t *testing.T) {
	rec := handleError(t, fmt.Errorf("GET /api/tasks: %w: connect: connection refused", domain.ErrUpstream))

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "backend request failed" {
		t.Errorf("transport detail must stay in the log, got %q", resp["error"])
	}
}

func TestHTTPErrorHandler_EchoErrorPassesThrough(t *testing.T) {
	rec := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid id"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsGeneric500(t *testing.T) {
	rec := handleError(t, errors.New("cache line on fire"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "internal server error" {
		t.Errorf("internal detail must not leak, got %q", resp["error"])
	}
}
