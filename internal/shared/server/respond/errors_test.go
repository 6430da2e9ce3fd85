package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/shared/apperr"
)

func runFromError(t *testing.T, env string, err error) (int, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/analysis/x", nil)

	FromError(c, env, err)

	var body ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return recorder.Code, body
}

func TestFromErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthenticated", apperr.Unauthenticated("missing token"), http.StatusUnauthorized, "unauthenticated"},
		{"unauthorized", apperr.Unauthorized("not the owner"), http.StatusForbidden, "unauthorized"},
		{"not found", apperr.NotFound("no such analysis"), http.StatusNotFound, "not_found"},
		{"validation", apperr.Validation("bad input", nil), http.StatusBadRequest, "validation_error"},
		{"dispatch", apperr.Dispatch(errors.New("sqs down")), http.StatusInternalServerError, "dispatch_failure"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		status, body := runFromError(t, "dev", tc.err)
		if status != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d", tc.name, status, tc.wantStatus)
		}
		if body.Code != tc.wantCode {
			t.Fatalf("%s: code = %q, want %q", tc.name, body.Code, tc.wantCode)
		}
		if body.Error == "" {
			t.Fatalf("%s: expected error message", tc.name)
		}
	}
}

func TestFromErrorValidationCarriesDetails(t *testing.T) {
	details := []map[string]string{{"field": "title", "issue": "required"}}
	_, body := runFromError(t, "dev", apperr.Validation("title is required", details))
	if body.Details == nil {
		t.Fatalf("expected details in validation response")
	}
}

func TestFromErrorHidesInternalsInProduction(t *testing.T) {
	_, body := runFromError(t, "production", errors.New("pq: connection refused"))
	if body.Error != "Unexpected server error" {
		t.Fatalf("expected generic message in production, got %q", body.Error)
	}

	_, body = runFromError(t, "dev", errors.New("pq: connection refused"))
	if body.Error != "pq: connection refused" {
		t.Fatalf("expected underlying message in dev, got %q", body.Error)
	}
}
