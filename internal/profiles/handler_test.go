package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/shared/auth"
	"cvmatch-backend/internal/shared/config"
	"cvmatch-backend/internal/shared/server"
)

func setupProfileRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(NewMemoryRepo())
	router := server.NewRouter(server.Deps{
		Config:   config.Config{Env: "dev", CORSAllowOrigin: []string{"http://localhost:5173"}},
		Handlers: []server.RouteRegistrar{NewHandler(svc, "dev")},
	})
	return router, svc
}

func authHeader(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: userID})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func TestReplaceSkillsEndpoint(t *testing.T) {
	router, svc := setupProfileRouter(t)
	p, err := svc.Save(context.Background(), "user-1", ProfileInput{FullName: "Ada Example"})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	payload, _ := json.Marshal(map[string]any{
		"profileId": p.ID,
		"skills": []map[string]string{
			{"name": "Go"},
			{"name": "Postgres"},
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile/skills", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t, "user-1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Count != 2 {
		t.Fatalf("expected success with count 2, got %+v", body)
	}
}

func TestReplaceSkillsForeignProfileIsForbidden(t *testing.T) {
	router, svc := setupProfileRouter(t)
	p, err := svc.Save(context.Background(), "user-1", ProfileInput{FullName: "Ada Example"})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	payload, _ := json.Marshal(map[string]any{
		"profileId": p.ID,
		"skills":    []map[string]string{{"name": "Go"}},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile/skills", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t, "user-2"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetProfileNotFound(t *testing.T) {
	router, _ := setupProfileRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", authHeader(t, "user-1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
