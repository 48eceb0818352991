package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skill-market.com/skill-market/internal/events"
	"skill-market.com/skill-market/internal/locks"
	repository "skill-market.com/skill-market/internal/repositories"
	"skill-market.com/skill-market/internal/services"
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	taskRepo := repository.NewTaskRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	userRepo := repository.NewUserRepository(db)
	providerRepo := repository.NewProviderRepository(db)

	pool, err := services.NewEventPool(
		repository.NewEventRepository(db),
		events.NewLogSink(log.New(io.Discard, "", 0)),
		1, 100, 0, 10,
	)
	if err != nil {
		t.Fatalf("failed to start event pool: %v", err)
	}
	t.Cleanup(func() { pool.Shutdown(context.Background()) })

	handler := NewHandler(
		services.NewTaskService(taskRepo, pool),
		services.NewOfferService(offerRepo, taskRepo, providerRepo, locks.NewMemoryTaskLocker(), time.Second, pool),
		services.NewAuthService(userRepo, providerRepo, "test-secret", time.Hour),
		services.NewSkillService(repository.NewSkillRepository(db), providerRepo),
		db,
	)

	e := echo.New()
	Register(e, handler, 1000)

	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	s.t.Helper()

	var payload io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func (s *testServer) expect(want int, method, path, token string, body interface{}) map[string]interface{} {
	s.t.Helper()

	code, out := s.do(method, path, token, body)
	if code != want {
		s.t.Fatalf("%s %s: expected %d, got %d (%v)", method, path, want, code, out)
	}
	return out
}

func (s *testServer) signupAndLogin(path, email string, extra map[string]interface{}) (string, string) {
	s.t.Helper()

	body := map[string]interface{}{
		"email":        email,
		"password":     "Str0ng!pass",
		"firstName":    "Sam",
		"lastName":     "Taylor",
		"mobileNumber": "0412345678",
	}
	for k, v := range extra {
		body[k] = v
	}

	account := s.expect(http.StatusCreated, http.MethodPost, path, "", body)
	login := s.expect(http.StatusOK, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "Str0ng!pass",
	})

	return account["id"].(string), login["accessToken"].(string)
}

func TestHTTP_TaskLifecycle(t *testing.T) {
	s := newTestServer(t)

	_, userToken := s.signupAndLogin("/api/v1/users", "owner@example.com", nil)
	p1ID, p1Token := s.signupAndLogin("/api/v1/providers", "p1@example.com", map[string]interface{}{"providerType": "INDIVIDUAL"})
	_, p2Token := s.signupAndLogin("/api/v1/providers", "p2@example.com", map[string]interface{}{"providerType": "INDIVIDUAL"})

	taskBody := map[string]interface{}{
		"name":              "Assemble desk",
		"category":          "furniture",
		"description":       "Flat-pack desk with drawers",
		"expectedStartDate": "2026-12-01",
		"expectedHours":     3,
		"hourlyRate":        "40",
		"currency":          "USD",
	}

	s.expect(http.StatusUnauthorized, http.MethodPost, "/api/v1/tasks", "", taskBody)
	s.expect(http.StatusForbidden, http.MethodPost, "/api/v1/tasks", p1Token, taskBody)

	task := s.expect(http.StatusCreated, http.MethodPost, "/api/v1/tasks", userToken, taskBody)
	taskID := task["id"].(string)
	if task["status"] != "OPEN" {
		t.Fatalf("expected OPEN, got %v", task["status"])
	}

	offer := s.expect(http.StatusCreated, http.MethodPost, "/api/v1/offers", p1Token, map[string]interface{}{
		"taskId":     taskID,
		"hourlyRate": 50,
		"currency":   "USD",
	})
	offerID := offer["id"].(string)

	s.expect(http.StatusForbidden, http.MethodPost, "/api/v1/offers/"+offerID+"/accept", p2Token, nil)

	accepted := s.expect(http.StatusOK, http.MethodPost, "/api/v1/offers/"+offerID+"/accept", userToken, nil)
	if accepted["status"] != "ACCEPTED" {
		t.Fatalf("expected ACCEPTED offer, got %v", accepted["status"])
	}

	task = s.expect(http.StatusOK, http.MethodGet, "/api/v1/tasks/"+taskID, userToken, nil)
	if task["status"] != "IN_PROGRESS" || task["providerId"] != p1ID {
		t.Fatalf("expected IN_PROGRESS for %s, got %v/%v", p1ID, task["status"], task["providerId"])
	}

	s.expect(http.StatusBadRequest, http.MethodPost, "/api/v1/offers", p2Token, map[string]interface{}{
		"taskId":     taskID,
		"hourlyRate": 45,
		"currency":   "USD",
	})

	s.expect(http.StatusConflict, http.MethodPut, "/api/v1/tasks/"+taskID, userToken, taskBody)

	s.expect(http.StatusCreated, http.MethodPost, "/api/v1/tasks/"+taskID+"/progress", p1Token, map[string]interface{}{
		"description": "Frame assembled, drawers next",
		"hoursSpent":  1.5,
	})

	s.expect(http.StatusOK, http.MethodPost, "/api/v1/tasks/"+taskID+"/complete", p1Token, nil)

	task = s.expect(http.StatusOK, http.MethodPost, "/api/v1/tasks/"+taskID+"/reject", userToken, nil)
	if task["status"] != "IN_PROGRESS" || task["completedAt"] != nil {
		t.Fatalf("expected IN_PROGRESS without completedAt, got %v/%v", task["status"], task["completedAt"])
	}

	s.expect(http.StatusOK, http.MethodPost, "/api/v1/tasks/"+taskID+"/complete", p1Token, nil)

	task = s.expect(http.StatusOK, http.MethodPost, "/api/v1/tasks/"+taskID+"/accept", userToken, nil)
	if task["status"] != "TASK_COMPLETED" || task["completedAt"] == nil {
		t.Fatalf("expected TASK_COMPLETED with completedAt, got %v/%v", task["status"], task["completedAt"])
	}

	progress := s.expect(http.StatusOK, http.MethodGet, "/api/v1/tasks/"+taskID+"/progress", userToken, nil)
	if progress["count"].(float64) != 1 {
		t.Errorf("expected 1 progress entry, got %v", progress["count"])
	}

	byProvider := s.expect(http.StatusOK, http.MethodGet, "/api/v1/tasks/provider/"+p1ID, userToken, nil)
	if byProvider["count"].(float64) != 1 {
		t.Errorf("expected 1 task for provider, got %v", byProvider["count"])
	}
}

func TestHTTP_AccountsAndSkills(t *testing.T) {
	s := newTestServer(t)

	providerID, token := s.signupAndLogin("/api/v1/providers", "acme@example.com", map[string]interface{}{
		"providerType":      "COMPANY",
		"companyName":       "Acme",
		"businessTaxNumber": "AB12345678",
	})

	s.expect(http.StatusConflict, http.MethodPost, "/api/v1/users", "", map[string]interface{}{
		"email":        "acme@example.com",
		"password":     "whatever1",
		"firstName":    "Sam",
		"lastName":     "Taylor",
		"mobileNumber": "0412345678",
	})

	s.expect(http.StatusUnauthorized, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "acme@example.com",
		"password": "wrong-password",
	})

	skill := s.expect(http.StatusCreated, http.MethodPost, "/api/v1/skills", token, map[string]interface{}{
		"category":   "cleaning",
		"experience": 2,
		"workNature": "onsite",
		"hourlyRate": "30",
		"currency":   "SGD",
	})
	skillID := skill["id"].(string)

	listed := s.expect(http.StatusOK, http.MethodGet, "/api/v1/skills?category=cleaning", token, nil)
	if listed["count"].(float64) != 1 {
		t.Errorf("expected 1 skill, got %v", listed["count"])
	}

	byCategory := s.expect(http.StatusOK, http.MethodGet, "/api/v1/skills/category/cleaning", token, nil)
	if byCategory["count"].(float64) != 1 {
		t.Errorf("expected 1 cleaning skill, got %v", byCategory["count"])
	}
	empty := s.expect(http.StatusOK, http.MethodGet, "/api/v1/skills/category/plumbing", token, nil)
	if empty["count"].(float64) != 0 {
		t.Errorf("expected no plumbing skills, got %v", empty["count"])
	}

	s.expect(http.StatusOK, http.MethodGet, "/api/v1/skills/provider/"+providerID, token, nil)
	s.expect(http.StatusNotFound, http.MethodGet, "/api/v1/skills/provider/unknown", token, nil)
	s.expect(http.StatusNoContent, http.MethodDelete, "/api/v1/skills/"+skillID, token, nil)
	s.expect(http.StatusNotFound, http.MethodGet, "/api/v1/skills/"+skillID, token, nil)
}

func TestHTTP_CurrentAccount(t *testing.T) {
	s := newTestServer(t)

	userID, userToken := s.signupAndLogin("/api/v1/users", "owner@example.com", nil)
	providerID, providerToken := s.signupAndLogin("/api/v1/providers", "p1@example.com", map[string]interface{}{"providerType": "INDIVIDUAL"})

	s.expect(http.StatusUnauthorized, http.MethodGet, "/api/v1/auth/me", "", nil)

	me := s.expect(http.StatusOK, http.MethodGet, "/api/v1/auth/me", userToken, nil)
	if me["id"] != userID || me["email"] != "owner@example.com" || me["fullName"] != "Sam Taylor" || me["role"] != "USER" {
		t.Errorf("unexpected user account: %v", me)
	}
	if _, leaked := me["passwordHash"]; leaked {
		t.Error("password hash must not be exposed")
	}

	me = s.expect(http.StatusOK, http.MethodGet, "/api/v1/auth/me", providerToken, nil)
	if me["id"] != providerID || me["role"] != "PROVIDER" {
		t.Errorf("unexpected provider account: %v", me)
	}

	profile := s.expect(http.StatusOK, http.MethodGet, "/api/v1/providers/me", providerToken, nil)
	if profile["id"] != providerID || profile["providerType"] != "INDIVIDUAL" {
		t.Errorf("unexpected provider profile: %v", profile)
	}

	s.expect(http.StatusForbidden, http.MethodGet, "/api/v1/providers/me", userToken, nil)
}

func TestHTTP_SignupPasswordTooLong(t *testing.T) {
	s := newTestServer(t)

	s.expect(http.StatusBadRequest, http.MethodPost, "/api/v1/users", "", map[string]interface{}{
		"email":        "long@example.com",
		"password":     strings.Repeat("a", 80),
		"firstName":    "Sam",
		"lastName":     "Taylor",
		"mobileNumber": "0412345678",
	})
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	health := s.expect(http.StatusOK, http.MethodGet, "/health", "", nil)
	if health["database"] != "ok" {
		t.Errorf("expected database ok, got %v", health["database"])
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte("skill_market_http_requests_total")) {
		t.Errorf("expected metrics exposition, got %d", rec.Code)
	}
}

func TestHTTP_InvalidJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBufferString("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
