package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tres-colores-api/internal/api"
	"github.com/tres-colores-api/internal/config"
	"github.com/tres-colores-api/internal/mocks"
	"github.com/tres-colores-api/internal/models"
	"github.com/tres-colores-api/internal/repository"
	"github.com/tres-colores-api/internal/service"
)

type testEnv struct {
	router   *gin.Engine
	users    *mocks.MockUserRepository
	events   *mocks.MockEventRepository
	comments *mocks.MockCommentRepository
}

func setupTestRouter() *testEnv {
	gin.SetMode(gin.TestMode)

	mockUsers := mocks.NewMockUserRepository()
	mockEvents := mocks.NewMockEventRepository()
	mockComments := mocks.NewMockCommentRepository()

	repos := &repository.Repositories{
		User:    mockUsers,
		Event:   mockEvents,
		Comment: mockComments,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Auth:   config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
	}

	log := zerolog.Nop()
	services := service.NewServices(repos, cfg, log)
	router := api.NewRouter(services, repos, cfg, log)

	return &testEnv{router: router, users: mockUsers, events: mockEvents, comments: mockComments}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its token
func (e *testEnv) register(t *testing.T, email, name string) string {
	t.Helper()
	w := e.request(t, "POST", "/v1/auth/register", "", models.RegisterRequest{
		Email:    email,
		Name:     name,
		Password: "contrasena123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register returned %d: %s", w.Code, w.Body.String())
	}
	var resp models.AuthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Token
}

// registerAdmin creates an account, promotes it in the store, and logs in
// again so the token carries the admin role
func (e *testEnv) registerAdmin(t *testing.T, email, name string) string {
	t.Helper()
	e.register(t, email, name)
	e.users.Users[email].Role = models.RoleAdmin

	w := e.request(t, "POST", "/v1/auth/login", "", models.LoginRequest{
		Email:    email,
		Password: "contrasena123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Login returned %d: %s", w.Code, w.Body.String())
	}
	var resp models.AuthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Token
}

func (e *testEnv) seedEvent(id string) {
	e.events.Create(context.Background(), &models.Event{
		ID:        id,
		Title:     "Evento",
		Year:      1810,
		CreatedAt: time.Now(),
	})
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter()

	w := env.request(t, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "tres-colores-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.seedEvent("grito-independencia_bogota")
	env.register(t, "ana@x.com", "Ana")

	w := env.request(t, "GET", "/metrics", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	db := response["database"].(map[string]interface{})
	if db["events"].(float64) != 1 {
		t.Errorf("Expected 1 event, got %v", db["events"])
	}
	if db["users"].(float64) != 1 {
		t.Errorf("Expected 1 user, got %v", db["users"])
	}
}

func TestRegisterEndpoint(t *testing.T) {
	env := setupTestRouter()

	// Bad payload
	w := env.request(t, "POST", "/v1/auth/register", "", models.RegisterRequest{Email: "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid input, got %d", w.Code)
	}

	env.register(t, "ana@x.com", "Ana")

	// Duplicate email
	w = env.request(t, "POST", "/v1/auth/register", "", models.RegisterRequest{
		Email: "ana@x.com", Name: "Ana", Password: "contrasena123",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate email, got %d", w.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.register(t, "ana@x.com", "Ana")

	w := env.request(t, "POST", "/v1/auth/login", "", models.LoginRequest{Email: "ana@x.com", Password: "mal"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", w.Code)
	}

	w = env.request(t, "POST", "/v1/auth/login", "", models.LoginRequest{Email: "ana@x.com", Password: "contrasena123"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitCommentEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.seedEvent("grito-independencia_bogota")
	token := env.register(t, "ana@x.com", "Ana")

	// Anonymous submission is rejected before it reaches the engine
	w := env.request(t, "POST", "/v1/comments", "", models.SubmitCommentRequest{
		EventID: "grito-independencia_bogota", Body: "Gran relato",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	w = env.request(t, "POST", "/v1/comments", token, models.SubmitCommentRequest{
		EventID: "grito-independencia_bogota", Body: "Gran relato",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["id"] == "" {
		t.Error("Expected comment id in response")
	}
	if resp["status"] != models.StatusPending {
		t.Errorf("Expected pending status, got %v", resp["status"])
	}

	// Missing body
	w = env.request(t, "POST", "/v1/comments", token, models.SubmitCommentRequest{
		EventID: "grito-independencia_bogota",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty body, got %d", w.Code)
	}
}

func TestCommentVisibilityEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.seedEvent("grito-independencia_bogota")
	anaToken := env.register(t, "ana@x.com", "Ana")
	brunoToken := env.register(t, "bruno@x.com", "Bruno")
	adminToken := env.registerAdmin(t, "mod@x.com", "Mod")

	submit := func(body string) string {
		w := env.request(t, "POST", "/v1/comments", anaToken, models.SubmitCommentRequest{
			EventID: "grito-independencia_bogota", Body: body,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("Submit returned %d", w.Code)
		}
		var resp map[string]string
		json.Unmarshal(w.Body.Bytes(), &resp)
		time.Sleep(time.Millisecond)
		return resp["id"]
	}

	submit("pendiente")
	approvedID := submit("aprobado")
	rejectedID := submit("rechazado")

	w := env.request(t, "POST", "/v1/comments/"+approvedID+"/decision", adminToken, models.DecisionRequest{Decision: "approve"})
	if w.Code != http.StatusOK {
		t.Fatalf("Approve returned %d: %s", w.Code, w.Body.String())
	}
	w = env.request(t, "POST", "/v1/comments/"+rejectedID+"/decision", adminToken, models.DecisionRequest{Decision: "reject"})
	if w.Code != http.StatusOK {
		t.Fatalf("Reject returned %d: %s", w.Code, w.Body.String())
	}

	listCount := func(token string) int {
		w := env.request(t, "GET", "/v1/comments?eventId=grito-independencia_bogota", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("List returned %d", w.Code)
		}
		var resp struct {
			Count int `json:"count"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		return resp.Count
	}

	if n := listCount(""); n != 1 {
		t.Errorf("Anonymous viewer: expected 1 comment, got %d", n)
	}
	if n := listCount(brunoToken); n != 1 {
		t.Errorf("Other user: expected 1 comment, got %d", n)
	}
	if n := listCount(anaToken); n != 3 {
		t.Errorf("Author: expected 3 comments, got %d", n)
	}
	if n := listCount(adminToken); n != 3 {
		t.Errorf("Moderator: expected 3 comments, got %d", n)
	}
}

func TestModerationQueueEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.seedEvent("grito-independencia_bogota")
	anaToken := env.register(t, "ana@x.com", "Ana")
	adminToken := env.registerAdmin(t, "mod@x.com", "Mod")

	env.request(t, "POST", "/v1/comments", anaToken, models.SubmitCommentRequest{
		EventID: "grito-independencia_bogota", Body: "hola",
	})

	w := env.request(t, "GET", "/v1/comments/moderation-queue", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for anonymous, got %d", w.Code)
	}

	w = env.request(t, "GET", "/v1/comments/moderation-queue", anaToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-admin, got %d", w.Code)
	}

	w = env.request(t, "GET", "/v1/comments/moderation-queue", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for admin, got %d", w.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 1 {
		t.Errorf("Expected 1 queued comment, got %d", resp.Count)
	}
}

func TestDecisionEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.seedEvent("grito-independencia_bogota")
	anaToken := env.register(t, "ana@x.com", "Ana")
	adminToken := env.registerAdmin(t, "mod@x.com", "Mod")

	w := env.request(t, "POST", "/v1/comments/nonexistent/decision", adminToken, models.DecisionRequest{Decision: "approve"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown comment, got %d", w.Code)
	}

	sw := env.request(t, "POST", "/v1/comments", anaToken, models.SubmitCommentRequest{
		EventID: "grito-independencia_bogota", Body: "hola",
	})
	var created map[string]string
	json.Unmarshal(sw.Body.Bytes(), &created)
	id := created["id"]

	w = env.request(t, "POST", "/v1/comments/"+id+"/decision", adminToken, models.DecisionRequest{Decision: "publish"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown decision, got %d", w.Code)
	}

	w = env.request(t, "POST", "/v1/comments/"+id+"/decision", anaToken, models.DecisionRequest{Decision: "approve"})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-admin, got %d", w.Code)
	}

	w = env.request(t, "POST", "/v1/comments/"+id+"/decision", adminToken, models.DecisionRequest{Decision: "approve"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Deciding twice conflicts
	w = env.request(t, "POST", "/v1/comments/"+id+"/decision", adminToken, models.DecisionRequest{Decision: "reject"})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 re-deciding, got %d", w.Code)
	}
}

func TestEditEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.seedEvent("grito-independencia_bogota")
	anaToken := env.register(t, "ana@x.com", "Ana")
	brunoToken := env.register(t, "bruno@x.com", "Bruno")
	adminToken := env.registerAdmin(t, "mod@x.com", "Mod")

	sw := env.request(t, "POST", "/v1/comments", anaToken, models.SubmitCommentRequest{
		EventID: "grito-independencia_bogota", Body: "hola",
	})
	var created map[string]string
	json.Unmarshal(sw.Body.Bytes(), &created)
	id := created["id"]

	env.request(t, "POST", "/v1/comments/"+id+"/decision", adminToken, models.DecisionRequest{Decision: "reject"})

	w := env.request(t, "PUT", "/v1/comments/"+id, brunoToken, models.EditCommentRequest{Body: "hack"})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for other user, got %d", w.Code)
	}

	w = env.request(t, "PUT", "/v1/comments/nonexistent", anaToken, models.EditCommentRequest{Body: "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown comment, got %d", w.Code)
	}

	w = env.request(t, "PUT", "/v1/comments/"+id, anaToken, models.EditCommentRequest{Body: "corregido"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var edited models.Comment
	json.Unmarshal(w.Body.Bytes(), &edited)
	if edited.Status != models.StatusPending {
		t.Errorf("Expected pending after edit, got %q", edited.Status)
	}
	if edited.Body != "corregido" {
		t.Errorf("Expected corrected body, got %q", edited.Body)
	}
}

func TestDeleteCommentEndpoint(t *testing.T) {
	env := setupTestRouter()
	env.seedEvent("grito-independencia_bogota")
	anaToken := env.register(t, "ana@x.com", "Ana")
	brunoToken := env.register(t, "bruno@x.com", "Bruno")

	w := env.request(t, "DELETE", "/v1/comments/nonexistent", anaToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown comment, got %d", w.Code)
	}

	sw := env.request(t, "POST", "/v1/comments", anaToken, models.SubmitCommentRequest{
		EventID: "grito-independencia_bogota", Body: "hola",
	})
	var created map[string]string
	json.Unmarshal(sw.Body.Bytes(), &created)
	id := created["id"]

	w = env.request(t, "DELETE", "/v1/comments/"+id, brunoToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for other user, got %d", w.Code)
	}

	w = env.request(t, "DELETE", "/v1/comments/"+id, anaToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for own delete, got %d", w.Code)
	}
}

func TestEventEndpoints(t *testing.T) {
	env := setupTestRouter()
	anaToken := env.register(t, "ana@x.com", "Ana")
	adminToken := env.registerAdmin(t, "mod@x.com", "Mod")

	create := models.CreateEventRequest{
		ID:    "batalla-boyaca",
		Title: "Batalla de Boyacá",
		Year:  1819,
	}

	w := env.request(t, "POST", "/v1/events", "", create)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for anonymous create, got %d", w.Code)
	}
	w = env.request(t, "POST", "/v1/events", anaToken, create)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-admin create, got %d", w.Code)
	}
	w = env.request(t, "POST", "/v1/events", adminToken, create)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Public reads
	w = env.request(t, "GET", "/v1/events", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 listing events, got %d", w.Code)
	}
	w = env.request(t, "GET", "/v1/events/batalla-boyaca", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 getting event, got %d", w.Code)
	}
	w = env.request(t, "GET", "/v1/events/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown event, got %d", w.Code)
	}

	w = env.request(t, "PUT", "/v1/events/batalla-boyaca", adminToken, models.UpdateEventRequest{Location: "Boyacá"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 updating event, got %d: %s", w.Code, w.Body.String())
	}

	w = env.request(t, "DELETE", "/v1/events/batalla-boyaca", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 deleting event, got %d", w.Code)
	}
}
