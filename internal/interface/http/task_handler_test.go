package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) ExistsByUsername(username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.Username] = &cp
	return nil
}

type memTaskRepo struct {
	tasks map[string]*entity.Task
}

func (r *memTaskRepo) GetByID(id string) (*entity.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTaskRepo) ListByUser(userID string) ([]*entity.Task, error) {
	out := make([]*entity.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memTaskRepo) Create(t *entity.Task) error {
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *memTaskRepo) Update(t *entity.Task) error {
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *memTaskRepo) Delete(id string) error {
	delete(r.tasks, id)
	return nil
}

type testApp struct {
	engine   *gin.Engine
	tokens   *helpers.TokenManager
	taskRepo *memTaskRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	userRepo := &memUserRepo{users: map[string]*entity.User{}}
	taskRepo := &memTaskRepo{tasks: map[string]*entity.Task{}}
	authSvc := application.NewAuthService(userRepo, tokens, nil)
	taskSvc := application.NewTaskService(taskRepo, nil)

	r := gin.New()
	api := r.Group("/api")

	ah := NewAuthHandler(authSvc, nil)
	api.POST("/auth/register", ah.Register)
	api.POST("/auth/login", ah.Login)

	th := NewTaskHandler(taskSvc, nil)
	todos := api.Group("/todos")
	todos.Use(middleware.Auth(tokens))
	todos.GET("", th.List)
	todos.POST("", th.Create)
	todos.POST("/bulk/complete", th.BulkToggle)
	todos.DELETE("/bulk/delete", th.BulkDelete)
	todos.PUT("/:id", th.Update)
	todos.PATCH("/:id/toggle", th.Toggle)
	todos.PATCH("/:id/archive", th.Archive)
	todos.DELETE("/:id", th.Delete)

	return &testApp{engine: r, tokens: tokens, taskRepo: taskRepo}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) tokenFor(t *testing.T, username string) string {
	t.Helper()
	token, _, err := a.tokens.Issue(username)
	require.NoError(t, err)
	return token
}

func TestTaskRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/todos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/todos", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterConflictAndLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)

	// unknown user and wrong password both come back as a plain 401
	w = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "nobody", "password": "secret1"})
	unknown := w.Body.String()
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, stripTimestamps(t, unknown), stripTimestamps(t, w.Body.String()))
}

// stripTimestamps zeroes the per-request envelope fields so two error
// bodies can be compared structurally.
func stripTimestamps(t *testing.T, body string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	delete(m, "timestamp")
	delete(m, "request_id")
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return string(b)
}

func TestCreateTaskDefaults(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, "alice")

	w := app.do(t, http.MethodPost, "/api/todos", token, gin.H{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data entity.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Data.UserID)
	assert.Equal(t, "medium", resp.Data.Priority)
	assert.False(t, resp.Data.Completed)
	assert.False(t, resp.Data.Archived)
	assert.NotEmpty(t, resp.Data.ID)
}

func TestCreateTaskValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, "alice")

	w := app.do(t, http.MethodPost, "/api/todos", token, gin.H{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/todos", token, gin.H{"title": "x", "priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForbiddenLooksLikeNotFound(t *testing.T) {
	app := newTestApp(t)
	alice := app.tokenFor(t, "alice")
	bob := app.tokenFor(t, "bob")

	w := app.do(t, http.MethodPost, "/api/todos", alice, gin.H{"title": "Alice's task"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data entity.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.ID

	missing := app.do(t, http.MethodPatch, "/api/todos/no-such-id/toggle", bob, nil)
	notOwner := app.do(t, http.MethodPatch, "/api/todos/"+id+"/toggle", bob, nil)

	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, http.StatusNotFound, notOwner.Code)
	assert.JSONEq(t, stripTimestamps(t, missing.Body.String()), stripTimestamps(t, notOwner.Body.String()))

	// alice still owns the untouched task
	stored, err := app.taskRepo.GetByID(id)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
}

func TestDeleteResponseShape(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, "alice")

	w := app.do(t, http.MethodPost, "/api/todos", token, gin.H{"title": "temp"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data entity.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = app.do(t, http.MethodDelete, "/api/todos/"+created.Data.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	w = app.do(t, http.MethodGet, "/api/todos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Data []entity.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Data)
}

func TestBulkEndpointsReturncounts(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, "alice")

	w := app.do(t, http.MethodPost, "/api/todos", token, gin.H{"title": "one"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data entity.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = app.do(t, http.MethodDelete, "/api/todos/bulk/delete", token, gin.H{"taskIds": []string{created.Data.ID, "missing"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data application.BulkResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.SuccessCount)
	assert.Equal(t, 1, resp.Data.FailCount)
}
