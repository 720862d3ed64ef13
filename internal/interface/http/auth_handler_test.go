package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/api/internal/application"
	"github.com/devconnect/api/internal/domain/entity"
	"github.com/devconnect/api/internal/domain/repository"
	"github.com/devconnect/api/internal/interface/middleware"
	"github.com/devconnect/api/pkg/helpers"
	"github.com/devconnect/api/pkg/validation"
)

type fakeDirectory struct {
	mu      sync.Mutex
	users   map[string]*entity.User
	byEmail map[string]string
	seq     int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[string]*entity.User{}, byEmail: map[string]string{}}
}

func (d *fakeDirectory) Create(ctx context.Context, in repository.CreateUserInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byEmail[in.Email]; ok {
		return nil, repository.ErrDuplicateEmail
	}
	d.seq++
	u := &entity.User{
		ID:        "user-" + strconv.Itoa(d.seq),
		Name:      in.Name,
		Email:     in.Email,
		Password:  hash,
		Role:      in.Role,
		Status:    entity.StatusOffline,
		CreatedAt: time.Now(),
	}
	d.users[u.ID] = u
	d.byEmail[u.Email] = u.ID
	return u, nil
}

func (d *fakeDirectory) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d.users[id]
	return &cp, nil
}

func (d *fakeDirectory) GetByID(ctx context.Context, id string) (*entity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (d *fakeDirectory) UpdateStatus(ctx context.Context, id string, status entity.Status) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Status = status
	return nil
}

func (d *fakeDirectory) ListExcept(ctx context.Context, id string) ([]*entity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*entity.User
	for _, u := range d.users {
		if u.ID != id {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (d *fakeDirectory) UpdateProfile(ctx context.Context, id string, upd repository.ProfileUpdate) (*entity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Name != "" {
		u.Name = upd.Name
	}
	if upd.PhotoURL != "" {
		u.PhotoURL = upd.PhotoURL
	}
	if upd.Bio != "" {
		u.Bio = upd.Bio
	}
	if upd.Skills != nil {
		u.Skills = upd.Skills
	}
	cp := *u
	return &cp, nil
}

func (d *fakeDirectory) delete(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if u, ok := d.users[id]; ok {
		delete(d.byEmail, u.Email)
		delete(d.users, id)
	}
}

var _ repository.UserRepository = (*fakeDirectory)(nil)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*gin.Engine, *fakeDirectory, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	dir := newFakeDirectory()
	jwtm := helpers.NewJWTManager("handler-test-secret", time.Hour)
	svc := application.NewAuthService(dir, jwtm, nil, nil, nil, "", false)
	h := NewAuthHandler(svc, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/verify", middleware.Auth(jwtm), h.Verify)
	return r, dir, jwtm
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthFlow(t *testing.T) {
	r, _, _ := newTestServer(t)

	// Register: 201 with user and token.
	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"username":"a","email":"a@x.com","password":"p1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)

	var regData struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &regData))
	assert.NotEmpty(t, regData.Token)
	assert.Equal(t, "a@x.com", regData.User["email"])

	// Login with the right password: 200, role defaults to client.
	w = doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"p1"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	var loginData struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginData))
	assert.NotEmpty(t, loginData.Token)
	assert.Equal(t, "client", loginData.User["role"])

	// Wrong password: 401 invalid credentials.
	w = doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")

	// Registering the same email again: 400 duplicate.
	w = doJSON(r, http.MethodPost, "/api/auth/register",
		`{"username":"b","email":"a@x.com","password":"p2"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestLoginUnknownEmailSameShapeAsWrongPassword(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"username":"a","email":"a@x.com","password":"p1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPwd := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"nope"}`, "")
	unknown := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@x.com","password":"p1"}`, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPwd.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)

	var a, b envelope
	require.NoError(t, json.Unmarshal(wrongPwd.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(unknown.Body.Bytes(), &b))
	assert.Equal(t, a.Message, b.Message, "responses must not reveal whether the email exists")
}

func TestRegisterInvalidPayload(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"username":"a","email":"not-an-email","password":"p1"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")
}

func TestVerifyEndpoint(t *testing.T) {
	r, dir, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"username":"a","email":"a@x.com","password":"p1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var regData struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &regData))

	// Valid token: 200 with the current account.
	w = doJSON(r, http.MethodGet, "/api/auth/verify", "", regData.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)

	// No token: rejected by the middleware.
	w = doJSON(r, http.MethodGet, "/api/auth/verify", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Account deleted after issuance: token still verifies, account is gone.
	dir.delete(regData.User["id"].(string))
	w = doJSON(r, http.MethodGet, "/api/auth/verify", "", regData.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestResponsesNeverContainPasswordFields(t *testing.T) {
	r, _, _ := newTestServer(t)

	reg := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"username":"a","email":"a@x.com","password":"sup3rsecret"}`, "")
	require.Equal(t, http.StatusCreated, reg.Code)

	login := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"sup3rsecret"}`, "")
	require.Equal(t, http.StatusOK, login.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(reg.Body.Bytes(), &env))
	var regData struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &regData))

	verify := doJSON(r, http.MethodGet, "/api/auth/verify", "", regData.Token)
	require.Equal(t, http.StatusOK, verify.Code)

	for _, body := range []string{reg.Body.String(), login.Body.String(), verify.Body.String()} {
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "sup3rsecret")
		assert.NotContains(t, body, "$2a$")
	}
}
