package auth_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/logger"
	"storefront/internal/modules/auth"
	"storefront/internal/pkg/jwt"
	"storefront/internal/repository"
	"storefront/internal/session"
	"storefront/internal/session/sessiontest"
	"storefront/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type authPayload struct {
	Message string          `json:"message"`
	User    auth.UserPublic `json:"user"`
}

type fixture struct {
	router  *gin.Engine
	store   *sessiontest.MemoryStore
	manager *session.Manager
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	store := sessiontest.NewMemoryStore()
	manager := session.NewManager(
		jwt.New("access-secret", 15*time.Minute),
		jwt.New("refresh-secret", 7*24*time.Hour),
		store,
		session.CookieOptions{Secure: true, SameSite: http.SameSiteStrictMode, Path: "/"},
		logger.Discard(),
	)

	svc := auth.NewService(repository.NewUserRepository(db), manager, logger.Discard())
	h := auth.NewHandler(svc, manager, logger.Discard(), false)

	r := gin.New()
	api := r.Group("/api")
	h.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(func(c *gin.Context) {
		userID, err := manager.Verify(session.AccessTokenFromRequest(c.Request))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("user_id", userID)
		c.Next()
	})
	h.RegisterProtectedRoutes(protected)

	return &fixture{router: r, store: store, manager: manager}
}

func (f *fixture) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func signup(t *testing.T, f *fixture, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return f.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Test User", "email": email, "password": password,
	})
}

func TestSignup_CreatesUserAndSession(t *testing.T) {
	f := setup(t)

	w := signup(t, f, "new@example.com", "secret1")
	require.Equal(t, http.StatusCreated, w.Code)

	env := decode(t, w)
	assert.True(t, env.Success)
	var payload authPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "User created successfully", payload.Message)
	assert.Equal(t, "new@example.com", payload.User.Email)
	assert.Equal(t, "customer", payload.User.Role)
	assert.NotEmpty(t, payload.User.ID)

	access := cookieNamed(w, session.AccessCookieName)
	refresh := cookieNamed(w, session.RefreshCookieName)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.Equal(t, 900, access.MaxAge)
	assert.Equal(t, 604800, refresh.MaxAge)
	assert.True(t, refresh.HttpOnly)

	stored, ok := f.store.Token(payload.User.ID)
	require.True(t, ok)
	assert.Equal(t, refresh.Value, stored)
}

func TestSignup_DuplicateEmailConflict(t *testing.T) {
	f := setup(t)

	require.Equal(t, http.StatusCreated, signup(t, f, "dup@example.com", "secret1").Code)

	w := signup(t, f, "dup@example.com", "secret2")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_EXISTS", decode(t, w).Error.Code)
}

func TestSignup_ValidationError(t *testing.T) {
	f := setup(t)

	w := signup(t, f, "bad-email", "secret1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
	assert.Nil(t, cookieNamed(w, session.RefreshCookieName))
}

func TestSignup_StoreDownReturnsUnavailable(t *testing.T) {
	f := setup(t)
	f.store.Err = errors.New("connection refused")

	w := signup(t, f, "down@example.com", "secret1")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "SESSION_STORE_UNAVAILABLE", decode(t, w).Error.Code)
	assert.Nil(t, cookieNamed(w, session.AccessCookieName))
}

func TestLogin_UnknownUser(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com", "password": "P@ssw0rd"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
	assert.Equal(t, "Invalid email or password", env.Error.Message)
	assert.Equal(t, 0, f.store.Calls())
}

func TestLogin_WrongPasswordLeavesStoreUntouched(t *testing.T) {
	f := setup(t)
	require.Equal(t, http.StatusCreated, signup(t, f, "a@b.com", "P@ssw0rd").Code)
	before := f.store.Calls()

	w := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, before, f.store.Calls())
	assert.Nil(t, cookieNamed(w, session.RefreshCookieName))
}

func TestLogin_ReplacesStoredRefreshToken(t *testing.T) {
	f := setup(t)
	first := signup(t, f, "a@b.com", "P@ssw0rd")
	require.Equal(t, http.StatusCreated, first.Code)
	oldRefresh := cookieNamed(first, session.RefreshCookieName)

	w := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com", "password": "P@ssw0rd"})
	require.Equal(t, http.StatusOK, w.Code)

	var payload authPayload
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &payload))
	assert.Equal(t, "Login successful", payload.Message)

	newRefresh := cookieNamed(w, session.RefreshCookieName)
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, oldRefresh.Value, newRefresh.Value)

	stored, _ := f.store.Token(payload.User.ID)
	assert.Equal(t, newRefresh.Value, stored)

	// the superseded token no longer refreshes
	w = f.do(t, http.MethodPost, "/api/auth/refresh-token", nil, oldRefresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_WithoutCookie(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload authPayload
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &payload))
	assert.Equal(t, "Logged out successfully", payload.Message)
	assert.Equal(t, 0, f.store.Calls())

	cleared := cookieNamed(w, session.RefreshCookieName)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestLogout_GarbageCookieStillSucceeds(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/api/auth/logout", nil, &http.Cookie{Name: session.RefreshCookieName, Value: "garbage"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, f.store.Calls())
}

func TestLogout_RevokesRecord(t *testing.T) {
	f := setup(t)
	s := signup(t, f, "a@b.com", "P@ssw0rd")
	var payload authPayload
	require.NoError(t, json.Unmarshal(decode(t, s).Data, &payload))
	refresh := cookieNamed(s, session.RefreshCookieName)

	w := f.do(t, http.MethodPost, "/api/auth/logout", nil, refresh)
	require.Equal(t, http.StatusOK, w.Code)

	_, ok := f.store.Token(payload.User.ID)
	assert.False(t, ok)

	w = f.do(t, http.MethodPost, "/api/auth/refresh-token", nil, refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshToken_Rotates(t *testing.T) {
	f := setup(t)
	s := signup(t, f, "a@b.com", "P@ssw0rd")
	refresh := cookieNamed(s, session.RefreshCookieName)

	w := f.do(t, http.MethodPost, "/api/auth/refresh-token", nil, refresh)
	require.Equal(t, http.StatusOK, w.Code)

	rotated := cookieNamed(w, session.RefreshCookieName)
	require.NotNil(t, rotated)
	assert.NotEqual(t, refresh.Value, rotated.Value)
	require.NotNil(t, cookieNamed(w, session.AccessCookieName))

	// old token is single use
	w = f.do(t, http.MethodPost, "/api/auth/refresh-token", nil, refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshToken_Missing(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/api/auth/refresh-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, f.store.Calls())
}

func TestProfile(t *testing.T) {
	f := setup(t)
	s := signup(t, f, "me@example.com", "P@ssw0rd")
	access := cookieNamed(s, session.AccessCookieName)

	w := f.do(t, http.MethodGet, "/api/auth/profile", nil, access)
	require.Equal(t, http.StatusOK, w.Code)

	var payload authPayload
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &payload))
	assert.Equal(t, "me@example.com", payload.User.Email)

	w = f.do(t, http.MethodGet, "/api/auth/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
