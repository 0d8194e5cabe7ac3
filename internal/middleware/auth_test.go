package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/logger"
	"storefront/internal/pkg/jwt"
	"storefront/internal/repository"
	"storefront/internal/session"
	"storefront/internal/session/sessiontest"
)

type stubUsers map[string]*domain.User

func (s stubUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func newVerifier(accessTTL time.Duration) *session.Manager {
	return session.NewManager(
		jwt.New("access-secret", accessTTL),
		jwt.New("refresh-secret", time.Hour),
		sessiontest.NewMemoryStore(),
		session.CookieOptions{Path: "/", SameSite: http.SameSiteStrictMode},
		logger.Discard(),
	)
}

func protectedRouter(t *testing.T, verifier TokenVerifier, users UserLookup, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(JWTAuth(verifier, users, logger.Discard()))
	router.Use(extra...)
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	return router
}

func TestJWTAuth_ValidCookie(t *testing.T) {
	m := newVerifier(time.Hour)
	users := stubUsers{"u-42": {ID: "u-42", Role: domain.RoleCustomer}}
	pair, err := m.Issue("u-42")
	require.NoError(t, err)

	router := protectedRouter(t, m, users)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessCookieName, Value: pair.AccessToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-42")
	assert.Contains(t, w.Body.String(), "customer")
}

func TestJWTAuth_BearerHeader(t *testing.T) {
	m := newVerifier(time.Hour)
	users := stubUsers{"u-1": {ID: "u-1", Role: domain.RoleAdmin}}
	pair, err := m.Issue("u-1")
	require.NoError(t, err)

	router := protectedRouter(t, m, users)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_NoToken(t *testing.T) {
	router := protectedRouter(t, newVerifier(time.Hour), stubUsers{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_MISSING")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := protectedRouter(t, newVerifier(time.Hour), stubUsers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessCookieName, Value: "invalid-jwt-here"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	m := newVerifier(-time.Minute)
	pair, err := m.Issue("u-1")
	require.NoError(t, err)

	router := protectedRouter(t, m, stubUsers{"u-1": {ID: "u-1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessCookieName, Value: pair.AccessToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuth_UnknownUser(t *testing.T) {
	m := newVerifier(time.Hour)
	pair, err := m.Issue("deleted-user")
	require.NoError(t, err)

	router := protectedRouter(t, m, stubUsers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessCookieName, Value: pair.AccessToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "USER_NOT_FOUND")
}

func TestAdminOnly(t *testing.T) {
	m := newVerifier(time.Hour)
	users := stubUsers{
		"admin":    {ID: "admin", Role: domain.RoleAdmin},
		"customer": {ID: "customer", Role: domain.RoleCustomer},
	}
	router := protectedRouter(t, m, users, AdminOnly())

	for id, want := range map[string]int{"admin": http.StatusOK, "customer": http.StatusForbidden} {
		pair, err := m.Issue(id)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: session.AccessCookieName, Value: pair.AccessToken})
		router.ServeHTTP(w, req)

		assert.Equal(t, want, w.Code, id)
	}
}

func TestCORS_PreflightAndOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"https://shop.example.com"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorLogger(logger.Discard(), false))
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
	assert.NotContains(t, w.Body.String(), "kaboom")
}
