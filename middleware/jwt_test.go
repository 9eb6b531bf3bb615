package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/relay/core/router"
	"github.com/relaykit/relay/middleware"
)

var jwtSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	require.NoError(t, err)
	return token
}

func jwtApp(cfg middleware.JWTConfig) router.Router {
	if cfg.SigningKey == nil {
		cfg.SigningKey = jwtSecret
	}
	return newApp(func(ctx *router.Context) error {
		claims, ok := middleware.GetClaims(ctx)
		if !ok {
			return ctx.String("no claims")
		}
		return ctx.String(claims["sub"].(string))
	},
		middleware.ErrorBoundaryWithConfig(middleware.ErrorBoundaryConfig{Logger: discard()}),
		middleware.JWTAuth(cfg),
	)
}

func authGet(r router.Router, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return perform(r, req)
}

func TestJWTValidToken(t *testing.T) {
	t.Parallel()

	r := jwtApp(middleware.JWTConfig{})
	token := signToken(t, jwt.MapClaims{"sub": "user-1"})

	w := authGet(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestJWTMissingToken(t *testing.T) {
	t.Parallel()

	r := jwtApp(middleware.JWTConfig{})
	w := authGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing bearer token")
}

func TestJWTInvalidSignature(t *testing.T) {
	t.Parallel()

	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).
		SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	r := jwtApp(middleware.JWTConfig{})
	w := authGet(r, other)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestJWTExpiredToken(t *testing.T) {
	t.Parallel()

	r := jwtApp(middleware.JWTConfig{})
	token := signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := authGet(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRejectsDisallowedAlgorithm(t *testing.T) {
	t.Parallel()

	// HS384-signed token against a parser restricted to HS256.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{"sub": "x"}).
		SignedString(jwtSecret)
	require.NoError(t, err)

	r := jwtApp(middleware.JWTConfig{})
	w := authGet(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRequiredRoles(t *testing.T) {
	t.Parallel()

	r := jwtApp(middleware.JWTConfig{RequiredRoles: []string{"admin", "auditor"}})

	t.Run("all roles present", func(t *testing.T) {
		t.Parallel()
		token := signToken(t, jwt.MapClaims{
			"sub":   "user-1",
			"roles": []string{"admin", "auditor", "viewer"},
		})
		w := authGet(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing role yields 403", func(t *testing.T) {
		t.Parallel()
		token := signToken(t, jwt.MapClaims{
			"sub":   "user-2",
			"roles": []string{"admin"},
		})
		w := authGet(r, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "auditor")
	})
}

func TestJWTRequiresSigningKey(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		middleware.JWTAuth(middleware.JWTConfig{})
	})
}
