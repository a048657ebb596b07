package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/formapro-console/internal/infra/http/middleware"
	"github.com/xavierca1/formapro-console/internal/usecase"
)

const secret = "cms-secret"

func sign(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return raw
}

func validToken(t *testing.T) string {
	return sign(t, secret, jwt.MapClaims{"id": 7, "exp": time.Now().Add(time.Hour).Unix()})
}

func run(mw func(http.Handler) http.Handler, token string) (int, string) {
	var actor string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = usecase.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code, actor
}

func TestAuthenticatorAcceptsCMSToken(t *testing.T) {
	a := middleware.NewAuthenticator(secret)

	code, actor := run(a.Handler, validToken(t))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "7", actor)
}

func TestAuthenticatorRejects(t *testing.T) {
	a := middleware.NewAuthenticator(secret)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "abc"},
		{"wrong key", sign(t, "autre", jwt.MapClaims{"id": 7})},
		{"expired", sign(t, secret, jwt.MapClaims{"id": 7, "exp": time.Now().Add(-time.Minute).Unix()})},
		{"unsigned", func() string {
			raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 7}).
				SignedString(jwt.UnsafeAllowNoneSignatureType)
			require.NoError(t, err)
			return raw
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, actor := run(a.Handler, tt.token)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Empty(t, actor)
		})
	}
}

func TestRevokedTokenIsRejected(t *testing.T) {
	a := middleware.NewAuthenticator(secret)
	tok := validToken(t)

	a.Revoke(tok)
	code, _ := run(a.Handler, tok)
	assert.Equal(t, http.StatusUnauthorized, code)

	_, err := a.Parse(tok)
	assert.ErrorIs(t, err, middleware.ErrRevokedToken)

	code, _ = run(a.Handler, validTokenFor(t, 8))
	assert.Equal(t, http.StatusOK, code, "other tokens are unaffected")
}

func validTokenFor(t *testing.T, id int) string {
	return sign(t, secret, jwt.MapClaims{"id": id, "exp": time.Now().Add(time.Hour).Unix()})
}

func TestOptionalAuthentication(t *testing.T) {
	a := middleware.NewAuthenticator(secret)

	code, actor := run(a.Optional, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, actor)

	code, actor = run(a.Optional, "abc")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, actor)

	_, actor = run(a.Optional, validToken(t))
	assert.Equal(t, "7", actor)
}

func TestEmptySecretRejectsEverything(t *testing.T) {
	a := middleware.NewAuthenticator("")
	code, _ := run(a.Handler, sign(t, "x", jwt.MapClaims{"id": 1}))
	assert.Equal(t, http.StatusUnauthorized, code)
}
