package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xavierca1/formapro-console/internal/usecase"
)

var (
	ErrBadToken     = errors.New("jeton invalide")
	ErrRevokedToken = errors.New("jeton révoqué")
)

// Claims mirrors the CMS user tokens: the user id lives in "id".
type Claims struct {
	UserID any `json:"id"`
	jwt.RegisteredClaims
}

func (c *Claims) Actor() string {
	switch id := c.UserID.(type) {
	case nil:
		return c.RegisteredClaims.Subject
	case float64:
		return fmt.Sprintf("%.0f", id)
	default:
		return fmt.Sprint(id)
	}
}

// Authenticator verifies HS256 tokens signed by the CMS and tracks logouts.
type Authenticator struct {
	secret []byte

	mu      sync.Mutex
	revoked map[string]time.Time // token -> expiry
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret), revoked: map[string]time.Time{}}
}

func (a *Authenticator) Parse(raw string) (*Claims, error) {
	if len(a.secret) == 0 {
		return nil, ErrBadToken
	}
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	if a.isRevoked(raw) {
		return nil, ErrRevokedToken
	}
	return c, nil
}

// Revoke rejects raw until its own expiry (or for 24h when it has none).
// Tokens that do not parse are already rejected and are not stored.
func (a *Authenticator) Revoke(raw string) {
	c, err := a.Parse(raw)
	if err != nil {
		return
	}
	exp := time.Now().Add(24 * time.Hour)
	if c.ExpiresAt != nil {
		exp = c.ExpiresAt.Time
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.revoked[raw] = exp
}

// Cleanup drops expired revocations every minute until ctx is done.
func (a *Authenticator) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.purge(time.Now())
		}
	}
}

func (a *Authenticator) purge(now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for tok, until := range a.revoked {
		if now.After(until) {
			delete(a.revoked, tok)
		}
	}
}

func (a *Authenticator) isRevoked(raw string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	until, ok := a.revoked[raw]
	return ok && time.Now().Before(until)
}

// Handler rejects requests without a valid bearer token and stores the user
// id on the request context for the use cases.
func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" {
			unauthorized(w, "authentification requise")
			return
		}
		claims, err := a.Parse(raw)
		if err != nil {
			unauthorized(w, "jeton invalide ou expiré")
			return
		}
		ctx := usecase.WithActor(r.Context(), claims.Actor())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "UNAUTHORIZED", "message": msg})
}

// Optional attaches the actor when a valid token is sent and lets anonymous
// requests through (public booking form).
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := BearerToken(r); raw != "" {
			if claims, err := a.Parse(raw); err == nil {
				r = r.WithContext(usecase.WithActor(r.Context(), claims.Actor()))
			}
		}
		next.ServeHTTP(w, r)
	})
}
