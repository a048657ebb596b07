package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/xavierca1/formapro-console/internal/infra/http/middleware"
	"github.com/xavierca1/formapro-console/internal/infra/integration/cms"
)

type CMSAuthenticator interface {
	Login(ctx context.Context, identifier, password string) (*cms.AuthResult, error)
}

type TokenRevoker interface {
	Revoke(raw string)
}

type AuthHandler struct {
	CMS    CMSAuthenticator
	Tokens TokenRevoker
}

func NewAuthHandler(c CMSAuthenticator, tokens TokenRevoker) *AuthHandler {
	return &AuthHandler{CMS: c, Tokens: tokens}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler (POST /auth/login)
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON invalide")
		return
	}
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "email et mot de passe requis")
		return
	}

	res, err := h.CMS.Login(r.Context(), input.Email, input.Password)
	if errors.Is(err, cms.ErrInvalidCredentials) {
		writeErrorResponse(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "identifiants invalides")
		return
	}
	if err != nil {
		log.Printf("❌ [AUTH] connexion CMS impossible: %v", err)
		writeErrorResponse(w, http.StatusBadGateway, "CMS_UNAVAILABLE", "service d'authentification indisponible")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// LogoutHandler (POST /auth/logout) revokes the bearer token locally.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if raw := middleware.BearerToken(r); raw != "" {
		h.Tokens.Revoke(raw)
	}
	w.WriteHeader(http.StatusNoContent)
}
