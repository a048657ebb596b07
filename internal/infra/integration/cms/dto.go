package cms

import (
	"encoding/json"
	"fmt"

	"github.com/xavierca1/formapro-console/internal/entity"
)

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	JWT  string  `json:"jwt"`
	User cmsUser `json:"user"`
}

type cmsUser struct {
	ID       json.Number `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     *struct {
		Name string `json:"name"`
	} `json:"role,omitempty"`
}

// AuthResult is what a successful login hands back to the console.
type AuthResult struct {
	User  entity.User `json:"user"`
	Token string      `json:"token"`
}

type programmeEnvelope struct {
	Data *programmeData `json:"data"`
}

type programmeData struct {
	ID         json.Number         `json:"id"`
	Attributes programmeAttributes `json:"attributes"`
}

type programmeAttributes struct {
	Titre    string `json:"titre"`
	Slug     string `json:"slug"`
	Duree    string `json:"duree"`
	Niveau   string `json:"niveau"`
	Objectif string `json:"objectif"`
}

type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

func (u cmsUser) toEntity() entity.User {
	out := entity.User{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
	if u.Role != nil {
		out.Role = u.Role.Name
	}
	return out
}

func (d programmeData) toEntity() *entity.Programme {
	return &entity.Programme{
		ID:       d.ID.String(),
		Titre:    d.Attributes.Titre,
		Slug:     d.Attributes.Slug,
		Duree:    d.Attributes.Duree,
		Niveau:   d.Attributes.Niveau,
		Objectif: d.Attributes.Objectif,
	}
}

// APIError is a non-2xx answer of the CMS.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("CMS: statut %d: %s", e.Status, e.Message)
}
