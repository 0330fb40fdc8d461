package http

import (
	"errors"
	"net/http"

	auth "github.com/mind-engage/uc-planner/internal/auth/middleware"
	"github.com/mind-engage/uc-planner/internal/users"
	"github.com/mind-engage/uc-planner/internal/validation"
)

// POST /auth/register  { "username": "...", "password": "..." }
func RegisterHandler(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.Credentials
		if !decodeJSON(w, r, &req) {
			return
		}
		u, err := svc.Register(r.Context(), req)
		var ve *validation.Error
		switch {
		case errors.As(err, &ve):
			writeInvalid(w, err, "")
		case errors.Is(err, users.ErrUsernameTaken):
			writeErr(w, http.StatusConflict, "Username already exists", codeUsernameTaken)
		case err != nil:
			writeFailure(w, r, err, "Failed to register user")
		default:
			writeJSON(w, http.StatusCreated, u)
		}
	}
}

type loginResponse struct {
	AccessToken string     `json:"access_token"`
	User        users.User `json:"user"`
}

// POST /auth/login  { "username": "...", "password": "..." }
func LoginHandler(svc *users.Service, a *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.Credentials
		if !decodeJSON(w, r, &req) {
			return
		}
		u, err := svc.Authenticate(r.Context(), req)
		if errors.Is(err, users.ErrInvalidCredentials) {
			writeErr(w, http.StatusUnauthorized, "invalid credentials", codeInvalidCredentials)
			return
		}
		if err != nil {
			writeFailure(w, r, err, "Failed to log in")
			return
		}
		tok, err := a.IssueJWT(u.ID, u.Role)
		if err != nil {
			writeFailure(w, r, err, "Failed to issue token")
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{AccessToken: tok, User: u})
	}
}
