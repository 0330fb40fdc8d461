package http

import (
	"errors"
	"net/http"

	auth "github.com/mind-engage/uc-planner/internal/auth/middleware"
	"github.com/mind-engage/uc-planner/internal/users"
	"github.com/mind-engage/uc-planner/internal/validation"
)

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// POST /users/change-password
func ChangePasswordHandler(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			writeErr(w, http.StatusUnauthorized, "unauthorized", codeUnauthorized)
			return
		}
		var req changePasswordReq
		if !decodeJSON(w, r, &req) {
			return
		}
		err := svc.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword)
		var ve *validation.Error
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.As(err, &ve):
			writeInvalid(w, err, "")
		case errors.Is(err, users.ErrNotFound):
			writeErr(w, http.StatusNotFound, "user not found", codeNotFound)
		case errors.Is(err, users.ErrWrongPassword):
			writeErr(w, http.StatusForbidden, "incorrect old password", codeForbidden)
		default:
			writeFailure(w, r, err, "Failed to change password")
		}
	}
}
