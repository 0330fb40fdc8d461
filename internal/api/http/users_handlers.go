package http

import (
	"net/http"

	"github.com/mind-engage/uc-planner/internal/users"
)

// GET /users?role=student
func ListUsersHandler(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := r.URL.Query().Get("role")
		switch role {
		case "", users.RoleStudent, users.RoleCounselor, users.RoleAdmin:
		default:
			writeErr(w, http.StatusBadRequest, "Invalid role", codeValidation)
			return
		}
		out, err := svc.List(r.Context(), role)
		if err != nil {
			writeFailure(w, r, err, "Failed to list users")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
