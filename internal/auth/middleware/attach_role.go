package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/mind-engage/uc-planner/internal/rbac"
	"github.com/mind-engage/uc-planner/internal/users"
)

// UserLookup is the part of the user store the role refresh needs.
type UserLookup interface {
	Get(ctx context.Context, id int64) (users.User, error)
}

// AttachRoleFromStore replaces the token's role with the stored one, so role
// changes apply before the token expires. Tokens for deleted users are
// rejected.
func AttachRoleFromStore(store UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id, ok := UserIDFromContext(ctx)
			if !ok {
				jsonError(w, http.StatusUnauthorized, "bad token", "unauthorized")
				return
			}
			u, err := store.Get(ctx, id)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, u.Role)))
			case errors.Is(err, users.ErrNotFound):
				jsonError(w, http.StatusUnauthorized, "unknown user", "unauthorized")
			default:
				log.Printf("auth: load user %d: %v", id, err)
				jsonError(w, http.StatusInternalServerError, "Failed to load user", "internal_error")
			}
		})
	}
}
