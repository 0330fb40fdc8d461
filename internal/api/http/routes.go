package http

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/mind-engage/uc-planner/internal/auth/middleware"
	"github.com/mind-engage/uc-planner/internal/calc"
	"github.com/mind-engage/uc-planner/internal/contact"
	"github.com/mind-engage/uc-planner/internal/rbac"
	"github.com/mind-engage/uc-planner/internal/servicehours"
	syncx "github.com/mind-engage/uc-planner/internal/sync"
	"github.com/mind-engage/uc-planner/internal/users"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Hours       servicehours.Store
	Contact     *contact.Service
	Users       *users.Service
	Auth        *auth.AuthService
	Events      syncx.Log
	Concordance *calc.Concordance

	EnableLocalAuth bool
	RequireAuth     bool
	WPPrefix        string // empty disables the WordPress-compatible routes

	// Ready backs /readyz; nil means always ready.
	Ready func(context.Context) error
}

// hoursPaths names the service-hour routes under one prefix.
type hoursPaths struct {
	list, create, update, del string
	updateMethod              string
}

var (
	apiHoursPaths = hoursPaths{
		list:         "/service-hours/{userId}",
		create:       "/service-hours",
		update:       "/service-hours/{id}",
		del:          "/service-hours/{id}",
		updateMethod: http.MethodPatch,
	}
	wpHoursPaths = hoursPaths{
		list:         "/service-hours/get/{userId}",
		create:       "/service-hours/add",
		update:       "/service-hours/update/{id}",
		del:          "/service-hours/delete/{id}",
		updateMethod: http.MethodPost,
	}
)

// Mount registers health checks, the /api surface and, when configured, the
// WordPress-compatible prefix on r.
func Mount(r chi.Router, d Deps) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(r.Context()); err != nil {
				log.Printf("readyz: %v", err)
				writeErr(w, http.StatusServiceUnavailable, "not ready", "not_ready")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	r.Route("/api", func(ar chi.Router) {
		mountCalculators(ar, d)
		ar.Post("/contact", ContactHandler(d.Contact))

		if d.EnableLocalAuth {
			ar.Post("/auth/register", RegisterHandler(d.Users))
			ar.Post("/auth/login", LoginHandler(d.Users, d.Auth))
		}

		ar.Group(func(pr chi.Router) {
			mountServiceHours(pr, d, apiHoursPaths)
			pr.With(ownerOr(d, rbac.PermServiceHoursViewAll)...).
				Get("/service-hours/{userId}/summary", ServiceHoursSummaryHandler(d.Hours))
		})

		// Signed-in users
		ar.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(d.Auth), auth.AttachRoleFromStore(d.Users))
			if d.EnableLocalAuth {
				pr.With(rbac.Require(rbac.PermChangePassword)).
					Post("/users/change-password", ChangePasswordHandler(d.Users))
			}
			pr.With(rbac.Require(rbac.PermUsersList)).
				Get("/users", ListUsersHandler(d.Users))
			pr.With(rbac.Require(rbac.PermEventsRead)).
				Get("/admin/events", ListEventsHandler(d.Events))
		})
	})

	if d.WPPrefix != "" {
		r.Route(d.WPPrefix, func(wr chi.Router) {
			mountCalculators(wr, d)
			wr.Post("/contact", ContactHandler(d.Contact))
			wr.Group(func(pr chi.Router) {
				mountServiceHours(pr, d, wpHoursPaths)
			})
		})
	}
}

func mountCalculators(r chi.Router, d Deps) {
	r.Post("/calculate/uc-gpa", UCGPAHandler())
	r.Post("/calculate/final-grade", FinalGradeHandler())
	r.Post("/calculate/sat-act", SATACTHandler(d.Concordance))
	r.Post("/calculate/uc-chance", UCChanceHandler())
}

func mountServiceHours(r chi.Router, d Deps, p hoursPaths) {
	access := Access{Enforce: d.RequireAuth}
	if d.RequireAuth {
		r.Use(auth.JWTMiddleware(d.Auth), auth.AttachRoleFromStore(d.Users))
	}
	r.With(ownerOr(d, rbac.PermServiceHoursViewAll)...).
		Get(p.list, ListServiceHoursHandler(d.Hours))
	r.Post(p.create, CreateServiceHoursHandler(d.Hours, access))
	r.Method(p.updateMethod, p.update, UpdateServiceHoursHandler(d.Hours, access))
	r.Delete(p.del, DeleteServiceHoursHandler(d.Hours, access))
}

// ownerOr guards {userId} routes when authentication is required.
func ownerOr(d Deps, perm string) []func(http.Handler) http.Handler {
	if !d.RequireAuth {
		return nil
	}
	return []func(http.Handler) http.Handler{rbac.RequireOwnerOr(perm, IsOwner)}
}
