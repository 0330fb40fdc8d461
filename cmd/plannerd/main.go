package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	api "github.com/mind-engage/uc-planner/internal/api/http"
	auth "github.com/mind-engage/uc-planner/internal/auth/middleware"
	"github.com/mind-engage/uc-planner/internal/calc"
	"github.com/mind-engage/uc-planner/internal/config"
	"github.com/mind-engage/uc-planner/internal/contact"
	"github.com/mind-engage/uc-planner/internal/db"
	"github.com/mind-engage/uc-planner/internal/servicehours"
	syncx "github.com/mind-engage/uc-planner/internal/sync"
	"github.com/mind-engage/uc-planner/internal/users"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	conc, ok := calc.LookupConcordance(cfg.ConcordanceTable)
	if !ok {
		log.Fatalf("unknown concordance table %q", cfg.ConcordanceTable)
	}

	// --- Stores ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		dbh       *sql.DB
		hours     servicehours.Store
		userStore users.Store
		events    syncx.Log
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		hours = servicehours.NewMemoryStore()
		userStore = users.NewMemoryStore()
		events = syncx.NewMemoryLog()
	case config.StoreSQLite, config.StorePostgres:
		drv := db.DriverSQLite
		if cfg.StoreDriver == config.StorePostgres {
			drv = db.DriverPostgres
		}
		var err error
		dbh, err = db.Open(ctx, drv, cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		defer dbh.Close()
		hours = servicehours.NewSQLStore(dbh)
		userStore = users.NewSQLStore(dbh)
		events = syncx.NewEventRepo(dbh)
	default:
		log.Fatalf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.AdminPassHash != "" {
		if _, err := users.SeedAdmin(ctx, userStore, cfg.AdminUser, cfg.AdminPassHash); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
	}

	// --- Auth (local JWT) ---
	if cfg.UsesDefaultSecret() && (cfg.Mode == config.ModeOnline || cfg.RequireAuth) {
		log.Printf("warning: AUTH_HMAC_SECRET not set; tokens are signed with the development key")
	}
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	deps := api.Deps{
		Hours:           servicehours.WithAudit(hours, events, cfg.SiteID),
		Contact:         contact.NewService(events, cfg.SiteID),
		Users:           users.NewService(userStore, 0),
		Auth:            authSvc,
		Events:          events,
		Concordance:     conc,
		EnableLocalAuth: cfg.EnableLocalAuth,
		RequireAuth:     cfg.RequireAuth,
	}
	if cfg.EnableWPRoutes {
		deps.WPPrefix = cfg.WPRoutePrefix
	}
	if dbh != nil {
		deps.Ready = dbh.PingContext
	}
	api.Mount(r, deps)

	log.Printf("listening on %s (mode=%s, store=%s, concordance=%s)", cfg.HTTPAddr, cfg.Mode, cfg.StoreDriver, conc.Name())
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
