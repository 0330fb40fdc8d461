package config

import (
	"os"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Store drivers. Memory keeps everything in process; the others go through
// internal/db.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

const devHMACSecret = "supersecret-dev-key"

type Config struct {
	Mode     Mode
	HTTPAddr string
	SiteID   string

	StoreDriver string // memory|sqlite|postgres
	DBDSN       string

	EnableLocalAuth bool
	RequireAuth     bool
	AuthHMACSecret  string

	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	EnableWPRoutes bool
	WPRoutePrefix  string

	ConcordanceTable string
	RequestTimeout   time.Duration
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           addr,
		SiteID:             envOr("SITE_ID", "local"),
		StoreDriver:        strings.ToLower(envOr("STORE_DRIVER", StoreMemory)),
		DBDSN:              envOr("DB_DSN", ""),
		EnableLocalAuth:    envBool("ENABLE_LOCAL_AUTH", true),
		RequireAuth:        envBool("REQUIRE_AUTH", false),
		AuthHMACSecret:     envOr("AUTH_HMAC_SECRET", devHMACSecret),
		AdminUser:          envOr("ADMIN_USER", "admin"),
		AdminPassHash:      os.Getenv("ADMIN_PASS_HASH"),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://ucplanner.example.com"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5000,http://localhost:5173"),
		EnableWPRoutes:     envBool("ENABLE_WP_ROUTES", true),
		WPRoutePrefix:      strings.TrimSuffix(envOr("WP_ROUTE_PREFIX", "/wp-json/uc-calculator/v1"), "/"),
		ConcordanceTable:   envOr("CONCORDANCE_TABLE", "server"),
		RequestTimeout:     envDuration("REQUEST_TIMEOUT", 30*time.Second),
	}
}

// CORSOrigins returns the allow-list for the current mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

// UsesDefaultSecret reports whether tokens would be signed with the
// built-in development key.
func (c Config) UsesDefaultSecret() bool { return c.AuthHMACSecret == devHMACSecret }

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
