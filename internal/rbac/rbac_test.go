package rbac_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mind-engage/uc-planner/internal/rbac"
)

func TestChecker_DefaultPolicy(t *testing.T) {
	c := rbac.NewChecker(nil)
	cases := []struct {
		role, perm string
		want       bool
	}{
		{"student", rbac.PermServiceHoursViewAll, false},
		{"student", rbac.PermServiceHoursVerify, false},
		{"counselor", rbac.PermServiceHoursViewAll, true},
		{"counselor", rbac.PermServiceHoursVerify, true},
		{"counselor", rbac.PermServiceHoursManageAll, false},
		{"admin", rbac.PermServiceHoursManageAll, true},
		{"", rbac.PermServiceHoursViewAll, false},
		{"unknown", rbac.PermServiceHoursViewAll, false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestChecker_Wildcards(t *testing.T) {
	c := rbac.NewChecker(map[string][]string{"registrar": {"service_hours:*"}})
	for _, perm := range []string{rbac.PermServiceHoursViewAll, rbac.PermServiceHoursVerify} {
		if !c.Has("registrar", perm) {
			t.Errorf("family grant should cover %q", perm)
		}
	}
	if c.Has("registrar", rbac.PermEventsRead) {
		t.Fatal("family grant leaked into events")
	}
}

func TestRequireOwnerOr(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	cases := []struct {
		name  string
		role  string
		owner bool
		want  int
	}{
		{"owner", "student", true, http.StatusOK},
		{"stranger", "student", false, http.StatusForbidden},
		{"counselor", "counselor", false, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := rbac.RequireOwnerOr(rbac.PermServiceHoursViewAll, func(*http.Request) bool { return tc.owner })(ok)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(rbac.WithRole(req.Context(), tc.role))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestAllowed(t *testing.T) {
	ctx := rbac.WithRole(context.Background(), "admin")
	if !rbac.Allowed(ctx, rbac.PermServiceHoursManageAll) {
		t.Fatal("admin should be allowed")
	}
	if rbac.Allowed(context.Background(), rbac.PermServiceHoursViewAll) {
		t.Fatal("no role should not be allowed")
	}
}
