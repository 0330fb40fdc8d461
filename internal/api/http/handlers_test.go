package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	api "github.com/mind-engage/uc-planner/internal/api/http"
	auth "github.com/mind-engage/uc-planner/internal/auth/middleware"
	"github.com/mind-engage/uc-planner/internal/calc"
	"github.com/mind-engage/uc-planner/internal/contact"
	"github.com/mind-engage/uc-planner/internal/servicehours"
	syncx "github.com/mind-engage/uc-planner/internal/sync"
	"github.com/mind-engage/uc-planner/internal/users"
)

const wpPrefix = "/wp-json/uc-calculator/v1"

type testServer struct {
	handler   http.Handler
	userStore users.Store
	events    *syncx.MemoryLog
	authSvc   *auth.AuthService
}

func newServer(t *testing.T, requireAuth bool, ready func(context.Context) error) *testServer {
	t.Helper()
	events := syncx.NewMemoryLog()
	userStore := users.NewMemoryStore()
	authSvc := auth.NewAuthService("test-secret")
	r := chi.NewRouter()
	api.Mount(r, api.Deps{
		Hours:           servicehours.WithAudit(servicehours.NewMemoryStore(), events, ""),
		Contact:         contact.NewService(events, ""),
		Users:           users.NewService(userStore, bcrypt.MinCost),
		Auth:            authSvc,
		Events:          events,
		Concordance:     calc.DefaultConcordance(),
		EnableLocalAuth: true,
		RequireAuth:     requireAuth,
		WPPrefix:        wpPrefix,
		Ready:           ready,
	})
	return &testServer{handler: r, userStore: userStore, events: events, authSvc: authSvc}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

type errResp struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (e errResp) hasField(name string) bool {
	for _, f := range e.Errors {
		if f.Field == name {
			return true
		}
	}
	return false
}

func TestUCGPA(t *testing.T) {
	s := newServer(t, false, nil)

	rec := s.do(t, "POST", "/api/calculate/uc-gpa",
		`{"gradeA":4,"gradeB":2,"gradeC":0,"gradeD":0,"gradeF":0,"honorsCount":3,"academicSystem":"semester"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	got := decode[map[string]float64](t, rec)
	want := map[string]float64{"unweightedGPA": 3.67, "weightedGPA": 4.17, "weightedPoints": 0.5, "honorsCount": 3, "totalCourses": 6}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}

	rec = s.do(t, "POST", "/api/calculate/uc-gpa",
		`{"gradeA":0,"gradeB":0,"gradeC":0,"gradeD":0,"gradeF":0,"honorsCount":5,"academicSystem":"trimester"}`, "")
	got = decode[map[string]float64](t, rec)
	if got["honorsCount"] != 5 || got["totalCourses"] != 0 || got["weightedGPA"] != 0 || got["weightedPoints"] != 0 {
		t.Fatalf("zero case = %v", got)
	}
}

func TestUCGPA_BadInput(t *testing.T) {
	s := newServer(t, false, nil)
	cases := []struct {
		name, body, code, field string
	}{
		{"missing field", `{"gradeB":1,"gradeC":0,"gradeD":0,"gradeF":0,"honorsCount":0,"academicSystem":"semester"}`, "validation_error", "gradeA"},
		{"negative", `{"gradeA":-1,"gradeB":1,"gradeC":0,"gradeD":0,"gradeF":0,"honorsCount":0,"academicSystem":"semester"}`, "validation_error", "gradeA"},
		{"fractional", `{"gradeA":1.5,"gradeB":1,"gradeC":0,"gradeD":0,"gradeF":0,"honorsCount":0,"academicSystem":"semester"}`, "validation_error", "gradeA"},
		{"huge count", `{"gradeA":9223372036854775807,"gradeB":1,"gradeC":0,"gradeD":0,"gradeF":0,"honorsCount":0,"academicSystem":"semester"}`, "validation_error", "gradeA"},
		{"bad system", `{"gradeA":1,"gradeB":1,"gradeC":0,"gradeD":0,"gradeF":0,"honorsCount":0,"academicSystem":"quarter"}`, "validation_error", "academicSystem"},
		{"unknown field", `{"gradeA":1,"gradeB":1,"gradeC":0,"gradeD":0,"gradeF":0,"honorsCount":0,"academicSystem":"semester","gradeE":1}`, "bad_json", ""},
		{"malformed", `{"gradeA":`, "bad_json", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, "POST", "/api/calculate/uc-gpa", tc.body, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status %d", rec.Code)
			}
			e := decode[errResp](t, rec)
			if e.Code != tc.code || (tc.field != "" && !e.hasField(tc.field)) {
				t.Fatalf("error = %+v", e)
			}
		})
	}
}

func TestFinalGrade(t *testing.T) {
	s := newServer(t, false, nil)

	rec := s.do(t, "POST", "/api/calculate/final-grade",
		`{"currentGrade":80,"currentWeight":70,"finalWeight":30,"desiredGrade":85}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	got := decode[map[string]any](t, rec)
	if got["neededGrade"] != 96.67 || got["letterGrade"] != "A" || got["isPossible"] != true ||
		got["feasibilityMessage"] != "This grade is challenging but possible with thorough preparation." {
		t.Fatalf("result = %v", got)
	}

	rec = s.do(t, "POST", "/api/calculate/final-grade",
		`{"currentGrade":85,"currentWeight":80,"finalWeight":20,"desiredGrade":90}`, "")
	got = decode[map[string]any](t, rec)
	if got["neededGrade"] != 110.0 || got["isPossible"] != false {
		t.Fatalf("impossible case = %v", got)
	}

	rec = s.do(t, "POST", "/api/calculate/final-grade",
		`{"currentGrade":85,"currentWeight":70,"finalWeight":20,"desiredGrade":90}`, "")
	e := decode[errResp](t, rec)
	if rec.Code != http.StatusBadRequest || e.Message != "Current grade weight and final exam weight must sum to 100%" || !e.hasField("finalWeight") {
		t.Fatalf("weight sum: %d %+v", rec.Code, e)
	}
}

func TestSATACT(t *testing.T) {
	s := newServer(t, false, nil)
	cases := []struct {
		body      string
		status    int
		converted int
		code      string
	}{
		{`{"testType":"SAT","score":1600}`, 200, 36, ""},
		{`{"testType":"ACT","score":36}`, 200, 1600, ""},
		{`{"testType":"ACT","score":5}`, 400, 0, "unconvertible_score"},
		{`{"testType":"SAT","score":300}`, 400, 0, "validation_error"},
		{`{"testType":"PSAT","score":1000}`, 400, 0, "validation_error"},
	}
	for _, tc := range cases {
		rec := s.do(t, "POST", "/api/calculate/sat-act", tc.body, "")
		if rec.Code != tc.status {
			t.Fatalf("%s: status %d", tc.body, rec.Code)
		}
		if tc.status == 200 {
			res := decode[calc.SATACTResult](t, rec)
			if res.ConvertedScore != tc.converted {
				t.Fatalf("%s: converted %d", tc.body, res.ConvertedScore)
			}
			continue
		}
		if e := decode[errResp](t, rec); e.Code != tc.code {
			t.Fatalf("%s: code %q", tc.body, e.Code)
		}
	}
}

func TestUCChance(t *testing.T) {
	s := newServer(t, false, nil)

	rec := s.do(t, "POST", "/api/calculate/uc-chance", `{"gpa":4.0,"activities":5,"essays":5,"satScore":1500}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	res := decode[calc.ChancingResult](t, rec)
	if len(res.Results) != 9 || res.Results[0].Campus != "UC Berkeley" || res.Results[0].Chance != 85 {
		t.Fatalf("results = %+v", res.Results)
	}
	if last := res.Results[8]; last.Campus != "UC Merced" || last.Chance != 99 || last.Tier != calc.Likely {
		t.Fatalf("merced = %+v", last)
	}

	// satScore 0 counts as no score
	rec = s.do(t, "POST", "/api/calculate/uc-chance", `{"gpa":4.0,"activities":5,"essays":5,"satScore":0}`, "")
	zero := decode[calc.ChancingResult](t, rec)
	if rec.Code != http.StatusOK || zero.Results[0].Chance != 70 || zero.Results[0].Tier != calc.Likely {
		t.Fatalf("satScore 0: %d %+v", rec.Code, zero.Results)
	}

	rec = s.do(t, "POST", wpPrefix+"/calculate/uc-chance", `{"gpa":4.0,"activities":5,"essays":5,"selectedCampuses":["Berkeley","Merced"]}`, "")
	picked := decode[calc.ChancingResult](t, rec)
	if rec.Code != http.StatusOK || len(picked.Results) != 2 || picked.Results[0].Campus != "UC Berkeley" || picked.Results[1].Campus != "UC Merced" {
		t.Fatalf("selected campuses: %d %+v", rec.Code, picked.Results)
	}
	rec = s.do(t, "POST", "/api/calculate/uc-chance", `{"gpa":4.0,"activities":5,"essays":5,"selectedCampuses":["Stanford"]}`, "")
	if e := decode[errResp](t, rec); rec.Code != http.StatusBadRequest || !e.hasField("selectedCampuses") {
		t.Fatalf("unknown campus: %d %+v", rec.Code, e)
	}

	rec = s.do(t, "POST", "/api/calculate/uc-chance", `{"activities":3,"essays":3}`, "")
	e := decode[errResp](t, rec)
	if rec.Code != http.StatusBadRequest || e.Message != "Missing required fields" || !e.hasField("gpa") {
		t.Fatalf("missing gpa: %d %+v", rec.Code, e)
	}
}

func TestServiceHours_RoundTrip(t *testing.T) {
	s := newServer(t, false, nil)
	body := `{"userId":7,"organization":"Library","description":"Shelving","hours":2,"date":"2024-04-02","supervisorEmail":"lib@example.org"}`

	rec := s.do(t, "POST", "/api/service-hours", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body)
	}
	created := decode[servicehours.Record](t, rec)
	if created.ID == 0 || created.Verified || created.SupervisorName != nil {
		t.Fatalf("created = %+v", created)
	}

	list := decode[[]servicehours.Record](t, s.do(t, "GET", "/api/service-hours/7", "", ""))
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v", list)
	}

	path := "/api/service-hours/" + strconv.FormatInt(created.ID, 10)
	rec = s.do(t, "PATCH", path, `{"hours":3.5,"verified":true}`, "")
	if upd := decode[servicehours.Record](t, rec); rec.Code != 200 || upd.Hours != 3.5 || !upd.Verified {
		t.Fatalf("patch: %d %+v", rec.Code, upd)
	}

	sum := decode[servicehours.Summary](t, s.do(t, "GET", "/api/service-hours/7/summary", "", ""))
	if sum.Entries != 1 || sum.TotalHours != 3.5 || sum.VerifiedHours != 3.5 {
		t.Fatalf("summary = %+v", sum)
	}

	for i := 0; i < 2; i++ {
		rec = s.do(t, "DELETE", path, "", "")
		if m := decode[map[string]string](t, rec); rec.Code != 200 || m["message"] != "Service hours deleted successfully" {
			t.Fatalf("delete #%d: %d %v", i, rec.Code, m)
		}
	}
	list = decode[[]servicehours.Record](t, s.do(t, "GET", "/api/service-hours/7", "", ""))
	if len(list) != 0 {
		t.Fatalf("after delete = %+v", list)
	}

	evs, _ := s.events.List(context.Background(), 0, 0)
	if len(evs) != 3 { // created, updated, deleted; the repeat delete is not recorded
		t.Fatalf("audit events = %d", len(evs))
	}
}

func TestServiceHours_Errors(t *testing.T) {
	s := newServer(t, false, nil)

	rec := s.do(t, "GET", "/api/service-hours/abc", "", "")
	if e := decode[errResp](t, rec); rec.Code != 400 || e.Message != "Invalid user ID" {
		t.Fatalf("bad user id: %d %+v", rec.Code, e)
	}
	rec = s.do(t, "DELETE", "/api/service-hours/x1", "", "")
	if e := decode[errResp](t, rec); rec.Code != 400 || e.Message != "Invalid service hour ID" {
		t.Fatalf("bad id: %d %+v", rec.Code, e)
	}
	rec = s.do(t, "PATCH", "/api/service-hours/404", `{"hours":1}`, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("patch missing: %d", rec.Code)
	}
	rec = s.do(t, "POST", "/api/service-hours", `{"userId":1,"organization":"","description":"d","hours":30,"date":"2024-01-01"}`, "")
	e := decode[errResp](t, rec)
	if rec.Code != 400 || !e.hasField("organization") || !e.hasField("hours") {
		t.Fatalf("invalid create: %d %+v", rec.Code, e)
	}
	rec = s.do(t, "POST", "/api/service-hours", `{"userId":1,"organization":"","description":"d","hours":1,"date":"yesterday","verified":true}`, "")
	e = decode[errResp](t, rec)
	if rec.Code != 400 || len(e.Errors) != 3 || !e.hasField("date") || !e.hasField("organization") || !e.hasField("verified") {
		t.Fatalf("bad date with other problems: %d %+v", rec.Code, e)
	}
	rec = s.do(t, "PATCH", "/api/service-hours/1", `{"userId":2,"hours":0,"date":"soon"}`, "")
	e = decode[errResp](t, rec)
	if rec.Code != 400 || len(e.Errors) != 3 || !e.hasField("userId") || !e.hasField("hours") || !e.hasField("date") {
		t.Fatalf("bad patch: %d %+v", rec.Code, e)
	}
}

func TestWordPressRoutes(t *testing.T) {
	s := newServer(t, false, nil)

	rec := s.do(t, "POST", wpPrefix+"/calculate/sat-act", `{"testType":"SAT","score":1580}`, "")
	if res := decode[calc.SATACTResult](t, rec); rec.Code != 200 || res.ConvertedScore != 35 {
		t.Fatalf("wp sat-act: %d %+v", rec.Code, res)
	}

	rec = s.do(t, "POST", wpPrefix+"/service-hours/add",
		`{"userId":3,"organization":"Park","description":"Cleanup","hours":4,"date":"2024-06-01T09:00:00Z"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("wp add: %d %s", rec.Code, rec.Body)
	}
	id := strconv.FormatInt(decode[servicehours.Record](t, rec).ID, 10)

	rec = s.do(t, "POST", wpPrefix+"/service-hours/update/"+id, `{"description":"Trail cleanup"}`, "")
	if upd := decode[servicehours.Record](t, rec); rec.Code != 200 || upd.Description != "Trail cleanup" {
		t.Fatalf("wp update: %d %+v", rec.Code, upd)
	}
	list := decode[[]servicehours.Record](t, s.do(t, "GET", wpPrefix+"/service-hours/get/3", "", ""))
	if len(list) != 1 {
		t.Fatalf("wp get = %+v", list)
	}
	if rec := s.do(t, "DELETE", wpPrefix+"/service-hours/delete/"+id, "", ""); rec.Code != 200 {
		t.Fatalf("wp delete: %d", rec.Code)
	}

	rec = s.do(t, "POST", wpPrefix+"/contact", `{"name":"A","email":"a@b.co","subject":"S","message":"hello there!"}`, "")
	if rec.Code != 200 {
		t.Fatalf("wp contact: %d", rec.Code)
	}
}

func TestContact(t *testing.T) {
	s := newServer(t, false, nil)
	rec := s.do(t, "POST", "/api/contact", `{"name":"Ana","email":"ana@example.com","subject":"Hi","message":"When are results due?"}`, "")
	got := decode[map[string]any](t, rec)
	if rec.Code != 200 || got["success"] != true || got["message"] != contact.AckMessage || got["id"] == "" {
		t.Fatalf("contact: %d %v", rec.Code, got)
	}
	rec = s.do(t, "POST", "/api/contact", `{"name":"Ana","email":"nope","subject":"Hi","message":"short"}`, "")
	e := decode[errResp](t, rec)
	if rec.Code != 400 || e.Message != "Validation error" || !e.hasField("email") || !e.hasField("message") {
		t.Fatalf("invalid contact: %d %+v", rec.Code, e)
	}
}

func TestHealth(t *testing.T) {
	if rec := newServer(t, false, nil).do(t, "GET", "/readyz", "", ""); rec.Code != 200 {
		t.Fatalf("readyz = %d", rec.Code)
	}
	down := newServer(t, false, func(context.Context) error { return errors.New("db down") })
	if rec := down.do(t, "GET", "/readyz", "", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz down = %d", rec.Code)
	}
	if rec := down.do(t, "GET", "/healthz", "", ""); rec.Code != 200 {
		t.Fatalf("healthz = %d", rec.Code)
	}
}
