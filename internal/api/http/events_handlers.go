package http

import (
	"net/http"
	"strconv"

	syncx "github.com/mind-engage/uc-planner/internal/sync"
)

const maxEventPage = 500

// GET /admin/events?after=<offset>&limit=<n>
func ListEventsHandler(events syncx.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		after, err := parseIntParam(q.Get("after"), 0)
		if err != nil || after < 0 {
			writeErr(w, http.StatusBadRequest, "Invalid after offset", codeValidation)
			return
		}
		limit, err := parseIntParam(q.Get("limit"), 100)
		if err != nil || limit <= 0 {
			writeErr(w, http.StatusBadRequest, "Invalid limit", codeValidation)
			return
		}
		limit = min(limit, maxEventPage)
		evs, err := events.List(r.Context(), after, int(limit))
		if err != nil {
			writeFailure(w, r, err, "Failed to list events")
			return
		}
		if evs == nil {
			evs = []syncx.Event{}
		}
		writeJSON(w, http.StatusOK, evs)
	}
}

func parseIntParam(s string, def int64) (int64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
