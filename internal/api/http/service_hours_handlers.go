package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	auth "github.com/mind-engage/uc-planner/internal/auth/middleware"
	"github.com/mind-engage/uc-planner/internal/rbac"
	"github.com/mind-engage/uc-planner/internal/servicehours"
	"github.com/mind-engage/uc-planner/internal/validation"
)

const msgDeleted = "Service hours deleted successfully"

// Access decides who may touch which service-hour records. With Enforce
// unset every caller is trusted.
type Access struct {
	Enforce bool
}

func (a Access) canManage(r *http.Request, ownerID int64) bool {
	if !a.Enforce {
		return true
	}
	uid, ok := auth.UserIDFromContext(r.Context())
	return (ok && uid == ownerID) || rbac.Allowed(r.Context(), rbac.PermServiceHoursManageAll)
}

func (a Access) canVerify(r *http.Request) bool {
	return !a.Enforce || rbac.Allowed(r.Context(), rbac.PermServiceHoursVerify)
}

// IsOwner reports whether the {userId} path parameter is the caller.
func IsOwner(r *http.Request) bool {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	return err == nil && id == uid
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

// GET /service-hours/{userId}
func ListServiceHoursHandler(store servicehours.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathID(r, "userId")
		if !ok {
			writeErr(w, http.StatusBadRequest, "Invalid user ID", codeValidation)
			return
		}
		recs, err := store.ListByUser(r.Context(), userID)
		if err != nil {
			writeFailure(w, r, err, "Failed to fetch service hours")
			return
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

// GET /service-hours/{userId}/summary
func ServiceHoursSummaryHandler(store servicehours.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathID(r, "userId")
		if !ok {
			writeErr(w, http.StatusBadRequest, "Invalid user ID", codeValidation)
			return
		}
		sum, err := store.Summary(r.Context(), userID)
		if err != nil {
			writeFailure(w, r, err, "Failed to summarize service hours")
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}

type serviceHoursRequest struct {
	UserID          *int64   `json:"userId"`
	Organization    *string  `json:"organization"`
	Description     *string  `json:"description"`
	Hours           *float64 `json:"hours"`
	Date            *string  `json:"date"`
	Verified        *bool    `json:"verified"`
	SupervisorName  *string  `json:"supervisorName"`
	SupervisorEmail *string  `json:"supervisorEmail"`
	SupervisorPhone *string  `json:"supervisorPhone"`
}

func parseDate(v *validation.Error, s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := servicehours.ParseDate(*s)
	if err != nil {
		v.Add("date", "Invalid date; use YYYY-MM-DD or RFC 3339")
		return nil
	}
	return &t
}

// POST /service-hours
func CreateServiceHoursHandler(store servicehours.Store, access Access) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req serviceHoursRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		var v validation.Error
		if req.Verified != nil {
			v.Add("verified", "Cannot be set on create")
		}
		date := parseDate(&v, req.Date)
		n := servicehours.NewRecord{
			UserID:          deref(req.UserID),
			Organization:    deref(req.Organization),
			Description:     deref(req.Description),
			Hours:           deref(req.Hours),
			Date:            deref(date),
			SupervisorName:  req.SupervisorName,
			SupervisorEmail: req.SupervisorEmail,
			SupervisorPhone: req.SupervisorPhone,
		}
		v.Merge(n.Validate())
		if err := v.Err(); err != nil {
			writeInvalid(w, err, "")
			return
		}
		if !access.canManage(r, n.UserID) {
			writeErr(w, http.StatusForbidden, "forbidden", codeForbidden)
			return
		}
		rec, err := store.Create(r.Context(), n)
		if err != nil {
			writeHoursErr(w, r, err, "Failed to add service hours")
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

// PATCH /service-hours/{id}
//
// Holders of the verify permission may flip "verified" on any record;
// every other change needs ownership or the manage-all permission.
func UpdateServiceHoursHandler(store servicehours.Store, access Access) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeErr(w, http.StatusBadRequest, "Invalid service hour ID", codeValidation)
			return
		}
		var req serviceHoursRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		var v validation.Error
		if req.UserID != nil {
			v.Add("userId", "Cannot be changed")
		}
		date := parseDate(&v, req.Date)
		p := servicehours.Patch{
			Organization:    req.Organization,
			Description:     req.Description,
			Hours:           req.Hours,
			Date:            date,
			Verified:        req.Verified,
			SupervisorName:  req.SupervisorName,
			SupervisorEmail: req.SupervisorEmail,
			SupervisorPhone: req.SupervisorPhone,
		}
		v.Merge(p.Validate())
		if err := v.Err(); err != nil {
			writeInvalid(w, err, "")
			return
		}

		if access.Enforce {
			cur, err := store.Get(r.Context(), id)
			if err != nil {
				writeHoursErr(w, r, err, "Failed to update service hours")
				return
			}
			verifyOnly := p == servicehours.Patch{Verified: p.Verified}
			switch {
			case p.Verified != nil && !access.canVerify(r):
				writeErr(w, http.StatusForbidden, "forbidden", codeForbidden)
				return
			case verifyOnly && access.canVerify(r):
			case !access.canManage(r, cur.UserID):
				writeErr(w, http.StatusForbidden, "forbidden", codeForbidden)
				return
			}
		}

		rec, err := store.Update(r.Context(), id, p)
		if err != nil {
			writeHoursErr(w, r, err, "Failed to update service hours")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// DELETE /service-hours/{id}; deleting a missing record succeeds.
func DeleteServiceHoursHandler(store servicehours.Store, access Access) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeErr(w, http.StatusBadRequest, "Invalid service hour ID", codeValidation)
			return
		}
		if access.Enforce {
			cur, err := store.Get(r.Context(), id)
			switch {
			case errors.Is(err, servicehours.ErrNotFound):
				writeJSON(w, http.StatusOK, map[string]string{"message": msgDeleted})
				return
			case err != nil:
				writeFailure(w, r, err, "Failed to delete service hours")
				return
			case !access.canManage(r, cur.UserID):
				writeErr(w, http.StatusForbidden, "forbidden", codeForbidden)
				return
			}
		}
		if err := store.Delete(r.Context(), id); err != nil {
			writeFailure(w, r, err, "Failed to delete service hours")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": msgDeleted})
	}
}

func writeHoursErr(w http.ResponseWriter, r *http.Request, err error, failMsg string) {
	var ve *validation.Error
	switch {
	case errors.Is(err, servicehours.ErrNotFound):
		writeErr(w, http.StatusNotFound, "Service hours not found", codeNotFound)
	case errors.As(err, &ve):
		writeInvalid(w, err, "")
	default:
		writeFailure(w, r, err, failMsg)
	}
}
