package http

import (
	"errors"
	"net/http"

	"github.com/mind-engage/uc-planner/internal/contact"
	"github.com/mind-engage/uc-planner/internal/validation"
)

// POST /contact
func ContactHandler(svc *contact.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg contact.Message
		if !decodeJSON(w, r, &msg) {
			return
		}
		receipt, err := svc.Submit(r.Context(), msg)
		var ve *validation.Error
		switch {
		case errors.As(err, &ve):
			writeInvalid(w, err, "")
		case err != nil:
			writeFailure(w, r, err, "Failed to process contact form")
		default:
			writeJSON(w, http.StatusOK, receipt)
		}
	}
}
