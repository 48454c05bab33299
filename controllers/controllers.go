package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"blindmail_server/services"
)

// writeJSON sends a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the core error taxonomy to HTTP statuses. Eligibility and
// validation failures carry their specific reason so the UI can explain why.
func writeError(w http.ResponseWriter, err error) {
	var notEligible *services.NotEligibleError
	var validation *services.ValidationError

	switch {
	case errors.Is(err, services.ErrMatchNotFound), errors.Is(err, services.ErrProfileNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrNoPartnerAvailable):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrNotAParticipant):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.As(err, &notEligible):
		writeJSON(w, http.StatusConflict, map[string]string{"error": notEligible.Reason})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validation.Reason})
	default:
		log.Printf("Internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
