package api

import (
	"encoding/json"
	"log"
	"net/http"

	"ecodesign/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already gone; the best we can do is leave a trace.
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeAppError maps the error taxonomy onto HTTP statuses. Unknown errors
// surface as a generic 500 so internals never leak.
func writeAppError(w http.ResponseWriter, err error) {
	switch errors.GetCode(err) {
	case errors.CodeValidationError, errors.CodeInvalidInput:
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.CodeNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case errors.CodeModelUnavailable:
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.CodeDegenerateInput:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.CodeDatabaseError:
		writeError(w, http.StatusInternalServerError, "storage error")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.InvalidInput("invalid JSON payload")
	}
	return nil
}
