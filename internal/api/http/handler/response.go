package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skillpass/skillpass-server/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	var status int
	switch appErr.Code {
	case model.CodeValidation:
		status = http.StatusBadRequest
	case model.CodeAuthentication:
		status = http.StatusUnauthorized
	case model.CodeAuthorization:
		status = http.StatusForbidden
	case model.CodeNotFound:
		status = http.StatusNotFound
	case model.CodeConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, map[string]string{"error": appErr.Message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return false
	}
	return true
}
