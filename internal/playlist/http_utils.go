package playlist

import (
	"encoding/json"
	"errors"
	"net/http"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writePlaylistError(w http.ResponseWriter, err error) {
	var pe *playlistError
	if errors.As(err, &pe) {
		writeError(w, pe.status, pe.msg)
		return
	}
	var ve *validationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.msg)
		return
	}
	writeError(w, http.StatusInternalServerError, "database error")
}
