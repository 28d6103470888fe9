package playlist

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListCollaborators(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")
	if playlistID == "" {
		writeError(w, http.StatusBadRequest, "missing playlist id")
		return
	}

	collabs, err := listCollaborators(r.Context(), s.store, s.dir, playlistID, userID)
	if err != nil {
		writePlaylistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collabs)
}

func (s *Server) handleInviteCollaborator(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")
	if playlistID == "" {
		writeError(w, http.StatusBadRequest, "missing playlist id")
		return
	}

	var body struct {
		Email     string `json:"email"`
		CanEdit   bool   `json:"canEdit"`
		CanInvite bool   `json:"canInvite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	detail, err := inviteCollaborator(r.Context(), s.store, s.dir, playlistID, userID, body.Email, body.CanEdit, body.CanInvite)
	if err != nil {
		writePlaylistError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

func (s *Server) handleUpdateCollaborator(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")
	collabUserID := chi.URLParam(r, "userId")
	if playlistID == "" || collabUserID == "" {
		writeError(w, http.StatusBadRequest, "missing playlist or user id")
		return
	}

	var body struct {
		CanEdit   bool `json:"canEdit"`
		CanInvite bool `json:"canInvite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	detail, err := updateCollaborator(r.Context(), s.store, s.dir, playlistID, userID, collabUserID, body.CanEdit, body.CanInvite)
	if err != nil {
		writePlaylistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleRemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	playlistID := chi.URLParam(r, "id")
	collabUserID := chi.URLParam(r, "userId")
	if playlistID == "" || collabUserID == "" {
		writeError(w, http.StatusBadRequest, "missing playlist or user id")
		return
	}

	detail, err := removeCollaborator(r.Context(), s.store, s.dir, playlistID, userID, collabUserID)
	if err != nil {
		writePlaylistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
