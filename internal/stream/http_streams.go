package stream

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const defaultTopLimit = 5

func (s *Server) handleRecordStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		TrackID string `json:"trackId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	st, err := recordStream(ctx, s.store, s.dir, s.rdb, body.TrackID, userID)
	if err != nil {
		writeStreamError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleListStreams(w http.ResponseWriter, r *http.Request) {
	streams, err := s.store.ListStreams(r.Context())
	if err != nil {
		log.Printf("streaming-service: list streams: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, streams)
}

func (s *Server) handleListByTrack(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "trackId")
	if trackID == "" {
		writeError(w, http.StatusBadRequest, "missing track id")
		return
	}
	streams, err := s.store.ListByTrack(r.Context(), trackID)
	if err != nil {
		log.Printf("streaming-service: list streams by track: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, streams)
}

func (s *Server) handleCountByTrack(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "trackId")
	if trackID == "" {
		writeError(w, http.StatusBadRequest, "missing track id")
		return
	}
	count, err := s.store.CountByTrack(r.Context(), trackID)
	if err != nil {
		log.Printf("streaming-service: count streams: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"trackId": trackID,
		"count":   count,
	})
}

func (s *Server) handleListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}
	streams, err := s.store.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("streaming-service: list streams by user: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, streams)
}

func (s *Server) handleTopTracks(w http.ResponseWriter, r *http.Request) {
	top, err := topTracks(r.Context(), s.store, s.dir, limitParam(r, defaultTopLimit))
	if err != nil {
		log.Printf("streaming-service: top tracks: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func limitParam(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
