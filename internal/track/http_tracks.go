package track

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	tracks, err := trendingTracks(r.Context(), s.store, time.Now())
	if err != nil {
		log.Printf("streaming-service: trending: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	f, err := feed(r.Context(), s.store, time.Now())
	if err != nil {
		log.Printf("streaming-service: feed: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	tracks, err := recommendations(r.Context(), s.store, userID)
	if err != nil {
		log.Printf("streaming-service: recommendations: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) handleTrackDetails(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "id")
	if trackID == "" {
		writeError(w, http.StatusBadRequest, "missing track id")
		return
	}

	detail, err := trackDetails(r.Context(), s.store, s.dir, trackID)
	if err != nil {
		writeTrackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	trackID := chi.URLParam(r, "id")
	if trackID == "" {
		writeError(w, http.StatusBadRequest, "missing track id")
		return
	}

	resp, err := toggleLike(r.Context(), s.store, s.dir, trackID, userID)
	if err != nil {
		writeTrackError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

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

func writeTrackError(w http.ResponseWriter, err error) {
	var te *trackError
	if errors.As(err, &te) {
		writeError(w, te.status, te.msg)
		return
	}
	log.Printf("streaming-service: track op: %v", err)
	writeError(w, http.StatusInternalServerError, "database error")
}
