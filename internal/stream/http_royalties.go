package stream

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleTopArtists(w http.ResponseWriter, r *http.Request) {
	top, err := topArtists(r.Context(), s.store, s.dir, limitParam(r, defaultTopLimit))
	if err != nil {
		log.Printf("streaming-service: top artists: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func (s *Server) handleRoyalties(w http.ResponseWriter, r *http.Request) {
	rows, err := royalties(r.Context(), s.store, s.dir, limitParam(r, defaultTopLimit))
	if err != nil {
		log.Printf("streaming-service: royalties: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleRecordPayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Header.Get("X-User-Id") == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		ArtistID      string  `json:"artistId"`
		PlayCount     int     `json:"playCount"`
		RatePerStream float64 `json:"ratePerStream"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	payout, err := recordPayout(ctx, s.store, s.dir, body.ArtistID, body.PlayCount, body.RatePerStream)
	if err != nil {
		writeStreamError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, payout)
}

func (s *Server) handleListPayouts(w http.ResponseWriter, r *http.Request) {
	payouts, err := s.store.ListPayouts(r.Context())
	if err != nil {
		log.Printf("streaming-service: list payouts: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, payouts)
}

func (s *Server) handleTotalEarnings(w http.ResponseWriter, r *http.Request) {
	artistID := chi.URLParam(r, "artistId")
	earnings, err := totalEarnings(r.Context(), s.store, artistID)
	if err != nil {
		writeStreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, earnings)
}

func (s *Server) handleMonthlyEarnings(w http.ResponseWriter, r *http.Request) {
	artistID := chi.URLParam(r, "artistId")
	rows, err := monthlyEarnings(r.Context(), s.store, artistID)
	if err != nil {
		writeStreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleEarningsInRange expects start and end as RFC3339 timestamps or
// YYYY-MM-DD dates; the range is inclusive on both ends.
func (s *Server) handleEarningsInRange(w http.ResponseWriter, r *http.Request) {
	artistID := chi.URLParam(r, "artistId")

	start, ok := parseTimeParam(r.URL.Query().Get("start"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid or missing start date")
		return
	}
	end, ok := parseTimeParam(r.URL.Query().Get("end"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid or missing end date")
		return
	}

	earnings, err := earningsInRange(r.Context(), s.store, artistID, start, end)
	if err != nil {
		writeStreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, earnings)
}

func parseTimeParam(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
