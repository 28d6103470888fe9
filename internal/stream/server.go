package stream

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	store Store
	dir   Directory
	rdb   *redis.Client
}

func NewServer(store Store, dir Directory, rdb *redis.Client) *Server {
	return &Server{
		store: store,
		dir:   dir,
		rdb:   rdb,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Post("/", s.handleRecordStream)
	r.Get("/", s.handleListStreams)
	r.Get("/track/{trackId}", s.handleListByTrack)
	r.Get("/track/{trackId}/count", s.handleCountByTrack)
	r.Get("/user/{userId}", s.handleListByUser)
	r.Get("/top/tracks", s.handleTopTracks)
	r.Get("/top/artists", s.handleTopArtists)

	r.Get("/royalties", s.handleRoyalties)
	r.Post("/payouts", s.handleRecordPayout)
	r.Get("/payouts", s.handleListPayouts)
	r.Get("/earnings/{artistId}", s.handleTotalEarnings)
	r.Get("/earnings/{artistId}/monthly", s.handleMonthlyEarnings)
	r.Get("/earnings/{artistId}/range", s.handleEarningsInRange)

	return r
}
