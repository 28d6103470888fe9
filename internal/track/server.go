package track

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	store Store
	dir   Directory
}

func NewServer(store Store, dir Directory) *Server {
	return &Server{
		store: store,
		dir:   dir,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/trending", s.handleTrending)
	r.Get("/feed", s.handleFeed)
	r.Get("/recommendations", s.handleRecommendations)
	r.Get("/{id}", s.handleTrackDetails)
	r.Post("/{id}/like", s.handleToggleLike)

	return r
}
