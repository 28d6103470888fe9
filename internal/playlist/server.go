package playlist

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

	r.Get("/", s.handleListPublicPlaylists)
	r.Post("/", s.handleCreatePlaylist)
	r.Get("/mine", s.handleListMyPlaylists)
	r.Get("/{id}", s.handleGetPlaylist)
	r.Delete("/{id}", s.handleDeletePlaylist)

	r.Post("/{id}/tracks", s.handleAddTrack)
	r.Delete("/{id}/tracks/{trackId}", s.handleRemoveTrack)

	r.Get("/{id}/collaborators", s.handleListCollaborators)
	r.Post("/{id}/collaborators", s.handleInviteCollaborator)
	r.Patch("/{id}/collaborators/{userId}", s.handleUpdateCollaborator)
	r.Delete("/{id}/collaborators/{userId}", s.handleRemoveCollaborator)

	r.Post("/{id}/follow", s.handleToggleFollow)

	return r
}
