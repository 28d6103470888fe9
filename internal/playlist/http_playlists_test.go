package playlist

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"streaming-service/internal/directory"
)

func TestHandleGetPlaylist(t *testing.T) {
	t.Run("requires user context", func(t *testing.T) {
		mockStore := new(MockStore)
		srv := NewServer(mockStore, new(MockDirectory), nil)

		req := httptest.NewRequest(http.MethodGet, "/pl1", nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockStore.AssertNotCalled(t, "GetPlaylist", mock.Anything, mock.Anything)
	})

	t.Run("returns the aggregate for an authenticated caller", func(t *testing.T) {
		mockStore := new(MockStore)
		mockDir := new(MockDirectory)
		srv := NewServer(mockStore, mockDir, nil)

		pl := &Playlist{ID: "pl1", OwnerID: "owner", Name: "Mix", IsPublic: false}
		mockStore.On("GetPlaylist", mock.Anything, "pl1").Return(pl, nil)
		mockStore.On("ListTracks", mock.Anything, "pl1").Return([]PlaylistTrack{}, nil)
		mockStore.On("ListFollowers", mock.Anything, "pl1").Return([]Follower{}, nil)
		mockStore.On("ListCollaborators", mock.Anything, "pl1").Return([]Collaborator{}, nil)
		mockDir.On("GetUserWithProfile", mock.Anything, mock.Anything).Return((*directory.UserWithProfile)(nil), directory.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/pl1", nil)
		req.Header.Set("X-User-Id", "fan")
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var detail PlaylistDetail
		require.NoError(t, json.NewDecoder(w.Body).Decode(&detail))
		assert.Equal(t, "pl1", detail.ID)
		assert.False(t, detail.IsPublic)
	})
}
