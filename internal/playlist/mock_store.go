package playlist

import (
	"context"

	"github.com/stretchr/testify/mock"

	"streaming-service/internal/directory"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetPlaylist(ctx context.Context, id string) (*Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Playlist), args.Error(1)
}

func (m *MockStore) ListPublicPlaylists(ctx context.Context) ([]PlaylistSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PlaylistSummary), args.Error(1)
}

func (m *MockStore) ListByOwner(ctx context.Context, ownerID string) ([]PlaylistSummary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PlaylistSummary), args.Error(1)
}

func (m *MockStore) InsertPlaylist(ctx context.Context, ownerID, name, description string, isPublic bool) (*Playlist, error) {
	args := m.Called(ctx, ownerID, name, description, isPublic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Playlist), args.Error(1)
}

func (m *MockStore) DeletePlaylist(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ListTracks(ctx context.Context, playlistID string) ([]PlaylistTrack, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PlaylistTrack), args.Error(1)
}

func (m *MockStore) AddTrack(ctx context.Context, playlistID, trackID, addedBy string) error {
	args := m.Called(ctx, playlistID, trackID, addedBy)
	return args.Error(0)
}

func (m *MockStore) RemoveTrack(ctx context.Context, playlistID, trackID string) error {
	args := m.Called(ctx, playlistID, trackID)
	return args.Error(0)
}

func (m *MockStore) ListCollaborators(ctx context.Context, playlistID string) ([]Collaborator, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Collaborator), args.Error(1)
}

func (m *MockStore) UpsertCollaborator(ctx context.Context, playlistID, userID string, canEdit, canInvite bool) error {
	args := m.Called(ctx, playlistID, userID, canEdit, canInvite)
	return args.Error(0)
}

func (m *MockStore) UpdateCollaborator(ctx context.Context, playlistID, userID string, canEdit, canInvite bool) error {
	args := m.Called(ctx, playlistID, userID, canEdit, canInvite)
	return args.Error(0)
}

func (m *MockStore) RemoveCollaborator(ctx context.Context, playlistID, userID string) error {
	args := m.Called(ctx, playlistID, userID)
	return args.Error(0)
}

func (m *MockStore) ListFollowers(ctx context.Context, playlistID string) ([]Follower, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Follower), args.Error(1)
}

func (m *MockStore) IsFollowing(ctx context.Context, playlistID, userID string) (bool, error) {
	args := m.Called(ctx, playlistID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) InsertFollow(ctx context.Context, playlistID, userID string) error {
	args := m.Called(ctx, playlistID, userID)
	return args.Error(0)
}

func (m *MockStore) DeleteFollow(ctx context.Context, playlistID, userID string) error {
	args := m.Called(ctx, playlistID, userID)
	return args.Error(0)
}

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetUserByEmail(ctx context.Context, email string) (*directory.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.User), args.Error(1)
}

func (m *MockDirectory) GetTrack(ctx context.Context, id string) (*directory.Track, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Track), args.Error(1)
}

func (m *MockDirectory) GetUserWithProfile(ctx context.Context, id string) (*directory.UserWithProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.UserWithProfile), args.Error(1)
}
