package track

import (
	"context"

	"github.com/stretchr/testify/mock"

	"streaming-service/internal/directory"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListTracksWithCounts(ctx context.Context) ([]Track, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Track), args.Error(1)
}

func (m *MockStore) ListLatest(ctx context.Context, limit int) ([]Track, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Track), args.Error(1)
}

func (m *MockStore) ListFirst(ctx context.Context, limit int) ([]Track, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Track), args.Error(1)
}

func (m *MockStore) LikedArtistIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) ListByArtists(ctx context.Context, artistIDs []string, limit int) ([]Track, error) {
	args := m.Called(ctx, artistIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Track), args.Error(1)
}

func (m *MockStore) GetTrackWithCounts(ctx context.Context, id string) (*Track, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Track), args.Error(1)
}

func (m *MockStore) HasLike(ctx context.Context, trackID, userID string) (bool, error) {
	args := m.Called(ctx, trackID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) InsertLike(ctx context.Context, trackID, userID string) error {
	args := m.Called(ctx, trackID, userID)
	return args.Error(0)
}

func (m *MockStore) DeleteLike(ctx context.Context, trackID, userID string) error {
	args := m.Called(ctx, trackID, userID)
	return args.Error(0)
}

func (m *MockStore) RecountPlays(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockDirectory struct {
	mock.Mock
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
