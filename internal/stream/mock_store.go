package stream

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"streaming-service/internal/directory"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) InsertStream(ctx context.Context, trackID, userID string) (*Stream, error) {
	args := m.Called(ctx, trackID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stream), args.Error(1)
}

func (m *MockStore) IncrementPlayCount(ctx context.Context, trackID string) error {
	args := m.Called(ctx, trackID)
	return args.Error(0)
}

func (m *MockStore) CountByTrack(ctx context.Context, trackID string) (int, error) {
	args := m.Called(ctx, trackID)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) ListStreams(ctx context.Context) ([]Stream, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Stream), args.Error(1)
}

func (m *MockStore) ListByTrack(ctx context.Context, trackID string) ([]Stream, error) {
	args := m.Called(ctx, trackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Stream), args.Error(1)
}

func (m *MockStore) ListByUser(ctx context.Context, userID string) ([]Stream, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Stream), args.Error(1)
}

func (m *MockStore) TopTracks(ctx context.Context, limit int) ([]TrackPlays, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TrackPlays), args.Error(1)
}

func (m *MockStore) PlaysByArtist(ctx context.Context) ([]ArtistPlays, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ArtistPlays), args.Error(1)
}

func (m *MockStore) InsertPayout(ctx context.Context, artistID string, amount float64) (*Payout, error) {
	args := m.Called(ctx, artistID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payout), args.Error(1)
}

func (m *MockStore) ListPayouts(ctx context.Context) ([]Payout, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Payout), args.Error(1)
}

func (m *MockStore) ListPayoutsByArtist(ctx context.Context, artistID string) ([]Payout, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Payout), args.Error(1)
}

func (m *MockStore) ListPayoutsInRange(ctx context.Context, artistID string, start, end time.Time) ([]Payout, error) {
	args := m.Called(ctx, artistID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Payout), args.Error(1)
}

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetUser(ctx context.Context, id string) (*directory.User, error) {
	args := m.Called(ctx, id)
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
