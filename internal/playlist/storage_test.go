package playlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPostgresStore(mock), mock
}

func TestInsertPlaylist(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO playlists").
		WithArgs(pgxmock.AnyArg(), "owner", "Mix", "desc", true).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	pl, err := s.InsertPlaylist(context.Background(), "owner", "Mix", "desc", true)
	require.NoError(t, err)
	assert.NotEmpty(t, pl.ID)
	assert.Equal(t, "owner", pl.OwnerID)
	assert.Equal(t, now, pl.CreatedAt)
}

func TestListPublicPlaylists(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("FROM playlists p").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "name", "description", "is_public", "created_at", "track_count", "follower_count",
		}).AddRow("pl1", "owner", "Mix", "", true, now, 3, 2))

	playlists, err := s.ListPublicPlaylists(context.Background())
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Equal(t, 3, playlists[0].TrackCount)
	assert.Equal(t, 2, playlists[0].FollowerCount)
}

func TestStoreAddTrack(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO playlist_tracks").
		WithArgs("pl1", "t1", "owner").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.AddTrack(context.Background(), "pl1", "t1", "owner"))
}

func TestStoreRemoveTrackMissing(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM playlist_tracks").
		WithArgs("pl1", "ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.RemoveTrack(context.Background(), "pl1", "ghost")
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestStoreUpsertCollaborator(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO playlist_collaborators").
		WithArgs(pgxmock.AnyArg(), "pl1", "friend", true, false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.UpsertCollaborator(context.Background(), "pl1", "friend", true, false))
}

func TestStoreUpdateCollaboratorMissing(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE playlist_collaborators").
		WithArgs("pl1", "ghost", true, false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateCollaborator(context.Background(), "pl1", "ghost", true, false)
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestStoreIsFollowing(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT 1 FROM playlist_follows").
		WithArgs("pl1", "u1").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}))

	following, err := s.IsFollowing(context.Background(), "pl1", "u1")
	require.NoError(t, err)
	assert.False(t, following)
}
