package playlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Store abstracts playlist persistence.
type Store interface {
	GetPlaylist(ctx context.Context, id string) (*Playlist, error)
	ListPublicPlaylists(ctx context.Context) ([]PlaylistSummary, error)
	ListByOwner(ctx context.Context, ownerID string) ([]PlaylistSummary, error)
	InsertPlaylist(ctx context.Context, ownerID, name, description string, isPublic bool) (*Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error

	ListTracks(ctx context.Context, playlistID string) ([]PlaylistTrack, error)
	AddTrack(ctx context.Context, playlistID, trackID, addedBy string) error
	RemoveTrack(ctx context.Context, playlistID, trackID string) error

	ListCollaborators(ctx context.Context, playlistID string) ([]Collaborator, error)
	UpsertCollaborator(ctx context.Context, playlistID, userID string, canEdit, canInvite bool) error
	UpdateCollaborator(ctx context.Context, playlistID, userID string, canEdit, canInvite bool) error
	RemoveCollaborator(ctx context.Context, playlistID, userID string) error

	ListFollowers(ctx context.Context, playlistID string) ([]Follower, error)
	IsFollowing(ctx context.Context, playlistID, userID string) (bool, error)
	InsertFollow(ctx context.Context, playlistID, userID string) error
	DeleteFollow(ctx context.Context, playlistID, userID string) error
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const playlistSelect = `
	SELECT id, owner_id, name, description, is_public, created_at
	FROM playlists
`

func (s *PostgresStore) GetPlaylist(ctx context.Context, id string) (*Playlist, error) {
	var pl Playlist
	err := s.db.QueryRow(ctx, playlistSelect+`WHERE id = $1`, id).Scan(
		&pl.ID,
		&pl.OwnerID,
		&pl.Name,
		&pl.Description,
		&pl.IsPublic,
		&pl.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pl, nil
}

const playlistSummarySelect = `
	SELECT p.id, p.owner_id, p.name, p.description, p.is_public, p.created_at,
		(SELECT COUNT(*) FROM playlist_tracks pt WHERE pt.playlist_id = p.id) AS track_count,
		(SELECT COUNT(*) FROM playlist_follows pf WHERE pf.playlist_id = p.id) AS follower_count
	FROM playlists p
`

func (s *PostgresStore) ListPublicPlaylists(ctx context.Context) ([]PlaylistSummary, error) {
	return s.listSummaries(ctx, playlistSummarySelect+`
		WHERE p.is_public = TRUE
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT 200
	`)
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID string) ([]PlaylistSummary, error) {
	return s.listSummaries(ctx, playlistSummarySelect+`
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC, p.id ASC
	`, ownerID)
}

func (s *PostgresStore) listSummaries(ctx context.Context, query string, args ...any) ([]PlaylistSummary, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []PlaylistSummary{}
	for rows.Next() {
		var pl PlaylistSummary
		if err := rows.Scan(
			&pl.ID,
			&pl.OwnerID,
			&pl.Name,
			&pl.Description,
			&pl.IsPublic,
			&pl.CreatedAt,
			&pl.TrackCount,
			&pl.FollowerCount,
		); err != nil {
			return nil, err
		}
		playlists = append(playlists, pl)
	}
	return playlists, rows.Err()
}

func (s *PostgresStore) InsertPlaylist(ctx context.Context, ownerID, name, description string, isPublic bool) (*Playlist, error) {
	pl := Playlist{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		IsPublic:    isPublic,
	}
	err := s.db.QueryRow(ctx, `
		INSERT INTO playlists (id, owner_id, name, description, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, pl.ID, pl.OwnerID, pl.Name, pl.Description, pl.IsPublic).Scan(&pl.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &pl, nil
}

// DeletePlaylist removes the playlist row. Tracks, follows and
// collaborator grants go with it via ON DELETE CASCADE.
func (s *PostgresStore) DeletePlaylist(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) ListTracks(ctx context.Context, playlistID string) ([]PlaylistTrack, error) {
	rows, err := s.db.Query(ctx, `
		SELECT pt.track_id, t.title, t.owner_id, pt.position, pt.added_at, pt.added_by
		FROM playlist_tracks pt
		JOIN tracks t ON t.id = pt.track_id
		WHERE pt.playlist_id = $1
		ORDER BY pt.position ASC, pt.track_id ASC
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := []PlaylistTrack{}
	for rows.Next() {
		var pt PlaylistTrack
		if err := rows.Scan(
			&pt.TrackID,
			&pt.Title,
			&pt.OwnerID,
			&pt.Position,
			&pt.AddedAt,
			&pt.AddedByID,
		); err != nil {
			return nil, err
		}
		tracks = append(tracks, pt)
	}
	return tracks, rows.Err()
}

// AddTrack appends the track at the next free position. Re-adding an
// existing track is a no-op, so membership stays a set.
func (s *PostgresStore) AddTrack(ctx context.Context, playlistID, trackID, addedBy string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO playlist_tracks (playlist_id, track_id, position, added_by)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1, $3
		FROM playlist_tracks
		WHERE playlist_id = $1
		ON CONFLICT (playlist_id, track_id) DO NOTHING
	`, playlistID, trackID, addedBy)
	return err
}

func (s *PostgresStore) RemoveTrack(ctx context.Context, playlistID, trackID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM playlist_tracks
		WHERE playlist_id = $1 AND track_id = $2
	`, playlistID, trackID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) ListCollaborators(ctx context.Context, playlistID string) ([]Collaborator, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, playlist_id, user_id, can_edit, can_invite, created_at
		FROM playlist_collaborators
		WHERE playlist_id = $1
		ORDER BY created_at ASC, user_id ASC
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collabs := []Collaborator{}
	for rows.Next() {
		var c Collaborator
		if err := rows.Scan(
			&c.ID,
			&c.PlaylistID,
			&c.UserID,
			&c.CanEdit,
			&c.CanInvite,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		collabs = append(collabs, c)
	}
	return collabs, rows.Err()
}

// UpsertCollaborator creates the grant or overwrites the flags of an
// existing one, keeping a single row per (playlist, user).
func (s *PostgresStore) UpsertCollaborator(ctx context.Context, playlistID, userID string, canEdit, canInvite bool) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO playlist_collaborators (id, playlist_id, user_id, can_edit, can_invite)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (playlist_id, user_id)
		DO UPDATE SET can_edit = EXCLUDED.can_edit, can_invite = EXCLUDED.can_invite
	`, uuid.NewString(), playlistID, userID, canEdit, canInvite)
	return err
}

func (s *PostgresStore) UpdateCollaborator(ctx context.Context, playlistID, userID string, canEdit, canInvite bool) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE playlist_collaborators
		SET can_edit = $3, can_invite = $4
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID, canEdit, canInvite)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) RemoveCollaborator(ctx context.Context, playlistID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM playlist_collaborators
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) ListFollowers(ctx context.Context, playlistID string) ([]Follower, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, created_at
		FROM playlist_follows
		WHERE playlist_id = $1
		ORDER BY created_at ASC
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followers := []Follower{}
	for rows.Next() {
		var f Follower
		if err := rows.Scan(&f.UserID, &f.CreatedAt); err != nil {
			return nil, err
		}
		followers = append(followers, f)
	}
	return followers, rows.Err()
}

func (s *PostgresStore) IsFollowing(ctx context.Context, playlistID, userID string) (bool, error) {
	var one int
	err := s.db.QueryRow(ctx, `
		SELECT 1 FROM playlist_follows
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) InsertFollow(ctx context.Context, playlistID, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO playlist_follows (playlist_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, user_id) DO NOTHING
	`, playlistID, userID)
	return err
}

func (s *PostgresStore) DeleteFollow(ctx context.Context, playlistID, userID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM playlist_follows
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	return err
}
