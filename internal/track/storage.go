package track

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	ListTracksWithCounts(ctx context.Context) ([]Track, error)
	ListLatest(ctx context.Context, limit int) ([]Track, error)
	ListFirst(ctx context.Context, limit int) ([]Track, error)
	GetTrackWithCounts(ctx context.Context, id string) (*Track, error)
	// Recommendation primitives: the artists behind a user's likes, and
	// the catalog filtered to a set of artists.
	LikedArtistIDs(ctx context.Context, userID string) ([]string, error)
	ListByArtists(ctx context.Context, artistIDs []string, limit int) ([]Track, error)
	// Like toggle primitives. Check-then-act: concurrent identical
	// requests may race; last write wins.
	HasLike(ctx context.Context, trackID, userID string) (bool, error)
	InsertLike(ctx context.Context, trackID, userID string) error
	DeleteLike(ctx context.Context, trackID, userID string) error
	// RecountPlays repairs the denormalized play_count cache from the
	// stream ledger.
	RecountPlays(ctx context.Context) error
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS track_likes (
          track_id   uuid NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
          user_id    uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
          PRIMARY KEY (track_id, user_id)
      )
    `); err != nil {
		return err
	}
	return nil
}

const trackCountsSelect = `
    SELECT t.id, t.owner_id, t.title, t.created_at,
           (SELECT COUNT(*) FROM track_likes l WHERE l.track_id = t.id) AS like_count,
           (SELECT COUNT(*) FROM streams s WHERE s.track_id = t.id) AS stream_count
    FROM tracks t
`

func (s *PostgresStore) ListTracksWithCounts(ctx context.Context) ([]Track, error) {
	return s.listTracks(ctx, trackCountsSelect+` ORDER BY t.created_at ASC`)
}

func (s *PostgresStore) ListLatest(ctx context.Context, limit int) ([]Track, error) {
	return s.listTracks(ctx, trackCountsSelect+` ORDER BY t.created_at DESC LIMIT $1`, limit)
}

func (s *PostgresStore) listTracks(ctx context.Context, sql string, args ...any) ([]Track, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := []Track{}
	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.CreatedAt, &t.LikeCount, &t.StreamCount); err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

func (s *PostgresStore) ListFirst(ctx context.Context, limit int) ([]Track, error) {
	return s.listTracks(ctx, trackCountsSelect+` ORDER BY t.created_at ASC, t.id ASC LIMIT $1`, limit)
}

func (s *PostgresStore) LikedArtistIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
        SELECT DISTINCT t.owner_id
        FROM track_likes l
        JOIN tracks t ON t.id = l.track_id
        WHERE l.user_id = $1
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		artists = append(artists, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return artists, nil
}

func (s *PostgresStore) ListByArtists(ctx context.Context, artistIDs []string, limit int) ([]Track, error) {
	return s.listTracks(ctx, trackCountsSelect+` WHERE t.owner_id = ANY($1) ORDER BY t.created_at ASC, t.id ASC LIMIT $2`, artistIDs, limit)
}

func (s *PostgresStore) GetTrackWithCounts(ctx context.Context, id string) (*Track, error) {
	var t Track
	err := s.db.QueryRow(ctx, trackCountsSelect+` WHERE t.id = $1`, id).
		Scan(&t.ID, &t.OwnerID, &t.Title, &t.CreatedAt, &t.LikeCount, &t.StreamCount)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStore) HasLike(ctx context.Context, trackID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
        SELECT EXISTS(SELECT 1 FROM track_likes WHERE track_id = $1 AND user_id = $2)
    `, trackID, userID).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) InsertLike(ctx context.Context, trackID, userID string) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO track_likes (track_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (track_id, user_id) DO NOTHING
    `, trackID, userID)
	return err
}

func (s *PostgresStore) DeleteLike(ctx context.Context, trackID, userID string) error {
	_, err := s.db.Exec(ctx, `
        DELETE FROM track_likes WHERE track_id = $1 AND user_id = $2
    `, trackID, userID)
	return err
}

func (s *PostgresStore) RecountPlays(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
        UPDATE tracks t
        SET play_count = sub.plays
        FROM (
            SELECT track_id, COUNT(*) AS plays
            FROM streams
            GROUP BY track_id
        ) sub
        WHERE t.id = sub.track_id AND t.play_count <> sub.plays
    `)
	return err
}
