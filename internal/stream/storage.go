package stream

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	InsertStream(ctx context.Context, trackID, userID string) (*Stream, error)
	// IncrementPlayCount bumps the denormalized counter on tracks. It is a
	// cache; CountByTrack stays the source of truth.
	IncrementPlayCount(ctx context.Context, trackID string) error
	CountByTrack(ctx context.Context, trackID string) (int, error)
	ListStreams(ctx context.Context) ([]Stream, error)
	ListByTrack(ctx context.Context, trackID string) ([]Stream, error)
	ListByUser(ctx context.Context, userID string) ([]Stream, error)
	TopTracks(ctx context.Context, limit int) ([]TrackPlays, error)
	PlaysByArtist(ctx context.Context) ([]ArtistPlays, error)
	// Payout ledger
	InsertPayout(ctx context.Context, artistID string, amount float64) (*Payout, error)
	ListPayouts(ctx context.Context) ([]Payout, error)
	ListPayoutsByArtist(ctx context.Context, artistID string) ([]Payout, error)
	ListPayoutsInRange(ctx context.Context, artistID string, start, end time.Time) ([]Payout, error)
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS streams (
          id         uuid PRIMARY KEY,
          track_id   uuid NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
          user_id    uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE INDEX IF NOT EXISTS idx_streams_track ON streams(track_id, created_at)
    `); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `
      CREATE INDEX IF NOT EXISTS idx_streams_user ON streams(user_id, created_at)
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS payouts (
          id         uuid PRIMARY KEY,
          artist_id  uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          amount     DOUBLE PRECISION NOT NULL,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE INDEX IF NOT EXISTS idx_payouts_artist ON payouts(artist_id, created_at)
    `); err != nil {
		return err
	}

	return nil
}

func (s *PostgresStore) InsertStream(ctx context.Context, trackID, userID string) (*Stream, error) {
	st := Stream{ID: uuid.NewString(), TrackID: trackID, UserID: userID}
	err := s.db.QueryRow(ctx, `
        INSERT INTO streams (id, track_id, user_id)
        VALUES ($1, $2, $3)
        RETURNING created_at
    `, st.ID, trackID, userID).Scan(&st.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *PostgresStore) IncrementPlayCount(ctx context.Context, trackID string) error {
	_, err := s.db.Exec(ctx, `
        UPDATE tracks SET play_count = play_count + 1 WHERE id = $1
    `, trackID)
	return err
}

func (s *PostgresStore) CountByTrack(ctx context.Context, trackID string) (int, error) {
	var total int
	err := s.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM streams WHERE track_id = $1
    `, trackID).Scan(&total)
	return total, err
}

func (s *PostgresStore) ListStreams(ctx context.Context) ([]Stream, error) {
	return s.listStreams(ctx, `
        SELECT id, track_id, user_id, created_at
        FROM streams
        ORDER BY created_at ASC
    `)
}

func (s *PostgresStore) ListByTrack(ctx context.Context, trackID string) ([]Stream, error) {
	return s.listStreams(ctx, `
        SELECT id, track_id, user_id, created_at
        FROM streams
        WHERE track_id = $1
        ORDER BY created_at ASC
    `, trackID)
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Stream, error) {
	return s.listStreams(ctx, `
        SELECT id, track_id, user_id, created_at
        FROM streams
        WHERE user_id = $1
        ORDER BY created_at ASC
    `, userID)
}

func (s *PostgresStore) listStreams(ctx context.Context, sql string, args ...any) ([]Stream, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	streams := []Stream{}
	for rows.Next() {
		var st Stream
		if err := rows.Scan(&st.ID, &st.TrackID, &st.UserID, &st.CreatedAt); err != nil {
			return nil, err
		}
		streams = append(streams, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return streams, nil
}

func (s *PostgresStore) TopTracks(ctx context.Context, limit int) ([]TrackPlays, error) {
	rows, err := s.db.Query(ctx, `
        SELECT track_id, COUNT(*) AS plays
        FROM streams
        GROUP BY track_id
        ORDER BY plays DESC, track_id ASC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TrackPlays{}
	for rows.Next() {
		var tp TrackPlays
		if err := rows.Scan(&tp.TrackID, &tp.PlayCount); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) PlaysByArtist(ctx context.Context) ([]ArtistPlays, error) {
	rows, err := s.db.Query(ctx, `
        SELECT t.owner_id, COUNT(*) AS plays
        FROM streams s
        JOIN tracks t ON t.id = s.track_id
        GROUP BY t.owner_id
        ORDER BY plays DESC, t.owner_id ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ArtistPlays{}
	for rows.Next() {
		var ap ArtistPlays
		if err := rows.Scan(&ap.ArtistID, &ap.PlayCount); err != nil {
			return nil, err
		}
		out = append(out, ap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) InsertPayout(ctx context.Context, artistID string, amount float64) (*Payout, error) {
	p := Payout{ID: uuid.NewString(), ArtistID: artistID, Amount: amount}
	err := s.db.QueryRow(ctx, `
        INSERT INTO payouts (id, artist_id, amount)
        VALUES ($1, $2, $3)
        RETURNING created_at
    `, p.ID, artistID, amount).Scan(&p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) ListPayouts(ctx context.Context) ([]Payout, error) {
	return s.listPayouts(ctx, `
        SELECT id, artist_id, amount, created_at
        FROM payouts
        ORDER BY created_at DESC
    `)
}

func (s *PostgresStore) ListPayoutsByArtist(ctx context.Context, artistID string) ([]Payout, error) {
	return s.listPayouts(ctx, `
        SELECT id, artist_id, amount, created_at
        FROM payouts
        WHERE artist_id = $1
        ORDER BY created_at ASC
    `, artistID)
}

func (s *PostgresStore) ListPayoutsInRange(ctx context.Context, artistID string, start, end time.Time) ([]Payout, error) {
	return s.listPayouts(ctx, `
        SELECT id, artist_id, amount, created_at
        FROM payouts
        WHERE artist_id = $1 AND created_at >= $2 AND created_at <= $3
        ORDER BY created_at ASC
    `, artistID, start, end)
}

func (s *PostgresStore) listPayouts(ctx context.Context, sql string, args ...any) ([]Payout, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payouts := []Payout{}
	for rows.Next() {
		var p Payout
		if err := rows.Scan(&p.ID, &p.ArtistID, &p.Amount, &p.CreatedAt); err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payouts, nil
}
