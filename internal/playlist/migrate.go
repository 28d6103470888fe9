package playlist

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AutoMigrate creates the playlist tables. Runs after the directory
// migration since every table here references users or tracks.
func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlists (
          id          uuid PRIMARY KEY,
          owner_id    uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          name        TEXT NOT NULL,
          description TEXT NOT NULL DEFAULT '',
          is_public   BOOLEAN NOT NULL DEFAULT TRUE,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlist_tracks (
          playlist_id uuid NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          track_id    uuid NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
          position    INT NOT NULL,
          added_by    uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          added_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
          PRIMARY KEY (playlist_id, track_id)
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlist_follows (
          playlist_id uuid NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          user_id     uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
          PRIMARY KEY (playlist_id, user_id)
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlist_collaborators (
          id          uuid PRIMARY KEY,
          playlist_id uuid NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          user_id     uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          can_edit    BOOLEAN NOT NULL DEFAULT FALSE,
          can_invite  BOOLEAN NOT NULL DEFAULT FALSE,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
          UNIQUE (playlist_id, user_id)
      )
    `); err != nil {
		return err
	}

	return nil
}
