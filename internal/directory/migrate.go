package directory

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS pgcrypto`); err != nil {
		log.Printf("streaming-service: migrate pgcrypto: %v", err)
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS users (
          id                  uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          email               TEXT NOT NULL UNIQUE,
          role                TEXT NOT NULL DEFAULT 'listener',
          subscription_active BOOLEAN NOT NULL DEFAULT FALSE,
          created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		log.Printf("streaming-service: migrate users: %v", err)
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS user_profiles (
          user_id      uuid PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
          display_name TEXT NOT NULL DEFAULT '',
          bio          TEXT NOT NULL DEFAULT '',
          avatar_url   TEXT NOT NULL DEFAULT ''
      )
    `); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS tracks (
          id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          owner_id   uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          title      TEXT NOT NULL,
          play_count INT NOT NULL DEFAULT 0,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `); err != nil {
		return err
	}

	return nil
}
