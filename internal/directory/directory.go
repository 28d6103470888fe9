package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a referenced user or track does not exist.
var ErrNotFound = errors.New("not found")

// Directory resolves user and track identities for the other packages.
// It does not create or mutate them; that belongs to the account and
// upload flows outside this service.
type Directory struct {
	db DB
}

func New(db DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	err := d.db.QueryRow(ctx, `
		SELECT id, email, role, subscription_active, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Role, &u.SubscriptionActive, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *Directory) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := d.db.QueryRow(ctx, `
		SELECT id, email, role, subscription_active, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Role, &u.SubscriptionActive, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserWithProfile returns the user with profile data attached. A user
// without a profile row is still a valid user; the profile is nil then.
func (d *Directory) GetUserWithProfile(ctx context.Context, id string) (*UserWithProfile, error) {
	var (
		uw          UserWithProfile
		displayName *string
		bio         *string
		avatarURL   *string
	)
	err := d.db.QueryRow(ctx, `
		SELECT u.id, u.email, u.role, u.subscription_active, u.created_at,
		       p.display_name, p.bio, p.avatar_url
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`, id).Scan(
		&uw.ID, &uw.Email, &uw.Role, &uw.SubscriptionActive, &uw.CreatedAt,
		&displayName, &bio, &avatarURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if displayName != nil || bio != nil || avatarURL != nil {
		uw.Profile = &Profile{}
		if displayName != nil {
			uw.Profile.DisplayName = *displayName
		}
		if bio != nil {
			uw.Profile.Bio = *bio
		}
		if avatarURL != nil {
			uw.Profile.AvatarURL = *avatarURL
		}
	}
	return &uw, nil
}

func (d *Directory) GetTrack(ctx context.Context, id string) (*Track, error) {
	var t Track
	err := d.db.QueryRow(ctx, `
		SELECT id, owner_id, title, play_count, created_at
		FROM tracks
		WHERE id = $1
	`, id).Scan(&t.ID, &t.OwnerID, &t.Title, &t.PlayCount, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
