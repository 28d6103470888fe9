package directory

import "time"

// User is an account identity. Credentials and sessions are owned by the
// auth layer; this service only reads identities.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	SubscriptionActive bool      `json:"subscriptionActive"`
	CreatedAt          time.Time `json:"createdAt"`
}

type Profile struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
}

// UserWithProfile is the nested shape embedded in playlist and royalty
// aggregates.
type UserWithProfile struct {
	User
	Profile *Profile `json:"profile,omitempty"`
}

type Track struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	PlayCount int       `json:"playCount"`
	CreatedAt time.Time `json:"createdAt"`
}
