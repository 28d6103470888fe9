package playlist

import (
	"time"

	"streaming-service/internal/directory"
)

// Playlist metadata. Tracks, followers and collaborators are modelled
// separately and joined into PlaylistDetail.
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PlaylistSummary struct {
	Playlist
	TrackCount    int `json:"trackCount"`
	FollowerCount int `json:"followerCount"`
}

// PlaylistTrack is a membership row. Set semantics per (playlist, track);
// Position only preserves insertion order for display.
type PlaylistTrack struct {
	TrackID   string                     `json:"trackId"`
	Title     string                     `json:"title"`
	OwnerID   string                     `json:"ownerId"`
	Position  int                        `json:"position"`
	AddedAt   time.Time                  `json:"addedAt"`
	AddedBy   *directory.UserWithProfile `json:"addedBy,omitempty"`
	AddedByID string                     `json:"addedById"`
}

type Follower struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Collaborator grants delegated authority below the owner. At most one
// row per (playlist, user); the owner never has one.
type Collaborator struct {
	ID         string                     `json:"id"`
	PlaylistID string                     `json:"playlistId"`
	UserID     string                     `json:"userId"`
	CanEdit    bool                       `json:"canEdit"`
	CanInvite  bool                       `json:"canInvite"`
	CreatedAt  time.Time                  `json:"createdAt"`
	User       *directory.UserWithProfile `json:"user,omitempty"`
}

// PlaylistDetail is the full aggregate returned after every mutation.
type PlaylistDetail struct {
	Playlist
	Owner         *directory.UserWithProfile `json:"owner,omitempty"`
	Tracks        []PlaylistTrack            `json:"tracks"`
	Followers     []Follower                 `json:"followers"`
	Collaborators []Collaborator             `json:"collaborators"`
	TrackCount    int                        `json:"trackCount"`
	FollowerCount int                        `json:"followerCount"`
}

type FollowResponse struct {
	PlaylistID string `json:"playlistId"`
	Following  bool   `json:"following"`
}

// err domain
type playlistError struct {
	status int
	msg    string
}

func (e *playlistError) Error() string {
	return e.msg
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}
