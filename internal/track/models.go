package track

import (
	"time"

	"streaming-service/internal/directory"
)

// Track carries the live engagement counts the ranker scores on.
// StreamCount comes from the ledger (exact), not from the denormalized
// play_count cache on the tracks table.
type Track struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"createdAt"`
	LikeCount   int       `json:"likeCount"`
	StreamCount int       `json:"streamCount"`
	Score       float64   `json:"score,omitempty"`
}

type TrackDetail struct {
	Track
	Owner *directory.UserWithProfile `json:"owner"`
}

type Feed struct {
	Trending []Track `json:"trending"`
	Latest   []Track `json:"latest"`
}

type LikeResponse struct {
	TrackID string `json:"trackId"`
	Liked   bool   `json:"liked"`
}

// err domain
type trackError struct {
	status int
	msg    string
}

func (e *trackError) Error() string {
	return e.msg
}
