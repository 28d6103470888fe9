package stream

import (
	"time"

	"streaming-service/internal/directory"
)

// Stream is one recorded play of a track by a user. Rows are immutable
// historical facts: appended once, never updated or deleted.
type Stream struct {
	ID        string    `json:"id"`
	TrackID   string    `json:"trackId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Payout is an immutable financial record of money credited to an artist.
type Payout struct {
	ID        string    `json:"id"`
	ArtistID  string    `json:"artistId"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrackPlays is a ledger aggregate: total plays for one track.
type TrackPlays struct {
	TrackID   string `json:"trackId"`
	PlayCount int    `json:"playCount"`
}

// ArtistPlays is a ledger aggregate: total plays across all of an
// artist's tracks.
type ArtistPlays struct {
	ArtistID  string `json:"artistId"`
	PlayCount int    `json:"playCount"`
}

type TopTrack struct {
	Track     *directory.Track `json:"track"`
	PlayCount int              `json:"playCount"`
}

type TopArtist struct {
	Artist    *directory.UserWithProfile `json:"artist"`
	PlayCount int                        `json:"playCount"`
}

type RoyaltyRow struct {
	Artist        *directory.UserWithProfile `json:"artist"`
	PlayCount     int                        `json:"playCount"`
	Royalties     float64                    `json:"royalties"`
	RatePerStream float64                    `json:"ratePerStream"`
}

type Earnings struct {
	ArtistID      string  `json:"artistId"`
	TotalEarnings float64 `json:"totalEarnings"`
	Currency      string  `json:"currency"`
}

type RangeEarnings struct {
	ArtistID      string    `json:"artistId"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	TotalEarnings float64   `json:"totalEarnings"`
	Currency      string    `json:"currency"`
}

type MonthlyEarnings struct {
	Month    string  `json:"month"` // YYYY-MM, UTC
	Earnings float64 `json:"earnings"`
	Currency string  `json:"currency"`
}

// err domain
type streamError struct {
	status int
	msg    string
}

func (e *streamError) Error() string {
	return e.msg
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}
