package track

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"streaming-service/internal/directory"
)

// Directory is the slice of the identity directory this package consumes.
type Directory interface {
	GetTrack(ctx context.Context, id string) (*directory.Track, error)
	GetUserWithProfile(ctx context.Context, id string) (*directory.UserWithProfile, error)
}

func trendingTracks(ctx context.Context, store Store, now time.Time) ([]Track, error) {
	tracks, err := store.ListTracksWithCounts(ctx)
	if err != nil {
		return nil, err
	}
	return rankTracks(tracks, now), nil
}

func feed(ctx context.Context, store Store, now time.Time) (*Feed, error) {
	trending, err := trendingTracks(ctx, store, now)
	if err != nil {
		return nil, err
	}
	latest, err := store.ListLatest(ctx, feedSize)
	if err != nil {
		return nil, err
	}
	f := buildFeed(trending, latest)
	return &f, nil
}

// recommendations suggests tracks by the artists behind the user's
// likes. A user with no likes yet gets the first uploads in the catalog
// instead of an empty list.
func recommendations(ctx context.Context, store Store, userID string) ([]Track, error) {
	artists, err := store.LikedArtistIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(artists) == 0 {
		return store.ListFirst(ctx, recommendSize)
	}
	return store.ListByArtists(ctx, artists, recommendSize)
}

// toggleLike flips the like relation for (track, user). Check-then-act:
// concurrent identical requests settle on last write wins.
func toggleLike(ctx context.Context, store Store, dir Directory, trackID, userID string) (*LikeResponse, error) {
	if _, err := dir.GetTrack(ctx, trackID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, &trackError{status: http.StatusNotFound, msg: "track not found"}
		}
		return nil, err
	}

	liked, err := store.HasLike(ctx, trackID, userID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := store.DeleteLike(ctx, trackID, userID); err != nil {
			return nil, err
		}
		return &LikeResponse{TrackID: trackID, Liked: false}, nil
	}

	if err := store.InsertLike(ctx, trackID, userID); err != nil {
		return nil, err
	}
	return &LikeResponse{TrackID: trackID, Liked: true}, nil
}

func trackDetails(ctx context.Context, store Store, dir Directory, trackID string) (*TrackDetail, error) {
	t, err := store.GetTrackWithCounts(ctx, trackID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &trackError{status: http.StatusNotFound, msg: "track not found"}
		}
		return nil, err
	}

	owner, err := dir.GetUserWithProfile(ctx, t.OwnerID)
	if err != nil && !errors.Is(err, directory.ErrNotFound) {
		return nil, err
	}

	return &TrackDetail{Track: *t, Owner: owner}, nil
}
