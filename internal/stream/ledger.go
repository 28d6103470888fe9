package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"streaming-service/internal/directory"
)

// Directory is the slice of the identity directory this package consumes.
type Directory interface {
	GetUser(ctx context.Context, id string) (*directory.User, error)
	GetTrack(ctx context.Context, id string) (*directory.Track, error)
	GetUserWithProfile(ctx context.Context, id string) (*directory.UserWithProfile, error)
}

const streamRecordedChannel = "stream.recorded"

// recordStream appends a play event to the ledger. The play counter bump
// and the bus publish are side effects that must never fail the append.
func recordStream(ctx context.Context, store Store, dir Directory, rdb *redis.Client, trackID, userID string) (*Stream, error) {
	if trackID == "" {
		return nil, &validationError{"trackId is required"}
	}
	if userID == "" {
		return nil, &validationError{"userId is required"}
	}

	if _, err := dir.GetTrack(ctx, trackID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, &streamError{status: http.StatusNotFound, msg: "track not found"}
		}
		return nil, err
	}
	if _, err := dir.GetUser(ctx, userID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, &streamError{status: http.StatusNotFound, msg: "user not found"}
		}
		return nil, err
	}

	st, err := store.InsertStream(ctx, trackID, userID)
	if err != nil {
		return nil, err
	}

	if err := store.IncrementPlayCount(ctx, trackID); err != nil {
		log.Printf("streaming-service: increment play_count for %s: %v", trackID, err)
	}

	publishStreamRecorded(ctx, rdb, st)

	return st, nil
}

func publishStreamRecorded(ctx context.Context, rdb *redis.Client, st *Stream) {
	if rdb == nil {
		return
	}
	payload := map[string]any{
		"userId":    st.UserID,
		"trackId":   st.TrackID,
		"timestamp": st.CreatedAt.UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("streaming-service: marshal stream event: %v", err)
		return
	}
	if err := rdb.Publish(ctx, streamRecordedChannel, string(data)).Err(); err != nil {
		log.Printf("streaming-service: publish stream event: %v", err)
	}
}

func topTracks(ctx context.Context, store Store, dir Directory, limit int) ([]TopTrack, error) {
	plays, err := store.TopTracks(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := []TopTrack{}
	for _, tp := range plays {
		track, err := dir.GetTrack(ctx, tp.TrackID)
		if err != nil {
			if errors.Is(err, directory.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, TopTrack{Track: track, PlayCount: tp.PlayCount})
	}
	return out, nil
}
