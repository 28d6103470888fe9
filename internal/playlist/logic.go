package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"streaming-service/internal/directory"
)

// Directory is the slice of the identity directory this package consumes.
type Directory interface {
	GetUserByEmail(ctx context.Context, email string) (*directory.User, error)
	GetTrack(ctx context.Context, id string) (*directory.Track, error)
	GetUserWithProfile(ctx context.Context, id string) (*directory.UserWithProfile, error)
}

const playlistEventsChannel = "playlist.events"

func createPlaylist(ctx context.Context, store Store, dir Directory, rdb *redis.Client, ownerID, name, description string, isPublic bool) (*PlaylistDetail, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || len(name) > 200 {
		return nil, &validationError{"name must be between 1 and 200 characters"}
	}
	if len(description) > 1000 {
		return nil, &validationError{"description is too long"}
	}

	pl, err := store.InsertPlaylist(ctx, ownerID, name, description, isPublic)
	if err != nil {
		return nil, err
	}

	publishPlaylistEvent(ctx, rdb, "playlist.created", map[string]any{"playlist": pl})

	return playlistDetails(ctx, store, dir, pl.ID)
}

// playlistDetails loads the full aggregate. Visibility is deliberately
// open below authentication: private playlists hide from the public
// listing, but any authenticated caller holding the id can read the
// detail view. The handler enforces the auth gate.
func playlistDetails(ctx context.Context, store Store, dir Directory, id string) (*PlaylistDetail, error) {
	pl, err := store.GetPlaylist(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &playlistError{status: http.StatusNotFound, msg: "playlist not found"}
		}
		return nil, err
	}

	tracks, err := store.ListTracks(ctx, id)
	if err != nil {
		return nil, err
	}
	followers, err := store.ListFollowers(ctx, id)
	if err != nil {
		return nil, err
	}
	collabs, err := store.ListCollaborators(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &PlaylistDetail{
		Playlist:      *pl,
		Tracks:        tracks,
		Followers:     followers,
		Collaborators: collabs,
		TrackCount:    len(tracks),
		FollowerCount: len(followers),
	}

	detail.Owner = lookupProfile(ctx, dir, pl.OwnerID)
	for i := range detail.Collaborators {
		detail.Collaborators[i].User = lookupProfile(ctx, dir, detail.Collaborators[i].UserID)
	}
	for i := range detail.Tracks {
		detail.Tracks[i].AddedBy = lookupProfile(ctx, dir, detail.Tracks[i].AddedByID)
	}

	return detail, nil
}

// lookupProfile is best-effort. A deleted user leaves a nil profile on
// the aggregate rather than failing the whole read.
func lookupProfile(ctx context.Context, dir Directory, userID string) *directory.UserWithProfile {
	u, err := dir.GetUserWithProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, directory.ErrNotFound) {
			log.Printf("streaming-service: lookup profile %s: %v", userID, err)
		}
		return nil
	}
	return u
}

func deletePlaylist(ctx context.Context, store Store, playlistID, actorID string) error {
	pl, err := store.GetPlaylist(ctx, playlistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &playlistError{status: http.StatusNotFound, msg: "playlist not found"}
		}
		return err
	}
	if pl.OwnerID != actorID {
		return &playlistError{status: http.StatusForbidden, msg: "only the owner can delete a playlist"}
	}
	return store.DeletePlaylist(ctx, playlistID)
}

// actorPermissions re-reads the grants before every protected action so
// that a revoked collaborator loses access on their next request.
func actorPermissions(ctx context.Context, store Store, playlistID, actorID string) (*Playlist, permissions, error) {
	pl, err := store.GetPlaylist(ctx, playlistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, permissions{}, &playlistError{status: http.StatusNotFound, msg: "playlist not found"}
		}
		return nil, permissions{}, err
	}
	collabs, err := store.ListCollaborators(ctx, playlistID)
	if err != nil {
		return nil, permissions{}, err
	}
	return pl, permissionsFor(actorID, pl.OwnerID, collabs), nil
}

func addTrack(ctx context.Context, store Store, dir Directory, rdb *redis.Client, playlistID, actorID, trackID string) (*PlaylistDetail, error) {
	if trackID == "" {
		return nil, &validationError{"trackId is required"}
	}

	_, perms, err := actorPermissions(ctx, store, playlistID, actorID)
	if err != nil {
		return nil, err
	}
	if !perms.canEdit {
		return nil, &playlistError{status: http.StatusForbidden, msg: "you cannot edit this playlist"}
	}

	if _, err := dir.GetTrack(ctx, trackID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, &playlistError{status: http.StatusNotFound, msg: "track not found"}
		}
		return nil, err
	}

	if err := store.AddTrack(ctx, playlistID, trackID, actorID); err != nil {
		return nil, err
	}

	publishPlaylistEvent(ctx, rdb, "playlist.track.added", map[string]any{
		"playlistId": playlistID,
		"trackId":    trackID,
		"addedBy":    actorID,
	})

	return playlistDetails(ctx, store, dir, playlistID)
}

func removeTrack(ctx context.Context, store Store, dir Directory, rdb *redis.Client, playlistID, actorID, trackID string) (*PlaylistDetail, error) {
	_, perms, err := actorPermissions(ctx, store, playlistID, actorID)
	if err != nil {
		return nil, err
	}
	if !perms.canEdit {
		return nil, &playlistError{status: http.StatusForbidden, msg: "you cannot edit this playlist"}
	}

	if err := store.RemoveTrack(ctx, playlistID, trackID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &playlistError{status: http.StatusNotFound, msg: "track is not in this playlist"}
		}
		return nil, err
	}

	publishPlaylistEvent(ctx, rdb, "playlist.track.removed", map[string]any{
		"playlistId": playlistID,
		"trackId":    trackID,
		"removedBy":  actorID,
	})

	return playlistDetails(ctx, store, dir, playlistID)
}

// inviteCollaborator adds or updates a grant, looked up by email. An
// invite for an existing collaborator overwrites their flags instead of
// creating a second row.
func inviteCollaborator(ctx context.Context, store Store, dir Directory, playlistID, actorID, email string, canEdit, canInvite bool) (*PlaylistDetail, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, &validationError{"email is required"}
	}

	pl, perms, err := actorPermissions(ctx, store, playlistID, actorID)
	if err != nil {
		return nil, err
	}
	if !perms.canInvite {
		return nil, &playlistError{status: http.StatusForbidden, msg: "you cannot invite collaborators"}
	}

	invitee, err := dir.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, &playlistError{status: http.StatusNotFound, msg: "no user with that email"}
		}
		return nil, err
	}
	if invitee.ID == pl.OwnerID {
		return nil, &validationError{"the owner is already a collaborator"}
	}

	if err := store.UpsertCollaborator(ctx, playlistID, invitee.ID, canEdit, canInvite); err != nil {
		return nil, err
	}

	return playlistDetails(ctx, store, dir, playlistID)
}

// listCollaborators is a management view, so unlike the detail aggregate
// it is owner-only.
func listCollaborators(ctx context.Context, store Store, dir Directory, playlistID, actorID string) ([]Collaborator, error) {
	_, perms, err := actorPermissions(ctx, store, playlistID, actorID)
	if err != nil {
		return nil, err
	}
	if !perms.isOwner {
		return nil, &playlistError{status: http.StatusForbidden, msg: "only the owner can manage collaborators"}
	}

	collabs, err := store.ListCollaborators(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	for i := range collabs {
		collabs[i].User = lookupProfile(ctx, dir, collabs[i].UserID)
	}
	return collabs, nil
}

func updateCollaborator(ctx context.Context, store Store, dir Directory, playlistID, actorID, userID string, canEdit, canInvite bool) (*PlaylistDetail, error) {
	_, perms, err := actorPermissions(ctx, store, playlistID, actorID)
	if err != nil {
		return nil, err
	}
	if !perms.isOwner {
		return nil, &playlistError{status: http.StatusForbidden, msg: "only the owner can manage collaborators"}
	}

	if err := store.UpdateCollaborator(ctx, playlistID, userID, canEdit, canInvite); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &playlistError{status: http.StatusNotFound, msg: "collaborator not found"}
		}
		return nil, err
	}

	return playlistDetails(ctx, store, dir, playlistID)
}

func removeCollaborator(ctx context.Context, store Store, dir Directory, playlistID, actorID, userID string) (*PlaylistDetail, error) {
	_, perms, err := actorPermissions(ctx, store, playlistID, actorID)
	if err != nil {
		return nil, err
	}
	if !perms.isOwner {
		return nil, &playlistError{status: http.StatusForbidden, msg: "only the owner can manage collaborators"}
	}

	if err := store.RemoveCollaborator(ctx, playlistID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &playlistError{status: http.StatusNotFound, msg: "collaborator not found"}
		}
		return nil, err
	}

	return playlistDetails(ctx, store, dir, playlistID)
}

// toggleFollow flips the follow edge for userID. There is a window
// between the check and the write; the follow primitives are idempotent
// so a racing double toggle settles on one of the two states.
func toggleFollow(ctx context.Context, store Store, playlistID, userID string) (*FollowResponse, error) {
	if _, err := store.GetPlaylist(ctx, playlistID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &playlistError{status: http.StatusNotFound, msg: "playlist not found"}
		}
		return nil, err
	}

	following, err := store.IsFollowing(ctx, playlistID, userID)
	if err != nil {
		return nil, err
	}

	if following {
		if err := store.DeleteFollow(ctx, playlistID, userID); err != nil {
			return nil, err
		}
	} else {
		if err := store.InsertFollow(ctx, playlistID, userID); err != nil {
			return nil, err
		}
	}

	return &FollowResponse{PlaylistID: playlistID, Following: !following}, nil
}

func publishPlaylistEvent(ctx context.Context, rdb *redis.Client, eventType string, payload map[string]any) {
	if rdb == nil {
		return
	}
	data, err := json.Marshal(map[string]any{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		log.Printf("streaming-service: marshal playlist event: %v", err)
		return
	}
	if err := rdb.Publish(ctx, playlistEventsChannel, string(data)).Err(); err != nil {
		log.Printf("streaming-service: publish playlist event: %v", err)
	}
}
