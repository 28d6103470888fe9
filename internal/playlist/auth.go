package playlist

// permissions is the resolved authority of one user over one playlist.
type permissions struct {
	isOwner   bool
	canEdit   bool
	canInvite bool
}

// permissionsFor resolves what userID may do to a playlist. The owner
// can do everything; a collaborator gets exactly the flags on their
// grant; everyone else gets nothing. Grants are always re-read before a
// protected action, so a revocation takes effect on the next request.
func permissionsFor(userID, ownerID string, collabs []Collaborator) permissions {
	if userID == "" {
		return permissions{}
	}
	if userID == ownerID {
		return permissions{isOwner: true, canEdit: true, canInvite: true}
	}
	for _, c := range collabs {
		if c.UserID == userID {
			return permissions{canEdit: c.CanEdit, canInvite: c.CanInvite}
		}
	}
	return permissions{}
}
