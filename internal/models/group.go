package models

// Group is a named collection of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Goa Trip", "Flat 4B").
	Name string

	// CreatedBy is the profile ID that created the group.
	CreatedBy string

	// Members in insertion order.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is a profile's membership in a group.
type Member struct {
	ProfileID   string
	DisplayName string
	UPIID       string
	JoinedAt    int64
}

// MemberIDs returns the profile IDs of the group's members, in order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ProfileID
	}
	return ids
}

// HasMember reports whether profileID belongs to the group.
func (g *Group) HasMember(profileID string) bool {
	for _, m := range g.Members {
		if m.ProfileID == profileID {
			return true
		}
	}
	return false
}

// Member returns the membership for profileID, if any.
func (g *Group) Member(profileID string) (Member, bool) {
	for _, m := range g.Members {
		if m.ProfileID == profileID {
			return m, true
		}
	}
	return Member{}, false
}
