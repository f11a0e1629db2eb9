package models

// Group is a set of users who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string

	// CreatorID is the user who created the group. Only the creator may delete it.
	CreatorID string

	// Members is the ordered list of group members.
	Members []Member

	// Expenses is the group's activity, newest first.
	// Populated by GetGroup; list calls leave it empty.
	Expenses []*Expense

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID is one of the group's members.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the IDs of the group's members in order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}
