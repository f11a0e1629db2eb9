package models

// Member is a user as referenced from a group or an expense.
type Member struct {
	// ID is the user ID.
	ID string

	// Name is the user's display name at read time.
	Name string
}
