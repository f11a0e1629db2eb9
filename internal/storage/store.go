// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned (wrapped) when a unique field is already taken.
	ErrConflict = errors.New("already exists")
)

// SettlementFilter narrows ListSettlements. Empty fields match everything.
type SettlementFilter struct {
	PayerID    string
	ReceiverID string

	// ParticipantID matches settlements where the user is payer or receiver.
	ParticipantID string
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a user. Returns ErrConflict if the email or username is taken.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUsersByIDs returns the users that exist, keyed by ID.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// UpdateUser saves the profile fields (name, username, UPI).
	UpdateUser(ctx context.Context, user *models.User) error

	// SearchUsers matches query against names and usernames, or an exact
	// email, returning at most limit users ordered by name.
	SearchUsers(ctx context.Context, query string, limit int) ([]*models.User, error)
}

// Store defines every storage operation the services need.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore

	// CreateGroup persists a new group with its members.
	// The group.ID and CreatedAt fields will be populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members and expenses.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember returns every group the user belongs to, newest first.
	// Members are populated, expenses are not.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// DeleteGroup removes a group and its expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists a new expense. ID and CreatedAt are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns a group's expenses, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a settlement. ID and CreatedAt are populated by the store.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlements returns matching settlements, newest first.
	ListSettlements(ctx context.Context, filter SettlementFilter) ([]*models.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
