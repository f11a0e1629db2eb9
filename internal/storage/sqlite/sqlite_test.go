package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, email, name string) *models.User {
	t.Helper()

	user := models.NewUser(email, name, "hash")
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")

	t.Run("lookup by email and id", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.Equal(t, "Alice", got.Name)
		assert.Empty(t, got.Username)

		got, err = store.GetUserByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", got.Email)
	})

	t.Run("missing user is ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = store.GetUserByID(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Other", "hash"))
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("update profile", func(t *testing.T) {
		alice.Name = "Alice Smith"
		alice.Username = "alice"
		alice.UPI = "alice@okbank"
		require.NoError(t, store.UpdateUser(ctx, alice))

		got, err := store.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", got.Name)
		assert.Equal(t, "alice@okbank", got.UPI)
	})

	t.Run("username must be unique", func(t *testing.T) {
		bob.Username = "alice"
		err := store.UpdateUser(ctx, bob)
		assert.ErrorIs(t, err, storage.ErrConflict)
		bob.Username = ""
	})

	t.Run("empty usernames do not collide", func(t *testing.T) {
		require.NoError(t, store.UpdateUser(ctx, bob))
		createUser(t, store, "carol@example.com", "Carol")
	})

	t.Run("GetUsersByIDs omits unknown ids", func(t *testing.T) {
		users, err := store.GetUsersByIDs(ctx, []string{alice.ID, bob.ID, "ghost"})
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Contains(t, users, alice.ID)

		users, err = store.GetUsersByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestSearchUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice Smith")
	bob := createUser(t, store, "bob@example.com", "bob")
	carol := createUser(t, store, "carol@example.com", "Carol 100%")
	bob.Username = "smithy"
	require.NoError(t, store.UpdateUser(ctx, bob))

	ids := func(users []*models.User) []string {
		var out []string
		for _, u := range users {
			out = append(out, u.ID)
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"name or username, ordered by name", "SMITH", 10, []string{alice.ID, bob.ID}},
		{"exact email", "Carol@Example.com", 10, []string{carol.ID}},
		{"email fragments do not match", "example", 10, nil},
		{"wildcards match literally", "100%", 10, []string{carol.ID}},
		{"underscore is literal", "_", 10, nil},
		{"empty lists everyone", "", 10, []string{alice.ID, bob.ID, carol.ID}},
		{"limit", "", 2, []string{alice.ID, bob.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.SearchUsers(ctx, tt.query, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestGroupsAndExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")

	group := &models.Group{
		Name:      "Goa Trip",
		CreatorID: alice.ID,
		Members:   []models.Member{carol.Member(), alice.Member(), bob.Member()},
	}
	require.NoError(t, store.CreateGroup(ctx, group))
	require.NotEmpty(t, group.ID)
	require.NotZero(t, group.CreatedAt)

	first := &models.Expense{
		GroupID:      group.ID,
		Description:  "Dinner",
		PaidBy:       alice.Member(),
		Amount:       decimal.RequireFromString("100.50"),
		SplitMembers: []models.Member{alice.Member(), bob.Member()},
		CreatedAt:    1000,
	}
	second := &models.Expense{
		GroupID:      group.ID,
		Description:  "Taxi",
		PaidBy:       bob.Member(),
		Amount:       decimal.RequireFromString("30"),
		SplitMembers: []models.Member{carol.Member(), bob.Member(), alice.Member()},
		CreatedAt:    2000,
	}
	require.NoError(t, store.CreateExpense(ctx, first))
	require.NoError(t, store.CreateExpense(ctx, second))

	t.Run("GetGroup keeps member order and loads expenses newest first", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)

		assert.Equal(t, "Goa Trip", got.Name)
		assert.Equal(t, alice.ID, got.CreatorID)
		assert.Equal(t, []string{carol.ID, alice.ID, bob.ID}, got.MemberIDs())

		require.Len(t, got.Expenses, 2)
		assert.Equal(t, "Taxi", got.Expenses[0].Description)
		assert.Equal(t, "Dinner", got.Expenses[1].Description)
		assert.True(t, got.Expenses[1].Amount.Equal(decimal.RequireFromString("100.5")))
		assert.Equal(t, "Alice", got.Expenses[1].PaidBy.Name)
		assert.Equal(t, []models.Member{carol.Member(), bob.Member(), alice.Member()}, got.Expenses[0].SplitMembers)
	})

	t.Run("GetExpense", func(t *testing.T) {
		got, err := store.GetExpense(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, group.ID, got.GroupID)
		assert.Len(t, got.SplitMembers, 2)

		_, err = store.GetExpense(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListGroupsByMember", func(t *testing.T) {
		other := &models.Group{Name: "Flat", CreatorID: bob.ID, Members: []models.Member{bob.Member()}}
		require.NoError(t, store.CreateGroup(ctx, other))

		groups, err := store.ListGroupsByMember(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, groups, 2)

		groups, err = store.ListGroupsByMember(ctx, carol.ID)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Len(t, groups[0].Members, 3)
		assert.Empty(t, groups[0].Expenses)
	})

	t.Run("DeleteExpense", func(t *testing.T) {
		require.NoError(t, store.DeleteExpense(ctx, second.ID))
		assert.ErrorIs(t, store.DeleteExpense(ctx, second.ID), storage.ErrNotFound)

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, expenses, 1)
	})

	t.Run("DeleteGroup cascades to expenses", func(t *testing.T) {
		require.NoError(t, store.DeleteGroup(ctx, group.ID))

		_, err := store.GetGroup(ctx, group.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = store.GetExpense(ctx, first.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		assert.ErrorIs(t, store.DeleteGroup(ctx, group.ID), storage.ErrNotFound)
	})
}

func TestSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	s1 := &models.Settlement{PayerID: "a", ReceiverID: "b", Amount: decimal.NewFromInt(40), CreatedBy: "a", CreatedAt: 100, Note: "cash"}
	s2 := &models.Settlement{PayerID: "b", ReceiverID: "c", Amount: decimal.RequireFromString("12.34"), CreatedBy: "c", CreatedAt: 200}
	s3 := &models.Settlement{PayerID: "c", ReceiverID: "a", Amount: decimal.NewFromInt(5), CreatedBy: "c", CreatedAt: 300}
	for _, s := range []*models.Settlement{s1, s2, s3} {
		require.NoError(t, store.CreateSettlement(ctx, s))
		require.NotEmpty(t, s.ID)
	}

	t.Run("GetSettlement round-trips amount and note", func(t *testing.T) {
		got, err := store.GetSettlement(ctx, s1.ID)
		require.NoError(t, err)
		assert.Equal(t, "cash", got.Note)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(40)))

		got, err = store.GetSettlement(ctx, s2.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Note)
		assert.Equal(t, "12.34", got.Amount.String())
	})

	tests := []struct {
		name   string
		filter storage.SettlementFilter
		want   []string
	}{
		{name: "all newest first", filter: storage.SettlementFilter{}, want: []string{s3.ID, s2.ID, s1.ID}},
		{name: "by payer", filter: storage.SettlementFilter{PayerID: "b"}, want: []string{s2.ID}},
		{name: "by receiver", filter: storage.SettlementFilter{ReceiverID: "a"}, want: []string{s3.ID}},
		{name: "payer and receiver", filter: storage.SettlementFilter{PayerID: "a", ReceiverID: "c"}, want: nil},
		{name: "by participant", filter: storage.SettlementFilter{ParticipantID: "a"}, want: []string{s3.ID, s1.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListSettlements(ctx, tt.filter)
			require.NoError(t, err)

			var ids []string
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("DeleteSettlement", func(t *testing.T) {
		require.NoError(t, store.DeleteSettlement(ctx, s1.ID))
		assert.ErrorIs(t, store.DeleteSettlement(ctx, s1.ID), storage.ErrNotFound)

		_, err := store.GetSettlement(ctx, s1.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
