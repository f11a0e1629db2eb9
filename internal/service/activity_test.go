package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/pkg/api"
)

func TestListActivity(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "Alice")
	bob := env.register(t, "Bob")
	carol := env.register(t, "Carol")
	dave := env.register(t, "Dave")
	eve := env.register(t, "Eve")
	ctx := context.Background()

	flat := env.createGroup(t, alice, "Flat", bob)
	trip := env.createGroup(t, alice, "Trip", carol)
	env.createGroup(t, bob, "Work", dave)

	rent := env.addExpense(t, flat, alice, "100", alice, bob)
	fuel := env.addExpense(t, trip, carol, "60", alice, carol)

	settle := func(caller, payer, receiver testUser) string {
		resp, err := env.settlements.RecordSettlement(ctx, as(caller, &api.RecordSettlementRequest{
			PayerID:    payer.ID,
			ReceiverID: receiver.ID,
			Amount:     decimal.NewFromInt(10),
		}))
		require.NoError(t, err)
		return resp.Msg.Settlement.ID
	}
	bobPaidAlice := settle(bob, bob, alice)
	settle(bob, bob, dave) // not Alice's business

	type entry struct{ kind, id, group string }
	entries := func(resp *connect.Response[api.ListActivityResponse]) []entry {
		var out []entry
		for _, item := range resp.Msg.Items {
			switch item.Kind {
			case api.ActivityExpense:
				out = append(out, entry{item.Kind, item.Expense.ID, item.GroupName})
			case api.ActivitySettlement:
				out = append(out, entry{item.Kind, item.Settlement.ID, item.GroupName})
			}
		}
		return out
	}

	all, err := env.groups.ListActivity(ctx, as(alice, &api.ListActivityRequest{}))
	require.NoError(t, err)
	assert.ElementsMatch(t, []entry{
		{api.ActivityExpense, rent, "Flat"},
		{api.ActivityExpense, fuel, "Trip"},
		{api.ActivitySettlement, bobPaidAlice, ""},
	}, entries(all))
	for i := 1; i < len(all.Msg.Items); i++ {
		assert.GreaterOrEqual(t, all.Msg.Items[i-1].CreatedAt, all.Msg.Items[i].CreatedAt, "newest first")
	}

	tripOnly, err := env.groups.ListActivity(ctx, as(alice, &api.ListActivityRequest{GroupIDs: []string{trip}}))
	require.NoError(t, err)
	assert.Equal(t, []entry{{api.ActivityExpense, fuel, "Trip"}}, entries(tripOnly), "Bob is not in the trip")

	limited, err := env.groups.ListActivity(ctx, as(alice, &api.ListActivityRequest{Limit: 2}))
	require.NoError(t, err)
	assert.Len(t, limited.Msg.Items, 2)

	_, err = env.groups.ListActivity(ctx, as(eve, &api.ListActivityRequest{GroupIDs: []string{flat}}))
	assertCode(t, connect.CodePermissionDenied, err)

	_, err = env.groups.ListActivity(ctx, as(alice, &api.ListActivityRequest{Limit: -3}))
	assertCode(t, connect.CodeInvalidArgument, err)
}
