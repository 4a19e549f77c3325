package pool

import (
	"context"
	"testing"

	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
	"github.com/chris/daily-prize-pools/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimableAndSettlement(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, memory.New())
	contribute(t, e, "2024-01-01", 100)
	_, err := e.Distribute(ctx, "2024-01-01")
	require.NoError(t, err)
	markDrawn(t, e, "2024-01-01")
	_, err = e.Payout(ctx, "2024-01-01", models.TierFirst, []models.Winner{
		{UserID: "alice", TicketID: "a1"}, {UserID: "bob", TicketID: "b1"},
	})
	require.NoError(t, err)
	_, err = e.Payout(ctx, "2024-01-01", models.TierSecond, []models.Winner{{UserID: "alice", TicketID: "a2"}})
	require.NoError(t, err)

	t.Run("Before Settlement", func(t *testing.T) {
		c, err := e.Claimable(ctx, "alice", "2023-12-31", "2024-01-02")
		require.NoError(t, err)
		assert.Equal(t, int64(50), c.Awarded)
		assert.Equal(t, int64(50), c.Claimable)
		assert.Len(t, c.Awards, 2)
	})

	t.Run("Record Settlement", func(t *testing.T) {
		s, err := e.RecordSettlement(ctx, models.Settlement{UserID: "alice", TicketID: "a1", GameDay: "2024-01-01", Tier: models.TierFirst, Amount: 40, TxRef: "0xabc"})
		require.NoError(t, err)
		assert.False(t, s.SettledAt.IsZero())

		_, err = e.RecordSettlement(ctx, models.Settlement{UserID: "alice", TicketID: "a1", GameDay: "2024-01-01", Tier: models.TierFirst, Amount: 40})
		assert.ErrorIs(t, err, storage.ErrAlreadySettled)

		c, err := e.Claimable(ctx, "alice", "2024-01-01", "2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, int64(40), c.Settled)
		assert.Equal(t, int64(10), c.Claimable)
	})

	t.Run("Rejects Unknown Awards", func(t *testing.T) {
		cases := []models.Settlement{
			{UserID: "bob", TicketID: "a2", GameDay: "2024-01-01", Tier: models.TierSecond, Amount: 10},
			{UserID: "bob", TicketID: "b1", GameDay: "2024-01-01", Tier: models.TierFirst, Amount: 41},
			{UserID: "bob", TicketID: "b1", GameDay: "2024-01-01", Tier: models.TierThird, Amount: 40},
			{UserID: "bob", TicketID: "b1", GameDay: "2024-01-01", Tier: models.TierFreeTicket, Amount: 40},
		}
		for _, s := range cases {
			_, err := e.RecordSettlement(ctx, s)
			assert.ErrorIs(t, err, ErrValidation)
		}
	})

	t.Run("Bad Range", func(t *testing.T) {
		_, err := e.Claimable(ctx, "alice", "2024-01-02", "2024-01-01")
		assert.ErrorIs(t, err, ErrValidation)
		_, err = e.Claimable(ctx, "alice", "2020-01-01", "2024-01-01")
		assert.ErrorIs(t, err, ErrValidation)
		_, err = e.Claimable(ctx, "alice", "0001-01-01", "9999-12-31")
		assert.ErrorIs(t, err, ErrValidation)
		c, err := e.Claimable(ctx, "alice", "2024-01-01", "2024-12-31")
		require.NoError(t, err)
		assert.Len(t, c.Awards, 2)
		_, err = e.Claimable(ctx, "", "2024-01-01", "2024-01-01")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestListUnsettledPools(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, memory.New())
	contribute(t, e, "2024-01-01", 10)
	settleDay(t, e, "2024-01-01")
	contribute(t, e, "2024-01-03", 10)
	contribute(t, e, "2024-01-02", 10)
	_, err := e.Distribute(ctx, "2024-01-02")
	require.NoError(t, err)
	contribute(t, e, "2024-01-04", 10)

	pools, err := e.ListUnsettledPools(ctx, "2024-01-04")
	require.NoError(t, err)
	require.Len(t, pools, 2)
	assert.Equal(t, "2024-01-02", pools[0].GameDay)
	assert.True(t, pools[0].PoolsDistributed)
	assert.Equal(t, "2024-01-03", pools[1].GameDay)
	assert.False(t, pools[1].PoolsDistributed)
}
