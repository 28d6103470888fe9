package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streaming-service/internal/directory"
)

func artistRef(id string) *directory.UserWithProfile {
	return &directory.UserWithProfile{User: directory.User{ID: id}}
}

func TestRoyaltyRate(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("ROYALTY_RATE", "")
		assert.Equal(t, 0.01, royaltyRate())
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("ROYALTY_RATE", "0.015")
		assert.Equal(t, 0.015, royaltyRate())
	})

	t.Run("garbage falls back to default", func(t *testing.T) {
		t.Setenv("ROYALTY_RATE", "not-a-number")
		assert.Equal(t, 0.01, royaltyRate())
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.0, round2(200*0.015))
	assert.Equal(t, 1.23, round2(1.234))
	assert.Equal(t, 1.24, round2(1.236))
	assert.Equal(t, 1.0, round2(0.999))
	assert.Equal(t, 0.0, round2(0))
}

func TestTopArtists(t *testing.T) {
	ctx := context.Background()

	t.Run("truncates to limit, sorted by plays desc", func(t *testing.T) {
		mockStore := new(MockStore)
		mockDir := new(MockDirectory)

		mockStore.On("PlaysByArtist", ctx).Return([]ArtistPlays{
			{ArtistID: "a1", PlayCount: 100},
			{ArtistID: "a2", PlayCount: 50},
			{ArtistID: "a3", PlayCount: 10},
		}, nil)
		mockDir.On("GetUserWithProfile", ctx, "a1").Return(artistRef("a1"), nil)
		mockDir.On("GetUserWithProfile", ctx, "a2").Return(artistRef("a2"), nil)

		top, err := topArtists(ctx, mockStore, mockDir, 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "a1", top[0].Artist.ID)
		assert.Equal(t, 100, top[0].PlayCount)
		assert.GreaterOrEqual(t, top[0].PlayCount, top[1].PlayCount)
	})

	t.Run("store error", func(t *testing.T) {
		mockStore := new(MockStore)
		mockDir := new(MockDirectory)
		mockStore.On("PlaysByArtist", ctx).Return(([]ArtistPlays)(nil), errors.New("db error"))

		_, err := topArtists(ctx, mockStore, mockDir, 5)
		assert.Error(t, err)
	})
}

func TestRoyalties(t *testing.T) {
	ctx := context.Background()

	t.Run("maps plays to rounded earnings", func(t *testing.T) {
		t.Setenv("ROYALTY_RATE", "0.015")

		mockStore := new(MockStore)
		mockDir := new(MockDirectory)
		mockStore.On("PlaysByArtist", ctx).Return([]ArtistPlays{
			{ArtistID: "a1", PlayCount: 200},
			{ArtistID: "a2", PlayCount: 10},
		}, nil)
		mockDir.On("GetUserWithProfile", ctx, "a1").Return(artistRef("a1"), nil)
		mockDir.On("GetUserWithProfile", ctx, "a2").Return(artistRef("a2"), nil)

		rows, err := royalties(ctx, mockStore, mockDir, 5)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 3.00, rows[0].Royalties)
		assert.Equal(t, 0.015, rows[0].RatePerStream)
		assert.Equal(t, 0.15, rows[1].Royalties)
	})

	t.Run("respects limit", func(t *testing.T) {
		mockStore := new(MockStore)
		mockDir := new(MockDirectory)
		mockStore.On("PlaysByArtist", ctx).Return([]ArtistPlays{
			{ArtistID: "a1", PlayCount: 3},
			{ArtistID: "a2", PlayCount: 2},
			{ArtistID: "a3", PlayCount: 1},
		}, nil)
		mockDir.On("GetUserWithProfile", ctx, "a1").Return(artistRef("a1"), nil)

		rows, err := royalties(ctx, mockStore, mockDir, 1)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(rows), 1)
	})
}

func TestRecordPayout(t *testing.T) {
	ctx := context.Background()

	t.Run("computes amount from plays and rate", func(t *testing.T) {
		mockStore := new(MockStore)
		mockDir := new(MockDirectory)
		mockDir.On("GetUser", ctx, "7").Return(&directory.User{ID: "7"}, nil)
		mockStore.On("InsertPayout", ctx, "7", 3.00).Return(&Payout{
			ID: "p1", ArtistID: "7", Amount: 3.00, CreatedAt: time.Now(),
		}, nil)

		p, err := recordPayout(ctx, mockStore, mockDir, "7", 200, 0.015)
		require.NoError(t, err)
		assert.Equal(t, 3.00, p.Amount)
	})

	t.Run("missing artist id rejected before storage", func(t *testing.T) {
		mockStore := new(MockStore)
		mockDir := new(MockDirectory)

		_, err := recordPayout(ctx, mockStore, mockDir, "", 200, 0.015)
		var ve *validationError
		assert.True(t, errors.As(err, &ve))
		mockDir.AssertNotCalled(t, "GetUser", ctx, "")
		mockStore.AssertNotCalled(t, "InsertPayout", ctx, "", 3.00)
	})

	t.Run("unknown artist", func(t *testing.T) {
		mockStore := new(MockStore)
		mockDir := new(MockDirectory)
		mockDir.On("GetUser", ctx, "ghost").Return((*directory.User)(nil), directory.ErrNotFound)

		_, err := recordPayout(ctx, mockStore, mockDir, "ghost", 10, 0.01)
		var se *streamError
		assert.True(t, errors.As(err, &se))
	})

	t.Run("not idempotent: two calls insert two payouts", func(t *testing.T) {
		mockStore := new(MockStore)
		mockDir := new(MockDirectory)
		mockDir.On("GetUser", ctx, "a1").Return(&directory.User{ID: "a1"}, nil)
		mockStore.On("InsertPayout", ctx, "a1", 1.00).Return(&Payout{ID: "p", ArtistID: "a1", Amount: 1.00}, nil)

		_, err := recordPayout(ctx, mockStore, mockDir, "a1", 100, 0.01)
		require.NoError(t, err)
		_, err = recordPayout(ctx, mockStore, mockDir, "a1", 100, 0.01)
		require.NoError(t, err)
		mockStore.AssertNumberOfCalls(t, "InsertPayout", 2)
	})
}

func TestTotalEarnings(t *testing.T) {
	ctx := context.Background()

	t.Run("sums all payouts", func(t *testing.T) {
		mockStore := new(MockStore)
		mockStore.On("ListPayoutsByArtist", ctx, "a1").Return([]Payout{
			{Amount: 3.00}, {Amount: 1.25}, {Amount: 0.10},
		}, nil)

		e, err := totalEarnings(ctx, mockStore, "a1")
		require.NoError(t, err)
		assert.Equal(t, 4.35, e.TotalEarnings)
		assert.Equal(t, "USD", e.Currency)
	})

	t.Run("no payouts means zero, not an error", func(t *testing.T) {
		mockStore := new(MockStore)
		mockStore.On("ListPayoutsByArtist", ctx, "a1").Return([]Payout{}, nil)

		e, err := totalEarnings(ctx, mockStore, "a1")
		require.NoError(t, err)
		assert.Equal(t, 0.00, e.TotalEarnings)
	})
}

func TestEarningsInRange(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	t.Run("empty range is 0.00, not an error", func(t *testing.T) {
		mockStore := new(MockStore)
		mockStore.On("ListPayoutsInRange", ctx, "a1", start, end).Return([]Payout{}, nil)

		e, err := earningsInRange(ctx, mockStore, "a1", start, end)
		require.NoError(t, err)
		assert.Equal(t, 0.00, e.TotalEarnings)
		assert.Equal(t, "USD", e.Currency)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		mockStore := new(MockStore)
		_, err := earningsInRange(ctx, mockStore, "a1", end, start)
		var ve *validationError
		assert.True(t, errors.As(err, &ve))
	})
}

func TestMonthlyEarnings(t *testing.T) {
	ctx := context.Background()

	jan := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 5, 8, 0, 0, 0, time.UTC)

	t.Run("groups by UTC month, omits empty months", func(t *testing.T) {
		mockStore := new(MockStore)
		mockStore.On("ListPayoutsByArtist", ctx, "a1").Return([]Payout{
			{Amount: 1.50, CreatedAt: jan},
			{Amount: 2.00, CreatedAt: jan.Add(24 * time.Hour)},
			{Amount: 0.75, CreatedAt: feb},
		}, nil)

		rows, err := monthlyEarnings(ctx, mockStore, "a1")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "2025-01", rows[0].Month)
		assert.Equal(t, 3.50, rows[0].Earnings)
		assert.Equal(t, "2025-02", rows[1].Month)
		assert.Equal(t, 0.75, rows[1].Earnings)
	})

	t.Run("monthly sums add up to lifetime total", func(t *testing.T) {
		payouts := []Payout{
			{Amount: 1.11, CreatedAt: jan},
			{Amount: 2.22, CreatedAt: feb},
			{Amount: 3.33, CreatedAt: feb.Add(48 * time.Hour)},
		}
		mockStore := new(MockStore)
		mockStore.On("ListPayoutsByArtist", ctx, "a1").Return(payouts, nil)

		rows, err := monthlyEarnings(ctx, mockStore, "a1")
		require.NoError(t, err)
		var monthlySum float64
		for _, r := range rows {
			monthlySum += r.Earnings
		}

		total, err := totalEarnings(ctx, mockStore, "a1")
		require.NoError(t, err)
		assert.Equal(t, total.TotalEarnings, round2(monthlySum))
	})
}
