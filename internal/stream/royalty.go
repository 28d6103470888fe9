package stream

import (
	"context"
	"errors"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"streaming-service/internal/directory"
)

const (
	defaultRoyaltyRate = 0.01
	payoutCurrency     = "USD"
)

// royaltyRate resolves the per-stream rate from the environment on every
// call, so operators can change it without a restart.
func royaltyRate() float64 {
	raw := os.Getenv("ROYALTY_RATE")
	if raw == "" {
		return defaultRoyaltyRate
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate <= 0 {
		return defaultRoyaltyRate
	}
	return rate
}

// round2 rounds money to 2 decimal places, half away from zero. Every
// amount in the payout ledger and the earnings queries goes through it.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func topArtists(ctx context.Context, store Store, dir Directory, limit int) ([]TopArtist, error) {
	plays, err := store.PlaysByArtist(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(plays) > limit {
		plays = plays[:limit]
	}

	out := []TopArtist{}
	for _, ap := range plays {
		artist, err := dir.GetUserWithProfile(ctx, ap.ArtistID)
		if err != nil {
			if errors.Is(err, directory.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, TopArtist{Artist: artist, PlayCount: ap.PlayCount})
	}
	return out, nil
}

func royalties(ctx context.Context, store Store, dir Directory, limit int) ([]RoyaltyRow, error) {
	rate := royaltyRate()
	artists, err := topArtists(ctx, store, dir, limit)
	if err != nil {
		return nil, err
	}

	rows := []RoyaltyRow{}
	for _, a := range artists {
		rows = append(rows, RoyaltyRow{
			Artist:        a.Artist,
			PlayCount:     a.PlayCount,
			Royalties:     round2(float64(a.PlayCount) * rate),
			RatePerStream: rate,
		})
	}
	return rows, nil
}

// recordPayout appends an immutable payout row. It is deliberately
// non-idempotent: two identical calls create two payouts. Callers own the
// responsibility of not double-paying.
func recordPayout(ctx context.Context, store Store, dir Directory, artistID string, playCount int, ratePerStream float64) (*Payout, error) {
	if artistID == "" {
		return nil, &validationError{"artistId is required"}
	}
	if playCount < 0 {
		return nil, &validationError{"playCount must not be negative"}
	}
	if ratePerStream <= 0 {
		return nil, &validationError{"ratePerStream must be positive"}
	}

	if _, err := dir.GetUser(ctx, artistID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, &streamError{status: http.StatusNotFound, msg: "artist not found"}
		}
		return nil, err
	}

	amount := round2(float64(playCount) * ratePerStream)
	return store.InsertPayout(ctx, artistID, amount)
}

func totalEarnings(ctx context.Context, store Store, artistID string) (*Earnings, error) {
	if artistID == "" {
		return nil, &validationError{"artistId is required"}
	}
	payouts, err := store.ListPayoutsByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	return &Earnings{
		ArtistID:      artistID,
		TotalEarnings: round2(sumAmounts(payouts)),
		Currency:      payoutCurrency,
	}, nil
}

func earningsInRange(ctx context.Context, store Store, artistID string, start, end time.Time) (*RangeEarnings, error) {
	if artistID == "" {
		return nil, &validationError{"artistId is required"}
	}
	if end.Before(start) {
		return nil, &validationError{"endDate must not be before startDate"}
	}
	payouts, err := store.ListPayoutsInRange(ctx, artistID, start, end)
	if err != nil {
		return nil, err
	}
	return &RangeEarnings{
		ArtistID:      artistID,
		StartDate:     start,
		EndDate:       end,
		TotalEarnings: round2(sumAmounts(payouts)),
		Currency:      payoutCurrency,
	}, nil
}

// monthlyEarnings buckets payouts by UTC calendar month. Months without a
// payout are omitted, not zero-filled.
func monthlyEarnings(ctx context.Context, store Store, artistID string) ([]MonthlyEarnings, error) {
	if artistID == "" {
		return nil, &validationError{"artistId is required"}
	}
	payouts, err := store.ListPayoutsByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	months := []string{}
	for _, p := range payouts {
		key := p.CreatedAt.UTC().Format("2006-01")
		if _, seen := totals[key]; !seen {
			months = append(months, key)
		}
		totals[key] += p.Amount
	}

	out := []MonthlyEarnings{}
	for _, m := range months {
		out = append(out, MonthlyEarnings{
			Month:    m,
			Earnings: round2(totals[m]),
			Currency: payoutCurrency,
		})
	}
	return out, nil
}

func sumAmounts(payouts []Payout) float64 {
	var total float64
	for _, p := range payouts {
		total += p.Amount
	}
	return total
}
