package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAgeDays(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("recent track", func(t *testing.T) {
		created := now.Add(-10 * 24 * time.Hour)
		assert.Equal(t, 10.0, trackAgeDays(created, now))
	})

	t.Run("clamped at 100 days", func(t *testing.T) {
		created := now.Add(-365 * 24 * time.Hour)
		assert.Equal(t, 100.0, trackAgeDays(created, now))
	})

	t.Run("created in the future counts as zero age", func(t *testing.T) {
		created := now.Add(24 * time.Hour)
		assert.Equal(t, 0.0, trackAgeDays(created, now))
	})
}

func TestTrendingScore(t *testing.T) {
	t.Run("ten day old track with 5 likes and 50 plays scores 155", func(t *testing.T) {
		assert.Equal(t, 155.0, trendingScore(5, 50, 10))
	})

	t.Run("age bonus is exactly zero past saturation", func(t *testing.T) {
		assert.Equal(t, trendingScore(0, 0, 100), 0.0)
	})

	t.Run("non-decreasing in likes and plays", func(t *testing.T) {
		base := trendingScore(5, 50, 10)
		assert.Greater(t, trendingScore(6, 50, 10), base)
		assert.Greater(t, trendingScore(5, 51, 10), base)
	})

	t.Run("non-increasing in age", func(t *testing.T) {
		assert.Less(t, trendingScore(5, 50, 20), trendingScore(5, 50, 10))
	})
}

func TestRankTracks(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fresh := now.Add(-24 * time.Hour)

	t.Run("descending by score", func(t *testing.T) {
		tracks := []Track{
			{ID: "low", CreatedAt: now.Add(-200 * 24 * time.Hour), LikeCount: 0, StreamCount: 1},
			{ID: "high", CreatedAt: fresh, LikeCount: 10, StreamCount: 100},
		}
		ranked := rankTracks(tracks, now)
		require.Len(t, ranked, 2)
		assert.Equal(t, "high", ranked[0].ID)
		assert.Greater(t, ranked[0].Score, ranked[1].Score)
	})

	t.Run("ties break by track id ascending", func(t *testing.T) {
		tracks := []Track{
			{ID: "b", CreatedAt: fresh, LikeCount: 1, StreamCount: 1},
			{ID: "a", CreatedAt: fresh, LikeCount: 1, StreamCount: 1},
		}
		ranked := rankTracks(tracks, now)
		assert.Equal(t, "a", ranked[0].ID)
		assert.Equal(t, "b", ranked[1].ID)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		tracks := []Track{
			{ID: "x", CreatedAt: fresh},
			{ID: "y", CreatedAt: fresh, LikeCount: 5},
		}
		_ = rankTracks(tracks, now)
		assert.Equal(t, "x", tracks[0].ID)
		assert.Zero(t, tracks[0].Score)
	})
}

func TestBuildFeed(t *testing.T) {
	mk := func(n int) []Track {
		out := make([]Track, n)
		for i := range out {
			out[i] = Track{ID: string(rune('a' + i))}
		}
		return out
	}

	t.Run("both lists truncated to five", func(t *testing.T) {
		f := buildFeed(mk(8), mk(7))
		assert.Len(t, f.Trending, 5)
		assert.Len(t, f.Latest, 5)
	})

	t.Run("duplicates across lists are allowed", func(t *testing.T) {
		same := mk(3)
		f := buildFeed(same, same)
		assert.Equal(t, f.Trending, f.Latest)
	})

	t.Run("short lists pass through", func(t *testing.T) {
		f := buildFeed(mk(2), mk(0))
		assert.Len(t, f.Trending, 2)
		assert.Empty(t, f.Latest)
	})
}
