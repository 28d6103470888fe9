package track

import (
	"sort"
	"time"
)

const (
	likeWeight   = 3
	streamWeight = 1
	// Age decay saturates here: tracks older than this get a zero
	// recency bonus, never a negative one.
	maxAgeDays = 100

	feedSize = 5

	recommendSize = 5
)

func trackAgeDays(createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	if days > maxAgeDays {
		return maxAgeDays
	}
	if days < 0 {
		return 0
	}
	return days
}

func trendingScore(likes, streams int, ageDays float64) float64 {
	return float64(likes*likeWeight) + float64(streams*streamWeight) + (maxAgeDays - ageDays)
}

// rankTracks scores every track and orders them by descending score.
// Equal scores order by track id ascending so the ranking is stable
// across retrievals.
func rankTracks(tracks []Track, now time.Time) []Track {
	ranked := make([]Track, len(tracks))
	copy(ranked, tracks)
	for i := range ranked {
		ranked[i].Score = trendingScore(ranked[i].LikeCount, ranked[i].StreamCount, trackAgeDays(ranked[i].CreatedAt, now))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// buildFeed combines the top trending tracks with the most recent
// uploads. The two lists are truncated independently and a track may
// appear in both.
func buildFeed(trending, latest []Track) Feed {
	if len(trending) > feedSize {
		trending = trending[:feedSize]
	}
	if len(latest) > feedSize {
		latest = latest[:feedSize]
	}
	return Feed{Trending: trending, Latest: latest}
}
