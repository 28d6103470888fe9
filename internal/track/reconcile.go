package track

import (
	"context"
	"log"
	"time"
)

// StartReconciler starts a background worker that periodically repairs
// the denormalized play_count on tracks from the stream ledger. The
// counter is a cache; the ledger count is the source of truth, and the
// increment done on append can drift under failures.
func (s *Server) StartReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				if err := s.store.RecountPlays(ctx); err != nil {
					log.Printf("streaming-service: play_count reconcile: %v", err)
				}
			}
		}
	}()
}
