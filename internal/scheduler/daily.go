package scheduler

import (
	"context"
	"log"
	"time"
)

// AtMidnight runs task at every local day boundary. The apply cap is a
// per-day budget, so its counter reset rides on this.
func AtMidnight(ctx context.Context, name string, task Task) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(now)):
			if err := task(ctx); err != nil {
				log.Printf("[%s] error: %v", name, err)
			}
		}
	}
}
