package krypto

import (
	"context"
	"time"

	"github.com/gobeaver/hashkit/random"
)

// RandomDelay sleeps for a duration drawn from g in [minDelay, maxDelay] with
// millisecond resolution, returning early with ctx's error. It blurs the
// timing of failed verifications. g is not safe for concurrent use, so
// each goroutine should own one.
func RandomDelay(ctx context.Context, g *random.Generator, minDelay, maxDelay time.Duration) error {
	if maxDelay < minDelay {
		minDelay, maxDelay = maxDelay, minDelay
	}
	ms, err := g.Between(int(minDelay/time.Millisecond), int(maxDelay/time.Millisecond))
	if err != nil {
		return err
	}

	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
