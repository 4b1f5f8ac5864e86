// Package workers runs the background jobs of the ingress service next to
// the HTTP servers.
package workers

import (
	"context"
	"time"
)

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Sweeper removes staged files older than a cutoff.
type Sweeper interface {
	Sweep(cutoff time.Time) (int, error)
}
