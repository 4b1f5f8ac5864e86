package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ingress/internal/logger"
)

// TempSweeper periodically removes staged uploads left behind by crashed or
// killed processes.
type TempSweeper struct {
	sweeper    Sweeper
	interval   time.Duration
	staleAfter time.Duration
	now        func() time.Time

	logger *logger.Logger
}

func NewTempSweeper(sweeper Sweeper, interval, staleAfter time.Duration, logger *logger.Logger) *TempSweeper {
	return &TempSweeper{
		sweeper:    sweeper,
		interval:   interval,
		staleAfter: staleAfter,
		now:        time.Now,
		logger:     logger,
	}
}

// Run sweeps once immediately and then every interval until ctx is done.
// A non-positive interval or staleAfter disables the sweeper.
func (s *TempSweeper) Run(ctx context.Context) {
	if s.interval <= 0 || s.staleAfter <= 0 {
		s.logger.Info().Msg("temp sweeper disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *TempSweeper) sweep() {
	removed, err := s.sweeper.Sweep(s.now().Add(-s.staleAfter))
	if err != nil {
		s.logger.Error().Err(err).Int("removed", removed).Msg("error sweeping staged uploads")
		return
	}
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("stale staged uploads removed")
	}
}
