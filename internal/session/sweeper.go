package session

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper periodically removes idle sessions from a registry. It is the
// only scheduled activity in the relay; request handling never triggers
// a sweep.
type Sweeper struct {
	registry *Registry
	ttl      time.Duration
	interval time.Duration
	done     chan struct{}

	// OnSweep, when set, is called after each pass with the number of
	// sessions removed. Used to feed metrics.
	OnSweep func(removed int)
}

// NewSweeper creates a sweeper for the given registry
func NewSweeper(registry *Registry, ttl, interval time.Duration) *Sweeper {
	return &Sweeper{
		registry: registry,
		ttl:      ttl,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the background sweep loop
func (s *Sweeper) Start() {
	go s.run()
	log.Info().
		Dur("ttl", s.ttl).
		Dur("interval", s.interval).
		Msg("session sweeper started")
}

// Stop terminates the sweep loop. Safe to call once.
func (s *Sweeper) Stop() {
	close(s.done)
	log.Info().Msg("session sweeper stopped")
}

func (s *Sweeper) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			removed := s.registry.SweepExpired(s.ttl)
			if removed > 0 {
				log.Info().Int("removed", removed).Msg("sweep pass complete")
			}
			if s.OnSweep != nil {
				s.OnSweep(removed)
			}
		}
	}
}
