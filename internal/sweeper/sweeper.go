// Package sweeper runs the periodic status sweep: approved events whose end
// time has passed become completed, and checked-in attendees of completed
// events get a feedback request once the grace period elapses.
package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/campushub/campus-events/internal/monitoring"
	"github.com/campushub/campus-events/internal/service"
)

type Sweeper struct {
	events   service.EventService
	interval time.Duration
	grace    time.Duration
	quit     chan struct{}
	done     chan struct{}
}

func New(events service.EventService, interval, grace time.Duration) *Sweeper {
	return &Sweeper{
		events:   events,
		interval: interval,
		grace:    grace,
		quit:     make(chan struct{}),
	}
}

// Start launches the sweep loop. The sweeper owns its own lifecycle,
// independent of request handling.
func (s *Sweeper) Start() {
	s.done = make(chan struct{})
	go s.run()
	log.Printf("[Sweeper] started (interval=%s, grace=%s)", s.interval, s.grace)
}

func (s *Sweeper) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.quit:
			return
		}
	}
}

// Stop terminates the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	close(s.quit)
	if s.done != nil {
		<-s.done
	}
	log.Println("[Sweeper] stopped")
}

// Sweep runs both phases once. Errors are logged, not fatal: the next
// interval simply retries.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := time.Now()

	completed, err := s.events.CompletePastEvents(ctx, now)
	if err != nil {
		log.Printf("[Sweeper] complete past events: %v", err)
	}

	sent, err := s.events.SendFeedbackRequests(ctx, now, s.grace)
	if err != nil {
		log.Printf("[Sweeper] send feedback requests: %v", err)
	}

	monitoring.ObserveSweep(completed)
	if completed > 0 || sent > 0 {
		log.Printf("[Sweeper] completed %d event(s), enqueued %d feedback request(s)", completed, sent)
	}
}
