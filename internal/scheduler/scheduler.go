package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/session"
)

// Scheduler periodically clears expired status messages and evicts idle
// sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  *session.Manager
	sweep     time.Duration
	evict     time.Duration
}

// New creates a new Scheduler. sweep is the message sweep interval; evict is
// how often idle sessions are looked for.
func New(sessions *session.Manager, sweep, evict time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		sessions:  sessions,
		sweep:     sweep,
		evict:     evict,
	}
}

// Start schedules the periodic jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.sweep <= 0 {
		s.sweep = time.Second
	}
	if s.evict <= 0 {
		s.evict = 15 * time.Minute
	}

	_, err := s.scheduler.Every(s.sweep).SingletonMode().Do(func() {
		if n := s.sessions.SweepMessages(); n > 0 {
			log.Printf("DEBUG: scheduler: cleared %d expired messages", n)
		}
	})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Every(s.evict).SingletonMode().Do(func() {
		log.Println("scheduler: running idle session eviction")
		n := s.sessions.EvictIdle()
		log.Printf("scheduler: evicted %d idle sessions, %d remain", n, s.sessions.Len())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
