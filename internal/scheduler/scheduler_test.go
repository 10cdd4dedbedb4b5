package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/session"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

func TestSchedulerSweepsExpiredMessages(t *testing.T) {
	sessions := session.NewManager(nil, session.Options{MessageTTL: 10 * time.Millisecond})
	s := sessions.Create(context.Background())

	_, err := s.Run(context.Background(), "", func(context.Context) (weather.Report, error) {
		return weather.Report{Current: weather.Current{City: "Paris", TemperatureK: 290}}, nil
	})
	require.NoError(t, err)

	sched := New(sessions, 50*time.Millisecond, time.Hour)
	require.NoError(t, sched.Start())
	defer sched.Stop()

	assert.Eventually(t, func() bool {
		_, ok := s.Message()
		return !ok && sessions.SweepMessages() == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestSchedulerDefaults(t *testing.T) {
	sched := New(session.NewManager(nil, session.Options{}), 0, 0)
	require.NoError(t, sched.Start())
	defer sched.Stop()

	assert.Equal(t, time.Second, sched.sweep)
	assert.Equal(t, 15*time.Minute, sched.evict)
}
