package cron

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvery(t *testing.T) {
	scheduler := NewScheduler("America/Toronto")

	var runs int32
	err := scheduler.Every(time.Hour, "count", func() error {
		atomic.AddInt32(&runs, 1)
		return nil
	})
	assert.Nil(t, err)

	err = scheduler.Every(time.Hour, "failing", func() error {
		atomic.AddInt32(&runs, 1)
		return errors.New("boom")
	})
	assert.Nil(t, err)
	assert.Equal(t, 2, scheduler.JobCount())

	scheduler.Start()
	defer scheduler.Stop()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 2 }, 3*time.Second, 50*time.Millisecond,
		"Expected each job to run once on start")
}

func TestPeriodicallyPerform(t *testing.T) {
	scheduler := NewScheduler("Not/AZone")

	assert.Nil(t, scheduler.PeriodicallyPerform("*/5 * * * *", "backup", func() error { return nil }))
	assert.NotNil(t, scheduler.PeriodicallyPerform("not a cron expression", "broken", func() error { return nil }))

	assert.Nil(t, scheduler.Remove("backup"))
	assert.NotNil(t, scheduler.Remove("backup"), "Expected job to be gone")
}
