package cron

import (
	"fmt"
	"time"

	"github.com/Daskott/contactbook/colors"
	"github.com/Daskott/contactbook/server/logger"
	"github.com/go-co-op/gocron"
)

var logg = logger.NewLogger()

// Job is a unit of background work. A returned error is logged, never retried.
type Job func() error

type Scheduler struct {
	cronScheduler *gocron.Scheduler
}

// NewScheduler returns a scheduler running in 'timeZone', falling back to UTC when unknown
func NewScheduler(timeZone string) *Scheduler {
	location, err := time.LoadLocation(timeZone)
	if err != nil {
		logg.Warnf("unknown time zone %q, using UTC: %v", timeZone, err)
		location = time.UTC
	}

	cronScheduler := gocron.NewScheduler(location)
	cronScheduler.TagsUnique()

	return &Scheduler{cronScheduler: cronScheduler}
}

// Start runs scheduled jobs in the background
func (scheduler *Scheduler) Start() {
	logg.Info("Starting cron scheduler")
	scheduler.cronScheduler.StartAsync()
}

func (scheduler *Scheduler) Stop() {
	logg.Info("Stopping cron scheduler")
	scheduler.cronScheduler.Stop()
}

// PeriodicallyPerform runs 'job' on the schedule described by 'cronExpression'
func (scheduler *Scheduler) PeriodicallyPerform(cronExpression, name string, job Job) error {
	_, err := scheduler.cronScheduler.Cron(cronExpression).Tag(name).Do(run, name, job)
	if err != nil {
		return fmt.Errorf("unable to schedule %v: %v", name, err)
	}
	return nil
}

// Every runs 'job' once on start & then every 'interval'
func (scheduler *Scheduler) Every(interval time.Duration, name string, job Job) error {
	_, err := scheduler.cronScheduler.Every(interval).Tag(name).Do(run, name, job)
	if err != nil {
		return fmt.Errorf("unable to schedule %v: %v", name, err)
	}
	return nil
}

func (scheduler *Scheduler) Remove(name string) error {
	return scheduler.cronScheduler.RemoveByTag(name)
}

// JobCount returns the number of scheduled jobs
func (scheduler *Scheduler) JobCount() int {
	return scheduler.cronScheduler.Len()
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func run(name string, job Job) {
	start := time.Now()
	if err := job(); err != nil {
		logg.Errorf("job %v failed: %v", colors.Cyan(name), err)
		return
	}
	logg.Infof("job %v done %v", colors.Cyan(name), colors.Yellow(fmt.Sprintf("[%v]", time.Since(start))))
}
