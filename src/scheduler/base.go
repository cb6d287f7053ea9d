package scheduler

import (
	"consolidator/src/utils"
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduledTask runs a task on a cron spec. A run that is still going when
// the next one is due makes that one skip.
type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	cancel context.CancelFunc
}

func NewScheduledTask(ctx context.Context, cronSpec string, taskFunc func(ctx context.Context) error) (*ScheduledTask, error) {
	logger := utils.LoggerFromContext(ctx)
	ctx, cancel := context.WithCancel(ctx)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	task := &ScheduledTask{
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		if ctx.Err() != nil {
			return
		}
		startedAt := time.Now()
		if err := taskFunc(ctx); err != nil {
			logger.WithError(err).WithField("spec", cronSpec).Error("Scheduled task failed")
			return
		}
		logger.WithField("elapsed", time.Since(startedAt).String()).Info("Scheduled task finished")
	})
	if err != nil {
		cancel()
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

// Next is the time of the next scheduled run.
func (s *ScheduledTask) Next() time.Time {
	return s.cron.Entry(s.cronID).Next
}

// Cancel stops scheduling and waits for a running task to return.
func (s *ScheduledTask) Cancel() {
	s.cron.Remove(s.cronID)
	s.cancel()
	<-s.cron.Stop().Done()
}
