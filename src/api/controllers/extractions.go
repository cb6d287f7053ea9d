package controllers

import (
	"consolidator/src/models"
	"consolidator/src/services"
	"consolidator/src/utils"
	"context"
	"errors"
	"path/filepath"
)

// RunExtraction consolidates folder (a month folder name inside the data
// directory, or the latest one when empty) and makes it the latest run.
// Only one extraction runs at a time.
func (c *Controller) RunExtraction(ctx context.Context, folder string) (*models.ExtractionRun, error) {
	logger := utils.LoggerFromContext(ctx)

	if !c.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer c.running.Unlock()

	if folder != "" {
		folder = filepath.Join(c.DataDir, filepath.Base(folder))
	}
	run, err := c.Extraction.Run(ctx, folder)
	if errors.Is(err, services.ErrNoMonthFolder) {
		return nil, utils.NotFound(err.Error())
	}
	if err != nil {
		return nil, err
	}

	if c.Runs != nil {
		if err := c.Runs.Create(ctx, run); err != nil {
			logger.WithError(err).WithField("run_id", run.ID).Error("Could not store extraction run")
		}
	}
	c.setLatest(run)
	return run, nil
}
