package controllers

import (
	"consolidator/src/models"
	"consolidator/src/repositories"
	"consolidator/src/schemas"
	"consolidator/src/services"
	"context"
	"errors"
	"io"
)

// GetLatestRun returns the run kept in memory, falling back to the latest
// stored run when nothing has run since startup.
func (c *Controller) GetLatestRun(ctx context.Context) (*models.ExtractionRun, error) {
	c.mutex.RLock()
	latest := c.latest
	c.mutex.RUnlock()
	if latest != nil {
		return latest, nil
	}
	if c.Runs == nil {
		return nil, ErrNoRun
	}

	run, err := c.Runs.GetLatest(ctx)
	if errors.Is(err, repositories.ErrRunNotFound) {
		return nil, ErrNoRun
	}
	if err != nil {
		return nil, err
	}
	c.setLatest(run)
	return run, nil
}

func (c *Controller) GetSummary(ctx context.Context) (*schemas.HoldingsSummaryResponse, error) {
	run, err := c.GetLatestRun(ctx)
	if err != nil {
		return nil, err
	}

	response := &schemas.HoldingsSummaryResponse{
		RunID:    run.ID,
		Folder:   run.Folder,
		Managers: []schemas.ManagerSummary{},
		Totals:   run.Totals,
		Issuers:  run.Issuers,
	}
	if len(run.Holdings) == 0 {
		return response, nil
	}

	df := c.Export.SummaryByManager(run.Holdings)
	if df.Err != nil {
		return nil, df.Err
	}
	managers := df.Col("Manager").Records()
	investment := df.Col("Investment Value").Float()
	market := df.Col("Market Value").Float()
	pl := df.Col("P&L").Float()
	returns := df.Col("Return %").Float()
	counts, err := df.Col("Count").Int()
	if err != nil {
		return nil, err
	}
	for i, manager := range managers {
		response.Managers = append(response.Managers, schemas.ManagerSummary{
			Manager:          manager,
			HoldingsCount:    counts[i],
			InvestmentValue:  investment[i],
			MarketValue:      market[i],
			PLAmount:         pl[i],
			ReturnPercentage: returns[i],
		})
	}
	return response, nil
}

func (c *Controller) ExportLatest(ctx context.Context, w io.Writer, format services.ExportFormat) error {
	run, err := c.GetLatestRun(ctx)
	if err != nil {
		return err
	}
	return c.Export.Export(ctx, w, run, format)
}

func (c *Controller) setLatest(run *models.ExtractionRun) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.latest = run
}
