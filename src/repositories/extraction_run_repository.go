package repositories

import (
	"consolidator/src/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRunNotFound = errors.New("extraction run not found")

type ExtractionRunRepository interface {
	Create(ctx context.Context, run *models.ExtractionRun) error
	GetLatest(ctx context.Context) (*models.ExtractionRun, error)
}

type extractionRunRepo struct {
	db *pgxpool.Pool
}

func NewExtractionRunRepository(db *pgxpool.Pool) ExtractionRunRepository {
	return &extractionRunRepo{db: db}
}

// Create stores the run with its holdings and removed duplicates in one
// transaction.
func (r *extractionRunRepo) Create(ctx context.Context, run *models.ExtractionRun) (err error) {
	issuers, err := json.Marshal(run.Issuers)
	if err != nil {
		return err
	}
	totals, err := json.Marshal(run.Totals)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO extraction_runs (id, folder, started_at, finished_at, issuers, totals)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.Folder, run.StartedAt, run.FinishedAt, issuers, totals)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	batch := &pgx.Batch{}
	for i, h := range run.Holdings {
		batch.Queue(
			`INSERT INTO run_holdings (run_id, position, manager_name, asset_type, asset_name,
				current_investment_value, current_market_value, value_as_of_date, pl_amount,
				pl_percentage, irr_percentage, investment_date, potential_duplicate, raw_data)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			run.ID, i, h.ManagerName, h.AssetType, h.AssetName,
			h.CurrentInvestmentValue, h.CurrentMarketValue, h.ValueAsOfDate, h.PLAmount,
			h.PLPercentage, h.IRRPercentage, h.InvestmentDate, h.PotentialDuplicate, h.RawData)
	}
	for i, d := range run.RemovedDuplicates {
		duplicate, marshalErr := json.Marshal(d.DuplicateHolding)
		if marshalErr != nil {
			err = marshalErr
			return err
		}
		batch.Queue(
			`INSERT INTO removed_duplicates (run_id, position, duplicate, original_manager, canonical_key)
			VALUES ($1, $2, $3, $4, $5)`,
			run.ID, i, duplicate, d.OriginalManager, d.CanonicalKey)
	}
	if batch.Len() > 0 {
		if err = tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert run rows: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetLatest returns the most recently started run, or ErrRunNotFound.
func (r *extractionRunRepo) GetLatest(ctx context.Context) (*models.ExtractionRun, error) {
	var run models.ExtractionRun
	var issuers, totals []byte
	err := r.db.QueryRow(ctx,
		`SELECT id, folder, started_at, finished_at, issuers, totals
		FROM extraction_runs
		ORDER BY started_at DESC
		LIMIT 1`).Scan(&run.ID, &run.Folder, &run.StartedAt, &run.FinishedAt, &issuers, &totals)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(issuers, &run.Issuers); err != nil {
		return nil, fmt.Errorf("failed to decode issuers of run %s: %w", run.ID, err)
	}
	if err := json.Unmarshal(totals, &run.Totals); err != nil {
		return nil, fmt.Errorf("failed to decode totals of run %s: %w", run.ID, err)
	}

	if run.Holdings, err = r.holdings(ctx, run.ID); err != nil {
		return nil, err
	}
	if run.RemovedDuplicates, err = r.removedDuplicates(ctx, run.ID); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *extractionRunRepo) holdings(ctx context.Context, runID string) ([]models.Holding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT manager_name, asset_type, asset_name, current_investment_value, current_market_value,
			value_as_of_date, pl_amount, pl_percentage, irr_percentage, investment_date,
			potential_duplicate, raw_data
		FROM run_holdings
		WHERE run_id = $1
		ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holdings := []models.Holding{}
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ManagerName, &h.AssetType, &h.AssetName, &h.CurrentInvestmentValue,
			&h.CurrentMarketValue, &h.ValueAsOfDate, &h.PLAmount, &h.PLPercentage, &h.IRRPercentage,
			&h.InvestmentDate, &h.PotentialDuplicate, &h.RawData); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *extractionRunRepo) removedDuplicates(ctx context.Context, runID string) ([]models.RemovedDuplicate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT duplicate, original_manager, canonical_key
		FROM removed_duplicates
		WHERE run_id = $1
		ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	removed := []models.RemovedDuplicate{}
	for rows.Next() {
		var d models.RemovedDuplicate
		var duplicate []byte
		if err := rows.Scan(&duplicate, &d.OriginalManager, &d.CanonicalKey); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(duplicate, &d.DuplicateHolding); err != nil {
			return nil, err
		}
		removed = append(removed, d)
	}
	return removed, rows.Err()
}
