package services

import (
	"consolidator/src/config"
	"consolidator/src/document"
	"consolidator/src/extractors"
	"consolidator/src/models"
	"consolidator/src/utils"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoMonthFolder     = errors.New("no month folder found")
	ErrStatementNotFound = errors.New("statement not found")
)

const statementExtension = ".pdf"

type ExtractionServiceI interface {
	LatestMonthFolder(ctx context.Context) (string, error)
	Run(ctx context.Context, folder string) (*models.ExtractionRun, error)
}

// DocumentOpener opens a statement file with an optional password.
type DocumentOpener func(path, password string) (document.Document, error)

// ExtractionService runs every enabled extractor over one month folder and
// consolidates the result.
type ExtractionService struct {
	dataDir       string
	issuers       map[string]config.IssuerConfig
	extractors    []extractors.Extractor
	deduplication DeduplicationServiceI
	passwords     PasswordServiceI
	open          DocumentOpener
	now           func() time.Time
}

func NewExtractionService(
	cfg *config.Config,
	extractorList []extractors.Extractor,
	deduplication DeduplicationServiceI,
	passwords PasswordServiceI,
	open DocumentOpener,
) *ExtractionService {
	if open == nil {
		open = document.OpenPDF
	}
	return &ExtractionService{
		dataDir:       cfg.Input.DataDir,
		issuers:       cfg.Issuers,
		extractors:    extractorList,
		deduplication: deduplication,
		passwords:     passwords,
		open:          open,
		now:           time.Now,
	}
}

// LatestMonthFolder returns the most recent "Month YYYY" folder of the data
// directory. Folders with other names are skipped.
func (s *ExtractionService) LatestMonthFolder(ctx context.Context) (string, error) {
	logger := utils.LoggerFromContext(ctx)

	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to read data directory %s: %w", s.dataDir, err)
	}

	var latest string
	var latestDate time.Time
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		date, err := utils.ParseMonthFolder(entry.Name())
		if err != nil {
			logger.WithField("folder", entry.Name()).Warn("Skipping folder without a month name")
			continue
		}
		if latest == "" || date.After(latestDate) {
			latest, latestDate = entry.Name(), date
		}
	}
	if latest == "" {
		return "", fmt.Errorf("%s: %w", s.dataDir, ErrNoMonthFolder)
	}
	return filepath.Join(s.dataDir, latest), nil
}

// Run extracts every issuer found in folder, or in the latest month folder
// when folder is empty. Issuer failures are reported in the run, never
// returned.
func (s *ExtractionService) Run(ctx context.Context, folder string) (*models.ExtractionRun, error) {
	logger := utils.LoggerFromContext(ctx)
	startedAt := s.now()

	if folder == "" {
		latest, err := s.LatestMonthFolder(ctx)
		if err != nil {
			return nil, err
		}
		folder = latest
	}
	files, err := listFiles(folder)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"folder": folder, "files": len(files)}).Info("Starting extraction")

	results := make([]models.IssuerResult, len(s.extractors))
	holdingsByIssuer := make([][]models.Holding, len(s.extractors))
	var wg sync.WaitGroup
	for i, extractor := range s.extractors {
		wg.Add(1)
		go func(i int, extractor extractors.Extractor) {
			defer wg.Done()
			results[i], holdingsByIssuer[i] = s.extractIssuer(ctx, extractor, folder, files)
		}(i, extractor)
	}
	wg.Wait()

	var extracted []models.Holding
	for _, holdings := range holdingsByIssuer {
		extracted = append(extracted, holdings...)
	}
	clean, removed := s.deduplication.Deduplicate(ctx, ValidHoldings(ctx, extracted))

	run := &models.ExtractionRun{
		ID:                uuid.NewString(),
		Folder:            folder,
		StartedAt:         startedAt,
		FinishedAt:        s.now(),
		Issuers:           results,
		Holdings:          clean,
		RemovedDuplicates: removed,
		Totals:            models.Summarize(clean),
	}
	logger.WithFields(logrus.Fields{
		"run_id":       run.ID,
		"holdings":     len(clean),
		"removed":      len(removed),
		"market_value": utils.FormatCurrency(run.Totals.MarketValue, utils.CurrencyINR),
	}).Info("Extraction finished")
	return run, nil
}

func (s *ExtractionService) extractIssuer(ctx context.Context, extractor extractors.Extractor, folder string, files []string) (models.IssuerResult, []models.Holding) {
	manager := extractor.Name()
	logger := utils.LoggerFromContext(ctx).WithField("manager", manager)
	result := models.IssuerResult{ManagerName: manager}

	issuer, ok := s.issuers[config.IssuerKey(manager)]
	pattern := manager
	if ok && issuer.FilePattern != "" {
		pattern = issuer.FilePattern
	}
	statement := findFile(files, pattern, true)
	if statement == "" {
		logger.WithField("pattern", pattern).Warn("No statement found")
		result.Error = ErrStatementNotFound.Error()
		return result, nil
	}
	result.File = statement

	password, err := s.passwords.Password(ctx, manager)
	if err != nil {
		logger.WithError(err).Error("Could not resolve statement password")
		result.Error = err.Error()
		return result, nil
	}
	doc, err := s.open(filepath.Join(folder, statement), password)
	if err != nil {
		logger.WithError(err).WithField("file", statement).Error("Could not open statement")
		result.Error = err.Error()
		return result, nil
	}

	input := extractors.Input{Document: doc}
	if issuer.AuxiliaryPattern != "" {
		if aux := findFile(files, issuer.AuxiliaryPattern, false); aux != "" {
			result.AuxiliaryFile = aux
			input.AuxiliaryPath = filepath.Join(folder, aux)
		}
	}

	holdings := extractor.Extract(ctx, input)
	result.HoldingsCount = len(holdings)
	logger.WithFields(logrus.Fields{"file": statement, "holdings": len(holdings)}).Info("Issuer extracted")
	return result, holdings
}

// ValidHoldings drops records that break the output contract: negative
// market value, empty asset name or a disclaimer row.
func ValidHoldings(ctx context.Context, holdings []models.Holding) []models.Holding {
	logger := utils.LoggerFromContext(ctx)
	valid := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		name := strings.TrimSpace(h.AssetName)
		if h.CurrentMarketValue < 0 || name == "" || strings.HasPrefix(name, utils.DisclaimerMarker) {
			logger.WithFields(logrus.Fields{"manager": h.ManagerName, "asset": h.AssetName}).Warn("Dropping invalid holding")
			continue
		}
		valid = append(valid, h)
	}
	return valid
}

func listFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// findFile returns the first file whose name contains pattern, ignoring
// case. Statements must be PDFs; auxiliary files must not be.
func findFile(files []string, pattern string, statement bool) string {
	needle := strings.ToLower(pattern)
	for _, name := range files {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, needle) {
			continue
		}
		if (filepath.Ext(lower) == statementExtension) == statement {
			return name
		}
	}
	return ""
}
