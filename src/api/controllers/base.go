package controllers

import (
	"consolidator/src/models"
	"consolidator/src/repositories"
	"consolidator/src/schemas"
	"consolidator/src/services"
	"consolidator/src/utils"
	"context"
	"io"
	"sync"
)

var (
	ErrNoRun         = utils.NotFound("no extraction run available")
	ErrRunInProgress = utils.Conflict("an extraction is already running")
)

type IController interface {
	GetLatestRun(ctx context.Context) (*models.ExtractionRun, error)
	GetSummary(ctx context.Context) (*schemas.HoldingsSummaryResponse, error)
	RunExtraction(ctx context.Context, folder string) (*models.ExtractionRun, error)
	ExportLatest(ctx context.Context, w io.Writer, format services.ExportFormat) error
}

// Controller keeps the latest run in memory. Runs is optional; when set,
// every run is stored and the latest stored run is served after a restart.
type Controller struct {
	DataDir    string
	Extraction services.ExtractionServiceI
	Export     services.ExportServiceI
	Runs       repositories.ExtractionRunRepository

	mutex   sync.RWMutex
	latest  *models.ExtractionRun
	running sync.Mutex
}

func NewController(dataDir string, extraction services.ExtractionServiceI, export services.ExportServiceI, runs repositories.ExtractionRunRepository) *Controller {
	return &Controller{DataDir: dataDir, Extraction: extraction, Export: export, Runs: runs}
}
