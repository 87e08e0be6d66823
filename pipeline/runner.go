// backend/pipeline/runner.go
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/madruiz/pm9data/backend/config"
	"github.com/madruiz/pm9data/backend/database"
	"github.com/madruiz/pm9data/backend/models"
	"go.uber.org/zap"
)

// Runner executes the cleaning pipeline end to end: fetch the source
// workbook if a URL is configured, load it, clean and deduplicate the
// rows, remap areas, derive the computed columns, write both exports and
// optionally publish the table to MySQL. Every run gets a RunReport with
// the counts of what happened.
type Runner struct {
	logger *zap.Logger
}

// NewRunner returns a Runner that logs stage progress through logger.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes one full pipeline pass over the configured paths. The
// returned report has already been written to the configured report path.
func (r *Runner) Run() (*models.RunReport, error) {
	cfg := config.AppConfig
	report := &models.RunReport{
		RunID:     uuid.NewString(),
		Source:    cfg.Paths.SourceXLSX,
		StartedAt: time.Now().UTC(),
	}
	r.logger.Info("pipeline run starting",
		zap.String("run_id", report.RunID),
		zap.String("source", report.Source))

	if cfg.Pipeline.SourceURL != "" {
		if _, err := DownloadSourceXLSX(); err != nil {
			return nil, fmt.Errorf("pipeline fetch stage failed: %w", err)
		}
	}

	projects, loadStats, err := LoadProjects(cfg.Paths.SourceXLSX, cfg.Pipeline.SheetName)
	if err != nil {
		return nil, fmt.Errorf("pipeline load stage failed: %w", err)
	}
	report.RowsLoaded = loadStats.RowsRead
	if len(loadStats.CellErrors) > 0 {
		report.CellErrors = loadStats.CellErrors
		r.logger.Warn("some cells could not be parsed and were left empty",
			zap.Any("cell_errors", loadStats.CellErrors))
	}

	CleanText(projects)

	projects, report.NullKeyDropped = DropNullKeys(projects)
	projects, report.DuplicatesDropped = Dedupe(projects)
	report.CentersNormalized = NormalizeCenters(projects)

	lookup, err := LoadAreaLookup(cfg.Paths.AreasXLSX)
	if err != nil {
		return nil, fmt.Errorf("pipeline area stage failed: %w", err)
	}
	areaStats := ApplyAreas(projects, lookup)
	report.AreaNullCodes = areaStats.NullCodes
	report.AreaUnmappedRows = areaStats.UnmappedRows
	report.AreaUnmappedCodes = areaStats.UnmappedCodes

	DeriveFields(projects)

	if err := Export(projects, cfg.Paths.CleanCSV, cfg.Paths.CleanXLSX); err != nil {
		return nil, fmt.Errorf("pipeline export stage failed: %w", err)
	}
	report.RowsExported = len(projects)
	report.CSVPath = cfg.Paths.CleanCSV
	report.XLSXPath = cfg.Paths.CleanXLSX

	if cfg.Database.DBName != "" && database.DB != nil {
		if err := database.SaveProjects(projects, report.RunID); err != nil {
			return nil, fmt.Errorf("pipeline publish stage failed: %w", err)
		}
		report.Published = true
	}

	report.FinishedAt = time.Now().UTC()
	if err := WriteReport(report, cfg.Paths.ReportJSON); err != nil {
		return nil, err
	}

	r.logger.Info("pipeline run finished",
		zap.String("run_id", report.RunID),
		zap.Int("rows_loaded", report.RowsLoaded),
		zap.Int("rows_exported", report.RowsExported),
		zap.Int("null_key_dropped", report.NullKeyDropped),
		zap.Int("duplicates_dropped", report.DuplicatesDropped),
		zap.Int("centers_normalized", report.CentersNormalized),
		zap.Int("area_unmapped_rows", report.AreaUnmappedRows),
		zap.Bool("published", report.Published),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}

// WriteReport writes the run report as indented JSON. The report lives in
// its own file, never inside the exports, so that re-running the pipeline
// over unchanged input keeps the exports byte-identical.
func WriteReport(report *models.RunReport, path string) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run report: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write run report %s: %w", path, err)
	}
	return nil
}
