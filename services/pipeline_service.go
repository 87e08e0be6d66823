// backend/services/pipeline_service.go
package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/madruiz/pm9data/backend/models"
	"github.com/madruiz/pm9data/backend/pipeline"
	"go.uber.org/zap"
)

// ErrRefreshInProgress is returned when a refresh is requested while an
// earlier one is still running.
var ErrRefreshInProgress = errors.New("a data refresh is already in progress")

// PipelineService runs the cleaning pipeline on demand and hands the
// result to the dataset service. At most one refresh runs at a time;
// concurrent requests are rejected instead of stacking runs that would
// race over the export files.
type PipelineService struct {
	runner  *pipeline.Runner
	dataset *DatasetService
	logger  *zap.Logger

	mu      sync.Mutex
	running bool
}

// NewPipelineService wires the runner to the dataset it should refresh.
func NewPipelineService(runner *pipeline.Runner, dataset *DatasetService, logger *zap.Logger) *PipelineService {
	return &PipelineService{runner: runner, dataset: dataset, logger: logger}
}

// RefreshData executes one pipeline run and reloads the served dataset
// from the fresh export. The run report comes back even when the reload
// step fails, so callers can still see what the pipeline did.
func (s *PipelineService) RefreshData() (*models.RunReport, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrRefreshInProgress
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	report, err := s.runner.Run()
	if err != nil {
		s.logger.Error("data refresh failed", zap.Error(err))
		return nil, err
	}

	if err := s.dataset.Reload(); err != nil {
		return report, fmt.Errorf("pipeline run succeeded but dataset reload failed: %w", err)
	}
	return report, nil
}
