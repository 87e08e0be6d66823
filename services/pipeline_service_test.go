// backend/services/pipeline_service_test.go
package services

import (
	"path/filepath"
	"testing"

	"github.com/madruiz/pm9data/backend/config"
	"github.com/madruiz/pm9data/backend/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRefreshDataRejectsConcurrentRuns(t *testing.T) {
	svc := NewPipelineService(pipeline.NewRunner(zap.NewNop()), NewDatasetService("unused.csv", zap.NewNop()), zap.NewNop())

	svc.mu.Lock()
	svc.running = true
	svc.mu.Unlock()

	_, err := svc.RefreshData()
	assert.ErrorIs(t, err, ErrRefreshInProgress)
}

func TestRefreshDataPropagatesRunnerErrors(t *testing.T) {
	dir := t.TempDir()
	config.AppConfig = config.Config{}
	config.AppConfig.Paths.SourceXLSX = filepath.Join(dir, "no-such.xlsx")
	config.AppConfig.Paths.AreasXLSX = filepath.Join(dir, "no-such-either.xlsx")
	config.AppConfig.Paths.CleanCSV = filepath.Join(dir, "clean.csv")
	config.AppConfig.Paths.CleanXLSX = filepath.Join(dir, "clean.xlsx")
	config.AppConfig.Paths.ReportJSON = filepath.Join(dir, "report.json")

	svc := NewPipelineService(pipeline.NewRunner(zap.NewNop()), NewDatasetService(filepath.Join(dir, "clean.csv"), zap.NewNop()), zap.NewNop())

	report, err := svc.RefreshData()
	require.Error(t, err)
	assert.Nil(t, report)

	// A failed run must leave the guard released so a later retry can start.
	_, err = svc.RefreshData()
	assert.NotErrorIs(t, err, ErrRefreshInProgress)
}
