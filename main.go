// backend/main.go
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/madruiz/pm9data/backend/config"
	"github.com/madruiz/pm9data/backend/database"
	"github.com/madruiz/pm9data/backend/pipeline"
	"github.com/madruiz/pm9data/backend/routes"
	"github.com/madruiz/pm9data/backend/services"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: search standard locations)")
	runClean := flag.Bool("clean", false, "run the cleaning pipeline once and exit")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	log.Println("Starting PM9 Data Backend Application...")

	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := config.AppConfig
	log.Printf("Configuration loaded. Server port: %s, source workbook: %s",
		cfg.Server.Port, cfg.Paths.SourceXLSX)

	if cfg.Database.DBName != "" {
		if err := database.InitDB(cfg.Database); err != nil {
			log.Fatalf("Error initializing database: %v", err)
		}
		defer database.CloseDB()
		if err := database.EnsureSchema(); err != nil {
			log.Fatalf("Error ensuring database schema: %v", err)
		}
	} else {
		log.Println("No database configured; the publish step is disabled.")
	}

	runner := pipeline.NewRunner(logger)

	if *runClean {
		report, err := runner.Run()
		if err != nil {
			log.Fatalf("Pipeline run failed: %v", err)
		}
		log.Printf("Pipeline run %s finished: %d rows exported to %s and %s",
			report.RunID, report.RowsExported, report.CSVPath, report.XLSXPath)
		return
	}

	dataset := services.NewDatasetService(cfg.Paths.CleanCSV, logger)
	if err := dataset.Reload(); err != nil {
		// Not fatal: a fresh deployment has no clean export yet. The admin
		// refresh endpoint or the cron schedule will populate it.
		logger.Warn("clean dataset not available yet, serving an empty table until a refresh runs",
			zap.Error(err))
	}
	pipelineService := services.NewPipelineService(runner, dataset, logger)

	if spec := cfg.Dashboard.ReloadCron; spec != "" {
		c := cron.New()
		if _, err := c.AddFunc(spec, func() {
			if _, err := pipelineService.RefreshData(); err != nil {
				logger.Error("scheduled data refresh failed", zap.Error(err))
			}
		}); err != nil {
			log.Fatalf("Invalid reload_cron %q: %v", spec, err)
		}
		c.Start()
		defer c.Stop()
		log.Printf("Scheduled data refresh enabled: %s", spec)
	}

	router := mux.NewRouter()
	routes.SetupRoutes(router, dataset, pipelineService)

	serverAddr := ":" + cfg.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
