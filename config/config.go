// backend/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type PathsConfig struct {
	SourceXLSX string `yaml:"source_xlsx"`
	AreasXLSX  string `yaml:"areas_xlsx"`
	CleanCSV   string `yaml:"clean_csv"`
	CleanXLSX  string `yaml:"clean_xlsx"`
	ReportJSON string `yaml:"report_json"`
}

type PipelineConfig struct {
	SourceURL string `yaml:"source_url"` // optional: fetch the raw workbook from here before cleaning
	SheetName string `yaml:"sheet_name"` // empty means first sheet in the workbook
}

type DashboardConfig struct {
	ReloadCron string `yaml:"reload_cron"` // optional 5-field cron spec; empty disables scheduled reloads
	TopCentros int    `yaml:"top_centros"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Paths     PathsConfig     `yaml:"paths"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

var AppConfig Config

// LoadConfig reads configuration from a YAML file, a .env file and
// PM9_* environment variables, in that order of precedence (later wins).
// A missing config file is not an error: defaults plus environment
// overrides are enough to run the pipeline against the bundled paths.
func LoadConfig(configPath string) error {
	// .env is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	if configPath == "" {
		// Try common locations relative to wherever the binary was started.
		potentialPaths := []string{
			"config.yaml",
			"config/config.yaml",
			"backend/config/config.yaml",
		}
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, &AppConfig); err != nil {
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}
		fmt.Printf("Loading configuration from: %s\n", configPath)
	} else {
		fmt.Println("No config.yaml found, using defaults and environment overrides")
	}

	applyDefaults()
	applyEnvOverrides()

	// Output files may live in a directory that does not exist yet.
	for _, p := range []string{AppConfig.Paths.CleanCSV, AppConfig.Paths.CleanXLSX, AppConfig.Paths.ReportJSON} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", p, err)
		}
	}

	return nil
}

func applyDefaults() {
	if AppConfig.Server.Port == "" {
		AppConfig.Server.Port = "8080"
	}
	if AppConfig.Paths.SourceXLSX == "" {
		AppConfig.Paths.SourceXLSX = "data/9PM_bootcamp.xlsx"
	}
	if AppConfig.Paths.AreasXLSX == "" {
		AppConfig.Paths.AreasXLSX = "data/areas_ref.xlsx"
	}
	if AppConfig.Paths.CleanCSV == "" {
		AppConfig.Paths.CleanCSV = "data/9PM_bootcamp_clean.csv"
	}
	if AppConfig.Paths.CleanXLSX == "" {
		AppConfig.Paths.CleanXLSX = "data/9PM_bootcamp_clean.xlsx"
	}
	if AppConfig.Paths.ReportJSON == "" {
		AppConfig.Paths.ReportJSON = "data/9PM_bootcamp_report.json"
	}
	if AppConfig.Dashboard.TopCentros <= 0 {
		AppConfig.Dashboard.TopCentros = 10
	}
}

func applyEnvOverrides() {
	overrideString(&AppConfig.Server.Port, "PM9_SERVER_PORT")
	overrideString(&AppConfig.Database.Host, "PM9_DB_HOST")
	overrideString(&AppConfig.Database.Port, "PM9_DB_PORT")
	overrideString(&AppConfig.Database.User, "PM9_DB_USER")
	overrideString(&AppConfig.Database.Password, "PM9_DB_PASSWORD")
	overrideString(&AppConfig.Database.DBName, "PM9_DB_NAME")
	overrideString(&AppConfig.Paths.SourceXLSX, "PM9_SOURCE_XLSX")
	overrideString(&AppConfig.Paths.AreasXLSX, "PM9_AREAS_XLSX")
	overrideString(&AppConfig.Paths.CleanCSV, "PM9_CLEAN_CSV")
	overrideString(&AppConfig.Paths.CleanXLSX, "PM9_CLEAN_XLSX")
	overrideString(&AppConfig.Paths.ReportJSON, "PM9_REPORT_JSON")
	overrideString(&AppConfig.Pipeline.SourceURL, "PM9_SOURCE_URL")
	overrideString(&AppConfig.Pipeline.SheetName, "PM9_SHEET_NAME")
	overrideString(&AppConfig.Dashboard.ReloadCron, "PM9_RELOAD_CRON")
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
