package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store driver names accepted by SHEET_STORE_DRIVER.
const (
	DriverAppsScript = "appsscript"
	DriverSheetsAPI  = "sheetsapi"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	SheetAPI  SheetAPIConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// SheetAPIConfig points at the Apps Script web endpoint that fronts the
// spreadsheet, plus the Drive folder that receives uploaded product images.
type SheetAPIConfig struct {
	Endpoint      string
	DriveFolderID string
}

// SheetsConfig names the logical sheets inside the backing store and selects
// the store driver. CredentialsPath and SpreadsheetID are only used by the
// sheetsapi driver.
type SheetsConfig struct {
	Driver          string
	Inventory       string
	History         string
	Login           string
	Dropdown        string
	CredentialsPath string
	SpreadsheetID   string
}

// ReportingConfig holds dashboard and scheduler settings.
type ReportingConfig struct {
	CronSchedule      string
	Timezone          string
	LowStockThreshold int
}

// MongoDBConfig holds settings for MongoDB. An empty URI disables Mongo and
// falls back to in-memory sessions with no snapshot sink.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		SheetAPI: SheetAPIConfig{
			Endpoint:      getenvWithDefault("SHEET_API_URL", "https://script.google.com/macros/s/AKfycbyr8QBIGE3jlMqm3w4r3f-jvRKTJdUKP0Tc4jDITpadSJqQbL8JOC_E6TLXr0xxBJKknA/exec"),
			DriveFolderID: os.Getenv("DRIVE_FOLDER_ID"),
		},
		Sheets: SheetsConfig{
			Driver:          getenvWithDefault("SHEET_STORE_DRIVER", DriverAppsScript),
			Inventory:       getenvWithDefault("SHEET_NAME_INVENTORY", "Inventory"),
			History:         getenvWithDefault("SHEET_NAME_HISTORY", "History"),
			Login:           getenvWithDefault("SHEET_NAME_LOGIN", "Login Master"),
			Dropdown:        getenvWithDefault("SHEET_NAME_DROPDOWN", "Master Drop Down"),
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule:      getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:          getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
			LowStockThreshold: getenvIntWithDefault("LOW_STOCK_THRESHOLD", 10),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "stockbook"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Sheets.Driver {
	case DriverAppsScript:
		if c.SheetAPI.Endpoint == "" {
			return errors.New("SHEET_API_URL must be provided")
		}
	case DriverSheetsAPI:
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided for the sheetsapi driver")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided for the sheetsapi driver")
		}
	default:
		return fmt.Errorf("unknown sheet store driver %q", c.Sheets.Driver)
	}

	switch {
	case c.Sheets.Inventory == "":
		return errors.New("SHEET_NAME_INVENTORY must not be empty")
	case c.Sheets.History == "":
		return errors.New("SHEET_NAME_HISTORY must not be empty")
	case c.Sheets.Login == "":
		return errors.New("SHEET_NAME_LOGIN must not be empty")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.LowStockThreshold < 0 {
		return errors.New("LOW_STOCK_THRESHOLD must not be negative")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvIntWithDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
