package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AnalysisSourceMemory = "memory"
	AnalysisSourceStore  = "store"
)

type Config struct {
	Database DatabaseConfig
	Files    FilesConfig
	Pipeline PipelineConfig
	Analysis AnalysisConfig
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	Schema          string `validate:"required,sql_identifier"`
	Table           string `validate:"required,sql_identifier"`
	VerifyTable     string `validate:"required,sql_identifier"`
	MaxConnections  int    `validate:"gte=1"`
	MaxIdleConns    int    `validate:"gte=0"`
	ConnMaxLifetime time.Duration
}

type FilesConfig struct {
	HomicidesFile string `validate:"required"`
	CrimesFile    string `validate:"required"`
	ArtifactFile  string `validate:"required"`
	OutputDir     string `validate:"required"`
	MetricsFile   string
}

type PipelineConfig struct {
	LoadStore      bool
	VerifyStore    bool
	AutoMigrate    bool
	AnalysisSource string `validate:"oneof=memory store"`
}

type AnalysisConfig struct {
	MinSupport        float64 `validate:"probability"`
	RankSize          int     `validate:"gte=1"`
	ExcludedDistrict  int
	ChiDistricts      []int   `validate:"district_list"`
	SignificanceLevel float64 `validate:"gt=0,lt=1"`
	// CriticalValue is zero when it should be derived from SignificanceLevel
	CriticalValue float64 `validate:"gte=0"`
}

// Load reads configuration from the environment, after merging an optional .env file
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}

	return &Config{
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", ""),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", ""),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			Schema:          getEnv("DB_SCHEMA", "chi_crime"),
			Table:           getEnv("DB_TABLE", "crime_data"),
			VerifyTable:     getEnv("VERIFY_TABLE", "crime_data"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 1),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Files: FilesConfig{
			HomicidesFile: getEnv("HOMICIDES_FILE", "Homicides.csv"),
			CrimesFile:    getEnv("CRIMES_FILE", "Chicago_Crimes_2012_to_2017.csv"),
			ArtifactFile:  getEnv("ARTIFACT_FILE", "Final_Chicago_Crime_File.tdf"),
			OutputDir:     getEnv("OUTPUT_DIR", "."),
			MetricsFile:   getEnv("METRICS_FILE", ""),
		},
		Pipeline: PipelineConfig{
			LoadStore:      getBoolEnv("LOAD_STORE", false),
			VerifyStore:    getBoolEnv("VERIFY_STORE", false),
			AutoMigrate:    getBoolEnv("AUTO_MIGRATE", false),
			AnalysisSource: strings.ToLower(getEnv("ANALYSIS_SOURCE", AnalysisSourceMemory)),
		},
		Analysis: AnalysisConfig{
			MinSupport:        getFloatEnv("MIN_SUPPORT", 0.00075),
			RankSize:          getIntEnv("RANK_SIZE", 10),
			ExcludedDistrict:  getIntEnv("EXCLUDED_DISTRICT", 31),
			ChiDistricts:      getIntListEnv("CHI_SQUARED_DISTRICTS", []int{18, 1, 19, 12, 8}),
			SignificanceLevel: getFloatEnv("SIGNIFICANCE_LEVEL", 0.05),
			CriticalValue:     getFloatEnv("CHI_SQUARED_CRITICAL_VALUE", 0),
		},
	}
}

// DSN returns the connection string. DATABASE_URL wins over the discrete fields.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// IsConfigured reports whether enough connection settings exist to open the store
func (c *DatabaseConfig) IsConfigured() bool {
	return c.URL != "" || (c.Host != "" && c.User != "" && c.Name != "")
}

// QualifiedTable returns schema.table for the load table
func (c *DatabaseConfig) QualifiedTable() string {
	return c.Schema + "." + c.Table
}

// QualifiedVerifyTable returns schema.table for the verification table
func (c *DatabaseConfig) QualifiedVerifyTable() string {
	return c.Schema + "." + c.VerifyTable
}

// NeedsStore reports whether any stage requires a database connection
func (c *Config) NeedsStore() bool {
	return c.Pipeline.LoadStore || c.Pipeline.VerifyStore || c.Pipeline.AnalysisSource == AnalysisSourceStore
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntListEnv parses a comma separated list; any bad element falls back to the default
func getIntListEnv(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		result = append(result, n)
	}
	return result
}
