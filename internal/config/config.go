package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	AnalysisTimeout    time.Duration
	MaxRequestBodySize int64

	// Drivers lists driver names in preference order
	Drivers         []string
	AnalysisWorkers int
	TempDir         string
	// LocalSourceRoot confines local path sources; empty disables them
	LocalSourceRoot string
	// MaxSourceSize caps a source in bytes
	MaxSourceSize   int64

	AzureAccountName string
	AzureAccountKey  string
	// AllowedHosts restricts remote sources; empty allows every host
	AllowedHosts []string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// AzureEnabled reports whether blob sources can be downloaded
func (c *Config) AzureEnabled() bool {
	return c.AzureAccountName != "" && c.AzureAccountKey != ""
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ImageFetchTimeout:  parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		AnalysisTimeout:    parseDurationOrDefault("ANALYSIS_TIMEOUT", 20*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 1024*1024), // 1MB
		Drivers:            parseListOrDefault("ANALYZER_DRIVERS", []string{"imagick", "vips", "opencv", "image"}),
		AnalysisWorkers:    int(parseIntOrDefault("ANALYSIS_WORKERS", 0)),
		TempDir:            getEnvOrDefault("TEMP_DIR", os.TempDir()),
		LocalSourceRoot:    os.Getenv("LOCAL_SOURCE_ROOT"),
		MaxSourceSize:      parseIntOrDefault("MAX_SOURCE_SIZE", 20*1024*1024), // 20MB
		AzureAccountName:   os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureAccountKey:    os.Getenv("AZURE_STORAGE_KEY"),
		AllowedHosts:       parseListOrDefault("ALLOWED_HOSTS", nil),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.MaxSourceSize <= 0 {
		return nil, fmt.Errorf("MAX_SOURCE_SIZE must be > 0 (got %d)", cfg.MaxSourceSize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 || cfg.AnalysisTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, analysis=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout, cfg.AnalysisTimeout)
	}
	if cfg.AnalysisWorkers < 0 {
		return nil, fmt.Errorf("ANALYSIS_WORKERS must be >= 0 (got %d)", cfg.AnalysisWorkers)
	}
	if len(cfg.Drivers) == 0 {
		return nil, fmt.Errorf("ANALYZER_DRIVERS must name at least one driver")
	}
	if (cfg.AzureAccountName == "") != (cfg.AzureAccountKey == "") {
		return nil, fmt.Errorf("AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY must be set together")
	}
	if stat, err := os.Stat(cfg.TempDir); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("TEMP_DIR %q is not a directory", cfg.TempDir)
	}
	if cfg.LocalSourceRoot != "" {
		if stat, err := os.Stat(cfg.LocalSourceRoot); err != nil || !stat.IsDir() {
			return nil, fmt.Errorf("LOCAL_SOURCE_ROOT %q is not a directory", cfg.LocalSourceRoot)
		}
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// parseListOrDefault splits a comma separated variable, dropping blank items
func parseListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
