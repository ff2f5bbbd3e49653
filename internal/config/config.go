package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kozaktomas/art-inventory/internal/constants"

	"gopkg.in/yaml.v3"
)

//go:embed labels.yaml
var labelsYAML []byte

type Config struct {
	Database DatabaseConfig
	Export   ExportConfig
	Catalog  CatalogConfig
	Web      WebConfig
	Labels   LabelsConfig
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

// ExportConfig controls the resource ceilings of a single catalog export job.
type ExportConfig struct {
	BatchSize    int           // concurrent thumbnail fetches per window (default 5)
	FetchTimeout time.Duration // per-image timeout (default 10s)
	JobTimeout   time.Duration // whole-job ceiling (default 30s)
	// StrictContentType rejects thumbnail responses without a Content-Type header
	// instead of treating them as JPEG.
	StrictContentType bool
}

type CatalogConfig struct {
	CJKFontPath string // TrueType font with CJK coverage, read from disk
	CJKFontURL  string // fallback location when no path is configured
	Copyright   string // footer text pinned to every page
	Author      string // PDF metadata author
}

type WebConfig struct {
	Port           int
	Host           string
	AllowedOrigins []string // CORS origins besides localhost
}

type LabelsConfig struct {
	Fields       map[string]string `yaml:"fields"`
	Statuses     map[string]string `yaml:"statuses"`
	EditionTypes map[string]string `yaml:"edition_types"`
}

// Field returns the display label for a catalog field, or the key itself.
func (l LabelsConfig) Field(key string) string {
	if v, ok := l.Fields[key]; ok {
		return v
	}
	return key
}

// Status returns the display label for an edition status and whether it was known.
func (l LabelsConfig) Status(key string) (string, bool) {
	v, ok := l.Statuses[strings.ToLower(key)]
	return v, ok
}

// EditionType returns the display label for an edition type, or the key itself.
func (l LabelsConfig) EditionType(key string) string {
	if v, ok := l.EditionTypes[strings.ToLower(key)]; ok {
		return v
	}
	return key
}

const defaultCopyright = "All images and texts © the artist. All rights reserved."

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envBool reads an environment variable as a boolean, falling back on parse errors.
func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return defaultVal
	}
	return b
}

// envString returns the env var value or the default when unset or empty.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envList splits a comma-separated env var, dropping empty entries.
func envList(key string) []string {
	var out []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// LoadLabels parses the embedded labels file.
func LoadLabels() LabelsConfig {
	var labels LabelsConfig
	if err := yaml.Unmarshal(labelsYAML, &labels); err != nil {
		// Embedded file, so this only fires on a broken build
		panic("failed to unmarshal embedded labels.yaml: " + err.Error())
	}
	return labels
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Export: ExportConfig{
			BatchSize:         envInt("EXPORT_BATCH_SIZE", constants.DefaultBatchSize),
			FetchTimeout:      time.Duration(envInt("EXPORT_FETCH_TIMEOUT_MS", constants.DefaultFetchTimeoutMs)) * time.Millisecond,
			JobTimeout:        time.Duration(envInt("EXPORT_JOB_TIMEOUT_S", constants.DefaultJobTimeoutSeconds)) * time.Second,
			StrictContentType: envBool("EXPORT_STRICT_CONTENT_TYPE", false),
		},
		Catalog: CatalogConfig{
			CJKFontPath: os.Getenv("CATALOG_CJK_FONT_PATH"),
			CJKFontURL:  os.Getenv("CATALOG_CJK_FONT_URL"),
			Copyright:   envString("CATALOG_COPYRIGHT", defaultCopyright),
			Author:      os.Getenv("CATALOG_AUTHOR"),
		},
		Web: WebConfig{
			Port:           envInt("WEB_PORT", 8080),
			Host:           envString("WEB_HOST", "0.0.0.0"),
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
		},
		Labels: LoadLabels(),
	}
}
