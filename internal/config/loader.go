package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cardiod/internal/artifacts"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr         string          `json:"addr" yaml:"addr" toml:"addr"`
	ArtifactsDir string          `json:"artifacts_dir" yaml:"artifacts_dir" toml:"artifacts_dir"`
	Files        artifacts.Files `json:"files" yaml:"files" toml:"files"`
	Watch        bool            `json:"watch" yaml:"watch" toml:"watch"`

	// ECG runtime
	ONNXRuntimeLib string `json:"onnxruntime_lib" yaml:"onnxruntime_lib" toml:"onnxruntime_lib"`
	ECGThreads     int    `json:"ecg_threads" yaml:"ecg_threads" toml:"ecg_threads"`
	ECGInputName   string `json:"ecg_input_name" yaml:"ecg_input_name" toml:"ecg_input_name"`
	ECGOutputName  string `json:"ecg_output_name" yaml:"ecg_output_name" toml:"ecg_output_name"`
	// ECGCacheSize < 0 disables the result cache.
	ECGCacheSize int `json:"ecg_cache_size" yaml:"ecg_cache_size" toml:"ecg_cache_size"`
	// MaxImagePixels bounds the declared width*height of uploaded images.
	MaxImagePixels int64 `json:"max_image_pixels" yaml:"max_image_pixels" toml:"max_image_pixels"`

	// HistoryDB enables the prediction audit log when set.
	HistoryDB string `json:"history_db" yaml:"history_db" toml:"history_db"`

	// Logging
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat    string `json:"log_format" yaml:"log_format" toml:"log_format"`
	LogFile      string `json:"log_file" yaml:"log_file" toml:"log_file"`
	LogMaxSizeMB int    `json:"log_max_size_mb" yaml:"log_max_size_mb" toml:"log_max_size_mb"`
	RequestLog   string `json:"request_log" yaml:"request_log" toml:"request_log"`

	// HTTP
	CORSDisabled          bool     `json:"cors_disabled" yaml:"cors_disabled" toml:"cors_disabled"`
	CORSOrigins           []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	MaxBodyBytes          int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	MaxUploadBytes        int64    `json:"max_upload_bytes" yaml:"max_upload_bytes" toml:"max_upload_bytes"`
	PredictTimeoutSeconds int      `json:"predict_timeout_seconds" yaml:"predict_timeout_seconds" toml:"predict_timeout_seconds"`
}

// Defaults for unspecified fields.
const (
	DefaultAddr         = ":8000"
	DefaultArtifactsDir = "."
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultLogMaxSizeMB = 100
)

// WithDefaults fills unspecified fields.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ArtifactsDir == "" {
		c.ArtifactsDir = DefaultArtifactsDir
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = DefaultLogMaxSizeMB
	}
	return c
}

// Validate rejects values that cannot be applied.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	if c.ECGThreads < 0 {
		return fmt.Errorf("ecg_threads must be >= 0, got %d", c.ECGThreads)
	}
	if c.MaxImagePixels < 0 {
		return fmt.Errorf("max_image_pixels must be >= 0, got %d", c.MaxImagePixels)
	}
	if c.PredictTimeoutSeconds < 0 {
		return fmt.Errorf("predict_timeout_seconds must be >= 0, got %d", c.PredictTimeoutSeconds)
	}
	return nil
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, cfg.Validate()
}
