package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio = "stdio"
	ModeHTTP  = "http"

	// Log output formats
	LogFormatText = "text"
	LogFormatJSON = "json"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = LogFormatText
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultWorkers     = 4
	DefaultInputDir    = "input"
	DefaultOutputDir   = "output"

	// EnvPrefix is prepended to every environment variable, e.g. PDF_OUTLINE_PORT
	EnvPrefix = "PDF_OUTLINE"
)

// Flag and configuration file keys
const (
	KeyConfig      = "config"
	KeyMode        = "mode"
	KeyHost        = "host"
	KeyPort        = "port"
	KeyDir         = "dir"
	KeyInput       = "input"
	KeyOutput      = "output"
	KeyWorkers     = "workers"
	KeyLogLevel    = "loglevel"
	KeyLogFormat   = "logformat"
	KeyMaxFileSize = "maxfilesize"
)

// Config holds all configuration for the outline tools
type Config struct {
	// Server configuration
	Mode string // "stdio" or "http"
	Host string
	Port int

	// PDFDirectory confines the paths accepted by MCP tools
	PDFDirectory string

	// Batch configuration
	InputDir  string
	OutputDir string
	Workers   int

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	LogFormat   string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:         ModeStdio, // stdio is what MCP clients launch
		Host:         DefaultHost,
		Port:         DefaultPort,
		PDFDirectory: currentDir,
		InputDir:     filepath.Join(currentDir, DefaultInputDir),
		OutputDir:    filepath.Join(currentDir, DefaultOutputDir),
		Workers:      DefaultWorkers,
		Version:      "1.0.0",
		ServerName:   "pdf-outline",
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// RegisterFlags defines every configuration flag on fs with the defaults of
// DefaultConfig.
func RegisterFlags(fs *pflag.FlagSet) {
	cfg := DefaultConfig()

	fs.String(KeyConfig, "", "Configuration file (yaml, json or toml)")
	fs.String(KeyMode, cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'http' for the HTTP API")
	fs.String(KeyHost, cfg.Host, "Server host address (http mode only)")
	fs.Int(KeyPort, cfg.Port, "Server port (http mode only)")
	fs.String(KeyDir, cfg.PDFDirectory, "Directory MCP tools may read PDF files from")
	fs.String(KeyInput, cfg.InputDir, "Directory of PDF files to outline in batch mode")
	fs.String(KeyOutput, cfg.OutputDir, "Directory batch mode writes JSON outlines to")
	fs.Int(KeyWorkers, cfg.Workers, "Number of documents outlined concurrently in batch mode")
	fs.String(KeyLogLevel, cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.String(KeyLogFormat, cfg.LogFormat, "Log format (text, json)")
	fs.Int64(KeyMaxFileSize, cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// Load builds a configuration from defaults, an optional configuration file,
// PDF_OUTLINE_* environment variables and the flags in fs, in increasing
// order of precedence. Flags must have been registered with RegisterFlags.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setupViperEnvironment(v)

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := DefaultConfig()
	populateConfigFromViper(v, cfg)

	// Expand paths if needed
	for _, p := range []*string{&cfg.PDFDirectory, &cfg.InputDir, &cfg.OutputDir} {
		if *p == "" {
			continue
		}
		if expandedPath, err := filepath.Abs(*p); err == nil {
			*p = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables
func setupViperEnvironment(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// populateConfigFromViper fills the config struct with values from viper.
// Keys viper knows nothing about keep their defaults.
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	if v.IsSet(KeyMode) {
		cfg.Mode = v.GetString(KeyMode)
	}
	if v.IsSet(KeyHost) {
		cfg.Host = v.GetString(KeyHost)
	}
	if v.IsSet(KeyPort) {
		cfg.Port = v.GetInt(KeyPort)
	}
	if v.IsSet(KeyDir) {
		cfg.PDFDirectory = v.GetString(KeyDir)
	}
	if v.IsSet(KeyInput) {
		cfg.InputDir = v.GetString(KeyInput)
	}
	if v.IsSet(KeyOutput) {
		cfg.OutputDir = v.GetString(KeyOutput)
	}
	if v.IsSet(KeyWorkers) {
		cfg.Workers = v.GetInt(KeyWorkers)
	}
	if v.IsSet(KeyLogLevel) {
		cfg.LogLevel = v.GetString(KeyLogLevel)
	}
	if v.IsSet(KeyLogFormat) {
		cfg.LogFormat = v.GetString(KeyLogFormat)
	}
	if v.IsSet(KeyMaxFileSize) {
		cfg.MaxFileSize = v.GetInt64(KeyMaxFileSize)
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeHTTP {
		return errors.New("mode must be either 'stdio' or 'http'")
	}

	// Port only matters when listening
	if c.Mode == ModeHTTP && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.PDFDirectory == "" {
		return errors.New("PDF directory cannot be empty")
	}

	if c.InputDir == "" {
		return errors.New("input directory cannot be empty")
	}
	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("invalid log format: %s (must be one of: text, json)", c.LogFormat)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, PDFDirectory: %s, InputDir: %s, OutputDir: %s, "+
		"Workers: %d, LogLevel: %s, LogFormat: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.PDFDirectory, c.InputDir, c.OutputDir,
		c.Workers, c.LogLevel, c.LogFormat, c.MaxFileSize)
}

// IsHTTPMode returns true if the HTTP API should be served
func (c *Config) IsHTTPMode() bool {
	return c.Mode == ModeHTTP
}

// IsStdioMode returns true if MCP should be served over standard I/O
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
