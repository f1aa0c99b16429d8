package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	return &Config{
		Mode:         ModeStdio,
		Host:         DefaultHost,
		Port:         DefaultPort,
		PDFDirectory: dir,
		InputDir:     filepath.Join(dir, "in"),
		OutputDir:    filepath.Join(dir, "out"),
		Workers:      2,
		LogLevel:     "info",
		LogFormat:    LogFormatText,
		MaxFileSize:  1024,
	}
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("pdf-outline", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ModeStdio, cfg.Mode)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "pdf-outline", cfg.ServerName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
	assert.Equal(t, int64(100*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, DefaultWorkers, cfg.Workers)

	currentDir, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, currentDir, cfg.PDFDirectory)
	assert.Equal(t, filepath.Join(currentDir, "input"), cfg.InputDir)
	assert.Equal(t, filepath.Join(currentDir, "output"), cfg.OutputDir)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid stdio", modify: func(*Config) {}},
		{name: "valid http", modify: func(c *Config) { c.Mode = ModeHTTP }},
		{name: "stdio ignores port", modify: func(c *Config) { c.Port = 0 }},
		{name: "invalid mode", modify: func(c *Config) { c.Mode = "server" }, wantErr: "mode must be"},
		{name: "http port too low", modify: func(c *Config) { c.Mode, c.Port = ModeHTTP, 0 }, wantErr: "port"},
		{name: "http port too high", modify: func(c *Config) { c.Mode, c.Port = ModeHTTP, 70000 }, wantErr: "port"},
		{name: "empty pdf dir", modify: func(c *Config) { c.PDFDirectory = "" }, wantErr: "PDF directory"},
		{name: "empty input dir", modify: func(c *Config) { c.InputDir = "" }, wantErr: "input directory"},
		{name: "empty output dir", modify: func(c *Config) { c.OutputDir = "" }, wantErr: "output directory"},
		{name: "zero workers", modify: func(c *Config) { c.Workers = 0 }, wantErr: "workers"},
		{name: "zero max size", modify: func(c *Config) { c.MaxFileSize = 0 }, wantErr: "file size"},
		{name: "unknown log level", modify: func(c *Config) { c.LogLevel = "trace" }, wantErr: "log level"},
		{name: "uppercase log level", modify: func(c *Config) { c.LogLevel = "DEBUG" }, wantErr: "log level"},
		{name: "unknown log format", modify: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidate_DoesNotCreateDirectories(t *testing.T) {
	cfg := validConfig(t)
	missing := filepath.Join(cfg.PDFDirectory, "not", "yet")
	cfg.PDFDirectory = missing

	require.NoError(t, cfg.Validate())

	_, err := os.Stat(missing)
	assert.True(t, os.IsNotExist(err))
}

func TestConfigHelpers(t *testing.T) {
	cfg := &Config{Host: "192.168.1.1", Port: 9090, Mode: ModeHTTP, LogLevel: "debug"}

	assert.Equal(t, "192.168.1.1:9090", cfg.Address())
	assert.True(t, cfg.IsDebug())
	assert.True(t, cfg.IsHTTPMode())
	assert.False(t, cfg.IsStdioMode())

	cfg.Mode, cfg.LogLevel = ModeStdio, "info"
	assert.False(t, cfg.IsDebug())
	assert.False(t, cfg.IsHTTPMode())
	assert.True(t, cfg.IsStdioMode())
}

func TestConfigString(t *testing.T) {
	cfg := validConfig(t)
	cfg.Workers = 7

	s := cfg.String()
	for _, want := range []string{"Mode: stdio", "Port: 8080", "Workers: 7", "LogFormat: text", "MaxFileSize: 1024"} {
		assert.Contains(t, s, want)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newFlagSet(t))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Mode, cfg.Mode)
	assert.Equal(t, def.Port, cfg.Port)
	assert.Equal(t, def.Workers, cfg.Workers)
	assert.Equal(t, def.InputDir, cfg.InputDir)
}

func TestLoad_Flags(t *testing.T) {
	dir := t.TempDir()
	fs := newFlagSet(t,
		"--mode=http",
		"--host=0.0.0.0",
		"--port=9000",
		"--dir="+dir,
		"--input="+filepath.Join(dir, "in"),
		"--output="+filepath.Join(dir, "out"),
		"--workers=8",
		"--loglevel=debug",
		"--logformat=json",
		"--maxfilesize=2048",
	)

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, ModeHTTP, cfg.Mode)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, dir, cfg.PDFDirectory)
	assert.Equal(t, filepath.Join(dir, "in"), cfg.InputDir)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.OutputDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.Equal(t, int64(2048), cfg.MaxFileSize)
}

func TestLoad_RelativePathsBecomeAbsolute(t *testing.T) {
	cfg, err := Load(newFlagSet(t, "--input=docs"))
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.InputDir))
	assert.Equal(t, "docs", filepath.Base(cfg.InputDir))
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PDF_OUTLINE_WORKERS", "3")
	t.Setenv("PDF_OUTLINE_LOGFORMAT", "json")

	cfg, err := Load(newFlagSet(t))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
}

func TestLoad_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("PDF_OUTLINE_WORKERS", "3")

	cfg, err := Load(newFlagSet(t, "--workers=5"))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Workers)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pdf-outline.yaml")
	content := "workers: 6\nloglevel: warn\nport: 9100\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cfg, err := Load(newFlagSet(t, "--config="+file, "--port=9200"))
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 9200, cfg.Port, "flags take precedence over the file")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "invalid mode", args: []string{"--mode=invalid"}, wantErr: "mode must be"},
		{name: "invalid port", args: []string{"--mode=http", "--port=70000"}, wantErr: "port"},
		{name: "invalid log level", args: []string{"--loglevel=verbose"}, wantErr: "log level"},
		{name: "invalid workers", args: []string{"--workers=0"}, wantErr: "workers"},
		{name: "missing config file", args: []string{"--config=/nonexistent/pdf-outline.yaml"}, wantErr: "config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newFlagSet(t, tt.args...))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
