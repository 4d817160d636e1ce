// Package driver loads the tool configuration and script sources from disk.
package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "language.yml"

// LogLevelEnv overrides the configured log level when set.
const LogLevelEnv = "LANGUAGE_LOG_LEVEL"

const (
	DefaultPrompt     = "language > "
	DefaultSourceName = "<stdin>"
)

// ErrConfigNotFound is returned by FindConfig when no language.yml exists in
// the start directory or any of its parents.
var ErrConfigNotFound = errors.New("language.yml not found")

// Config is the normalized tool configuration.
type Config struct {
	Path        string
	Prompt      string
	HistoryFile string
	LogLevel    slog.Level
	SourceName  string
	Color       bool
}

type configFile struct {
	Prompt      *string `yaml:"prompt"`
	HistoryFile string  `yaml:"history_file"`
	LogLevel    string  `yaml:"log_level"`
	SourceName  string  `yaml:"source_name"`
	Color       bool    `yaml:"color"`
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig is used when no configuration file is present.
func DefaultConfig() *Config {
	return &Config{
		Prompt:     DefaultPrompt,
		LogLevel:   slog.LevelWarn,
		SourceName: DefaultSourceName,
	}
}

// LoadConfig parses a language.yml file. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			cfg := DefaultConfig()
			cfg.Path = absPath
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	return raw.toConfig(absPath)
}

func (raw configFile) toConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Color = raw.Color

	var errs ValidationError
	if raw.Prompt != nil {
		if strings.ContainsAny(*raw.Prompt, "\r\n") {
			errs.Issues = append(errs.Issues, "prompt must be a single line")
		}
		cfg.Prompt = *raw.Prompt
	}
	if raw.SourceName != "" {
		cfg.SourceName = raw.SourceName
	}
	if raw.HistoryFile != "" {
		cfg.HistoryFile = resolveRelative(path, expandHome(raw.HistoryFile))
	}
	if raw.LogLevel != "" {
		level, err := ParseLogLevel(raw.LogLevel)
		if err != nil {
			errs.Issues = append(errs.Issues, err.Error())
		}
		cfg.LogLevel = level
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// ApplyEnv lets LANGUAGE_LOG_LEVEL override the configured level.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	value, ok := lookup(LogLevelEnv)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	level, err := ParseLogLevel(value)
	if err != nil {
		return fmt.Errorf("config: %s: %w", LogLevelEnv, err)
	}
	c.LogLevel = level
	return nil
}

// ParseLogLevel accepts debug, info, warn (or warning) and error.
func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("unsupported log_level %q (want debug, info, warn or error)", value)
}

// FindConfig walks from start towards the filesystem root and returns the
// first language.yml it finds.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// ResolveConfig loads explicit when given, otherwise the nearest language.yml
// above start, otherwise the defaults.
func ResolveConfig(explicit, start string) (*Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	path, err := FindConfig(start)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return LoadConfig(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func resolveRelative(configPath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(configPath), path)
}
