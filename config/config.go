// Package config loads the settings of the golox command from YAML.
package config

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

// FileName is looked up in the home directory when no path is given.
const FileName = ".golox.yml"

type Config struct {
	// REPL prompt.
	Prompt string `yaml:"prompt"`
	// REPL history, relative paths are taken from the home directory.
	// An empty value disables history.
	HistoryFile string `yaml:"history_file"`
	// One of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Print the syntax tree instead of running the program.
	PrintAST bool `yaml:"print_ast"`
	// Colorize REPL results and errors.
	Color bool `yaml:"color"`
}

func Default() Config {
	return Config{
		Prompt:      "> ",
		HistoryFile: ".golox_history",
		LogLevel:    "warn",
	}
}

// Decode reads a configuration from r. Fields r leaves out keep their
// default value and unknown fields are an error.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration file at path. An empty path means
// FileName in the home directory, which is allowed to be missing.
func Load(path string) (Config, error) {
	optional := false
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, FileName)
		optional = true
	}

	file, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("%w (in %s)", err, path)
	}
	return cfg, nil
}

// Level is the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}
	return level
}

// HistoryPath resolves HistoryFile against home, empty if disabled.
func (c Config) HistoryPath(home string) string {
	if c.HistoryFile == "" || filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}

func (c Config) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return nil
}
