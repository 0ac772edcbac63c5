// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/cutout/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config       `toml:"logger"`
	Editor   EditorConfig        `toml:"editor"`
	Timeline TimelineConfig      `toml:"timeline"`
	Modes    map[string][]string `toml:"modes"` // Mode name -> permitted action kinds
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	SystemClipboard bool   `toml:"system_clipboard"`
	HistoryLimit    int    `toml:"history_limit"`
	AssetCatalog    string `toml:"asset_catalog"` // Path to a YAML source catalog; empty uses the built-in one
}

// TimelineConfig holds the timeline window settings.
type TimelineConfig struct {
	TotalFrames int     `toml:"total_frames"`
	FPS         int     `toml:"fps"`
	Width       int     `toml:"width"`
	Scale       float64 `toml:"scale"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			SystemClipboard: SystemClipboard,
			HistoryLimit:    DefaultHistoryLimit,
		},
		Timeline: TimelineConfig{
			TotalFrames: DefaultTotalFrames,
			FPS:         DefaultFPS,
			Width:       DefaultScrubberWidth,
			Scale:       DefaultScale,
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file. A missing
// file is not an error.
func loadFromFile(filePath string, verbose bool) (*Config, error) {
	cfg := &Config{}
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.DebugTagf("config", "Config file not found: %s", filePath)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file %q: %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file %q: unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Editor.HistoryLimit <= 0 {
		c.Editor.HistoryLimit = defaults.Editor.HistoryLimit
	}
	if c.Timeline.TotalFrames <= 0 {
		c.Timeline.TotalFrames = defaults.Timeline.TotalFrames
	}
	if c.Timeline.FPS <= 0 {
		c.Timeline.FPS = defaults.Timeline.FPS
	}
	if c.Timeline.Width <= 0 {
		c.Timeline.Width = defaults.Timeline.Width
	}
	if c.Timeline.Scale <= 0 {
		c.Timeline.Scale = defaults.Timeline.Scale
	}
}

// merge copies the values a config file actually set over the defaults.
func (c *Config) merge(fileCfg *Config) {
	if fileCfg.Logger.LogLevel != "" {
		c.Logger = fileCfg.Logger
	}
	if fileCfg.Editor.HistoryLimit > 0 {
		c.Editor.HistoryLimit = fileCfg.Editor.HistoryLimit
	}
	if fileCfg.Editor.AssetCatalog != "" {
		c.Editor.AssetCatalog = fileCfg.Editor.AssetCatalog
	}
	c.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
	if fileCfg.Timeline.TotalFrames > 0 {
		c.Timeline.TotalFrames = fileCfg.Timeline.TotalFrames
	}
	if fileCfg.Timeline.FPS > 0 {
		c.Timeline.FPS = fileCfg.Timeline.FPS
	}
	if fileCfg.Timeline.Width > 0 {
		c.Timeline.Width = fileCfg.Timeline.Width
	}
	if fileCfg.Timeline.Scale > 0 {
		c.Timeline.Scale = fileCfg.Timeline.Scale
	}
	if fileCfg.Modes != nil {
		c.Modes = fileCfg.Modes
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and
// validation. Call once from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			if configDir, err := os.UserConfigDir(); err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath, false)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				cfg.merge(fileCfg)
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg, false)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig
// wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
