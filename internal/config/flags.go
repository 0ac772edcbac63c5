// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/cutout/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero-value flags.
type Flags struct {
	ConfigFilePath  *string
	LogLevel        *string
	LogFilePath     *string
	AssetCatalog    *string
	Frames          *int
	FPS             *int
	SystemClipboard *bool
	EnableTags      *string
	DisableTags     *string
}

// DefineFlags sets up the command-line flags.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.AssetCatalog = flag.String("assets", "", "Path to a YAML texture source catalog - Overrides config file")
	f.Frames = flag.Int("frames", 0, "Number of timeline frames - Overrides config file")
	f.FPS = flag.Int("fps", 0, "Playback frames per second - Overrides config file")
	f.SystemClipboard = flag.Bool("system-clipboard", false, "Yank/put textures through the system clipboard")
	f.EnableTags = flag.String("log-tags", "", "Comma-separated list of log tags to enable - Overrides config file")
	f.DisableTags = flag.String("log-disable-tags", "", "Comma-separated list of log tags to disable - Overrides config file")
}

// ParseFlags parses the defined command-line flags into the Flags struct.
// It returns the remaining non-flag arguments.
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if* they
// were set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	flag.Visit(func(fl *flag.Flag) {
		if verbose {
			logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		}
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "assets":
			if f.AssetCatalog != nil && *f.AssetCatalog != "" {
				cfg.Editor.AssetCatalog = *f.AssetCatalog
			}
		case "frames":
			if f.Frames != nil && *f.Frames > 0 {
				cfg.Timeline.TotalFrames = *f.Frames
			}
		case "fps":
			if f.FPS != nil && *f.FPS > 0 {
				cfg.Timeline.FPS = *f.FPS
			}
		case "system-clipboard":
			if f.SystemClipboard != nil {
				cfg.Editor.SystemClipboard = *f.SystemClipboard
			}
		case "log-tags":
			if f.EnableTags != nil && *f.EnableTags != "" {
				cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
			}
		case "log-disable-tags":
			if f.DisableTags != nil && *f.DisableTags != "" {
				cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
			}
		}
	})
}

// splitCommaList splits a comma-separated flag value, trimming whitespace
// and dropping empties.
func splitCommaList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
