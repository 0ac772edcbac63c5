// Package logger provides slog-backed leveled logging with tag filtering.
package logger

import (
	"context"
	"log/slog"
	"strings"
)

// Config holds the logger settings embedded in the application config.
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// LogFilePath is the output log file. Empty or "-" means stderr.
	LogFilePath string `toml:"log_file"`

	// EnabledTags only logs tagged messages with these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops tagged messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	enabledTagsSet  map[string]struct{}
	disabledTagsSet map[string]struct{}
}

// Level parses the configured level string, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// process converts the tag lists into lookup sets.
func (c *Config) process() {
	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// tagHandler wraps a base slog.Handler and drops records whose tag attribute
// fails the configured enable/disable lists. Untagged records always pass.
type tagHandler struct {
	base slog.Handler
	cfg  *Config
}

func newTagHandler(base slog.Handler, cfg *Config) *tagHandler {
	return &tagHandler{base: base, cfg: cfg}
}

func (h *tagHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *tagHandler) Handle(ctx context.Context, r slog.Record) error {
	var tag string
	var tagged bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			tagged = true
			return false
		}
		return true
	})

	if tagged {
		if _, found := h.cfg.disabledTagsSet[tag]; found {
			return nil
		}
		if h.cfg.enabledTagsSet != nil {
			if _, found := h.cfg.enabledTagsSet[tag]; !found {
				return nil
			}
		}
	}
	return h.base.Handle(ctx, r)
}

func (h *tagHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newTagHandler(h.base.WithAttrs(attrs), h.cfg)
}

func (h *tagHandler) WithGroup(name string) slog.Handler {
	return newTagHandler(h.base.WithGroup(name), h.cfg)
}
