// Package mode tracks the single active interaction mode and gates which
// mutation kinds are legal while it is active.
package mode

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bethropolis/cutout/internal/event"
	"github.com/bethropolis/cutout/internal/logger"
	"github.com/bethropolis/cutout/internal/revision"
)

// ErrModeViolation indicates an action kind not permitted in the active mode.
var ErrModeViolation = errors.New("action not permitted in active mode")

// Mode is one of the mutually exclusive interaction behaviors.
type Mode int

const (
	None Mode = iota
	Trash
	Clip
	Drag
	Edit
)

// String returns the lowercase name used in config files and the UI.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Trash:
		return "trash"
	case Clip:
		return "clip"
	case Drag:
		return "drag"
	case Edit:
		return "edit"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Parse maps a config-file name back to its mode.
func Parse(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return None, nil
	case "trash":
		return Trash, nil
	case "clip":
		return Clip, nil
	case "drag":
		return Drag, nil
	case "edit":
		return Edit, nil
	default:
		return None, fmt.Errorf("unknown mode %q", name)
	}
}

// Rules maps each mode to its permitted action kinds.
type Rules map[Mode]map[revision.ActionKind]struct{}

// DefaultRules reflects the stock editor behavior: placing is always
// allowed outside of a destructive mode, clip/drag permit transforms, and
// trash permits removal and clearing.
func DefaultRules() Rules {
	return Rules{
		None:  kindSet(revision.AddAction),
		Edit:  kindSet(revision.AddAction, revision.TransformAction),
		Clip:  kindSet(revision.TransformAction),
		Drag:  kindSet(revision.TransformAction),
		Trash: kindSet(revision.RemoveAction, revision.ClearAction),
	}
}

// ParseRules converts the config-file [modes] table (mode name -> action
// names) into Rules, starting from the defaults so an omitted mode keeps its
// stock permissions.
func ParseRules(table map[string][]string) (Rules, error) {
	rules := DefaultRules()
	for name, actions := range table {
		m, err := Parse(name)
		if err != nil {
			return nil, fmt.Errorf("modes config: %w", err)
		}
		set := make(map[revision.ActionKind]struct{}, len(actions))
		for _, a := range actions {
			k, err := revision.ParseActionKind(a)
			if err != nil {
				return nil, fmt.Errorf("modes config for %q: %w", name, err)
			}
			set[k] = struct{}{}
		}
		rules[m] = set
	}
	return rules, nil
}

func kindSet(kinds ...revision.ActionKind) map[revision.ActionKind]struct{} {
	set := make(map[revision.ActionKind]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}

// Controller is the mode state machine. Toggling the active mode returns to
// None; toggling a different mode switches to it. Exactly one mode is active
// at any time, and the controller lives for the editor session.
type Controller struct {
	mu     sync.RWMutex
	active Mode
	rules  Rules
	events *event.Manager
}

// NewController creates a controller starting in None. A nil rules falls
// back to DefaultRules; events may be nil in tests.
func NewController(rules Rules, events *event.Manager) *Controller {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Controller{
		active: None,
		rules:  rules,
		events: events,
	}
}

// Toggle switches the active mode to m, or back to None when m is already
// active. Returns the resulting mode.
func (c *Controller) Toggle(m Mode) Mode {
	c.mu.Lock()
	if c.active == m {
		c.active = None
	} else {
		c.active = m
	}
	result := c.active
	c.mu.Unlock()

	logger.Debugf("Mode: Toggled %v -> active %v", m, result)
	if c.events != nil {
		c.events.Dispatch(event.TypeModeChanged, event.ModeChangedData{Mode: result.String()})
	}
	return result
}

// Active returns the current mode.
func (c *Controller) Active() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Permits checks an action kind against the active mode's permitted set.
// A rejected kind returns ErrModeViolation (wrapped with context) and the
// caller must not mutate anything.
func (c *Controller) Permits(kind revision.ActionKind) error {
	c.mu.RLock()
	active := c.active
	set := c.rules[active]
	c.mu.RUnlock()

	if _, ok := set[kind]; !ok {
		return fmt.Errorf("%v in mode %v: %w", kind, active, ErrModeViolation)
	}
	return nil
}
