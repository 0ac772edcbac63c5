// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// ModeFlags mirror the scene's input attribute booleans.
type ModeFlags struct {
	Trash  bool
	Clip   bool
	Drag   bool
	Edit   bool
	Safety bool
}

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style
	StyleSafety    tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleSafety:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorRed).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar renders the mode flags, timeline position and transient
// messages on the bottom line.
type StatusBar struct {
	config Config
	mu     sync.Mutex

	flags    ModeFlags
	display  string // Timeline position text, e.g. "12/48"
	selected string // Selected texture id (short form)
	canUndo  bool
	canRedo  bool

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config}
}

// SetFlags updates the mode indicator booleans.
func (sb *StatusBar) SetFlags(flags ModeFlags) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.flags = flags
}

// SetTimelineDisplay updates the position text.
func (sb *StatusBar) SetTimelineDisplay(display string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.display = display
}

// SetSelected updates the selected-texture indicator.
func (sb *StatusBar) SetSelected(id string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.selected = id
}

// SetHistory updates the undo/redo affordance indicators.
func (sb *StatusBar) SetHistory(canUndo, canRedo bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.canUndo = canUndo
	sb.canRedo = canRedo
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// defaultDisplayText builds the default status line. Caller holds the lock.
func (sb *StatusBar) defaultDisplayText() string {
	var modes []string
	appendFlag := func(on bool, name string) {
		if on {
			modes = append(modes, strings.ToUpper(name))
		} else {
			modes = append(modes, name)
		}
	}
	appendFlag(sb.flags.Trash, "trash")
	appendFlag(sb.flags.Clip, "clip")
	appendFlag(sb.flags.Drag, "drag")
	appendFlag(sb.flags.Edit, "edit")

	history := ""
	if sb.canUndo {
		history += " [u]"
	}
	if sb.canRedo {
		history += " [U]"
	}

	sel := sb.selected
	if sel == "" {
		sel = "-"
	}

	return fmt.Sprintf(" %s | frame %s | sel %s%s", strings.Join(modes, " "), sb.display, sel, history)
}

// Draw renders the status bar onto the last line of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	tempActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !tempActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	var style tcell.Style
	var text string
	switch {
	case sb.flags.Safety:
		text = " clear all textures? press C again to confirm, Esc to cancel "
		style = sb.config.StyleSafety
	case tempActive:
		text = sb.tempMessage
		style = sb.config.StyleMessage
	default:
		text = sb.defaultDisplayText()
		style = sb.config.StyleDefault
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			var combining []rune
			if len(runes) > 1 {
				combining = runes[1:]
			}
			screen.SetContent(currentX, y, runes[0], combining, style)
		}
		currentX += clusterWidth
	}
}
