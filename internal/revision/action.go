// Package revision tracks every texture mutation as an ordered, undoable
// history. The log is linear: undoing and then recording a new mutation
// discards the redoable tail.
package revision

import (
	"fmt"
	"strings"
	"time"

	"github.com/bethropolis/cutout/internal/types"
)

// ActionKind tags the four atomic mutations.
type ActionKind int

const (
	AddAction ActionKind = iota
	RemoveAction
	TransformAction
	ClearAction
)

// String returns the lowercase name used in config files and logs.
func (k ActionKind) String() string {
	switch k {
	case AddAction:
		return "add"
	case RemoveAction:
		return "remove"
	case TransformAction:
		return "transform"
	case ClearAction:
		return "clear"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// ParseActionKind maps a config-file name back to its kind.
func ParseActionKind(name string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "add":
		return AddAction, nil
	case "remove":
		return RemoveAction, nil
	case "transform":
		return TransformAction, nil
	case "clear":
		return ClearAction, nil
	default:
		return 0, fmt.Errorf("unknown action kind %q", name)
	}
}

// Action describes one mutation to apply to a frame's texture set.
// Which payload fields matter depends on Kind: Add carries Item,
// Remove carries ID, Transform carries ID and Transform, Clear carries
// nothing.
type Action struct {
	Kind      ActionKind
	ID        string
	Item      *types.TextureItem
	Transform *types.Transform
}

// Record is one entry in the revision log. It snapshots enough prior and
// posterior state that undo and redo never have to consult anything else.
// Records are immutable once appended.
type Record struct {
	Frame int
	Kind  ActionKind
	ID    string

	Before  *types.TextureItem  // State prior to Remove/Transform
	After   *types.TextureItem  // State after Add/Transform
	Index   int                 // Z-position of a removed item, for restoring order
	Removed []types.TextureItem // Whole-frame snapshot for Clear

	Seq  uint64 // Order key, assigned by the log
	Time time.Time
}
