// internal/input/intent.go
package input

import "github.com/bethropolis/cutout/internal/types"

// Kind enumerates the intents the input layer can emit. The engine only
// ever sees these; tcell types stay on this side of the boundary.
type Kind int

const (
	// --- Meta intents ---
	IntentUnknown Kind = iota
	IntentQuit
	IntentCancel // Esc: cancels a pending clear confirmation

	// --- Mutations ---
	IntentPlace
	IntentClip
	IntentDrag
	IntentDelete
	IntentClear
	IntentUndo
	IntentRedo

	// --- Texture clipboard ---
	IntentYank
	IntentPut

	// --- Keyboard drags (app turns these into IntentDrag transforms) ---
	IntentNudgeLeft
	IntentNudgeRight
	IntentNudgeUp
	IntentNudgeDown

	// --- Mode toggles ---
	IntentToggleTrash
	IntentToggleClip
	IntentToggleDrag
	IntentToggleEdit

	// --- Timeline ---
	IntentSeekBack
	IntentSeekForward
	IntentSeekStart
	IntentSeekEnd
	IntentPlayPause
	IntentZoomIn
	IntentZoomOut

	// --- Selection (UI-side, no revision records) ---
	IntentSelectNext
	IntentSelectPrev
	IntentCycleSource
)

// Intent is one decoded user intention plus whatever payload the operation
// needs. The input layer fills Kind; the app fills in targets (selected
// texture id, transforms) before handing the intent to the scene.
type Intent struct {
	Kind      Kind
	Source    string
	ID        string
	Transform types.Transform
	Insets    types.Insets
	Pos       int
}
