// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Scene events
	TypeTextureAdded       // Fired after a texture is placed
	TypeTextureRemoved     // Fired after a texture is deleted
	TypeTextureTransformed // Fired after a drag or clip
	TypeSceneCleared       // Fired after a confirmed clear-all
	TypeHistoryChanged     // Fired whenever the revision log moves (record/undo/redo/reset)

	// Timeline events
	TypeFrameChanged // Fired when the active frame changes

	// Mode events
	TypeModeChanged // Fired when the active interaction mode changes

	// Application lifecycle events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---
// Payloads carry identifiers rather than live objects so handlers cannot
// mutate engine state through an event.

// TextureAddedData identifies a newly placed texture.
type TextureAddedData struct {
	Frame int
	ID    string
}

// TextureRemovedData identifies a deleted texture.
type TextureRemovedData struct {
	Frame int
	ID    string
}

// TextureTransformedData identifies a dragged or clipped texture.
type TextureTransformedData struct {
	Frame int
	ID    string
}

// SceneClearedData reports how many textures a confirmed clear removed.
type SceneClearedData struct {
	Frame int
	Count int
}

// HistoryChangedData reports the undo/redo affordances after a log movement.
type HistoryChangedData struct {
	CanUndo bool
	CanRedo bool
}

// FrameChangedData carries the new active frame.
type FrameChangedData struct {
	Frame int
}

// ModeChangedData carries the new active mode's name.
type ModeChangedData struct {
	Mode string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
