// Package scene composes the texture store, revision log, mode controller
// and timeline into the intent-level surface the UI collaborators consume.
// A Scene is an explicitly constructed session context; nothing here is a
// package-level singleton, so multiple editor instances can coexist.
package scene

import (
	"github.com/google/uuid"

	"github.com/bethropolis/cutout/internal/asset"
	"github.com/bethropolis/cutout/internal/event"
	"github.com/bethropolis/cutout/internal/logger"
	"github.com/bethropolis/cutout/internal/mode"
	"github.com/bethropolis/cutout/internal/revision"
	"github.com/bethropolis/cutout/internal/texture"
	"github.com/bethropolis/cutout/internal/timeline"
	"github.com/bethropolis/cutout/internal/types"
)

// InputAttrs are the booleans the UI binds its toggle affordances to:
// one per mode plus the clear-all safety latch.
type InputAttrs struct {
	Trash  bool
	Clip   bool
	Drag   bool
	Edit   bool
	Safety bool // True while a clear-all confirmation is pending
}

// Config holds the dependencies for a Scene.
type Config struct {
	Store    *texture.Store
	Log      *revision.Log
	Modes    *mode.Controller
	Timeline *timeline.Controller
	Events   *event.Manager
	Catalog  *asset.Catalog
}

// Scene is the facade. All operations are synchronous and run on the
// caller's goroutine; an event handler issuing a nested intent simply stacks,
// each nested operation appending its own record in call order.
type Scene struct {
	store    *texture.Store
	log      *revision.Log
	modes    *mode.Controller
	timeline *timeline.Controller
	events   *event.Manager
	catalog  *asset.Catalog

	clearPending bool
}

// New creates a Scene. Missing dependencies are a programming error.
func New(cfg Config) *Scene {
	if cfg.Store == nil || cfg.Log == nil || cfg.Modes == nil || cfg.Timeline == nil || cfg.Events == nil || cfg.Catalog == nil {
		panic("scene.New: missing required dependencies in Config")
	}
	return &Scene{
		store:    cfg.Store,
		log:      cfg.Log,
		modes:    cfg.Modes,
		timeline: cfg.Timeline,
		events:   cfg.Events,
		catalog:  cfg.Catalog,
	}
}

// Place puts a new texture from a named source onto the current frame.
// A zero-size transform takes the source's natural size.
func (s *Scene) Place(source string, t types.Transform) (*types.TextureItem, error) {
	if err := s.modes.Permits(revision.AddAction); err != nil {
		return nil, err
	}
	src, err := s.catalog.Resolve(source)
	if err != nil {
		return nil, err
	}
	if t.Width == 0 && t.Height == 0 {
		t.Width, t.Height = src.W, src.H
	}

	item := types.TextureItem{
		ID:        uuid.NewString(),
		Source:    src.Name,
		Transform: t,
		Tint:      src.Tint,
	}
	frame := s.timeline.Frame()
	placed, err := s.store.Apply(frame, revision.Action{Kind: revision.AddAction, Item: &item})
	if err != nil {
		return nil, err
	}

	s.events.Dispatch(event.TypeTextureAdded, event.TextureAddedData{Frame: frame, ID: placed.ID})
	s.dispatchHistory()
	return placed, nil
}

// Clip trims the given insets off a texture's transform.
func (s *Scene) Clip(id string, insets types.Insets) error {
	if err := s.modes.Permits(revision.TransformAction); err != nil {
		return err
	}
	frame := s.timeline.Frame()
	item, err := s.store.Find(frame, id)
	if err != nil {
		return err
	}
	clipped := item.Transform.Clip(insets)
	return s.transform(frame, id, clipped)
}

// Drag replaces a texture's transform (position, size, rotation).
func (s *Scene) Drag(id string, t types.Transform) error {
	if err := s.modes.Permits(revision.TransformAction); err != nil {
		return err
	}
	return s.transform(s.timeline.Frame(), id, t)
}

func (s *Scene) transform(frame int, id string, t types.Transform) error {
	_, err := s.store.Apply(frame, revision.Action{Kind: revision.TransformAction, ID: id, Transform: &t})
	if err != nil {
		return err
	}
	s.events.Dispatch(event.TypeTextureTransformed, event.TextureTransformedData{Frame: frame, ID: id})
	s.dispatchHistory()
	return nil
}

// DeleteOne removes a single texture from the current frame.
func (s *Scene) DeleteOne(id string) error {
	if err := s.modes.Permits(revision.RemoveAction); err != nil {
		return err
	}
	frame := s.timeline.Frame()
	if _, err := s.store.Apply(frame, revision.Action{Kind: revision.RemoveAction, ID: id}); err != nil {
		return err
	}
	s.events.Dispatch(event.TypeTextureRemoved, event.TextureRemovedData{Frame: frame, ID: id})
	s.dispatchHistory()
	return nil
}

// ClearAll is a two-step protocol. The first call arms the confirmation
// latch and mutates nothing; the second clears every texture in the current
// frame and resets the revision log. Returns true once the clear actually
// ran.
func (s *Scene) ClearAll() (bool, error) {
	if err := s.modes.Permits(revision.ClearAction); err != nil {
		return false, err
	}

	if !s.clearPending {
		s.clearPending = true
		logger.Debugf("Scene: Clear-all armed, awaiting confirmation.")
		return false, nil
	}

	frame := s.timeline.Frame()
	count := s.store.Count(frame)
	if _, err := s.store.Apply(frame, revision.Action{Kind: revision.ClearAction}); err != nil {
		return false, err
	}
	s.log.Reset()
	s.clearPending = false

	s.events.Dispatch(event.TypeSceneCleared, event.SceneClearedData{Frame: frame, Count: count})
	s.dispatchHistory()
	logger.Infof("Scene: Cleared %d texture(s) from frame %d", count, frame)
	return true, nil
}

// CancelClear disarms a pending clear-all, leaving all state untouched.
func (s *Scene) CancelClear() {
	if s.clearPending {
		s.clearPending = false
		logger.Debugf("Scene: Clear-all cancelled.")
	}
}

// ClearPending reports whether a clear-all confirmation is pending.
func (s *Scene) ClearPending() bool {
	return s.clearPending
}

// Undo reverses the most recent mutation. Returns false when there is
// nothing to undo.
func (s *Scene) Undo() bool {
	rec := s.log.Undo()
	if rec == nil {
		return false
	}
	if err := s.store.Revert(rec); err != nil {
		// Put the cursor back so the log stays consistent with the store.
		logger.Errorf("Scene: Undo failed for %v (seq %d): %v", rec.Kind, rec.Seq, err)
		s.log.Redo()
		return false
	}
	s.dispatchHistory()
	return true
}

// Redo reapplies the most recently undone mutation. Returns false when
// there is nothing to redo.
func (s *Scene) Redo() bool {
	rec := s.log.Redo()
	if rec == nil {
		return false
	}
	if err := s.store.Reapply(rec); err != nil {
		logger.Errorf("Scene: Redo failed for %v (seq %d): %v", rec.Kind, rec.Seq, err)
		s.log.Undo()
		return false
	}
	s.dispatchHistory()
	return true
}

// Toggle switches the active interaction mode.
func (s *Scene) Toggle(m mode.Mode) mode.Mode {
	return s.modes.Toggle(m)
}

// Attrs reports the mode and safety booleans for the UI.
func (s *Scene) Attrs() InputAttrs {
	active := s.modes.Active()
	return InputAttrs{
		Trash:  active == mode.Trash,
		Clip:   active == mode.Clip,
		Drag:   active == mode.Drag,
		Edit:   active == mode.Edit,
		Safety: s.clearPending,
	}
}

// Textures returns the current frame's texture set for rendering.
func (s *Scene) Textures() []types.TextureItem {
	return s.store.Get(s.timeline.Frame())
}

// Find returns a texture from the current frame by id.
func (s *Scene) Find(id string) (types.TextureItem, error) {
	return s.store.Find(s.timeline.Frame(), id)
}

// Timeline exposes the timeline controller for the rendering side.
func (s *Scene) Timeline() *timeline.Controller {
	return s.timeline
}

// Catalog exposes the asset catalog for source cycling in the UI.
func (s *Scene) Catalog() *asset.Catalog {
	return s.catalog
}

// CanUndo and CanRedo report the log's affordances.
func (s *Scene) CanUndo() bool { return s.log.CanUndo() }
func (s *Scene) CanRedo() bool { return s.log.CanRedo() }

func (s *Scene) dispatchHistory() {
	s.events.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		CanUndo: s.log.CanUndo(),
		CanRedo: s.log.CanRedo(),
	})
}
