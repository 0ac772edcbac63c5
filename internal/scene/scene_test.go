package scene

import (
	"errors"
	"testing"

	"github.com/bethropolis/cutout/internal/asset"
	"github.com/bethropolis/cutout/internal/event"
	"github.com/bethropolis/cutout/internal/mode"
	"github.com/bethropolis/cutout/internal/revision"
	"github.com/bethropolis/cutout/internal/texture"
	"github.com/bethropolis/cutout/internal/timeline"
	"github.com/bethropolis/cutout/internal/types"
)

type fixture struct {
	scene *Scene
	store *texture.Store
	log   *revision.Log
	modes *mode.Controller
	tl    *timeline.Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	events := event.NewManager()
	log := revision.NewLog(100)
	store := texture.NewStore(log)
	modes := mode.NewController(nil, events)
	tl := timeline.NewController(timeline.Config{TotalFrames: 8}, events)
	tl.Initialize(0)

	scn := New(Config{
		Store:    store,
		Log:      log,
		Modes:    modes,
		Timeline: tl,
		Events:   events,
		Catalog:  asset.DefaultCatalog(),
	})
	return &fixture{scene: scn, store: store, log: log, modes: modes, tl: tl}
}

func TestPlaceUndoRedoScenario(t *testing.T) {
	f := newFixture(t)

	placed, err := f.scene.Place("sprite", types.Transform{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if got := f.log.Len(); got != 1 {
		t.Errorf("log has %d records, want 1", got)
	}
	if got := f.scene.Textures(); len(got) != 1 || got[0].ID != placed.ID {
		t.Errorf("frame 0 = %v, want the placed texture", got)
	}

	if !f.scene.Undo() {
		t.Fatal("Undo = false, want true")
	}
	if got := f.scene.Textures(); len(got) != 0 {
		t.Errorf("frame 0 after undo = %v, want empty", got)
	}
	if got := f.log.Cursor(); got != 0 {
		t.Errorf("cursor after undo = %d, want 0", got)
	}

	if !f.scene.Redo() {
		t.Fatal("Redo = false, want true")
	}
	if got := f.scene.Textures(); len(got) != 1 || got[0].ID != placed.ID {
		t.Errorf("frame 0 after redo = %v, want the placed texture again", got)
	}
}

func TestModeViolationChangesNothing(t *testing.T) {
	f := newFixture(t)
	placed, _ := f.scene.Place("sprite", types.Transform{})
	recordsBefore := f.log.Len()
	cursorBefore := f.log.Cursor()

	f.scene.Toggle(mode.Trash)

	err := f.scene.Drag(placed.ID, types.Transform{X: 100})
	if !errors.Is(err, mode.ErrModeViolation) {
		t.Fatalf("Drag in trash mode: err = %v, want ErrModeViolation", err)
	}

	if got := f.log.Len(); got != recordsBefore {
		t.Errorf("log grew to %d records on a rejected intent", got)
	}
	if got := f.log.Cursor(); got != cursorBefore {
		t.Errorf("cursor moved to %d on a rejected intent", got)
	}
	item, _ := f.scene.Find(placed.ID)
	if item.Transform.X == 100 {
		t.Error("store mutated by a rejected intent")
	}
}

func TestClipSharesTransformPermission(t *testing.T) {
	f := newFixture(t)
	placed, _ := f.scene.Place("sprite", types.Transform{Width: 32, Height: 32})

	f.scene.Toggle(mode.Clip)
	if err := f.scene.Clip(placed.ID, types.Insets{Top: 2, Right: 2, Bottom: 2, Left: 2}); err != nil {
		t.Fatalf("Clip in clip mode: %v", err)
	}
	item, _ := f.scene.Find(placed.ID)
	if item.Transform.Width != 28 || item.Transform.Height != 28 {
		t.Errorf("clipped size = %vx%v, want 28x28", item.Transform.Width, item.Transform.Height)
	}

	// Placing is not permitted while clipping.
	if _, err := f.scene.Place("sprite", types.Transform{}); !errors.Is(err, mode.ErrModeViolation) {
		t.Errorf("Place in clip mode: err = %v, want ErrModeViolation", err)
	}
}

func TestDeleteRequiresTrashMode(t *testing.T) {
	f := newFixture(t)
	placed, _ := f.scene.Place("sprite", types.Transform{})

	if err := f.scene.DeleteOne(placed.ID); !errors.Is(err, mode.ErrModeViolation) {
		t.Fatalf("DeleteOne in none mode: err = %v, want ErrModeViolation", err)
	}

	f.scene.Toggle(mode.Trash)
	if err := f.scene.DeleteOne(placed.ID); err != nil {
		t.Fatalf("DeleteOne in trash mode: %v", err)
	}
	if got := f.scene.Textures(); len(got) != 0 {
		t.Errorf("frame after delete = %v, want empty", got)
	}
}

func TestDeleteUnknownIDIsInvalidMutation(t *testing.T) {
	f := newFixture(t)
	f.scene.Toggle(mode.Trash)

	err := f.scene.DeleteOne("no-such-id")
	if !errors.Is(err, texture.ErrUnknownTexture) {
		t.Fatalf("err = %v, want ErrUnknownTexture", err)
	}
	if got := f.log.Len(); got != 0 {
		t.Errorf("log has %d records after a failed delete, want 0", got)
	}
}

func TestClearAllTwoStepProtocol(t *testing.T) {
	f := newFixture(t)
	f.scene.Place("sprite", types.Transform{})
	f.scene.Place("cloud", types.Transform{})
	f.scene.Toggle(mode.Trash)

	cleared, err := f.scene.ClearAll()
	if err != nil {
		t.Fatalf("first ClearAll: %v", err)
	}
	if cleared {
		t.Error("first ClearAll performed the clear, want confirmation-pending only")
	}
	if !f.scene.ClearPending() {
		t.Error("ClearPending = false after first call")
	}
	if got := len(f.scene.Textures()); got != 2 {
		t.Errorf("textures mutated by first ClearAll: %d left", got)
	}

	cleared, err = f.scene.ClearAll()
	if err != nil {
		t.Fatalf("second ClearAll: %v", err)
	}
	if !cleared {
		t.Error("second ClearAll did not perform the clear")
	}
	if f.scene.ClearPending() {
		t.Error("ClearPending = true after confirmed clear")
	}
	if got := len(f.scene.Textures()); got != 0 {
		t.Errorf("%d textures left after confirmed clear", got)
	}
	// The revision log is reset wholesale.
	if f.log.Len() != 0 || f.scene.CanUndo() {
		t.Error("revision log not reset by confirmed clear")
	}
}

func TestClearAllCancelLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	f.scene.Place("sprite", types.Transform{})
	f.scene.Toggle(mode.Trash)

	f.scene.ClearAll()
	recordsBefore := f.log.Len()

	f.scene.CancelClear()

	if f.scene.ClearPending() {
		t.Error("ClearPending = true after cancel")
	}
	if got := len(f.scene.Textures()); got != 1 {
		t.Errorf("textures after cancel = %d, want 1", got)
	}
	if got := f.log.Len(); got != recordsBefore {
		t.Errorf("log changed by cancel: %d records, want %d", got, recordsBefore)
	}
}

func TestClearAllRequiresPermission(t *testing.T) {
	f := newFixture(t)
	f.scene.Place("sprite", types.Transform{})

	if _, err := f.scene.ClearAll(); !errors.Is(err, mode.ErrModeViolation) {
		t.Fatalf("ClearAll outside trash mode: err = %v, want ErrModeViolation", err)
	}
	if f.scene.ClearPending() {
		t.Error("rejected ClearAll armed the confirmation latch")
	}
}

func TestNewMutationDiscardsRedoTail(t *testing.T) {
	f := newFixture(t)
	f.scene.Place("sprite", types.Transform{})
	f.scene.Undo()

	if _, err := f.scene.Place("cloud", types.Transform{}); err != nil {
		t.Fatalf("Place after undo: %v", err)
	}
	if f.scene.Redo() {
		t.Error("Redo = true after a new mutation, want false (tail discarded)")
	}
	got := f.scene.Textures()
	if len(got) != 1 || got[0].Source != "cloud" {
		t.Errorf("frame = %v, want only the cloud texture", got)
	}
}

func TestMutationsAreFrameScoped(t *testing.T) {
	f := newFixture(t)
	f.scene.Place("sprite", types.Transform{})

	f.tl.Seek(3)
	f.scene.Place("cloud", types.Transform{})

	if got := f.scene.Textures(); len(got) != 1 || got[0].Source != "cloud" {
		t.Errorf("frame 3 = %v, want only the cloud texture", got)
	}
	f.tl.Seek(0)
	if got := f.scene.Textures(); len(got) != 1 || got[0].Source != "sprite" {
		t.Errorf("frame 0 = %v, want only the sprite texture", got)
	}
}

func TestPlaceUnknownSource(t *testing.T) {
	f := newFixture(t)
	if _, err := f.scene.Place("missing", types.Transform{}); !errors.Is(err, asset.ErrUnknownSource) {
		t.Fatalf("err = %v, want ErrUnknownSource", err)
	}
	if got := f.log.Len(); got != 0 {
		t.Errorf("log has %d records after a failed place, want 0", got)
	}
}

func TestPlaceTakesNaturalSizeAndTint(t *testing.T) {
	f := newFixture(t)
	placed, err := f.scene.Place("sun", types.Transform{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if placed.Transform.Width != 64 || placed.Transform.Height != 64 {
		t.Errorf("natural size = %vx%v, want 64x64", placed.Transform.Width, placed.Transform.Height)
	}
	if placed.Tint == "" {
		t.Error("tint not inherited from the source")
	}
}

func TestAttrsReflectModeAndSafety(t *testing.T) {
	f := newFixture(t)

	f.scene.Toggle(mode.Trash)
	attrs := f.scene.Attrs()
	if !attrs.Trash || attrs.Clip || attrs.Drag || attrs.Edit {
		t.Errorf("attrs = %+v, want only trash set", attrs)
	}

	f.scene.ClearAll()
	if attrs = f.scene.Attrs(); !attrs.Safety {
		t.Error("Safety = false while a clear confirmation is pending")
	}
	f.scene.CancelClear()
	if attrs = f.scene.Attrs(); attrs.Safety {
		t.Error("Safety = true after cancel")
	}
}

func TestUndoBoundaryIsQuietNoOp(t *testing.T) {
	f := newFixture(t)
	if f.scene.Undo() {
		t.Error("Undo on empty history = true, want false")
	}
	if f.scene.Redo() {
		t.Error("Redo on empty history = true, want false")
	}
}
