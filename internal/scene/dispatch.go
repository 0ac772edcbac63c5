// internal/scene/dispatch.go
package scene

import (
	"github.com/bethropolis/cutout/internal/input"
	"github.com/bethropolis/cutout/internal/mode"
)

// Dispatch routes an intent from the input layer to the matching operation.
// Returns handled=false for intents the facade does not own (selection,
// zoom, quit), which the caller deals with itself. The error, when set, is
// the rejection to surface in the UI; the engine state is untouched by a
// rejected intent.
func (s *Scene) Dispatch(in input.Intent) (handled bool, err error) {
	switch in.Kind {
	case input.IntentPlace:
		_, err = s.Place(in.Source, in.Transform)
		return true, err
	case input.IntentClip:
		return true, s.Clip(in.ID, in.Insets)
	case input.IntentDrag:
		return true, s.Drag(in.ID, in.Transform)
	case input.IntentDelete:
		return true, s.DeleteOne(in.ID)
	case input.IntentClear:
		_, err = s.ClearAll()
		return true, err

	case input.IntentCancel:
		if s.clearPending {
			s.CancelClear()
			return true, nil
		}
		return false, nil

	case input.IntentUndo:
		s.Undo()
		return true, nil
	case input.IntentRedo:
		s.Redo()
		return true, nil

	case input.IntentToggleTrash:
		s.Toggle(mode.Trash)
		return true, nil
	case input.IntentToggleClip:
		s.Toggle(mode.Clip)
		return true, nil
	case input.IntentToggleDrag:
		s.Toggle(mode.Drag)
		return true, nil
	case input.IntentToggleEdit:
		s.Toggle(mode.Edit)
		return true, nil

	case input.IntentSeekBack:
		s.timeline.Seek(s.timeline.Frame() - 1)
		return true, nil
	case input.IntentSeekForward:
		s.timeline.Seek(s.timeline.Frame() + 1)
		return true, nil
	case input.IntentSeekStart:
		s.timeline.Seek(0)
		return true, nil
	case input.IntentSeekEnd:
		s.timeline.Seek(s.timeline.Total() - 1)
		return true, nil
	case input.IntentPlayPause:
		if s.timeline.Playing() {
			s.timeline.Pause()
		} else {
			s.timeline.Play()
		}
		return true, nil
	case input.IntentZoomIn:
		s.timeline.SetScale(s.timeline.Scale() * 2)
		return true, nil
	case input.IntentZoomOut:
		s.timeline.SetScale(s.timeline.Scale() / 2)
		return true, nil
	}
	return false, nil
}
