package mode

import (
	"errors"
	"testing"

	"github.com/bethropolis/cutout/internal/event"
	"github.com/bethropolis/cutout/internal/revision"
)

func TestToggleSwitchesAndReturnsToNone(t *testing.T) {
	c := NewController(nil, nil)

	if got := c.Active(); got != None {
		t.Fatalf("initial mode = %v, want none", got)
	}
	if got := c.Toggle(Trash); got != Trash {
		t.Errorf("Toggle(trash) = %v, want trash", got)
	}
	// Toggling the active mode is an idempotent pair back to None.
	if got := c.Toggle(Trash); got != None {
		t.Errorf("Toggle(trash) twice = %v, want none", got)
	}
}

func TestToggleIsMutuallyExclusive(t *testing.T) {
	c := NewController(nil, nil)

	c.Toggle(Clip)
	if got := c.Toggle(Drag); got != Drag {
		t.Errorf("Toggle(drag) while clip active = %v, want drag", got)
	}
	if got := c.Active(); got != Drag {
		t.Errorf("Active = %v, want drag (single active mode)", got)
	}
}

func TestPermitsDefaultRules(t *testing.T) {
	c := NewController(nil, nil)

	tests := []struct {
		mode    Mode
		kind    revision.ActionKind
		allowed bool
	}{
		{None, revision.AddAction, true},
		{None, revision.RemoveAction, false},
		{Edit, revision.AddAction, true},
		{Edit, revision.TransformAction, true},
		{Drag, revision.TransformAction, true},
		{Drag, revision.RemoveAction, false},
		{Clip, revision.TransformAction, true},
		{Trash, revision.RemoveAction, true},
		{Trash, revision.ClearAction, true},
		{Trash, revision.TransformAction, false},
	}
	for _, tt := range tests {
		// Force the controller into the wanted mode.
		for c.Active() != tt.mode {
			c.Toggle(tt.mode)
		}
		err := c.Permits(tt.kind)
		if tt.allowed && err != nil {
			t.Errorf("mode %v: Permits(%v) = %v, want nil", tt.mode, tt.kind, err)
		}
		if !tt.allowed && !errors.Is(err, ErrModeViolation) {
			t.Errorf("mode %v: Permits(%v) = %v, want ErrModeViolation", tt.mode, tt.kind, err)
		}
		// Reset to None for the next case.
		for c.Active() != None {
			c.Toggle(c.Active())
		}
	}
}

func TestParseRulesOverridesAndKeepsDefaults(t *testing.T) {
	rules, err := ParseRules(map[string][]string{
		"drag": {"transform", "remove"},
	})
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}

	c := NewController(rules, nil)
	c.Toggle(Drag)
	if err := c.Permits(revision.RemoveAction); err != nil {
		t.Errorf("overridden drag should permit remove: %v", err)
	}

	// Unmentioned modes keep their stock permissions.
	c.Toggle(Drag)
	c.Toggle(Trash)
	if err := c.Permits(revision.ClearAction); err != nil {
		t.Errorf("trash should still permit clear: %v", err)
	}
}

func TestParseRulesRejectsUnknownNames(t *testing.T) {
	if _, err := ParseRules(map[string][]string{"flying": {"add"}}); err == nil {
		t.Error("unknown mode name accepted")
	}
	if _, err := ParseRules(map[string][]string{"edit": {"explode"}}); err == nil {
		t.Error("unknown action name accepted")
	}
}

func TestToggleDispatchesModeChanged(t *testing.T) {
	events := event.NewManager()
	var got []string
	events.Subscribe(event.TypeModeChanged, func(e event.Event) bool {
		got = append(got, e.Data.(event.ModeChangedData).Mode)
		return false
	})

	c := NewController(nil, events)
	c.Toggle(Edit)
	c.Toggle(Edit)

	if len(got) != 2 || got[0] != "edit" || got[1] != "none" {
		t.Errorf("mode change events = %v, want [edit none]", got)
	}
}
