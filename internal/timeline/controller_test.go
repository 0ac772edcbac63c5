package timeline

import (
	"testing"
	"time"

	"github.com/bethropolis/cutout/internal/event"
)

func newTestController() *Controller {
	c := NewController(Config{TotalFrames: 48, FPS: 12, Width: 40}, nil)
	c.Initialize(0)
	return c
}

func TestSeekClampsAndNeverFails(t *testing.T) {
	c := newTestController()

	tests := []struct {
		pos  int
		want int
	}{
		{0, 0},
		{10, 10},
		{47, 47},
		{-5, 0},
		{48, 47},
		{100000, 47},
	}
	for _, tt := range tests {
		if got := c.Seek(tt.pos); got != tt.want {
			t.Errorf("Seek(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	c := NewController(Config{TotalFrames: 48, Width: 40, Scale: 2.0}, nil)

	c.Initialize(0)
	c.Seek(30)
	c.SetScale(4.0)

	// Re-invocation recomputes the window but does not reset unrelated state.
	c.Initialize(0)
	if got := c.Frame(); got != 30 {
		t.Errorf("Frame after re-init = %d, want 30", got)
	}
	if got := c.Scale(); got != 4.0 {
		t.Errorf("Scale after re-init = %v, want 4.0", got)
	}
	if got := c.Total(); got != 48 {
		t.Errorf("Total after re-init = %d, want 48", got)
	}
}

func TestInitializeGrowsWindowToContent(t *testing.T) {
	c := NewController(Config{TotalFrames: 48}, nil)
	c.Initialize(100)
	if got := c.Total(); got != 100 {
		t.Errorf("Total = %d, want 100 (content longer than configured window)", got)
	}
}

func TestSeekDispatchesFrameChanged(t *testing.T) {
	events := event.NewManager()
	var frames []int
	events.Subscribe(event.TypeFrameChanged, func(e event.Event) bool {
		frames = append(frames, e.Data.(event.FrameChangedData).Frame)
		return false
	})

	c := NewController(Config{TotalFrames: 10}, events)
	c.Initialize(0)

	c.Seek(3)
	c.Seek(3) // No-op seek must not dispatch.
	c.Seek(-1)

	want := []int{3, 0}
	if len(frames) != len(want) || frames[0] != want[0] || frames[1] != want[1] {
		t.Errorf("frame events = %v, want %v", frames, want)
	}
}

func TestGlideReachesTarget(t *testing.T) {
	c := newTestController()
	c.Glide(20)

	now := time.Now()
	// Well past the glide duration, one step lands on the target.
	if changed := c.Step(now.Add(time.Second)); !changed {
		t.Error("Step during glide reported no change")
	}
	if got := c.Frame(); got != 20 {
		t.Errorf("Frame after glide = %d, want 20", got)
	}
	// A finished glide stops stepping.
	if changed := c.Step(now.Add(2 * time.Second)); changed {
		t.Error("Step after finished glide reported a change")
	}
}

func TestGlideIsEased(t *testing.T) {
	c := NewController(Config{TotalFrames: 100, GlideDuration: time.Second}, nil)
	c.Initialize(0)
	c.Glide(80)

	start := time.Now()
	c.glideStart = start // Pin the clock for determinism

	c.Step(start.Add(100 * time.Millisecond))
	early := c.Frame()
	// The curve starts slow: at t=0.1 progress is 2*0.01 = 2% of 80.
	if early > 5 {
		t.Errorf("early frame = %d, want a slow-in value <= 5", early)
	}

	c.Step(start.Add(500 * time.Millisecond))
	mid := c.Frame()
	// InOutQuad at t=0.5 is exactly 0.5 of the distance.
	if mid != 40 {
		t.Errorf("midpoint frame = %d, want 40", mid)
	}
}

func TestPlaybackAdvancesAndLoops(t *testing.T) {
	c := NewController(Config{TotalFrames: 3, FPS: 10}, nil)
	c.Initialize(0)
	c.Seek(2)
	c.Play()

	now := time.Now()
	if changed := c.Step(now.Add(200 * time.Millisecond)); !changed {
		t.Fatal("Step during playback reported no change")
	}
	if got := c.Frame(); got != 0 {
		t.Errorf("Frame after loop = %d, want 0 (wraps around)", got)
	}

	c.Pause()
	if changed := c.Step(now.Add(time.Second)); changed {
		t.Error("Step while paused reported a change")
	}
}

func TestFrameAtHonorsScale(t *testing.T) {
	c := NewController(Config{TotalFrames: 100, Width: 50, Scale: 1.0}, nil)
	c.Initialize(0)

	if got := c.FrameAt(0); got != 0 {
		t.Errorf("FrameAt(0) = %d, want 0", got)
	}
	if got := c.FrameAt(25); got != 50 {
		t.Errorf("FrameAt(25) = %d, want 50", got)
	}
	c.SetScale(2.0)
	if got := c.FrameAt(25); got != 25 {
		t.Errorf("FrameAt(25) at 2x zoom = %d, want 25", got)
	}
	// Way off the right edge clamps to the last frame.
	if got := c.FrameAt(100000); got != 99 {
		t.Errorf("FrameAt far right = %d, want 99", got)
	}
}

func TestSetScaleClamps(t *testing.T) {
	c := newTestController()
	if got := c.SetScale(0.01); got != minScale {
		t.Errorf("SetScale(0.01) = %v, want %v", got, minScale)
	}
	if got := c.SetScale(100); got != maxScale {
		t.Errorf("SetScale(100) = %v, want %v", got, maxScale)
	}
}

func TestDisplayIsOneBased(t *testing.T) {
	c := newTestController()
	c.Seek(11)
	if got := c.Display(); got != "12/48" {
		t.Errorf("Display = %q, want 12/48", got)
	}
}
