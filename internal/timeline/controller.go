// Package timeline owns playback position, scrubber scale and the
// pixel-to-frame mapping. Seeking changes what the store's Get returns for
// rendering but never creates revision records.
package timeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/fogleman/ease"

	"github.com/bethropolis/cutout/internal/event"
	"github.com/bethropolis/cutout/internal/logger"
)

const (
	DefaultTotalFrames   = 48
	DefaultFPS           = 12
	DefaultWidth         = 40
	DefaultScale         = 1.0
	DefaultGlideDuration = 250 * time.Millisecond

	minScale = 0.25
	maxScale = 8.0
)

// Config seeds a controller. Zero values fall back to the defaults above.
type Config struct {
	TotalFrames   int
	FPS           int
	Width         int // Scrubber width in cells/pixels
	Scale         float64
	GlideDuration time.Duration
}

// Controller tracks the active frame. Frames are clamped to
// [0, totalFrames-1]; out-of-range seeks clamp rather than fail.
type Controller struct {
	mu sync.Mutex

	frame int
	total int
	scale float64
	width int
	fps   int

	playing  bool
	lastTick time.Time

	gliding    bool
	glideFrom  int
	glideTo    int
	glideStart time.Time
	glideDur   time.Duration

	initialized bool
	cfg         Config
	events      *event.Manager
}

// NewController creates a timeline controller. Call Initialize before use;
// until then the controller reports the configured defaults.
func NewController(cfg Config, events *event.Manager) *Controller {
	if cfg.TotalFrames <= 0 {
		cfg.TotalFrames = DefaultTotalFrames
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultScale
	}
	if cfg.GlideDuration <= 0 {
		cfg.GlideDuration = DefaultGlideDuration
	}
	return &Controller{
		total:    cfg.TotalFrames,
		scale:    cfg.Scale,
		width:    cfg.Width,
		fps:      cfg.FPS,
		glideDur: cfg.GlideDuration,
		cfg:      cfg,
		events:   events,
	}
}

// Initialize establishes the frame window from the current content length.
// Safe to call repeatedly: re-invocation recomputes the window but does not
// duplicate or reset unrelated state.
func (c *Controller) Initialize(contentFrames int) {
	c.mu.Lock()
	total := c.cfg.TotalFrames
	if contentFrames > total {
		total = contentFrames
	}
	c.total = total
	if c.frame > c.total-1 {
		c.frame = c.total - 1
	}
	if !c.initialized {
		c.scale = c.cfg.Scale
		c.width = c.cfg.Width
		c.initialized = true
	}
	c.mu.Unlock()

	logger.Debugf("Timeline: Initialized with %d frames (content %d)", total, contentFrames)
}

// Seek clamps pos into the valid frame range and makes it the active frame.
// Never fails; returns the resulting frame. An explicit seek cancels any
// glide in flight.
func (c *Controller) Seek(pos int) int {
	c.mu.Lock()
	c.gliding = false
	changed := c.setFrameLocked(pos)
	frame := c.frame
	c.mu.Unlock()

	if changed {
		c.dispatchFrameChanged(frame)
	}
	return frame
}

// Frame returns the active frame.
func (c *Controller) Frame() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Total returns the number of frames in the window.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Display renders the current position as text, 1-based over the total.
func (c *Controller) Display() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("%d/%d", c.frame+1, c.total)
}

// Scale returns the scrubber zoom factor.
func (c *Controller) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

// SetScale adjusts the scrubber zoom, clamped to a sane range.
func (c *Controller) SetScale(scale float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if scale < minScale {
		scale = minScale
	}
	if scale > maxScale {
		scale = maxScale
	}
	c.scale = scale
	return c.scale
}

// Width returns the scrubber width used for the pixel-to-frame mapping.
func (c *Controller) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

// SetWidth updates the scrubber width (e.g. on terminal resize).
func (c *Controller) SetWidth(w int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w > 0 {
		c.width = w
	}
}

// FrameAt maps a scrubber pixel offset to a frame, honoring scale.
func (c *Controller) FrameAt(x int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	span := float64(c.width) * c.scale
	if span <= 0 {
		return c.frame
	}
	frame := int(float64(x) / span * float64(c.total))
	return clamp(frame, 0, c.total-1)
}

// Glide starts an eased scrub toward target. Step advances it.
func (c *Controller) Glide(target int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target = clamp(target, 0, c.total-1)
	if target == c.frame {
		c.gliding = false
		return
	}
	c.gliding = true
	c.glideFrom = c.frame
	c.glideTo = target
	c.glideStart = time.Now()
}

// Play starts frame-based playback at the configured fps.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = true
	c.lastTick = time.Now()
}

// Pause stops playback.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
}

// Playing reports whether playback is running.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Step advances any glide or playback to now. Returns true when the active
// frame changed, so the caller knows to redraw.
func (c *Controller) Step(now time.Time) bool {
	c.mu.Lock()

	changed := false
	switch {
	case c.gliding:
		t := float64(now.Sub(c.glideStart)) / float64(c.glideDur)
		if t >= 1 {
			changed = c.setFrameLocked(c.glideTo)
			c.gliding = false
		} else {
			pos := float64(c.glideFrom) + float64(c.glideTo-c.glideFrom)*ease.InOutQuad(t)
			changed = c.setFrameLocked(int(pos + 0.5))
		}

	case c.playing:
		frameDur := time.Second / time.Duration(c.fps)
		if now.Sub(c.lastTick) >= frameDur {
			c.lastTick = now
			next := c.frame + 1
			if next > c.total-1 {
				next = 0 // Loop playback
			}
			changed = c.setFrameLocked(next)
		}
	}

	frame := c.frame
	c.mu.Unlock()

	if changed {
		c.dispatchFrameChanged(frame)
	}
	return changed
}

// setFrameLocked clamps and stores the frame. Caller must hold the lock.
func (c *Controller) setFrameLocked(pos int) bool {
	pos = clamp(pos, 0, c.total-1)
	if pos == c.frame {
		return false
	}
	c.frame = pos
	return true
}

func (c *Controller) dispatchFrameChanged(frame int) {
	logger.DebugTagf("timeline", "Frame changed to %d", frame)
	if c.events != nil {
		c.events.Dispatch(event.TypeFrameChanged, event.FrameChangedData{Frame: frame})
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
