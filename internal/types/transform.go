// internal/types/transform.go
package types

// Transform describes where a texture sits on the canvas and how it is
// scaled and rotated. Coordinates are canvas units, not pixels; the
// rendering layer owns the pixel mapping.
type Transform struct {
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64 // Degrees, clockwise
}

// Insets describe how much to trim from each edge of a texture when clipping.
// Negative values are treated as zero.
type Insets struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Clip returns the transform that results from trimming the given insets off
// this transform. Width and height never go below zero.
func (t Transform) Clip(in Insets) Transform {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return v
	}
	top, right := clamp(in.Top), clamp(in.Right)
	bottom, left := clamp(in.Bottom), clamp(in.Left)

	out := t
	out.X += left
	out.Y += top
	out.Width = clamp(t.Width - left - right)
	out.Height = clamp(t.Height - top - bottom)
	return out
}

// Translate returns the transform shifted by (dx, dy).
func (t Transform) Translate(dx, dy float64) Transform {
	out := t
	out.X += dx
	out.Y += dy
	return out
}
