// internal/tui/drawing.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/cutout/internal/timeline"
	"github.com/bethropolis/cutout/internal/types"
)

var (
	styleDefault  = tcell.StyleDefault
	styleHeader   = tcell.StyleDefault.Bold(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleBar      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMarker   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// drawText writes a string at (x, y), clipping at maxWidth. Widths are
// grapheme-cluster widths, so wide and combining characters stay aligned.
func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	gr := uniseg.NewGraphemes(text)
	currentX := x
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > x+maxWidth {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			var combining []rune
			if len(runes) > 1 {
				combining = runes[1:]
			}
			screen.SetContent(currentX, y, runes[0], combining, style)
		}
		currentX += clusterWidth
	}
}

// DrawTextures renders the current frame's texture list starting at row
// startY. The selected row is drawn reversed. Returns the next free row.
func DrawTextures(screen tcell.Screen, width, startY int, items []types.TextureItem, selected int) int {
	drawText(screen, 0, startY, width, styleHeader, fmt.Sprintf(" textures (%d)", len(items)))
	y := startY + 1

	if len(items) == 0 {
		drawText(screen, 1, y, width-1, styleBar, "(empty frame -- press p to place)")
		return y + 1
	}

	for i, it := range items {
		style := styleDefault
		prefix := "  "
		if i == selected {
			style = styleSelected
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-8s %-8s x=%-6.1f y=%-6.1f %-5.1fx%-5.1f rot=%.0f",
			prefix, shortID(it.ID), it.Source,
			it.Transform.X, it.Transform.Y,
			it.Transform.Width, it.Transform.Height,
			it.Transform.Rotation)
		if it.Tint != "" {
			line += " tint=" + it.Tint
		}
		drawText(screen, 0, y, width, style, line)
		y++
	}
	return y
}

// DrawTimeline renders the scrubber bar on row y: a progress bar sized to
// the controller's width with a marker at the active frame.
func DrawTimeline(screen tcell.Screen, screenWidth, y int, tc *timeline.Controller) {
	barWidth := tc.Width()
	if barWidth > screenWidth-2 {
		barWidth = screenWidth - 2
	}
	if barWidth < 2 {
		return
	}

	total := tc.Total()
	frame := tc.Frame()
	marker := 0
	if total > 1 {
		marker = frame * (barWidth - 1) / (total - 1)
	}

	drawText(screen, 0, y, 1, styleBar, "[")
	for x := 0; x < barWidth; x++ {
		ch := '·'
		style := styleBar
		if x == marker {
			ch = '█'
			style = styleMarker
		} else if x < marker {
			ch = '─'
		}
		screen.SetContent(1+x, y, ch, nil, style)
	}
	drawText(screen, 1+barWidth, y, 1, styleBar, "]")

	label := fmt.Sprintf(" %s  x%.2g", tc.Display(), tc.Scale())
	if tc.Playing() {
		label += "  ▶"
	}
	drawText(screen, 2+barWidth, y, screenWidth-barWidth-2, styleDefault, label)
}

// shortID trims a uuid for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
