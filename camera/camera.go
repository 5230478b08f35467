// Package camera provides the pan/zoom viewport for the grid viewer.
// Coordinates are cell-based and wrap toroidally, matching the grid the
// simulation runs on.
package camera

import "math"

// Camera is a movable window onto a toroidal cell grid.
type Camera struct {
	// X, Y is the view center in cell coordinates.
	X, Y float32

	// Scale is screen pixels per cell.
	Scale float32

	// Viewport dimensions in screen pixels.
	ViewportW, ViewportH float32

	// Grid dimensions in cells.
	GridW, GridH float32

	// Scale constraints.
	MinScale, MaxScale float32
}

// New creates a camera centered on the grid, scaled so the whole grid
// fits the viewport.
func New(viewportW, viewportH float32, gridW, gridH int) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		GridW:     float32(gridW),
		GridH:     float32(gridH),
		MaxScale:  32,
	}
	c.MinScale = fitScale(viewportW, viewportH, c.GridW, c.GridH)
	c.Reset()
	return c
}

// fitScale is the smallest pixels-per-cell at which the viewport is
// always covered by at most one copy of the grid.
func fitScale(vw, vh, gw, gh float32) float32 {
	s := vw / gw
	if vh/gh > s {
		s = vh / gh
	}
	return s
}

// View returns the visible window in cell coordinates: the top-left
// corner and the extent. The corner may be negative or fractional; the
// renderer relies on repeat-wrapped texture sampling for the toroidal
// seam.
func (c *Camera) View() (x, y, w, h float32) {
	w = c.ViewportW / c.Scale
	h = c.ViewportH / c.Scale
	return c.X - w/2, c.Y - h/2, w, h
}

// CellAt returns the grid cell under a viewport pixel.
func (c *Camera) CellAt(sx, sy float32) (int, int) {
	wx := mod(c.X+(sx-c.ViewportW/2)/c.Scale, c.GridW)
	wy := mod(c.Y+(sy-c.ViewportH/2)/c.Scale, c.GridH)
	return int(wx), int(wy)
}

// Pan moves the view by a screen-pixel delta, wrapping at the grid edges.
func (c *Camera) Pan(dx, dy float32) {
	c.X = mod(c.X+dx/c.Scale, c.GridW)
	c.Y = mod(c.Y+dy/c.Scale, c.GridH)
}

// SetScale sets pixels-per-cell, clamped to the allowed range.
func (c *Camera) SetScale(scale float32) {
	c.Scale = clamp(scale, c.MinScale, c.MaxScale)
}

// ZoomBy multiplies the current scale by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetScale(c.Scale * factor)
}

// Resize updates the viewport dimensions and re-derives the scale floor.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinScale = fitScale(viewportW, viewportH, c.GridW, c.GridH)
	if c.Scale < c.MinScale {
		c.Scale = c.MinScale
	}
}

// Reset recenters the camera and zooms back out to the full grid.
func (c *Camera) Reset() {
	c.X = c.GridW / 2
	c.Y = c.GridH / 2
	c.Scale = c.MinScale
}

// mod wraps v into [0, n).
func mod(v, n float32) float32 {
	return float32(math.Mod(math.Mod(float64(v), float64(n))+float64(n), float64(n)))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
