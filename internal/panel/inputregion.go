package panel

import "github.com/bnema/ledge/internal/geometry"

// ComputeInputRegion derives the clickable rectangles for a panel surface.
// In dock mode hit-testing is clipped to the centered content rectangle,
// sized to the content length on the length axis and the full surface
// extent across it. In expand mode the whole surface is clickable.
func ComputeInputRegion(surface, actual geometry.Size, horizontal, dock bool) []geometry.Rect {
	if !dock {
		return []geometry.Rect{geometry.NewRect(0, 0, surface.W, surface.H)}
	}
	if horizontal {
		side := (surface.W - actual.W) / 2
		if side < 0 {
			side = 0
		}
		return []geometry.Rect{geometry.NewRect(side, 0, actual.W, surface.H)}
	}
	side := (surface.H - actual.H) / 2
	if side < 0 {
		side = 0
	}
	return []geometry.Rect{geometry.NewRect(0, side, surface.W, actual.H)}
}

// pushInputRegion recomputes the input region against the given surface
// extent and hands it to the layer surface. The region is committed
// together with the next frame.
func (inst *Instance) pushInputRegion(surface geometry.Size) {
	if inst.layer == nil {
		return
	}
	rects := ComputeInputRegion(surface, inst.Surface.ActualSize, inst.Config.IsHorizontal(), inst.Config.Dock())
	inst.layer.SetInputRegion(rects)
}
