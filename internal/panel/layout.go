package panel

import (
	"math"

	"github.com/bnema/ledge/internal/geometry"
)

// centerInBar centers a window dimension within the available thickness.
func centerInBar(crosswise, dim int) int {
	return (crosswise - dim) / 2
}

// Layout partitions the applet windows into their regions and computes the
// panel's dimensions, per-window offsets, the rendered rectangle, and the
// input region.
//
// First the panel is partitioned evenly into thirds; if all regions fit
// into their third, offsets are assigned within it. Otherwise leftover
// space is distributed proportionally around the center. When the computed
// dimensions cross the surface's current ones, pending dimensions are
// stored and ErrPendingResize is returned instead of placing windows.
func (inst *Instance) Layout() error {
	if inst.layer == nil {
		return ErrSurfaceNotReady
	}
	cfg := &inst.Config
	anchor := cfg.AnchorEdge()
	horizontal := anchor.Horizontal()
	gap := cfg.EffectiveAnchorGap()
	scale := inst.Surface.Scale
	if scale <= 0 {
		scale = 1
	}
	padding := cfg.Padding
	spacing := cfg.Spacing
	paddingScaled := float64(padding) * scale
	spacingScaled := float64(spacing) * scale
	isDock := cfg.Dock()

	var listLength, listThickness int
	if horizontal {
		listLength, listThickness = inst.Surface.Dimensions.W, inst.Surface.Dimensions.H
	} else {
		listLength, listThickness = inst.Surface.Dimensions.H, inst.Surface.Dimensions.W
	}

	makeIndicesContiguous(inst.left)
	makeIndicesContiguous(inst.center)
	makeIndicesContiguous(inst.right)

	numLists := 0
	for _, region := range [][]*AppletWindow{inst.left, inst.center, inst.right} {
		if len(region) > 0 {
			numLists++
		}
	}

	// Lengthwise region sums in physical pixels. An empty region
	// contributes spacing*(max(1,0)-1) = 0.
	regionSum := func(windows []*AppletWindow) float64 {
		sum := 0
		for _, w := range windows {
			sum += w.lengthwise(horizontal)
		}
		n := len(windows)
		if n < 1 {
			n = 1
		}
		return float64(sum)*scale + spacingScaled*float64(n-1)
	}
	leftSumScaled := regionSum(inst.left)
	centerSumScaled := regionSum(inst.center)
	rightSumScaled := regionSum(inst.right)

	maxCrosswise := 0
	for _, region := range [][]*AppletWindow{inst.left, inst.center, inst.right} {
		for _, w := range region {
			if c := w.crosswise(horizontal); c > maxCrosswise {
				maxCrosswise = c
			}
		}
	}

	totalSumScaled := leftSumScaled + centerSumScaled + rightSumScaled
	spacingLists := numLists - 1
	if spacingLists < 0 {
		spacingLists = 0
	}
	newListLength := int(totalSumScaled + paddingScaled*2 + spacingScaled*float64(spacingLists))
	newListThickness := int(2*paddingScaled + float64(maxCrosswise)*scale)

	oldActual := inst.Surface.ActualSize

	var actualPhysical geometry.Size
	if horizontal {
		actualPhysical = geometry.Size{W: newListLength, H: newListThickness}
	} else {
		actualPhysical = geometry.Size{W: newListThickness, H: newListLength}
	}
	actual := actualPhysical.ToLogical(scale)

	constrained := inst.constrainDim(actual)
	// Only the thickness axis is clamped on the content size; the length
	// axis keeps hugging the content.
	if horizontal {
		actual.H = constrained.H
	} else {
		actual.W = constrained.W
	}
	inst.Surface.ActualSize = actual

	var newLogicalLength, newLogicalThickness int
	if horizontal {
		newLogicalLength, newLogicalThickness = actual.W, actual.H
	} else {
		newLogicalLength, newLogicalThickness = actual.H, actual.W
	}

	// newDim excludes the anchor gap; the gap is added back when talking
	// to the compositor so Dimensions stays comparable across configures.
	newDim := constrained

	var newListDimLength, newListThicknessDim int
	if horizontal {
		newListDimLength, newListThicknessDim = newDim.W, newDim.H
	} else {
		newListDimLength, newListThicknessDim = newDim.H, newDim.W
	}

	panelChanged := oldActual != actual || newListThicknessDim != listThickness

	leftSum := leftSumScaled / scale
	centerSum := centerSumScaled / scale
	rightSum := rightSumScaled / scale

	containerLength := newListDimLength
	if isDock {
		containerLength = newLogicalLength
	}
	inst.Surface.ContainerLength = containerLength
	containerPos := (newListDimLength - containerLength) / 2

	if panelChanged {
		inst.updatePanelRect(containerLength, containerPos, listThickness, gap)
		surfaceDim := newDim
		if horizontal {
			surfaceDim.H += gap
		} else {
			surfaceDim.W += gap
		}
		inst.pushInputRegion(surfaceDim)
	}

	// Assign space evenly to all three lists even if some are empty; fall
	// back to proportional distribution once any region would overflow its
	// third, because even partitioning looks broken with a crowded wing.
	requestedEqLength := float64(containerLength) / 3
	var centerLeftSpacing float64
	if leftSum < requestedEqLength && centerSum < requestedEqLength && rightSum < requestedEqLength {
		centerSpacing := (requestedEqLength - centerSum) / 2
		leftSpacing := requestedEqLength - leftSum - float64(padding)
		centerLeftSpacing = leftSpacing + centerSpacing
	} else {
		centerLeftSpacing = (float64(containerLength) - leftSum - centerSum - rightSum - 2*float64(padding)) / 2
	}

	if newListThicknessDim != listThickness || newListDimLength != listLength {
		pending := newDim
		inst.Surface.Pending = &pending
		inst.dirty = true
		return ErrPendingResize
	}

	// offset for centering against the anchored edge
	marginOffset := 0
	if anchor == geometry.AnchorTop || anchor == geometry.AnchorLeft {
		marginOffset = gap
	}

	mapWindows := func(windows []*AppletWindow, prev float64) float64 {
		for _, w := range windows {
			cur := prev + float64(spacing)*float64(w.Index)
			if horizontal {
				w.Loc = geometry.Point{
					X: int(cur),
					Y: marginOffset + centerInBar(newLogicalThickness, w.Size.H),
				}
				prev += float64(w.Size.W)
			} else {
				w.Loc = geometry.Point{
					X: marginOffset + centerInBar(newLogicalThickness, w.Size.W),
					Y: int(cur),
				}
				prev += float64(w.Size.H)
			}
			if w.Minimize {
				inst.forwardMinimizeRect(w, isDock)
			}
		}
		return prev
	}

	prev := float64(containerPos) + float64(padding)
	prev = mapWindows(inst.left, prev)

	// already offset if dock: the wings fold into center there
	if len(cfg.EffectivePluginsLeft()) > 0 {
		prev += centerLeftSpacing
	}
	mapWindows(inst.center, prev)

	prevRight := float64(containerPos) + float64(containerLength) - float64(padding) - rightSum
	mapWindows(inst.right, prevRight)

	return nil
}

// updatePanelRect recomputes the rendered rectangle settings. The border
// radius is clamped to half the panel's smaller dimension, and only the
// corners on the open edges round unless an anchor gap is configured.
func (inst *Instance) updatePanelRect(containerLength, containerPos, listThickness, gap int) {
	cfg := &inst.Config
	panelSize := inst.Surface.ActualSize
	if cfg.IsHorizontal() {
		panelSize.W = containerLength
	} else {
		panelSize.H = containerLength
	}

	borderRadius := math.Min(
		float64(cfg.BorderRadius),
		math.Min(float64(panelSize.W)/2, float64(panelSize.H)/2),
	)

	var radTL, radTR, radBL, radBR float64
	anchor := cfg.AnchorEdge()
	if gap == 0 {
		switch anchor {
		case geometry.AnchorRight:
			radTL, radBL = borderRadius, borderRadius
		case geometry.AnchorLeft:
			radTR, radBR = borderRadius, borderRadius
		case geometry.AnchorBottom:
			radTL, radTR = borderRadius, borderRadius
		case geometry.AnchorTop:
			radBL, radBR = borderRadius, borderRadius
		}
	} else {
		radTL, radTR, radBL, radBR = borderRadius, borderRadius, borderRadius, borderRadius
	}

	var loc [2]float64
	switch anchor {
	case geometry.AnchorLeft:
		loc = [2]float64{float64(gap), float64(containerPos)}
	case geometry.AnchorRight:
		loc = [2]float64{0, float64(containerPos)}
	case geometry.AnchorTop:
		loc = [2]float64{float64(containerPos), float64(listThickness - gap)}
	case geometry.AnchorBottom:
		loc = [2]float64{float64(containerPos), float64(gap)}
	}

	inst.panelRect = RectSettings{
		RadTL: radTL,
		RadTR: radTR,
		RadBL: radBL,
		RadBR: radBR,
		Loc:   loc,
		Size:  [2]float64{float64(panelSize.W), float64(panelSize.H)},
	}
}

// forwardMinimizeRect emits the minimize-target rectangle for a window,
// only when it changed. Dock panels take precedence over bars.
func (inst *Instance) forwardMinimizeRect(w *AppletWindow, isDock bool) {
	side := w.Size.W
	if side < 1 {
		side = 1
	}
	newRect := geometry.Rect{
		Loc:  w.Loc,
		Size: geometry.Size{W: side, H: side},
	}
	if newRect == inst.minimizeRect {
		return
	}
	inst.minimizeRect = newRect
	if inst.minimize == nil {
		return
	}
	priority := 0
	if isDock {
		priority = 1
	}
	inst.minimize.MinimizeRect(inst.OutputName(), newRect, priority)
}

// constrainDim clamps a logical size into the configured constraint
// ranges, seeded by the output mode when no length has been suggested yet.
func (inst *Instance) constrainDim(size geometry.Size) geometry.Size {
	w, h := size.W, size.H

	var outputDims *geometry.Size
	if inst.Output != nil {
		dims := inst.Output.Mode
		outputDims = &dims
	}

	wRange, hRange := inst.Config.Dimensions(outputDims, inst.Surface.SuggestedLength)
	if wRange != nil {
		w = wRange.Clamp(w)
	}
	if hRange != nil {
		h = hRange.Clamp(h)
	}
	return geometry.Size{W: w, H: h}
}
