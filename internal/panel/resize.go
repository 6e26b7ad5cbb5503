package panel

import "github.com/bnema/ledge/internal/geometry"

// ResizeOutcome reports how a size request was handled.
type ResizeOutcome int

const (
	// ResizeAccepted means the constrained size already matches the
	// current dimensions and no negotiation was needed.
	ResizeAccepted ResizeOutcome = iota
	// ResizePending means the request was stored and will be negotiated
	// with the compositor on the next tick.
	ResizePending
)

// negotiatePending sends the pending dimensions to the compositor and
// suspends the instance until the matching configure arrives. The anchor
// gap is added on the thickness axis here, at the wire boundary, so the
// stored dimensions stay gap-free.
func (inst *Instance) negotiatePending() {
	if inst.layer == nil || inst.Surface.Pending == nil {
		return
	}
	size := *inst.Surface.Pending
	cfg := &inst.Config
	gap := cfg.EffectiveAnchorGap()

	var listThickness int
	if cfg.IsHorizontal() {
		// zero length lets the compositor stretch the surface to the
		// output in expand mode
		inst.layer.SetSize(0, size.H+gap)
		listThickness = size.H + gap
	} else {
		inst.layer.SetSize(size.W+gap, 0)
		listThickness = size.W + gap
	}

	if handle, ok := cfg.HideHandle(); ok {
		if cfg.ExclusiveZone {
			inst.layer.SetExclusiveZone(listThickness + handle)
		}
		target := handle - listThickness
		inst.setMargin(cfg.Margin, target)
	} else if cfg.ExclusiveZone {
		inst.layer.SetExclusiveZone(listThickness)
		if cfg.Margin > 0 {
			inst.setMargin(cfg.Margin, 0)
		}
	}
	inst.layer.Commit()

	inst.Surface.Pending = nil
	inst.awaitingConfigure = &size
	inst.log.Debug().
		Int("width", size.W).
		Int("height", size.H).
		Msg("resize requested")
}

// setMargin applies margins relative to the anchored edge: target goes on
// the anchor side (negative while hiding), margin on the flanking sides.
func (inst *Instance) setMargin(margin, target int) {
	if inst.layer == nil {
		return
	}
	switch inst.Config.AnchorEdge() {
	case geometry.AnchorLeft:
		inst.layer.SetMargin(margin, 0, margin, target)
	case geometry.AnchorRight:
		inst.layer.SetMargin(margin, target, margin, 0)
	case geometry.AnchorTop:
		inst.layer.SetMargin(target, margin, 0, margin)
	case geometry.AnchorBottom:
		inst.layer.SetMargin(0, margin, target, margin)
	}
}

// HandleConfigure applies a compositor configure event. Zero on an axis
// means "keep what you asked for". The first nonzero extent on the length
// axis seeds the suggested length used by later constraint passes. The
// event is acknowledged by committing, and a re-layout is scheduled.
// Repeated identical configures are harmless.
func (inst *Instance) HandleConfigure(w, h int) {
	size := inst.Surface.Dimensions
	if inst.awaitingConfigure != nil {
		size = *inst.awaitingConfigure
	}
	cfg := &inst.Config
	horizontal := cfg.IsHorizontal()
	gap := cfg.EffectiveAnchorGap()

	// The compositor sees gap-padded thickness, so the gap is stripped
	// from a thickness override before storing. Stored sizes never carry
	// the gap.
	if w != 0 {
		if horizontal {
			size.W = w
			if inst.Surface.SuggestedLength == nil {
				suggested := w
				inst.Surface.SuggestedLength = &suggested
			}
		} else {
			size.W = w - gap
		}
	}
	if h != 0 {
		if horizontal {
			size.H = h - gap
		} else {
			size.H = h
			if inst.Surface.SuggestedLength == nil {
				suggested := h
				inst.Surface.SuggestedLength = &suggested
			}
		}
	}
	if size.W < 1 {
		size.W = 1
	}
	if size.H < 1 {
		size.H = 1
	}

	inst.Surface.Dimensions = size
	inst.awaitingConfigure = nil
	inst.dirty = true
	if inst.layer != nil {
		inst.layer.Commit()
	}
	inst.log.Debug().
		Int("width", size.W).
		Int("height", size.H).
		Msg("configure applied")
}

// RequestSize asks for new surface dimensions. The size is constrained
// first; if it already matches the current dimensions and nothing is in
// flight the request is accepted immediately.
func (inst *Instance) RequestSize(desired geometry.Size) ResizeOutcome {
	constrained := inst.constrainDim(desired)
	if constrained == inst.Surface.Dimensions && inst.Surface.Pending == nil && inst.awaitingConfigure == nil {
		return ResizeAccepted
	}
	if inst.Surface.Pending != nil && *inst.Surface.Pending == constrained {
		return ResizePending
	}
	pending := constrained
	inst.Surface.Pending = &pending
	inst.dirty = true
	return ResizePending
}

// SetScale updates the output scale factor and schedules a re-layout.
func (inst *Instance) SetScale(scale float64) {
	if scale <= 0 || scale == inst.Surface.Scale {
		return
	}
	inst.Surface.Scale = scale
	inst.dirty = true
}
