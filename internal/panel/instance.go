// Package panel implements the per-surface panel state: applet window
// regions, the layout engine, the resize handshake with the compositor, the
// autohide state machine, and input region derivation.
//
// All mutation happens on the orchestrator's event loop; nothing here is
// safe for concurrent use.
package panel

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/ledge/internal/config"
	"github.com/bnema/ledge/internal/geometry"
)

var (
	// ErrPendingResize signals that layout hit a size-class boundary and
	// stored pending dimensions instead of placing windows. It is a retry
	// condition, not a failure: the caller aborts the remaining stages of
	// the tick and resumes after the compositor acknowledges the resize.
	ErrPendingResize = errors.New("panel: resize pending, layout aborted")

	// ErrSurfaceNotReady is returned when layout runs before the layer
	// surface resources exist.
	ErrSurfaceNotReady = errors.New("panel: layer surface not ready")
)

// Output describes the output an instance is bound to.
type Output struct {
	Name string
	// Mode is the output's current mode dimensions in physical pixels.
	Mode geometry.Size
}

// Instance is one live panel: a configuration bound to an output, its
// surface state, visibility state, and the applet windows it hosts.
type Instance struct {
	ID     uuid.UUID
	Config config.PanelConfig
	Output *Output

	Surface    SurfaceState
	Visibility Visibility

	left   []*AppletWindow
	center []*AppletWindow
	right  []*AppletWindow

	layer    LayerSurface
	minimize MinimizeSink
	popups   PopupRegistry

	// dirty marks a pending re-layout.
	dirty bool
	// awaitingConfigure holds the size sent to the compositor until the
	// matching configure acknowledgment arrives.
	awaitingConfigure *geometry.Size

	bgColor      config.RGBA
	panelRect    RectSettings
	minimizeRect geometry.Rect

	queue []func(*Instance)

	log zerolog.Logger
}

// NewInstance creates a panel instance for the given config and output.
// The output may be nil for Active-targeted panels until one is resolved.
func NewInstance(cfg config.PanelConfig, output *Output, palette config.Palette, log zerolog.Logger) *Instance {
	inst := &Instance{
		ID:      uuid.New(),
		Config:  cfg,
		Output:  output,
		bgColor: cfg.BackgroundColor(palette),
		Surface: SurfaceState{Scale: 1.0},
		dirty:   true,
	}
	inst.Visibility = initialVisibility(&cfg)
	inst.log = log.With().
		Str("panel", cfg.Name).
		Str("output", inst.OutputName()).
		Stringer("instance", inst.ID).
		Logger()
	return inst
}

// OutputName returns the bound output's name, or "" when unbound.
func (inst *Instance) OutputName() string {
	if inst.Output == nil {
		return ""
	}
	return inst.Output.Name
}

// AttachSurface wires the compositor-facing collaborators. Layout fails
// with ErrSurfaceNotReady until this has been called.
func (inst *Instance) AttachSurface(layer LayerSurface, minimize MinimizeSink, popups PopupRegistry) {
	inst.layer = layer
	inst.minimize = minimize
	inst.popups = popups
	inst.dirty = true
}

// BackgroundColor returns the derived background color.
func (inst *Instance) BackgroundColor() config.RGBA {
	return inst.bgColor
}

// SetThemeColor re-resolves the background when the theme palette changes.
func (inst *Instance) SetThemeColor(palette config.Palette) {
	inst.bgColor = inst.Config.BackgroundColor(palette)
	inst.dirty = true
}

// UpdateConfig replaces the configuration in place. Only called by the
// orchestrator after it has decided recreation is not required.
func (inst *Instance) UpdateConfig(cfg config.PanelConfig, palette config.Palette) {
	inst.Config = cfg
	inst.bgColor = cfg.BackgroundColor(palette)
	if cfg.AutoHide == nil {
		inst.Visibility = Visibility{State: StateVisible}
	}
	inst.dirty = true
}

// Dirty reports whether a re-layout is pending. Rendering collaborators
// poll this before drawing.
func (inst *Instance) Dirty() bool {
	return inst.dirty
}

// PendingDimensions returns the dimensions of an unacknowledged resize
// request, if any.
func (inst *Instance) PendingDimensions() (geometry.Size, bool) {
	if inst.Surface.Pending == nil {
		return geometry.Size{}, false
	}
	return *inst.Surface.Pending, true
}

// PanelRect returns the last computed panel rectangle settings, used by the
// rendering collaborator for the rounded background.
func (inst *Instance) PanelRect() RectSettings {
	return inst.panelRect
}

// Enqueue schedules fn to run on the instance at the start of its next
// tick. This is the channel for cross-component signals (e.g. an overflow
// popup toggle) that would otherwise be shared mutable flags.
func (inst *Instance) Enqueue(fn func(*Instance)) {
	inst.queue = append(inst.queue, fn)
}

// MarkDirty requests a re-layout on the next tick.
func (inst *Instance) MarkDirty() {
	inst.dirty = true
}

// HandleTick runs one cooperative pass over the instance, in stage order:
// resize negotiation, layout, input region, then visibility. A pending
// resize aborts the remaining stages for this tick only.
func (inst *Instance) HandleTick(now time.Time, focus Focus) error {
	if len(inst.queue) > 0 {
		pending := inst.queue
		inst.queue = nil
		for _, fn := range pending {
			fn(inst)
		}
	}

	switch {
	case inst.awaitingConfigure != nil:
		// Suspended until the compositor acknowledges; outcomes are
		// idempotent so repeated configures are harmless.
	case inst.Surface.Pending != nil:
		inst.negotiatePending()
		return nil
	case inst.dirty && inst.layer != nil:
		if err := inst.Layout(); err != nil {
			if errors.Is(err, ErrPendingResize) {
				inst.negotiatePending()
				return nil
			}
			return err
		}
		inst.dirty = false
	}

	inst.handleFocus(now, focus)
	return nil
}

// windowsFor returns the window list for a region.
func (inst *Instance) windowsFor(region geometry.Alignment) *[]*AppletWindow {
	switch region {
	case geometry.AlignLeft:
		return &inst.left
	case geometry.AlignRight:
		return &inst.right
	default:
		return &inst.center
	}
}

// AddWindow inserts an applet window into its region and renumbers the
// region to keep indices contiguous.
func (inst *Instance) AddWindow(w *AppletWindow) {
	list := inst.windowsFor(w.Region)
	*list = append(*list, w)
	makeIndicesContiguous(*list)
	inst.dirty = true
}

// RemoveWindow drops the named window, renumbering its region.
func (inst *Instance) RemoveWindow(name string) bool {
	for _, region := range []geometry.Alignment{geometry.AlignLeft, geometry.AlignCenter, geometry.AlignRight} {
		list := inst.windowsFor(region)
		for i, w := range *list {
			if w.Name == name {
				*list = append((*list)[:i], (*list)[i+1:]...)
				makeIndicesContiguous(*list)
				inst.dirty = true
				return true
			}
		}
	}
	return false
}

// Windows returns the windows of a region in index order.
func (inst *Instance) Windows(region geometry.Alignment) []*AppletWindow {
	return *inst.windowsFor(region)
}

// SetWindowSize records a window's self-reported bounding size.
func (inst *Instance) SetWindowSize(name string, size geometry.Size) bool {
	for _, region := range []geometry.Alignment{geometry.AlignLeft, geometry.AlignCenter, geometry.AlignRight} {
		for _, w := range *inst.windowsFor(region) {
			if w.Name == name {
				if w.Size != size {
					w.Size = size
					inst.dirty = true
				}
				return true
			}
		}
	}
	return false
}

// SurfaceIDs lists the surface identifiers focus signals may arrive on:
// the panel surface itself plus any open popups.
func (inst *Instance) SurfaceIDs() []string {
	ids := []string{inst.ID.String()}
	if inst.popups != nil {
		ids = append(ids, inst.popups.Open()...)
	}
	return ids
}
