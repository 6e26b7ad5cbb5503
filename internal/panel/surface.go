package panel

import (
	"time"

	"github.com/bnema/ledge/internal/geometry"
)

// LayerSurface is the compositor-facing handle for a panel surface. The
// wire-level implementation lives outside this package; tests use fakes.
type LayerSurface interface {
	// SetSize requests new surface dimensions. Zero on an axis lets the
	// compositor pick (used for the length axis of anchored surfaces).
	SetSize(w, h int)
	// SetExclusiveZone reserves edge space other windows must not overlap.
	SetExclusiveZone(zone int)
	// SetMargin sets the surface margins clockwise from the top edge.
	SetMargin(top, right, bottom, left int)
	// SetInputRegion replaces the clickable region of the surface.
	SetInputRegion(rects []geometry.Rect)
	// Commit atomically applies all pending surface state.
	Commit()
}

// MinimizeSink receives minimize-target rectangles. Emitted only when a
// minimize-tagged window's placement changes.
type MinimizeSink interface {
	MinimizeRect(output string, rect geometry.Rect, priority int)
}

// PopupRegistry tracks the popups belonging to a panel so the visibility
// controller can close them when the panel leaves full visibility.
type PopupRegistry interface {
	// Open returns the surface ids of currently open popups.
	Open() []string
	// CloseAll requests every open popup to close.
	CloseAll()
}

// SurfaceState is the mutable geometry of a panel surface.
type SurfaceState struct {
	// Dimensions are the current logical surface dimensions, as last
	// acknowledged by the compositor.
	Dimensions geometry.Size
	// ActualSize is the content-driven size before gap and margin padding.
	// It always lies within the thickness range of the configured size
	// class, less padding.
	ActualSize geometry.Size
	// Pending holds requested dimensions until the compositor acknowledges
	// the resize.
	Pending *geometry.Size
	// SuggestedLength is the compositor-proposed extent along the length
	// axis, seeded by the first nonzero configure.
	SuggestedLength *int
	// Scale is the output scale factor.
	Scale float64
	// ContainerLength is the lengthwise extent actually occupied, which
	// may differ from the surface length in dock mode.
	ContainerLength int
}

// RectSettings describes the rendered panel rectangle handed to the
// drawing collaborator: location, size, and per-corner radii. Corners on
// the anchored edge stay square unless an anchor gap is configured.
type RectSettings struct {
	RadTL, RadTR, RadBL, RadBR float64
	Loc                        [2]float64
	Size                       [2]float64
}

// FocusState distinguishes an actively focused surface from one whose
// focus was lost at a known time.
type FocusState int

const (
	FocusFocused FocusState = iota
	FocusLost
)

// Focus is the folded focus/hover status for an instance's surfaces.
type Focus struct {
	State FocusState
	// At is the time focus was last held; meaningful when State is
	// FocusLost.
	At time.Time
}

// FocusTracker folds per-surface focus/hover signals into a single status
// per queried surface set. It mirrors the compositor's focus stream: each
// signal carries a surface id and either "focused now" or "last focused at
// t".
type FocusTracker struct {
	statuses map[string]Focus
	start    time.Time
}

// NewFocusTracker creates a tracker; start seeds the fallback timestamp
// for surfaces that have never been focused.
func NewFocusTracker(start time.Time) *FocusTracker {
	return &FocusTracker{
		statuses: make(map[string]Focus),
		start:    start,
	}
}

// Update records a focus signal for a surface.
func (t *FocusTracker) Update(surface string, f Focus) {
	t.statuses[surface] = f
}

// Forget drops a surface from the tracker.
func (t *FocusTracker) Forget(surface string) {
	delete(t.statuses, surface)
}

// Query folds the status of the given surfaces: focused wins over lost,
// and among lost surfaces the most recent timestamp wins.
func (t *FocusTracker) Query(surfaces []string) Focus {
	acc := Focus{State: FocusLost, At: t.start}
	for _, s := range surfaces {
		f, ok := t.statuses[s]
		if !ok {
			continue
		}
		if f.State == FocusFocused {
			return f
		}
		if f.At.After(acc.At) {
			acc = f
		}
	}
	return acc
}
