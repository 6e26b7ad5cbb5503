package panel

import (
	"sort"

	"github.com/bnema/ledge/internal/geometry"
)

// AppletWindow is a region-tagged applet surface hosted by a panel. The
// instance's window collection owns it exclusively; Loc is the placement
// output of the most recent layout pass.
type AppletWindow struct {
	// Name matches the plugin name from the panel configuration.
	Name string
	// Region places the window in the left, center, or right list.
	Region geometry.Alignment
	// Index is the stable ordering position within the region. Renumbered
	// to stay contiguous whenever windows are added or removed.
	Index int
	// Size is the window's current bounding size in logical pixels,
	// reported by the window itself.
	Size geometry.Size
	// Minimize marks this window as the minimize target for its output.
	Minimize bool
	// Loc is the computed placement within the panel surface.
	Loc geometry.Point
}

// lengthwise returns the window dimension along the panel's length axis.
func (w *AppletWindow) lengthwise(horizontal bool) int {
	if horizontal {
		return w.Size.W
	}
	return w.Size.H
}

// crosswise returns the window dimension across the panel's thickness.
func (w *AppletWindow) crosswise(horizontal bool) int {
	if horizontal {
		return w.Size.H
	}
	return w.Size.W
}

// makeIndicesContiguous sorts windows by index and reassigns 0..N.
func makeIndicesContiguous(windows []*AppletWindow) {
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Index < windows[j].Index
	})
	for j, w := range windows {
		w.Index = j
	}
}
