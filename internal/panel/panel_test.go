package panel

import (
	"github.com/rs/zerolog"

	"github.com/bnema/ledge/internal/config"
	"github.com/bnema/ledge/internal/geometry"
)

// fakeLayer records the last requested surface state and counts commits.
type fakeLayer struct {
	size      geometry.Size
	exclusive int
	margins   [4]int
	region    []geometry.Rect
	commits   int
}

func (l *fakeLayer) SetSize(w, h int)                     { l.size = geometry.Size{W: w, H: h} }
func (l *fakeLayer) SetExclusiveZone(zone int)            { l.exclusive = zone }
func (l *fakeLayer) SetMargin(top, right, bottom, left int) {
	l.margins = [4]int{top, right, bottom, left}
}
func (l *fakeLayer) SetInputRegion(rects []geometry.Rect) { l.region = rects }
func (l *fakeLayer) Commit()                              { l.commits++ }

// fakePopups counts close requests.
type fakePopups struct {
	open   []string
	closed int
}

func (p *fakePopups) Open() []string { return p.open }
func (p *fakePopups) CloseAll()      { p.closed++ }

func testPalette() config.Palette {
	return config.Palette{
		IsDark: true,
		Dark:   config.RGBA{0.1, 0.1, 0.1, 1},
		Light:  config.RGBA{0.9, 0.9, 0.9, 1},
	}
}

func barConfig() config.PanelConfig {
	return config.PanelConfig{
		Name:          "panel",
		Anchor:        "Top",
		Size:          "M",
		Output:        "All",
		Background:    "theme-default",
		PluginsLeft:   []string{"launcher"},
		PluginsCenter: []string{"tasks"},
		PluginsRight:  []string{"clock"},
		ExpandToEdges: true,
		Padding:       4,
		Spacing:       4,
		BorderRadius:  8,
		ExclusiveZone: true,
		Opacity:       0.8,
	}
}

func testOutput() *Output {
	return &Output{Name: "DP-1", Mode: geometry.Size{W: 1920, H: 1080}}
}

// newTestInstance builds an instance wired to fakes.
func newTestInstance(cfg config.PanelConfig) (*Instance, *fakeLayer, *fakePopups) {
	inst := NewInstance(cfg, testOutput(), testPalette(), zerolog.Nop())
	layer := &fakeLayer{}
	popups := &fakePopups{}
	inst.AttachSurface(layer, nil, popups)
	return inst, layer, popups
}

func window(name string, region geometry.Alignment, index, w, h int) *AppletWindow {
	return &AppletWindow{
		Name:   name,
		Region: region,
		Index:  index,
		Size:   geometry.Size{W: w, H: h},
	}
}

// settle runs the layout/resize/configure handshake until the instance
// stops asking for new dimensions.
func settle(inst *Instance) error {
	for i := 0; i < 8; i++ {
		err := inst.Layout()
		if err == nil {
			inst.dirty = false
			return nil
		}
		if err != ErrPendingResize {
			return err
		}
		inst.negotiatePending()
		pending := *inst.awaitingConfigure
		gap := inst.Config.EffectiveAnchorGap()
		if inst.Config.IsHorizontal() {
			inst.HandleConfigure(pending.W, pending.H+gap)
		} else {
			inst.HandleConfigure(pending.W+gap, pending.H)
		}
	}
	return ErrPendingResize
}
