package orchestrator

import (
	"github.com/rs/zerolog"

	"github.com/bnema/ledge/internal/geometry"
	"github.com/bnema/ledge/internal/panel"
)

// HeadlessFactory backs instances with surfaces that only record and log
// the requested state. It is the backend for development runs and tests;
// a compositor backend implements the same interfaces out of tree.
type HeadlessFactory struct {
	log zerolog.Logger
}

// NewHeadlessFactory creates a factory logging wire calls at trace level.
func NewHeadlessFactory(log zerolog.Logger) *HeadlessFactory {
	return &HeadlessFactory{log: log.With().Str("component", "headless").Logger()}
}

func (f *HeadlessFactory) Create(inst *panel.Instance) (panel.LayerSurface, panel.PopupRegistry, error) {
	log := f.log.With().Str("panel", inst.Config.Name).Logger()
	return &headlessSurface{log: log, inst: inst}, &headlessPopups{}, nil
}

func (f *HeadlessFactory) Destroy(inst *panel.Instance) {
	f.log.Debug().Str("panel", inst.Config.Name).Msg("surface destroyed")
}

// headlessSurface records the last requested surface state and plays the
// compositor's half of the resize handshake: a committed size request is
// acknowledged with a configure on the instance's next tick.
type headlessSurface struct {
	log       zerolog.Logger
	inst      *panel.Instance
	size      geometry.Size
	acked     geometry.Size
	exclusive int
	margins   [4]int
	region    []geometry.Rect
	commits   int
}

func (s *headlessSurface) SetSize(w, h int) {
	s.size = geometry.Size{W: w, H: h}
}

func (s *headlessSurface) SetExclusiveZone(zone int) {
	s.exclusive = zone
}

func (s *headlessSurface) SetMargin(top, right, bottom, left int) {
	s.margins = [4]int{top, right, bottom, left}
}

func (s *headlessSurface) SetInputRegion(rects []geometry.Rect) {
	s.region = rects
}

func (s *headlessSurface) Commit() {
	s.commits++
	s.log.Trace().
		Int("width", s.size.W).
		Int("height", s.size.H).
		Int("exclusive", s.exclusive).
		Ints("margins", s.margins[:]).
		Int("commit", s.commits).
		Msg("surface committed")

	// Echo an unchanged configure for a newly committed size. The zero
	// length axis stays zero, which the instance reads as "keep the
	// requested extent". Delivered on the next tick, not synchronously:
	// the commit happens mid-negotiation and a real compositor replies
	// asynchronously too.
	if s.size != s.acked {
		s.acked = s.size
		ack := s.size
		s.inst.Enqueue(func(inst *panel.Instance) {
			inst.HandleConfigure(ack.W, ack.H)
		})
	}
}

type headlessPopups struct{}

func (p *headlessPopups) Open() []string { return nil }
func (p *headlessPopups) CloseAll()      {}
