// Package minimize tracks minimize-target rectangles per output and
// forwards the winning rectangle downstream. Several panels on one output
// may each nominate a target; the highest-priority live nomination wins.
package minimize

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/ledge/internal/geometry"
)

// Forwarder receives the resolved minimize rectangle for an output
// whenever it changes.
type Forwarder interface {
	ForwardRect(output string, rect geometry.Rect)
}

// ForwarderFunc adapts a function to the Forwarder interface.
type ForwarderFunc func(output string, rect geometry.Rect)

func (f ForwarderFunc) ForwardRect(output string, rect geometry.Rect) {
	f(output, rect)
}

type holder struct {
	instance uuid.UUID
	rect     geometry.Rect
	priority int
}

// Tracker resolves competing minimize-target nominations per output.
type Tracker struct {
	mu      sync.Mutex
	holders map[string]holder
	fwd     Forwarder
	log     zerolog.Logger
}

// NewTracker creates a tracker forwarding resolved rectangles to fwd.
func NewTracker(fwd Forwarder, log zerolog.Logger) *Tracker {
	return &Tracker{
		holders: make(map[string]holder),
		fwd:     fwd,
		log:     log.With().Str("component", "minimize").Logger(),
	}
}

// Nominate offers a rectangle for an output on behalf of an instance. The
// nomination wins when it comes from the current holder (a moved target),
// or carries a strictly higher priority. Winning nominations that change
// the rectangle are forwarded.
func (t *Tracker) Nominate(output string, instance uuid.UUID, rect geometry.Rect, priority int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.holders[output]
	if ok && cur.instance != instance && cur.priority >= priority {
		return
	}
	changed := !ok || cur.rect != rect
	t.holders[output] = holder{instance: instance, rect: rect, priority: priority}
	if changed {
		t.forwardLocked(output, rect)
	}
}

// Release withdraws an instance's nominations, used when its panel is torn
// down. The output keeps no rectangle until another panel nominates one.
func (t *Tracker) Release(instance uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for output, cur := range t.holders {
		if cur.instance == instance {
			delete(t.holders, output)
			t.forwardLocked(output, geometry.Rect{})
		}
	}
}

// DropOutput forgets the state for an output that disappeared.
func (t *Tracker) DropOutput(output string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.holders, output)
}

// Current returns the resolved rectangle for an output, if any.
func (t *Tracker) Current(output string) (geometry.Rect, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.holders[output]
	if !ok {
		return geometry.Rect{}, false
	}
	return cur.rect, true
}

func (t *Tracker) forwardLocked(output string, rect geometry.Rect) {
	if t.fwd == nil {
		return
	}
	t.log.Debug().
		Str("output", output).
		Int("x", rect.Loc.X).
		Int("y", rect.Loc.Y).
		Int("w", rect.Size.W).
		Int("h", rect.Size.H).
		Msg("minimize rect forwarded")
	t.fwd.ForwardRect(output, rect)
}

// Sink binds the tracker to a specific instance so the panel package can
// report rectangles without knowing about nominations.
type Sink struct {
	tracker  *Tracker
	instance uuid.UUID
}

// SinkFor returns a per-instance sink.
func (t *Tracker) SinkFor(instance uuid.UUID) *Sink {
	return &Sink{tracker: t, instance: instance}
}

// MinimizeRect implements the panel package's sink interface.
func (s *Sink) MinimizeRect(output string, rect geometry.Rect, priority int) {
	s.tracker.Nominate(output, s.instance, rect, priority)
}
