package panel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ledge/internal/config"
	"github.com/bnema/ledge/internal/geometry"
)

func autohideConfig() config.PanelConfig {
	cfg := barConfig()
	ah := config.DefaultAutoHide() // wait 1000ms, transition 200ms, handle 4
	cfg.AutoHide = &ah
	return cfg
}

// newAutohideInstance returns an instance with settled dimensions so the
// state machine works against a known thickness of 28.
func newAutohideInstance(t *testing.T) (*Instance, *fakeLayer, *fakePopups) {
	t.Helper()
	inst, layer, popups := newTestInstance(autohideConfig())
	inst.Surface.Dimensions = geometry.Size{W: 1920, H: 28}
	return inst, layer, popups
}

func focused() Focus {
	return Focus{State: FocusFocused}
}

func lostAt(at time.Time) Focus {
	return Focus{State: FocusLost, At: at}
}

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestInitialVisibility(t *testing.T) {
	cfg := barConfig()
	assert.Equal(t, StateVisible, initialVisibility(&cfg).State)

	ah := config.DefaultAutoHide()
	cfg.AutoHide = &ah
	assert.Equal(t, StateHidden, initialVisibility(&cfg).State)
}

func TestNoAutohideStaysVisible(t *testing.T) {
	inst, layer, _ := newTestInstance(barConfig())
	inst.handleFocus(base, lostAt(base.Add(-time.Hour)))
	assert.Equal(t, StateVisible, inst.Visibility.State)
	assert.Equal(t, 0, layer.commits)
}

func TestHiddenShowsOnFocus(t *testing.T) {
	inst, _, _ := newAutohideInstance(t)
	require.Equal(t, StateHidden, inst.Visibility.State)

	// focus loss keeps it hidden
	inst.handleFocus(base, lostAt(base))
	assert.Equal(t, StateHidden, inst.Visibility.State)

	inst.handleFocus(base, focused())
	assert.Equal(t, StateTransitionToVisible, inst.Visibility.State)
	// the transition starts from the retracted margin, -28+4
	assert.Equal(t, -24, inst.Visibility.PrevMargin)
}

func TestShowTransitionEasesAndSettles(t *testing.T) {
	inst, layer, _ := newAutohideInstance(t)
	inst.handleFocus(base, focused())

	// a quarter into a 200ms transition the margin follows the S-curve,
	// not the straight line: (1-smootherstep(0.25)) * -24 = -20.25,
	// truncated to -20 (linear would give -18)
	inst.handleFocus(base.Add(50*time.Millisecond), focused())
	assert.Equal(t, [4]int{-20, 0, 0, 0}, layer.margins)
	assert.Equal(t, 28-20, layer.exclusive)

	// halfway through the eased margin is smootherstep(0.5) * -24 away
	// from fully shown
	inst.handleFocus(base.Add(100*time.Millisecond), focused())
	assert.Equal(t, [4]int{-12, 0, 0, 0}, layer.margins)
	assert.Equal(t, 28-12, layer.exclusive)

	inst.handleFocus(base.Add(201*time.Millisecond), focused())
	assert.Equal(t, StateVisible, inst.Visibility.State)
	assert.Equal(t, [4]int{0, 0, 0, 0}, layer.margins)
	assert.Equal(t, 28, layer.exclusive)
	assert.Equal(t, 0, inst.Visibility.PrevMargin)
}

func TestVisibleHidesAfterWait(t *testing.T) {
	inst, layer, popups := newAutohideInstance(t)
	inst.Visibility = Visibility{State: StateVisible}

	// focus lost, but the wait time has not elapsed
	inst.handleFocus(base.Add(500*time.Millisecond), lostAt(base))
	assert.Equal(t, StateVisible, inst.Visibility.State)

	inst.handleFocus(base.Add(1001*time.Millisecond), lostAt(base))
	assert.Equal(t, StateTransitionToHidden, inst.Visibility.State)
	// leaving full visibility closes popups
	assert.Equal(t, 1, popups.closed)

	start := base.Add(1001 * time.Millisecond)
	inst.handleFocus(start.Add(100*time.Millisecond), lostAt(base))
	assert.Equal(t, [4]int{-12, 0, 0, 0}, layer.margins)

	inst.handleFocus(start.Add(250*time.Millisecond), lostAt(base))
	assert.Equal(t, StateHidden, inst.Visibility.State)
	assert.Equal(t, [4]int{-24, 0, 0, 0}, layer.margins)
	// only the handle strip keeps reserved space
	assert.Equal(t, 4, layer.exclusive)
}

func TestReversalIsSeamless(t *testing.T) {
	inst, layer, _ := newAutohideInstance(t)
	inst.Visibility = Visibility{State: StateTransitionToHidden, LastInstant: base}

	// 100ms into hiding the margin is -12
	inst.handleFocus(base.Add(100*time.Millisecond), lostAt(base.Add(-2*time.Second)))
	require.Equal(t, [4]int{-12, 0, 0, 0}, layer.margins)
	commits := layer.commits

	// focus returns: the transition flips, mirroring elapsed time
	now := base.Add(110 * time.Millisecond)
	inst.handleFocus(now, focused())
	assert.Equal(t, StateTransitionToVisible, inst.Visibility.State)
	assert.Equal(t, 100*time.Millisecond, inst.Visibility.Progress)

	// advancing zero time lands on the same margin, so nothing commits
	inst.handleFocus(now, focused())
	assert.Equal(t, [4]int{-12, 0, 0, 0}, layer.margins)
	assert.Equal(t, commits, layer.commits)

	// and it continues smoothly toward fully shown
	inst.handleFocus(now.Add(101*time.Millisecond), focused())
	assert.Equal(t, StateVisible, inst.Visibility.State)
}

func TestShowReversesToHide(t *testing.T) {
	inst, _, popups := newAutohideInstance(t)
	inst.Visibility = Visibility{
		State:       StateTransitionToVisible,
		LastInstant: base,
		PrevMargin:  -24,
	}
	inst.handleFocus(base.Add(50*time.Millisecond), focused())

	// focus lost long enough mid-show flips it back
	inst.handleFocus(base.Add(60*time.Millisecond), lostAt(base.Add(-2*time.Second)))
	assert.Equal(t, StateTransitionToHidden, inst.Visibility.State)
	assert.Equal(t, 150*time.Millisecond, inst.Visibility.Progress)
	assert.Equal(t, 1, popups.closed)
}

func TestUpdateConfigDroppingAutohideForcesVisible(t *testing.T) {
	inst, _, _ := newAutohideInstance(t)
	require.Equal(t, StateHidden, inst.Visibility.State)

	inst.UpdateConfig(barConfig(), testPalette())
	assert.Equal(t, StateVisible, inst.Visibility.State)
}

func TestHandleTickDispatchOrder(t *testing.T) {
	// a pending resize suspends layout and visibility for the tick
	inst, layer, _ := newTestInstance(autohideConfig())
	inst.AddWindow(window("a", geometry.AlignLeft, 0, 40, 20))

	require.NoError(t, inst.HandleTick(base, focused()))
	// first tick: layout hit a size boundary and negotiated a resize
	require.NotNil(t, inst.awaitingConfigure)
	assert.Equal(t, StateHidden, inst.Visibility.State)

	// configure ack arrives, next tick lays out and runs visibility
	inst.HandleConfigure(1920, 28)
	require.NoError(t, inst.HandleTick(base.Add(time.Millisecond), focused()))
	assert.Equal(t, StateTransitionToVisible, inst.Visibility.State)
	assert.NotZero(t, layer.commits)
}

func TestEnqueueRunsBeforeTick(t *testing.T) {
	inst, _, _ := newTestInstance(barConfig())
	var ran bool
	inst.Enqueue(func(i *Instance) {
		ran = true
		assert.Same(t, inst, i)
	})
	require.NoError(t, inst.HandleTick(base, focused()))
	assert.True(t, ran)
}
