package panel

import (
	"time"

	"github.com/bnema/ledge/internal/config"
	"github.com/bnema/ledge/internal/geometry"
)

// VisibilityState is the autohide state of a panel surface.
type VisibilityState int

const (
	// StateVisible is the fully shown, settled state. Panels without
	// autohide stay here permanently.
	StateVisible VisibilityState = iota
	// StateHidden is the fully retracted state; only the handle strip
	// remains on screen.
	StateHidden
	// StateTransitionToVisible slides the panel in.
	StateTransitionToVisible
	// StateTransitionToHidden slides the panel out.
	StateTransitionToHidden
)

// String implements fmt.Stringer for log fields.
func (s VisibilityState) String() string {
	switch s {
	case StateVisible:
		return "visible"
	case StateHidden:
		return "hidden"
	case StateTransitionToVisible:
		return "transition-to-visible"
	case StateTransitionToHidden:
		return "transition-to-hidden"
	default:
		return "unknown"
	}
}

// Visibility carries the autohide state machine's mutable state. During
// transitions Progress accumulates wall time and PrevMargin remembers the
// last committed anchor margin so unchanged frames skip the commit.
type Visibility struct {
	State       VisibilityState
	LastInstant time.Time
	Progress    time.Duration
	PrevMargin  int
}

// initialVisibility picks the starting state: autohide panels spawn hidden
// and slide in on first focus, others are visible from the start.
func initialVisibility(cfg *config.PanelConfig) Visibility {
	if cfg.AutoHide != nil {
		return Visibility{State: StateHidden}
	}
	return Visibility{State: StateVisible}
}

// hiddenMargin is the anchor-side margin that retracts the panel to its
// handle. dims is gap-free; the retraction distance is measured from the
// surface's own thickness.
func (inst *Instance) hiddenMargin(handle int) int {
	var thickness int
	if inst.Config.IsHorizontal() {
		thickness = inst.Surface.Dimensions.H
	} else {
		thickness = inst.Surface.Dimensions.W
	}
	return -thickness + handle
}

// panelSize is the on-screen thickness of the surface including the
// anchor gap, matching what the compositor was told at resize time.
func (inst *Instance) panelSize() int {
	gap := inst.Config.EffectiveAnchorGap()
	if inst.Config.IsHorizontal() {
		return inst.Surface.Dimensions.H + gap
	}
	return inst.Surface.Dimensions.W + gap
}

// handleFocus advances the autohide state machine one step. Focus on any
// of the panel's surfaces shows it; losing focus for longer than the
// configured wait time hides it. Transitions reverse mid-flight without a
// visual jump by mirroring the elapsed time.
func (inst *Instance) handleFocus(now time.Time, focus Focus) {
	if inst.layer == nil {
		return
	}
	cfg := &inst.Config
	if cfg.AutoHide == nil {
		inst.Visibility.State = StateVisible
		return
	}
	wait, _ := cfg.HideWait()
	handle, _ := cfg.HideHandle()

	switch inst.Visibility.State {
	case StateVisible:
		if focus.State == FocusLost && now.Sub(focus.At) > wait {
			inst.log.Debug().Stringer("state", StateTransitionToHidden).Msg("autohide")
			inst.closePopups()
			inst.Visibility = Visibility{
				State:       StateTransitionToHidden,
				LastInstant: now,
			}
		}
	case StateHidden:
		if focus.State == FocusFocused {
			inst.log.Debug().Stringer("state", StateTransitionToVisible).Msg("autohide")
			inst.Visibility = Visibility{
				State:       StateTransitionToVisible,
				LastInstant: now,
				PrevMargin:  inst.hiddenMargin(handle),
			}
		}
	case StateTransitionToHidden:
		inst.stepHide(now, focus)
	case StateTransitionToVisible:
		inst.stepShow(now, focus)
	}
}

// closePopups dismisses open popups; a panel leaving full visibility must
// not leave detached popups floating.
func (inst *Instance) closePopups() {
	if inst.popups != nil {
		inst.popups.CloseAll()
	}
}

// reverseTransition flips a transition mid-flight. Mirroring the elapsed
// time against the total duration keeps the panel at the same on-screen
// position, so the reversal is seamless.
func (inst *Instance) reverseTransition(now time.Time, to VisibilityState, total time.Duration) {
	progress := total - inst.Visibility.Progress
	if progress < 0 {
		progress = 0
	}
	inst.Visibility = Visibility{
		State:       to,
		LastInstant: now,
		Progress:    progress,
		PrevMargin:  inst.Visibility.PrevMargin,
	}
}

// stepHide advances one frame of the hide transition.
func (inst *Instance) stepHide(now time.Time, focus Focus) {
	cfg := &inst.Config
	total, _ := cfg.HideTransition()
	handle, _ := cfg.HideHandle()

	if focus.State == FocusFocused {
		inst.reverseTransition(now, StateTransitionToVisible, total)
		return
	}

	inst.Visibility.Progress += now.Sub(inst.Visibility.LastInstant)
	inst.Visibility.LastInstant = now
	progress := inst.Visibility.Progress

	panelSize := inst.panelSize()
	target := -panelSize + handle

	if progress > total {
		if cfg.ExclusiveZone {
			inst.layer.SetExclusiveZone(panelSize + target)
		}
		inst.setMargin(cfg.Margin, target)
		inst.layer.Commit()
		inst.Visibility = Visibility{State: StateHidden, PrevMargin: target}
		inst.log.Debug().Stringer("state", StateHidden).Msg("autohide")
		return
	}

	norm := geometry.Smootherstep(float64(progress) / float64(total))
	cur := int(norm * float64(target))
	if inst.Visibility.PrevMargin != cur {
		if cfg.ExclusiveZone {
			inst.layer.SetExclusiveZone(panelSize + cur)
		}
		inst.setMargin(cfg.Margin, cur)
		inst.layer.Commit()
		inst.Visibility.PrevMargin = cur
	}
}

// stepShow advances one frame of the show transition.
func (inst *Instance) stepShow(now time.Time, focus Focus) {
	cfg := &inst.Config
	total, _ := cfg.HideTransition()
	handle, _ := cfg.HideHandle()
	wait, _ := cfg.HideWait()

	if focus.State == FocusLost && now.Sub(focus.At) > wait {
		inst.closePopups()
		inst.reverseTransition(now, StateTransitionToHidden, total)
		return
	}

	inst.Visibility.Progress += now.Sub(inst.Visibility.LastInstant)
	inst.Visibility.LastInstant = now
	progress := inst.Visibility.Progress

	panelSize := inst.panelSize()
	start := -panelSize + handle

	if progress > total {
		if cfg.ExclusiveZone {
			inst.layer.SetExclusiveZone(panelSize)
		}
		inst.setMargin(cfg.Margin, 0)
		inst.layer.Commit()
		inst.Visibility = Visibility{State: StateVisible, PrevMargin: 0}
		inst.log.Debug().Stringer("state", StateVisible).Msg("autohide")
		return
	}

	norm := geometry.Smootherstep(float64(progress) / float64(total))
	cur := int((1 - norm) * float64(start))
	if inst.Visibility.PrevMargin != cur {
		if cfg.ExclusiveZone {
			inst.layer.SetExclusiveZone(panelSize + cur)
		}
		inst.setMargin(cfg.Margin, cur)
		inst.layer.Commit()
		inst.Visibility.PrevMargin = cur
	}
}
