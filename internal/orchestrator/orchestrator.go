// Package orchestrator owns the set of live panel instances: it binds
// panel profiles to outputs, decides between in-place updates and full
// recreation when profiles change, and drives every instance's tick.
package orchestrator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/ledge/internal/config"
	"github.com/bnema/ledge/internal/minimize"
	"github.com/bnema/ledge/internal/panel"
)

// SurfaceFactory creates and destroys the compositor-facing resources for
// an instance. The wire-level implementation lives outside this package.
type SurfaceFactory interface {
	Create(inst *panel.Instance) (panel.LayerSurface, panel.PopupRegistry, error)
	Destroy(inst *panel.Instance)
}

// ApplyOutcome classifies how a profile change was absorbed.
type ApplyOutcome int

const (
	// OutcomeNoOp means the change matched the live state exactly.
	OutcomeNoOp ApplyOutcome = iota
	// OutcomeUpdated means configs were swapped in place; layout re-runs
	// on the next tick.
	OutcomeUpdated
	// OutcomeRecreated means one or more instances were torn down and
	// rebuilt.
	OutcomeRecreated
)

func (o ApplyOutcome) String() string {
	switch o {
	case OutcomeNoOp:
		return "noop"
	case OutcomeUpdated:
		return "updated"
	case OutcomeRecreated:
		return "recreated"
	default:
		return "unknown"
	}
}

// ApplyResult reports the outcome of applying a profile, with the names
// of recreated profiles in recreation order.
type ApplyResult struct {
	Outcome   ApplyOutcome
	Recreated []string
}

// Orchestrator maps panel profiles onto outputs and dispatches ticks.
// All methods must be called from a single goroutine, conventionally the
// daemon's event loop.
type Orchestrator struct {
	set       config.Set
	instances []*panel.Instance

	outputs      map[string]*panel.Output
	activeOutput string

	palette config.Palette

	surfaces SurfaceFactory
	focus    *panel.FocusTracker
	minimize *minimize.Tracker

	log zerolog.Logger
}

// New creates an orchestrator with no outputs and no profiles.
func New(surfaces SurfaceFactory, tracker *minimize.Tracker, palette config.Palette, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		outputs:  make(map[string]*panel.Output),
		palette:  palette,
		surfaces: surfaces,
		focus:    panel.NewFocusTracker(time.Now()),
		minimize: tracker,
		log:      log.With().Str("component", "orchestrator").Logger(),
	}
}

// Instances returns the live instances. The slice is shared; callers must
// not mutate it.
func (o *Orchestrator) Instances() []*panel.Instance {
	return o.instances
}

// InstanceByID looks up a live instance.
func (o *Orchestrator) InstanceByID(id uuid.UUID) (*panel.Instance, bool) {
	for _, inst := range o.instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return nil, false
}

// InstancesFor returns the live instances of a named profile.
func (o *Orchestrator) InstancesFor(name string) []*panel.Instance {
	var out []*panel.Instance
	for _, inst := range o.instances {
		if inst.Config.Name == name {
			out = append(out, inst)
		}
	}
	return out
}

// FocusTracker exposes the tracker the event source feeds.
func (o *Orchestrator) FocusTracker() *panel.FocusTracker {
	return o.focus
}

// Tick advances every instance one cooperative step.
func (o *Orchestrator) Tick(now time.Time) {
	for _, inst := range o.instances {
		focus := o.focus.Query(inst.SurfaceIDs())
		if err := inst.HandleTick(now, focus); err != nil {
			o.log.Warn().Err(err).Str("panel", inst.Config.Name).Msg("tick failed")
		}
	}
}

// AddOutput registers an output and spawns instances for every profile
// targeting it.
func (o *Orchestrator) AddOutput(out panel.Output) {
	if _, ok := o.outputs[out.Name]; ok {
		o.outputs[out.Name].Mode = out.Mode
		return
	}
	o.outputs[out.Name] = &out
	if o.activeOutput == "" {
		o.activeOutput = out.Name
	}
	configs := o.configsForOutput(out.Name)
	config.SortByPriority(configs)
	for _, cfg := range configs {
		if err := o.createInstance(cfg, o.outputs[out.Name]); err != nil {
			o.log.Error().Err(err).Str("panel", cfg.Name).Str("output", out.Name).Msg("create failed")
		}
	}
}

// RemoveOutput tears down the instances bound to an output and forgets it.
func (o *Orchestrator) RemoveOutput(name string) {
	delete(o.outputs, name)
	if o.activeOutput == name {
		o.activeOutput = ""
		for n := range o.outputs {
			o.activeOutput = n
			break
		}
	}
	kept := o.instances[:0]
	for _, inst := range o.instances {
		if inst.OutputName() == name {
			o.destroyInstance(inst)
			continue
		}
		kept = append(kept, inst)
	}
	o.instances = kept
	if o.minimize != nil {
		o.minimize.DropOutput(name)
	}
	// Active-targeted panels may need to migrate.
	o.rebindActive()
}

// SetActiveOutput changes the output Active-targeted profiles bind to.
func (o *Orchestrator) SetActiveOutput(name string) {
	if _, ok := o.outputs[name]; !ok || o.activeOutput == name {
		return
	}
	o.activeOutput = name
	o.rebindActive()
}

// rebindActive recreates Active-targeted instances on the current active
// output.
func (o *Orchestrator) rebindActive() {
	for i := range o.set.Entries {
		cfg := o.set.Entries[i]
		if cfg.OutputSelector().Kind != config.OutputActive {
			continue
		}
		for _, inst := range o.InstancesFor(cfg.Name) {
			if inst.OutputName() != o.activeOutput {
				o.removeInstance(inst)
			}
		}
		if len(o.InstancesFor(cfg.Name)) == 0 && o.activeOutput != "" {
			if err := o.createInstance(cfg, o.outputs[o.activeOutput]); err != nil {
				o.log.Error().Err(err).Str("panel", cfg.Name).Msg("rebind failed")
			}
		}
	}
}

// SetThemeMode switches the palette's light/dark mode and re-derives the
// background of every instance whose color follows the theme.
func (o *Orchestrator) SetThemeMode(dark bool) {
	if o.palette.IsDark == dark {
		return
	}
	o.palette.IsDark = dark
	for _, inst := range o.instances {
		inst.SetThemeColor(o.palette)
	}
}

// SetPalette replaces the palette wholesale, e.g. on a theme config change.
func (o *Orchestrator) SetPalette(p config.Palette) {
	if o.palette == p {
		return
	}
	o.palette = p
	for _, inst := range o.instances {
		inst.SetThemeColor(o.palette)
	}
}

// ApplyConfig reconciles the whole configuration: theme first, then every
// panel profile, then removal of profiles no longer present.
func (o *Orchestrator) ApplyConfig(cfg *config.Config) {
	o.SetPalette(cfg.Theme.Palette())

	seen := make(map[string]bool, len(cfg.Panels))
	for _, entry := range cfg.Panels {
		seen[entry.Name] = true
		res := o.Apply(entry)
		o.log.Info().
			Str("panel", entry.Name).
			Stringer("outcome", res.Outcome).
			Strs("recreated", res.Recreated).
			Msg("profile applied")
	}
	for _, name := range o.set.Names() {
		if !seen[name] {
			o.RemoveProfile(name)
		}
	}
}

// RemoveProfile tears down a profile's instances and drops it from the set.
func (o *Orchestrator) RemoveProfile(name string) {
	for _, inst := range o.InstancesFor(name) {
		o.removeInstance(inst)
	}
	if o.set.Remove(name) {
		o.log.Info().Str("panel", name).Msg("profile removed")
	}
}

// Apply absorbs one changed profile. The profile is updated in place when
// the change is cosmetic; structural changes force recreation, cascading
// to co-anchored panels whose spatial negotiation became stale.
func (o *Orchestrator) Apply(entry config.PanelConfig) ApplyResult {
	existing, found := o.set.ByName(entry.Name)
	live := o.InstancesFor(entry.Name)
	targets := o.resolveOutputs(&entry)

	if found && existing.Equal(&entry) && len(live) == len(targets) {
		o.log.Debug().Str("panel", entry.Name).Msg("config unchanged, skipping")
		return ApplyResult{Outcome: OutcomeNoOp}
	}

	if !found {
		o.set.Upsert(entry)
		var created []string
		for _, out := range targets {
			if err := o.createInstance(entry, out); err != nil {
				o.log.Error().Err(err).Str("panel", entry.Name).Msg("create failed")
				continue
			}
			created = append(created, entry.Name)
		}
		return ApplyResult{Outcome: OutcomeRecreated, Recreated: created}
	}

	if !o.needsRecreation(existing, &entry, live, targets) {
		o.set.Upsert(entry)
		for _, inst := range live {
			inst.UpdateConfig(entry, o.palette)
		}
		o.log.Info().Str("panel", entry.Name).Msg("updated in place")
		return ApplyResult{Outcome: OutcomeUpdated}
	}

	return o.recreate(existing, entry, live)
}

// needsRecreation applies the in-place update rules: any structural
// mismatch forces the instance set to be rebuilt.
func (o *Orchestrator) needsRecreation(old, next *config.PanelConfig, live []*panel.Instance, targets []*panel.Output) bool {
	if len(live) != len(targets) {
		return true
	}
	if old.SizeClass() != next.SizeClass() {
		return true
	}
	oldSel, newSel := old.OutputSelector(), next.OutputSelector()
	if newSel.Kind != config.OutputAll {
		if oldSel.Kind != newSel.Kind || oldSel.Name != newSel.Name {
			return true
		}
	} else if oldSel.Kind != config.OutputAll {
		return true
	}
	if old.AnchorEdge().Opposite() == next.AnchorEdge() {
		return true
	}
	if old.IsHorizontal() != next.IsHorizontal() {
		return true
	}
	if old.Background != next.Background {
		return true
	}
	if !pluginsEqual(old.PluginsLeft, next.PluginsLeft) ||
		!pluginsEqual(old.PluginsCenter, next.PluginsCenter) ||
		!pluginsEqual(old.PluginsRight, next.PluginsRight) {
		return true
	}
	return false
}

// recreate tears down the changed profile's instances and rebuilds them in
// priority order, together with every co-output profile whose priority
// lies strictly between the old and new score of the changed profile.
func (o *Orchestrator) recreate(old *config.PanelConfig, entry config.PanelConfig, live []*panel.Instance) ApplyResult {
	oldPriority := old.Priority()
	newPriority := entry.Priority()
	lo, hi := oldPriority, newPriority
	if lo > hi {
		lo, hi = hi, lo
	}

	affected := make(map[string]bool)
	for _, inst := range live {
		if n := inst.OutputName(); n != "" {
			affected[n] = true
		}
	}
	for _, inst := range live {
		o.removeInstance(inst)
	}
	o.set.Upsert(entry)
	for _, out := range o.resolveOutputs(&entry) {
		affected[out.Name] = true
	}

	var recreated []string
	seen := make(map[string]bool)
	for outputName := range affected {
		output, ok := o.outputs[outputName]
		if !ok {
			continue
		}
		configs := o.configsForOutput(outputName)
		config.SortByPriority(configs)
		for _, cfg := range configs {
			inBand := cfg.Priority() > lo && cfg.Priority() < hi
			if cfg.Name != entry.Name && !inBand {
				continue
			}
			if cfg.Name != entry.Name {
				for _, inst := range o.InstancesFor(cfg.Name) {
					if inst.OutputName() == outputName {
						o.removeInstance(inst)
					}
				}
			}
			if err := o.createInstance(cfg, output); err != nil {
				o.log.Error().Err(err).Str("panel", cfg.Name).Str("output", outputName).Msg("recreate failed")
				continue
			}
			if !seen[cfg.Name] {
				seen[cfg.Name] = true
				recreated = append(recreated, cfg.Name)
			}
			o.log.Info().
				Str("panel", cfg.Name).
				Str("output", outputName).
				Int("priority", cfg.Priority()).
				Msg("recreated")
		}
	}
	return ApplyResult{Outcome: OutcomeRecreated, Recreated: recreated}
}

// configsForOutput gathers the profiles that should live on an output,
// resolving Active targeting against the current active output.
func (o *Orchestrator) configsForOutput(output string) []config.PanelConfig {
	configs := o.set.ForOutput(output)
	if output == o.activeOutput {
		for i := range o.set.Entries {
			if o.set.Entries[i].OutputSelector().Kind == config.OutputActive {
				configs = append(configs, o.set.Entries[i])
			}
		}
	}
	return configs
}

// resolveOutputs maps a profile's output selector to live outputs.
func (o *Orchestrator) resolveOutputs(cfg *config.PanelConfig) []*panel.Output {
	sel := cfg.OutputSelector()
	switch sel.Kind {
	case config.OutputAll:
		outs := make([]*panel.Output, 0, len(o.outputs))
		for _, out := range o.outputs {
			outs = append(outs, out)
		}
		return outs
	case config.OutputActive:
		if out, ok := o.outputs[o.activeOutput]; ok {
			return []*panel.Output{out}
		}
		return nil
	default:
		if out, ok := o.outputs[sel.Name]; ok {
			return []*panel.Output{out}
		}
		return nil
	}
}

// createInstance builds an instance and wires its compositor resources. A
// profile never gets two instances on the same output.
func (o *Orchestrator) createInstance(cfg config.PanelConfig, output *panel.Output) error {
	for _, inst := range o.instances {
		if inst.Config.Name == cfg.Name && inst.Output == output {
			return fmt.Errorf("orchestrator: duplicate instance for %q on %q", cfg.Name, output.Name)
		}
	}
	inst := panel.NewInstance(cfg, output, o.palette, o.log)
	if o.surfaces != nil {
		layer, popups, err := o.surfaces.Create(inst)
		if err != nil {
			return fmt.Errorf("orchestrator: create surface for %q: %w", cfg.Name, err)
		}
		var sink panel.MinimizeSink
		if o.minimize != nil {
			sink = o.minimize.SinkFor(inst.ID)
		}
		inst.AttachSurface(layer, sink, popups)
	}
	o.instances = append(o.instances, inst)
	return nil
}

// removeInstance tears an instance down and releases everything keyed on
// its identity.
func (o *Orchestrator) removeInstance(inst *panel.Instance) {
	for i, cur := range o.instances {
		if cur == inst {
			o.instances = append(o.instances[:i], o.instances[i+1:]...)
			break
		}
	}
	o.destroyInstance(inst)
}

func (o *Orchestrator) destroyInstance(inst *panel.Instance) {
	if o.surfaces != nil {
		o.surfaces.Destroy(inst)
	}
	if o.minimize != nil {
		o.minimize.Release(inst.ID)
	}
	for _, id := range inst.SurfaceIDs() {
		o.focus.Forget(id)
	}
}

func pluginsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
