// Package config provides configuration management for ledge with Viper
// integration: the per-panel configuration model, defaults, validation, and
// hot reload.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/ledge/internal/geometry"
)

// PanelSize is one of the discrete thickness presets.
type PanelSize string

const (
	SizeXS PanelSize = "XS"
	SizeS  PanelSize = "S"
	SizeM  PanelSize = "M"
	SizeL  PanelSize = "L"
	SizeXL PanelSize = "XL"
)

// ParsePanelSize parses the config-file spelling of a size class.
func ParsePanelSize(s string) (PanelSize, error) {
	switch strings.ToUpper(s) {
	case "XS":
		return SizeXS, nil
	case "S":
		return SizeS, nil
	case "M":
		return SizeM, nil
	case "L":
		return SizeL, nil
	case "XL":
		return SizeXL, nil
	default:
		return SizeM, fmt.Errorf("not a valid panel size: %q", s)
	}
}

// thicknessRange returns the half-open range of panel thicknesses allowed
// for the size class, before padding is subtracted.
func (s PanelSize) thicknessRange() Range {
	switch s {
	case SizeXS:
		return Range{Start: 8, End: 61}
	case SizeS:
		return Range{Start: 8, End: 81}
	case SizeM:
		return Range{Start: 8, End: 101}
	case SizeL:
		return Range{Start: 8, End: 121}
	case SizeXL:
		return Range{Start: 8, End: 141}
	default:
		return Range{Start: 8, End: 101}
	}
}

// IconSize returns the applet icon dimension for the size class.
func (s PanelSize) IconSize() int {
	switch s {
	case SizeXS:
		return 18
	case SizeS:
		return 24
	case SizeM:
		return 36
	case SizeL:
		return 48
	case SizeXL:
		return 64
	default:
		return 36
	}
}

// Range is a half-open interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Clamp constrains v into the range.
func (r Range) Clamp(v int) int {
	if v < r.Start {
		return r.Start
	}
	if v >= r.End {
		return r.End - 1
	}
	return v
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return v >= r.Start && v < r.End
}

// AutoHide enables the timed hide/show behavior for a panel.
type AutoHide struct {
	// WaitTime is how long the panel must be without pointer focus before
	// it starts hiding, in milliseconds.
	WaitTime int `mapstructure:"wait_time" yaml:"wait_time" json:"wait_time"`
	// TransitionTime is the duration of the hide/show animation in
	// milliseconds.
	TransitionTime int `mapstructure:"transition_time" yaml:"transition_time" json:"transition_time"`
	// HandleSize is how many pixels stay on screen while hidden. Should be
	// greater than zero or the panel cannot be hovered back in.
	HandleSize int `mapstructure:"handle_size" yaml:"handle_size" json:"handle_size"`
}

// DefaultAutoHide returns the stock autohide timings.
func DefaultAutoHide() AutoHide {
	return AutoHide{
		WaitTime:       1000,
		TransitionTime: 200,
		HandleSize:     4,
	}
}

// OutputKind selects how a panel is matched to outputs.
type OutputKind int

const (
	// OutputAll places one panel instance on every output.
	OutputAll OutputKind = iota
	// OutputActive places a single instance on the active output.
	OutputActive
	// OutputName places the panel on one named output.
	OutputName
)

// OutputSelector is the parsed form of a panel's output target.
type OutputSelector struct {
	Kind OutputKind
	Name string
}

func (o OutputSelector) String() string {
	switch o.Kind {
	case OutputAll:
		return "All"
	case OutputActive:
		return "Active"
	default:
		return fmt.Sprintf("Name(%s)", o.Name)
	}
}

// ParseOutputSelector parses "All", "Active", or "Name(<output>)". A bare
// string that is neither keyword is treated as an output name.
func ParseOutputSelector(s string) OutputSelector {
	switch s {
	case "", "All", "all":
		return OutputSelector{Kind: OutputAll}
	case "Active", "active":
		return OutputSelector{Kind: OutputActive}
	}
	if strings.HasPrefix(s, "Name(") && strings.HasSuffix(s, ")") {
		return OutputSelector{Kind: OutputName, Name: s[5 : len(s)-1]}
	}
	return OutputSelector{Kind: OutputName, Name: s}
}

// Background selects how the panel background color is derived.
type Background string

const (
	BackgroundThemeDefault Background = "theme-default"
	BackgroundDark         Background = "dark"
	BackgroundLight        Background = "light"
	// Any other value is parsed as a hex color, e.g. "#1e1e2e".
)

// RGBA is a premultiplication-free color with components in [0,1].
type RGBA [4]float32

// Palette carries the theme colors used to resolve theme-driven backgrounds.
type Palette struct {
	IsDark bool
	Dark   RGBA
	Light  RGBA
}

// Current returns the palette color for the active theme mode.
func (p Palette) Current() RGBA {
	if p.IsDark {
		return p.Dark
	}
	return p.Light
}

// PanelConfig describes one panel profile. A profile fans out into one
// instance per matched output. Fields are immutable on a live instance;
// changes arrive as whole replacement values through the orchestrator.
type PanelConfig struct {
	// Name uniquely identifies the profile.
	Name string `mapstructure:"name" yaml:"name" json:"name"`
	// Anchor is the screen edge: Top, Bottom, Left, or Right.
	Anchor string `mapstructure:"anchor" yaml:"anchor" json:"anchor"`
	// AnchorGap leaves Margin pixels between the panel and its edge.
	AnchorGap bool `mapstructure:"anchor_gap" yaml:"anchor_gap" json:"anchor_gap"`
	// Size is the thickness class: XS, S, M, L, or XL.
	Size string `mapstructure:"size" yaml:"size" json:"size"`
	// Output targets All, Active, or a named output.
	Output string `mapstructure:"output" yaml:"output" json:"output"`
	// Background is theme-default, dark, light, or a hex color.
	Background string `mapstructure:"background" yaml:"background" json:"background"`
	// PluginsLeft/PluginsCenter/PluginsRight are the ordered applet names
	// per region. A nil list means the region is not configured, which is
	// distinct from a configured-but-empty region.
	PluginsLeft   []string `mapstructure:"plugins_left" yaml:"plugins_left" json:"plugins_left"`
	PluginsCenter []string `mapstructure:"plugins_center" yaml:"plugins_center" json:"plugins_center"`
	PluginsRight  []string `mapstructure:"plugins_right" yaml:"plugins_right" json:"plugins_right"`
	// ExpandToEdges stretches the panel across the full edge; false is dock
	// mode, where the panel hugs its content.
	ExpandToEdges bool `mapstructure:"expand_to_edges" yaml:"expand_to_edges" json:"expand_to_edges"`
	// Padding is applied inside the panel on every side.
	Padding int `mapstructure:"padding" yaml:"padding" json:"padding"`
	// Spacing separates adjacent applets within a region.
	Spacing int `mapstructure:"spacing" yaml:"spacing" json:"spacing"`
	// BorderRadius rounds the open corners of the panel rectangle.
	BorderRadius int `mapstructure:"border_radius" yaml:"border_radius" json:"border_radius"`
	// ExclusiveZone reserves screen space other windows must not overlap.
	ExclusiveZone bool `mapstructure:"exclusive_zone" yaml:"exclusive_zone" json:"exclusive_zone"`
	// AutoHide, when set, enables the timed hide/show state machine.
	AutoHide *AutoHide `mapstructure:"autohide" yaml:"autohide,omitempty" json:"autohide,omitempty"`
	// Margin is the gap between the panel and the edge of the output.
	Margin int `mapstructure:"margin" yaml:"margin" json:"margin"`
	// Opacity of the panel background, in [0,1].
	Opacity float64 `mapstructure:"opacity" yaml:"opacity" json:"opacity"`
}

// AnchorEdge returns the typed anchor, defaulting to Top on bad input.
func (c *PanelConfig) AnchorEdge() geometry.Anchor {
	a, err := geometry.ParseAnchor(c.Anchor)
	if err != nil {
		return geometry.AnchorTop
	}
	return a
}

// SizeClass returns the typed size class, defaulting to M on bad input.
func (c *PanelConfig) SizeClass() PanelSize {
	s, err := ParsePanelSize(c.Size)
	if err != nil {
		return SizeM
	}
	return s
}

// OutputSelector returns the parsed output target.
func (c *PanelConfig) OutputSelector() OutputSelector {
	return ParseOutputSelector(c.Output)
}

// IsHorizontal reports whether the panel's length axis is the X axis.
func (c *PanelConfig) IsHorizontal() bool {
	return c.AnchorEdge().Horizontal()
}

// Dock reports whether the panel hugs its content instead of spanning the
// full edge.
func (c *PanelConfig) Dock() bool {
	return !c.ExpandToEdges
}

// Priority orders co-anchored panels for recreation. Higher priority panels
// are created first and win when competing for edge space. The score is
// additive and used only for ordering, never for layout.
func (c *PanelConfig) Priority() int {
	priority := 0
	if c.ExpandToEdges {
		priority += 1000
	}
	if c.Margin == 0 {
		priority += 200
	}
	if !c.AnchorGap {
		priority += 100
	}
	if strings.Contains(strings.ToLower(c.Name), "panel") {
		priority += 10
	}
	return priority
}

// EffectiveAnchorGap is the gap between the panel and its anchored edge:
// the margin when anchor_gap is enabled, zero otherwise.
func (c *PanelConfig) EffectiveAnchorGap() int {
	if c.AnchorGap {
		return c.Margin
	}
	return 0
}

// HideWait returns the autohide wait duration, or false when autohide is
// not configured.
func (c *PanelConfig) HideWait() (time.Duration, bool) {
	if c.AutoHide == nil {
		return 0, false
	}
	return time.Duration(c.AutoHide.WaitTime) * time.Millisecond, true
}

// HideTransition returns the autohide transition duration.
func (c *PanelConfig) HideTransition() (time.Duration, bool) {
	if c.AutoHide == nil {
		return 0, false
	}
	return time.Duration(c.AutoHide.TransitionTime) * time.Millisecond, true
}

// HideHandle returns the exposed handle size while hidden.
func (c *PanelConfig) HideHandle() (int, bool) {
	if c.AutoHide == nil {
		return 0, false
	}
	return c.AutoHide.HandleSize, true
}

// HasWings reports whether the left/right regions are configured at all.
func (c *PanelConfig) HasWings() bool {
	return c.PluginsLeft != nil || c.PluginsRight != nil
}

// HasCenter reports whether the center region is configured.
func (c *PanelConfig) HasCenter() bool {
	return c.PluginsCenter != nil
}

// EffectivePluginsLeft returns the left region applets. In dock mode the
// wings fold into the center, so this is nil unless expanded.
func (c *PanelConfig) EffectivePluginsLeft() []string {
	if c.ExpandToEdges {
		return c.PluginsLeft
	}
	return nil
}

// EffectivePluginsCenter returns the center region applets. In dock mode
// the wing lists are folded in around the configured center, preserving
// left-center-right order.
func (c *PanelConfig) EffectivePluginsCenter() []string {
	if c.ExpandToEdges || !c.HasWings() {
		return c.PluginsCenter
	}
	folded := make([]string, 0, len(c.PluginsLeft)+len(c.PluginsCenter)+len(c.PluginsRight))
	folded = append(folded, c.PluginsLeft...)
	folded = append(folded, c.PluginsCenter...)
	folded = append(folded, c.PluginsRight...)
	return folded
}

// EffectivePluginsRight returns the right region applets, nil in dock mode.
func (c *PanelConfig) EffectivePluginsRight() []string {
	if c.ExpandToEdges {
		return c.PluginsRight
	}
	return nil
}

// Dimensions returns the constraint ranges for the panel surface, width
// first. The thickness axis is bounded by the size class (less padding on
// the open side); the length axis is pinned to the suggested length, falling
// back to the output's current mode dimension.
func (c *PanelConfig) Dimensions(outputDims *geometry.Size, suggestedLength *int) (wRange, hRange *Range) {
	thickness := c.SizeClass().thicknessRange()
	if 2*c.Padding < thickness.End {
		thickness.End -= 2 * c.Padding
	}

	var oW, oH int
	if outputDims != nil {
		oW, oH = outputDims.W, outputDims.H
	}
	if suggestedLength != nil {
		oW, oH = *suggestedLength, *suggestedLength
	}

	if c.IsHorizontal() {
		return &Range{Start: oW, End: oW + 1}, &thickness
	}
	return &thickness, &Range{Start: oH, End: oH + 1}
}

// BackgroundColor resolves the configured background against the theme
// palette, applying the panel opacity to the alpha channel.
func (c *PanelConfig) BackgroundColor(palette Palette) RGBA {
	var color RGBA
	switch Background(strings.ToLower(c.Background)) {
	case BackgroundThemeDefault, "":
		color = palette.Current()
	case BackgroundDark:
		color = palette.Dark
	case BackgroundLight:
		color = palette.Light
	default:
		parsed, err := parseHexColor(c.Background)
		if err != nil {
			color = palette.Current()
		} else {
			color = parsed
		}
	}
	color[3] = float32(c.Opacity)
	return color
}

// parseHexColor parses #RGB, #RRGGBB, or #RRGGBBAA.
func parseHexColor(s string) (RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	var r, g, b, a uint8 = 0, 0, 0, 0xff
	var err error
	switch len(s) {
	case 3:
		_, err = fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	case 8:
		_, err = fmt.Sscanf(s, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		return RGBA{}, fmt.Errorf("not a valid hex color: %q", s)
	}
	if err != nil {
		return RGBA{}, fmt.Errorf("not a valid hex color: %q", s)
	}
	return RGBA{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}, nil
}

// Equal reports whether two panel configurations are identical, including
// plugin lists and autohide parameters.
func (c *PanelConfig) Equal(other *PanelConfig) bool {
	if c.Name != other.Name ||
		c.Anchor != other.Anchor ||
		c.AnchorGap != other.AnchorGap ||
		c.Size != other.Size ||
		c.Output != other.Output ||
		c.Background != other.Background ||
		c.ExpandToEdges != other.ExpandToEdges ||
		c.Padding != other.Padding ||
		c.Spacing != other.Spacing ||
		c.BorderRadius != other.BorderRadius ||
		c.ExclusiveZone != other.ExclusiveZone ||
		c.Margin != other.Margin ||
		c.Opacity != other.Opacity {
		return false
	}
	if (c.AutoHide == nil) != (other.AutoHide == nil) {
		return false
	}
	if c.AutoHide != nil && *c.AutoHide != *other.AutoHide {
		return false
	}
	return stringSlicesEqual(c.PluginsLeft, other.PluginsLeft) &&
		stringSlicesEqual(c.PluginsCenter, other.PluginsCenter) &&
		stringSlicesEqual(c.PluginsRight, other.PluginsRight)
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	if (a == nil) != (b == nil) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the configuration.
func (c *PanelConfig) Clone() PanelConfig {
	clone := *c
	if c.AutoHide != nil {
		ah := *c.AutoHide
		clone.AutoHide = &ah
	}
	clone.PluginsLeft = cloneStrings(c.PluginsLeft)
	clone.PluginsCenter = cloneStrings(c.PluginsCenter)
	clone.PluginsRight = cloneStrings(c.PluginsRight)
	return clone
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
