// Package config provides default configuration values for ledge.
package config

// Default configuration constants
const (
	defaultPadding      = 4
	defaultSpacing      = 4
	defaultBorderRadius = 8
	defaultMargin       = 4
	defaultOpacity      = 0.8

	defaultDarkColor  = "#1c1c1c"
	defaultLightColor = "#e6e6e6"
)

// DefaultPanelConfig returns the stock panel profile: an expanded top bar
// with an exclusive zone, in the M size class.
func DefaultPanelConfig() PanelConfig {
	return PanelConfig{
		Name:          "Panel",
		Anchor:        "Top",
		AnchorGap:     false,
		Size:          string(SizeM),
		Output:        "All",
		Background:    string(BackgroundThemeDefault),
		PluginsLeft:   []string{},
		PluginsCenter: []string{},
		PluginsRight:  []string{},
		ExpandToEdges: true,
		Padding:       defaultPadding,
		Spacing:       defaultSpacing,
		BorderRadius:  defaultBorderRadius,
		ExclusiveZone: true,
		AutoHide:      nil,
		Margin:        defaultMargin,
		Opacity:       defaultOpacity,
	}
}

// DefaultConfig returns the default configuration values for ledge.
func DefaultConfig() *Config {
	return &Config{
		Panels: []PanelConfig{DefaultPanelConfig()},
		Theme: ThemeConfig{
			Mode:       "dark",
			DarkColor:  defaultDarkColor,
			LightColor: defaultLightColor,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
