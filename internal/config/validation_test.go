package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPanel(name string) PanelConfig {
	p := DefaultPanelConfig()
	p.Name = name
	return p
}

func TestValidateConfigAccepts(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, validateConfig(cfg))
}

func TestValidateConfigRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "empty panel name",
			mutate: func(c *Config) { c.Panels[0].Name = "" },
			want:   "name cannot be empty",
		},
		{
			name: "duplicate names",
			mutate: func(c *Config) {
				c.Panels = append(c.Panels, validPanel(c.Panels[0].Name))
			},
			want: "is duplicated",
		},
		{
			name:   "bad size class",
			mutate: func(c *Config) { c.Panels[0].Size = "XXL" },
			want:   "size must be one of",
		},
		{
			name:   "bad anchor",
			mutate: func(c *Config) { c.Panels[0].Anchor = "Center" },
			want:   "anchor must be one of",
		},
		{
			name:   "negative padding",
			mutate: func(c *Config) { c.Panels[0].Padding = -1 },
			want:   "padding must be non-negative",
		},
		{
			name:   "opacity out of range",
			mutate: func(c *Config) { c.Panels[0].Opacity = 1.5 },
			want:   "opacity must be between",
		},
		{
			name: "padding swallows thickness range",
			mutate: func(c *Config) {
				c.Panels[0].Size = "XS"
				c.Panels[0].Padding = 31
			},
			want: "too large for size class",
		},
		{
			name: "zero transition time",
			mutate: func(c *Config) {
				ah := DefaultAutoHide()
				ah.TransitionTime = 0
				c.Panels[0].AutoHide = &ah
			},
			want: "transition_time must be positive",
		},
		{
			name: "zero handle size",
			mutate: func(c *Config) {
				ah := DefaultAutoHide()
				ah.HandleSize = 0
				c.Panels[0].AutoHide = &ah
			},
			want: "handle_size must be positive",
		},
		{
			name:   "bad theme mode",
			mutate: func(c *Config) { c.Theme.Mode = "solarized" },
			want:   "theme.mode must be dark or light",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSetOperations(t *testing.T) {
	var s Set
	s.Upsert(validPanel("bar"))
	s.Upsert(validPanel("dock"))

	got, ok := s.ByName("bar")
	require.True(t, ok)
	assert.Equal(t, "bar", got.Name)

	updated := validPanel("bar")
	updated.Margin = 12
	s.Upsert(updated)
	got, _ = s.ByName("bar")
	assert.Equal(t, 12, got.Margin)
	assert.Len(t, s.Entries, 2)

	assert.True(t, s.Remove("dock"))
	assert.False(t, s.Remove("dock"))
	assert.Equal(t, []string{"bar"}, s.Names())
}

func TestSetForOutput(t *testing.T) {
	everywhere := validPanel("everywhere")
	everywhere.Output = "All"
	pinned := validPanel("pinned")
	pinned.Output = "Name(DP-1)"
	active := validPanel("active")
	active.Output = "Active"

	s := Set{Entries: []PanelConfig{everywhere, pinned, active}}

	names := func(configs []PanelConfig) []string {
		var out []string
		for _, c := range configs {
			out = append(out, c.Name)
		}
		return out
	}

	assert.Equal(t, []string{"everywhere", "pinned"}, names(s.ForOutput("DP-1")))
	assert.Equal(t, []string{"everywhere"}, names(s.ForOutput("HDMI-A-1")))
}

func TestSortByPriority(t *testing.T) {
	low := validPanel("low-dock")
	low.ExpandToEdges = false
	low.AnchorGap = true
	high := validPanel("high-panel")
	high.ExpandToEdges = true
	high.Margin = 0

	configs := []PanelConfig{low, high}
	SortByPriority(configs)
	assert.Equal(t, "high-panel", configs[0].Name)
	assert.Equal(t, "low-dock", configs[1].Name)
}
