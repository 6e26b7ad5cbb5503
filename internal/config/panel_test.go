package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ledge/internal/geometry"
)

func TestPriorityScoring(t *testing.T) {
	tests := []struct {
		name string
		cfg  PanelConfig
		want int
	}{
		{
			name: "expanded flush bar named panel",
			cfg:  PanelConfig{Name: "main-panel", ExpandToEdges: true, Margin: 0},
			want: 1310,
		},
		{
			name: "expanded with margin",
			cfg:  PanelConfig{Name: "bar", ExpandToEdges: true, Margin: 8},
			want: 1100,
		},
		{
			name: "dock with anchor gap",
			cfg:  PanelConfig{Name: "dock", AnchorGap: true, Margin: 4},
			want: 0,
		},
		{
			name: "flush dock",
			cfg:  PanelConfig{Name: "dock", Margin: 0},
			want: 300,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Priority())
		})
	}
}

func TestEffectiveAnchorGap(t *testing.T) {
	cfg := PanelConfig{Margin: 6}
	assert.Equal(t, 0, cfg.EffectiveAnchorGap())
	cfg.AnchorGap = true
	assert.Equal(t, 6, cfg.EffectiveAnchorGap())
}

func TestDimensionsHorizontal(t *testing.T) {
	cfg := PanelConfig{Anchor: "Top", Size: "M", Padding: 4}
	output := geometry.Size{W: 1920, H: 1080}

	wRange, hRange := cfg.Dimensions(&output, nil)
	require.NotNil(t, wRange)
	require.NotNil(t, hRange)

	// length axis pins to the output width
	assert.Equal(t, Range{Start: 1920, End: 1921}, *wRange)
	// thickness range for M less 2x padding on the open end
	assert.Equal(t, Range{Start: 8, End: 93}, *hRange)
}

func TestDimensionsVertical(t *testing.T) {
	cfg := PanelConfig{Anchor: "Left", Size: "XS", Padding: 0}
	output := geometry.Size{W: 1920, H: 1080}

	wRange, hRange := cfg.Dimensions(&output, nil)
	assert.Equal(t, Range{Start: 8, End: 61}, *wRange)
	assert.Equal(t, Range{Start: 1080, End: 1081}, *hRange)
}

func TestDimensionsSuggestedLengthWins(t *testing.T) {
	cfg := PanelConfig{Anchor: "Top", Size: "L"}
	output := geometry.Size{W: 1920, H: 1080}
	suggested := 2560

	wRange, _ := cfg.Dimensions(&output, &suggested)
	assert.Equal(t, Range{Start: 2560, End: 2561}, *wRange)
}

func TestSizeClassRanges(t *testing.T) {
	tests := []struct {
		size PanelSize
		end  int
		icon int
	}{
		{SizeXS, 61, 18},
		{SizeS, 81, 24},
		{SizeM, 101, 36},
		{SizeL, 121, 48},
		{SizeXL, 141, 64},
	}
	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			r := tt.size.thicknessRange()
			assert.Equal(t, 8, r.Start)
			assert.Equal(t, tt.end, r.End)
			assert.Equal(t, tt.icon, tt.size.IconSize())
		})
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{Start: 8, End: 101}
	assert.Equal(t, 8, r.Clamp(2))
	assert.Equal(t, 50, r.Clamp(50))
	assert.Equal(t, 100, r.Clamp(101))
	assert.True(t, r.Contains(8))
	assert.False(t, r.Contains(101))
}

func TestParseOutputSelector(t *testing.T) {
	assert.Equal(t, OutputSelector{Kind: OutputAll}, ParseOutputSelector("All"))
	assert.Equal(t, OutputSelector{Kind: OutputAll}, ParseOutputSelector(""))
	assert.Equal(t, OutputSelector{Kind: OutputActive}, ParseOutputSelector("Active"))
	assert.Equal(t, OutputSelector{Kind: OutputName, Name: "DP-1"}, ParseOutputSelector("Name(DP-1)"))
	assert.Equal(t, OutputSelector{Kind: OutputName, Name: "HDMI-A-1"}, ParseOutputSelector("HDMI-A-1"))
}

func TestDockFoldsWingsIntoCenter(t *testing.T) {
	cfg := PanelConfig{
		PluginsLeft:   []string{"launcher"},
		PluginsCenter: []string{"tasks"},
		PluginsRight:  []string{"clock"},
	}

	assert.Nil(t, cfg.EffectivePluginsLeft())
	assert.Nil(t, cfg.EffectivePluginsRight())
	assert.Equal(t, []string{"launcher", "tasks", "clock"}, cfg.EffectivePluginsCenter())

	cfg.ExpandToEdges = true
	assert.Equal(t, []string{"launcher"}, cfg.EffectivePluginsLeft())
	assert.Equal(t, []string{"tasks"}, cfg.EffectivePluginsCenter())
	assert.Equal(t, []string{"clock"}, cfg.EffectivePluginsRight())
}

func TestEmptyVsUnconfiguredRegions(t *testing.T) {
	unconfigured := PanelConfig{}
	assert.False(t, unconfigured.HasWings())
	assert.False(t, unconfigured.HasCenter())

	configured := PanelConfig{PluginsLeft: []string{}, PluginsCenter: []string{}}
	assert.True(t, configured.HasWings())
	assert.True(t, configured.HasCenter())

	assert.False(t, unconfigured.Equal(&configured))
}

func TestBackgroundColor(t *testing.T) {
	palette := Palette{
		IsDark: true,
		Dark:   RGBA{0.1, 0.1, 0.1, 1},
		Light:  RGBA{0.9, 0.9, 0.9, 1},
	}

	themed := PanelConfig{Background: "theme-default", Opacity: 0.8}
	got := themed.BackgroundColor(palette)
	assert.Equal(t, float32(0.1), got[0])
	assert.Equal(t, float32(0.8), got[3])

	light := PanelConfig{Background: "light", Opacity: 1}
	assert.Equal(t, float32(0.9), light.BackgroundColor(palette)[0])

	hex := PanelConfig{Background: "#ff0080", Opacity: 0.5}
	c := hex.BackgroundColor(palette)
	assert.InDelta(t, 1.0, c[0], 1e-6)
	assert.InDelta(t, 0.0, c[1], 1e-6)
	assert.InDelta(t, float64(0x80)/255, c[2], 1e-6)
	assert.Equal(t, float32(0.5), c[3])

	// invalid hex falls back to the theme color
	bad := PanelConfig{Background: "#zzzzzz", Opacity: 1}
	assert.Equal(t, float32(0.1), bad.BackgroundColor(palette)[0])
}

func TestParseHexColor(t *testing.T) {
	c, err := parseHexColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, RGBA{1, 1, 1, 1}, c)

	c, err = parseHexColor("#00ff00")
	require.NoError(t, err)
	assert.Equal(t, RGBA{0, 1, 0, 1}, c)

	c, err = parseHexColor("#00000080")
	require.NoError(t, err)
	assert.InDelta(t, float64(0x80)/255, c[3], 1e-6)

	_, err = parseHexColor("#12345")
	require.Error(t, err)
}

func TestConfigEqualAndClone(t *testing.T) {
	ah := DefaultAutoHide()
	a := PanelConfig{
		Name:        "panel",
		Anchor:      "Top",
		Size:        "M",
		PluginsLeft: []string{"launcher"},
		AutoHide:    &ah,
	}
	b := a.Clone()
	assert.True(t, a.Equal(&b))

	// clone is deep: mutating the copy leaves the original untouched
	b.PluginsLeft[0] = "other"
	assert.False(t, a.Equal(&b))
	assert.Equal(t, "launcher", a.PluginsLeft[0])

	c := a.Clone()
	c.AutoHide.WaitTime = 500
	assert.False(t, a.Equal(&c))
	assert.Equal(t, 1000, a.AutoHide.WaitTime)
}
