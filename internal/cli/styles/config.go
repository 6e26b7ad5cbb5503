package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/ledge/internal/config"
)

// ConfigRenderer renders config inspection output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file header.
func (r *ConfigRenderer) RenderConfigInfo(path string, panels int) string {
	return fmt.Sprintf(
		"\n  %s %s %s\n",
		r.theme.Title.Render("Config"),
		r.theme.Subtle.Render(path),
		r.theme.Badge.Render(fmt.Sprintf("%d panels", panels)),
	)
}

// RenderPanel renders one panel profile as a bordered block.
func (r *ConfigRenderer) RenderPanel(p *config.PanelConfig) string {
	var sb strings.Builder

	sb.WriteString(r.theme.Highlight.Render(p.Name))
	sb.WriteString("  ")
	sb.WriteString(r.theme.Badge.Render(p.Anchor))
	sb.WriteString(" ")
	sb.WriteString(r.theme.Badge.Render(string(p.SizeClass())))
	sb.WriteString("\n")

	kv := func(key, value string) {
		sb.WriteString(fmt.Sprintf("%s %s\n",
			r.theme.Subtle.Render(key+":"),
			value,
		))
	}
	kv("output", p.Output)
	kv("background", p.Background)
	kv("icon size", fmt.Sprintf("%dpx", p.SizeClass().IconSize()))
	kv("priority", fmt.Sprintf("%d", p.Priority()))
	if p.AutoHide != nil {
		kv("autohide", fmt.Sprintf("wait %dms, transition %dms, handle %dpx",
			p.AutoHide.WaitTime, p.AutoHide.TransitionTime, p.AutoHide.HandleSize))
	}
	plugins := func(name string, list []string) {
		if len(list) > 0 {
			kv(name, strings.Join(list, ", "))
		}
	}
	plugins("left", p.PluginsLeft)
	plugins("center", p.PluginsCenter)
	plugins("right", p.PluginsRight)

	return r.theme.Box.Render(strings.TrimRight(sb.String(), "\n"))
}

// RenderConfig renders the whole configuration.
func (r *ConfigRenderer) RenderConfig(path string, cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString(r.RenderConfigInfo(path, len(cfg.Panels)))
	for i := range cfg.Panels {
		sb.WriteString(r.RenderPanel(&cfg.Panels[i]))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\n  %s theme %s\n",
		r.theme.Subtle.Render("mode:"),
		r.theme.Highlight.Render(cfg.Theme.Mode),
	))
	return sb.String()
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	style := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s %v\n", style.Render("error:"), err)
}

// RenderSuccess renders a success message.
func (r *ConfigRenderer) RenderSuccess(msg string) string {
	style := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s\n", style.Render(msg))
}
