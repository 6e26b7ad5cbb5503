package config

import (
	"fmt"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	seen := make(map[string]bool, len(config.Panels))
	for i := range config.Panels {
		p := &config.Panels[i]
		prefix := fmt.Sprintf("panels[%d]", i)

		if p.Name == "" {
			validationErrors = append(validationErrors, prefix+".name cannot be empty")
		} else if seen[p.Name] {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.name %q is duplicated", prefix, p.Name))
		}
		seen[p.Name] = true

		if _, err := ParsePanelSize(p.Size); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.size must be one of: XS, S, M, L, XL (got: %s)", prefix, p.Size))
		}
		switch p.Anchor {
		case "Top", "Bottom", "Left", "Right", "top", "bottom", "left", "right":
			// Valid
		default:
			validationErrors = append(validationErrors, fmt.Sprintf("%s.anchor must be one of: Top, Bottom, Left, Right (got: %s)", prefix, p.Anchor))
		}

		if p.Padding < 0 {
			validationErrors = append(validationErrors, prefix+".padding must be non-negative")
		}
		if p.Spacing < 0 {
			validationErrors = append(validationErrors, prefix+".spacing must be non-negative")
		}
		if p.BorderRadius < 0 {
			validationErrors = append(validationErrors, prefix+".border_radius must be non-negative")
		}
		if p.Margin < 0 {
			validationErrors = append(validationErrors, prefix+".margin must be non-negative")
		}
		if p.Opacity < 0 || p.Opacity > 1 {
			validationErrors = append(validationErrors, prefix+".opacity must be between 0 and 1")
		}

		// The thickness range must survive padding subtraction.
		if thickness := p.SizeClass().thicknessRange(); 2*p.Padding >= thickness.End {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.padding %d is too large for size class %s", prefix, p.Padding, p.SizeClass()))
		}

		if ah := p.AutoHide; ah != nil {
			if ah.WaitTime < 0 {
				validationErrors = append(validationErrors, prefix+".autohide.wait_time must be non-negative")
			}
			if ah.TransitionTime <= 0 {
				validationErrors = append(validationErrors, prefix+".autohide.transition_time must be positive")
			}
			if ah.HandleSize <= 0 {
				validationErrors = append(validationErrors, prefix+".autohide.handle_size must be positive")
			}
		}
	}

	switch strings.ToLower(config.Theme.Mode) {
	case "dark", "light":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("theme.mode must be dark or light (got: %s)", config.Theme.Mode))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
