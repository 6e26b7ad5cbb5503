package config

import "sort"

// Set is the live collection of panel profiles, keyed by name. The
// orchestrator keeps one Set mirroring the most recently applied
// configuration.
type Set struct {
	Entries []PanelConfig
}

// ByName returns the profile with the given name, if present.
func (s *Set) ByName(name string) (*PanelConfig, bool) {
	for i := range s.Entries {
		if s.Entries[i].Name == name {
			return &s.Entries[i], true
		}
	}
	return nil, false
}

// Upsert replaces the profile with the same name, or appends it.
func (s *Set) Upsert(entry PanelConfig) {
	for i := range s.Entries {
		if s.Entries[i].Name == entry.Name {
			s.Entries[i] = entry
			return
		}
	}
	s.Entries = append(s.Entries, entry)
}

// Remove drops the profile with the given name and reports whether it was
// present.
func (s *Set) Remove(name string) bool {
	for i := range s.Entries {
		if s.Entries[i].Name == name {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the profile names in entry order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.Entries))
	for i := range s.Entries {
		names = append(names, s.Entries[i].Name)
	}
	return names
}

// ForOutput returns the profiles that place an instance on the named
// output: every All profile plus profiles naming that output. Active
// profiles are resolved by the orchestrator and excluded here.
func (s *Set) ForOutput(output string) []PanelConfig {
	var out []PanelConfig
	for i := range s.Entries {
		sel := s.Entries[i].OutputSelector()
		switch sel.Kind {
		case OutputAll:
			out = append(out, s.Entries[i])
		case OutputName:
			if sel.Name == output {
				out = append(out, s.Entries[i])
			}
		}
	}
	return out
}

// SortByPriority orders profiles by descending priority score so higher
// priority panels are recreated first.
func SortByPriority(configs []PanelConfig) {
	sort.SliceStable(configs, func(i, j int) bool {
		return configs[i].Priority() > configs[j].Priority()
	})
}
