package catalog

import (
	"embed"
	"fmt"
)

//go:embed packs/*.yaml
var packFS embed.FS

// Mode selects one of the built-in question packs.
type Mode string

const (
	ModeTrivia    Mode = "trivia"
	ModeEducation Mode = "education"
)

// Modes lists the built-in packs in display order.
func Modes() []Mode {
	return []Mode{ModeTrivia, ModeEducation}
}

// Label returns the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeEducation:
		return "Education Mode"
	default:
		return "Trivia Mode"
	}
}

// Builtin loads the embedded pack for mode.
func Builtin(mode Mode) (*Memory, error) {
	var name string
	switch mode {
	case ModeTrivia:
		name = "packs/trivia.yaml"
	case ModeEducation:
		name = "packs/education.yaml"
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	data, err := packFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read pack %s: %w", name, err)
	}
	m, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", mode, err)
	}
	return m, nil
}
