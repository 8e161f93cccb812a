package controller

import "fmt"

// LabelShowLess is the toggle label of an expanded section.
const LabelShowLess = "Show less"

// Section is the show-more state of one overview or results block.
type Section struct {
	// Type names the section, e.g. "artists" or "track".
	Type     string
	Hidden   int
	Expanded bool
}

// NewSection creates a collapsed section with hidden extra rows.
func NewSection(kind string, hidden int) *Section {
	return &Section{Type: kind, Hidden: hidden}
}

// BlockID is the id of the hidden block, more-{type}.
func (s *Section) BlockID() string { return "more-" + s.Type }

// ToggleID is the id of the toggle control, show-more-{type}.
func (s *Section) ToggleID() string { return "show-more-" + s.Type }

// Label is the text the toggle currently shows.
func (s *Section) Label() string {
	if s.Expanded {
		return LabelShowLess
	}
	return fmt.Sprintf("Show %d more", s.Hidden)
}

// Toggle flips visibility and reports whether the block is now visible.
func (s *Section) Toggle() bool {
	s.Expanded = !s.Expanded
	return s.Expanded
}
