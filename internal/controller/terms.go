package controller

import (
	"fmt"
	"net/url"

	"github.com/desertthunder/spotdash/internal/services"
	"github.com/desertthunder/spotdash/internal/shared"
)

// TermButton is one entry of the term selector.
type TermButton struct {
	Term     services.TimeRange
	Label    string
	Disabled bool
	Loading  bool
}

var termLabels = map[services.TimeRange]string{
	services.ShortTerm:  "Last 4 weeks",
	services.MediumTerm: "Last 6 months",
	services.LongTerm:   "All time",
}

// TermLabel returns the selector label for term.
func TermLabel(term services.TimeRange) string {
	return termLabels[term]
}

func newTermButtons() []TermButton {
	buttons := make([]TermButton, 0, len(services.TimeRanges))
	for _, t := range services.TimeRanges {
		buttons = append(buttons, TermButton{Term: t, Label: termLabels[t]})
	}
	return buttons
}

// WithTerm returns current with its term query parameter set, keeping every other parameter.
func WithTerm(current string, term services.TimeRange) (string, error) {
	u, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	q := u.Query()
	q.Set("term", string(term))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
