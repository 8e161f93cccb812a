package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/spotdash/internal/controller"
)

// renderRow draws one result as "♪ Name · Subtitle". Rows with an image get a filled marker.
func renderRow(i int, it controller.Item) string {
	marker := controller.IconGlyph
	if it.Thumbnail() != "" {
		marker = "●"
	}
	return fmt.Sprintf("%2d. %s %s %s", i+1, marker, it.Name(), styles.help.Render("· "+it.Subtitle()))
}

// renderRows draws the visible rows of a results panel and the show-more toggle.
func renderRows(items []controller.Item, section controller.Section, hasSection bool) string {
	visible := items
	if hasSection && !section.Expanded && section.Hidden > 0 {
		visible = items[:len(items)-section.Hidden]
	}

	var sb strings.Builder
	for i, it := range visible {
		sb.WriteString(renderRow(i, it))
		sb.WriteString("\n")
	}

	if hasSection && section.Hidden > 0 {
		sb.WriteString(styles.ok.Render(section.Label()))
		sb.WriteString("\n")
	}
	return sb.String()
}
