// package formatter renders a search results panel as CSV, Markdown, plain text or HTML
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/spotdash/internal/controller"
	"github.com/desertthunder/spotdash/internal/shared"
)

// Format names an output format accepted by [Render].
type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatHTML, FormatCSV, FormatMarkdown, FormatJSON}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatText:
		return FormatText, nil
	case "md":
		return FormatMarkdown, nil
	case FormatHTML, FormatCSV, FormatMarkdown, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

// Render converts the panel to the given format.
func Render(p controller.Panel, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return ExportToText(p)
	case FormatHTML:
		markup, err := controller.RenderHTML(p)
		if err != nil {
			return nil, err
		}
		return []byte(markup + "\n"), nil
	case FormatCSV:
		return ExportToCSV(p)
	case FormatMarkdown:
		return ExportToMarkdown(p)
	case FormatJSON:
		return ExportToJSON(p)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
}

// ExportToCSV writes one record per result with columns: Name, Subtitle, Thumbnail.
// Panels without results produce the header only.
func ExportToCSV(p controller.Panel) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Name", "Subtitle", "Thumbnail"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, it := range rows(p) {
		if err := writer.Write([]string{it.Name(), it.Subtitle(), it.Thumbnail()}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a heading for the search followed by a numbered list, or the panel message.
func ExportToMarkdown(p controller.Panel) ([]byte, error) {
	var buf bytes.Buffer

	if p.Query != "" {
		fmt.Fprintf(&buf, "# Search: %s (%s)\n\n", p.Query, p.Type)
	}

	items := rows(p)
	if len(items) == 0 {
		fmt.Fprintf(&buf, "_%s_\n", p.Message)
		return buf.Bytes(), nil
	}

	for i, it := range items {
		thumb := controller.IconGlyph
		if it.Thumbnail() != "" {
			thumb = fmt.Sprintf("![](%s)", it.Thumbnail())
		}
		fmt.Fprintf(&buf, "%d. %s **%s** · %s\n", i+1, thumb, it.Name(), it.Subtitle())
	}

	return buf.Bytes(), nil
}

// ExportToText renders a numbered "Name - Subtitle" list, or the panel message.
func ExportToText(p controller.Panel) ([]byte, error) {
	var buf bytes.Buffer

	items := rows(p)
	if len(items) == 0 {
		if p.Message != "" {
			buf.WriteString(p.Message + "\n")
		}
		return buf.Bytes(), nil
	}

	for i, it := range items {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, it.Name(), it.Subtitle())
	}

	return buf.Bytes(), nil
}

type jsonRow struct {
	Name      string `json:"name"`
	Subtitle  string `json:"subtitle"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ExportToJSON renders the panel state, message and rows.
func ExportToJSON(p controller.Panel) ([]byte, error) {
	out := struct {
		State   string    `json:"state"`
		Query   string    `json:"query,omitempty"`
		Type    string    `json:"type,omitempty"`
		Message string    `json:"message,omitempty"`
		Items   []jsonRow `json:"items"`
	}{State: p.State.String(), Query: p.Query, Type: string(p.Type), Message: p.Message, Items: []jsonRow{}}

	for _, it := range rows(p) {
		out.Items = append(out.Items, jsonRow{Name: it.Name(), Subtitle: it.Subtitle(), Thumbnail: it.Thumbnail()})
	}

	data, err := shared.MarshalJSON(out, true)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteExport renders the panel and writes it to path.
func WriteExport(p controller.Panel, format Format, path string) error {
	data, err := Render(p, format)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

func rows(p controller.Panel) []controller.Item {
	if p.State != controller.PanelResults {
		return nil
	}
	return p.Items
}
