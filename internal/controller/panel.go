package controller

import (
	"html/template"
	"strings"

	"github.com/desertthunder/spotdash/internal/services"
)

// Panel messages.
const (
	MsgEnterTerm = "Enter a search term."
	MsgSearching = "Searching..."
	MsgNoResults = "No results found."
)

// PanelState is the mode of the search results panel.
type PanelState int

const (
	PanelIdle PanelState = iota
	PanelValidation
	PanelLoading
	PanelEmpty
	PanelResults
	PanelError
)

func (s PanelState) String() string {
	switch s {
	case PanelValidation:
		return "validation"
	case PanelLoading:
		return "loading"
	case PanelEmpty:
		return "empty"
	case PanelResults:
		return "results"
	case PanelError:
		return "error"
	default:
		return "idle"
	}
}

// Panel is a snapshot of the search results area.
type Panel struct {
	State   PanelState
	Message string
	Items   []Item
	Query   string
	Type    services.SearchType
	// Seq is the sequence number of the search that produced this panel, 0 for none.
	Seq uint64
}

// IsAlert reports whether the message should be styled as an error.
func (p Panel) IsAlert() bool {
	return p.State == PanelValidation || p.State == PanelError
}

type htmlRow struct {
	Thumbnail string
	Glyph     string
	Name      string
	Subtitle  string
	Rounded   string
}

var panelTemplate = template.Must(template.New("panel").Parse(
	`{{if .Rows}}{{range .Rows}}<div class="flex items-center space-x-3 bg-gray-700 p-2 rounded">` +
		`{{if .Thumbnail}}<img src="{{.Thumbnail}}" class="w-10 h-10 {{.Rounded}}" alt="" />` +
		`{{else}}<span class="w-10 h-10 flex items-center justify-center text-gray-400">{{.Glyph}}</span>{{end}}` +
		`<div><span class="block">{{.Name}}</span><span class="block text-sm text-gray-400">{{.Subtitle}}</span></div>` +
		`</div>{{end}}{{else if .Alert}}<p class="text-red-400">{{.Message}}</p>` +
		`{{else if .Message}}<p>{{.Message}}</p>{{end}}`))

// RenderHTML renders the panel as the markup of the #search-results element. All values are escaped.
func RenderHTML(p Panel) (string, error) {
	data := struct {
		Rows    []htmlRow
		Message string
		Alert   bool
	}{Message: p.Message, Alert: p.IsAlert()}

	if p.State == PanelResults {
		rounded := "rounded"
		if p.Type == services.SearchArtist {
			rounded = "rounded-full"
		}
		for _, it := range p.Items {
			data.Rows = append(data.Rows, htmlRow{
				Thumbnail: it.Thumbnail(),
				Glyph:     IconGlyph,
				Name:      it.Name(),
				Subtitle:  it.Subtitle(),
				Rounded:   rounded,
			})
		}
	}

	var sb strings.Builder
	if err := panelTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
