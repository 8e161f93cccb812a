package ui

import (
	"github.com/desertthunder/spotdash/internal/controller"
)

// stateChangedMsg reports that the controller's state changed and the view should be redrawn.
type stateChangedMsg struct{}

// alertMsg opens the modal alert.
type alertMsg string

// playerDoneMsg is sent when a player request finishes; failures arrive separately as an [alertMsg].
type playerDoneMsg struct {
	err error
}

// searchDoneMsg carries the panel a search produced.
type searchDoneMsg struct {
	panel controller.Panel
	err   error
}

// termOpenedMsg is sent after the overview for a new term was opened.
type termOpenedMsg struct {
	url string
	err error
}
