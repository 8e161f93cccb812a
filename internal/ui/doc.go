// Package ui implements the interactive terminal controller using bubbletea's Elm architecture.
//
// The screen mirrors the dashboard's controls:
//   - player buttons (previous, play, pause, next) that flash while pressed
//   - a search input with a track/artist toggle and a results panel
//   - a "Show N more" toggle over results beyond the first few
//   - a term selector that opens the overview for the chosen time range in the browser
//
// All state lives in a [controller.Controller]. The [Model] forwards key presses to it and re-renders when the
// controller reports a change. Controller callbacks run on other goroutines, so they are delivered to Update as
// messages through a channel, the same way a long-running job reports progress.
//
// Player failures open a modal alert that must be dismissed with enter or esc before anything else responds.
package ui
