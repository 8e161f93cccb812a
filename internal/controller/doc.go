// Package controller binds user interactions to the dashboard API and owns the state the front ends draw.
//
// # Player controls
//
// [Controller.DispatchPlayerAction] sends POST /player/{action}. Failures are reported through an [Alerter]
// and never retried. The matching button is marked pressed for [PressDuration] whatever the outcome.
//
// # Search
//
// [Controller.PerformSearch] moves the shared results [Panel] through validation, loading, and then empty,
// results or error. Each search carries a sequence number. A response that arrives after a newer search was
// issued is logged at warn level and still applied, so the panel can show stale results.
//
// # Show more and terms
//
// [Section] is the collapsed/expanded state behind a "Show N more" toggle. [Controller.ChangeTerm] disables
// the term selector and returns the URL to navigate to.
//
// Front ends render the panel with [RenderHTML] (the dashboard partial) or their own styles (the TUI).
package controller
