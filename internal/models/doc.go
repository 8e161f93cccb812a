// Package models defines persistent entities and the repository contract for the dashboard.
//
// [Session] is the only persisted entity: a signed-in browser or CLI client holding a Spotify OAuth token.
// Search results and player responses are never stored; they pass straight from the Spotify API to the envelope.
//
// Persistent entities implement [Model] for ids, timestamps and validation. [Repository] is the CRUD contract the
// repositories package implements on SQLite.
package models
