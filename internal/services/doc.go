// Package services implements the Spotify Web API client used by the dashboard.
//
// # OAuth
//
// [SpotifyService] owns the application's [oauth2.Config] and performs the authorization code flow. It implements
// [OAuthService] so the web handlers and the CLI can share it.
//
// # Per-user clients
//
// [SpotifyService.Client] returns a [Client] bound to one user's token. Requests go through an oauth2 token source,
// so an expired token is refreshed transparently; callers read the possibly refreshed token back with
// [Client.Token] and persist it.
//
// All outbound requests share a single [rate.Limiter] owned by the service.
//
// # Error Handling
//
// Non-2xx responses decode Spotify's error body into [*APIError], which unwraps to a sentinel:
//   - [shared.ErrTokenExpired] : 401, the token was rejected
//   - [shared.ErrNoActiveDevice] : player command with no active device
//   - [shared.ErrAPIRequest] : anything else
package services
