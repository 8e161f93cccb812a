// Package server holds the HTTP plumbing shared by the dashboard and the CLI login flow.
//
// [BasicRouter] binds one method per pattern on an [http.ServeMux], so 1.22 wildcards such as
// /player/{action} work and a wrong method gets 405 with an Allow header. Middleware registered with
// [BasicRouter.Use] wraps every route added afterwards; [RequestLogger] and [Recoverer] are the two the
// dashboard installs.
//
// A [Handler] owns its own paths. [OAuthHandler] is one: `spotdash auth login` mounts it on a temporary
// server, and [OAuthHandler.Wait] returns the token from the first callback. Replayed callbacks are refused.
//
// [Run] serves until its context ends and then drains in-flight requests for up to [ShutdownTimeout].
package server
