// Package api provides the HTTP handlers of the flashcard API.
//
// Handlers decode and validate JSON requests, call the service layer with
// the authenticated user's ID, and translate results and errors into JSON
// responses. Errors are mapped to status codes by MapErrorToStatusCode; the
// client only ever sees GetSafeErrorMessage's text and a trace ID, while the
// redacted details are logged.
//
// Routes are mounted by cmd/server; path parameters are read with chi.
package api
