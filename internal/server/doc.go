// Package server provides HTTP routing, middleware, and a stub backend for
// offline development.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Stub Backend
//
// [StubHandler] implements the emotion detection API surface with canned
// responses and in-memory state, so the client can be exercised without the
// real backend running. It mirrors the wire contract exactly: JSON error
// envelopes, session cookies, integer session ids, and SQLite-style
// timestamps.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
