// package server contains routing infrastructure and the development stub backend
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// The stub uses request logging and permissive CORS for browser clients.
type Middleware func(http.Handler) http.Handler

// Route pairs an HTTP method with a path pattern. Requests to the path with
// any other method are rejected with the backend's JSON error envelope.
type Route struct {
	Method string
	Path   string
}

// Handler defines the interface for HTTP request handlers in the stub backend.
type Handler interface {
	http.Handler     // ServeHTTP handles the HTTP request and writes the response
	Routes() []Route // Routes returns the method and path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(route Route, handler http.Handler)         // Handle registers a handler for a single route
	Handler(handler Handler)                          // Handler registers every route of a [Handler]
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}
