package pipeline

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HandlerFunc is a route handler. It returns a Result instead of writing
// the response.
type HandlerFunc func(r *Request) Result

// Router dispatches requests to handlers registered on a chi mux. A request
// whose method and path match no route is passed to NotFound. HEAD requests
// are served by the GET route for the same path.
type Router struct {
	mux      *chi.Mux
	prefix   string
	notFound Stage
}

func NewRouter() *Router {
	mux := chi.NewRouter()
	mux.Use(middleware.GetHead)

	unrouted := func(w http.ResponseWriter, r *http.Request) {
		if req, ok := FromContext(r.Context()); ok {
			req.unrouted = true
		}
	}
	mux.NotFound(unrouted)
	mux.MethodNotAllowed(unrouted)

	return &Router{
		mux:      mux,
		notFound: NewNotFound(),
	}
}

// Prefix returns a view of the router that registers routes under prefix.
func (rt *Router) Prefix(prefix string) *Router {
	return &Router{
		mux:      rt.mux,
		prefix:   rt.prefix + strings.TrimSuffix(prefix, "/"),
		notFound: rt.notFound,
	}
}

// Handle registers h for method and a chi pattern such as "/items/{id}".
func (rt *Router) Handle(method, pattern string, h HandlerFunc) {
	rt.mux.Method(method, rt.prefix+pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := FromContext(r.Context())
		if !ok {
			panic("pipeline: route handler called outside of a pipeline")
		}
		req.HTTP = r
		req.setResult(h(req))
	}))
}

func (rt *Router) Get(pattern string, h HandlerFunc)    { rt.Handle(http.MethodGet, pattern, h) }
func (rt *Router) Post(pattern string, h HandlerFunc)   { rt.Handle(http.MethodPost, pattern, h) }
func (rt *Router) Put(pattern string, h HandlerFunc)    { rt.Handle(http.MethodPut, pattern, h) }
func (rt *Router) Patch(pattern string, h HandlerFunc)  { rt.Handle(http.MethodPatch, pattern, h) }
func (rt *Router) Delete(pattern string, h HandlerFunc) { rt.Handle(http.MethodDelete, pattern, h) }

func (rt *Router) Name() string {
	return "router"
}

// Process runs the matching handler. A failed Result is returned as the
// stage error; a successful one is left for the EnvelopeFormatter. Matching
// is left entirely to chi so escaped paths resolve the same way for both.
func (rt *Router) Process(r *Request) error {
	r.unrouted = false
	rt.mux.ServeHTTP(r.w, r.HTTP)

	if r.unrouted {
		return rt.notFound.Process(r)
	}
	if r.result == nil {
		return errInternal(ErrNoResult)
	}
	return r.result.Err()
}
