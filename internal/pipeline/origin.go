package pipeline

import (
	"net/http"
	"slices"
)

const (
	headerOrigin            = "Origin"
	headerVary              = "Vary"
	headerAllowOrigin       = "Access-Control-Allow-Origin"
	headerAllowCredentials  = "Access-Control-Allow-Credentials"
	headerAllowMethods      = "Access-Control-Allow-Methods"
	headerAllowHeaders      = "Access-Control-Allow-Headers"
	headerRequestMethod     = "Access-Control-Request-Method"
	headerRequestHeaders    = "Access-Control-Request-Headers"
	preflightAllowedMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"
)

// OriginAllowList is an immutable set of origins matched exactly.
type OriginAllowList struct {
	origins map[string]struct{}
}

// NewOriginAllowList copies origins into a new allow-list.
func NewOriginAllowList(origins ...string) OriginAllowList {
	set := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		set[o] = struct{}{}
	}
	return OriginAllowList{origins: set}
}

// Contains reports whether origin is in the list. No normalization is
// applied: scheme, host, port and case must match.
func (l OriginAllowList) Contains(origin string) bool {
	_, ok := l.origins[origin]
	return ok
}

// Origins returns the entries in sorted order.
func (l OriginAllowList) Origins() []string {
	out := make([]string, 0, len(l.origins))
	for o := range l.origins {
		out = append(out, o)
	}
	slices.Sort(out)
	return out
}

// OriginPolicy allows requests without an Origin header and requests whose
// origin is in the allow-list, and rejects everything else with
// ORIGIN_DENIED. Allowed requests always get credentials enabled.
type OriginPolicy struct {
	allowList OriginAllowList
}

func NewOriginPolicy(allowList OriginAllowList) *OriginPolicy {
	return &OriginPolicy{allowList: allowList}
}

func (p *OriginPolicy) Name() string {
	return "origin"
}

// Allows decides whether a request declaring origin may proceed. An empty
// origin means a same-origin or non-browser client.
func (p *OriginPolicy) Allows(origin string) bool {
	return origin == "" || p.allowList.Contains(origin)
}

func (p *OriginPolicy) Process(r *Request) error {
	origin := r.Header().Get(headerOrigin)
	if !p.Allows(origin) {
		return errOriginDenied(origin)
	}

	h := r.ResponseHeader()
	h.Add(headerVary, headerOrigin)
	if origin != "" {
		h.Set(headerAllowOrigin, origin)
	}
	h.Set(headerAllowCredentials, "true")

	if r.HTTP.Method == http.MethodOptions && r.Header().Get(headerRequestMethod) != "" {
		h.Set(headerAllowMethods, preflightAllowedMethods)
		if reqHeaders := r.Header().Get(headerRequestHeaders); reqHeaders != "" {
			h.Set(headerAllowHeaders, reqHeaders)
			h.Add(headerVary, headerRequestHeaders)
		}
		r.RespondNoContent()
	}

	return nil
}
