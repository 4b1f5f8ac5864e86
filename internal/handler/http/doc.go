// Package http is the HTTP transport of the ingress service.
//
// It assembles the request pipeline from configuration (origin policy,
// security headers, static files, body decoding, upload staging, routing and
// envelope formatting), registers the built-in routes and wraps the pipeline
// in the outer middleware chain: trace id, access logging, metrics and gzip.
package http
