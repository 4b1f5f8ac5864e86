// Package pipeline implements the HTTP ingress pipeline: an explicit ordered
// list of stages that every request passes before and after route dispatch.
//
// The default order is
//
//	OriginPolicy → SecurityHeaders → StaticFiles → BodyDecoder → UploadStager →
//	Router (or NotFound) → EnvelopeFormatter
//
// and any error returned by a stage or a route handler short-circuits to the
// ErrorHandler, which is always the last component to touch the response.
// Stages communicate only through the per-request [Request]; the only state
// shared between requests is immutable configuration.
package pipeline
