package models

// DefaultSuccessMessage is used when a handler returns data without its own
// message.
const DefaultSuccessMessage = "Request completed successfully"

// SuccessEnvelope is the wire shape of every successful response produced
// by the ingress pipeline.
type SuccessEnvelope struct {
	// Success is always true for this envelope.
	Success bool `json:"success"`

	// Data carries the handler result. It is serialized even when nil so
	// clients can rely on the key being present.
	Data any `json:"data"`

	// Message is a short human-readable status line.
	Message string `json:"message"`
}

// FailureEnvelope is the wire shape of every failed response produced by
// the ingress pipeline, including "route not found".
type FailureEnvelope struct {
	// Success is always false for this envelope.
	Success bool `json:"success"`

	// ErrorCode is a stable machine-readable identifier such as
	// "MALFORMED_BODY" or "NOT_FOUND".
	ErrorCode string `json:"errorCode"`

	// Message is a client-safe description. Unclassified failures never
	// carry internal details here.
	Message string `json:"message"`

	// Details is optional structured context (for example which field
	// failed). Omitted from JSON when nil.
	Details any `json:"details,omitempty"`
}

// NewSuccessEnvelope wraps data into a [SuccessEnvelope]. An empty message
// is replaced by [DefaultSuccessMessage].
func NewSuccessEnvelope(data any, message string) SuccessEnvelope {
	if message == "" {
		message = DefaultSuccessMessage
	}
	return SuccessEnvelope{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// NewFailureEnvelope builds a [FailureEnvelope] for the given error code.
func NewFailureEnvelope(errorCode, message string, details any) FailureEnvelope {
	return FailureEnvelope{
		Success:   false,
		ErrorCode: errorCode,
		Message:   message,
		Details:   details,
	}
}
