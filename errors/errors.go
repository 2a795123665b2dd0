// Package errors provides the standardized API error model used across the
// application: a closed taxonomy of error kinds, the DomainError type carrying
// a machine code, HTTP status and structured context, and factory constructors
// for the common failure cases.
package errors

import (
	stderrors "errors"
)

// Kind classifies a domain error into one of the closed set of categories.
type Kind int

const (
	// KindGeneral is the fallback category for unclassified failures.
	KindGeneral Kind = iota
	// KindNotFound indicates a requested entity does not exist.
	KindNotFound
	// KindCreationFailed indicates an entity could not be created.
	KindCreationFailed
	// KindUpdateFailed indicates an entity could not be updated.
	KindUpdateFailed
	// KindDeletionFailed indicates an entity could not be deleted.
	KindDeletionFailed
	// KindValidationFailed indicates request input failed validation.
	KindValidationFailed
	// KindUnauthorized indicates missing or invalid credentials.
	KindUnauthorized
	// KindForbidden indicates the caller lacks permission.
	KindForbidden
	// KindBadRequest indicates a malformed request.
	KindBadRequest
	// KindConflict indicates a state conflict with an existing resource.
	KindConflict
	// KindServerError indicates an internal failure.
	KindServerError
	// KindServiceUnavailable indicates a temporarily unavailable dependency.
	KindServiceUnavailable
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindCreationFailed:
		return "creation_failed"
	case KindUpdateFailed:
		return "update_failed"
	case KindDeletionFailed:
		return "deletion_failed"
	case KindValidationFailed:
		return "validation_failed"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	case KindServerError:
		return "server_error"
	case KindServiceUnavailable:
		return "service_unavailable"
	default:
		return "general"
	}
}

// Status returns the default HTTP status associated with a Kind.
// Instances may override it at construction time.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return 404
	case KindValidationFailed:
		return 422
	case KindUnauthorized:
		return 401
	case KindForbidden:
		return 403
	case KindBadRequest:
		return 400
	case KindConflict:
		return 409
	case KindServiceUnavailable:
		return 503
	default:
		return 500
	}
}

// CodeGeneral is the machine code assigned when no code is supplied.
const CodeGeneral = "error.general"

// Stable context keys. Context values are debug-only except ContextErrors,
// which carries the field-level validation map surfaced to clients.
const (
	// ContextEntityID holds the numeric ID of the entity an operation targeted.
	ContextEntityID = "entity_id"
	// ContextErrors holds the canonical field -> messages validation map.
	ContextErrors = "errors"
	// ContextError holds the text of an underlying failure.
	ContextError = "error"
	// ContextData holds the input payload that triggered a failure.
	ContextData = "data"
)

// DomainError is a structured error raised by business logic. It carries a
// human message, a stable lower-dotted machine code ("entity.reason"), an HTTP
// status, and an open context map. A DomainError is constructed once at the
// error site and read immutably afterwards; AddContext is the only permitted
// enrichment before it crosses the rendering boundary.
type DomainError struct {
	kind    Kind
	message string
	code    string
	status  int
	context map[string]any
}

// New creates a DomainError with full control over all fields.
// An empty code defaults to CodeGeneral; a nil context defaults to empty.
// The HTTP status range is not validated here; the response renderer clamps
// out-of-range values defensively.
func New(kind Kind, message, code string, status int, context map[string]any) *DomainError {
	if code == "" {
		code = CodeGeneral
	}
	return &DomainError{
		kind:    kind,
		message: message,
		code:    code,
		status:  status,
		context: cloneContext(context),
	}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.message
}

// Kind returns the taxonomy category of the error.
func (e *DomainError) Kind() Kind {
	return e.kind
}

// Message returns the human-readable message.
func (e *DomainError) Message() string {
	return e.message
}

// Code returns the machine-readable error code.
func (e *DomainError) Code() string {
	return e.code
}

// Status returns the HTTP status for the error.
func (e *DomainError) Status() int {
	return e.status
}

// Context returns a defensive copy of the context map, never the internal map.
func (e *DomainError) Context() map[string]any {
	if len(e.context) == 0 {
		return nil
	}
	return cloneContext(e.context)
}

// AddContext shallow-merges the provided entries into the error context.
// New keys overwrite existing keys of the same name.
func (e *DomainError) AddContext(context map[string]any) {
	if len(context) == 0 {
		return
	}
	if e.context == nil {
		e.context = make(map[string]any, len(context))
	}
	for k, v := range context {
		e.context[k] = v
	}
}

// AsDomainError extracts a *DomainError from an error chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func cloneContext(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
