package respond

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Abdallah-SE/ecommerce-api/auth"
	"github.com/Abdallah-SE/ecommerce-api/errors"
	"github.com/Abdallah-SE/ecommerce-api/storage"
	"github.com/Abdallah-SE/ecommerce-api/validate"
)

// Routing failure signals. The HTTP gateway's fallback handlers raise these
// so unmatched routes flow through the same rendering pipeline as every other
// error.
var (
	// ErrRouteNotFound signals a request for an unregistered route.
	ErrRouteNotFound = stderrors.New("route not found")
	// ErrMethodNotAllowed signals a request with an unsupported method.
	ErrMethodNotAllowed = stderrors.New("method not allowed")
)

// Renderer converts any error crossing the system boundary into an envelope
// and an HTTP status. Classification runs through a fixed, precedence-ordered
// rule list rather than open dispatch: the first matching rule wins, and a
// secondary exact-type table resolves the status of anything unclassified.
// A Renderer is stateless apart from its configuration and safe for
// concurrent use.
type Renderer struct {
	debug  bool
	logger *slog.Logger
	rules  []renderRule
}

// renderRule pairs a typed predicate with the handler producing the response
// for errors that predicate matches.
type renderRule struct {
	name   string
	match  func(err error) bool
	render func(err error) (Envelope, int)
}

// NewRenderer creates a Renderer. The debug flag controls whether raw error
// text and domain-error context reach the client; it must be false in
// production. A nil logger falls back to slog.Default.
func NewRenderer(debug bool, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{debug: debug, logger: logger}

	// Precedence order is contractual: a domain error that wraps a
	// validation failure renders as the domain error, never as 422.
	r.rules = []renderRule{
		{
			name: "domain",
			match: func(err error) bool {
				_, ok := errors.AsDomainError(err)
				return ok
			},
			render: r.renderDomainError,
		},
		{
			name: "validation",
			match: func(err error) bool {
				var verrs validate.Errors
				return stderrors.As(err, &verrs)
			},
			render: r.renderValidationError,
		},
		{
			name: "authentication",
			match: func(err error) bool {
				return stderrors.Is(err, auth.ErrUnauthenticated)
			},
			render: func(error) (Envelope, int) {
				return errorEnvelope("Unauthenticated", "auth.unauthenticated", http.StatusUnauthorized, nil, nil)
			},
		},
		{
			name: "record not found",
			match: func(err error) bool {
				var miss *storage.RecordNotFoundError
				return stderrors.As(err, &miss)
			},
			render: func(err error) (Envelope, int) {
				var miss *storage.RecordNotFoundError
				stderrors.As(err, &miss)
				return errorEnvelope(miss.Entity+" not found", "model.not_found", http.StatusNotFound, nil, nil)
			},
		},
		{
			name: "route not found",
			match: func(err error) bool {
				return stderrors.Is(err, ErrRouteNotFound)
			},
			render: func(error) (Envelope, int) {
				return errorEnvelope("Resource not found", "resource.not_found", http.StatusNotFound, nil, nil)
			},
		},
		{
			name: "method not allowed",
			match: func(err error) bool {
				return stderrors.Is(err, ErrMethodNotAllowed)
			},
			render: func(error) (Envelope, int) {
				return errorEnvelope("Method not allowed", "method.not_allowed", http.StatusMethodNotAllowed, nil, nil)
			},
		},
		{
			name: "query error",
			match: func(err error) bool {
				var qe *storage.QueryError
				return stderrors.As(err, &qe)
			},
			render: func(error) (Envelope, int) {
				return errorEnvelope("Database error occurred", "database.error", http.StatusInternalServerError, nil, nil)
			},
		},
	}
	return r
}

// Render classifies err and produces the envelope and HTTP status to send.
// The raw error is logged exactly once here, with full detail; the response
// never carries traces, SQL, or internal messages outside debug mode.
// Rendering never mutates err: calling Render twice yields identical results.
func (r *Renderer) Render(err error) (Envelope, int) {
	r.logError(err)

	for _, rule := range r.rules {
		if rule.match(err) {
			return rule.render(err)
		}
	}
	return r.renderGeneralError(err)
}

// renderDomainError maps a DomainError straight onto the envelope. The
// context.errors entry, when present, is surfaced regardless of mode; the
// full context appears under debug only in debug mode.
func (r *Renderer) renderDomainError(err error) (Envelope, int) {
	de, _ := errors.AsDomainError(err)
	context := de.Context()

	var fieldErrs any
	if v, ok := context[errors.ContextErrors]; ok {
		fieldErrs = v
	}

	var debugCtx map[string]any
	if r.debug && len(context) > 0 {
		debugCtx = context
	}

	return errorEnvelope(de.Message(), de.Code(), clampStatus(de.Status()), fieldErrs, debugCtx)
}

func (r *Renderer) renderValidationError(err error) (Envelope, int) {
	var verrs validate.Errors
	stderrors.As(err, &verrs)
	return errorEnvelope("Validation failed", "validation.failed",
		http.StatusUnprocessableEntity, map[string][]string(verrs), nil)
}

// renderGeneralError is the terminal fallback: the status comes from a
// secondary exact-type lookup, the message is generic outside debug mode.
func (r *Renderer) renderGeneralError(err error) (Envelope, int) {
	message := "An unexpected error occurred"
	if r.debug && err != nil {
		message = err.Error()
	}
	return errorEnvelope(message, errors.CodeGeneral, fallbackStatus(err), nil, nil)
}

// fallbackStatus resolves the status of an unclassified error by exact type.
// Unlike the rule predicates it does not walk wrap chains; it exists so the
// well-known foreign types keep their canonical status even when rendered
// through the fallback path.
func fallbackStatus(err error) int {
	switch err.(type) {
	case *storage.RecordNotFoundError:
		return http.StatusNotFound
	case *storage.QueryError:
		return http.StatusInternalServerError
	case validate.Errors:
		return http.StatusUnprocessableEntity
	}
	switch err {
	case auth.ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrRouteNotFound:
		return http.StatusNotFound
	case ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed
	}
	return http.StatusInternalServerError
}

// logError records the raw failure with full diagnostic detail. Logging never
// alters the response: query text and parameters stay in the log, and the
// call is best-effort by contract.
func (r *Renderer) logError(err error) {
	if err == nil {
		return
	}

	attrs := []any{
		"error", err.Error(),
		"type", fmt.Sprintf("%T", err),
	}

	var qe *storage.QueryError
	if stderrors.As(err, &qe) {
		attrs = append(attrs, "sql", qe.Query, "bindings", qe.Args)
	}
	if de, ok := errors.AsDomainError(err); ok {
		attrs = append(attrs, "code", de.Code(), "context", de.Context())
	}

	r.logger.Error("request failed", attrs...)
}

// clampStatus forces out-of-range statuses to 500 so a miswired DomainError
// still produces a valid HTTP response.
func clampStatus(status int) int {
	if status < 100 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

func errorEnvelope(message, code string, status int, fieldErrs any, debugCtx map[string]any) (Envelope, int) {
	return Envelope{
		Status:  false,
		Message: message,
		Code:    codePtr(code),
		Errors:  fieldErrs,
		Debug:   debugCtx,
	}, status
}
