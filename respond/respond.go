// Package respond implements the uniform JSON response contract of the API:
// the success/error envelope every endpoint returns, and the Renderer that
// normalizes any error crossing the boundary into that envelope.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the wire format of every API response.
//
// Invariants: a success envelope carries a nil code and nil errors; an error
// envelope carries nil data. The debug field appears only when the renderer
// runs in debug mode and the rendered error carried context.
type Envelope struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Code    *string        `json:"code"`
	Data    any            `json:"data"`
	Errors  any            `json:"errors"`
	Meta    map[string]any `json:"meta"`
	Debug   map[string]any `json:"debug,omitempty"`
}

// Paginator is the paginated-result collaborator Success recognizes. A page
// satisfying it is flattened into its items with the window exposed under
// meta.pagination.
type Paginator interface {
	CurrentPage() int
	LastPage() int
	PerPage() int
	Total() int
	HasMorePages() bool
	Items() any
}

// Success builds a success envelope. A nil meta becomes an empty object.
// When data is a Paginator the envelope carries the page items and a
// meta.pagination block instead of the paginator itself.
func Success(data any, message string, status int, meta map[string]any) (Envelope, int) {
	if meta == nil {
		meta = map[string]any{}
	}

	if page, ok := data.(Paginator); ok {
		meta["pagination"] = map[string]any{
			"current_page":   page.CurrentPage(),
			"last_page":      page.LastPage(),
			"per_page":       page.PerPage(),
			"total":          page.Total(),
			"has_more_pages": page.HasMorePages(),
		}
		data = page.Items()
	}

	return Envelope{
		Status:  true,
		Message: message,
		Data:    data,
		Meta:    meta,
	}, status
}

// OK builds a plain 200 success envelope.
func OK(data any, message string) (Envelope, int) {
	return Success(data, message, http.StatusOK, nil)
}

// Error builds an error envelope with an optional field-error payload.
func Error(message string, status int, errs any) (Envelope, int) {
	return Envelope{
		Status:  false,
		Message: message,
		Errors:  errs,
	}, status
}

// Unauthorized builds a 401 error envelope.
func Unauthorized(message string) (Envelope, int) {
	if message == "" {
		message = "Unauthorized"
	}
	return Error(message, http.StatusUnauthorized, nil)
}

// NotFound builds a 404 error envelope.
func NotFound(message string) (Envelope, int) {
	if message == "" {
		message = "Not found"
	}
	return Error(message, http.StatusNotFound, nil)
}

// ValidationError builds a 422 error envelope carrying the field error map.
func ValidationError(errs map[string][]string, message string) (Envelope, int) {
	if message == "" {
		message = "Validation failed"
	}
	return Error(message, http.StatusUnprocessableEntity, errs)
}

// Write serializes an envelope to the response writer with the given status.
// Encoding failures are logged, not surfaced; headers are already gone out.
func Write(w http.ResponseWriter, env Envelope, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}

func codePtr(code string) *string {
	return &code
}
