package errors

import (
	"fmt"
	"strings"
)

// Factory constructors below return fully-formed DomainError values with
// consistent message templates and code naming. The entity name keeps its
// original casing in messages and is lower-cased only for code construction.

// NotFound reports that an entity does not exist. A positive id is included
// in the message and stored under ContextEntityID.
func NotFound(entity string, id int64) *DomainError {
	message := fmt.Sprintf("%s not found.", entity)
	var context map[string]any
	if id > 0 {
		message = fmt.Sprintf("%s with ID %d not found.", entity, id)
		context = map[string]any{ContextEntityID: id}
	}
	return New(KindNotFound, message, codeFor(entity, "not_found"), KindNotFound.Status(), context)
}

// CreationFailed reports that an entity could not be created.
func CreationFailed(entity string, context map[string]any) *DomainError {
	message := fmt.Sprintf("Failed to create %s.", entity)
	return New(KindCreationFailed, message, codeFor(entity, "creation_failed"), KindCreationFailed.Status(), context)
}

// UpdateFailed reports that an entity could not be updated. A positive id is
// included in the message and stored under ContextEntityID.
func UpdateFailed(entity string, id int64, context map[string]any) *DomainError {
	message := fmt.Sprintf("Failed to update %s.", entity)
	if id > 0 {
		message = fmt.Sprintf("Failed to update %s with ID %d.", entity, id)
		context = withEntityID(context, id)
	}
	return New(KindUpdateFailed, message, codeFor(entity, "update_failed"), KindUpdateFailed.Status(), context)
}

// DeletionFailed reports that an entity could not be deleted. A positive id is
// included in the message and stored under ContextEntityID.
func DeletionFailed(entity string, id int64, context map[string]any) *DomainError {
	message := fmt.Sprintf("Failed to delete %s.", entity)
	if id > 0 {
		message = fmt.Sprintf("Failed to delete %s with ID %d.", entity, id)
		context = withEntityID(context, id)
	}
	return New(KindDeletionFailed, message, codeFor(entity, "deletion_failed"), KindDeletionFailed.Status(), context)
}

// Validation reports field-level validation failures. The field -> messages
// map is stored under ContextErrors and surfaced to the client.
func Validation(errs map[string][]string) *DomainError {
	return New(KindValidationFailed, "Validation failed", "validation.failed",
		KindValidationFailed.Status(), map[string]any{ContextErrors: errs})
}

// Unauthorized reports missing or invalid credentials.
func Unauthorized() *DomainError {
	return New(KindUnauthorized, "Unauthorized", "auth.unauthorized", KindUnauthorized.Status(), nil)
}

// Forbidden reports insufficient permission.
func Forbidden() *DomainError {
	return New(KindForbidden, "Forbidden", "auth.forbidden", KindForbidden.Status(), nil)
}

// BadRequest reports a malformed request.
func BadRequest() *DomainError {
	return New(KindBadRequest, "Bad request", "request.bad", KindBadRequest.Status(), nil)
}

// Conflict reports a state conflict with an existing resource.
func Conflict() *DomainError {
	return New(KindConflict, "Conflict", "request.conflict", KindConflict.Status(), nil)
}

// ServerError reports an internal failure.
func ServerError() *DomainError {
	return New(KindServerError, "Internal server error", "server.error", KindServerError.Status(), nil)
}

// ServiceUnavailable reports a temporarily unavailable dependency.
func ServiceUnavailable() *DomainError {
	return New(KindServiceUnavailable, "Service unavailable", "service.unavailable",
		KindServiceUnavailable.Status(), nil)
}

// Custom creates a DomainError with full control over message, code and status.
func Custom(message, code string, status int, context map[string]any) *DomainError {
	return New(KindGeneral, message, code, status, context)
}

func codeFor(entity, reason string) string {
	return strings.ToLower(entity) + "." + reason
}

func withEntityID(context map[string]any, id int64) map[string]any {
	out := make(map[string]any, len(context)+1)
	for k, v := range context {
		out[k] = v
	}
	out[ContextEntityID] = id
	return out
}
