package respond

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdallah-SE/ecommerce-api/auth"
	"github.com/Abdallah-SE/ecommerce-api/errors"
	"github.com/Abdallah-SE/ecommerce-api/storage"
	"github.com/Abdallah-SE/ecommerce-api/validate"
)

func newTestRenderer(debug bool) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	return NewRenderer(debug, logger), &buf
}

func TestRender_DomainError(t *testing.T) {
	r, logs := newTestRenderer(false)

	env, status := r.Render(errors.NotFound("Admin", 42))

	assert.Equal(t, 404, status)
	assert.False(t, env.Status)
	assert.Equal(t, "Admin with ID 42 not found.", env.Message)
	require.NotNil(t, env.Code)
	assert.Equal(t, "admin.not_found", *env.Code)
	assert.Nil(t, env.Errors)
	assert.Nil(t, env.Debug, "debug must never appear outside debug mode")
	assert.Contains(t, logs.String(), "admin.not_found")
}

func TestRender_DomainErrorDebugContext(t *testing.T) {
	err := errors.CreationFailed("Admin", map[string]any{errors.ContextError: "duplicate email"})

	t.Run("debug on", func(t *testing.T) {
		r, _ := newTestRenderer(true)
		env, _ := r.Render(err)
		require.NotNil(t, env.Debug)
		assert.Equal(t, "duplicate email", env.Debug[errors.ContextError])
	})

	t.Run("debug on, empty context", func(t *testing.T) {
		r, _ := newTestRenderer(true)
		env, _ := r.Render(errors.Unauthorized())
		assert.Nil(t, env.Debug)
	})

	t.Run("debug off", func(t *testing.T) {
		r, _ := newTestRenderer(false)
		env, _ := r.Render(err)
		assert.Nil(t, env.Debug)
	})
}

func TestRender_DomainErrorSurfacesFieldErrors(t *testing.T) {
	fieldErrs := map[string][]string{"email": {"required"}}
	err := errors.Validation(fieldErrs)

	// context.errors is surfaced regardless of debug mode.
	for _, debug := range []bool{false, true} {
		r, _ := newTestRenderer(debug)
		env, status := r.Render(err)

		assert.Equal(t, 422, status)
		assert.Equal(t, fieldErrs, env.Errors)
	}
}

func TestRender_DomainErrorPrecedesValidation(t *testing.T) {
	// A domain error wrapping a validation failure renders as the domain
	// error: first matching rule wins.
	inner := validate.Errors{"email": {"required"}}
	de := errors.Custom("tenant suspended", "tenant.suspended", 402, nil)
	wrapped := fmt.Errorf("%w: %w", de, inner)

	r, _ := newTestRenderer(false)
	env, status := r.Render(wrapped)

	assert.Equal(t, 402, status)
	assert.Equal(t, "tenant.suspended", *env.Code)
}

func TestRender_ClampsOutOfRangeStatus(t *testing.T) {
	r, _ := newTestRenderer(false)

	env, status := r.Render(errors.Custom("weird", "weird.status", 999, nil))

	assert.Equal(t, 500, status)
	assert.Equal(t, "weird.status", *env.Code)
}

func TestRender_ValidationError(t *testing.T) {
	r, _ := newTestRenderer(false)

	env, status := r.Render(validate.Errors{"email": {"The email field is required."}})

	assert.Equal(t, 422, status)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Equal(t, "validation.failed", *env.Code)
	assert.Equal(t, map[string][]string{"email": {"The email field is required."}}, env.Errors)
}

func TestRender_AuthenticationError(t *testing.T) {
	r, _ := newTestRenderer(false)

	env, status := r.Render(auth.ErrUnauthenticated)

	assert.Equal(t, 401, status)
	assert.Equal(t, "Unauthenticated", env.Message)
	assert.Equal(t, "auth.unauthenticated", *env.Code)
}

func TestRender_RecordNotFound(t *testing.T) {
	r, _ := newTestRenderer(false)

	env, status := r.Render(&storage.RecordNotFoundError{Entity: "Admin", ID: 3})

	assert.Equal(t, 404, status)
	assert.Equal(t, "Admin not found", env.Message)
	assert.Equal(t, "model.not_found", *env.Code)
}

func TestRender_RoutingErrors(t *testing.T) {
	r, _ := newTestRenderer(false)

	env, status := r.Render(ErrRouteNotFound)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Resource not found", env.Message)
	assert.Equal(t, "resource.not_found", *env.Code)

	env, status = r.Render(ErrMethodNotAllowed)
	assert.Equal(t, 405, status)
	assert.Equal(t, "Method not allowed", env.Message)
	assert.Equal(t, "method.not_allowed", *env.Code)
}

func TestRender_QueryError(t *testing.T) {
	r, logs := newTestRenderer(false)

	err := &storage.QueryError{
		Query: "SELECT * FROM admins WHERE id = ?",
		Args:  []any{int64(3)},
		Err:   stderrors.New("connection reset"),
	}
	env, status := r.Render(err)

	assert.Equal(t, 500, status)
	assert.Equal(t, "Database error occurred", env.Message)
	assert.Equal(t, "database.error", *env.Code)

	// SQL goes to the log, never to the client.
	assert.Contains(t, logs.String(), "SELECT * FROM admins")
	body, err2 := json.Marshal(env)
	require.NoError(t, err2)
	assert.NotContains(t, string(body), "SELECT")
}

func TestRender_GeneralFallback(t *testing.T) {
	boom := stderrors.New("something exploded internally")

	t.Run("production mode hides the message", func(t *testing.T) {
		r, logs := newTestRenderer(false)
		env, status := r.Render(boom)

		assert.Equal(t, 500, status)
		assert.Equal(t, "An unexpected error occurred", env.Message)
		assert.Equal(t, "error.general", *env.Code)
		assert.Contains(t, logs.String(), "something exploded internally")
	})

	t.Run("debug mode shows the raw message", func(t *testing.T) {
		r, _ := newTestRenderer(true)
		env, status := r.Render(boom)

		assert.Equal(t, 500, status)
		assert.Equal(t, "something exploded internally", env.Message)
		assert.Equal(t, "error.general", *env.Code)
	})
}

func TestFallbackStatus_ExactTypeTable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"record not found", &storage.RecordNotFoundError{Entity: "Admin"}, 404},
		{"query error", &storage.QueryError{Err: stderrors.New("x")}, 500},
		{"validation", validate.Errors{"f": {"m"}}, 422},
		{"unauthenticated", auth.ErrUnauthenticated, 401},
		{"route not found", ErrRouteNotFound, 404},
		{"method not allowed", ErrMethodNotAllowed, 405},
		{"unknown", stderrors.New("mystery"), 500},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, fallbackStatus(test.err))
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	r, _ := newTestRenderer(true)
	err := errors.UpdateFailed("Admin", 5, map[string]any{errors.ContextError: "locked"})

	env1, status1 := r.Render(err)
	env2, status2 := r.Render(err)

	assert.Equal(t, status1, status2)

	body1, err1 := json.Marshal(env1)
	require.NoError(t, err1)
	body2, err2 := json.Marshal(env2)
	require.NoError(t, err2)
	assert.Equal(t, body1, body2, "rendering must not mutate the error between calls")
}

func TestRender_LoggingDoesNotAlterResponse(t *testing.T) {
	quiet, _ := newTestRenderer(false)
	noisy := NewRenderer(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})))

	err := errors.NotFound("Admin", 1)
	env1, status1 := quiet.Render(err)
	env2, status2 := noisy.Render(err)

	assert.Equal(t, status1, status2)
	assert.Equal(t, env1.Message, env2.Message)
	assert.Equal(t, *env1.Code, *env2.Code)
}
