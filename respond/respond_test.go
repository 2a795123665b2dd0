package respond

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdallah-SE/ecommerce-api/model"
)

func TestSuccess(t *testing.T) {
	env, status := Success(map[string]string{"name": "Jane"}, "Created", 201, nil)

	assert.Equal(t, 201, status)
	assert.True(t, env.Status)
	assert.Equal(t, "Created", env.Message)
	assert.Nil(t, env.Code)
	assert.Nil(t, env.Errors)
	assert.Equal(t, map[string]any{}, env.Meta)
	assert.Equal(t, map[string]string{"name": "Jane"}, env.Data)
}

func TestSuccess_Paginated(t *testing.T) {
	rows := []model.Admin{{ID: 1, Name: "Jane"}, {ID: 2, Name: "John"}}
	page := model.NewPage(rows, 2, 10, 42)

	env, status := Success(page, "Admins list", 200, nil)

	assert.Equal(t, 200, status)
	assert.Equal(t, rows, env.Data, "data should be the page items, not the paginator")

	pagination, ok := env.Meta["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"current_page":   2,
		"last_page":      5,
		"per_page":       10,
		"total":          42,
		"has_more_pages": true,
	}, pagination)
}

func TestSuccess_PaginatedKeepsCallerMeta(t *testing.T) {
	page := model.NewPage([]model.Admin{}, 1, 15, 0)

	env, _ := Success(page, "Admins list", 200, map[string]any{"filtered": true})

	assert.Equal(t, true, env.Meta["filtered"])
	assert.Contains(t, env.Meta, "pagination")
}

func TestError(t *testing.T) {
	env, status := Error("Something went wrong", 400, nil)

	assert.Equal(t, 400, status)
	assert.False(t, env.Status)
	assert.Equal(t, "Something went wrong", env.Message)
	assert.Nil(t, env.Data)
}

func TestConvenienceBuilders(t *testing.T) {
	tests := []struct {
		name        string
		env         Envelope
		status      int
		wantMessage string
		wantStatus  int
	}{
		{"unauthorized default", first(Unauthorized("")), second(Unauthorized("")), "Unauthorized", 401},
		{"unauthorized custom", first(Unauthorized("Invalid email or password")), second(Unauthorized("Invalid email or password")), "Invalid email or password", 401},
		{"not found", first(NotFound("")), second(NotFound("")), "Not found", 404},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.wantMessage, test.env.Message)
			assert.Equal(t, test.wantStatus, test.status)
			assert.False(t, test.env.Status)
		})
	}
}

func TestValidationError(t *testing.T) {
	errs := map[string][]string{"email": {"required"}}
	env, status := ValidationError(errs, "")

	assert.Equal(t, 422, status)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Equal(t, errs, env.Errors)
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	env, status := OK(map[string]string{"k": "v"}, "Success")

	Write(rec, env, status)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, true, decoded["status"])
	assert.Nil(t, decoded["code"])
	assert.Nil(t, decoded["errors"])
}

func first(env Envelope, _ int) Envelope { return env }
func second(_ Envelope, status int) int  { return status }
