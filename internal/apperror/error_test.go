package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "without internal error",
			err:      New(http.StatusNotFound, "not_found", "Recurso no encontrado"),
			expected: "not_found: Recurso no encontrado",
		},
		{
			name:     "with internal error",
			err:      ErrUpstream.WithInternal(errors.New("dial tcp: timeout")),
			expected: "upstream_error: " + ErrUpstream.Message + " (dial tcp: timeout)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestWithHelpers_DoNotMutateShared(t *testing.T) {
	cause := errors.New("cause")
	e := ErrBadRequest.WithMessage("acción inválida").WithInternal(cause).WithDetails(map[string]any{"field": "action"})

	assert.Equal(t, "acción inválida", e.Message)
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "Solicitud inválida", ErrBadRequest.Message)
	assert.Nil(t, ErrBadRequest.Internal)
	assert.Nil(t, ErrBadRequest.Details)
}

func TestToHTTPError(t *testing.T) {
	status, body := ToHTTPError(fmt.Errorf("wrapped: %w", NewNotFound("imagen", "abc")))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, map[string]any{"error": map[string]any{
		"code":    "not_found",
		"message": "imagen 'abc' no encontrado",
	}}, body)

	status, body = ToHTTPError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", body["error"].(map[string]any)["code"])
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/demo/generate", nil)

	Write(rec, req, nil, ErrRunInProgress)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Header().Get("content-type"), "application/json")

	var got struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "run_in_progress", got.Error.Code)
}

func TestWrite_HeadHasNoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, httptest.NewRequest(http.MethodHead, "/", nil), nil, ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
