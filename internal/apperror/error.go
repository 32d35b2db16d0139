// Package apperror carries HTTP status and a stable code alongside errors
// returned by the web handlers.
package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

type Error struct {
	HTTPStatus int
	Code       string
	Message    string
	Internal   error
	Details    map[string]any
}

func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Internal
}

// WithInternal returns a copy with the underlying cause attached.
func (e *Error) WithInternal(err error) *Error {
	c := *e
	c.Internal = err
	return &c
}

func (e *Error) WithMessage(message string) *Error {
	c := *e
	c.Message = message
	return &c
}

func (e *Error) WithDetails(details map[string]any) *Error {
	c := *e
	c.Details = details
	return &c
}

func New(status int, code, message string) *Error {
	return &Error{HTTPStatus: status, Code: code, Message: message}
}

var (
	ErrBadRequest       = New(http.StatusBadRequest, "bad_request", "Solicitud inválida")
	ErrNotFound         = New(http.StatusNotFound, "not_found", "Recurso no encontrado")
	ErrNoImages         = New(http.StatusBadRequest, "no_images", "Sube al menos una foto para generar")
	ErrRunInProgress    = New(http.StatusConflict, "run_in_progress", "Ya hay una generación en curso")
	ErrPayloadTooLarge  = New(http.StatusRequestEntityTooLarge, "payload_too_large", "El archivo es demasiado grande")
	ErrUpstream         = New(http.StatusBadGateway, "upstream_error", "Hubo un error conectando con la IA. Por favor verifica tu conexión.")
	ErrInternal         = New(http.StatusInternalServerError, "internal_error", "Ocurrió un error interno")
	ErrStreamingUnavail = New(http.StatusInternalServerError, "streaming_unsupported", "El servidor no admite eventos en vivo")
)

func NewBadRequest(message string) *Error {
	return ErrBadRequest.WithMessage(message)
}

func NewNotFound(resourceType, id string) *Error {
	return ErrNotFound.WithMessage(fmt.Sprintf("%s '%s' no encontrado", resourceType, id))
}

// ToHTTPError maps err to a status and the JSON body
// {"error":{"code":...,"message":...}}. Unknown errors become 500.
func ToHTTPError(err error) (int, map[string]any) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = ErrInternal
	}

	body := map[string]any{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	return appErr.HTTPStatus, map[string]any{"error": body}
}

// Write renders err as JSON. 5xx errors are logged with their cause.
func Write(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := ToHTTPError(err)
	if status >= 500 && log != nil {
		log.Error("request error",
			slog.Int("status", status),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}
