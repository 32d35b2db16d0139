package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImage is returned by EditImage when the response carries no inline image part.
	ErrNoImage = errors.New("gemini: response contains no image")
	// ErrUnreachable wraps transport failures (DNS, dial, TLS, timeouts).
	ErrUnreachable = errors.New("gemini: service unreachable")
)

type Message struct {
	Role string
	Text string
}

type ImageInput struct {
	Data     []byte
	MimeType string
}

type Image struct {
	Data     []byte
	MimeType string
}

type ChatRequest struct {
	History           []Message
	Prompt            string
	SystemInstruction string
	Temperature       float64
}

type Response struct {
	Text   string
	Images []Image
}

// APIError is returned for HTTP responses with status >= 400.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API %s: %s", e.Status, e.Body)
}
