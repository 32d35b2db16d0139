package staging

import (
	"context"
	"errors"
	"fmt"

	"twins-digital-web/internal/gemini"
)

type imageEditor interface {
	EditImage(ctx context.Context, img gemini.ImageInput, instruction string) (gemini.Image, error)
}

// GeminiTransformer adapts the Gemini client to the pipeline. It performs
// exactly one request per call and maps client errors onto staging's.
type GeminiTransformer struct {
	Client imageEditor
}

var _ Transformer = (*GeminiTransformer)(nil)

func NewGeminiTransformer(client *gemini.Client) *GeminiTransformer {
	return &GeminiTransformer{Client: client}
}

func (t *GeminiTransformer) Transform(ctx context.Context, img Payload, instruction string) (Payload, error) {
	out, err := t.Client.EditImage(ctx, gemini.ImageInput{Data: img.Data, MimeType: img.MimeType}, instruction)
	switch {
	case errors.Is(err, gemini.ErrNoImage):
		return Payload{}, fmt.Errorf("%w: %w", ErrNoImage, err)
	case errors.Is(err, gemini.ErrUnreachable):
		return Payload{}, fmt.Errorf("%w: %w", ErrUnreachable, err)
	case err != nil:
		return Payload{}, err
	}
	return Payload{Data: out.Data, MimeType: out.MimeType}, nil
}
