package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"twins-digital-web/internal/staging"
)

var (
	ErrNotImage = errors.New("intake: not an image")
	ErrTooLarge = errors.New("intake: image too large")
)

const defaultMaxBytes = 25 << 20

// Rejected is an upload that was skipped, kept for the response.
type Rejected struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// DetectMIME trusts the declared type unless it is empty or generic, then
// sniffs the bytes. Parameters are stripped.
func DetectMIME(declared string, data []byte) string {
	mimeType := stripParams(declared)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = stripParams(http.DetectContentType(data))
	}
	return strings.ToLower(mimeType)
}

func stripParams(mimeType string) string {
	mimeType = strings.TrimSpace(mimeType)
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

// FromBytes validates one image payload.
func FromBytes(name string, data []byte, declared string) (staging.Input, error) {
	if len(data) == 0 {
		return staging.Input{}, fmt.Errorf("%w: empty file", ErrNotImage)
	}
	mimeType := DetectMIME(declared, data)
	canonical, ok := Supported(mimeType)
	if !ok {
		return staging.Input{}, fmt.Errorf("%w: %s", ErrNotImage, mimeType)
	}
	return staging.Input{
		Name:    strings.TrimSpace(name),
		Payload: staging.Payload{Data: data, MimeType: canonical},
	}, nil
}

var supportedTypes = map[string]string{
	"image/jpeg":  "image/jpeg",
	"image/jpg":   "image/jpeg",
	"image/pjpeg": "image/jpeg",
	"image/png":   "image/png",
	"image/webp":  "image/webp",
	"image/gif":   "image/gif",
}

// Supported maps a MIME type to its canonical form when it is one of the
// raster formats the demo accepts and serves.
func Supported(mimeType string) (string, bool) {
	canonical, ok := supportedTypes[strings.ToLower(stripParams(mimeType))]
	return canonical, ok
}

// FromReader reads at most maxBytes and validates the result.
func FromReader(name string, r io.Reader, declared string, maxBytes int64) (staging.Input, error) {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return staging.Input{}, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > maxBytes {
		return staging.Input{}, ErrTooLarge
	}
	return FromBytes(name, data, declared)
}

type Options struct {
	MaxBytes    int64
	Concurrency int
	Logger      *slog.Logger
}

// FromMultipart decodes every uploaded file concurrently. Accepted inputs
// keep the upload order; unreadable or non-image files are logged and
// reported as rejected instead of failing the batch.
func FromMultipart(ctx context.Context, files []*multipart.FileHeader, opts Options) ([]staging.Input, []Rejected) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = 4
	}

	results := make([]staging.Input, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, fh := range files {
		i, fh := i, fh
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			results[i], errs[i] = readFileHeader(fh, opts.MaxBytes)
			return nil
		})
	}
	_ = g.Wait()

	var accepted []staging.Input
	var rejected []Rejected
	for i, fh := range files {
		if errs[i] != nil {
			logger.Warn("skipping upload", "file", fh.Filename, "err", errs[i])
			rejected = append(rejected, Rejected{Name: fh.Filename, Reason: reason(errs[i])})
			continue
		}
		accepted = append(accepted, results[i])
	}
	return accepted, rejected
}

func readFileHeader(fh *multipart.FileHeader, maxBytes int64) (staging.Input, error) {
	f, err := fh.Open()
	if err != nil {
		return staging.Input{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(path.Base(fh.Filename), path.Ext(fh.Filename))
	return FromReader(name, f, fh.Header.Get("Content-Type"), maxBytes)
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrNotImage):
		return "not_an_image"
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	default:
		return "unreadable"
	}
}
