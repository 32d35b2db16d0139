package intake

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"twins-digital-web/internal/staging"
)

const SampleName = "Sample_Image.jpg"

// Fetcher downloads remote images, used for the fixed demo sample.
type Fetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// FetchSample performs one GET of url and returns it as a sample input.
func (f *Fetcher) FetchSample(ctx context.Context, url string) (staging.Input, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(url), nil)
	if err != nil {
		return staging.Input{}, fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return staging.Input{}, fmt.Errorf("fetch sample: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return staging.Input{}, fmt.Errorf("fetch sample: unexpected status %s", resp.Status)
	}

	in, err := FromReader(SampleName, resp.Body, resp.Header.Get("Content-Type"), f.MaxBytes)
	if err != nil {
		return staging.Input{}, err
	}
	in.Sample = true
	return in, nil
}
