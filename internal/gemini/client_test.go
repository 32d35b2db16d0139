package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Options{
		APIKey:     "secret",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
}

func TestEditImage_ReturnsFirstInlineImage(t *testing.T) {
	var got generateContentRequest
	var path, key string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{
					map[string]any{"text": "here you go"},
					map[string]any{"inlineData": map[string]any{
						"mimeType": "image/png",
						"data":     base64.StdEncoding.EncodeToString([]byte("first")),
					}},
					map[string]any{"inlineData": map[string]any{
						"mimeType": "image/png",
						"data":     base64.StdEncoding.EncodeToString([]byte("second")),
					}},
				}},
			}},
		})
	})

	img, err := client.EditImage(context.Background(), ImageInput{Data: []byte("room"), MimeType: "image/jpeg"}, "furnish it")
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-2.5-flash-image:generateContent", path)
	assert.Equal(t, "secret", key)
	assert.Equal(t, []byte("first"), img.Data)
	assert.Equal(t, "image/png", img.MimeType)

	require.Len(t, got.Contents, 1)
	parts := got.Contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "image/jpeg", parts[0].InlineData.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("room")), parts[0].InlineData.Data)
	assert.Equal(t, "furnish it", parts[1].Text)
}

func TestEditImage_NoImagePart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"I cannot do that"}]}}]}`))
	})

	_, err := client.EditImage(context.Background(), ImageInput{Data: []byte("room")}, "empty it")
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestEditImage_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	})

	_, err := client.EditImage(context.Background(), ImageInput{Data: []byte("room")}, "empty it")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "quota")
}

func TestEditImage_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := New(Options{BaseURL: url, HTTPClient: http.DefaultClient})
	_, err := client.EditImage(context.Background(), ImageInput{Data: []byte("room")}, "empty it")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestEditImage_ValidatesInput(t *testing.T) {
	client := New(Options{HTTPClient: http.DefaultClient})

	_, err := client.EditImage(context.Background(), ImageInput{}, "x")
	assert.Error(t, err)

	_, err = client.EditImage(context.Background(), ImageInput{Data: []byte("a")}, "  ")
	assert.Error(t, err)
}

func TestChat_SendsHistoryAndSystemInstruction(t *testing.T) {
	var got generateContentRequest
	var path string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hola, "},{"text":"claro."}]}}]}`))
	})

	resp, err := client.Chat(context.Background(), ChatRequest{
		History: []Message{
			{Role: "model", Text: "Bienvenido"},
			{Role: "user", Text: ""},
		},
		Prompt:            "Quiero automatizar ventas",
		SystemInstruction: "Eres Twin Bot",
		Temperature:       0.7,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hola, claro.", resp.Text)
	assert.True(t, strings.HasSuffix(path, "/models/gemini-2.5-flash:generateContent"))
	require.Len(t, got.Contents, 2)
	assert.Equal(t, "model", got.Contents[0].Role)
	assert.Equal(t, "Quiero automatizar ventas", got.Contents[1].Parts[0].Text)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "Eres Twin Bot", got.SystemInstruction.Parts[0].Text)
	assert.InDelta(t, 0.7, got.GenerationConfig.Temperature, 1e-9)
}

func TestChat_UsesConfiguredModel(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	client := New(Options{
		APIKey:     "secret",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		ChatModel:  "gemini-2.5-pro",
	})
	_, err := client.Chat(context.Background(), ChatRequest{Prompt: "hola"})
	require.NoError(t, err)
	assert.Equal(t, "/v1beta/models/gemini-2.5-pro:generateContent", path)
}

func TestChat_EmptyPrompt(t *testing.T) {
	client := New(Options{HTTPClient: http.DefaultClient})
	_, err := client.Chat(context.Background(), ChatRequest{Prompt: "   "})
	assert.Error(t, err)
}
