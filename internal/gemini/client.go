package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultChatModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-2.5-flash-image"
)

type Options struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	ChatModel  string
	ImageModel string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	chatModel  string
	imageModel string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = "v1beta"
	}

	chatModel := strings.TrimSpace(opts.ChatModel)
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	imageModel := strings.TrimSpace(opts.ImageModel)
	if imageModel == "" {
		imageModel = DefaultImageModel
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		apiVersion: apiVersion,
		chatModel:  chatModel,
		imageModel: imageModel,
		httpClient: opts.HTTPClient,
		logger:     logger,
	}
}

// EditImage submits one image plus a natural-language instruction and returns
// the first inline image of the response. Exactly one request is made.
func (c *Client) EditImage(ctx context.Context, img ImageInput, instruction string) (Image, error) {
	if len(img.Data) == 0 {
		return Image{}, errors.New("image is empty")
	}
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return Image{}, errors.New("instruction is empty")
	}

	mimeType := strings.TrimSpace(img.MimeType)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	req := generateContentRequest{
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{InlineData: &blob{
						Data:     base64.StdEncoding.EncodeToString(img.Data),
						MimeType: mimeType,
					}},
					{Text: instruction},
				},
			},
		},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}

	resp, err := c.generateContent(ctx, c.imageModel, req)
	if err != nil {
		return Image{}, err
	}
	if len(resp.Images) == 0 {
		return Image{}, ErrNoImage
	}
	return resp.Images[0], nil
}

// Chat sends the prior turns, the new utterance and the system instruction
// and returns the model's text reply.
func (c *Client) Chat(ctx context.Context, chat ChatRequest) (Response, error) {
	prompt := strings.TrimSpace(chat.Prompt)
	if prompt == "" {
		return Response{}, errors.New("prompt is empty")
	}

	req := generateContentRequest{
		Contents: buildContents(chat.History, prompt),
		GenerationConfig: generationConfig{
			Temperature: chat.Temperature,
		},
	}
	if instruction := strings.TrimSpace(chat.SystemInstruction); instruction != "" {
		req.SystemInstruction = &content{Role: "user", Parts: []part{{Text: instruction}}}
	}

	return c.generateContent(ctx, c.chatModel, req)
}

func buildContents(history []Message, prompt string) []content {
	contents := make([]content, 0, len(history)+1)
	for _, msg := range history {
		if strings.TrimSpace(msg.Text) == "" {
			continue
		}
		role := msg.Role
		if role == "" {
			role = "user"
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: msg.Text}},
		})
	}

	return append(contents, content{
		Role:  "user",
		Parts: []part{{Text: prompt}},
	})
}

func (c *Client) generateContent(ctx context.Context, model string, payload generateContentRequest) (Response, error) {
	if c.httpClient == nil {
		return Response{}, errors.New("http client is nil")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Response{}, fmt.Errorf("request: %w", ctxErr)
		}
		return Response{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("gemini call", "model", model, "status", httpResp.StatusCode, "dur_ms", time.Since(start).Milliseconds())

	if httpResp.StatusCode >= 400 {
		return Response{}, &APIError{
			StatusCode: httpResp.StatusCode,
			Status:     httpResp.Status,
			Body:       strings.TrimSpace(string(rawBody)),
		}
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}

	return extractParts(decoded, c.logger), nil
}

func extractParts(resp generateContentResponse, logger *slog.Logger) Response {
	if len(resp.Candidates) == 0 {
		return Response{}
	}

	var textBuilder strings.Builder
	var images []Image

	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			textBuilder.WriteString(p.Text)
		}
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			logger.Warn("skipping undecodable inline image", "err", err)
			continue
		}
		mimeType := p.InlineData.MimeType
		if mimeType == "" {
			mimeType = "image/png"
		}
		images = append(images, Image{Data: data, MimeType: mimeType})
	}

	return Response{
		Text:   textBuilder.String(),
		Images: images,
	}
}

type generateContentRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature        float64  `json:"temperature,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string `json:"text,omitempty"`
	InlineData *blob  `json:"inlineData,omitempty"`
}

type blob struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}
