package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiAPIBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiProvider talks to the Gemini generateContent REST endpoint: one text
// model for brainstorming and one image model for rendering.
type GeminiProvider struct {
	apiKey     string
	textModel  string
	imageModel string
	timeout    time.Duration
	baseURL    string
	client     *http.Client
}

func NewGeminiProvider(apiKey, textModel, imageModel string, timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{
		apiKey:     strings.TrimSpace(apiKey),
		textModel:  strings.TrimSpace(textModel),
		imageModel: strings.TrimSpace(imageModel),
		timeout:    timeout,
		baseURL:    geminiAPIBaseURL,
		client:     &http.Client{},
	}
}

func (g *GeminiProvider) Name() string { return "gemini" }

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType   string             `json:"responseMimeType,omitempty"`
	ResponseModalities []string           `json:"responseModalities,omitempty"`
	ImageConfig        *geminiImageConfig `json:"imageConfig,omitempty"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content      *geminiContent `json:"content"`
	FinishReason string         `json:"finishReason"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (g *GeminiProvider) Brainstorm(ctx context.Context, req BrainstormRequest) ([]Scene, error) {
	apiReq := geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: brainstormPrompt(req)}}}},
		GenerationConfig: &geminiGenerationConfig{ResponseMIMEType: "application/json"},
	}
	resp, err := g.generate(ctx, g.textModel, apiReq)
	if err != nil {
		return nil, err
	}
	var text strings.Builder
	for _, part := range firstParts(resp) {
		text.WriteString(part.Text)
	}
	scenes, err := parseScenes(text.String())
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return scenes, nil
}

func (g *GeminiProvider) RenderImage(ctx context.Context, req ImageRequest) (ImageResult, error) {
	apiReq := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &geminiImageConfig{AspectRatio: req.AspectRatio},
		},
	}
	resp, err := g.generate(ctx, g.imageModel, apiReq)
	if err != nil {
		return ImageResult{}, err
	}
	for _, part := range firstParts(resp) {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return ImageResult{URL: dataURI(part.InlineData.MimeType, part.InlineData.Data)}, nil
		}
	}
	return ImageResult{}, ErrNoImage
}

func firstParts(resp *geminiResponse) []geminiPart {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	return resp.Candidates[0].Content.Parts
}

func (g *GeminiProvider) generate(ctx context.Context, model string, apiReq geminiRequest) (*geminiResponse, error) {
	if g.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}
	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("gemini returned status %d: %s", httpResp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("gemini: unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("gemini API error (%s): %s", apiResp.Error.Status, apiResp.Error.Message)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %s", httpResp.StatusCode, string(respBody))
	}
	return &apiResp, nil
}
