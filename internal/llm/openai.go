package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider brainstorms with chat completions in JSON mode and renders
// with the images endpoint.
type OpenAIProvider struct {
	apiKey     string
	textModel  string
	imageModel string
	timeout    time.Duration
	baseURL    string
	client     *openai.Client
}

func NewOpenAIProvider(apiKey, textModel, imageModel string, timeout time.Duration) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:     strings.TrimSpace(apiKey),
		textModel:  strings.TrimSpace(textModel),
		imageModel: strings.TrimSpace(imageModel),
		timeout:    timeout,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) ensureClient() error {
	if p.apiKey == "" {
		return ErrNoAPIKey
	}
	if p.client == nil {
		cfg := openai.DefaultConfig(p.apiKey)
		if p.baseURL != "" {
			cfg.BaseURL = p.baseURL
		}
		p.client = openai.NewClientWithConfig(cfg)
	}
	return nil
}

func (p *OpenAIProvider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func (p *OpenAIProvider) Brainstorm(ctx context.Context, req BrainstormRequest) ([]Scene, error) {
	if err := p.ensureClient(); err != nil {
		return nil, err
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	model := p.textModel
	if model == "" {
		model = openai.GPT4oMini
	}
	system := `You are a creative director. Return ONLY valid JSON of the form {"scenes": [{"title": string, "prompt": string, "description": string}]}.`
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: brainstormPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: brainstorm: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	scenes, err := parseScenes(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	return scenes, nil
}

func (p *OpenAIProvider) RenderImage(ctx context.Context, req ImageRequest) (ImageResult, error) {
	if err := p.ensureClient(); err != nil {
		return ImageResult{}, err
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	model := p.imageModel
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	imgReq := openai.ImageRequest{
		Prompt: req.Prompt,
		Model:  model,
		N:      1,
		Size:   openAISize(model, req.AspectRatio),
	}
	// gpt-image models always answer in base64 and reject the field
	if strings.HasPrefix(model, "dall-e") {
		imgReq.ResponseFormat = openai.CreateImageResponseFormatB64JSON
	}
	resp, err := p.client.CreateImage(ctx, imgReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return ImageResult{}, fmt.Errorf("openai: image (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return ImageResult{}, fmt.Errorf("openai: image: %w", err)
	}
	if len(resp.Data) == 0 {
		return ImageResult{}, ErrNoImage
	}
	switch d := resp.Data[0]; {
	case d.B64JSON != "":
		return ImageResult{URL: dataURI("image/png", d.B64JSON)}, nil
	case d.URL != "":
		return ImageResult{URL: d.URL}, nil
	}
	return ImageResult{}, ErrNoImage
}

func openAISize(model, aspect string) string {
	wide := aspect == "16:9"
	switch {
	case strings.HasPrefix(model, "dall-e-3") && wide:
		return openai.CreateImageSize1792x1024
	case strings.HasPrefix(model, "dall-e"):
		return openai.CreateImageSize1024x1024
	case wide:
		return "1536x1024"
	default:
		return "1024x1024"
	}
}
