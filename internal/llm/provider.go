package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Provider is the generative backend behind the gallery generator: it turns
// a theme into scene descriptions and a scene prompt into an image.
type Provider interface {
	Name() string
	Brainstorm(ctx context.Context, req BrainstormRequest) ([]Scene, error)
	RenderImage(ctx context.Context, req ImageRequest) (ImageResult, error)
}

type BrainstormRequest struct {
	Theme string
	Count int
}

// Scene is one brainstormed image idea prior to rendering.
type Scene struct {
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	Description string `json:"description"`
}

type ImageRequest struct {
	Prompt      string
	AspectRatio string
}

// ImageResult.URL is either a fetchable http(s) URL or a data: URI.
type ImageResult struct {
	URL string
}

var (
	ErrNoAPIKey      = errors.New("llm: api key not configured")
	ErrEmptyResponse = errors.New("llm: empty response")
	ErrNoImage       = errors.New("llm: response carried no image")
)

func brainstormPrompt(req BrainstormRequest) string {
	return fmt.Sprintf("Brainstorm exactly %d vivid, cinematic image prompts and short descriptions based on the theme: %q.\n"+
		"Format the response as a JSON array of objects with \"title\", \"prompt\", and \"description\" keys.", req.Count, req.Theme)
}

// parseScenes accepts either a bare JSON array or an object wrapping the
// array under "scenes", optionally inside a markdown code fence.
func parseScenes(text string) ([]Scene, error) {
	text = stripFence(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}
	var scenes []Scene
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &scenes); err != nil {
			return nil, fmt.Errorf("parse scenes: %w", err)
		}
	} else {
		var wrapped struct {
			Scenes []Scene `json:"scenes"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return nil, fmt.Errorf("parse scenes: %w", err)
		}
		scenes = wrapped.Scenes
	}
	out := scenes[:0]
	for _, s := range scenes {
		s.Title = strings.TrimSpace(s.Title)
		s.Prompt = strings.TrimSpace(s.Prompt)
		s.Description = strings.TrimSpace(s.Description)
		if s.Prompt == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func dataURI(mimeType, b64 string) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + b64
}
