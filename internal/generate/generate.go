// Package generate turns a text prompt into a new ordered list of gallery
// images using an llm.Provider.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"github.com/jask/carousel/internal/gallery"
	"github.com/jask/carousel/internal/llm"
	"github.com/jask/carousel/internal/logging"
)

const (
	DefaultSceneCount = 8
	promptSuffix      = " cinematic photography, ultra-realistic, 8k, highly detailed"
	aspectRatio       = "16:9"
)

var (
	ErrEmptyPrompt = errors.New("generate: empty prompt")
	ErrNoImages    = errors.New("generate: no scene produced an image")
)

// Generator is what the UI needs from the generation backend.
type Generator interface {
	GenerateGallery(ctx context.Context, prompt string) ([]gallery.Image, error)
}

// Options tunes the fan-out. Zero values fall back to defaults.
type Options struct {
	SceneCount        int
	Concurrency       int
	RequestsPerMinute int
}

// Service brainstorms scenes, then renders each one on a bounded worker
// pool. A scene that fails to render is logged and left out; it never fails
// the batch.
type Service struct {
	Provider llm.Provider
	Log      *slog.Logger
	Options  Options

	now func() time.Time
}

func New(provider llm.Provider, log *slog.Logger, opts Options) *Service {
	return &Service{Provider: provider, Log: log, Options: opts}
}

func (s *Service) GenerateGallery(ctx context.Context, prompt string) ([]gallery.Image, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	log := s.logger().With("provider", s.Provider.Name(), "prompt", prompt)
	count := s.Options.SceneCount
	if count <= 0 {
		count = DefaultSceneCount
	}

	scenes, err := s.Provider.Brainstorm(ctx, llm.BrainstormRequest{Theme: prompt, Count: count})
	if err != nil {
		return nil, fmt.Errorf("brainstorm: %w", err)
	}
	if len(scenes) > count {
		scenes = scenes[:count]
	}
	scenes = dedupeScenes(scenes)
	log.Info("brainstorm complete", "scenes", len(scenes))

	images, err := s.renderAll(ctx, log, scenes)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	log.Info("gallery generated", "images", len(images), "scenes", len(scenes))
	return images, nil
}

func (s *Service) renderAll(ctx context.Context, log *slog.Logger, scenes []llm.Scene) ([]gallery.Image, error) {
	workers := s.Options.Concurrency
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("worker pool: %w", err)
	}
	defer pool.Release()

	limiter := rate.NewLimiter(rate.Inf, 1)
	if rpm := s.Options.RequestsPerMinute; rpm > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), workers)
	}

	// one slot per scene keeps output in scene order
	slots := make([]*gallery.Image, len(scenes))
	var wg sync.WaitGroup
	for i, scene := range scenes {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			img, err := s.renderScene(ctx, limiter, scene)
			if err != nil {
				log.Warn("scene failed", "index", i, "scene", scene.Title, "error", err)
				return
			}
			slots[i] = img
		})
		if err != nil {
			wg.Done()
			log.Error("failed to submit scene", "index", i, "scene", scene.Title, "error", err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	images := make([]gallery.Image, 0, len(slots))
	for _, img := range slots {
		if img != nil {
			images = append(images, *img)
		}
	}
	return images, nil
}

func (s *Service) renderScene(ctx context.Context, limiter *rate.Limiter, scene llm.Scene) (*gallery.Image, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := s.Provider.RenderImage(ctx, llm.ImageRequest{
		Prompt:      scene.Prompt + promptSuffix,
		AspectRatio: aspectRatio,
	})
	if err != nil {
		return nil, err
	}
	if res.URL == "" {
		return nil, llm.ErrNoImage
	}
	return &gallery.Image{
		ID:          uuid.NewString(),
		URL:         res.URL,
		Title:       scene.Title,
		Description: scene.Description,
		Timestamp:   s.clock().UnixMilli(),
	}, nil
}

func (s *Service) logger() *slog.Logger {
	if s.Log == nil {
		return logging.Discard()
	}
	return s.Log
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
