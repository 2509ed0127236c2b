package generate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/carousel/internal/gallery"
	"github.com/jask/carousel/internal/llm"
)

// fakeProvider brainstorms a fixed list and fails rendering for the scene
// titles in fail.
type fakeProvider struct {
	mu            sync.Mutex
	scenes        []llm.Scene
	brainstormErr error
	fail          map[string]bool
	delay         map[string]time.Duration
	prompts       []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Brainstorm(ctx context.Context, req llm.BrainstormRequest) ([]llm.Scene, error) {
	if f.brainstormErr != nil {
		return nil, f.brainstormErr
	}
	return f.scenes, nil
}

func (f *fakeProvider) RenderImage(ctx context.Context, req llm.ImageRequest) (llm.ImageResult, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, req.Prompt)
	f.mu.Unlock()

	title := strings.TrimSuffix(req.Prompt, promptSuffix)
	if d := f.delay[title]; d > 0 {
		time.Sleep(d)
	}
	if f.fail[title] {
		return llm.ImageResult{}, errors.New("render failed")
	}
	return llm.ImageResult{URL: "https://img.test/" + title}, nil
}

func scenesNamed(names ...string) []llm.Scene {
	out := make([]llm.Scene, len(names))
	for i, n := range names {
		out[i] = llm.Scene{Title: "Title " + n, Prompt: n, Description: "about " + n}
	}
	return out
}

func TestGenerateKeepsSuccessfulScenesInOrder(t *testing.T) {
	names := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	p := &fakeProvider{
		scenes: scenesNamed(names...),
		fail:   map[string]bool{"bravo": true, "echo": true, "hotel": true},
		delay:  map[string]time.Duration{"alpha": 20 * time.Millisecond},
	}
	svc := New(p, nil, Options{SceneCount: 8, Concurrency: 4})

	images, err := svc.GenerateGallery(context.Background(), "  nato alphabet ")
	require.NoError(t, err)
	require.Len(t, images, 5)

	var urls []string
	ids := map[string]bool{}
	for _, img := range images {
		urls = append(urls, img.URL)
		require.False(t, ids[img.ID], "duplicate id %s", img.ID)
		ids[img.ID] = true
		require.NotZero(t, img.Timestamp)
	}
	require.Equal(t, []string{
		"https://img.test/alpha",
		"https://img.test/charlie",
		"https://img.test/delta",
		"https://img.test/foxtrot",
		"https://img.test/golf",
	}, urls)
	require.Equal(t, "Title alpha", images[0].Title)
	require.Equal(t, "about alpha", images[0].Description)

	// the result must be a valid gallery on its own
	g, err := gallery.New(images)
	require.NoError(t, err)
	require.Equal(t, 5, g.Len())
}

func TestGenerateAppendsPromptSuffix(t *testing.T) {
	p := &fakeProvider{scenes: scenesNamed("one")}
	_, err := New(p, nil, Options{}).GenerateGallery(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, []string{"one" + promptSuffix}, p.prompts)
}

func TestGenerateTrimsToSceneCount(t *testing.T) {
	p := &fakeProvider{scenes: scenesNamed("a1", "b2", "c3", "d4")}
	images, err := New(p, nil, Options{SceneCount: 2}).GenerateGallery(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, images, 2)
}

func TestGenerateBrainstormFailure(t *testing.T) {
	p := &fakeProvider{brainstormErr: llm.ErrNoAPIKey}
	_, err := New(p, nil, Options{}).GenerateGallery(context.Background(), "x")
	require.ErrorIs(t, err, llm.ErrNoAPIKey)
}

func TestGenerateAllScenesFail(t *testing.T) {
	p := &fakeProvider{
		scenes: scenesNamed("apple", "zebra"),
		fail:   map[string]bool{"apple": true, "zebra": true},
	}
	_, err := New(p, nil, Options{}).GenerateGallery(context.Background(), "x")
	require.ErrorIs(t, err, ErrNoImages)
}

func TestGenerateEmptyPrompt(t *testing.T) {
	_, err := New(&fakeProvider{}, nil, Options{}).GenerateGallery(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestGenerateCancelled(t *testing.T) {
	p := &fakeProvider{scenes: scenesNamed("apple", "zebra", "mango")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(p, nil, Options{RequestsPerMinute: 1}).GenerateGallery(ctx, "x")
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateDropsDuplicateScenes(t *testing.T) {
	p := &fakeProvider{scenes: []llm.Scene{
		{Title: "Misty Valley", Prompt: "p1"},
		{Title: "Misty  Valley", Prompt: "p2"},
		{Title: "Lava Tides", Prompt: "p3"},
	}}
	images, err := New(p, nil, Options{}).GenerateGallery(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.Equal(t, "Misty Valley", images[0].Title)
	require.Equal(t, "Lava Tides", images[1].Title)
}

func TestTitleSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, titleSimilarity("Aurora", "aurora "), 1e-9)
	require.Less(t, titleSimilarity("Aurora", "Canyon"), duplicateThreshold)
	require.Zero(t, titleSimilarity("", "x"))

	untitled := dedupeScenes([]llm.Scene{{Prompt: "a"}, {Prompt: "b"}})
	require.Len(t, untitled, 2)
}

func TestGenerateRunsScenesConcurrently(t *testing.T) {
	names := []string{"north", "south", "east", "west"}
	delay := map[string]time.Duration{}
	for _, n := range names {
		delay[n] = 50 * time.Millisecond
	}
	p := &fakeProvider{scenes: scenesNamed(names...), delay: delay}
	start := time.Now()
	images, err := New(p, nil, Options{Concurrency: 4}).GenerateGallery(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, images, 4)
	require.Less(t, time.Since(start), 180*time.Millisecond)
}

func TestNilLoggerFallsBackToDiscard(t *testing.T) {
	svc := New(&fakeProvider{}, nil, Options{})
	require.NotNil(t, svc.logger())
}
