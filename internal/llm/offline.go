package llm

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// OfflineProvider needs no API key. Scenes are derived from the theme with
// fixed framings and images come from seeded picsum.photos URLs, so the same
// theme always yields the same gallery.
type OfflineProvider struct{}

func NewOfflineProvider() *OfflineProvider { return &OfflineProvider{} }

func (OfflineProvider) Name() string { return "offline" }

var offlineFramings = []struct{ title, prompt, desc string }{
	{"First Light", "%s at dawn, low sun raking across the scene", "The first light of morning finds %s."},
	{"Wide Horizon", "an expansive wide-angle vista of %s", "%s stretching all the way to the horizon."},
	{"Close Study", "a macro close-up detail of %s", "A close look at the textures of %s."},
	{"Blue Hour", "%s in the deep blue hour after sunset", "%s settling into the quiet blue of dusk."},
	{"Storm Front", "%s under a dramatic approaching storm", "Weather gathering over %s."},
	{"From Above", "an aerial drone photograph of %s", "%s seen from high above."},
	{"Night Glow", "%s at night lit by a single warm light", "%s glowing against the dark."},
	{"Mist and Silence", "%s wrapped in drifting fog", "Fog softening every edge of %s."},
	{"Golden Hour", "%s bathed in golden hour light", "Warm late sun over %s."},
	{"Reflections", "%s mirrored in still water", "%s doubled in a perfect reflection."},
	{"Long Exposure", "a long exposure photograph of %s with motion blur", "Time smeared across %s."},
	{"Winter", "%s under fresh snow", "%s hushed beneath a layer of snow."},
	{"Monochrome", "a high-contrast black and white photograph of %s", "%s reduced to light and shadow."},
	{"Silhouette", "%s in silhouette against a bright sky", "The outline of %s against the sky."},
	{"Rain", "%s in heavy rain with glistening surfaces", "Rain washing over %s."},
	{"Stars", "%s beneath the Milky Way", "%s under a sky full of stars."},
}

func (OfflineProvider) Brainstorm(ctx context.Context, req BrainstormRequest) ([]Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		return nil, fmt.Errorf("offline: empty theme")
	}
	n := max(0, min(req.Count, len(offlineFramings)))
	scenes := make([]Scene, 0, n)
	for _, f := range offlineFramings[:n] {
		scenes = append(scenes, Scene{
			Title:       f.title,
			Prompt:      fmt.Sprintf(f.prompt, theme),
			Description: capitalize(fmt.Sprintf(f.desc, theme)),
		})
	}
	return scenes, nil
}

func (OfflineProvider) RenderImage(ctx context.Context, req ImageRequest) (ImageResult, error) {
	if err := ctx.Err(); err != nil {
		return ImageResult{}, err
	}
	sum := sha1.Sum([]byte(req.Prompt))
	seed := hex.EncodeToString(sum[:6])
	w, h := 1200, 675
	if req.AspectRatio == "1:1" {
		h = w
	}
	return ImageResult{URL: fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", seed, w, h)}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
