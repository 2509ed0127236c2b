// Package thumbnail fetches gallery images and renders them as terminal
// art. Each cell is one "▀" glyph carrying two vertically stacked pixels,
// the upper one in the foreground colour and the lower one in the
// background colour.
package thumbnail

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chai2010/webp"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// maxImageBytes bounds a single download.
const maxImageBytes = 32 << 20

var (
	ErrUnsupportedURL = errors.New("thumbnail: unsupported image url")
	ErrBadDataURI     = errors.New("thumbnail: malformed data uri")
)

type memoKey struct {
	id            string
	width, height int
}

// Loader downloads, decodes and renders images. Decoded sources are kept by
// URL and renders by (id, size), so resizing the terminal only re-renders.
// It is safe for concurrent use.
type Loader struct {
	client *http.Client

	mu      sync.Mutex
	sources map[string]image.Image
	renders map[memoKey]string
}

// NewLoader uses client for http(s) URLs; nil means a client with a 30s
// timeout.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Loader{
		client:  client,
		sources: make(map[string]image.Image),
		renders: make(map[memoKey]string),
	}
}

// Cached returns a previous render of id at the given size.
func (l *Loader) Cached(id string, width, height int) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.renders[memoKey{id, width, height}]
	return s, ok
}

// Render returns the terminal rendering of the image at rawURL, cropped to
// fill width x height cells.
func (l *Loader) Render(ctx context.Context, id, rawURL string, width, height int) (string, error) {
	if s, ok := l.Cached(id, width, height); ok {
		return s, nil
	}
	src, err := l.source(ctx, rawURL)
	if err != nil {
		return "", err
	}
	out := Render(src, width, height)

	l.mu.Lock()
	l.renders[memoKey{id, width, height}] = out
	l.mu.Unlock()
	return out, nil
}

// Reset drops everything memoised. Called when a new gallery replaces the
// old one.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources = make(map[string]image.Image)
	l.renders = make(map[memoKey]string)
}

func (l *Loader) source(ctx context.Context, rawURL string) (image.Image, error) {
	l.mu.Lock()
	src, ok := l.sources[rawURL]
	l.mu.Unlock()
	if ok {
		return src, nil
	}

	data, err := l.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	src, err = Decode(data)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.sources[rawURL] = src
	l.mu.Unlock()
	return src, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "data:") {
		return decodeDataURI(rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/webp,image/png,image/jpeg,image/*;q=0.8")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// decodeDataURI accepts data:[<mime>][;base64],<payload>.
func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, ErrBadDataURI
	}
	if !strings.HasSuffix(meta, ";base64") {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
		}
		return []byte(s), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	return data, nil
}

// Decode sniffs the format. WebP goes through libwebp; everything else
// through the registered stdlib decoders.
func Decode(data []byte) (image.Image, error) {
	if isWebP(data) {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode webp: %w", err)
		}
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

// Render crops src to cover width x height cells and draws it with half
// blocks. The result has exactly height lines of width cells.
func Render(src image.Image, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	img := imaging.Fill(src, width, height*2, imaging.Center, imaging.Lanczos)

	var b strings.Builder
	for row := 0; row < height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			top, bot := img.NRGBAAt(x, row*2), img.NRGBAAt(x, row*2+1)
			cell := lipgloss.NewStyle().Foreground(hexColor(top)).Background(hexColor(bot))
			b.WriteString(cell.Render("▀"))
		}
	}
	return b.String()
}

func hexColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
