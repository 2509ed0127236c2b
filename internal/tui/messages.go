package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/carousel/internal/gallery"
	"github.com/jask/carousel/internal/nav"
)

// ---------------------------------------------------------------------------
// Bubble Tea messages
// ---------------------------------------------------------------------------

// autoplayMsg and frameMsg name the carousel that scheduled them; after a
// gallery swap the new carousel must not honour the old one's ticks.
type autoplayMsg struct {
	owner *nav.Carousel
	tick  nav.Tick
}

type frameMsg struct {
	owner *nav.Carousel
}

type generateDoneMsg struct {
	seq    uint64
	prompt string
	images []gallery.Image
	err    error
}

type thumbKey struct {
	id   string
	w, h int
}

type thumbLoadedMsg struct {
	key thumbKey
	err error
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// schedule turns navigator effects into timers bound to the live carousel.
func (a *App) schedule(fx nav.Effects) tea.Cmd {
	owner := a.carousel
	if owner == nil {
		return nil
	}
	var cmds []tea.Cmd
	if t := fx.Autoplay; t != nil {
		tick := *t
		cmds = append(cmds, tea.Tick(tick.After, func(time.Time) tea.Msg {
			return autoplayMsg{owner: owner, tick: tick}
		}))
	}
	if fx.Frame {
		cmds = append(cmds, tea.Tick(a.opts.FrameInterval, func(time.Time) tea.Msg {
			return frameMsg{owner: owner}
		}))
	}
	return tea.Batch(cmds...)
}

// requestThumbs loads every image missing at the sizes currently on screen.
func (a *App) requestThumbs() tea.Cmd {
	if a.thumbs == nil || a.width <= 0 || a.height <= 0 {
		return nil
	}
	var cmds []tea.Cmd
	l := a.layout()
	for _, img := range a.gallery.Images() {
		cmds = append(cmds, a.loadThumb(thumbKey{img.ID, l.itemW, l.itemH}, img.URL))
	}
	if a.lightbox.IsOpen() {
		if img, ok := a.lightbox.Current(a.gallery); ok {
			w, h := a.lightboxImageSize()
			cmds = append(cmds, a.loadThumb(thumbKey{img.ID, w, h}, img.URL))
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) loadThumb(k thumbKey, url string) tea.Cmd {
	if k.w <= 0 || k.h <= 0 || a.thumbPending[k] || a.thumbFailed[k] {
		return nil
	}
	if _, ok := a.thumbs.Cached(k.id, k.w, k.h); ok {
		return nil
	}
	a.thumbPending[k] = true
	thumbs, ctx := a.thumbs, a.ctx
	return func() tea.Msg {
		_, err := thumbs.Render(ctx, k.id, url, k.w, k.h)
		return thumbLoadedMsg{key: k, err: err}
	}
}
