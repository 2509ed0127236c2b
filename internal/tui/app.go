// Package tui is the terminal front end: an inline carousel, a full-screen
// lightbox, and a prompt that replaces the gallery with a generated one.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/carousel/internal/gallery"
	"github.com/jask/carousel/internal/generate"
	"github.com/jask/carousel/internal/logging"
	"github.com/jask/carousel/internal/nav"
	"github.com/jask/carousel/internal/thumbnail"
)

const (
	defaultFrameInterval = 16 * time.Millisecond
	defaultItemRatio     = 0.8
	scrollStep           = 4
)

// Options configures timing and geometry. Zero values use defaults.
type Options struct {
	Interval      time.Duration
	FrameInterval time.Duration
	ItemRatio     float64
	Gap           int
	ProviderName  string
	SceneCount    int
}

type loadState int

const (
	stateIdle loadState = iota
	stateGenerating
	stateError
)

func (s loadState) String() string {
	switch s {
	case stateGenerating:
		return "generating"
	case stateError:
		return "error"
	default:
		return "idle"
	}
}

// App is the bubbletea model. All navigator state is mutated here, on the
// program's update loop; generation and thumbnail loading run as commands.
type App struct {
	ctx    context.Context
	gen    generate.Generator
	thumbs *thumbnail.Loader
	log    *slog.Logger
	opts   Options
	keys   *KeyRegistry

	gallery  *gallery.Gallery
	carousel *nav.Carousel
	lightbox *nav.Lightbox
	lock     *nav.ScrollLock

	state      loadState
	seq        uint64
	cancelGen  context.CancelFunc
	lastPrompt string

	prompting bool
	input     textinput.Model
	spinner   spinner.Model

	hovered bool
	paused  bool

	thumbPending map[thumbKey]bool
	thumbFailed  map[thumbKey]bool

	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

// New builds the App around an initial gallery. thumbs may be nil, in which
// case items render as titled placeholders.
func New(ctx context.Context, gen generate.Generator, thumbs *thumbnail.Loader, log *slog.Logger, g *gallery.Gallery, opts Options) *App {
	if log == nil {
		log = logging.Discard()
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrameInterval
	}
	if opts.ItemRatio <= 0 || opts.ItemRatio > 1 {
		opts.ItemRatio = defaultItemRatio
	}
	if opts.SceneCount <= 0 {
		opts.SceneCount = generate.DefaultSceneCount
	}

	ti := textinput.New()
	ti.Placeholder = "misty fjords at dawn"
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Width = 40

	lock := &nav.ScrollLock{}
	a := &App{
		ctx:          ctx,
		gen:          gen,
		thumbs:       thumbs,
		log:          log,
		opts:         opts,
		keys:         NewKeyRegistry(),
		gallery:      g,
		lightbox:     nav.NewLightbox(lock),
		lock:         lock,
		input:        ti,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		thumbPending: make(map[thumbKey]bool),
		thumbFailed:  make(map[thumbKey]bool),
	}
	a.carousel = a.newCarousel(g)
	return a
}

func (a *App) Init() tea.Cmd {
	if a.carousel == nil {
		return nil
	}
	return a.schedule(a.carousel.Start())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		if a.carousel != nil {
			l := a.layout()
			a.carousel.Resize(float64(l.itemW), float64(l.gap))
		}
		return a, a.requestThumbs()
	case autoplayMsg:
		if a.carousel == nil || m.owner != a.carousel {
			return a, nil
		}
		return a, a.schedule(a.carousel.OnTick(m.tick))
	case frameMsg:
		if a.carousel == nil || m.owner != a.carousel {
			return a, nil
		}
		return a, a.schedule(a.carousel.OnFrame())
	case generateDoneMsg:
		return a.handleGenerateDone(m)
	case thumbLoadedMsg:
		delete(a.thumbPending, m.key)
		if m.err != nil {
			a.thumbFailed[m.key] = true
			a.log.Warn("thumbnail failed", "id", m.key.id, "error", m.err)
		}
		return a, nil
	case spinner.TickMsg:
		if a.state != stateGenerating {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case tea.MouseMsg:
		return a.handleMouse(m)
	case tea.KeyMsg:
		if a.prompting {
			return a.handlePromptKey(m)
		}
		return a.handleKey(m)
	}

	if a.prompting {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// scope names the key bindings currently in effect.
func (a *App) scope() string {
	switch {
	case a.prompting:
		return scopePrompt
	case a.lightbox.IsOpen():
		return scopeLightbox
	case a.state == stateGenerating:
		return scopeGenerating
	case a.carousel == nil:
		return scopeEmpty
	default:
		return scopeCarousel
	}
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := a.scope()
	b := a.keys.Lookup(m.String(), scope)
	if b == nil {
		return a, nil
	}
	if b.Action == actionQuit {
		return a.quit()
	}

	switch scope {
	case scopeLightbox:
		if a.lightbox.HandleKey(m.String(), a.gallery.Len()) {
			return a, a.requestThumbs()
		}
		return a, nil
	case scopeGenerating:
		switch b.Action {
		case actionPrompt:
			return a, a.openPrompt()
		case actionCancel:
			return a, a.cancelGeneration()
		}
		return a, nil
	case scopeEmpty:
		if b.Action == actionPrompt {
			return a, a.openPrompt()
		}
		return a, nil
	}

	c := a.carousel
	switch b.Action {
	case actionPrev:
		return a, a.schedule(c.Prev())
	case actionNext:
		return a, a.schedule(c.Next())
	case actionOpen:
		return a, a.openLightbox(c.CurrentIndex())
	case actionReopen:
		a.lightbox.Reopen()
		return a, a.requestThumbs()
	case actionToggleAutoplay:
		a.paused = !a.paused
		return a, a.syncAutoplay()
	case actionSelectDot:
		dot := int(normalizeKeyName(m.String())[0] - '1')
		return a, a.schedule(c.Select(dot))
	case actionScrollLeft:
		return a, a.schedule(c.ScrollBy(-scrollStep))
	case actionScrollRight:
		return a, a.schedule(c.ScrollBy(scrollStep))
	case actionPrompt:
		return a, a.openPrompt()
	}
	return a, nil
}

func (a *App) handlePromptKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a.quit()
	}
	// Typed characters must reach the input, so only the prompt's own
	// bindings are consulted here.
	if b := a.keys.lookupInScope(normalizeKeyName(m.String()), scopePrompt); b != nil {
		switch b.Action {
		case actionSubmit:
			prompt := strings.TrimSpace(a.input.Value())
			if prompt == "" {
				return a, nil
			}
			a.closePrompt()
			return a, a.startGeneration(prompt)
		case actionCancel:
			a.closePrompt()
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) openPrompt() tea.Cmd {
	a.prompting = true
	a.input.SetValue("")
	return a.input.Focus()
}

func (a *App) closePrompt() {
	a.prompting = false
	a.input.Blur()
}

// openLightbox covers the strip, so the pointer counts as having left it.
func (a *App) openLightbox(index int) tea.Cmd {
	a.lightbox.Open(index)
	return tea.Batch(a.setHover(false), a.requestThumbs())
}

// syncAutoplay applies the combined hover and keyboard pause state.
func (a *App) syncAutoplay() tea.Cmd {
	if a.carousel == nil {
		return nil
	}
	return a.schedule(a.carousel.SetAutoPlaying(!a.hovered && !a.paused))
}

func (a *App) setHover(inside bool) tea.Cmd {
	if a.hovered == inside {
		return nil
	}
	a.hovered = inside
	return a.syncAutoplay()
}

// startGeneration issues a new request. Any request still in flight is
// cancelled, and its result will be discarded by sequence number.
func (a *App) startGeneration(prompt string) tea.Cmd {
	if a.cancelGen != nil {
		a.cancelGen()
	}
	wasGenerating := a.state == stateGenerating
	a.seq++
	seq := a.seq
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelGen = cancel
	a.state = stateGenerating
	a.lastPrompt = prompt
	a.setStatus(fmt.Sprintf("Generating %q", prompt))
	a.unmountCarousel()
	a.log.Info("generation requested", "seq", seq, "prompt", prompt)

	gen := a.gen
	run := func() tea.Msg {
		images, err := gen.GenerateGallery(ctx, prompt)
		return generateDoneMsg{seq: seq, prompt: prompt, images: images, err: err}
	}
	if wasGenerating {
		return run
	}
	return tea.Batch(a.spinner.Tick, run)
}

func (a *App) cancelGeneration() tea.Cmd {
	if a.cancelGen != nil {
		a.cancelGen()
		a.cancelGen = nil
	}
	a.seq++
	a.state = stateIdle
	a.setStatus("Generation cancelled")
	a.log.Info("generation cancelled", "prompt", a.lastPrompt)
	return a.mountCarousel(a.gallery)
}

func (a *App) handleGenerateDone(m generateDoneMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.seq {
		a.log.Info("discarding stale generation", "seq", m.seq, "latest", a.seq, "prompt", m.prompt)
		return a, nil
	}
	if a.cancelGen != nil {
		a.cancelGen()
		a.cancelGen = nil
	}

	err := m.err
	var g *gallery.Gallery
	if err == nil {
		g, err = gallery.New(m.images)
	}
	if err != nil {
		a.state = stateError
		a.setError(fmt.Sprintf("Generation failed: %v", err))
		a.log.Error("generation failed", "seq", m.seq, "prompt", m.prompt, "error", err)
		return a, a.mountCarousel(a.gallery)
	}

	if a.thumbs != nil {
		a.thumbs.Reset()
	}
	a.thumbPending = make(map[thumbKey]bool)
	a.thumbFailed = make(map[thumbKey]bool)
	a.gallery = g
	a.state = stateIdle
	a.setStatus(fmt.Sprintf("Generated %d images for %q", g.Len(), m.prompt))
	a.log.Info("gallery replaced", "seq", m.seq, "images", g.Len())
	return a, tea.Batch(a.mountCarousel(g), a.requestThumbs())
}

func (a *App) newCarousel(g *gallery.Gallery) *nav.Carousel {
	l := a.layout()
	return nav.NewCarousel(g, nav.CarouselOptions{
		Interval:  a.opts.Interval,
		ItemWidth: float64(l.itemW),
		Gap:       float64(l.gap),
	}, a.lock)
}

// mountCarousel replaces the carousel with a fresh one over g and starts its
// autoplay unless the user has paused it.
func (a *App) mountCarousel(g *gallery.Gallery) tea.Cmd {
	a.unmountCarousel()
	a.carousel = a.newCarousel(g)
	a.hovered = false
	if a.carousel == nil {
		return nil
	}
	fx := a.carousel.Start()
	if a.paused {
		a.carousel.SetAutoPlaying(false)
		return nil
	}
	return a.schedule(fx)
}

func (a *App) unmountCarousel() {
	if a.carousel != nil {
		a.carousel.Teardown()
		a.carousel = nil
	}
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.Shutdown()
	a.quitting = true
	return a, tea.Quit
}

// Shutdown cancels outstanding work, disarms autoplay and releases the
// scroll lock.
func (a *App) Shutdown() {
	if a.cancelGen != nil {
		a.cancelGen()
		a.cancelGen = nil
	}
	if a.carousel != nil {
		a.carousel.Teardown()
	}
	a.lightbox.Close()
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(msg string) {
	a.status = msg
	a.statusErr = true
}
