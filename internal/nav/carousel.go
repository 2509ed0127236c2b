// Package nav implements the two navigators over a gallery: the inline
// carousel with autoplay and scroll reconciliation, and the modal lightbox.
//
// Navigators do no I/O and own no goroutines. Operations return Effects that
// the caller turns into timers; the caller feeds the resulting Tick and frame
// events back in.
package nav

import (
	"fmt"
	"time"

	"github.com/jask/carousel/internal/gallery"
)

// Effects tells the host what to schedule after a navigator operation.
type Effects struct {
	// Autoplay, when set, must be delivered to OnTick after Autoplay.After.
	Autoplay *Tick
	// Frame requests one animation frame, delivered to OnFrame.
	Frame bool
}

func (e Effects) merge(o Effects) Effects {
	if o.Autoplay != nil {
		e.Autoplay = o.Autoplay
	}
	e.Frame = e.Frame || o.Frame
	return e
}

// CarouselOptions configures timing and track geometry.
type CarouselOptions struct {
	Interval  time.Duration
	ItemWidth float64
	Gap       float64
}

// Carousel owns the inline view's current index, its autoplay handle and its
// scroll track.
type Carousel struct {
	g           *gallery.Gallery
	current     int
	autoplay    Autoplay
	track       *Track
	frameQueued bool
}

// NewCarousel returns nil for an empty gallery: without images there is no
// index to keep and nothing to autoplay.
func NewCarousel(g *gallery.Gallery, opts CarouselOptions, lock *ScrollLock) *Carousel {
	if g.Empty() {
		return nil
	}
	return &Carousel{
		g:        g,
		autoplay: newAutoplay(opts.Interval),
		track:    newTrack(g.Len(), opts.ItemWidth, opts.Gap, lock),
	}
}

// Start arms autoplay for the first time.
func (c *Carousel) Start() Effects {
	return Effects{Autoplay: c.autoplay.arm()}
}

func (c *Carousel) Len() int            { return c.g.Len() }
func (c *Carousel) CurrentIndex() int   { return c.current }
func (c *Carousel) AutoPlaying() bool   { return c.autoplay.enabled }
func (c *Carousel) Autoplay() *Autoplay { return &c.autoplay }
func (c *Carousel) Track() *Track       { return c.track }

// GoTo scrolls smoothly to item index and makes it current. index must be in
// [0, Len); callers derive it from Next, Prev or the pagination dots.
func (c *Carousel) GoTo(index int) Effects {
	if index < 0 || index >= c.g.Len() {
		panic(fmt.Sprintf("nav: GoTo(%d) out of range [0, %d)", index, c.g.Len()))
	}
	c.track.scrollTo(index)
	return c.setCurrent(index).merge(c.requestFrame())
}

func (c *Carousel) Next() Effects {
	return c.GoTo(gallery.Next(c.current, c.g.Len()))
}

func (c *Carousel) Prev() Effects {
	return c.GoTo(gallery.Prev(c.current, c.g.Len()))
}

// Select handles a pagination dot. Dots exist only for [0, Len), so any
// other value is ignored rather than forwarded to GoTo.
func (c *Carousel) Select(dot int) Effects {
	if dot < 0 || dot >= c.g.Len() {
		return Effects{}
	}
	return c.GoTo(dot)
}

// setCurrent changes the index and restarts the autoplay interval so the
// new image gets a full interval on screen.
func (c *Carousel) setCurrent(index int) Effects {
	c.current = index
	return Effects{Autoplay: c.autoplay.arm()}
}

// SetAutoPlaying is driven by the pointer entering (false) or leaving (true)
// the carousel. Each toggle tears down the previous timer handle.
func (c *Carousel) SetAutoPlaying(on bool) Effects {
	if c.autoplay.enabled == on {
		return Effects{}
	}
	c.autoplay.enabled = on
	if !on {
		c.autoplay.disarm()
		return Effects{}
	}
	return Effects{Autoplay: c.autoplay.arm()}
}

// OnTick advances the carousel if t belongs to the live timer handle.
func (c *Carousel) OnTick(t Tick) Effects {
	if !c.autoplay.fire(t) {
		return Effects{}
	}
	return c.Next()
}

// ScrollBy applies a manual scroll of delta cells.
func (c *Carousel) ScrollBy(delta float64) Effects {
	if !c.track.ScrollBy(delta) {
		return Effects{}
	}
	return c.requestFrame()
}

// OnFrame runs one animation frame: it steps any smooth scroll and, if the
// user scrolled since the last frame, reconciles the current index with the
// scroll position. Reconciliation never starts a smooth scroll of its own.
func (c *Carousel) OnFrame() Effects {
	c.frameQueued = false
	c.track.step()
	var fx Effects
	if c.track.takeScrolled() {
		fx = c.reconcile(c.track.Offset())
	}
	if c.track.pending() {
		fx = fx.merge(c.requestFrame())
	}
	return fx
}

func (c *Carousel) reconcile(offset float64) Effects {
	index, ok := gallery.IndexFromOffset(offset, c.track.itemWidth, c.track.gap, c.g.Len())
	if !ok || index == c.current {
		return Effects{}
	}
	return c.setCurrent(index)
}

func (c *Carousel) requestFrame() Effects {
	if c.frameQueued || !c.track.pending() {
		return Effects{}
	}
	c.frameQueued = true
	return Effects{Frame: true}
}

// Resize updates track geometry after the viewport changes and snaps the
// track to the current item.
func (c *Carousel) Resize(itemWidth, gap float64) {
	c.track.resize(itemWidth, gap, c.current)
}

// Teardown cancels autoplay for good. The carousel must not be used after.
func (c *Carousel) Teardown() {
	c.autoplay.enabled = false
	c.autoplay.disarm()
}
