package nav

import "github.com/jask/carousel/internal/gallery"

// Zone is a horizontal region of the lightbox used as a tap target.
type Zone int

const (
	ZoneContent Zone = iota
	ZonePrev
	ZoneNext
)

// Lightbox is the full-screen viewer. Its index is independent of the
// carousel's and survives Close, so Reopen shows the last image viewed.
type Lightbox struct {
	open    bool
	current int
	lock    *ScrollLock
	release func()
}

func NewLightbox(lock *ScrollLock) *Lightbox {
	return &Lightbox{lock: lock}
}

func (l *Lightbox) IsOpen() bool      { return l.open }
func (l *Lightbox) CurrentIndex() int { return l.current }

// Open shows image index. index must be valid for the gallery being viewed.
func (l *Lightbox) Open(index int) {
	l.current = index
	l.Reopen()
}

// Reopen opens at the preserved index.
func (l *Lightbox) Reopen() {
	if l.open {
		return
	}
	l.open = true
	if l.lock != nil {
		l.release = l.lock.Acquire()
	}
}

// Close hides the lightbox and releases the scroll lock. Safe to call when
// already closed.
func (l *Lightbox) Close() {
	l.open = false
	if l.release != nil {
		l.release()
		l.release = nil
	}
}

func (l *Lightbox) Next(n int) {
	if n > 0 {
		l.current = gallery.Next(l.current, n)
	}
}

func (l *Lightbox) Prev(n int) {
	if n > 0 {
		l.current = gallery.Prev(l.current, n)
	}
}

// Current is the image on display. It reports false when the preserved index
// no longer fits g, in which case nothing should be drawn.
func (l *Lightbox) Current(g *gallery.Gallery) (gallery.Image, bool) {
	return g.At(l.current)
}

// HandleKey applies the lightbox key bindings. They only exist while open;
// the return value reports whether the key was consumed.
func (l *Lightbox) HandleKey(key string, n int) bool {
	if !l.open {
		return false
	}
	switch key {
	case "esc":
		l.Close()
	case "right":
		l.Next(n)
	case "left":
		l.Prev(n)
	default:
		return false
	}
	return true
}

// ZoneAt maps a click column to a tap zone: the left quarter goes back, the
// right quarter goes forward, and the centre is left to the content.
func ZoneAt(x, width int) Zone {
	if width <= 0 {
		return ZoneContent
	}
	switch {
	case x*4 < width:
		return ZonePrev
	case x*4 >= width*3:
		return ZoneNext
	default:
		return ZoneContent
	}
}

// Tap navigates according to the zone under x. It reports whether the tap
// changed the image.
func (l *Lightbox) Tap(x, width, n int) bool {
	if !l.open {
		return false
	}
	switch ZoneAt(x, width) {
	case ZonePrev:
		l.Prev(n)
	case ZoneNext:
		l.Next(n)
	default:
		return false
	}
	return true
}
