package nav

import (
	"math"

	"github.com/jask/carousel/internal/gallery"
)

// easing is the fraction of the remaining distance covered per frame.
const easing = 0.35

// Track is the horizontal scroll surface under the carousel. Offsets are in
// terminal cells. Programmatic scrolls animate toward a target one frame at a
// time; manual scrolls move the offset directly and are reported back to the
// navigator at most once per frame.
type Track struct {
	itemWidth float64
	gap       float64
	count     int

	offset    float64
	target    float64
	animating bool
	scrolled  bool

	lock *ScrollLock
}

func newTrack(count int, itemWidth, gap float64, lock *ScrollLock) *Track {
	return &Track{count: count, itemWidth: itemWidth, gap: gap, lock: lock}
}

func (t *Track) Offset() float64    { return t.offset }
func (t *Track) ItemWidth() float64 { return t.itemWidth }
func (t *Track) Gap() float64       { return t.gap }
func (t *Track) Animating() bool    { return t.animating }

// MaxOffset is the offset of the last item.
func (t *Track) MaxOffset() float64 {
	if t.count == 0 {
		return 0
	}
	return gallery.OffsetOf(t.count-1, t.itemWidth, t.gap)
}

func (t *Track) clamp(v float64) float64 {
	return math.Max(0, math.Min(v, t.MaxOffset()))
}

// scrollTo starts, or redirects, a smooth scroll toward item i.
func (t *Track) scrollTo(i int) {
	t.target = t.clamp(gallery.OffsetOf(i, t.itemWidth, t.gap))
	t.animating = t.target != t.offset
}

// ScrollBy moves the track by delta cells as a user scroll would. It cancels
// any animation in progress. It reports false when the scroll lock is held
// or the offset did not change.
func (t *Track) ScrollBy(delta float64) bool {
	if t.lock.Locked() {
		return false
	}
	next := t.clamp(t.offset + delta)
	if next == t.offset {
		return false
	}
	t.animating = false
	t.offset = next
	t.scrolled = true
	return true
}

// step advances one animation frame.
func (t *Track) step() {
	if !t.animating {
		return
	}
	diff := t.target - t.offset
	if math.Abs(diff) < 0.5 {
		t.offset = t.target
		t.animating = false
		return
	}
	t.offset += diff * easing
}

// takeScrolled reports and clears a manual scroll since the last frame.
func (t *Track) takeScrolled() bool {
	s := t.scrolled
	t.scrolled = false
	return s
}

func (t *Track) resize(itemWidth, gap float64, current int) {
	t.itemWidth, t.gap = itemWidth, gap
	t.offset = t.clamp(gallery.OffsetOf(current, itemWidth, gap))
	t.target = t.offset
	t.animating = false
	t.scrolled = false
}

func (t *Track) pending() bool { return t.animating || t.scrolled }
