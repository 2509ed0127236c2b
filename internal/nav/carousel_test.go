package nav

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/carousel/internal/gallery"
)

func testGallery(t *testing.T, n int) *gallery.Gallery {
	t.Helper()
	images := make([]gallery.Image, n)
	for i := range images {
		images[i] = gallery.Image{ID: fmt.Sprintf("img-%d", i), Title: fmt.Sprintf("Image %d", i)}
	}
	g, err := gallery.New(images)
	require.NoError(t, err)
	return g
}

func newTestCarousel(t *testing.T, n int) (*Carousel, *ScrollLock) {
	t.Helper()
	lock := &ScrollLock{}
	c := NewCarousel(testGallery(t, n), CarouselOptions{Interval: DefaultInterval, ItemWidth: 80, Gap: 2}, lock)
	require.NotNil(t, c)
	return c, lock
}

// settle runs animation frames until the track stops asking for them.
func settle(t *testing.T, c *Carousel, fx Effects) {
	t.Helper()
	for i := 0; fx.Frame; i++ {
		require.Less(t, i, 200, "animation did not settle")
		fx = c.OnFrame()
	}
}

func TestEmptyGalleryHasNoCarousel(t *testing.T) {
	g, err := gallery.New(nil)
	require.NoError(t, err)
	require.Nil(t, NewCarousel(g, CarouselOptions{}, nil))
}

func TestNextCyclesBackToStart(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8} {
		c, _ := newTestCarousel(t, n)
		for start := 0; start < n; start++ {
			c.GoTo(start)
			for range n {
				c.Next()
			}
			require.Equal(t, start, c.CurrentIndex(), "n=%d start=%d", n, start)
		}
	}
}

func TestPrevIsInverseOfNext(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	for i := 0; i < 8; i++ {
		c.GoTo(i)
		c.Next()
		c.Prev()
		require.Equal(t, i, c.CurrentIndex())
		c.Prev()
		c.Next()
		require.Equal(t, i, c.CurrentIndex())
	}
}

func TestGoToPanicsOnInvalidIndex(t *testing.T) {
	c, _ := newTestCarousel(t, 3)
	require.Panics(t, func() { c.GoTo(3) })
	require.Panics(t, func() { c.GoTo(-1) })
}

func TestSelectIgnoresUnknownDot(t *testing.T) {
	c, _ := newTestCarousel(t, 3)
	fx := c.Select(9)
	require.Equal(t, Effects{}, fx)
	require.Equal(t, 0, c.CurrentIndex())

	c.Select(2)
	require.Equal(t, 2, c.CurrentIndex())
}

func TestGoToAnimatesTrackToItem(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	fx := c.GoTo(3)
	require.True(t, fx.Frame)
	require.True(t, c.Track().Animating())
	settle(t, c, fx)
	require.InDelta(t, gallery.OffsetOf(3, 80, 2), c.Track().Offset(), 0.001)
	require.Equal(t, 3, c.CurrentIndex(), "programmatic animation must not be reconciled")
}

func TestGoToInterruptsAnimation(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	c.GoTo(6)
	c.OnFrame()
	c.OnFrame()
	fx := c.GoTo(1)
	require.False(t, fx.Frame, "a frame is already queued")
	settle(t, c, Effects{Frame: true})
	require.InDelta(t, gallery.OffsetOf(1, 80, 2), c.Track().Offset(), 0.001)
	require.Equal(t, 1, c.CurrentIndex())
}

func TestAutoplayAdvancesOncePerInterval(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	tick := c.Start().Autoplay
	require.NotNil(t, tick)
	require.Equal(t, 5*time.Second, tick.After)

	for step := 1; step <= 10; step++ {
		fx := c.OnTick(*tick)
		require.Equal(t, step%8, c.CurrentIndex())
		require.NotNil(t, fx.Autoplay, "autoplay must re-arm after advancing")
		tick = fx.Autoplay
	}
}

func TestStaleTickIsIgnored(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	stale := c.Start().Autoplay
	c.Next() // manual navigation re-arms the interval
	fx := c.OnTick(*stale)
	require.Equal(t, Effects{}, fx)
	require.Equal(t, 1, c.CurrentIndex())
}

func TestHoverPausesAndResumesAutoplay(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	tick := c.Start().Autoplay

	require.Equal(t, Effects{}, c.SetAutoPlaying(false))
	require.False(t, c.AutoPlaying())
	require.False(t, c.Autoplay().Armed())

	for range 5 {
		c.OnTick(*tick)
	}
	require.Equal(t, 0, c.CurrentIndex(), "index must not move while hovered")

	// Re-entering while already paused does nothing.
	require.Equal(t, Effects{}, c.SetAutoPlaying(false))

	fx := c.SetAutoPlaying(true)
	require.NotNil(t, fx.Autoplay)
	require.NotEqual(t, tick.Epoch, fx.Autoplay.Epoch)
	c.OnTick(*fx.Autoplay)
	require.Equal(t, 1, c.CurrentIndex())
}

func TestNavigationWhilePausedDoesNotArm(t *testing.T) {
	c, _ := newTestCarousel(t, 4)
	c.Start()
	c.SetAutoPlaying(false)
	fx := c.Next()
	require.Nil(t, fx.Autoplay)
	require.False(t, c.Autoplay().Armed())
}

func TestTeardownCancelsAutoplay(t *testing.T) {
	c, _ := newTestCarousel(t, 4)
	tick := c.Start().Autoplay
	c.Teardown()
	require.Equal(t, Effects{}, c.OnTick(*tick))
	require.Equal(t, 0, c.CurrentIndex())
	require.False(t, c.Autoplay().Armed())
}

func TestManualScrollReconcilesIndex(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	c.Start()

	// Scroll most of the way to the third item.
	fx := c.ScrollBy(82*2 - 10)
	require.True(t, fx.Frame)
	require.False(t, c.Track().Animating())

	fx = c.OnFrame()
	require.Equal(t, 2, c.CurrentIndex())
	require.NotNil(t, fx.Autoplay, "reconciled index change restarts the interval")
	require.False(t, c.Track().Animating(), "reconciliation must not start a smooth scroll")
	require.InDelta(t, 82*2-10, c.Track().Offset(), 0.001)
}

func TestManualScrollWithinSameItemKeepsIndex(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	c.Start()
	c.ScrollBy(10)
	fx := c.OnFrame()
	require.Equal(t, 0, c.CurrentIndex())
	require.Nil(t, fx.Autoplay)
}

func TestScrollEventsCoalescePerFrame(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	require.True(t, c.ScrollBy(30).Frame)
	require.False(t, c.ScrollBy(30).Frame, "second scroll in the same frame must not queue another")
	c.OnFrame()
	require.Equal(t, 1, c.CurrentIndex())
}

func TestManualScrollCancelsAnimation(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	c.GoTo(5)
	c.OnFrame()
	c.ScrollBy(-1)
	require.False(t, c.Track().Animating())
}

func TestScrollClampsToTrack(t *testing.T) {
	c, _ := newTestCarousel(t, 3)
	require.False(t, c.ScrollBy(-20).Frame, "already at the left edge")
	c.ScrollBy(10_000)
	require.InDelta(t, c.Track().MaxOffset(), c.Track().Offset(), 0.001)
	c.OnFrame()
	require.Equal(t, 2, c.CurrentIndex())
}

func TestScrollLockSuppressesManualScroll(t *testing.T) {
	c, lock := newTestCarousel(t, 8)
	release := lock.Acquire()
	require.Equal(t, Effects{}, c.ScrollBy(100))
	require.Zero(t, c.Track().Offset())
	release()
	require.True(t, c.ScrollBy(100).Frame)
}

func TestResizeSnapsToCurrentItem(t *testing.T) {
	c, _ := newTestCarousel(t, 8)
	settle(t, c, c.GoTo(4))
	c.Resize(40, 1)
	require.Equal(t, 40.0, c.Track().ItemWidth())
	require.Equal(t, 1.0, c.Track().Gap())
	require.InDelta(t, gallery.OffsetOf(4, 40, 1), c.Track().Offset(), 0.001)
	require.False(t, c.Track().Animating())
}

func TestZeroIntervalUsesDefault(t *testing.T) {
	c := NewCarousel(testGallery(t, 3), CarouselOptions{ItemWidth: 80, Gap: 2}, &ScrollLock{})
	require.Equal(t, DefaultInterval, c.Autoplay().Interval())

	fx := c.Start()
	require.NotNil(t, fx.Autoplay)
	require.Equal(t, DefaultInterval, fx.Autoplay.After)
}
