package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLightboxOpenReadsBackIndex(t *testing.T) {
	for i := 0; i < 8; i++ {
		lb := NewLightbox(nil)
		lb.Open(i)
		require.True(t, lb.IsOpen())
		require.Equal(t, i, lb.CurrentIndex())
	}
}

func TestLightboxReopenPreservesIndex(t *testing.T) {
	lb := NewLightbox(nil)
	lb.Open(3)
	lb.Next(8)
	lb.Close()
	require.False(t, lb.IsOpen())
	require.Equal(t, 4, lb.CurrentIndex())

	lb.Reopen()
	require.True(t, lb.IsOpen())
	require.Equal(t, 4, lb.CurrentIndex())
}

func TestLightboxWrapsFromLastToFirst(t *testing.T) {
	lb := NewLightbox(nil)
	lb.Open(7)
	lb.Next(8)
	require.Equal(t, 0, lb.CurrentIndex())
	lb.Prev(8)
	require.Equal(t, 7, lb.CurrentIndex())
}

func TestLightboxIndexIndependentOfCarousel(t *testing.T) {
	c, lock := newTestCarousel(t, 8)
	lb := NewLightbox(lock)
	c.GoTo(2)
	lb.Open(c.CurrentIndex())
	lb.Next(8)
	lb.Next(8)
	require.Equal(t, 2, c.CurrentIndex())
	c.Next()
	require.Equal(t, 4, lb.CurrentIndex())
}

func TestLightboxKeysOnlyWhileOpen(t *testing.T) {
	lb := NewLightbox(nil)
	require.False(t, lb.HandleKey("right", 8))
	require.Equal(t, 0, lb.CurrentIndex())

	lb.Open(0)
	require.True(t, lb.HandleKey("right", 8))
	require.Equal(t, 1, lb.CurrentIndex())
	require.True(t, lb.HandleKey("left", 8))
	require.True(t, lb.HandleKey("left", 8))
	require.Equal(t, 7, lb.CurrentIndex())
	require.False(t, lb.HandleKey("x", 8))

	require.True(t, lb.HandleKey("esc", 8))
	require.False(t, lb.IsOpen())
	require.False(t, lb.HandleKey("esc", 8))
}

func TestLightboxHoldsScrollLockWhileOpen(t *testing.T) {
	lock := &ScrollLock{}
	lb := NewLightbox(lock)
	lb.Open(1)
	require.True(t, lock.Locked())
	lb.Open(2) // already open; must not stack a second hold
	lb.Close()
	require.False(t, lock.Locked())
	lb.Close()
	require.False(t, lock.Locked())

	lb.Reopen()
	require.True(t, lock.Locked())
	lb.HandleKey("esc", 8)
	require.False(t, lock.Locked())
}

func TestLightboxCurrentFailsSoftAfterShrink(t *testing.T) {
	lb := NewLightbox(nil)
	lb.Open(6)
	_, ok := lb.Current(testGallery(t, 8))
	require.True(t, ok)
	_, ok = lb.Current(testGallery(t, 3))
	require.False(t, ok)
}

func TestZoneAt(t *testing.T) {
	const width = 100
	require.Equal(t, ZonePrev, ZoneAt(0, width))
	require.Equal(t, ZonePrev, ZoneAt(24, width))
	require.Equal(t, ZoneContent, ZoneAt(25, width))
	require.Equal(t, ZoneContent, ZoneAt(74, width))
	require.Equal(t, ZoneNext, ZoneAt(75, width))
	require.Equal(t, ZoneNext, ZoneAt(99, width))
	require.Equal(t, ZoneContent, ZoneAt(3, 0))
}

func TestLightboxTap(t *testing.T) {
	lb := NewLightbox(nil)
	require.False(t, lb.Tap(0, 100, 8), "closed lightbox ignores taps")
	lb.Open(0)
	require.True(t, lb.Tap(0, 100, 8))
	require.Equal(t, 7, lb.CurrentIndex())
	require.True(t, lb.Tap(90, 100, 8))
	require.Equal(t, 0, lb.CurrentIndex())
	require.False(t, lb.Tap(50, 100, 8))
	require.Equal(t, 0, lb.CurrentIndex())
}
