package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// wheelStep is how far one wheel notch scrolls the track, in cells.
const wheelStep = 3

func (a *App) handleMouse(m tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.prompting || a.state == stateGenerating {
		return a, nil
	}
	if a.lightbox.IsOpen() {
		return a, a.lightboxMouse(m)
	}
	if a.carousel == nil {
		return a, nil
	}

	l := a.layout()
	inside := m.Y >= l.stripTop && m.Y <= l.dotsRow
	switch {
	case m.Action == tea.MouseActionMotion:
		return a, a.setHover(inside)
	case m.Action != tea.MouseActionPress:
		return a, nil
	case m.Button == tea.MouseButtonWheelUp, m.Button == tea.MouseButtonWheelLeft:
		if inside {
			return a, a.schedule(a.carousel.ScrollBy(-wheelStep))
		}
	case m.Button == tea.MouseButtonWheelDown, m.Button == tea.MouseButtonWheelRight:
		if inside {
			return a, a.schedule(a.carousel.ScrollBy(wheelStep))
		}
	case m.Button == tea.MouseButtonLeft:
		return a, a.click(l, m.X, m.Y)
	}
	return a, nil
}

// click routes a left click on the main view: an item opens the lightbox,
// a dot selects, and the arrows step.
func (a *App) click(l layout, x, y int) tea.Cmd {
	c := a.carousel
	switch {
	case y >= l.stripTop && y < l.stripTop+l.itemH:
		if i, ok := itemAt(l, x, c.Track().Offset(), c.Len()); ok {
			return a.openLightbox(i)
		}
	case y == l.dotsRow:
		if x <= 2 {
			return a.schedule(c.Prev())
		}
		if x >= l.width-3 {
			return a.schedule(c.Next())
		}
		if d := x - dotStart(c.Len(), l.width); d >= 0 && d%2 == 0 {
			return a.schedule(c.Select(d / 2))
		}
	}
	return nil
}

// itemAt maps a screen column in the strip to the item drawn there. Gaps and
// padding hit nothing.
func itemAt(l layout, x int, offset float64, n int) (int, bool) {
	col := x + int(math.Round(offset)) - l.pad
	pitch := l.itemW + l.gap
	if col < 0 || pitch <= 0 {
		return 0, false
	}
	i := col / pitch
	if i >= n || col%pitch >= l.itemW {
		return 0, false
	}
	return i, true
}

func (a *App) lightboxMouse(m tea.MouseMsg) tea.Cmd {
	if m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		return nil
	}
	if m.Y == 0 {
		if m.X >= a.width-ansi.StringWidth(closeLabel) {
			a.lightbox.Close()
		}
		return nil
	}
	if m.Y >= a.height-1 {
		return nil
	}
	if a.lightbox.Tap(m.X, a.width, a.gallery.Len()) {
		return a.requestThumbs()
	}
	return nil
}
