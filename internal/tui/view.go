package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	headerRows = 3 // badge, title, blank
	belowStrip = 4 // blank, caption, description, dots
	chromeRows = 2 // status bar, footer
	closeLabel = " ✕ close "
)

// layout is the row and column geometry of the main view.
type layout struct {
	width, height int
	itemW, itemH  int
	gap, pad      int
	stripTop      int
	captionRow    int
	descRow       int
	dotsRow       int
}

func computeLayout(width, height int, ratio float64, gap int) layout {
	l := layout{width: width, height: height, gap: max(0, gap), stripTop: headerRows}
	l.itemW = max(8, int(float64(width)*ratio))
	// half blocks make each cell two square-ish pixels tall, so a 16:9 image
	// is itemW*9/16 pixels or half that many rows
	ideal := max(1, l.itemW*9/32)
	avail := max(1, height-headerRows-belowStrip-chromeRows)
	l.itemH = min(ideal, avail)
	l.pad = max(0, (width-l.itemW)/2)
	l.captionRow = l.stripTop + l.itemH + 1
	l.descRow = l.captionRow + 1
	l.dotsRow = l.descRow + 1
	return l
}

func (a *App) layout() layout {
	return computeLayout(a.width, a.height, a.opts.ItemRatio, a.opts.Gap)
}

func (a *App) lightboxImageSize() (int, int) {
	w := max(8, a.width-8)
	h := min(max(1, a.height-6), max(1, w*9/32))
	return w, h
}

// dotStart is the column of the first pagination dot; dots sit two columns
// apart.
func dotStart(n, width int) int {
	return max(3, (width-(2*n-1))/2)
}

func (a *App) View() string {
	if a.quitting || a.width <= 0 || a.height <= 0 {
		return ""
	}
	var body string
	if a.lightbox.IsOpen() {
		body = a.renderLightbox()
	} else {
		body = a.renderMain()
	}
	if a.prompting {
		body = centerOverlay(body, a.renderPrompt(), a.width, a.height)
	}
	return clipHeight(body, a.height)
}

func (a *App) renderMain() string {
	l := a.layout()
	rows := make([]string, a.height)

	a.put(rows, 0, centerLine(badgeStyle.Render("✦ Best Gallery Carousel"), a.width))
	a.put(rows, 1, centerLine(titleStyle.Render("Carousel")+"  "+subtitleStyle.Render("Experience a living gallery."), a.width))

	switch {
	case a.state == stateGenerating:
		mid := l.stripTop + l.itemH/2
		a.put(rows, mid-1, centerLine(a.spinner.View()+" "+titleStyle.Render("Dreaming up your gallery"), a.width))
		a.put(rows, mid+1, centerLine(subtitleStyle.Render(a.generatingBlurb()), a.width))
	case a.carousel == nil:
		mid := l.stripTop + l.itemH/2
		a.put(rows, mid, centerLine(subtitleStyle.Render("No images yet. Press / to generate a gallery."), a.width))
	default:
		for i, line := range a.renderStrip(l) {
			a.put(rows, l.stripTop+i, line)
		}
		if img, ok := a.gallery.At(a.carousel.CurrentIndex()); ok {
			a.put(rows, l.captionRow, centerLine(captionStyle.Render(truncate(img.Title, a.width-4)), a.width))
			a.put(rows, l.descRow, centerLine(descStyle.Render(truncate(img.Description, a.width-4)), a.width))
		}
		a.put(rows, l.dotsRow, a.renderDots())
	}

	a.put(rows, a.height-2, a.renderStatusBar())
	a.put(rows, a.height-1, a.renderFooter())
	return strings.Join(rows, "\n")
}

func (a *App) put(rows []string, i int, s string) {
	if i >= 0 && i < len(rows) {
		rows[i] = s
	}
}

func (a *App) generatingBlurb() string {
	name := a.opts.ProviderName
	if name == "" {
		name = "The model"
	} else {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s is brainstorming %d cinematic scenes and painting them with light. Please wait a few moments.", name, a.opts.SceneCount)
}

// renderStrip lays every item side by side and cuts the viewport out of the
// result at the track offset.
func (a *App) renderStrip(l layout) []string {
	images := a.gallery.Images()
	blocks := make([][]string, len(images))
	for i, img := range images {
		blocks[i] = a.itemBlock(thumbKey{img.ID, l.itemW, l.itemH}, img.Title)
	}

	off := int(math.Round(a.carousel.Track().Offset()))
	pad := strings.Repeat(" ", l.pad)
	gap := strings.Repeat(" ", l.gap)
	out := make([]string, l.itemH)
	for row := range out {
		var b strings.Builder
		b.WriteString(pad)
		for i := range blocks {
			if i > 0 {
				b.WriteString(gap)
			}
			b.WriteString(blocks[i][row])
		}
		line := padRight(b.String()+pad, off+l.width)
		out[row] = ansi.Cut(line, off, off+l.width)
	}
	return out
}

// itemBlock is exactly k.h rows of k.w cells: the rendered thumbnail, or a
// titled placeholder while it loads.
func (a *App) itemBlock(k thumbKey, title string) []string {
	if a.thumbs != nil {
		if s, ok := a.thumbs.Cached(k.id, k.w, k.h); ok {
			lines := strings.Split(s, "\n")
			if len(lines) == k.h {
				return lines
			}
		}
	}
	label := title
	switch {
	case a.thumbFailed[k]:
		label = title + " (unavailable)"
	case a.thumbPending[k]:
		label = title + " …"
	}
	blank := placeholderStyle.Render(strings.Repeat(" ", k.w))
	lines := make([]string, k.h)
	for i := range lines {
		lines[i] = blank
	}
	lines[k.h/2] = placeholderStyle.Render(centerLine(truncate(label, k.w-2), k.w))
	return lines
}

func (a *App) renderDots() string {
	n := a.gallery.Len()
	start := dotStart(n, a.width)
	dots := make([]string, n)
	for i := range dots {
		if i == a.carousel.CurrentIndex() {
			dots[i] = activeDotStyle.Render("●")
		} else {
			dots[i] = dotStyle.Render("○")
		}
	}
	line := " " + arrowStyle.Render("‹") + strings.Repeat(" ", start-2) + strings.Join(dots, " ")
	line = padRight(line, a.width-2)
	return ansi.Truncate(line, a.width-2, "") + arrowStyle.Render("›") + " "
}

func (a *App) renderLightbox() string {
	rows := make([]string, a.height)
	n := a.gallery.Len()
	img, ok := a.lightbox.Current(a.gallery)

	counter := ""
	if ok {
		counter = fmt.Sprintf(" %d / %d", a.lightbox.CurrentIndex()+1, n)
	}
	bar := padRight(counter, a.width-ansi.StringWidth(closeLabel))
	a.put(rows, 0, lightboxBarStyle.Render(bar)+closeStyle.Render(closeLabel))

	if ok {
		w, h := a.lightboxImageSize()
		block := a.itemBlock(thumbKey{img.ID, w, h}, img.Title)
		top := 2
		left := strings.Repeat(" ", max(0, (a.width-w)/2))
		for i, line := range block {
			a.put(rows, top+i, left+line)
		}
		if mid := top + h/2; mid < len(rows) {
			a.put(rows, mid, arrowStyle.Render("‹")+ansi.Cut(padRight(rows[mid], a.width), 1, a.width-1)+arrowStyle.Render("›"))
		}
		a.put(rows, top+h+1, centerLine(captionStyle.Render(truncate(img.Title, a.width-4)), a.width))
		a.put(rows, top+h+2, centerLine(descStyle.Render(truncate(img.Description, a.width-4)), a.width))
	}

	a.put(rows, a.height-1, a.renderFooter())
	return strings.Join(rows, "\n")
}

func (a *App) renderPrompt() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Generate a new gallery"),
		"",
		a.input.View(),
		"",
		subtitleStyle.Render("enter generate · esc cancel"),
	)
	return modalStyle.Render(body)
}

func (a *App) renderStatusBar() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	style := statusBarStyle
	switch {
	case a.statusErr:
		style = statusErrBarStyle
	case a.state == stateIdle && a.status != "":
		style = statusOKBarStyle
	}

	right := ""
	if a.carousel != nil {
		if a.carousel.AutoPlaying() {
			right = subtitleStyle.Render("autoplay")
		} else {
			right = pausedStyle.Render("paused")
		}
	}
	left := style.Render(truncate(msg, max(1, a.width-12)))
	return padRight(left, a.width-ansi.StringWidth(right)-1) + right + " "
}

func (a *App) renderFooter() string {
	bindings := a.keys.HelpBindings(a.scope())
	bg := colorMantle
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(bg)
	helpStyle := lipgloss.NewStyle().Foreground(colorMuted).Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+space+helpStyle.Render(h.Desc))
	}
	return renderBar(max(1, a.width), strings.Join(parts, sep), bg)
}

func renderBar(width int, text string, bg lipgloss.TerminalColor) string {
	line := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), max(0, width-2), "")
	return footerStyle.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}
