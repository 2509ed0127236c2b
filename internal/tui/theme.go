package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
	colorCrust    lipgloss.Color = "#11111b"
)

const (
	colorAccent  = colorBlue
	colorBrand   = colorMauve
	colorFocus   = colorLavender
	colorMuted   = colorOverlay1
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
)

var (
	badgeStyle       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	titleStyle       = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	subtitleStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	captionStyle     = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	descStyle        = lipgloss.NewStyle().Foreground(colorSubtext0).Italic(true)
	dotStyle         = lipgloss.NewStyle().Foreground(colorSurface1)
	activeDotStyle   = lipgloss.NewStyle().Foreground(colorFocus)
	arrowStyle       = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(colorOverlay0).Background(colorSurface0)
	pausedStyle      = lipgloss.NewStyle().Foreground(colorWarning)
	spinnerStyle     = lipgloss.NewStyle().Foreground(colorSapphire)
	lightboxBarStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorCrust)
	closeStyle       = lipgloss.NewStyle().Foreground(colorError).Background(colorCrust).Bold(true)

	footerStyle       = lipgloss.NewStyle().Foreground(colorText).Background(colorMantle).Padding(0, 1)
	statusBarStyle    = lipgloss.NewStyle().Foreground(colorSubtext0).Padding(0, 1)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true).Padding(0, 1)
	statusOKBarStyle  = lipgloss.NewStyle().Foreground(colorSuccess).Padding(0, 1)
	modalStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBrand).
				Background(colorBase).
				Padding(1, 2)
)
