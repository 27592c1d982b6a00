package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sora-blue/GreatCorpSimulator/pkg/sim"
)

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorMagenta     = lipgloss.Color("#C678DD")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorOrange      = lipgloss.Color("#D19A66")
	ColorBlack       = lipgloss.Color("#000000")
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	PausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlack).
			Background(ColorYellow).
			Padding(0, 1)
)

// Task row styles
var (
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorSelectionBg)

	NormalStyle = lipgloss.NewStyle()

	LowStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	MediumStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	HighStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMagenta)

	DeadlineStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	GainStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	LossStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Meter styles
var (
	MeterLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(10)

	MeterValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	MeterDangerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorRed)

	CardStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	EffectStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)
)

// Panel styles
var (
	PanelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorGrayDim).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple).
			MarginBottom(1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	ModalLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(14)

	ModalValueStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)
)

// Icons
const (
	IconCursor   = "▶"
	IconDeadline = "⏰"
	IconCard     = "🂠"
	IconEffect   = "✦"
)

// CategoryStyle returns the style a task category is drawn in.
func CategoryStyle(c sim.Category) lipgloss.Style {
	switch c {
	case sim.CategoryHigh:
		return HighStyle
	case sim.CategoryMedium:
		return MediumStyle
	default:
		return LowStyle
	}
}
