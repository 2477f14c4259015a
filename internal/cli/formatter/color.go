package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua       = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CategoryColor returns the style used for an attraction category.
func CategoryColor(c domain.Category) lipgloss.Style {
	switch c {
	case domain.CategoryFood:
		return StyleYellow
	case domain.CategoryActivity:
		return StyleGreen
	case domain.CategoryShopping:
		return StylePurple
	case domain.CategorySight:
		return StyleBlue
	case domain.CategoryLodging:
		return StyleAqua
	case domain.CategoryTransit:
		return StyleDim
	default:
		return StyleFg
	}
}

// CategoryBadge returns a fixed-width colored category label such as "[food    ]".
func CategoryBadge(c domain.Category) string {
	label := string(c)
	if label == "" {
		label = "--"
	}
	return CategoryColor(c).Render(fmt.Sprintf("[%-8s]", label))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
