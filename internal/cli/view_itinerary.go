package cli

import (
	"strings"

	"github.com/alexanderramin/tripsheet/internal/cli/formatter"
	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	browserHeaderHeight = 2
	browserFooterHeight = 2
)

type itineraryKeyMap struct {
	Next key.Binding
	Prev key.Binding
	All  key.Binding
	Quit key.Binding
}

func newItineraryKeyMap() itineraryKeyMap {
	return itineraryKeyMap{
		Next: key.NewBinding(key.WithKeys("n", "right", "tab"), key.WithHelp("n/→", "next day")),
		Prev: key.NewBinding(key.WithKeys("p", "left", "shift+tab"), key.WithHelp("p/←", "prev day")),
		All:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all days")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k itineraryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.All, k.Quit}
}

func (k itineraryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// itineraryModel pages through a trip's days in a scrollable viewport.
type itineraryModel struct {
	trip *domain.Trip
	days []domain.Day
	// day is the index shown, or -1 for every day.
	day  int
	vp   viewport.Model
	keys itineraryKeyMap
	help help.Model
}

func newItineraryModel(t *domain.Trip, days []domain.Day, day int) itineraryModel {
	vp := viewport.New(80, 20)
	vp.KeyMap = browserViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	if day >= len(days) || day < -1 {
		day = -1
	}
	m := itineraryModel{
		trip: t,
		days: days,
		day:  day,
		vp:   vp,
		keys: newItineraryKeyMap(),
		help: help.New(),
	}
	m.refresh()
	return m
}

// browserViewportKeyMap scrolls with arrows and pages only, leaving letters
// and left/right free for day navigation.
func browserViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

func (m *itineraryModel) refresh() {
	var content string
	if m.day < 0 {
		content = formatter.FormatItinerary(m.days)
	} else {
		content = formatter.FormatDay(m.days[m.day])
	}
	m.vp.SetContent(content)
	m.vp.GotoTop()
}

func (m itineraryModel) Init() tea.Cmd { return nil }

func (m itineraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-browserHeaderHeight-browserFooterHeight)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if m.day < len(m.days)-1 {
				m.day++
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			if m.day > -1 {
				m.day--
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.All):
			if m.day != -1 {
				m.day = -1
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m itineraryModel) View() string {
	header := formatter.StyleHeader.Render(m.trip.Name) + "  " + formatter.Dim(dayTitle(m.days, m.day))
	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", max(m.vp.Width, 20)))
	return header + "\n\n" + m.vp.View() + "\n" + sep + "\n" + m.help.View(m.keys)
}
