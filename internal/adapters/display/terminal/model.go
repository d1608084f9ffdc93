package terminal

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
)

const startMessage = "Enter a city name to begin!"

// Запуск поиска; *poller.Controller подходит
type Searcher interface {
	FetchAndStart(ctx context.Context, city string) error
}

type keyMap struct {
	Search key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Search: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	defaultThemeColor = lipgloss.Color("252")

	// Цвет карточки по категории погоды
	themeColors = map[string]lipgloss.Color{
		"Clear":        lipgloss.Color("220"),
		"Clouds":       lipgloss.Color("250"),
		"Rain":         lipgloss.Color("33"),
		"Drizzle":      lipgloss.Color("45"),
		"Thunderstorm": lipgloss.Color("99"),
		"Snow":         lipgloss.Color("255"),
		"Mist":         lipgloss.Color("246"),
		"Fog":          lipgloss.Color("246"),
	}
)

type Model struct {
	ctx    context.Context
	search Searcher
	input  textinput.Model

	message string
	isError bool
	card    *domain.Card
	theme   string
}

func NewModel(ctx context.Context, search Searcher) Model {
	input := textinput.New()
	input.Placeholder = "City name"
	input.CharLimit = 100
	input.Focus()

	return Model{
		ctx:     ctx,
		search:  search,
		input:   input,
		message: startMessage,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Search):
			city := strings.TrimSpace(m.input.Value())
			if city == "" {
				return m, nil
			}
			return m, m.fetch(city)
		}
	case clearMsg:
		m.message, m.isError, m.card = "", false, nil
		return m, nil
	case messageMsg:
		m.message, m.isError = msg.text, false
		return m, nil
	case errorMsg:
		m.message, m.isError, m.card, m.theme = msg.text, true, nil, ""
		return m, nil
	case weatherMsg:
		card := msg.card
		m.message, m.isError, m.card, m.theme = "", false, &card, card.Theme
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Запрос выполняется вне цикла обновления, результат придёт через Display
func (m Model) fetch(city string) tea.Cmd {
	return func() tea.Msg {
		_ = m.search.FetchAndStart(m.ctx, city)
		return nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Weather Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.message != "" {
		style := messageStyle
		if m.isError {
			style = errorStyle
		}
		b.WriteString(style.Render(m.message))
		b.WriteString("\n\n")
	}
	if m.card != nil {
		b.WriteString(renderCard(*m.card, m.theme))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render(keys.Search.Help().Key + ": " + keys.Search.Help().Desc +
		" • " + keys.Quit.Help().Key + ": " + keys.Quit.Help().Desc))
	return b.String()
}

func renderCard(card domain.Card, theme string) string {
	color, ok := themeColors[theme]
	if !ok {
		color = defaultThemeColor
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(color).Render(card.Location),
		card.Description,
		"",
		"Temperature: " + card.Temperature,
		"Feels like:  " + card.FeelsLike,
		"Humidity:    " + card.Humidity,
		"Wind:        " + card.WindSpeed,
	}
	if card.IconURL != "" {
		lines = append(lines, "Icon:        "+card.IconURL)
	}
	return cardStyle.BorderForeground(color).Render(strings.Join(lines, "\n"))
}
