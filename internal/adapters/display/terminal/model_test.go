package terminal

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
)

type fakeSearcher struct {
	cities []string
}

func (s *fakeSearcher) FetchAndStart(_ context.Context, city string) error {
	s.cities = append(s.cities, city)
	return nil
}

var osloCard = domain.NewCard(domain.Weather{
	Name:        "Oslo",
	Country:     "NO",
	Icon:        "13d",
	Main:        "Snow",
	Description: "light snow",
	Temp:        270.15,
	FeelsLike:   265.15,
	Humidity:    80,
	WindSpeed:   4,
})

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func TestModelSearch(t *testing.T) {
	search := &fakeSearcher{}
	m := NewModel(context.Background(), search)
	m.input.SetValue("  Oslo ")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected search command")
	}
	cmd()

	if len(search.cities) != 1 || search.cities[0] != "Oslo" {
		t.Fatalf("expected search for Oslo, got %v", search.cities)
	}
}

func TestModelEmptySearch(t *testing.T) {
	search := &fakeSearcher{}
	m := NewModel(context.Background(), search)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("expected no command for empty input")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(context.Background(), &fakeSearcher{})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestModelRendersDisplayUpdates(t *testing.T) {
	m := NewModel(context.Background(), &fakeSearcher{})
	if !strings.Contains(m.View(), startMessage) {
		t.Fatalf("expected instructional message on start")
	}

	m, _ = update(t, m, clearMsg{})
	m, _ = update(t, m, messageMsg{text: "Loading weather data..."})
	if !strings.Contains(m.View(), "Loading weather data...") {
		t.Fatalf("expected loading message")
	}

	m, _ = update(t, m, weatherMsg{card: osloCard})
	view := m.View()
	for _, want := range []string{"Oslo, NO", "light snow", "-3.0°C", "-8.0°C", "80%", "4.0 m/s"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Loading weather data...") {
		t.Fatalf("expected loading message to be cleared")
	}
	if m.theme != "Snow" {
		t.Fatalf("expected Snow theme, got %q", m.theme)
	}

	m, _ = update(t, m, errorMsg{text: "Failed to fetch weather: City not found: Nowhereville."})
	view = m.View()
	if !strings.Contains(view, "City not found: Nowhereville.") {
		t.Fatalf("expected error message in view")
	}
	if strings.Contains(view, "Oslo, NO") || m.theme != "" {
		t.Fatalf("expected card and theme to be cleared on error")
	}
}

func TestDisplayWithoutProgram(t *testing.T) {
	d := NewDisplay()

	d.Clear()
	d.ShowMessage("Loading weather data...")
	d.ShowWeather(osloCard)
	d.ShowError("boom")
}
