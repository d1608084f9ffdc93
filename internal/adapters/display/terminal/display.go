package terminal

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
)

// Сообщения, которые контроллер передаёт в цикл bubbletea
type (
	clearMsg   struct{}
	messageMsg struct{ text string }
	errorMsg   struct{ text string }
	weatherMsg struct{ card domain.Card }
)

// Страница погоды в терминале. До Attach все обновления отбрасываются
type Display struct {
	mu      sync.Mutex
	program *tea.Program
}

func NewDisplay() *Display {
	return &Display{}
}

func (d *Display) Attach(p *tea.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.program = p
}

func (d *Display) Clear()                       { d.send(clearMsg{}) }
func (d *Display) ShowMessage(text string)      { d.send(messageMsg{text: text}) }
func (d *Display) ShowError(text string)        { d.send(errorMsg{text: text}) }
func (d *Display) ShowWeather(card domain.Card) { d.send(weatherMsg{card: card}) }

func (d *Display) send(msg tea.Msg) {
	d.mu.Lock()
	p := d.program
	d.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}
