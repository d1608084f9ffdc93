package poller

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
)

const waitTimeout = 2 * time.Second

type fakeProvider struct {
	mu     sync.Mutex
	calls  []string
	called chan string
	fetch  func(ctx context.Context, city string, call int) (*domain.Weather, error)
}

func newFakeProvider(fetch func(ctx context.Context, city string, call int) (*domain.Weather, error)) *fakeProvider {
	return &fakeProvider{
		called: make(chan string, 100),
		fetch:  fetch,
	}
}

func (p *fakeProvider) FetchWeather(ctx context.Context, city string) (*domain.Weather, error) {
	p.mu.Lock()
	p.calls = append(p.calls, city)
	call := len(p.calls)
	p.mu.Unlock()

	p.called <- city
	return p.fetch(ctx, city, call)
}

func (p *fakeProvider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *fakeProvider) waitCall(t *testing.T) string {
	t.Helper()
	select {
	case city := <-p.called:
		return city
	case <-time.After(waitTimeout):
		t.Fatalf("provider was not called")
		return ""
	}
}

func weatherFor(city string) *domain.Weather {
	return &domain.Weather{
		Name:        city,
		Country:     "XX",
		Icon:        "01d",
		Main:        "Clear",
		Description: "clear sky",
		Temp:        300.0,
		FeelsLike:   273.15,
		Humidity:    40,
		WindSpeed:   1.5,
	}
}

type fakeDisplay struct {
	mu     sync.Mutex
	events []string
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{}
}

func (d *fakeDisplay) record(event string) {
	d.mu.Lock()
	d.events = append(d.events, event)
	d.mu.Unlock()
}

func (d *fakeDisplay) Clear()                 { d.record("clear") }
func (d *fakeDisplay) ShowMessage(msg string) { d.record("message:" + msg) }
func (d *fakeDisplay) ShowError(msg string)   { d.record("error:" + msg) }
func (d *fakeDisplay) ShowWeather(card domain.Card) {
	d.record("weather:" + card.Location)
}

func (d *fakeDisplay) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *fakeDisplay) Last() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.events) == 0 {
		return ""
	}
	return d.events[len(d.events)-1]
}

func (d *fakeDisplay) count(prefix string) int {
	n := 0
	for _, e := range d.Events() {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

func (d *fakeDisplay) waitCount(t *testing.T, prefix string, n int) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for d.count(prefix) < n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d %q events, got %v", n, prefix, d.Events())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Ручной тикер: тик отправляется тестом, отправка блокируется, пока цикл не готов его принять
type manualTicker struct {
	mu      sync.Mutex
	ticks   []chan time.Time
	stopped []bool
}

func (m *manualTicker) new(time.Duration) (<-chan time.Time, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan time.Time)
	idx := len(m.ticks)
	m.ticks = append(m.ticks, ch)
	m.stopped = append(m.stopped, false)
	return ch, func() {
		m.mu.Lock()
		m.stopped[idx] = true
		m.mu.Unlock()
	}
}

func (m *manualTicker) channel(t *testing.T, i int) chan time.Time {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if i >= len(m.ticks) {
		t.Fatalf("ticker %d was never created (%d created)", i, len(m.ticks))
	}
	return m.ticks[i]
}

func (m *manualTicker) tick(t *testing.T, i int) {
	t.Helper()
	select {
	case m.channel(t, i) <- time.Now():
	case <-time.After(waitTimeout):
		t.Fatalf("loop %d is not waiting for a tick", i)
	}
}

func (m *manualTicker) isStopped(i int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped[i]
}

func (c *Controller) activeLoop() *loop {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func waitDone(t *testing.T, l *loop) {
	t.Helper()
	select {
	case <-l.done:
	case <-time.After(waitTimeout):
		t.Fatalf("loop for %s is still running", l.city)
	}
}
