package poller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
	"github.com/ttodoshi/weweather-dashboard/internal/core/ports"
	"go.uber.org/zap"
)

const (
	// Интервал автообновления погоды
	DefaultInterval = 60 * time.Second

	LoadingMessage = "Loading weather data..."
)

// Возвращается FetchAndStart, если пока шёл запрос, поиск был отменён или начат новый
var ErrSuperseded = errors.New("search superseded")

// Что делать с ответом, который пришёл после остановки цикла или нового поиска
type StaleResponsePolicy string

const (
	DiscardStale StaleResponsePolicy = "discard"
	ApplyStale   StaleResponsePolicy = "apply"
)

func ParseStaleResponsePolicy(s string) (StaleResponsePolicy, error) {
	switch p := StaleResponsePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DiscardStale, nil
	case DiscardStale, ApplyStale:
		return p, nil
	}
	return "", fmt.Errorf("unknown stale response policy %q", s)
}

// Состояние контроллера: Idle или Polling(city)
type State struct {
	City    string
	Polling bool
}

func (s State) String() string {
	if !s.Polling {
		return "Idle"
	}
	return fmt.Sprintf("Polling(%s)", s.City)
}

// Создаёт источник тиков и функцию его остановки
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func newTimeTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

type Option func(*Controller)

func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

func WithStaleResponsePolicy(p StaleResponsePolicy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

func WithTicker(f TickerFunc) Option {
	return func(c *Controller) {
		c.newTicker = f
	}
}

// Активный цикл автообновления
type loop struct {
	id     ulid.ULID
	city   string
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// Контроллер автообновления одной страницы.
// Держит не больше одного активного цикла, привязанного к текущему городу.
// Методы Display вызываются под мьютексом контроллера и не должны обращаться к нему обратно.
type Controller struct {
	ctx       context.Context
	provider  ports.WeatherProvider
	display   ports.Display
	log       *zap.Logger
	interval  time.Duration
	policy    StaleResponsePolicy
	newTicker TickerFunc

	mu     sync.Mutex
	active *loop
	// Увеличивается при каждой остановке; ответы с устаревшим поколением считаются запоздавшими
	gen    uint64
}

// ctx живёт столько же, сколько страница; запросы к провайдеру выполняются в нём,
// поэтому Stop не прерывает запрос, который уже отправлен
func NewController(
	ctx context.Context,
	provider ports.WeatherProvider,
	display ports.Display,
	opts ...Option,
) *Controller {
	c := &Controller{
		ctx:       ctx,
		provider:  provider,
		display:   display,
		log:       zap.NewNop(),
		interval:  DefaultInterval,
		policy:    DiscardStale,
		newTicker: newTimeTicker,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return State{}
	}
	return State{City: c.active.city, Polling: true}
}

// Запуск автообновления для города. Предыдущий цикл всегда останавливается
func (c *Controller) Start(city string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.startLocked(city)
}

func (c *Controller) startLocked(city string) {
	c.stopLocked()

	ctx, cancel := context.WithCancel(c.ctx)
	l := &loop{
		id:     ulid.Make(),
		city:   city,
		gen:    c.gen,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	ticks, stopTicker := c.newTicker(c.interval)
	c.active = l

	go c.run(ctx, l, ticks, stopTicker)

	c.log.Info(
		"auto-updating weather",
		zap.String("city", city),
		zap.Stringer("loop", l.id),
		zap.Duration("interval", c.interval),
	)
}

// Остановка автообновления. Без активного цикла ничего не делает
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
}

func (c *Controller) stopLocked() {
	c.gen++
	if c.active == nil {
		return
	}
	c.active.cancel()
	c.log.Info("auto-updating stopped", zap.String("city", c.active.city), zap.Stringer("loop", c.active.id))
	c.active = nil
}

// Закрытие страницы
func (c *Controller) Close() {
	c.Stop()
}

// Немедленный запрос погоды для города. При успехе показывает карточку и запускает автообновление,
// при ошибке показывает сообщение и оставляет контроллер без цикла
func (c *Controller) FetchAndStart(ctx context.Context, city string) error {
	c.mu.Lock()
	c.stopLocked()
	gen := c.gen
	c.display.Clear()
	c.display.ShowMessage(LoadingMessage)
	c.mu.Unlock()

	w, err := c.provider.FetchWeather(ctx, city)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen && c.policy == DiscardStale {
		c.log.Debug("discarding superseded search result", zap.String("city", city), zap.Error(err))
		return ErrSuperseded
	}

	if err != nil {
		c.log.Error("fetch error", zap.String("city", city), zap.Error(err))
		c.display.ShowError(errorMessage(err))
		c.stopLocked()
		return err
	}

	c.display.ShowWeather(domain.NewCard(*w))
	c.startLocked(city)
	return nil
}

func (c *Controller) run(ctx context.Context, l *loop, ticks <-chan time.Time, stopTicker func()) {
	defer close(l.done)
	defer stopTicker()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			// Тик и отмена могли прийти одновременно
			if ctx.Err() != nil {
				return
			}
			c.poll(l)
		}
	}
}

// Ошибки фонового обновления только логируются: на странице остаются прежние данные
func (c *Controller) poll(l *loop) {
	w, err := c.provider.FetchWeather(c.ctx, l.city)
	if err != nil {
		c.log.Warn(
			"polling fetch failed",
			zap.String("city", l.city),
			zap.Stringer("loop", l.id),
			zap.Error(err),
		)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if l.gen != c.gen && c.policy == DiscardStale {
		c.log.Debug("discarding stale polling result", zap.String("city", l.city), zap.Stringer("loop", l.id))
		return
	}
	c.display.ShowWeather(domain.NewCard(*w))
}

func errorMessage(err error) string {
	var notConfigured *domain.NotConfiguredError
	if errors.As(err, &notConfigured) {
		return notConfigured.Message
	}
	return fmt.Sprintf("Failed to fetch weather: %s.", strings.TrimSuffix(err.Error(), "."))
}
