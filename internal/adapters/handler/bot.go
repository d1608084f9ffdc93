package handler

import (
	"context"
	"errors"
	"strings"
	"sync"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ttodoshi/weweather-dashboard/internal/adapters/display/telegram"
	"github.com/ttodoshi/weweather-dashboard/internal/core/ports"
	"github.com/ttodoshi/weweather-dashboard/internal/core/services/poller"
	"go.uber.org/zap"
)

const (
	startMessage   = "Enter a city name to begin!"
	stopButton     = "Stop updates"
	stoppedMessage = "Auto-updates stopped."
	unknownMessage = "Unknown command"
)

// Определение основной клавиатуры для бота
var mainKeyboard = tg.NewReplyKeyboard(
	tg.NewKeyboardButtonRow(
		tg.NewKeyboardButton(stopButton),
	),
)

// Определение структуры CommandHandler
type CommandHandler struct {
	ctx             context.Context
	bot             telegram.Sender
	pages           ports.PageRepository
	weatherProvider ports.WeatherProvider
	log             *zap.Logger
	opts            []poller.Option

	mu          sync.Mutex
	// Контроллер автообновления для каждого чата
	controllers map[int64]*poller.Controller
}

// Определение конструктора CommandHandler
func NewCommandHandler(
	ctx context.Context,
	bot telegram.Sender,
	pages ports.PageRepository,
	weatherProvider ports.WeatherProvider,
	log *zap.Logger,
	opts ...poller.Option,
) *CommandHandler {
	return &CommandHandler{
		ctx:             ctx,
		bot:             bot,
		pages:           pages,
		weatherProvider: weatherProvider,
		log:             log,
		opts:            opts,
		controllers:     make(map[int64]*poller.Controller),
	}
}

// Обработка пришедшей команды
func (h *CommandHandler) HandleCommand(update tg.Update) {
	// Если обновление не содержит сообщения, то игнорируем
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	// Если сообщение является командой
	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			msg := tg.NewMessage(chatID, startMessage)
			msg.ReplyMarkup = mainKeyboard
			h.send(msg)
		case "weather":
			h.search(chatID, update.Message.CommandArguments())
		case "stop":
			h.stop(chatID)
		default:
			h.send(tg.NewMessage(chatID, unknownMessage))
		}
		return
	}

	// Любой другой текст считается названием города
	switch text := update.Message.Text; text {
	case stopButton:
		h.stop(chatID)
	default:
		h.search(chatID, text)
	}
}

func (h *CommandHandler) search(chatID int64, city string) {
	city = strings.TrimSpace(city)
	if city == "" {
		return
	}

	err := h.controller(chatID).FetchAndStart(h.ctx, city)
	if errors.Is(err, poller.ErrSuperseded) {
		h.log.Debug("search superseded", zap.Int64("chat", chatID), zap.String("city", city))
	}
}

// Закрытие страницы чата: автообновление останавливается
func (h *CommandHandler) stop(chatID int64) {
	h.mu.Lock()
	c, ok := h.controllers[chatID]
	h.mu.Unlock()

	if ok {
		c.Close()
	}
	if err := h.pages.DeleteByChat(chatID); err != nil {
		h.log.Error("cannot delete page", zap.Int64("chat", chatID), zap.Error(err))
	}
	h.send(tg.NewMessage(chatID, stoppedMessage))
}

func (h *CommandHandler) controller(chatID int64) *poller.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.controllers[chatID]
	if !ok {
		display := telegram.NewDisplay(h.bot, h.pages, chatID, h.log)
		opts := append([]poller.Option{poller.WithLogger(h.log.With(zap.Int64("chat", chatID)))}, h.opts...)
		c = poller.NewController(h.ctx, h.weatherProvider, display, opts...)
		h.controllers[chatID] = c
	}
	return c
}

// Остановка автообновления во всех чатах
func (h *CommandHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.controllers {
		c.Close()
	}
}

func (h *CommandHandler) send(msg tg.MessageConfig) {
	// Отправляем сообщение
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Error("cannot send message", zap.Int64("chat", msg.ChatID), zap.Error(err))
	}
}
