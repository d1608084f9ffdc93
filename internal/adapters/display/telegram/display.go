package telegram

import (
	"fmt"
	"strings"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
	"github.com/ttodoshi/weweather-dashboard/internal/core/ports"
	"go.uber.org/zap"
)

// Отправка сообщений в телеграм, *tg.BotAPI подходит
type Sender interface {
	Send(c tg.Chattable) (tg.Message, error)
}

// Оформление карточки по категории погоды
var themes = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Drizzle":      "🌦️",
	"Thunderstorm": "⛈️",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Fog":          "🌫️",
	"Haze":         "🌫️",
	"Smoke":        "🌫️",
	"Dust":         "🌫️",
}

// Страница погоды в чате: одно сообщение, которое редактируется при каждом обновлении
type display struct {
	bot    Sender
	pages  ports.PageRepository
	chatID int64
	log    *zap.Logger
}

func NewDisplay(bot Sender, pages ports.PageRepository, chatID int64, log *zap.Logger) ports.Display {
	return &display{
		bot:    bot,
		pages:  pages,
		chatID: chatID,
		log:    log,
	}
}

// Старое сообщение остаётся в истории, следующее будет отправлено заново
func (d *display) Clear() {
	page, err := d.pages.FindByChat(d.chatID)
	if err != nil {
		d.log.Error("cannot load page", zap.Int64("chat", d.chatID), zap.Error(err))
		return
	}
	if page == nil || page.MessageID == 0 {
		return
	}
	page.MessageID = 0
	page.Text = ""
	d.save(page)
}

func (d *display) ShowMessage(text string) {
	d.render(tg.EscapeText(tg.ModeHTML, text), nil)
}

func (d *display) ShowError(text string) {
	d.render("❗ "+tg.EscapeText(tg.ModeHTML, text), func(page *domain.Page) {
		page.Theme = ""
	})
}

func (d *display) ShowWeather(card domain.Card) {
	d.render(FormatCard(card), func(page *domain.Page) {
		page.Theme = card.Theme
	})
}

func (d *display) render(text string, apply func(page *domain.Page)) {
	page, err := d.pages.FindByChat(d.chatID)
	if err != nil {
		d.log.Error("cannot load page", zap.Int64("chat", d.chatID), zap.Error(err))
		return
	}
	if page == nil {
		page = &domain.Page{ChatID: d.chatID}
	}
	if apply != nil {
		apply(page)
	}

	switch {
	case page.MessageID != 0 && page.Text == text:
		// Телеграм не принимает редактирование без изменений
	case page.MessageID != 0:
		edit := tg.NewEditMessageText(d.chatID, page.MessageID, text)
		edit.ParseMode = tg.ModeHTML
		if _, err = d.bot.Send(edit); err != nil {
			d.log.Error("cannot edit message", zap.Int64("chat", d.chatID), zap.Error(err))
			return
		}
	default:
		msg := tg.NewMessage(d.chatID, text)
		msg.ParseMode = tg.ModeHTML
		sent, err := d.bot.Send(msg)
		if err != nil {
			d.log.Error("cannot send message", zap.Int64("chat", d.chatID), zap.Error(err))
			return
		}
		page.MessageID = sent.MessageID
	}

	page.Text = text
	d.save(page)
}

func (d *display) save(page *domain.Page) {
	if err := d.pages.Save(page); err != nil {
		d.log.Error("cannot save page", zap.Int64("chat", d.chatID), zap.Error(err))
	}
}

// Карточка погоды в HTML-разметке телеграма. Невидимая ссылка на иконку даёт превью картинки
func FormatCard(card domain.Card) string {
	var b strings.Builder

	if card.IconURL != "" {
		fmt.Fprintf(&b, `<a href="%s">&#8205;</a>`, card.IconURL)
	}
	icon, ok := themes[card.Theme]
	if !ok {
		icon = "🌡️"
	}
	fmt.Fprintf(&b, "%s <b>%s</b>\n", icon, tg.EscapeText(tg.ModeHTML, card.Location))
	fmt.Fprintf(&b, "%s\n\n", tg.EscapeText(tg.ModeHTML, card.Description))
	fmt.Fprintf(&b, "🌡️ Temperature: %s\n", card.Temperature)
	fmt.Fprintf(&b, "🤗 Feels like: %s\n", card.FeelsLike)
	fmt.Fprintf(&b, "💧 Humidity: %s\n", card.Humidity)
	fmt.Fprintf(&b, "🌬️ Wind: %s", card.WindSpeed)

	return b.String()
}
