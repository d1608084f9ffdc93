package ports

import (
	"context"

	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
)

// Интерфейс для получения погоды
type WeatherProvider interface {
	FetchWeather(ctx context.Context, city string) (*domain.Weather, error)
}

// Интерфейс страницы, на которой показывается погода.
// Область сообщений и область карточки погоды
type Display interface {
	// Скрыть карточку и очистить сообщения
	Clear()
	// Информационное сообщение (загрузка, подсказка)
	ShowMessage(text string)
	// Сообщение об ошибке: карточка скрывается, оформление сбрасывается
	ShowError(text string)
	// Показать карточку погоды и применить оформление по её категории
	ShowWeather(card domain.Card)
}

// Хранилище страниц (чатов) телеграм-бота
type PageRepository interface {
	FindByChat(chatID int64) (*domain.Page, error)
	Save(page *domain.Page) error
	DeleteByChat(chatID int64) error
}
