package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Текущая погода в городе, как её отдаёт провайдер
type Weather struct {
	Name        string
	Country     string
	Icon        string
	Main        string
	Description string
	Temp        float64 // K
	FeelsLike   float64 // K
	Humidity    float64 // %
	WindSpeed   float64 // m/s
}

// Сущности базы данных

// Страница (чат), в которой показывается погода.
// MessageID указывает на сообщение, которое редактируется при обновлении.
type Page struct {
	UUID      string `gorm:"primaryKey"`
	ChatID    int64  `gorm:"not null;uniqueIndex"`
	MessageID int
	Theme     string
	Text      string
}

func (e *Page) BeforeCreate(_ *gorm.DB) (err error) {
	e.UUID = uuid.NewString()
	return
}
