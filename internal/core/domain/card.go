package domain

import (
	"fmt"
	"strconv"
)

const iconURLFormat = "http://openweathermap.org/img/wn/%s@2x.png"

// Перевод из Кельвинов в градусы Цельсия с одним знаком после запятой
func KelvinToCelsius(k float64) string {
	return strconv.FormatFloat(k-273.15, 'f', 1, 64)
}

// Подготовленная к показу карточка погоды
type Card struct {
	Location    string
	IconURL     string
	Description string
	Temperature string
	Humidity    string
	WindSpeed   string
	FeelsLike   string
	// Категория погоды (Clear, Clouds, Rain, ...), по ней выбирается оформление страницы
	Theme string
}

func NewCard(w Weather) Card {
	card := Card{
		Location:    w.Name,
		Description: w.Description,
		Temperature: KelvinToCelsius(w.Temp) + "°C",
		Humidity:    strconv.FormatFloat(w.Humidity, 'f', -1, 64) + "%",
		WindSpeed:   strconv.FormatFloat(w.WindSpeed, 'f', 1, 64) + " m/s",
		FeelsLike:   KelvinToCelsius(w.FeelsLike) + "°C",
		Theme:       w.Main,
	}
	if w.Country != "" {
		card.Location = fmt.Sprintf("%s, %s", w.Name, w.Country)
	}
	if w.Icon != "" {
		card.IconURL = fmt.Sprintf(iconURLFormat, w.Icon)
	}
	return card
}
