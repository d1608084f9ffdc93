package domain

import "fmt"

// Значение-заглушка, которое нужно заменить настоящим ключом
const PlaceholderAPIKey = "YOUR_OPENWEATHERMAP_API_KEY"

// Ошибка запроса к провайдеру: сетевая ошибка (Status == 0) или неуспешный HTTP статус
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("API error (%d)", e.Status)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Ключ API не задан или остался заглушкой. Проверяется до отправки запроса
type NotConfiguredError struct {
	Message string
}

func (e *NotConfiguredError) Error() string {
	return e.Message
}
