package provider

import (
	"fmt"
	"net/http"

	"github.com/ttodoshi/weweather-dashboard/internal/adapters/provider/http/openweathermap"
	"github.com/ttodoshi/weweather-dashboard/internal/adapters/provider/http/wttrin"
	"github.com/ttodoshi/weweather-dashboard/internal/core/ports"
	"github.com/ttodoshi/weweather-dashboard/pkg/env"
)

const (
	OpenWeatherMap = "openweathermap"
	WttrIn         = "wttrin"
)

// Выбор провайдера погоды по конфигурации
func New(cfg env.Config, client *http.Client) (ports.WeatherProvider, error) {
	switch cfg.Provider {
	case "", OpenWeatherMap:
		return openweathermap.NewOpenWeatherMapWeatherProvider(cfg.APIKey, cfg.APIBaseURL, client), nil
	case WttrIn:
		return wttrin.NewWttrInWeatherProvider(cfg.APIBaseURL, cfg.Lang, client), nil
	}
	return nil, fmt.Errorf("unknown weather provider %q", cfg.Provider)
}
