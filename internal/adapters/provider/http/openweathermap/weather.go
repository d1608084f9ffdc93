package openweathermap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
	"github.com/ttodoshi/weweather-dashboard/internal/core/ports"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

type currentWeatherResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Weather []struct {
		Icon        string `json:"icon"`
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// В ошибках cod бывает и строкой, и числом, поэтому читаем только message
type errorResponse struct {
	Message string `json:"message"`
}

type openWeatherMapWeatherProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenWeatherMapWeatherProvider(apiKey, baseURL string, client *http.Client) ports.WeatherProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &openWeatherMapWeatherProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
	}
}

func (s *openWeatherMapWeatherProvider) FetchWeather(ctx context.Context, city string) (*domain.Weather, error) {
	// Ключ проверяется до запроса
	if s.apiKey == "" || s.apiKey == domain.PlaceholderAPIKey {
		return nil, &domain.NotConfiguredError{
			Message: "Please set API_KEY to your actual OpenWeatherMap API key.",
		}
	}

	// Получение погоды с сайта https://openweathermap.org/
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url(city), nil)
	if err != nil {
		return nil, &domain.RequestError{Message: err.Error(), Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.RequestError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.RequestError{Status: resp.StatusCode, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.RequestError{
			Status:  resp.StatusCode,
			Message: statusMessage(resp.StatusCode, city, body),
		}
	}

	var res currentWeatherResponse
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, &domain.RequestError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("malformed response: %v", err),
			Err:     err,
		}
	}
	if len(res.Weather) == 0 {
		return nil, &domain.RequestError{
			Status:  resp.StatusCode,
			Message: "malformed response: no weather conditions",
		}
	}

	return &domain.Weather{
		Name:        res.Name,
		Country:     res.Sys.Country,
		Icon:        res.Weather[0].Icon,
		Main:        res.Weather[0].Main,
		Description: res.Weather[0].Description,
		Temp:        res.Main.Temp,
		FeelsLike:   res.Main.FeelsLike,
		Humidity:    res.Main.Humidity,
		WindSpeed:   res.Wind.Speed,
	}, nil
}

// Город кодируется как в encodeURIComponent: пробел превращается в %20, а не в +
func (s *openWeatherMapWeatherProvider) url(city string) string {
	return fmt.Sprintf(
		"%s?q=%s&appid=%s",
		s.baseURL,
		strings.ReplaceAll(url.QueryEscape(city), "+", "%20"),
		url.QueryEscape(s.apiKey),
	)
}

func statusMessage(status int, city string, body []byte) string {
	switch status {
	case http.StatusNotFound:
		return fmt.Sprintf("City not found: %s.", city)
	case http.StatusUnauthorized:
		return fmt.Sprintf(
			"Invalid API key (%d). Please check your OpenWeatherMap key and ensure it has been activated.",
			status,
		)
	}

	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error (%d)", status)
}
