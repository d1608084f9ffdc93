package wttrin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/ttodoshi/weweather-dashboard/internal/core/domain"
	"github.com/ttodoshi/weweather-dashboard/internal/core/ports"
)

const DefaultBaseURL = "https://wttr.in/"

type value struct {
	Value string `json:"value"`
}

// Ответ https://wttr.in/<город>?format=j1, числа приходят строками
type j1Response struct {
	CurrentCondition []struct {
		TempC         string  `json:"temp_C"`
		FeelsLikeC    string  `json:"FeelsLikeC"`
		Humidity      string  `json:"humidity"`
		WindspeedKmph string  `json:"windspeedKmph"`
		WeatherCode   string  `json:"weatherCode"`
		WeatherDesc   []value `json:"weatherDesc"`
	} `json:"current_condition"`
	NearestArea []struct {
		AreaName []value `json:"areaName"`
		Country  []value `json:"country"`
	} `json:"nearest_area"`
}

type wttrInWeatherProvider struct {
	baseURL string
	lang    string
	client  *http.Client
}

func NewWttrInWeatherProvider(baseURL, lang string, client *http.Client) ports.WeatherProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &wttrInWeatherProvider{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		lang:    lang,
		client:  client,
	}
}

func (s *wttrInWeatherProvider) FetchWeather(ctx context.Context, city string) (*domain.Weather, error) {
	// Получение погоды с сайта https://wttr.in/
	u := s.baseURL + url.PathEscape(city) + "?format=j1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.RequestError{Message: err.Error(), Err: err}
	}
	if s.lang != "" {
		req.Header.Add("Accept-Language", s.lang)
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

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &domain.RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("City not found: %s.", city)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &domain.RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("API error (%d)", resp.StatusCode)}
	}

	var res j1Response
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, &domain.RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err), Err: err}
	}
	if len(res.CurrentCondition) == 0 {
		return nil, &domain.RequestError{Status: resp.StatusCode, Message: "malformed response: no current conditions"}
	}
	current := res.CurrentCondition[0]

	w := &domain.Weather{Name: city}
	if len(res.NearestArea) > 0 {
		area := res.NearestArea[0]
		if len(area.AreaName) > 0 {
			w.Name = area.AreaName[0].Value
		}
		if len(area.Country) > 0 {
			w.Country = area.Country[0].Value
		}
	}
	if len(current.WeatherDesc) > 0 {
		w.Description = current.WeatherDesc[0].Value
	}

	code, err := strconv.Atoi(current.WeatherCode)
	if err != nil {
		return nil, &domain.RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("malformed weather code %q", current.WeatherCode), Err: err}
	}
	w.Main = weatherCode(code).Main()
	w.Icon = weatherCode(code).Icon()

	// Температуры хранятся в Кельвинах, как у OpenWeatherMap
	fields := []struct {
		raw string
		dst *float64
	}{
		{current.TempC, &w.Temp},
		{current.FeelsLikeC, &w.FeelsLike},
		{current.Humidity, &w.Humidity},
		{current.WindspeedKmph, &w.WindSpeed},
	}
	for _, f := range fields {
		if *f.dst, err = strconv.ParseFloat(f.raw, 64); err != nil {
			return nil, &domain.RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("malformed number %q", f.raw), Err: err}
		}
	}
	w.Temp += 273.15
	w.FeelsLike += 273.15
	w.WindSpeed /= 3.6

	return w, nil
}
