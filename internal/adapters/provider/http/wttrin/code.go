package wttrin

// Код погоды World Weather Online, который возвращает wttr.in
type weatherCode int

// Категория погоды в терминах OpenWeatherMap
func (code weatherCode) Main() string {
	switch {
	case code == 113:
		return "Clear"
	case code == 116 || code == 119 || code == 122:
		return "Clouds"
	case code == 143:
		return "Mist"
	case code == 248 || code == 260:
		return "Fog"
	case code == 200 || code >= 386 && code <= 395:
		return "Thunderstorm"
	case code == 185 || code >= 263 && code <= 284:
		return "Drizzle"
	case code == 176 || code >= 293 && code <= 314 || code >= 353 && code <= 359:
		return "Rain"
	case code == 179 || code == 182 || code == 227 || code == 230 ||
		code >= 317 && code <= 350 || code >= 362 && code <= 377:
		return "Snow"
	}
	return ""
}

// Код иконки OpenWeatherMap для той же категории
func (code weatherCode) Icon() string {
	switch code.Main() {
	case "Clear":
		return "01d"
	case "Clouds":
		if code == 116 {
			return "02d"
		} else if code == 119 {
			return "03d"
		}
		return "04d"
	case "Mist", "Fog":
		return "50d"
	case "Thunderstorm":
		return "11d"
	case "Drizzle":
		return "09d"
	case "Rain":
		return "10d"
	case "Snow":
		return "13d"
	}
	return ""
}
