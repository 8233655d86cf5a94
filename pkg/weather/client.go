// Package weather reads current conditions from Open-Meteo and air quality
// from the OpenWeatherMap air pollution API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultWeatherBaseURL    = "https://api.open-meteo.com"
	defaultAirQualityBaseURL = "https://api.openweathermap.org"
)

// Conditions are the current weather at a location.
type Conditions struct {
	TemperatureC float64 `json:"temperature_c"`
	HumidityPct  float64 `json:"humidity_pct"`
	WindKMH      float64 `json:"wind_kmh"`
	UVIndex      float64 `json:"uv_index"`
	Code         int     `json:"code"`
	Description  string  `json:"description"`
}

// AirQuality is the air quality at a location on a 0-500 style scale.
type AirQuality struct {
	Index    int     `json:"index"`
	Category string  `json:"category"`
	PM25     float64 `json:"pm2_5"`
	PM10     float64 `json:"pm10"`
}

var descriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
}

// Describe maps a WMO weather code to text.
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Unknown"
}

// aqiScale maps the 1-5 OpenWeatherMap index onto the familiar 0-500 scale.
var aqiScale = map[int]int{1: 25, 2: 50, 3: 100, 4: 150, 5: 200}

// ScaleIndex converts an OpenWeatherMap index. Unknown values read as moderate.
func ScaleIndex(owm int) int {
	if v, ok := aqiScale[owm]; ok {
		return v
	}
	return 50
}

// Category buckets an AQI value.
func Category(aqi int) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

type Client struct {
	WeatherBaseURL    string
	AirQualityBaseURL string
	APIKey            string
	HTTPClient        *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{Timeout: 10 * time.Second}
	}
	return c.HTTPClient
}

func baseOr(base, fallback string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return fallback
	}
	return base
}

func (c *Client) getJSON(ctx context.Context, service, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", service, err)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("execute %s request: %w", service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", service, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s request failed with status %d", service, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", service, err)
	}
	return nil
}

func coords(lat, lon float64) (string, string) {
	return strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lon, 'f', -1, 64)
}

// Current returns the current conditions at lat/lon.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Conditions, error) {
	la, lo := coords(lat, lon)
	q := url.Values{}
	q.Set("latitude", la)
	q.Set("longitude", lo)
	q.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,uv_index")
	endpoint := baseOr(c.WeatherBaseURL, defaultWeatherBaseURL) + "/v1/forecast?" + q.Encode()

	var parsed struct {
		Current *struct {
			Temperature float64 `json:"temperature_2m"`
			Humidity    float64 `json:"relative_humidity_2m"`
			WeatherCode int     `json:"weather_code"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			UVIndex     float64 `json:"uv_index"`
		} `json:"current"`
	}
	if err := c.getJSON(ctx, "open-meteo", endpoint, &parsed); err != nil {
		return nil, err
	}
	if parsed.Current == nil {
		return nil, errors.New("open-meteo response has no current conditions")
	}

	cur := parsed.Current
	return &Conditions{
		TemperatureC: cur.Temperature,
		HumidityPct:  cur.Humidity,
		WindKMH:      cur.WindSpeed,
		UVIndex:      cur.UVIndex,
		Code:         cur.WeatherCode,
		Description:  Describe(cur.WeatherCode),
	}, nil
}

// AirQuality returns the air quality at lat/lon.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (*AirQuality, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("openweathermap api key is not configured")
	}
	la, lo := coords(lat, lon)
	q := url.Values{}
	q.Set("lat", la)
	q.Set("lon", lo)
	q.Set("appid", c.APIKey)
	endpoint := baseOr(c.AirQualityBaseURL, defaultAirQualityBaseURL) + "/data/2.5/air_pollution?" + q.Encode()

	var parsed struct {
		List []struct {
			Main struct {
				AQI int `json:"aqi"`
			} `json:"main"`
			Components struct {
				PM25 float64 `json:"pm2_5"`
				PM10 float64 `json:"pm10"`
			} `json:"components"`
		} `json:"list"`
	}
	if err := c.getJSON(ctx, "openweathermap", endpoint, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.List) == 0 {
		return nil, errors.New("openweathermap response has no readings")
	}

	reading := parsed.List[0]
	index := ScaleIndex(reading.Main.AQI)
	return &AirQuality{
		Index:    index,
		Category: Category(index),
		PM25:     reading.Components.PM25,
		PM10:     reading.Components.PM10,
	}, nil
}
