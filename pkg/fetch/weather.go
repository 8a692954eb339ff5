package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var weatherColumns = []string{"city", "temperature", "feels_like", "description", "humidity", "wind_speed", "timestamp"}

// 🌤️ WeatherClient fetches current conditions from OpenWeatherMap.
type WeatherClient struct {
	HTTPClient *http.Client
	BaseURL    string // override for tests
	APIKey     string
}

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

func (c *WeatherClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultHTTPClient
}

func (c *WeatherClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return openWeatherBaseURL
}

// weatherResponse mirrors the fields of the OpenWeatherMap payload we use.
type weatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// 🌡️ Current fetches current conditions for city. Without an API key it
// returns a fixed demo record, so the export path stays exercisable.
func (c *WeatherClient) Current(ctx context.Context, city string, now time.Time) (*Dataset, error) {
	logger := zerolog.Ctx(ctx)

	if city == "" {
		return nil, errors.New("city is required")
	}

	ds := NewDataset(weatherColumns...)

	if c.APIKey == "" {
		logger.Warn().Msg("no OpenWeatherMap API key, returning demo data")
		ds.Append(map[string]string{
			"city":        city,
			"temperature": "22.5",
			"feels_like":  "21.8",
			"description": "Partly cloudy",
			"humidity":    "65",
			"wind_speed":  "3.5",
			"timestamp":   now.Format(time.RFC3339),
		})
		return ds, nil
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.APIKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"/weather?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("weather API returned %s", resp.Status)
	}

	var payload weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Errorf("decoding weather response: %w", err)
	}

	description := ""
	if len(payload.Weather) > 0 {
		description = payload.Weather[0].Description
	}

	ds.Append(map[string]string{
		"city":        payload.Name,
		"temperature": formatFloat(payload.Main.Temp),
		"feels_like":  formatFloat(payload.Main.FeelsLike),
		"description": description,
		"humidity":    fmt.Sprintf("%d", payload.Main.Humidity),
		"wind_speed":  formatFloat(payload.Wind.Speed),
		"timestamp":   now.Format(time.RFC3339),
	})

	return ds, nil
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.1f", f)
}
