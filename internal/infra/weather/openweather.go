package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	domain "github.com/farmtech/farmtech-api/internal/domain/weather"
)

const defaultBaseURL = "http://api.openweathermap.org/data/2.5"

// Client talks to the OpenWeather current-weather API. With the demo key
// (or no key) it serves deterministic sample data so the app works without
// a paid subscription.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Current(ctx context.Context, lat, lon float64) (*domain.Report, error) {
	if c.apiKey == "" || c.apiKey == "demo_key" {
		return demoReport(lat, lon), nil
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openweather returned status %d", resp.StatusCode)
	}

	var body struct {
		Name string `json:"name"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	rep := &domain.Report{
		Location:        body.Name,
		TemperatureC:    body.Main.Temp,
		Humidity:        body.Main.Humidity,
		WindSpeedKMH:    body.Wind.Speed * 3.6,
		PrecipitationMM: body.Rain.OneHour,
		Recommendation:  recommendFor(body.Main.Temp, body.Rain.OneHour),
	}
	if len(body.Weather) > 0 {
		rep.Description = body.Weather[0].Description
	}
	if rep.Location == "" {
		rep.Location = fmt.Sprintf("Lat: %g, Lon: %g", lat, lon)
	}
	return rep, nil
}

func demoReport(lat, lon float64) *domain.Report {
	return &domain.Report{
		Location:        fmt.Sprintf("Lat: %g, Lon: %g", lat, lon),
		TemperatureC:    28.5,
		Humidity:        65,
		Description:     "Partly cloudy",
		WindSpeedKMH:    12.5,
		PrecipitationMM: 0.2,
		Recommendation:  "Good conditions for watering crops. Consider applying fertilizer in the evening.",
	}
}

func recommendFor(tempC, rainMM float64) string {
	switch {
	case rainMM > 2:
		return "Rain expected. Hold off on irrigation and fertilizer application."
	case tempC > 35:
		return "High heat. Irrigate early morning or late evening to reduce evaporation."
	default:
		return "Good conditions for watering crops. Consider applying fertilizer in the evening."
	}
}
