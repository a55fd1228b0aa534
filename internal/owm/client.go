package owm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ayushkr5561/virtual-closet/internal/models"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// ProviderError reports a non-success status from the weather provider, e.g.
// an unknown city.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("weather provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("weather provider returned status %d: %s", e.StatusCode, e.Body)
}

// NetworkError reports a transport-level failure reaching the provider.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("weather provider unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type apiWeather struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
}

func (w apiWeather) snapshot() models.Snapshot {
	s := models.Snapshot{
		TempC:      w.Main.Temp,
		FeelsLikeC: w.Main.FeelsLike,
		Humidity:   w.Main.Humidity,
		WindSpeed:  w.Wind.Speed,
		City:       w.Name,
		Country:    w.Sys.Country,
		Timestamp:  w.Dt,
	}
	if len(w.Weather) > 0 {
		s.ConditionID = w.Weather[0].ID
		s.Description = w.Weather[0].Description
		s.Icon = w.Weather[0].Icon
	}
	return s
}

type apiForecast struct {
	List []struct {
		apiWeather
		DtTxt string `json:"dt_txt"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

// Current fetches the current conditions for a city name or coordinate pair.
func (c *Client) Current(ctx context.Context, loc models.LocationSpec) (models.Snapshot, error) {
	var raw apiWeather
	if err := c.get(ctx, "/weather", loc, &raw); err != nil {
		return models.Snapshot{}, err
	}
	return raw.snapshot(), nil
}

// Forecast fetches the 5-day/3-hour forecast series for a location.
func (c *Client) Forecast(ctx context.Context, loc models.LocationSpec) (models.ForecastSeries, error) {
	var raw apiForecast
	if err := c.get(ctx, "/forecast", loc, &raw); err != nil {
		return nil, err
	}

	series := make(models.ForecastSeries, 0, len(raw.List))
	for _, item := range raw.List {
		s := item.snapshot()
		s.City = raw.City.Name
		s.Country = raw.City.Country
		series = append(series, models.ForecastEntry{Snapshot: s, TimeText: item.DtTxt})
	}
	return series, nil
}

func (c *Client) get(ctx context.Context, path string, loc models.LocationSpec, dst any) error {
	params := url.Values{}
	if loc.HasCoords {
		params.Set("lat", fmt.Sprintf("%f", loc.Lat))
		params.Set("lon", fmt.Sprintf("%f", loc.Lon))
	} else {
		params.Set("q", loc.City)
	}
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)

	u := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}
