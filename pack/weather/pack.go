// Package weather provides a current-conditions lookup tool backed by wttr.in.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/pack"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
)

const defaultBaseURL = "https://wttr.in"

// Config configures the weather pack.
type Config struct {
	// BaseURL overrides the wttr.in endpoint, mainly for tests.
	BaseURL string

	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// New creates the weather pack.
func New(cfg Config) *pack.Pack {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}

	return pack.NewBuilder("weather").
		WithDescription("Current weather conditions").
		WithVersion("1.0.0").
		AddTool(currentTool(cfg)).
		Build()
}

type currentInput struct {
	Location string `json:"location"`
}

type currentOutput struct {
	Location    string  `json:"location"`
	Condition   string  `json:"condition"`
	TempC       float64 `json:"temp_c"`
	FeelsLikeC  float64 `json:"feels_like_c"`
	HumidityPct int     `json:"humidity_pct"`
	WindKmph    float64 `json:"wind_kmph"`
	Observed    string  `json:"observed"`
}

// wttrResponse is the subset of the wttr.in j1 payload we consume.
type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		FeelsLikeC  string `json:"FeelsLikeC"`
		Humidity    string `json:"humidity"`
		WindKmph    string `json:"windspeedKmph"`
		ObsTime     string `json:"localObsDateTime"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
	NearestArea []struct {
		AreaName []struct {
			Value string `json:"value"`
		} `json:"areaName"`
		Country []struct {
			Value string `json:"value"`
		} `json:"country"`
	} `json:"nearest_area"`
}

func currentTool(cfg Config) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"location": json.RawMessage(`{"type": "string", "minLength": 1}`),
	}, []string{"location"})

	return tool.NewBuilder("weather.current").
		WithDescription("Look up current weather conditions for a location").
		WithInputSchema(schema).
		ReadOnly().
		Cacheable().
		WithTimeout(20).
		WithHandler(func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in currentInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}

			endpoint := cfg.BaseURL + "/" + url.PathEscape(in.Location) + "?format=j1"
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return nil, tool.Permanent(err)
			}
			req.Header.Set("Accept", "application/json")

			resp, err := cfg.HTTPClient.Do(req)
			if err != nil {
				return nil, err
			}
			defer func() { _ = resp.Body.Close() }()

			body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			if err != nil {
				return nil, err
			}

			if resp.StatusCode == http.StatusNotFound {
				return nil, tool.Permanent(fmt.Errorf("unknown location %q", in.Location))
			}
			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("weather lookup failed (status %d)", resp.StatusCode)
			}

			var wr wttrResponse
			if err := json.Unmarshal(body, &wr); err != nil {
				return nil, fmt.Errorf("decode weather response: %w", err)
			}
			if len(wr.CurrentCondition) == 0 {
				return nil, tool.Permanent(fmt.Errorf("no conditions reported for %q", in.Location))
			}

			cc := wr.CurrentCondition[0]
			out := currentOutput{
				Location:    in.Location,
				TempC:       parseNum(cc.TempC),
				FeelsLikeC:  parseNum(cc.FeelsLikeC),
				HumidityPct: int(parseNum(cc.Humidity)),
				WindKmph:    parseNum(cc.WindKmph),
				Observed:    cc.ObsTime,
			}
			if len(cc.WeatherDesc) > 0 {
				out.Condition = cc.WeatherDesc[0].Value
			}
			if len(wr.NearestArea) > 0 {
				area := wr.NearestArea[0]
				if len(area.AreaName) > 0 {
					out.Location = area.AreaName[0].Value
					if len(area.Country) > 0 && area.Country[0].Value != "" {
						out.Location += ", " + area.Country[0].Value
					}
				}
			}

			return json.Marshal(out)
		}).
		MustBuild()
}

// parseNum tolerates the string-typed numbers wttr.in emits.
func parseNum(s string) float64 {
	var f float64
	_, _ = fmt.Sscanf(s, "%g", &f)
	return f
}
