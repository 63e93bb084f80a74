// Package web provides web search and fetch tools.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/pack"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
)

const braveSearchURL = "https://api.search.brave.com/res/v1/web/search"

// Config configures the web pack.
type Config struct {
	// APIKey is the Brave Search subscription token.
	APIKey string

	// MaxResults caps the results per search (default 5).
	MaxResults int

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// New creates the web pack.
func New(cfg Config) *pack.Pack {
	if cfg.MaxResults == 0 {
		cfg.MaxResults = 5
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}

	return pack.NewBuilder("web").
		WithDescription("Web search and page fetch").
		WithVersion("1.0.0").
		AddTools(
			searchTool(cfg),
			fetchTool(cfg.HTTPClient),
		).
		Build()
}

type searchInput struct {
	Query string `json:"query"`
	Count int    `json:"count,omitempty"`
}

type searchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type searchOutput struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

// braveResponse is the subset of the Brave Search answer we consume.
type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func searchTool(cfg Config) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"query": json.RawMessage(`{"type": "string", "minLength": 1}`),
		"count": json.RawMessage(`{"type": "integer", "minimum": 1, "maximum": 20}`),
	}, []string{"query"})

	return tool.NewBuilder("web.search").
		WithDescription("Search the web and return titles, URLs, and snippets").
		WithInputSchema(schema).
		ReadOnly().
		Cacheable().
		WithTimeout(20).
		WithHandler(func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in searchInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}

			count := in.Count
			if count == 0 || count > cfg.MaxResults {
				count = cfg.MaxResults
			}

			q := url.Values{}
			q.Set("q", in.Query)
			q.Set("count", strconv.Itoa(count))

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, braveSearchURL+"?"+q.Encode(), nil)
			if err != nil {
				return nil, tool.Permanent(err)
			}
			req.Header.Set("Accept", "application/json")
			req.Header.Set("X-Subscription-Token", cfg.APIKey)

			resp, err := cfg.HTTPClient.Do(req)
			if err != nil {
				return nil, err
			}
			defer func() { _ = resp.Body.Close() }()

			body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			if err != nil {
				return nil, err
			}

			switch {
			case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
				return nil, tool.Permanent(fmt.Errorf("search rejected (status %d)", resp.StatusCode))
			case resp.StatusCode != http.StatusOK:
				return nil, fmt.Errorf("search failed (status %d)", resp.StatusCode)
			}

			var br braveResponse
			if err := json.Unmarshal(body, &br); err != nil {
				return nil, fmt.Errorf("decode search response: %w", err)
			}

			out := searchOutput{Query: in.Query}
			for _, r := range br.Web.Results {
				out.Results = append(out.Results, searchResult{
					Title:       r.Title,
					URL:         r.URL,
					Description: r.Description,
				})
				if len(out.Results) >= count {
					break
				}
			}

			return json.Marshal(out)
		}).
		MustBuild()
}

type fetchInput struct {
	URL string `json:"url"`
}

type fetchOutput struct {
	URL         string `json:"url"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
	Truncated   bool   `json:"truncated"`
}

const maxFetchBody = 256 << 10

func fetchTool(client *http.Client) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"url": json.RawMessage(`{"type": "string", "pattern": "^https?://"}`),
	}, []string{"url"})

	return tool.NewBuilder("web.fetch").
		WithDescription("Fetch a URL and return the response body (truncated)").
		WithInputSchema(schema).
		ReadOnly().
		Cacheable().
		WithTimeout(20).
		WithHandler(func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in fetchInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.URL, nil)
			if err != nil {
				return nil, tool.Permanent(err)
			}

			resp, err := client.Do(req)
			if err != nil {
				return nil, err
			}
			defer func() { _ = resp.Body.Close() }()

			body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBody+1))
			if err != nil {
				return nil, err
			}

			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, tool.Permanent(fmt.Errorf("fetch %s: status %d", in.URL, resp.StatusCode))
			}
			if resp.StatusCode >= 500 {
				return nil, fmt.Errorf("fetch %s: status %d", in.URL, resp.StatusCode)
			}

			truncated := len(body) > maxFetchBody
			if truncated {
				body = body[:maxFetchBody]
			}

			return json.Marshal(fetchOutput{
				URL:         in.URL,
				Status:      resp.StatusCode,
				ContentType: resp.Header.Get("Content-Type"),
				Body:        string(body),
				Truncated:   truncated,
			})
		}).
		MustBuild()
}
