package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"journal_server/internal/domain"
)

// NewsFeed pulls economic-calendar events from a ForexFactory-style
// JSON feed.
type NewsFeed struct {
	client  *resty.Client
	baseURL string
}

type rawEvent struct {
	Title    string `json:"title"`
	Country  string `json:"country"`
	Date     string `json:"date"`
	Impact   string `json:"impact"`
	Actual   string `json:"actual"`
	Forecast string `json:"forecast"`
	Previous string `json:"previous"`
	URL      string `json:"url"`
}

func NewNewsFeed(baseURL string, opts ...func(*resty.Client)) (*NewsFeed, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("baseURL is required")
	}

	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	for _, opt := range opts {
		opt(client)
	}

	return &NewsFeed{
		client:  client,
		baseURL: baseURL,
	}, nil
}

func (f *NewsFeed) FetchEvents(ctx context.Context) ([]domain.NewsEvent, error) {
	var payload []rawEvent

	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(f.baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("feed responded with status %d", resp.StatusCode())
	}

	events := make([]domain.NewsEvent, 0, len(payload))
	for _, item := range payload {
		ts, err := time.Parse(time.RFC3339, item.Date)
		if err != nil {
			// Skip malformed records while allowing the rest to be processed.
			continue
		}

		ev := domain.NewsEvent{
			Date:      ts.UTC(),
			Currency:  strings.TrimSpace(item.Country),
			Impact:    strings.TrimSpace(item.Impact),
			Title:     strings.TrimSpace(item.Title),
			Actual:    strings.TrimSpace(item.Actual),
			Forecast:  strings.TrimSpace(item.Forecast),
			Previous:  strings.TrimSpace(item.Previous),
			SourceURL: strings.TrimSpace(item.URL),
		}

		events = append(events, ev.WithHash())
	}

	return events, nil
}
