package usecase

import (
	"context"
	"errors"
	"fmt"

	"journal_server/internal/domain"
)

var ErrNoEvents = errors.New("no events fetched")

// NewsService syncs economic-calendar events into the store so trades can
// be tagged against them.
type NewsService struct {
	feed domain.NewsFeed
	repo domain.NewsEventRepository
}

func NewNewsService(feed domain.NewsFeed, repo domain.NewsEventRepository) (*NewsService, error) {
	if feed == nil {
		return nil, fmt.Errorf("feed is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return &NewsService{
		feed: feed,
		repo: repo,
	}, nil
}

func (s *NewsService) Sync(ctx context.Context) (int, error) {
	events, err := s.feed.FetchEvents(ctx)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, ErrNoEvents
	}

	unique := make(map[string]domain.NewsEvent, len(events))
	for _, ev := range events {
		hashed := ev.WithHash()
		unique[hashed.Hash] = hashed
	}

	collated := make([]domain.NewsEvent, 0, len(unique))
	for _, ev := range unique {
		collated = append(collated, ev)
	}

	if err := s.repo.UpsertEvents(ctx, collated); err != nil {
		return 0, err
	}

	return len(collated), nil
}

func (s *NewsService) List(ctx context.Context, opts domain.ListEventsOptions) ([]domain.NewsEvent, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	return s.repo.ListEvents(ctx, opts)
}
