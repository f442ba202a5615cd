package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"journal_server/internal/domain"
)

type TradeService struct {
	accountRepo domain.AccountRepository
	tradeRepo   domain.TradeRepository
	tagRepo     domain.TagRepository
}

func NewTradeService(accountRepo domain.AccountRepository, tradeRepo domain.TradeRepository, tagRepo domain.TagRepository) (*TradeService, error) {
	if accountRepo == nil {
		return nil, errors.New("account repository required")
	}
	if tradeRepo == nil {
		return nil, errors.New("trade repository required")
	}
	return &TradeService{
		accountRepo: accountRepo,
		tradeRepo:   tradeRepo,
		tagRepo:     tagRepo,
	}, nil
}

// RecordTrade inserts or refreshes a trade, keyed by account number and
// ticket. The owning account must exist.
func (s *TradeService) RecordTrade(ctx context.Context, trade domain.Trade) error {
	if trade.AccountNumber == "" {
		return errors.New("account number required")
	}
	if trade.Ticket == 0 {
		return errors.New("ticket required")
	}
	if _, err := s.accountRepo.GetAccount(ctx, trade.AccountNumber); err != nil {
		return err
	}

	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}

	return s.tradeRepo.UpsertTrade(ctx, trade)
}

func (s *TradeService) GetTrade(ctx context.Context, id string) (domain.Trade, error) {
	return s.tradeRepo.GetTrade(ctx, id)
}

func (s *TradeService) ListTrades(ctx context.Context, accountNumber string, limit int) ([]domain.Trade, error) {
	if limit <= 0 {
		limit = 1000
	}
	return s.tradeRepo.ListTrades(ctx, accountNumber, limit)
}

// AnnotateTrade replaces the trade's annotation set (note, screenshots,
// tags, linked news events) and returns the updated trade.
func (s *TradeService) AnnotateTrade(ctx context.Context, id string, annotations domain.TradeAnnotations) (domain.Trade, error) {
	if id == "" {
		return domain.Trade{}, errors.New("trade id required")
	}

	annotations.Note = strings.TrimSpace(annotations.Note)
	for _, url := range annotations.ScreenshotURLs {
		if strings.TrimSpace(url) == "" {
			return domain.Trade{}, errors.New("empty screenshot url")
		}
	}

	if err := s.tradeRepo.UpdateAnnotations(ctx, id, annotations); err != nil {
		return domain.Trade{}, err
	}

	return s.tradeRepo.GetTrade(ctx, id)
}

func (s *TradeService) CreateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	if s.tagRepo == nil {
		return domain.Tag{}, errors.New("tag repository required")
	}
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return domain.Tag{}, errors.New("tag name required")
	}

	tag.ID = uuid.NewString()
	if err := s.tagRepo.CreateTag(ctx, tag); err != nil {
		return domain.Tag{}, err
	}

	return tag, nil
}

func (s *TradeService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	if s.tagRepo == nil {
		return nil, errors.New("tag repository required")
	}
	return s.tagRepo.ListTags(ctx)
}

func (s *TradeService) DeleteTag(ctx context.Context, id string) error {
	if s.tagRepo == nil {
		return errors.New("tag repository required")
	}
	return s.tagRepo.DeleteTag(ctx, id)
}
