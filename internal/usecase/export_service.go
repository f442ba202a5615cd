package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"journal_server/internal/domain"
)

type ExportService struct {
	accountRepo domain.AccountRepository
	tradeRepo   domain.TradeRepository
}

func NewExportService(accountRepo domain.AccountRepository, tradeRepo domain.TradeRepository) (*ExportService, error) {
	if accountRepo == nil {
		return nil, errors.New("account repository required")
	}
	if tradeRepo == nil {
		return nil, errors.New("trade repository required")
	}
	return &ExportService{
		accountRepo: accountRepo,
		tradeRepo:   tradeRepo,
	}, nil
}

type tradeExportRow struct {
	AccountNumber string  `csv:"account_number"`
	Ticket        int64   `csv:"ticket"`
	Symbol        string  `csv:"symbol"`
	Side          string  `csv:"side"`
	Volume        float64 `csv:"volume"`
	EntryTime     string  `csv:"entry_time"`
	ExitTime      string  `csv:"exit_time"`
	EntryPrice    float64 `csv:"entry_price"`
	ExitPrice     float64 `csv:"exit_price"`
	Pnl           float64 `csv:"pnl"`
	Commission    float64 `csv:"commission"`
	Swap          float64 `csv:"swap"`
	NetPnl        float64 `csv:"net_pnl"`
	Note          string  `csv:"note"`
	Tags          string  `csv:"tags"`
}

// ExportTrades renders a CSV document of the account's trades, newest
// first. An empty account number exports every account.
func (s *ExportService) ExportTrades(ctx context.Context, accountNumber string) ([]byte, error) {
	var trades []domain.Trade
	var err error

	if accountNumber == "" {
		trades, err = s.tradeRepo.ListAllTrades(ctx)
	} else {
		if _, err = s.accountRepo.GetAccount(ctx, accountNumber); err != nil {
			return nil, err
		}
		trades, err = s.tradeRepo.ListTrades(ctx, accountNumber, 0)
	}
	if err != nil {
		return nil, err
	}

	rows := make([]tradeExportRow, 0, len(trades))
	for _, trade := range trades {
		rows = append(rows, toExportRow(trade))
	}

	return gocsv.MarshalBytes(&rows)
}

func toExportRow(trade domain.Trade) tradeExportRow {
	tagNames := make([]string, 0, len(trade.Tags))
	for _, tag := range trade.Tags {
		tagNames = append(tagNames, tag.Name)
	}

	return tradeExportRow{
		AccountNumber: trade.AccountNumber,
		Ticket:        trade.Ticket,
		Symbol:        trade.Symbol,
		Side:          string(trade.Side),
		Volume:        trade.Volume,
		EntryTime:     formatTime(trade.EntryTime),
		ExitTime:      formatTime(trade.ExitTime),
		EntryPrice:    trade.EntryPrice,
		ExitPrice:     trade.ExitPrice,
		Pnl:           trade.Pnl,
		Commission:    trade.Commission,
		Swap:          trade.Swap,
		NetPnl:        trade.NetPnl(),
		Note:          trade.Note,
		Tags:          strings.Join(tagNames, ";"),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
