package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when the requested record does
// not exist.
var ErrNotFound = errors.New("record not found")

// NewsFeed fetches calendar events from an external source.
type NewsFeed interface {
	FetchEvents(ctx context.Context) ([]NewsEvent, error)
}

// NewsEventRepository persists calendar events.
type NewsEventRepository interface {
	UpsertEvents(ctx context.Context, events []NewsEvent) error
	ListEvents(ctx context.Context, opts ListEventsOptions) ([]NewsEvent, error)
}

// AccountFilter narrows account listings. Zero values mean "no filter";
// archived accounts are excluded unless IncludeArchived is set.
type AccountFilter struct {
	AccountType     AccountType
	Status          AccountStatus
	Search          string
	IncludeArchived bool
}

type AccountRepository interface {
	CreateAccount(ctx context.Context, account Account) error
	GetAccount(ctx context.Context, number string) (Account, error)
	ListAccounts(ctx context.Context, filter AccountFilter) ([]Account, error)
	UpdateAccount(ctx context.Context, account Account) error
	SetArchived(ctx context.Context, number string, archived bool) error
	// DeleteAccountCascade removes the account together with its trades,
	// transactions and equity snapshots in one transaction.
	DeleteAccountCascade(ctx context.Context, number string) error
}

type TradeRepository interface {
	UpsertTrade(ctx context.Context, trade Trade) error
	GetTrade(ctx context.Context, id string) (Trade, error)
	ListTrades(ctx context.Context, accountNumber string, limit int) ([]Trade, error)
	ListAllTrades(ctx context.Context) ([]Trade, error)
	CountTrades(ctx context.Context, accountNumber string) (int64, error)
	UpdateAnnotations(ctx context.Context, id string, annotations TradeAnnotations) error
}

type TransactionRepository interface {
	AddTransaction(ctx context.Context, tx Transaction) error
	ListTransactions(ctx context.Context, accountNumber string, limit int) ([]Transaction, error)
	ListAllTransactions(ctx context.Context) ([]Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

type TagRepository interface {
	CreateTag(ctx context.Context, tag Tag) error
	ListTags(ctx context.Context) ([]Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

type EquitySnapshotRepository interface {
	InsertSnapshot(ctx context.Context, snapshot EquitySnapshot) error
	ListSnapshots(ctx context.Context, accountNumber string, limit int) ([]EquitySnapshot, error)
}
