package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"journal_server/internal/domain"
)

var (
	ErrDuplicateAccount      = errors.New("account number already exists")
	ErrStartingBalanceLocked = errors.New("starting balance is immutable once trades exist")
)

type AccountService struct {
	accountRepo  domain.AccountRepository
	tradeRepo    domain.TradeRepository
	txRepo       domain.TransactionRepository
	snapshotRepo domain.EquitySnapshotRepository
}

func NewAccountService(accountRepo domain.AccountRepository, tradeRepo domain.TradeRepository, txRepo domain.TransactionRepository, snapshotRepo domain.EquitySnapshotRepository) (*AccountService, error) {
	if accountRepo == nil {
		return nil, errors.New("account repository required")
	}
	if tradeRepo == nil {
		return nil, errors.New("trade repository required")
	}
	if txRepo == nil {
		return nil, errors.New("transaction repository required")
	}
	return &AccountService{
		accountRepo:  accountRepo,
		tradeRepo:    tradeRepo,
		txRepo:       txRepo,
		snapshotRepo: snapshotRepo,
	}, nil
}

func (s *AccountService) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	account.Number = strings.TrimSpace(account.Number)
	if account.Number == "" {
		return domain.Account{}, errors.New("account number required")
	}
	if account.StartingBalance <= 0 {
		return domain.Account{}, errors.New("starting balance must be positive")
	}
	if account.AccountType != domain.AccountTypeLive && account.AccountType != domain.AccountTypePropFirm {
		return domain.Account{}, fmt.Errorf("unknown account type %q", account.AccountType)
	}

	if account.Status == "" {
		account.Status = domain.AccountStatusActive
	}
	if account.AccountType == domain.AccountTypePropFirm {
		if account.CurrentPhase <= 0 {
			account.CurrentPhase = 1
		}
		if account.EvaluationType == "" {
			account.EvaluationType = domain.EvaluationTwoStep
		}
	} else {
		account.CurrentPhase = 0
		account.EvaluationType = ""
	}

	_, err := s.accountRepo.GetAccount(ctx, account.Number)
	if err == nil {
		return domain.Account{}, ErrDuplicateAccount
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Account{}, err
	}

	account.ID = uuid.NewString()
	if err := s.accountRepo.CreateAccount(ctx, account); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, number string) (domain.Account, error) {
	return s.accountRepo.GetAccount(ctx, number)
}

func (s *AccountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, filter)
}

func (s *AccountService) UpdateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	existing, err := s.accountRepo.GetAccount(ctx, account.Number)
	if err != nil {
		return domain.Account{}, err
	}

	if account.StartingBalance != existing.StartingBalance {
		count, err := s.tradeRepo.CountTrades(ctx, account.Number)
		if err != nil {
			return domain.Account{}, err
		}
		if count > 0 {
			return domain.Account{}, ErrStartingBalanceLocked
		}
	}

	if account.AccountType == "" {
		account.AccountType = existing.AccountType
	}
	if account.AccountType != existing.AccountType {
		return domain.Account{}, errors.New("account type cannot change")
	}
	if account.Status == "" {
		account.Status = existing.Status
	}

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		return domain.Account{}, err
	}

	return s.accountRepo.GetAccount(ctx, account.Number)
}

func (s *AccountService) ArchiveAccount(ctx context.Context, number string) error {
	return s.accountRepo.SetArchived(ctx, number, true)
}

func (s *AccountService) UnarchiveAccount(ctx context.Context, number string) error {
	return s.accountRepo.SetArchived(ctx, number, false)
}

// DeleteAccount removes the account and all its financial records. After a
// successful return the calculator will no longer see the account.
func (s *AccountService) DeleteAccount(ctx context.Context, number string) error {
	return s.accountRepo.DeleteAccountCascade(ctx, number)
}

func (s *AccountService) RecordPayout(ctx context.Context, payout domain.Transaction) (domain.Transaction, error) {
	if payout.AccountNumber == "" {
		return domain.Transaction{}, errors.New("account number required")
	}
	if payout.Amount == 0 {
		return domain.Transaction{}, errors.New("amount required")
	}
	if _, err := s.accountRepo.GetAccount(ctx, payout.AccountNumber); err != nil {
		return domain.Transaction{}, err
	}

	if payout.Status == "" {
		payout.Status = domain.TransactionStatusPaid
	}
	if payout.PaidAt.IsZero() {
		payout.PaidAt = time.Now().UTC()
	}
	payout.ID = uuid.NewString()

	if err := s.txRepo.AddTransaction(ctx, payout); err != nil {
		return domain.Transaction{}, err
	}

	return payout, nil
}

func (s *AccountService) ListPayouts(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.txRepo.ListTransactions(ctx, accountNumber, limit)
}

func (s *AccountService) DeletePayout(ctx context.Context, id string) error {
	return s.txRepo.DeleteTransaction(ctx, id)
}

// StatsOptions selects the accounts and the calculation rules for a
// portfolio summary.
type StatsOptions struct {
	Filter    domain.AccountFilter
	Calculate domain.CalculateOptions
}

type AccountEquity struct {
	Account domain.Account
	Equity  float64
	Funded  bool
}

type PortfolioStats struct {
	AsOf                 time.Time
	Accounts             []AccountEquity
	TotalEquity          float64
	TotalStartingBalance float64
	CountsByType         map[domain.AccountType]int
	CountsByStatus       map[domain.AccountStatus]int
}

// PortfolioStats computes per-account equity through the balance calculator
// and aggregates portfolio-level figures.
func (s *AccountService) PortfolioStats(ctx context.Context, opts StatsOptions) (PortfolioStats, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, opts.Filter)
	if err != nil {
		return PortfolioStats{}, err
	}

	trades, err := s.tradeRepo.ListAllTrades(ctx)
	if err != nil {
		return PortfolioStats{}, err
	}

	var transactions []domain.Transaction
	if opts.Calculate.IncludePayouts {
		transactions, err = s.txRepo.ListAllTransactions(ctx)
		if err != nil {
			return PortfolioStats{}, err
		}
	}

	balances := domain.CalculateAccountBalances(accounts, trades, transactions, opts.Calculate)

	stats := PortfolioStats{
		AsOf:           time.Now().UTC(),
		CountsByType:   make(map[domain.AccountType]int),
		CountsByStatus: make(map[domain.AccountStatus]int),
	}

	for _, acc := range accounts {
		equity := balances[acc.Number]
		stats.Accounts = append(stats.Accounts, AccountEquity{
			Account: acc,
			Equity:  equity,
			Funded:  acc.IsFunded(),
		})
		stats.TotalEquity += equity
		stats.TotalStartingBalance += acc.StartingBalance
		stats.CountsByType[acc.AccountType]++
		stats.CountsByStatus[acc.Status]++
	}

	return stats, nil
}

// SnapshotEquities records the current computed equity for every
// non-archived account. Returns the number of snapshots written.
func (s *AccountService) SnapshotEquities(ctx context.Context) (int, error) {
	if s.snapshotRepo == nil {
		return 0, errors.New("snapshot repository required")
	}

	stats, err := s.PortfolioStats(ctx, StatsOptions{
		Calculate: domain.CalculateOptions{IncludePayouts: true},
	})
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	count := 0
	for _, entry := range stats.Accounts {
		snapshot := domain.EquitySnapshot{
			AccountNumber: entry.Account.Number,
			Time:          now,
			Equity:        entry.Equity,
		}
		if err := s.snapshotRepo.InsertSnapshot(ctx, snapshot); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func (s *AccountService) ListEquityHistory(ctx context.Context, accountNumber string, limit int) ([]domain.EquitySnapshot, error) {
	if s.snapshotRepo == nil {
		return nil, errors.New("snapshot repository required")
	}
	if limit <= 0 {
		limit = 500
	}
	return s.snapshotRepo.ListSnapshots(ctx, accountNumber, limit)
}

// DrawdownReport evaluates an account's trade history against prop-firm
// loss limits. The account size is its starting balance.
func (s *AccountService) DrawdownReport(ctx context.Context, number string, dailyPercent, maxPercent float64) (domain.DrawdownReport, error) {
	account, err := s.accountRepo.GetAccount(ctx, number)
	if err != nil {
		return domain.DrawdownReport{}, err
	}

	trades, err := s.tradeRepo.ListTrades(ctx, number, 0)
	if err != nil {
		return domain.DrawdownReport{}, err
	}

	limits := domain.DrawdownLimits{
		AccountSize:        account.StartingBalance,
		DailyLossPercent:   dailyPercent,
		MaxDrawdownPercent: maxPercent,
	}

	return domain.EvaluateDrawdown(trades, limits), nil
}
