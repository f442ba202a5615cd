package usecase

import (
	"context"
	"errors"
	"testing"

	"journal_server/internal/domain"
)

func newAccountService(t *testing.T, accountRepo *fakeAccountRepo, tradeRepo *fakeTradeRepo, txRepo *fakeTransactionRepo, snapshotRepo *fakeSnapshotRepo) *AccountService {
	t.Helper()
	service, err := NewAccountService(accountRepo, tradeRepo, txRepo, snapshotRepo)
	if err != nil {
		t.Fatalf("init account service: %v", err)
	}
	return service
}

func TestCreateAccountDefaults(t *testing.T) {
	service := newAccountService(t, newFakeAccountRepo(), &fakeTradeRepo{}, &fakeTransactionRepo{}, &fakeSnapshotRepo{})

	created, err := service.CreateAccount(context.Background(), domain.Account{
		Number:          "PF-100",
		AccountType:     domain.AccountTypePropFirm,
		StartingBalance: 5000,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.Status != domain.AccountStatusActive {
		t.Fatalf("expected active status, got %s", created.Status)
	}
	if created.CurrentPhase != 1 {
		t.Fatalf("expected phase 1, got %d", created.CurrentPhase)
	}
	if created.EvaluationType != domain.EvaluationTwoStep {
		t.Fatalf("expected default evaluation type, got %s", created.EvaluationType)
	}
}

func TestCreateAccountDuplicate(t *testing.T) {
	repo := newFakeAccountRepo(domain.Account{Number: "ACC1", StartingBalance: 1000, AccountType: domain.AccountTypeLive})
	service := newAccountService(t, repo, &fakeTradeRepo{}, &fakeTransactionRepo{}, &fakeSnapshotRepo{})

	_, err := service.CreateAccount(context.Background(), domain.Account{
		Number:          "ACC1",
		AccountType:     domain.AccountTypeLive,
		StartingBalance: 2000,
	})
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestUpdateAccountStartingBalanceLocked(t *testing.T) {
	repo := newFakeAccountRepo(domain.Account{Number: "ACC1", StartingBalance: 1000, AccountType: domain.AccountTypeLive, Status: domain.AccountStatusActive})
	tradeRepo := &fakeTradeRepo{trades: []domain.Trade{{AccountNumber: "ACC1", Ticket: 1, Pnl: 50}}}
	service := newAccountService(t, repo, tradeRepo, &fakeTransactionRepo{}, &fakeSnapshotRepo{})

	_, err := service.UpdateAccount(context.Background(), domain.Account{
		Number:          "ACC1",
		StartingBalance: 2000,
	})
	if !errors.Is(err, ErrStartingBalanceLocked) {
		t.Fatalf("expected ErrStartingBalanceLocked, got %v", err)
	}

	// Unchanged balance is allowed even with trades present.
	updated, err := service.UpdateAccount(context.Background(), domain.Account{
		Number:          "ACC1",
		Name:            "renamed",
		StartingBalance: 1000,
	})
	if err != nil {
		t.Fatalf("update account: %v", err)
	}
	if updated.Name != "renamed" {
		t.Fatalf("expected rename, got %q", updated.Name)
	}
}

func TestRecordPayoutUnknownAccount(t *testing.T) {
	service := newAccountService(t, newFakeAccountRepo(), &fakeTradeRepo{}, &fakeTransactionRepo{}, &fakeSnapshotRepo{})

	_, err := service.RecordPayout(context.Background(), domain.Transaction{
		AccountNumber: "NOPE",
		Amount:        100,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPortfolioStats(t *testing.T) {
	repo := newFakeAccountRepo(
		domain.Account{Number: "ACC1", StartingBalance: 10000, AccountType: domain.AccountTypeLive, Status: domain.AccountStatusActive},
		domain.Account{Number: "PF1", StartingBalance: 50000, AccountType: domain.AccountTypePropFirm, Status: domain.AccountStatusFailed, EvaluationType: domain.EvaluationTwoStep, CurrentPhase: 2},
	)
	tradeRepo := &fakeTradeRepo{trades: []domain.Trade{
		{AccountNumber: "ACC1", Ticket: 1, Pnl: 500},
		{AccountNumber: "PF1", Ticket: 2, Pnl: 5000},
	}}
	txRepo := &fakeTransactionRepo{transactions: []domain.Transaction{
		{AccountNumber: "ACC1", Amount: 100},
	}}
	service := newAccountService(t, repo, tradeRepo, txRepo, &fakeSnapshotRepo{})

	stats, err := service.PortfolioStats(context.Background(), StatsOptions{
		Calculate: domain.CalculateOptions{ExcludeFailedAccounts: true, IncludePayouts: true},
	})
	if err != nil {
		t.Fatalf("portfolio stats: %v", err)
	}

	if len(stats.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(stats.Accounts))
	}
	// ACC1: 10000 + 500 - 100; PF1 failed: starting balance only.
	if stats.TotalEquity != 60400 {
		t.Fatalf("expected total equity 60400, got %f", stats.TotalEquity)
	}
	if stats.CountsByType[domain.AccountTypePropFirm] != 1 {
		t.Fatalf("expected 1 prop-firm account")
	}
	if stats.CountsByStatus[domain.AccountStatusFailed] != 1 {
		t.Fatalf("expected 1 failed account")
	}
}

func TestPortfolioStatsExcludesArchivedByDefault(t *testing.T) {
	repo := newFakeAccountRepo(
		domain.Account{Number: "ACC1", StartingBalance: 10000, AccountType: domain.AccountTypeLive, Status: domain.AccountStatusActive},
		domain.Account{Number: "OLD", StartingBalance: 7000, AccountType: domain.AccountTypeLive, Status: domain.AccountStatusActive, IsArchived: true},
	)
	service := newAccountService(t, repo, &fakeTradeRepo{}, &fakeTransactionRepo{}, &fakeSnapshotRepo{})

	stats, err := service.PortfolioStats(context.Background(), StatsOptions{})
	if err != nil {
		t.Fatalf("portfolio stats: %v", err)
	}
	if len(stats.Accounts) != 1 {
		t.Fatalf("expected archived account excluded, got %d accounts", len(stats.Accounts))
	}
	if stats.TotalEquity != 10000 {
		t.Fatalf("expected 10000, got %f", stats.TotalEquity)
	}
}

func TestSnapshotEquities(t *testing.T) {
	repo := newFakeAccountRepo(
		domain.Account{Number: "ACC1", StartingBalance: 10000, AccountType: domain.AccountTypeLive, Status: domain.AccountStatusActive},
		domain.Account{Number: "ACC2", StartingBalance: 20000, AccountType: domain.AccountTypeLive, Status: domain.AccountStatusActive},
	)
	tradeRepo := &fakeTradeRepo{trades: []domain.Trade{{AccountNumber: "ACC1", Ticket: 1, Pnl: 250}}}
	snapshotRepo := &fakeSnapshotRepo{}
	service := newAccountService(t, repo, tradeRepo, &fakeTransactionRepo{}, snapshotRepo)

	count, err := service.SnapshotEquities(context.Background())
	if err != nil {
		t.Fatalf("snapshot equities: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 snapshots, got %d", count)
	}

	history, err := service.ListEquityHistory(context.Background(), "ACC1", 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != 1 || history[0].Equity != 10250 {
		t.Fatalf("unexpected snapshot history: %+v", history)
	}
}

func TestDrawdownReportUsesStartingBalance(t *testing.T) {
	repo := newFakeAccountRepo(domain.Account{Number: "PF1", StartingBalance: 5000, AccountType: domain.AccountTypePropFirm, Status: domain.AccountStatusActive})
	service := newAccountService(t, repo, &fakeTradeRepo{}, &fakeTransactionRepo{}, &fakeSnapshotRepo{})

	report, err := service.DrawdownReport(context.Background(), "PF1", 0, 0)
	if err != nil {
		t.Fatalf("drawdown report: %v", err)
	}
	if report.AccountSize != 5000 {
		t.Fatalf("expected account size 5000, got %f", report.AccountSize)
	}
	if report.DailyLimit != 200 || report.MaxDrawdownLimit != 400 {
		t.Fatalf("expected default limits, got %f / %f", report.DailyLimit, report.MaxDrawdownLimit)
	}
}
