package usecase

import (
	"context"
	"sort"

	"journal_server/internal/domain"
)

type fakeAccountRepo struct {
	accounts map[string]domain.Account
}

func newFakeAccountRepo(accounts ...domain.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{accounts: make(map[string]domain.Account)}
	for _, acc := range accounts {
		repo.accounts[acc.Number] = acc
	}
	return repo
}

func (r *fakeAccountRepo) CreateAccount(_ context.Context, account domain.Account) error {
	r.accounts[account.Number] = account
	return nil
}

func (r *fakeAccountRepo) GetAccount(_ context.Context, number string) (domain.Account, error) {
	acc, ok := r.accounts[number]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return acc, nil
}

func (r *fakeAccountRepo) ListAccounts(_ context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	var out []domain.Account
	for _, acc := range r.accounts {
		if !filter.IncludeArchived && acc.IsArchived {
			continue
		}
		if filter.AccountType != "" && acc.AccountType != filter.AccountType {
			continue
		}
		if filter.Status != "" && acc.Status != filter.Status {
			continue
		}
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *fakeAccountRepo) UpdateAccount(_ context.Context, account domain.Account) error {
	existing, ok := r.accounts[account.Number]
	if !ok {
		return domain.ErrNotFound
	}
	account.ID = existing.ID
	account.IsArchived = existing.IsArchived
	r.accounts[account.Number] = account
	return nil
}

func (r *fakeAccountRepo) SetArchived(_ context.Context, number string, archived bool) error {
	acc, ok := r.accounts[number]
	if !ok {
		return domain.ErrNotFound
	}
	acc.IsArchived = archived
	r.accounts[number] = acc
	return nil
}

func (r *fakeAccountRepo) DeleteAccountCascade(_ context.Context, number string) error {
	if _, ok := r.accounts[number]; !ok {
		return domain.ErrNotFound
	}
	delete(r.accounts, number)
	return nil
}

type fakeTradeRepo struct {
	trades []domain.Trade
}

func (r *fakeTradeRepo) UpsertTrade(_ context.Context, trade domain.Trade) error {
	for i, existing := range r.trades {
		if existing.AccountNumber == trade.AccountNumber && existing.Ticket == trade.Ticket {
			r.trades[i] = trade
			return nil
		}
	}
	r.trades = append(r.trades, trade)
	return nil
}

func (r *fakeTradeRepo) GetTrade(_ context.Context, id string) (domain.Trade, error) {
	for _, trade := range r.trades {
		if trade.ID == id {
			return trade, nil
		}
	}
	return domain.Trade{}, domain.ErrNotFound
}

func (r *fakeTradeRepo) ListTrades(_ context.Context, accountNumber string, limit int) ([]domain.Trade, error) {
	var out []domain.Trade
	for _, trade := range r.trades {
		if trade.AccountNumber == accountNumber {
			out = append(out, trade)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTradeRepo) ListAllTrades(_ context.Context) ([]domain.Trade, error) {
	return append([]domain.Trade(nil), r.trades...), nil
}

func (r *fakeTradeRepo) CountTrades(_ context.Context, accountNumber string) (int64, error) {
	var count int64
	for _, trade := range r.trades {
		if trade.AccountNumber == accountNumber {
			count++
		}
	}
	return count, nil
}

func (r *fakeTradeRepo) UpdateAnnotations(_ context.Context, id string, annotations domain.TradeAnnotations) error {
	for i, trade := range r.trades {
		if trade.ID == id {
			trade.Note = annotations.Note
			trade.ScreenshotURLs = annotations.ScreenshotURLs
			trade.NewsEventIDs = annotations.NewsEventIDs
			r.trades[i] = trade
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeTransactionRepo struct {
	transactions []domain.Transaction
}

func (r *fakeTransactionRepo) AddTransaction(_ context.Context, tx domain.Transaction) error {
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *fakeTransactionRepo) ListTransactions(_ context.Context, accountNumber string, limit int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range r.transactions {
		if tx.AccountNumber == accountNumber {
			out = append(out, tx)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTransactionRepo) ListAllTransactions(_ context.Context) ([]domain.Transaction, error) {
	return append([]domain.Transaction(nil), r.transactions...), nil
}

func (r *fakeTransactionRepo) DeleteTransaction(_ context.Context, id string) error {
	for i, tx := range r.transactions {
		if tx.ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSnapshotRepo struct {
	snapshots []domain.EquitySnapshot
}

func (r *fakeSnapshotRepo) InsertSnapshot(_ context.Context, snapshot domain.EquitySnapshot) error {
	r.snapshots = append(r.snapshots, snapshot)
	return nil
}

func (r *fakeSnapshotRepo) ListSnapshots(_ context.Context, accountNumber string, limit int) ([]domain.EquitySnapshot, error) {
	var out []domain.EquitySnapshot
	for _, s := range r.snapshots {
		if s.AccountNumber == accountNumber {
			out = append(out, s)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeTagRepo struct {
	tags []domain.Tag
}

func (r *fakeTagRepo) CreateTag(_ context.Context, tag domain.Tag) error {
	r.tags = append(r.tags, tag)
	return nil
}

func (r *fakeTagRepo) ListTags(_ context.Context) ([]domain.Tag, error) {
	return append([]domain.Tag(nil), r.tags...), nil
}

func (r *fakeTagRepo) DeleteTag(_ context.Context, id string) error {
	for i, tag := range r.tags {
		if tag.ID == id {
			r.tags = append(r.tags[:i], r.tags[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
