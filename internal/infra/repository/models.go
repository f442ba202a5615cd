package repository

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"journal_server/internal/domain"
)

type AccountModel struct {
	ID              string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Number          string    `gorm:"column:number;uniqueIndex;not null"`
	Name            *string   `gorm:"column:name"`
	Broker          *string   `gorm:"column:broker"`
	AccountType     string    `gorm:"column:account_type;not null"`
	StartingBalance float64   `gorm:"column:starting_balance;not null"`
	Status          string    `gorm:"column:status;not null"`
	IsArchived      bool      `gorm:"column:is_archived;not null;default:false"`
	CurrentPhase    int       `gorm:"column:current_phase"`
	EvaluationType  *string   `gorm:"column:evaluation_type"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

func toAccountModel(account domain.Account) AccountModel {
	return AccountModel{
		ID:              account.ID,
		Number:          account.Number,
		Name:            stringPointerOrNil(account.Name),
		Broker:          stringPointerOrNil(account.Broker),
		AccountType:     string(account.AccountType),
		StartingBalance: account.StartingBalance,
		Status:          string(account.Status),
		IsArchived:      account.IsArchived,
		CurrentPhase:    account.CurrentPhase,
		EvaluationType:  stringPointerOrNil(string(account.EvaluationType)),
	}
}

func (m AccountModel) toDomain() domain.Account {
	return domain.Account{
		ID:              m.ID,
		Number:          m.Number,
		Name:            stringValueOrEmpty(m.Name),
		Broker:          stringValueOrEmpty(m.Broker),
		AccountType:     domain.AccountType(m.AccountType),
		StartingBalance: m.StartingBalance,
		Status:          domain.AccountStatus(m.Status),
		IsArchived:      m.IsArchived,
		CurrentPhase:    m.CurrentPhase,
		EvaluationType:  domain.EvaluationType(stringValueOrEmpty(m.EvaluationType)),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type TradeModel struct {
	ID             string         `gorm:"column:id;primaryKey;type:varchar(36)"`
	AccountNumber  string         `gorm:"column:account_number;not null;uniqueIndex:idx_trades_account_ticket;index"`
	Ticket         int64          `gorm:"column:ticket;not null;uniqueIndex:idx_trades_account_ticket"`
	Symbol         *string        `gorm:"column:symbol"`
	Side           *string        `gorm:"column:side"`
	Volume         float64        `gorm:"column:volume"`
	EntryTime      time.Time      `gorm:"column:entry_time"`
	ExitTime       time.Time      `gorm:"column:exit_time"`
	EntryPrice     float64        `gorm:"column:entry_price"`
	ExitPrice      float64        `gorm:"column:exit_price"`
	Pnl            float64        `gorm:"column:pnl"`
	Commission     float64        `gorm:"column:commission"`
	Swap           float64        `gorm:"column:swap"`
	Note           *string        `gorm:"column:note"`
	ScreenshotURLs datatypes.JSON `gorm:"column:screenshot_urls"`
	NewsEventIDs   datatypes.JSON `gorm:"column:news_event_ids"`
	Tags           []TagModel     `gorm:"many2many:trade_tags;"`
	RawPayload     datatypes.JSON `gorm:"column:raw_payload"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
}

func (TradeModel) TableName() string {
	return "trades"
}

func toTradeModel(trade domain.Trade) TradeModel {
	tags := make([]TagModel, 0, len(trade.Tags))
	for _, tag := range trade.Tags {
		tags = append(tags, toTagModel(tag))
	}

	return TradeModel{
		ID:             trade.ID,
		AccountNumber:  trade.AccountNumber,
		Ticket:         trade.Ticket,
		Symbol:         stringPointerOrNil(trade.Symbol),
		Side:           stringPointerOrNil(string(trade.Side)),
		Volume:         trade.Volume,
		EntryTime:      trade.EntryTime,
		ExitTime:       trade.ExitTime,
		EntryPrice:     trade.EntryPrice,
		ExitPrice:      trade.ExitPrice,
		Pnl:            trade.Pnl,
		Commission:     trade.Commission,
		Swap:           trade.Swap,
		Note:           stringPointerOrNil(trade.Note),
		ScreenshotURLs: stringsToJSON(trade.ScreenshotURLs),
		NewsEventIDs:   stringsToJSON(trade.NewsEventIDs),
		Tags:           tags,
		RawPayload:     jsonOrEmpty(trade.RawPayload),
	}
}

func (m TradeModel) toDomain() domain.Trade {
	tags := make([]domain.Tag, 0, len(m.Tags))
	for _, tag := range m.Tags {
		tags = append(tags, tag.toDomain())
	}

	return domain.Trade{
		ID:             m.ID,
		AccountNumber:  m.AccountNumber,
		Ticket:         m.Ticket,
		Symbol:         stringValueOrEmpty(m.Symbol),
		Side:           domain.TradeSide(stringValueOrEmpty(m.Side)),
		Volume:         m.Volume,
		EntryTime:      m.EntryTime,
		ExitTime:       m.ExitTime,
		EntryPrice:     m.EntryPrice,
		ExitPrice:      m.ExitPrice,
		Pnl:            m.Pnl,
		Commission:     m.Commission,
		Swap:           m.Swap,
		Note:           stringValueOrEmpty(m.Note),
		ScreenshotURLs: jsonToStrings(m.ScreenshotURLs),
		NewsEventIDs:   jsonToStrings(m.NewsEventIDs),
		Tags:           tags,
		RawPayload:     copyJSON(m.RawPayload),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

type TransactionModel struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	AccountNumber string    `gorm:"column:account_number;not null;index"`
	Amount        float64   `gorm:"column:amount;not null"`
	Status        string    `gorm:"column:status;not null"`
	PaidAt        time.Time `gorm:"column:paid_at"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func toTransactionModel(tx domain.Transaction) TransactionModel {
	return TransactionModel{
		ID:            tx.ID,
		AccountNumber: tx.AccountNumber,
		Amount:        tx.Amount,
		Status:        string(tx.Status),
		PaidAt:        tx.PaidAt,
	}
}

func (m TransactionModel) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		Amount:        m.Amount,
		Status:        domain.TransactionStatus(m.Status),
		PaidAt:        m.PaidAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type TagModel struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Color     *string   `gorm:"column:color"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (TagModel) TableName() string {
	return "tags"
}

func toTagModel(tag domain.Tag) TagModel {
	return TagModel{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: stringPointerOrNil(tag.Color),
	}
}

func (m TagModel) toDomain() domain.Tag {
	return domain.Tag{
		ID:        m.ID,
		Name:      m.Name,
		Color:     stringValueOrEmpty(m.Color),
		CreatedAt: m.CreatedAt,
	}
}

type NewsEventModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Hash      string    `gorm:"column:event_hash;uniqueIndex;not null"`
	Date      time.Time `gorm:"column:event_date;not null"`
	Currency  string    `gorm:"column:currency;not null"`
	Impact    string    `gorm:"column:impact;not null"`
	Title     string    `gorm:"column:title;not null"`
	Actual    string    `gorm:"column:actual"`
	Forecast  string    `gorm:"column:forecast"`
	Previous  string    `gorm:"column:previous"`
	SourceURL string    `gorm:"column:source_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (NewsEventModel) TableName() string {
	return "news_events"
}

func toNewsEventModel(ev domain.NewsEvent) NewsEventModel {
	if ev.Hash == "" {
		ev = ev.WithHash()
	}
	return NewsEventModel{
		Hash:      ev.Hash,
		Date:      ev.Date,
		Currency:  ev.Currency,
		Impact:    ev.Impact,
		Title:     ev.Title,
		Actual:    ev.Actual,
		Forecast:  ev.Forecast,
		Previous:  ev.Previous,
		SourceURL: ev.SourceURL,
	}
}

func (m NewsEventModel) toDomain() domain.NewsEvent {
	return domain.NewsEvent{
		Hash:      m.Hash,
		Date:      m.Date,
		Currency:  m.Currency,
		Impact:    m.Impact,
		Title:     m.Title,
		Actual:    m.Actual,
		Forecast:  m.Forecast,
		Previous:  m.Previous,
		SourceURL: m.SourceURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type EquitySnapshotModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	AccountNumber string    `gorm:"column:account_number;not null;index"`
	Time          time.Time `gorm:"column:time;not null"`
	Equity        float64   `gorm:"column:equity;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (EquitySnapshotModel) TableName() string {
	return "equity_snapshots"
}

func toEquitySnapshotModel(s domain.EquitySnapshot) EquitySnapshotModel {
	return EquitySnapshotModel{
		AccountNumber: s.AccountNumber,
		Time:          s.Time,
		Equity:        s.Equity,
	}
}

func (m EquitySnapshotModel) toDomain() domain.EquitySnapshot {
	return domain.EquitySnapshot{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		Time:          m.Time,
		Equity:        m.Equity,
		CreatedAt:     m.CreatedAt,
	}
}

func stringPointerOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringValueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func stringsToJSON(values []string) datatypes.JSON {
	if len(values) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}

func jsonToStrings(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func jsonOrEmpty(data []byte) datatypes.JSON {
	if len(data) == 0 {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(append([]byte(nil), data...))
}

func copyJSON(data datatypes.JSON) []byte {
	if len(data) == 0 {
		return nil
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	return cpy
}
