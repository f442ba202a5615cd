package domain

import "time"

type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

type Trade struct {
	ID            string
	AccountNumber string
	Ticket        int64
	Symbol        string
	Side          TradeSide
	Volume        float64
	EntryTime     time.Time
	ExitTime      time.Time
	EntryPrice    float64
	ExitPrice     float64
	// Pnl is the realized result excluding costs; Commission and Swap are
	// signed costs reported separately by most platforms.
	Pnl        float64
	Commission float64
	Swap       float64
	// Annotation fields, editable after the trade is recorded.
	Note           string
	ScreenshotURLs []string
	Tags           []Tag
	NewsEventIDs   []string
	RawPayload     []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NetPnl is the realized result after commission and swap. Drawdown
// evaluation uses this figure; the equity calculator uses Pnl alone, which
// is what platforms report as the trade result.
func (t Trade) NetPnl() float64 {
	return t.Pnl + t.Commission + t.Swap
}

// TradeAnnotations is the mutable annotation set attached to a trade.
// Nil slices mean "leave unchanged" is NOT implied; callers send the full
// replacement set.
type TradeAnnotations struct {
	Note           string
	ScreenshotURLs []string
	TagIDs         []string
	NewsEventIDs   []string
}

type Tag struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
}
