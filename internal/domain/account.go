package domain

import "time"

type AccountType string

const (
	AccountTypeLive     AccountType = "live"
	AccountTypePropFirm AccountType = "prop-firm"
)

type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "active"
	AccountStatusFunded  AccountStatus = "funded"
	AccountStatusFailed  AccountStatus = "failed"
	AccountStatusPassed  AccountStatus = "passed"
	AccountStatusPending AccountStatus = "pending"
)

type EvaluationType string

const (
	EvaluationOneStep EvaluationType = "One Step"
	EvaluationTwoStep EvaluationType = "Two Step"
	EvaluationInstant EvaluationType = "Instant"
)

// Account is one trading account the user tracks. Equity is never stored on
// the account itself; it is derived from StartingBalance plus the trades and
// transactions keyed by Number.
type Account struct {
	ID              string
	Number          string
	Name            string
	Broker          string
	AccountType     AccountType
	StartingBalance float64
	Status          AccountStatus
	IsArchived      bool
	// Prop-firm evaluation data. Zero/empty for live accounts.
	CurrentPhase   int
	EvaluationType EvaluationType
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsFunded reports whether a prop-firm account has reached its funded phase.
func (a Account) IsFunded() bool {
	if a.AccountType != AccountTypePropFirm {
		return false
	}
	return IsFundedPhase(a.EvaluationType, a.CurrentPhase)
}

// EquitySnapshot is a timestamped record of a computed equity value,
// persisted for history charts.
type EquitySnapshot struct {
	ID            int64
	AccountNumber string
	Time          time.Time
	Equity        float64
	CreatedAt     time.Time
}
