package domain

import "math"

// CalculateOptions configures the equity calculation. It is passed by value;
// the zero value means "P&L only, failed accounts included".
type CalculateOptions struct {
	// ExcludeFailedAccounts omits realized P&L for accounts with status
	// failed: they contribute their starting balance only.
	ExcludeFailedAccounts bool
	// IncludePayouts subtracts the sum of matching transaction amounts.
	IncludePayouts bool
}

// CalculateAccountBalances derives current equity for every account in the
// input list, keyed by account number. Trades and transactions for accounts
// outside the list are ignored. The function is pure: it never mutates its
// inputs and identical inputs yield identical output.
//
// Per account: equity = startingBalance + Σ pnl (unless the account is
// failed and ExcludeFailedAccounts is set) - Σ amount (when IncludePayouts).
// Non-finite pnl or amount values contribute zero; the result feeds
// informational dashboards where a slightly wrong number beats a fault.
func CalculateAccountBalances(accounts []Account, trades []Trade, transactions []Transaction, opts CalculateOptions) map[string]float64 {
	requested := make(map[string]struct{}, len(accounts))
	for _, acc := range accounts {
		requested[acc.Number] = struct{}{}
	}

	pnlByAccount := make(map[string]float64, len(accounts))
	for _, trade := range trades {
		if _, ok := requested[trade.AccountNumber]; !ok {
			continue
		}
		pnlByAccount[trade.AccountNumber] += finiteOrZero(trade.Pnl)
	}

	var payoutByAccount map[string]float64
	if opts.IncludePayouts {
		payoutByAccount = make(map[string]float64, len(accounts))
		for _, tx := range transactions {
			if _, ok := requested[tx.AccountNumber]; !ok {
				continue
			}
			payoutByAccount[tx.AccountNumber] += finiteOrZero(tx.Amount)
		}
	}

	balances := make(map[string]float64, len(accounts))
	for _, acc := range accounts {
		equity := acc.StartingBalance
		if !(opts.ExcludeFailedAccounts && acc.Status == AccountStatusFailed) {
			equity += pnlByAccount[acc.Number]
		}
		if opts.IncludePayouts {
			equity -= payoutByAccount[acc.Number]
		}
		balances[acc.Number] = equity
	}

	return balances
}

// IsFundedPhase maps an evaluation type and phase number to funded status.
// Phase zero or negative is never funded. Unknown evaluation types use the
// two-step threshold, the conservative default.
func IsFundedPhase(evaluationType EvaluationType, phase int) bool {
	if phase <= 0 {
		return false
	}
	switch evaluationType {
	case EvaluationTwoStep:
		return phase >= 3
	case EvaluationOneStep:
		return phase >= 2
	case EvaluationInstant:
		return phase >= 1
	default:
		return phase >= 3
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
