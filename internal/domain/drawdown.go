package domain

import (
	"sort"
	"time"
)

// DrawdownLimits configures a prop-firm drawdown evaluation. Percentages are
// whole numbers (4 means 4% of account size).
type DrawdownLimits struct {
	AccountSize        float64
	DailyLossPercent   float64
	MaxDrawdownPercent float64
}

const (
	DefaultDailyLossPercent   = 4
	DefaultMaxDrawdownPercent = 8
)

type DrawdownDay struct {
	Date     string
	NetPnl   float64
	Loss     float64
	Breached bool
}

type DrawdownReport struct {
	AccountSize      float64
	DailyLimit       float64
	MaxDrawdownLimit float64
	Days             []DrawdownDay
	LowestBalance    float64
	MaxDrawdownUsed  float64
	DailyViolation   bool
	MaxViolation     bool
}

// Violated reports whether any rule was breached.
func (r DrawdownReport) Violated() bool {
	return r.DailyViolation || r.MaxViolation
}

// EvaluateDrawdown walks an account's trades chronologically and checks them
// against a daily loss limit and a balance-based max drawdown limit. Trades
// without a close time are skipped; net results include commission and swap.
func EvaluateDrawdown(trades []Trade, limits DrawdownLimits) DrawdownReport {
	if limits.DailyLossPercent <= 0 {
		limits.DailyLossPercent = DefaultDailyLossPercent
	}
	if limits.MaxDrawdownPercent <= 0 {
		limits.MaxDrawdownPercent = DefaultMaxDrawdownPercent
	}

	report := DrawdownReport{
		AccountSize:      limits.AccountSize,
		DailyLimit:       limits.AccountSize * limits.DailyLossPercent / 100,
		MaxDrawdownLimit: limits.AccountSize * limits.MaxDrawdownPercent / 100,
		LowestBalance:    limits.AccountSize,
	}

	closed := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.ExitTime.IsZero() {
			continue
		}
		closed = append(closed, t)
	}
	sort.Slice(closed, func(i, j int) bool {
		return closed[i].ExitTime.Before(closed[j].ExitTime)
	})

	balance := limits.AccountSize
	for _, t := range closed {
		balance += finiteOrZero(t.NetPnl())
		if balance < report.LowestBalance {
			report.LowestBalance = balance
		}
	}
	report.MaxDrawdownUsed = limits.AccountSize - report.LowestBalance
	report.MaxViolation = report.MaxDrawdownUsed > report.MaxDrawdownLimit

	pnlByDay := make(map[string]float64)
	var days []string
	for _, t := range closed {
		day := t.ExitTime.UTC().Format(time.DateOnly)
		if _, seen := pnlByDay[day]; !seen {
			days = append(days, day)
		}
		pnlByDay[day] += finiteOrZero(t.NetPnl())
	}
	sort.Strings(days)

	for _, day := range days {
		pnl := pnlByDay[day]
		loss := 0.0
		if pnl < 0 {
			loss = -pnl
		}
		breached := loss > report.DailyLimit
		if breached {
			report.DailyViolation = true
		}
		report.Days = append(report.Days, DrawdownDay{
			Date:     day,
			NetPnl:   pnl,
			Loss:     loss,
			Breached: breached,
		})
	}

	return report
}
