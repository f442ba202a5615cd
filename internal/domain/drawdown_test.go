package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int, pnl float64) Trade {
	return Trade{
		ExitTime: time.Date(2025, 12, d, 15, 0, 0, 0, time.UTC),
		Pnl:      pnl,
	}
}

func TestEvaluateDrawdownNoViolations(t *testing.T) {
	trades := []Trade{day(1, 50), day(2, -100), day(3, 80)}

	report := EvaluateDrawdown(trades, DrawdownLimits{AccountSize: 5000})

	assert.Equal(t, 200.0, report.DailyLimit)
	assert.Equal(t, 400.0, report.MaxDrawdownLimit)
	assert.False(t, report.Violated())
	require.Len(t, report.Days, 3)
	assert.Equal(t, "2025-12-02", report.Days[1].Date)
	assert.Equal(t, 100.0, report.Days[1].Loss)
}

func TestEvaluateDrawdownDailyBreach(t *testing.T) {
	trades := []Trade{day(1, -150), day(1, -120), day(2, 300)}

	report := EvaluateDrawdown(trades, DrawdownLimits{AccountSize: 5000})

	assert.True(t, report.DailyViolation)
	require.Len(t, report.Days, 2)
	assert.True(t, report.Days[0].Breached)
	assert.False(t, report.Days[1].Breached)
}

func TestEvaluateDrawdownMaxBreach(t *testing.T) {
	// Losses spread thin enough to pass the daily check but sink the
	// balance past the max drawdown limit.
	trades := []Trade{day(1, -180), day(2, -180), day(3, -180)}

	report := EvaluateDrawdown(trades, DrawdownLimits{AccountSize: 5000})

	assert.False(t, report.DailyViolation)
	assert.True(t, report.MaxViolation)
	assert.Equal(t, 4460.0, report.LowestBalance)
	assert.Equal(t, 540.0, report.MaxDrawdownUsed)
}

func TestEvaluateDrawdownIncludesCosts(t *testing.T) {
	trades := []Trade{{
		ExitTime:   time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC),
		Pnl:        -190,
		Commission: -10,
		Swap:       -5,
	}}

	report := EvaluateDrawdown(trades, DrawdownLimits{AccountSize: 5000})

	require.Len(t, report.Days, 1)
	assert.Equal(t, 205.0, report.Days[0].Loss)
	assert.True(t, report.DailyViolation)
}

func TestEvaluateDrawdownSkipsOpenTrades(t *testing.T) {
	trades := []Trade{
		{Pnl: -10000}, // no exit time, still open
		day(1, 100),
	}

	report := EvaluateDrawdown(trades, DrawdownLimits{AccountSize: 5000})

	assert.False(t, report.Violated())
	assert.Equal(t, 5000.0, report.LowestBalance)
	require.Len(t, report.Days, 1)
}
