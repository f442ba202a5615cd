package domain

import (
	"math"
	"testing"
)

func TestBalanceEmptyHistory(t *testing.T) {
	accounts := []Account{{Number: "ACC1", StartingBalance: 10000}}

	balances := CalculateAccountBalances(accounts, nil, nil, CalculateOptions{})

	if len(balances) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(balances))
	}
	if balances["ACC1"] != 10000 {
		t.Fatalf("expected starting balance, got %f", balances["ACC1"])
	}
}

func TestBalanceAdditivity(t *testing.T) {
	accounts := []Account{{Number: "ACC1", StartingBalance: 10000}}
	trades := []Trade{
		{AccountNumber: "ACC1", Pnl: 500},
		{AccountNumber: "ACC1", Pnl: -200},
	}

	balances := CalculateAccountBalances(accounts, trades, nil, CalculateOptions{})
	if balances["ACC1"] != 10300 {
		t.Fatalf("expected 10300, got %f", balances["ACC1"])
	}

	trades = append(trades, Trade{AccountNumber: "ACC1", Pnl: 150})
	balances = CalculateAccountBalances(accounts, trades, nil, CalculateOptions{})
	if balances["ACC1"] != 10450 {
		t.Fatalf("expected delta of new trade pnl, got %f", balances["ACC1"])
	}
}

func TestBalancePayoutSubtraction(t *testing.T) {
	accounts := []Account{{Number: "ACC1", StartingBalance: 10000}}
	trades := []Trade{
		{AccountNumber: "ACC1", Pnl: 500},
		{AccountNumber: "ACC1", Pnl: -200},
	}
	transactions := []Transaction{{AccountNumber: "ACC1", Amount: 100}}

	with := CalculateAccountBalances(accounts, trades, transactions, CalculateOptions{IncludePayouts: true})
	if with["ACC1"] != 10200 {
		t.Fatalf("expected 10200 with payouts, got %f", with["ACC1"])
	}

	without := CalculateAccountBalances(accounts, trades, transactions, CalculateOptions{})
	if without["ACC1"] != 10300 {
		t.Fatalf("expected transactions ignored, got %f", without["ACC1"])
	}
}

func TestBalanceFailedAccountExclusion(t *testing.T) {
	accounts := []Account{{Number: "ACC2", StartingBalance: 50000, Status: AccountStatusFailed}}
	trades := []Trade{{AccountNumber: "ACC2", Pnl: 5000}}

	balances := CalculateAccountBalances(accounts, trades, nil, CalculateOptions{ExcludeFailedAccounts: true})
	if balances["ACC2"] != 50000 {
		t.Fatalf("expected failed account pnl ignored, got %f", balances["ACC2"])
	}

	balances = CalculateAccountBalances(accounts, trades, nil, CalculateOptions{})
	if balances["ACC2"] != 55000 {
		t.Fatalf("expected pnl counted when not excluding, got %f", balances["ACC2"])
	}
}

func TestBalanceAccountIsolation(t *testing.T) {
	accounts := []Account{
		{Number: "ACC1", StartingBalance: 10000},
		{Number: "ACC2", StartingBalance: 20000},
	}
	trades := []Trade{
		{AccountNumber: "ACC1", Pnl: 500},
		{AccountNumber: "ACC2", Pnl: -1000},
		{AccountNumber: "ACC3", Pnl: 99999},
	}
	transactions := []Transaction{
		{AccountNumber: "ACC2", Amount: 250},
		{AccountNumber: "ACC3", Amount: 77777},
	}

	joint := CalculateAccountBalances(accounts, trades, transactions, CalculateOptions{IncludePayouts: true})
	if joint["ACC1"] != 10500 {
		t.Fatalf("ACC1: expected 10500, got %f", joint["ACC1"])
	}
	if joint["ACC2"] != 18750 {
		t.Fatalf("ACC2: expected 18750, got %f", joint["ACC2"])
	}

	// Computing each account alone must match the joint result.
	for _, acc := range accounts {
		solo := CalculateAccountBalances([]Account{acc}, trades, transactions, CalculateOptions{IncludePayouts: true})
		if solo[acc.Number] != joint[acc.Number] {
			t.Fatalf("%s: solo %f != joint %f", acc.Number, solo[acc.Number], joint[acc.Number])
		}
	}
}

func TestBalanceMalformedValues(t *testing.T) {
	accounts := []Account{{Number: "ACC1", StartingBalance: 10000}}
	trades := []Trade{
		{AccountNumber: "ACC1", Pnl: math.NaN()},
		{AccountNumber: "ACC1", Pnl: math.Inf(1)},
		{AccountNumber: "ACC1", Pnl: 100},
	}
	transactions := []Transaction{{AccountNumber: "ACC1", Amount: math.NaN()}}

	balances := CalculateAccountBalances(accounts, trades, transactions, CalculateOptions{IncludePayouts: true})
	if balances["ACC1"] != 10100 {
		t.Fatalf("expected non-finite values to contribute zero, got %f", balances["ACC1"])
	}
}

func TestBalanceInputsNotMutated(t *testing.T) {
	accounts := []Account{{Number: "ACC1", StartingBalance: 10000}}
	trades := []Trade{{AccountNumber: "ACC1", Pnl: 500}}

	first := CalculateAccountBalances(accounts, trades, nil, CalculateOptions{})
	second := CalculateAccountBalances(accounts, trades, nil, CalculateOptions{})
	if first["ACC1"] != second["ACC1"] {
		t.Fatalf("repeated calls diverged: %f vs %f", first["ACC1"], second["ACC1"])
	}
	if accounts[0].StartingBalance != 10000 || trades[0].Pnl != 500 {
		t.Fatalf("inputs were mutated")
	}
}

func TestIsFundedPhase(t *testing.T) {
	cases := []struct {
		evaluation EvaluationType
		phase      int
		want       bool
	}{
		{EvaluationTwoStep, 3, true},
		{EvaluationTwoStep, 2, false},
		{EvaluationOneStep, 2, true},
		{EvaluationOneStep, 1, false},
		{EvaluationInstant, 1, true},
		{EvaluationTwoStep, 0, false},
		{EvaluationType("Three Step"), 2, false},
		{EvaluationType("Three Step"), 3, true},
		{EvaluationInstant, 0, false},
	}

	for _, tc := range cases {
		if got := IsFundedPhase(tc.evaluation, tc.phase); got != tc.want {
			t.Fatalf("IsFundedPhase(%q, %d) = %v, want %v", tc.evaluation, tc.phase, got, tc.want)
		}
	}
}

func TestAccountIsFunded(t *testing.T) {
	live := Account{AccountType: AccountTypeLive, CurrentPhase: 5}
	if live.IsFunded() {
		t.Fatalf("live accounts are never funded")
	}

	prop := Account{AccountType: AccountTypePropFirm, EvaluationType: EvaluationOneStep, CurrentPhase: 2}
	if !prop.IsFunded() {
		t.Fatalf("expected one-step phase 2 to be funded")
	}
}
