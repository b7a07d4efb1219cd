// Package stats derives summary figures and category breakdowns from a
// ledger snapshot. Every function is pure: no I/O, no shared state, full
// recomputation on every call. At personal-finance volumes that is cheap,
// and it removes the drift risk an incremental counter design would carry.
package stats

import (
	"errors"
	"sort"
	"time"

	"kopilka/internal/core"
)

// Period is a rolling reporting window anchored at a reference instant.
type Period string

const (
	PeriodWeek  Period = "week"  // last 7 days, inclusive
	PeriodMonth Period = "month" // last 30 days, rolling, not calendar
	PeriodAll   Period = "all"
)

var ErrInvalidPeriod = errors.New("invalid period")

// ParsePeriod validates a submitted period tag.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodAll:
		return Period(s), nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Summary holds the aggregate figures over one snapshot.
type Summary struct {
	TotalIncome  core.Money `json:"totalIncome"`
	TotalExpense core.Money `json:"totalExpense"`
	Balance      core.Money `json:"balance"`
}

// Summarize sums amounts by type. Balance is income minus expense; an empty
// snapshot yields all zeros. Records with non-positive amounts, which the
// ledger never writes but tampered storage may contain, are excluded.
func Summarize(txs []core.Transaction) Summary {
	var income, expense core.Money
	for _, tx := range txs {
		if tx.Amount.Cents <= 0 {
			continue
		}
		switch tx.Type {
		case core.Income:
			income = income.Add(tx.Amount)
		case core.Expense:
			expense = expense.Add(tx.Amount)
		}
	}
	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
}

// FilterByPeriod keeps transactions whose date falls within the period's
// window ending at ref: ref minus date <= 7 days for week, 30 for month,
// both inclusive. PeriodAll is the identity. The reference instant is an
// explicit parameter so results are deterministic.
func FilterByPeriod(txs []core.Transaction, p Period, ref time.Time) []core.Transaction {
	var window time.Duration
	switch p {
	case PeriodWeek:
		window = 7 * 24 * time.Hour
	case PeriodMonth:
		window = 30 * 24 * time.Hour
	default:
		return txs
	}

	cutoff := ref.Add(-window)
	kept := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.Date.Time.Before(cutoff) {
			kept = append(kept, tx)
		}
	}
	return kept
}

// CategoryShare is one row of a breakdown: the category's summed amount and
// its share of the type subset's total.
type CategoryShare struct {
	Category   core.Category `json:"category"`
	Amount     core.Money    `json:"amount"`
	Percentage float64       `json:"percentage"`
}

// Breakdown holds per-category aggregates, computed separately for each
// transaction type.
type Breakdown struct {
	Income  []CategoryShare `json:"income"`
	Expense []CategoryShare `json:"expense"`
}

// BreakdownByCategory groups each type subset by category, sums amounts and
// computes each category's percentage of the subset total (0 when the total
// is 0). Rows are sorted descending by amount; ties keep first-encountered
// order. Categories absent from the subset are omitted. An empty subset
// yields an empty slice.
func BreakdownByCategory(txs []core.Transaction) Breakdown {
	return Breakdown{
		Income:  breakdownFor(txs, core.Income),
		Expense: breakdownFor(txs, core.Expense),
	}
}

func breakdownFor(txs []core.Transaction, typ core.Type) []CategoryShare {
	sums := make(map[core.Category]core.Money)
	var order []core.Category
	var total core.Money

	for _, tx := range txs {
		if tx.Type != typ || tx.Amount.Cents <= 0 {
			continue
		}
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
		total = total.Add(tx.Amount)
	}

	shares := make([]CategoryShare, 0, len(order))
	for _, c := range order {
		amount := sums[c]
		var pct float64
		if total.Cents > 0 {
			pct = float64(amount.Cents) / float64(total.Cents) * 100
		}
		shares = append(shares, CategoryShare{Category: c, Amount: amount, Percentage: pct})
	}

	// Stable keeps first-encountered order for equal amounts.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount.Cents > shares[j].Amount.Cents
	})
	return shares
}
