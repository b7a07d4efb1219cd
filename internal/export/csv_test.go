package export

import (
	"strings"
	"testing"

	"kopilka/internal/core"
)

func TestWriteCSV(t *testing.T) {
	txs := []core.Transaction{
		{
			ID:       "2",
			Type:     core.Income,
			Amount:   core.Money{Cents: 200000},
			Title:    "Paycheck",
			Category: core.CategorySalary,
			Date:     core.NewDate(2025, 6, 2),
		},
		{
			ID:       "1",
			Type:     core.Expense,
			Amount:   core.Money{Cents: 50050},
			Title:    `Groceries, "weekly"`,
			Category: core.CategoryFood,
			Date:     core.NewDate(2025, 6, 1),
		},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, txs); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Дата,Тип,Категория,Название,Сумма" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "2025-06-02,Доход,Зарплата,Paycheck,2000.00" {
		t.Fatalf("income row = %q", lines[1])
	}
	// Title with comma and quotes must be csv-quoted.
	if lines[2] != `2025-06-01,Расход,Еда,"Groceries, ""weekly""",500.50` {
		t.Fatalf("expense row = %q", lines[2])
	}
}

func TestWriteCSVEmptyLedger(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := strings.TrimRight(sb.String(), "\n"); got != "Дата,Тип,Категория,Название,Сумма" {
		t.Fatalf("empty ledger should still emit the header, got %q", got)
	}
}
