// Package export renders the ledger as CSV for the "export data" action in
// the settings screen.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"kopilka/internal/core"
)

var header = []string{"Дата", "Тип", "Категория", "Название", "Сумма"}

func typeLabel(t core.Type) string {
	if t == core.Income {
		return "Доход"
	}
	return "Расход"
}

// WriteCSV writes a header row followed by one row per transaction, in the
// order given (the ledger lists newest-first). Dates are ISO days, amounts
// plain decimals with two digits; quoting is csv-standard.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			tx.Date.String(),
			typeLabel(tx.Type),
			tx.Category.DisplayName(),
			tx.Title,
			tx.Amount.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
