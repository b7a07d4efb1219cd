package ledger

import (
	"context"
	"encoding/json"
	"log/slog"

	"kopilka/internal/core"
)

// storedRecord is the on-disk shape of one transaction:
// {id, type, amount, title, category, date}. Type and category stay raw
// strings here so a single tampered record cannot fail the whole blob.
type storedRecord struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Amount   core.Money `json:"amount"`
	Title    string     `json:"title"`
	Category string     `json:"category"`
	Date     core.Date  `json:"date"`
}

func encodeCollection(txs []core.Transaction) (string, error) {
	records := make([]storedRecord, len(txs))
	for i, tx := range txs {
		records[i] = storedRecord{
			ID:       tx.ID,
			Type:     string(tx.Type),
			Amount:   tx.Amount,
			Title:    tx.Title,
			Category: string(tx.Category),
			Date:     tx.Date,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeCollection parses the stored blob. Records the application could not
// have written are handled defensively: unknown categories normalize to the
// type's fallback bucket, records without a usable type, id or date are
// dropped with a warning. Only a payload that is not a JSON array at all is
// an error.
func decodeCollection(ctx context.Context, payload string) ([]core.Transaction, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, err
	}

	txs := make([]core.Transaction, 0, len(raw))
	for i, msg := range raw {
		var rec storedRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			slog.WarnContext(ctx, "Skipping undecodable ledger record",
				"index", i, "error", err)
			continue
		}
		typ, err := core.ParseType(rec.Type)
		if err != nil || rec.ID == "" || rec.Date.IsZero() {
			slog.WarnContext(ctx, "Skipping malformed ledger record",
				"index", i, "id", rec.ID, "type", rec.Type)
			continue
		}
		txs = append(txs, core.Transaction{
			ID:       rec.ID,
			Type:     typ,
			Amount:   rec.Amount,
			Title:    rec.Title,
			Category: core.NormalizeCategory(rec.Category, typ),
			Date:     rec.Date,
		})
	}
	return txs, nil
}
