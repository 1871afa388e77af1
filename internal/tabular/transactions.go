package tabular

import (
	"planner/internal/core"
)

// Transaction table columns.
const (
	colType        = "type"
	colCategory    = "category"
	colAmount      = "amount"
	colDescription = "description"
)

// TransactionCodec encodes one row per transaction. Amounts are written with
// two decimals.
type TransactionCodec struct{}

func (TransactionCodec) Header() []string {
	return []string{DateColumn, colType, colCategory, colAmount, colDescription}
}

// Decode reads rows whose first row is the header. Rows with a bad date,
// direction or amount are dropped and counted.
func (TransactionCodec) Decode(rows [][]string) (txs []core.Transaction, dropped int) {
	txs = []core.Transaction{}
	if len(rows) == 0 {
		return txs, 0
	}
	idx := columnIndex(rows[0])

	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		tx, ok := decodeTransaction(row, idx)
		if !ok {
			dropped++
			continue
		}
		txs = append(txs, tx)
	}
	return txs, dropped
}

func decodeTransaction(row []string, idx map[string]int) (core.Transaction, bool) {
	raw, _ := cell(row, idx, DateColumn)
	date, err := parseDate(raw)
	if err != nil {
		return core.Transaction{}, false
	}
	rawType, _ := cell(row, idx, colType)
	dir, err := core.ParseDirection(rawType)
	if err != nil {
		return core.Transaction{}, false
	}
	rawAmount, _ := cell(row, idx, colAmount)
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		return core.Transaction{}, false
	}
	category, _ := cell(row, idx, colCategory)
	desc, _ := cell(row, idx, colDescription)
	return core.Transaction{
		Date:        date,
		Type:        dir,
		Category:    category,
		Amount:      amount,
		Description: desc,
	}, true
}

func (c TransactionCodec) Encode(txs []core.Transaction) [][]string {
	rows := make([][]string, 0, len(txs)+1)
	rows = append(rows, c.Header())
	for _, tx := range txs {
		rows = append(rows, []string{
			tx.Date.String(),
			string(tx.Type),
			tx.Category,
			core.FormatAmount(tx.Amount),
			tx.Description,
		})
	}
	return rows
}
