package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type DailyValue struct {
	Date      string
	Objective string
	Value     string
}

type TransactionRow struct {
	ID          int64
	Date        string
	Type        string
	Category    string
	Amount      string
	Description string
}

const listRecordDates = `SELECT date FROM daily_records ORDER BY date`

func (q *Queries) ListRecordDates(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listRecordDates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

const listDailyValues = `SELECT date, objective, value FROM daily_values ORDER BY date, objective`

func (q *Queries) ListDailyValues(ctx context.Context) ([]DailyValue, error) {
	rows, err := q.db.QueryContext(ctx, listDailyValues)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DailyValue
	for rows.Next() {
		var i DailyValue
		if err := rows.Scan(&i.Date, &i.Objective, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteDailyValues = `DELETE FROM daily_values`

func (q *Queries) DeleteDailyValues(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteDailyValues)
	return err
}

const deleteDailyRecords = `DELETE FROM daily_records`

func (q *Queries) DeleteDailyRecords(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteDailyRecords)
	return err
}

const insertDailyRecord = `INSERT INTO daily_records (date) VALUES (?)`

func (q *Queries) InsertDailyRecord(ctx context.Context, date string) error {
	_, err := q.db.ExecContext(ctx, insertDailyRecord, date)
	return err
}

const insertDailyValue = `INSERT INTO daily_values (date, objective, value) VALUES (?, ?, ?)`

func (q *Queries) InsertDailyValue(ctx context.Context, arg DailyValue) error {
	_, err := q.db.ExecContext(ctx, insertDailyValue, arg.Date, arg.Objective, arg.Value)
	return err
}

const listTransactions = `SELECT id, date, type, category, amount, description FROM transactions ORDER BY id`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TransactionRow
	for rows.Next() {
		var i TransactionRow
		if err := rows.Scan(&i.ID, &i.Date, &i.Type, &i.Category, &i.Amount, &i.Description); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteTransactions = `DELETE FROM transactions`

func (q *Queries) DeleteTransactions(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteTransactions)
	return err
}

const insertTransaction = `INSERT INTO transactions (date, type, category, amount, description) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) InsertTransaction(ctx context.Context, arg TransactionRow) error {
	_, err := q.db.ExecContext(ctx, insertTransaction, arg.Date, arg.Type, arg.Category, arg.Amount, arg.Description)
	return err
}

const listReportRows = `SELECT cells FROM report_rows ORDER BY position`

func (q *Queries) ListReportRows(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listReportRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const deleteReportRows = `DELETE FROM report_rows`

func (q *Queries) DeleteReportRows(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteReportRows)
	return err
}

const insertReportRow = `INSERT INTO report_rows (position, cells) VALUES (?, ?)`

func (q *Queries) InsertReportRow(ctx context.Context, position int64, cells string) error {
	_, err := q.db.ExecContext(ctx, insertReportRow, position, cells)
	return err
}
