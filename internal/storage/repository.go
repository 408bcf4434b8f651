// Package storage implements the SQLite transaction backend.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	_ "modernc.org/sqlite"

	"github.com/VishardMehta/Smart-Expense-Management/internal/core"
	"github.com/VishardMehta/Smart-Expense-Management/internal/store"
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const txColumns = "id, title, amount_cents, category, tx_type, tx_date, emoji, notes"

// List implements store.Lister. The filter is compiled to SQL; the
// ordering is deterministic (date, then id) so the service's stable sort
// starts from a reproducible base.
func (r *SQLiteRepository) List(ctx context.Context, filter core.Filter) ([]core.Transaction, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Type != "" {
		conds = append(conds, "tx_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if !filter.From.IsZero() {
		conds = append(conds, "tx_date >= ?")
		args = append(args, filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		conds = append(conds, "tx_date <= ?")
		args = append(args, filter.To.Format("2006-01-02"))
	}
	if filter.Search != "" {
		conds = append(conds, "(lower(title) LIKE ? OR lower(category) LIKE ? OR lower(notes) LIKE ?)")
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query := "SELECT " + txColumns + " FROM transactions"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY tx_date, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Create implements store.Creator.
func (r *SQLiteRepository) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.Date.IsZero() {
		tx.Date = core.DateOf(r.now())
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx.ID = uuid.Must(uuid.NewV7()).String()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, title, amount_cents, category, tx_type, tx_date, emoji, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Title, tx.Amount.Cents, tx.Category, string(tx.Type),
		tx.Date.Format("2006-01-02"), tx.Emoji, tx.Notes)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents)
	return tx, nil
}

// Update implements store.Updater. Unlike the mock backend, an unknown id
// is a real error here.
func (r *SQLiteRepository) Update(ctx context.Context, id string, fields core.Transaction) (core.Transaction, error) {
	existing, err := r.get(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}

	merged := existing
	if fields.Title != "" {
		merged.Title = fields.Title
	}
	if fields.Amount.Cents != 0 {
		merged.Amount = fields.Amount
	}
	if fields.Category != "" {
		merged.Category = fields.Category
	}
	if !fields.Date.IsZero() {
		merged.Date = fields.Date
	}
	if fields.Emoji != "" {
		merged.Emoji = fields.Emoji
	}
	if fields.Notes != "" {
		merged.Notes = fields.Notes
	}
	if err := merged.Validate(); err != nil {
		return core.Transaction{}, err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET title = ?, amount_cents = ?, category = ?, tx_date = ?, emoji = ?, notes = ?
		 WHERE id = ?`,
		merged.Title, merged.Amount.Cents, merged.Category,
		merged.Date.Format("2006-01-02"), merged.Emoji, merged.Notes, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction updated", "id", id)
	return merged, nil
}

// Delete implements store.Deleter; deleting an unknown id is a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		slog.InfoContext(ctx, "Transaction deleted", "id", id)
	}
	return nil
}

func (r *SQLiteRepository) get(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+txColumns+" FROM transactions WHERE id = ?", id)
	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (core.Transaction, error) {
	var (
		tx      core.Transaction
		txType  string
		dateStr string
	)
	if err := s.Scan(&tx.ID, &tx.Title, &tx.Amount.Cents, &tx.Category, &txType, &dateStr, &tx.Emoji, &tx.Notes); err != nil {
		return core.Transaction{}, err
	}
	tx.Type = core.TransactionType(txType)
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.Date = date
	return tx, nil
}

// RecordAuditEvent appends one row to the audit log. Used by the event
// worker consuming AMQP transaction events.
func (r *SQLiteRepository) RecordAuditEvent(ctx context.Context, event, transactionID string, txType core.TransactionType, amount core.Money, occurredAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (event, transaction_id, tx_type, amount_cents, occurred_at)
		 VALUES (?, ?, ?, ?, ?)`,
		event, transactionID, string(txType), amount.Cents, occurredAt.UTC())
	if err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}

// CountAuditEvents returns the audit log size, used for worker stats.
func (r *SQLiteRepository) CountAuditEvents(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_log").Scan(&n); err != nil {
		return 0, fmt.Errorf("count audit events: %w", err)
	}
	return n, nil
}
