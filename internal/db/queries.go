package db

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/hpungsan/shelf/internal/errors"
	"github.com/hpungsan/shelf/internal/item"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so every query below can
// run standalone or as one step of a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction. The transaction commits only if fn
// returns nil; any error (or panic) rolls it back.
func WithTx(ctx context.Context, database *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageFault(fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageFault(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// NextID allocates the next item id from the persistent sequence.
// Ids are never handed out twice, even after the item is deleted.
func NextID(ctx context.Context, q Querier) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT next_id FROM item_sequence WHERE id = 1`).Scan(&id)
	if err != nil {
		return 0, errors.NewStorageFault(fmt.Errorf("read id sequence: %w", err))
	}

	if _, err := q.ExecContext(ctx, `UPDATE item_sequence SET next_id = ? WHERE id = 1`, id+1); err != nil {
		return 0, errors.NewStorageFault(fmt.Errorf("advance id sequence: %w", err))
	}
	return id, nil
}

// InsertItem stores it in the items table under its existing id.
func InsertItem(ctx context.Context, q Querier, it item.Item) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (?, ?, ?, ?)`,
		item.Items, strings.Join(item.ItemColumns, ", "),
	)

	_, err := q.ExecContext(ctx, query, it.ID, it.Name, it.Price.Cents(), it.Stock)
	if err != nil {
		return insertError(item.Items, it.ID, err)
	}
	return nil
}

// InsertDeletedItem stores d in the deleted_items table. An empty comment is
// stored as NULL.
func InsertDeletedItem(ctx context.Context, q Querier, d item.DeletedItem) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?)`,
		item.DeletedItems, strings.Join(item.DeletedItemColumns, ", "),
	)

	comment := sql.NullString{String: d.Comment, Valid: d.Comment != ""}
	_, err := q.ExecContext(ctx, query, d.ID, d.Name, d.Price.Cents(), d.Stock, comment)
	if err != nil {
		return insertError(item.DeletedItems, d.ID, err)
	}
	return nil
}

// GetItem retrieves a row of the items table by id.
func GetItem(ctx context.Context, q Querier, id int64) (*item.Item, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE id = ?`,
		strings.Join(item.ItemColumns, ", "), item.Items,
	)

	it, err := scanItem(q.QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFound(string(item.Items), id)
	}
	if err != nil {
		return nil, errors.NewStorageFault(fmt.Errorf("get item %d: %w", id, err))
	}
	return it, nil
}

// GetDeletedItem retrieves a row of the deleted_items table by id.
func GetDeletedItem(ctx context.Context, q Querier, id int64) (*item.DeletedItem, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE id = ?`,
		strings.Join(item.DeletedItemColumns, ", "), item.DeletedItems,
	)

	d, err := scanDeletedItem(q.QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFound(string(item.DeletedItems), id)
	}
	if err != nil {
		return nil, errors.NewStorageFault(fmt.Errorf("get deleted item %d: %w", id, err))
	}
	return d, nil
}

// ListItems returns every row of the items table ordered by id.
func ListItems(ctx context.Context, q Querier) ([]item.Item, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY id ASC`,
		strings.Join(item.ItemColumns, ", "), item.Items,
	)

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewStorageFault(fmt.Errorf("list items: %w", err))
	}
	defer rows.Close()

	items := make([]item.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, errors.NewStorageFault(fmt.Errorf("scan item: %w", err))
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageFault(fmt.Errorf("list items: %w", err))
	}
	return items, nil
}

// ListDeletedItems returns every row of the deleted_items table ordered by id.
func ListDeletedItems(ctx context.Context, q Querier) ([]item.DeletedItem, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY id ASC`,
		strings.Join(item.DeletedItemColumns, ", "), item.DeletedItems,
	)

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewStorageFault(fmt.Errorf("list deleted items: %w", err))
	}
	defer rows.Close()

	deleted := make([]item.DeletedItem, 0)
	for rows.Next() {
		d, err := scanDeletedItem(rows)
		if err != nil {
			return nil, errors.NewStorageFault(fmt.Errorf("scan deleted item: %w", err))
		}
		deleted = append(deleted, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageFault(fmt.Errorf("list deleted items: %w", err))
	}
	return deleted, nil
}

// UpdateItemField sets one column of an items row.
// Returns NotFound when no row has the id.
func UpdateItemField(ctx context.Context, q Querier, id int64, field item.Field, value any) error {
	column, ok := item.ParseField(string(field))
	if !ok {
		return errors.NewValidation(fmt.Sprintf("unknown field %q", field))
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE id = ?`, item.Items, column)
	result, err := q.ExecContext(ctx, query, value, id)
	if err != nil {
		return errors.NewStorageFault(fmt.Errorf("update item %d: %w", id, err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageFault(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(string(item.Items), id)
	}
	return nil
}

// DeleteRow removes the row with id from table.
// Returns NotFound when no row has the id.
func DeleteRow(ctx context.Context, q Querier, table item.Table, id int64) error {
	if !table.Valid() {
		return errors.NewValidation(fmt.Sprintf("unknown table %q", table))
	}

	result, err := q.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return errors.NewStorageFault(fmt.Errorf("delete %d from %s: %w", id, table, err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageFault(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(string(table), id)
	}
	return nil
}

// CountRows returns the number of rows in table.
func CountRows(ctx context.Context, q Querier, table item.Table) (int, error) {
	if !table.Valid() {
		return 0, errors.NewValidation(fmt.Sprintf("unknown table %q", table))
	}

	var count int
	if err := q.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count); err != nil {
		return 0, errors.NewStorageFault(fmt.Errorf("count %s: %w", table, err))
	}
	return count, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem scans columns in item.ItemColumns order.
func scanItem(row rowScanner) (*item.Item, error) {
	var (
		it    item.Item
		cents int64
	)
	if err := row.Scan(&it.ID, &it.Name, &cents, &it.Stock); err != nil {
		return nil, err
	}
	it.Price = item.Price(cents)
	return &it, nil
}

// scanDeletedItem scans columns in item.DeletedItemColumns order.
func scanDeletedItem(row rowScanner) (*item.DeletedItem, error) {
	var (
		d       item.DeletedItem
		cents   int64
		comment sql.NullString
	)
	if err := row.Scan(&d.ID, &d.Name, &cents, &d.Stock, &comment); err != nil {
		return nil, err
	}
	d.Price = item.Price(cents)
	d.Comment = comment.String
	return &d, nil
}

// insertError classifies an insert failure. A UNIQUE violation means the id
// is already resident in the table.
func insertError(table item.Table, id int64, err error) error {
	if isUniqueConstraintError(err) {
		return errors.NewStorageFault(fmt.Errorf("id %d already present in %s: %w", id, table, err))
	}
	return errors.NewStorageFault(fmt.Errorf("insert %d into %s: %w", id, table, err))
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE or PRIMARY KEY violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}
