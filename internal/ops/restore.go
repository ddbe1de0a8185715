package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/shelf/internal/db"
	"github.com/hpungsan/shelf/internal/item"
)

// Restore moves a deleted item back to items, dropping its comment.
// Atomic in the same way as Delete.
func Restore(ctx context.Context, database *sql.DB, input RestoreInput) (*item.Item, error) {
	var restored item.Item

	err := db.WithTx(ctx, database, func(tx *sql.Tx) error {
		d, err := db.GetDeletedItem(ctx, tx, input.ID)
		if err != nil {
			return err
		}

		restored = d.Restore()
		if err := db.InsertItem(ctx, tx, restored); err != nil {
			return err
		}
		return db.DeleteRow(ctx, tx, item.DeletedItems, input.ID)
	})
	if err != nil {
		return nil, err
	}

	return &restored, nil
}
