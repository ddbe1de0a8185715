package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/shelf/internal/db"
	"github.com/hpungsan/shelf/internal/item"
)

// Delete moves an item from items to deleted_items, attaching the comment.
// The read, insert and delete run in one transaction: either the item ends up
// in deleted_items only, or nothing changes.
func Delete(ctx context.Context, database *sql.DB, input DeleteInput) (*item.DeletedItem, error) {
	var deleted item.DeletedItem

	err := db.WithTx(ctx, database, func(tx *sql.Tx) error {
		it, err := db.GetItem(ctx, tx, input.ID)
		if err != nil {
			return err
		}

		deleted = item.NewDeletedItem(*it, input.Comment)
		if err := db.InsertDeletedItem(ctx, tx, deleted); err != nil {
			return err
		}
		return db.DeleteRow(ctx, tx, item.Items, input.ID)
	})
	if err != nil {
		return nil, err
	}

	return &deleted, nil
}
