package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/shelf/internal/db"
	"github.com/hpungsan/shelf/internal/item"
)

// Update changes one field of an active item and returns the updated row.
// Deleted items cannot be updated; an id absent from items is NotFound and
// nothing is written.
func Update(ctx context.Context, database *sql.DB, input UpdateInput) (*item.Item, error) {
	value, err := input.value()
	if err != nil {
		return nil, err
	}

	var updated *item.Item
	err = db.WithTx(ctx, database, func(tx *sql.Tx) error {
		if err := db.UpdateItemField(ctx, tx, input.ID, input.Field, value); err != nil {
			return err
		}
		updated, err = db.GetItem(ctx, tx, input.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
