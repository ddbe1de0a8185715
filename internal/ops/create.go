package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/shelf/internal/db"
	"github.com/hpungsan/shelf/internal/item"
)

// Create inserts a new item under a freshly allocated id.
func Create(ctx context.Context, database *sql.DB, input CreateInput) (*item.Item, error) {
	it, err := input.newItem()
	if err != nil {
		return nil, err
	}

	err = db.WithTx(ctx, database, func(tx *sql.Tx) error {
		id, err := db.NextID(ctx, tx)
		if err != nil {
			return err
		}
		it.ID = id
		return db.InsertItem(ctx, tx, it)
	})
	if err != nil {
		return nil, err
	}

	return &it, nil
}
