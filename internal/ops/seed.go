package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hpungsan/shelf/internal/db"
	"github.com/hpungsan/shelf/internal/errors"
	"github.com/hpungsan/shelf/internal/item"
)

// SeedOutput contains the result of the Seed operation.
type SeedOutput struct {
	Inserted int   `json:"inserted"`
	FirstID  int64 `json:"first_id,omitempty"`
	LastID   int64 `json:"last_id,omitempty"`
	Skipped  bool  `json:"skipped,omitempty"`
}

// Seed creates every input item in order, in one transaction. Ids come from
// the same sequence as Create. An invalid entry rejects the whole batch.
func Seed(ctx context.Context, database *sql.DB, inputs []CreateInput) (*SeedOutput, error) {
	return seed(ctx, database, inputs, false)
}

// SeedIfEmpty is Seed, skipped when either table already holds rows.
func SeedIfEmpty(ctx context.Context, database *sql.DB, inputs []CreateInput) (*SeedOutput, error) {
	return seed(ctx, database, inputs, true)
}

func seed(ctx context.Context, database *sql.DB, inputs []CreateInput, onlyIfEmpty bool) (*SeedOutput, error) {
	items := make([]item.Item, len(inputs))
	for i, input := range inputs {
		it, err := input.newItem()
		if err != nil {
			return nil, errors.NewValidation(fmt.Sprintf("seed item %d: %s", i+1, errors.As(err).Message))
		}
		items[i] = it
	}

	output := &SeedOutput{}
	err := db.WithTx(ctx, database, func(tx *sql.Tx) error {
		if onlyIfEmpty {
			empty, err := tablesEmpty(ctx, tx)
			if err != nil {
				return err
			}
			if !empty {
				output.Skipped = true
				return nil
			}
		}

		for i := range items {
			id, err := db.NextID(ctx, tx)
			if err != nil {
				return err
			}
			items[i].ID = id
			if err := db.InsertItem(ctx, tx, items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !output.Skipped && len(items) > 0 {
		output.Inserted = len(items)
		output.FirstID = items[0].ID
		output.LastID = items[len(items)-1].ID
	}
	return output, nil
}

func tablesEmpty(ctx context.Context, q db.Querier) (bool, error) {
	for _, table := range item.Tables {
		n, err := db.CountRows(ctx, q, table)
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}
