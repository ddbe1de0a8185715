package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/shelf/internal/db"
	"github.com/hpungsan/shelf/internal/item"
)

// Read returns every row of table ordered by id. An empty table yields an
// empty slice, not an error.
func Read(ctx context.Context, database *sql.DB, table item.Table) ([]item.Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	if table == item.DeletedItems {
		deleted, err := ReadDeletedItems(ctx, database)
		if err != nil {
			return nil, err
		}
		records := make([]item.Record, len(deleted))
		for i, d := range deleted {
			records[i] = d
		}
		return records, nil
	}

	items, err := ReadItems(ctx, database)
	if err != nil {
		return nil, err
	}
	records := make([]item.Record, len(items))
	for i, it := range items {
		records[i] = it
	}
	return records, nil
}

// ReadItems returns every active item ordered by id.
func ReadItems(ctx context.Context, database *sql.DB) ([]item.Item, error) {
	return db.ListItems(ctx, database)
}

// ReadDeletedItems returns every deleted item ordered by id.
func ReadDeletedItems(ctx context.Context, database *sql.DB) ([]item.DeletedItem, error) {
	return db.ListDeletedItems(ctx, database)
}

// ReadOne returns the row of table with id, or NotFound.
func ReadOne(ctx context.Context, database *sql.DB, table item.Table, id int64) (item.Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	if table == item.DeletedItems {
		d, err := db.GetDeletedItem(ctx, database, id)
		if err != nil {
			return nil, err
		}
		return *d, nil
	}

	it, err := db.GetItem(ctx, database, id)
	if err != nil {
		return nil, err
	}
	return *it, nil
}

// Size returns the number of rows in table.
func Size(ctx context.Context, database *sql.DB, table item.Table) (int, error) {
	if err := validateTable(table); err != nil {
		return 0, err
	}
	return db.CountRows(ctx, database, table)
}
