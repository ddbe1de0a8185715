// Package ops implements the item lifecycle: create, read, update, and the
// soft-delete moves between the items and deleted_items tables.
//
// Every operation that writes more than one row runs in a single transaction,
// so a failure part way through leaves both tables as they were. An id is
// always resident in exactly one of the two tables.
package ops

import (
	"fmt"
	"strings"

	"github.com/hpungsan/shelf/internal/errors"
	"github.com/hpungsan/shelf/internal/item"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Name  string
	Price item.Price
	Stock int64
}

// newItem validates input and returns the item it describes, without an id.
func (in CreateInput) newItem() (item.Item, error) {
	it := item.Item{
		Name:  strings.TrimSpace(in.Name),
		Price: in.Price,
		Stock: in.Stock,
	}
	if err := it.Validate(); err != nil {
		return item.Item{}, err
	}
	return it, nil
}

// UpdateInput contains parameters for the Update operation.
// Only the value matching Field is used.
type UpdateInput struct {
	ID    int64
	Field item.Field
	Name  string
	Price item.Price
	Stock int64
}

// value validates the selected field and returns its column value.
func (in UpdateInput) value() (any, error) {
	switch in.Field {
	case item.FieldName:
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, errors.NewValidation("name must not be empty")
		}
		return name, nil
	case item.FieldPrice:
		if in.Price < 0 || in.Price > item.MaxPrice {
			return nil, errors.NewValidation("price must be between 0.00 and the maximum price")
		}
		return in.Price.Cents(), nil
	case item.FieldStock:
		if in.Stock < 0 {
			return nil, errors.NewValidation("stock must not be negative")
		}
		return in.Stock, nil
	default:
		return nil, errors.NewValidation(fmt.Sprintf("unknown field %q", in.Field))
	}
}

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID      int64
	Comment string
}

// RestoreInput contains parameters for the Restore operation.
type RestoreInput struct {
	ID int64
}

// validateTable rejects names outside the two item tables.
func validateTable(table item.Table) error {
	if !table.Valid() {
		return errors.NewValidation(fmt.Sprintf("unknown table %q (expected one of: %s)", table, item.TableNames()))
	}
	return nil
}
