package item

import (
	"strconv"
	"strings"

	"github.com/hpungsan/shelf/internal/errors"
)

// ValueSeparator joins record values for display.
const ValueSeparator = " | "

// Record is either an active Item or a DeletedItem.
// The set of implementations is closed to this package.
type Record interface {
	// Base returns the item fields shared by both variants.
	Base() Item

	// Values returns display values in schema column order.
	Values() []string

	isRecord()
}

// Item is an inventory record resident in the items table.
type Item struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price Price  `json:"price"`
	Stock int64  `json:"stock"`
}

// Base returns the item itself.
func (i Item) Base() Item { return i }

func (Item) isRecord() {}

// Values returns id, name, price and stock as display strings.
func (i Item) Values() []string {
	return []string{
		strconv.FormatInt(i.ID, 10),
		i.Name,
		i.Price.String(),
		strconv.FormatInt(i.Stock, 10),
	}
}

// String formats the item as a bar-separated row.
func (i Item) String() string {
	return strings.Join(i.Values(), ValueSeparator)
}

// Equal reports whether two items carry identical fields.
func (i Item) Equal(other Item) bool {
	return i.ID == other.ID &&
		i.Name == other.Name &&
		i.Price == other.Price &&
		i.Stock == other.Stock
}

// Validate checks the non-id fields.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return errors.NewValidation("name must not be empty")
	}
	if i.Price < 0 {
		return errors.NewValidation("price must not be negative")
	}
	if i.Price > MaxPrice {
		return errors.NewValidation("price is too large")
	}
	if i.Stock < 0 {
		return errors.NewValidation("stock must not be negative")
	}
	return nil
}

// DeletedItem is an Item moved to the deleted_items table, with an optional
// comment describing why. An empty comment means no comment.
type DeletedItem struct {
	Item
	Comment string `json:"comment"`
}

// NewDeletedItem wraps it with comment. Surrounding whitespace is dropped.
func NewDeletedItem(it Item, comment string) DeletedItem {
	return DeletedItem{Item: it, Comment: strings.TrimSpace(comment)}
}

// Values returns the item values followed by the comment.
func (d DeletedItem) Values() []string {
	return append(d.Item.Values(), d.Comment)
}

// String formats the deleted item as a bar-separated row.
func (d DeletedItem) String() string {
	return strings.Join(d.Values(), ValueSeparator)
}

// Equal reports whether two deleted items carry identical fields and comments.
func (d DeletedItem) Equal(other DeletedItem) bool {
	return d.Item.Equal(other.Item) && d.Comment == other.Comment
}

// Restore returns the plain item, dropping the comment.
func (d DeletedItem) Restore() Item {
	return d.Item
}
