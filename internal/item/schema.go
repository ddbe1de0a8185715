package item

import "strings"

// Table names one of the two item tables.
type Table string

const (
	Items        Table = "items"
	DeletedItems Table = "deleted_items"
)

// Tables lists every table in display order.
var Tables = []Table{Items, DeletedItems}

// Column order for each table. These drive SQL column lists and READ headers.
var (
	ItemColumns        = []string{"id", "name", "price", "stock"}
	DeletedItemColumns = []string{"id", "name", "price", "stock", "comment"}
)

// ParseTable returns the table named s.
func ParseTable(s string) (Table, bool) {
	switch Table(strings.TrimSpace(s)) {
	case Items:
		return Items, true
	case DeletedItems:
		return DeletedItems, true
	default:
		return "", false
	}
}

// Columns returns the ordered column list of t, or nil for an unknown table.
func (t Table) Columns() []string {
	switch t {
	case Items:
		return ItemColumns
	case DeletedItems:
		return DeletedItemColumns
	default:
		return nil
	}
}

// Valid reports whether t is a known table.
func (t Table) Valid() bool {
	_, ok := ParseTable(string(t))
	return ok
}

// TableNames returns the table names joined by ", ".
func TableNames() string {
	names := make([]string, len(Tables))
	for i, t := range Tables {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Field names one mutable column of an item.
type Field string

const (
	FieldName  Field = "name"
	FieldPrice Field = "price"
	FieldStock Field = "stock"
)

// ParseField returns the field named s.
func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldName, FieldPrice, FieldStock:
		return Field(s), true
	default:
		return "", false
	}
}
