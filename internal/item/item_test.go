package item

import (
	"testing"

	"github.com/hpungsan/shelf/internal/errors"
)

func TestItem_String(t *testing.T) {
	it := Item{ID: 1, Name: "testname", Price: 10099, Stock: 1}
	if got := it.String(); got != "1 | testname | 100.99 | 1" {
		t.Errorf("String() = %q", got)
	}
}

func TestDeletedItem_String(t *testing.T) {
	d := NewDeletedItem(Item{ID: 2, Name: "bread", Price: 250, Stock: 12}, "  stale  ")
	if d.Comment != "stale" {
		t.Errorf("Comment = %q, want %q", d.Comment, "stale")
	}
	if got := d.String(); got != "2 | bread | 2.50 | 12 | stale" {
		t.Errorf("String() = %q", got)
	}
}

func TestItem_Equal(t *testing.T) {
	base := Item{ID: 1, Name: "a", Price: 100, Stock: 2}

	tests := []struct {
		name  string
		other Item
		want  bool
	}{
		{"identical", base, true},
		{"different id", Item{ID: 2, Name: "a", Price: 100, Stock: 2}, false},
		{"different name", Item{ID: 1, Name: "b", Price: 100, Stock: 2}, false},
		{"different price", Item{ID: 1, Name: "a", Price: 101, Stock: 2}, false},
		{"different stock", Item{ID: 1, Name: "a", Price: 100, Stock: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeletedItem_RestoreDropsComment(t *testing.T) {
	it := Item{ID: 5, Name: "milk", Price: MustParsePrice("1.2"), Stock: 0}
	d := NewDeletedItem(it, "expired")

	restored := d.Restore()
	if !restored.Equal(it) {
		t.Errorf("Restore() = %v, want %v", restored, it)
	}

	other := NewDeletedItem(it, "different reason")
	if d.Equal(other) {
		t.Error("deleted items with different comments should not be equal")
	}
	if !d.Item.Equal(other.Item) {
		t.Error("item fields should be equal regardless of comment")
	}
}

func TestRecord_Variants(t *testing.T) {
	it := Item{ID: 1, Name: "a", Price: 1, Stock: 1}
	records := []Record{it, NewDeletedItem(it, "c")}

	if len(records[0].Values()) != len(ItemColumns) {
		t.Errorf("Item values = %d, want %d", len(records[0].Values()), len(ItemColumns))
	}
	if len(records[1].Values()) != len(DeletedItemColumns) {
		t.Errorf("DeletedItem values = %d, want %d", len(records[1].Values()), len(DeletedItemColumns))
	}
	for _, r := range records {
		if !r.Base().Equal(it) {
			t.Errorf("Base() = %v, want %v", r.Base(), it)
		}
	}
}

func TestItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"valid", Item{Name: "a", Price: 0, Stock: 0}, false},
		{"empty name", Item{Name: "  ", Price: 1, Stock: 1}, true},
		{"negative price", Item{Name: "a", Price: -1, Stock: 1}, true},
		{"negative stock", Item{Name: "a", Price: 1, Stock: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr && !errors.Is(err, errors.ErrValidation) {
				t.Errorf("Validate() error = %v, want VALIDATION", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestParseTable(t *testing.T) {
	if tbl, ok := ParseTable("items"); !ok || tbl != Items {
		t.Errorf("ParseTable(items) = %q, %v", tbl, ok)
	}
	if tbl, ok := ParseTable("deleted_items"); !ok || tbl != DeletedItems {
		t.Errorf("ParseTable(deleted_items) = %q, %v", tbl, ok)
	}
	if _, ok := ParseTable("users"); ok {
		t.Error("ParseTable(users) should fail")
	}
	if Table("users").Columns() != nil {
		t.Error("unknown table should have no columns")
	}
	if TableNames() != "items, deleted_items" {
		t.Errorf("TableNames() = %q", TableNames())
	}
}

func TestParseField(t *testing.T) {
	for _, f := range []string{"name", "price", "stock"} {
		if _, ok := ParseField(f); !ok {
			t.Errorf("ParseField(%q) should succeed", f)
		}
	}
	if _, ok := ParseField("id"); ok {
		t.Error("id is not a mutable field")
	}
}
