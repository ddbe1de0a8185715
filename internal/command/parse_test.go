package command

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/shelf/internal/errors"
	"github.com/hpungsan/shelf/internal/item"
)

func TestParse_Create(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  CreateArgs
	}{
		{"basic", "create testname 100.99 1", CreateArgs{Name: "testname", Price: 10099, Stock: 1}},
		{"upper case", "CREATE TestName 100.99 1", CreateArgs{Name: "testname", Price: 10099, Stock: 1}},
		{"surrounding spaces", "   create bread 2.50 12  ", CreateArgs{Name: "bread", Price: 250, Stock: 12}},
		{"extra inner spaces", "create bread   2.50   12", CreateArgs{Name: "bread", Price: 250, Stock: 12}},
		{"zero price", "create free 0.0 0", CreateArgs{Name: "free", Price: 0, Stock: 0}},
		{"rounded price", "create nail 0.125 100", CreateArgs{Name: "nail", Price: 13, Stock: 100}},
		{"underscore name", "create dry_yeast 3.10 4", CreateArgs{Name: "dry_yeast", Price: 310, Stock: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if pc.Kind != KindCreate {
				t.Errorf("Kind = %v, want create", pc.Kind)
			}
			if pc.Create != tt.want {
				t.Errorf("Create = %+v, want %+v", pc.Create, tt.want)
			}
		})
	}
}

func TestParse_Read(t *testing.T) {
	pc, err := Parse("READ items")
	require.NoError(t, err)
	require.Equal(t, KindRead, pc.Kind)
	require.Equal(t, item.Items, pc.Table)

	pc, err = Parse("read deleted_items")
	require.NoError(t, err)
	require.Equal(t, item.DeletedItems, pc.Table)
}

func TestParse_Update(t *testing.T) {
	tests := []struct {
		input string
		id    int64
		want  UpdateArgs
	}{
		{"update 1 name = 'chowder'", 1, UpdateArgs{Field: item.FieldName, Name: "chowder"}},
		{"UPDATE 7 NAME = 'Chowder'", 7, UpdateArgs{Field: item.FieldName, Name: "chowder"}},
		{"update 2 price = 3.99", 2, UpdateArgs{Field: item.FieldPrice, Price: 399}},
		{"update 2 price = 4", 2, UpdateArgs{Field: item.FieldPrice, Price: 400}},
		{"update 3 stock = 40", 3, UpdateArgs{Field: item.FieldStock, Stock: 40}},
		{"update 3 stock=0", 3, UpdateArgs{Field: item.FieldStock, Stock: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pc, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if pc.Kind != KindUpdate {
				t.Errorf("Kind = %v, want update", pc.Kind)
			}
			if pc.ID != tt.id {
				t.Errorf("ID = %d, want %d", pc.ID, tt.id)
			}
			if pc.Update != tt.want {
				t.Errorf("Update = %+v, want %+v", pc.Update, tt.want)
			}
		})
	}
}

func TestParse_Delete(t *testing.T) {
	tests := []struct {
		input   string
		id      int64
		comment string
	}{
		{"delete 1", 1, ""},
		{"delete 1 words words words", 1, "words words words"},
		{"DELETE 12 Out of stock!", 12, "out of stock!"},
		{"delete 3    spaced   ", 3, "spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pc, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if pc.Kind != KindDelete {
				t.Errorf("Kind = %v, want delete", pc.Kind)
			}
			if pc.ID != tt.id {
				t.Errorf("ID = %d, want %d", pc.ID, tt.id)
			}
			if pc.Comment != tt.comment {
				t.Errorf("Comment = %q, want %q", pc.Comment, tt.comment)
			}
		})
	}
}

func TestParse_NoArgumentCommands(t *testing.T) {
	tests := map[string]Kind{
		"restore 4": KindRestore,
		"help":      KindHelp,
		"HELP":      KindHelp,
		"quit":      KindQuit,
		" Quit ":    KindQuit,
		"tables":    KindTables,
	}

	for input, kind := range tests {
		t.Run(input, func(t *testing.T) {
			pc, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", input, err)
			}
			if pc.Kind != kind {
				t.Errorf("Kind = %v, want %v", pc.Kind, kind)
			}
		})
	}
}

func TestParse_MalformedArguments(t *testing.T) {
	inputs := []string{
		"create",
		"create testname",
		"create testname 100 1",    // price needs a decimal point
		"create testname .99 1",    // and digits on both sides
		"create testname 1.5 -1",   // no signs
		"create test-name 1.50 1",  // name is word characters only
		"create testname 1.50 1 2", // extra argument
		"read",
		"read users",
		"update 1",
		"update 1 id = 2",
		"update 1 name = chowder",
		"update 1 price = 'abc'",
		"update 1 stock = 1.5",
		"update x stock = 1",
		"delete",
		"delete x",
		"delete 1x",
		"restore",
		"restore 1 2",
		"help me",
		"quit now",
		"tables items",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if !errors.Is(err, errors.ErrMalformedArguments) {
				t.Errorf("Parse(%q) error = %v, want MALFORMED_ARGUMENTS", input, err)
			}
		})
	}
}

func TestParse_UnknownCommand(t *testing.T) {
	inputs := []string{"", "   ", "frobnicate", "select * from items", "creates a 1.0 1", "insert 1"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if !errors.Is(err, errors.ErrUnknownCommand) {
				t.Errorf("Parse(%q) error = %v, want UNKNOWN_COMMAND", input, err)
			}
		})
	}
}

func TestParse_ErrorDetails(t *testing.T) {
	_, err := Parse("  CREATE Thing  ")
	require.Error(t, err)

	var sErr *errors.ShelfError
	require.ErrorAs(t, err, &sErr)
	require.Equal(t, errors.ErrMalformedArguments, sErr.Code)
	require.Equal(t, "create", sErr.Details["command"])
	require.Equal(t, "create thing", sErr.Details["input"])
}

func TestParse_OutOfRangeNumbers(t *testing.T) {
	inputs := []string{
		"restore 99999999999999999999",
		"delete 99999999999999999999 gone",
		"create big 1.00 99999999999999999999",
		"update 1 stock = 99999999999999999999",
		"create pricey 999999999999999999999999.00 1",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if !errors.Is(err, errors.ErrValidation) {
				t.Errorf("Parse(%q) error = %v, want VALIDATION", input, err)
			}
		})
	}
}

func TestParse_Pure(t *testing.T) {
	first, err := Parse("delete 1 same input")
	require.NoError(t, err)
	second, err := Parse("delete 1 same input")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGrammar_Order(t *testing.T) {
	want := []string{"create", "read", "update", "delete", "restore", "help", "quit", "tables"}
	require.Len(t, Grammar, len(want))
	for i, def := range Grammar {
		require.Equal(t, want[i], def.Name)
		require.Equal(t, want[i], def.Kind.String())
		require.NotEmpty(t, def.Usage)
		require.NotEmpty(t, def.Summary)
	}
}

func TestLookup(t *testing.T) {
	def, ok := Lookup("restore")
	require.True(t, ok)
	require.Equal(t, KindRestore, def.Kind)

	_, ok = Lookup("purge")
	require.False(t, ok)
}
