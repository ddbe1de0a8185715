package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hpungsan/shelf/internal/errors"
	"github.com/hpungsan/shelf/internal/item"
)

// CreateArgs holds the fields captured by CREATE.
type CreateArgs struct {
	Name  string
	Price item.Price
	Stock int64
}

// UpdateArgs holds the single field change captured by UPDATE.
// Only the value matching Field is set.
type UpdateArgs struct {
	Field item.Field
	Name  string
	Price item.Price
	Stock int64
}

// ParsedCommand is a validated command. Only the fields used by Kind are set:
//
//	KindCreate  Create
//	KindRead    Table
//	KindUpdate  ID, Update
//	KindDelete  ID, Comment
//	KindRestore ID
type ParsedCommand struct {
	Kind  Kind
	Input string

	Create  CreateArgs
	Table   item.Table
	ID      int64
	Update  UpdateArgs
	Comment string
}

// fallback splits input into an attempted command word and the rest.
var fallback = regexp.MustCompile(`^(\S+)(?:\s+(.*))?$`)

// Normalize trims and lower-cases raw input.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// Parse matches input against the grammar in declaration order. The first
// definition whose pattern matches the whole input wins.
//
// Errors are ShelfErrors coded UNKNOWN_COMMAND when the first word names no
// command, MALFORMED_ARGUMENTS when it does but the pattern failed, and
// VALIDATION when a captured number is out of range.
func Parse(input string) (*ParsedCommand, error) {
	normalized := Normalize(input)

	for _, def := range Grammar {
		groups, ok := match(def.pattern, normalized)
		if !ok {
			continue
		}
		pc := &ParsedCommand{Kind: def.Kind, Input: normalized}
		if def.extract != nil {
			if err := def.extract(pc, groups); err != nil {
				return nil, err
			}
		}
		return pc, nil
	}

	word := ""
	if groups := fallback.FindStringSubmatch(normalized); groups != nil {
		word = groups[1]
	}
	if _, known := Lookup(word); known {
		return nil, errors.NewMalformedArguments(word, normalized)
	}
	return nil, errors.NewUnknownCommand(word, normalized)
}

func extractCreate(pc *ParsedCommand, groups []string) error {
	price, err := item.ParsePrice(groups[2])
	if err != nil {
		return err
	}
	stock, err := parseInt("stock", groups[3])
	if err != nil {
		return err
	}
	pc.Create = CreateArgs{Name: groups[1], Price: price, Stock: stock}
	return nil
}

func extractRead(pc *ParsedCommand, groups []string) error {
	table, ok := item.ParseTable(groups[1])
	if !ok {
		return errors.NewValidation(fmt.Sprintf("unknown table %q", groups[1]))
	}
	pc.Table = table
	return nil
}

// extractUpdate reads one of three alternatives:
// groups[2..3] name, groups[4..5] price, groups[6..7] stock.
func extractUpdate(pc *ParsedCommand, groups []string) error {
	id, err := parseInt("id", groups[1])
	if err != nil {
		return err
	}
	pc.ID = id

	switch {
	case groups[2] != "":
		pc.Update = UpdateArgs{Field: item.FieldName, Name: groups[3]}
	case groups[4] != "":
		price, err := item.ParsePrice(groups[5])
		if err != nil {
			return err
		}
		pc.Update = UpdateArgs{Field: item.FieldPrice, Price: price}
	case groups[6] != "":
		stock, err := parseInt("stock", groups[7])
		if err != nil {
			return err
		}
		pc.Update = UpdateArgs{Field: item.FieldStock, Stock: stock}
	}
	return nil
}

func extractDelete(pc *ParsedCommand, groups []string) error {
	id, err := parseInt("id", groups[1])
	if err != nil {
		return err
	}
	pc.ID = id
	pc.Comment = strings.TrimSpace(groups[2])
	return nil
}

func extractRestore(pc *ParsedCommand, groups []string) error {
	id, err := parseInt("id", groups[1])
	if err != nil {
		return err
	}
	pc.ID = id
	return nil
}

// parseInt converts a digit-only capture; the grammar already excludes signs.
func parseInt(field, digits string) (int64, error) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, errors.NewValidation(fmt.Sprintf("%s %s is out of range", field, digits))
	}
	return n, nil
}
