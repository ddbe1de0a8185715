package command

import (
	"regexp"

	"github.com/hpungsan/shelf/internal/item"
)

// Kind identifies a command.
type Kind int

const (
	KindCreate Kind = iota + 1
	KindRead
	KindUpdate
	KindDelete
	KindRestore
	KindHelp
	KindQuit
	KindTables
)

// String returns the command word for k.
func (k Kind) String() string {
	for _, def := range Grammar {
		if def.Kind == k {
			return def.Name
		}
	}
	return "unknown"
}

// Definition describes one command: the word that names it, the pattern its
// whole input must match, and how captured groups become typed fields.
type Definition struct {
	Kind    Kind
	Name    string
	Usage   string
	Summary string

	pattern *regexp.Regexp
	extract func(pc *ParsedCommand, groups []string) error
}

// Grammar is the closed set of commands in matching order.
var Grammar = []Definition{
	{
		Kind:    KindCreate,
		Name:    "create",
		Usage:   "CREATE <name> <price> <stock>",
		Summary: "insert a row into the table '" + string(item.Items) + "'",
		pattern: regexp.MustCompile(`^create\s+(\w+)\s+(\d+\.\d+)\s+(\d+)$`),
		extract: extractCreate,
	},
	{
		Kind:    KindRead,
		Name:    "read",
		Usage:   "READ <" + string(item.Items) + "|" + string(item.DeletedItems) + ">",
		Summary: "view the entries of one of the tables: " + item.TableNames(),
		pattern: regexp.MustCompile(`^read\s+(` + string(item.Items) + `|` + string(item.DeletedItems) + `)$`),
		extract: extractRead,
	},
	{
		Kind:    KindUpdate,
		Name:    "update",
		Usage:   "UPDATE <id> <name = 'text'|price = <decimal>|stock = <integer>>",
		Summary: "update one field of a row in the table '" + string(item.Items) + "'",
		pattern: regexp.MustCompile(`^update\s+(\d+)\s+(?:(name)\s*=\s*'(\w+)'|(price)\s*=\s*(\d+(?:\.\d+)?)|(stock)\s*=\s*(\d+))$`),
		extract: extractUpdate,
	},
	{
		Kind:    KindDelete,
		Name:    "delete",
		Usage:   "DELETE <id> [comment]",
		Summary: "move a row from '" + string(item.Items) + "' to '" + string(item.DeletedItems) + "', with an optional comment",
		pattern: regexp.MustCompile(`^delete\s+(\d+)(?:\s+(.*))?$`),
		extract: extractDelete,
	},
	{
		Kind:    KindRestore,
		Name:    "restore",
		Usage:   "RESTORE <id>",
		Summary: "move a row from '" + string(item.DeletedItems) + "' back to '" + string(item.Items) + "'",
		pattern: regexp.MustCompile(`^restore\s+(\d+)$`),
		extract: extractRestore,
	},
	{
		Kind:    KindHelp,
		Name:    "help",
		Usage:   "HELP",
		Summary: "view the list of valid commands",
		pattern: regexp.MustCompile(`^help$`),
	},
	{
		Kind:    KindQuit,
		Name:    "quit",
		Usage:   "QUIT",
		Summary: "exit the command-line interface",
		pattern: regexp.MustCompile(`^quit$`),
	},
	{
		Kind:    KindTables,
		Name:    "tables",
		Usage:   "TABLES",
		Summary: "list the tables",
		pattern: regexp.MustCompile(`^tables$`),
	},
}

// Lookup returns the definition named by word.
func Lookup(word string) (Definition, bool) {
	for _, def := range Grammar {
		if def.Name == word {
			return def, true
		}
	}
	return Definition{}, false
}

// match reports whether pattern matches all of input and returns the
// captured groups (index 0 is the whole match).
func match(pattern *regexp.Regexp, input string) ([]string, bool) {
	groups := pattern.FindStringSubmatch(input)
	if groups == nil || groups[0] != input {
		return nil, false
	}
	return groups, true
}
