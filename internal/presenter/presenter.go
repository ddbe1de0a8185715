// Package presenter turns one line of console input into one response string.
//
// Each parsed command kind maps to a handler that makes a single lifecycle
// call and formats its result. Errors never escape as control flow: they are
// translated into user-facing messages, and only storage faults are logged.
package presenter

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/hpungsan/shelf/internal/command"
	"github.com/hpungsan/shelf/internal/errors"
	"github.com/hpungsan/shelf/internal/item"
	"github.com/hpungsan/shelf/internal/ops"
)

// QuitMessage is the response to QUIT.
const QuitMessage = "Exiting program."

// Presenter holds the storage handle and the quit flag.
type Presenter struct {
	db     *sql.DB
	logger *log.Logger
	quit   bool
}

// New creates a Presenter over db. A nil logger discards output.
func New(db *sql.DB, logger *log.Logger) *Presenter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Presenter{db: db, logger: logger}
}

// Quit reports whether a QUIT command has been processed.
func (p *Presenter) Quit() bool {
	return p.quit
}

// ProcessInput runs one command line and returns the response to print.
func (p *Presenter) ProcessInput(ctx context.Context, line string) string {
	response, _ := p.Execute(ctx, line)
	return response
}

// Execute runs one command line. On failure the response is the user-facing
// message and err is the classified *errors.ShelfError.
func (p *Presenter) Execute(ctx context.Context, line string) (string, error) {
	pc, err := command.Parse(line)
	if err != nil {
		return p.respondError(err)
	}

	h, ok := handlers[pc.Kind]
	if !ok {
		return p.respondError(errors.NewUnknownCommand(pc.Kind.String(), pc.Input))
	}

	response, err := h(ctx, p, pc)
	if err != nil {
		return p.respondError(err)
	}
	return response, nil
}

// handler executes one parsed command.
type handler func(ctx context.Context, p *Presenter, pc *command.ParsedCommand) (string, error)

var handlers = map[command.Kind]handler{
	command.KindCreate:  handleCreate,
	command.KindRead:    handleRead,
	command.KindUpdate:  handleUpdate,
	command.KindDelete:  handleDelete,
	command.KindRestore: handleRestore,
	command.KindHelp:    handleHelp,
	command.KindQuit:    handleQuit,
	command.KindTables:  handleTables,
}

func handleCreate(ctx context.Context, p *Presenter, pc *command.ParsedCommand) (string, error) {
	it, err := ops.Create(ctx, p.db, ops.CreateInput{
		Name:  pc.Create.Name,
		Price: pc.Create.Price,
		Stock: pc.Create.Stock,
	})
	if err != nil {
		return "", err
	}
	return "Created item: " + formatRow(it), nil
}

func handleRead(ctx context.Context, p *Presenter, pc *command.ParsedCommand) (string, error) {
	records, err := ops.Read(ctx, p.db, pc.Table)
	if err != nil {
		return "", err
	}
	return FormatTable(pc.Table, records), nil
}

func handleUpdate(ctx context.Context, p *Presenter, pc *command.ParsedCommand) (string, error) {
	it, err := ops.Update(ctx, p.db, ops.UpdateInput{
		ID:    pc.ID,
		Field: pc.Update.Field,
		Name:  pc.Update.Name,
		Price: pc.Update.Price,
		Stock: pc.Update.Stock,
	})
	if err != nil {
		return "", err
	}
	return "Updated item: " + formatRow(it), nil
}

func handleDelete(ctx context.Context, p *Presenter, pc *command.ParsedCommand) (string, error) {
	d, err := ops.Delete(ctx, p.db, ops.DeleteInput{ID: pc.ID, Comment: pc.Comment})
	if err != nil {
		return "", err
	}
	return "Deleted item: " + formatRow(d), nil
}

func handleRestore(ctx context.Context, p *Presenter, pc *command.ParsedCommand) (string, error) {
	it, err := ops.Restore(ctx, p.db, ops.RestoreInput{ID: pc.ID})
	if err != nil {
		return "", err
	}
	return "Restored item: " + formatRow(it), nil
}

func handleHelp(_ context.Context, _ *Presenter, _ *command.ParsedCommand) (string, error) {
	return HelpText(), nil
}

func handleQuit(_ context.Context, p *Presenter, _ *command.ParsedCommand) (string, error) {
	p.quit = true
	return QuitMessage, nil
}

func handleTables(_ context.Context, _ *Presenter, _ *command.ParsedCommand) (string, error) {
	return item.TableNames(), nil
}

// respondError maps a classified error to its message.
func (p *Presenter) respondError(err error) (string, error) {
	sErr := errors.As(err)

	switch sErr.Code {
	case errors.ErrNotFound:
		return fmt.Sprintf("Item %v does not exist in %v.", sErr.Details["id"], sErr.Details["table"]), sErr
	case errors.ErrUnknownCommand:
		return fmt.Sprintf("Unknown command %q. Enter 'help' for a list of commands.", detail(sErr, "command")), sErr
	case errors.ErrMalformedArguments:
		word := detail(sErr, "command")
		usage := word
		if def, ok := command.Lookup(word); ok {
			usage = def.Usage
		}
		return fmt.Sprintf("Malformed arguments for %q. Usage: %s. Enter 'help' for options.", word, usage), sErr
	case errors.ErrValidation:
		return "Invalid input: " + sErr.Message, sErr
	default:
		p.logger.Printf("storage fault: %s", sErr.Message)
		return "Storage error: " + sErr.Message, sErr
	}
}

func detail(sErr *errors.ShelfError, key string) string {
	s, _ := sErr.Details[key].(string)
	return s
}

// formatRow joins a record's values, dropping the trailing separator left by
// an empty comment.
func formatRow(r item.Record) string {
	return strings.TrimSuffix(strings.Join(r.Values(), item.ValueSeparator), item.ValueSeparator)
}

// FormatTable renders records under a header of table's columns, one row per
// line. An empty table renders as "<table> is empty.".
func FormatTable(table item.Table, records []item.Record) string {
	if len(records) == 0 {
		return fmt.Sprintf("%s is empty.", table)
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(table.Columns(), item.ValueSeparator))
	for _, r := range records {
		lines = append(lines, formatRow(r))
	}
	return strings.Join(lines, "\n")
}

// HelpText lists every command with its usage and summary.
func HelpText() string {
	var b strings.Builder
	b.WriteString("Valid commands:")
	for _, def := range command.Grammar {
		fmt.Fprintf(&b, "\n  %s - %s", def.Usage, def.Summary)
	}
	return b.String()
}
