package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/shelf/internal/config"
	"github.com/hpungsan/shelf/internal/console"
	"github.com/hpungsan/shelf/internal/db"
	"github.com/hpungsan/shelf/internal/errors"
	"github.com/hpungsan/shelf/internal/mcp"
	"github.com/hpungsan/shelf/internal/ops"
	"github.com/hpungsan/shelf/internal/presenter"
	"github.com/hpungsan/shelf/internal/seed"
)

// Exit codes for exec.
const (
	exitFailure = 1
	exitUsage   = 2
)

// appState carries what commands share. The database is opened on first use,
// after global flags are parsed; tests set db and cfg up front.
type appState struct {
	db          *sql.DB
	cfg         *config.Config
	home        string
	in          io.Reader
	out         io.Writer
	logger      *log.Logger
	interactive bool
}

// open resolves the home directory, loads config and opens the database.
// Failure here is fatal to the command.
func (st *appState) open(c *cli.Context) error {
	if st.db != nil {
		if st.cfg == nil {
			st.cfg = config.DefaultConfig()
		}
		return nil
	}

	home, err := config.ResolveHome(c.String("home"))
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	cfg, err := config.Load(home)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load config: %v", err), exitFailure)
	}

	database, err := db.Open(cfg.DBPath(home))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to initialize database: %v", err), exitFailure)
	}
	db.ConfigurePool(database, cfg)

	st.db, st.cfg, st.home = database, cfg, home
	return nil
}

func (st *appState) close() {
	if st.db != nil {
		st.db.Close()
	}
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *appState) *cli.App {
	app := &cli.App{
		Name:    "shelf",
		Usage:   "Inventory command shell",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "home", Usage: "Data directory (default: $SHELF_HOME or ~/.shelf)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return cli.Exit(fmt.Sprintf("unknown command %q; run 'shelf --help' for usage", c.Args().First()), exitUsage)
			}
			return runShell(c, st, "")
		},
		Commands: []*cli.Command{
			shellCmd(st),
			execCmd(st),
			seedCmd(st),
			mcpCmd(st),
		},
		Writer: st.out,
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// shellCmd creates the shell command.
func shellCmd(st *appState) *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Run the interactive command shell (default when no command is given)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "seed", Usage: "Load items from a .json or .toml file before the first prompt"},
		},
		Action: func(c *cli.Context) error {
			return runShell(c, st, c.String("seed"))
		},
	}
}

// execCmd creates the exec command.
func execCmd(st *appState) *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Run one shell command and print its response",
		ArgsUsage: "<command words...>",
		// Command words are passed through untouched, including ones starting with "-"
		SkipFlagParsing: true,
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("a command is required, e.g. shelf exec read items", exitUsage)
			}
			if err := st.open(c); err != nil {
				return err
			}

			p := presenter.New(st.db, st.logger)
			response, err := p.Execute(c.Context, strings.Join(c.Args().Slice(), " "))
			fmt.Fprintln(st.out, response)
			if err != nil {
				return cli.Exit("", exitCode(err))
			}
			return nil
		},
	}
}

// seedCmd creates the seed command.
func seedCmd(st *appState) *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "Load items from a .json or .toml file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "if-empty", Usage: "Skip when either table already has rows"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("exactly one seed file is required", exitUsage)
			}
			if err := st.open(c); err != nil {
				return err
			}

			output, err := loadSeed(c.Context, st, c.Args().First(), c.Bool("if-empty"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(st.out, output)
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(st *appState) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the item tools over MCP (stdio)",
		Action: func(c *cli.Context) error {
			if err := st.open(c); err != nil {
				return err
			}

			for _, name := range mcp.ValidateDisabledTools(st.cfg.DisabledTools) {
				st.logger.Printf("ignoring unknown tool in disabled_tools: %s", name)
			}

			st.logger.Printf("serving MCP on stdio (version %s)", Version)
			if err := mcp.Run(st.db, st.cfg, st.logger, Version); err != nil {
				return cli.Exit(err.Error(), exitFailure)
			}
			return nil
		},
	}
}

// runShell seeds if asked, then runs the read loop until QUIT or end of input.
// Without an explicit seed file, the configured one is loaded into an empty store.
func runShell(c *cli.Context, st *appState, seedPath string) error {
	if err := st.open(c); err != nil {
		return err
	}

	onlyIfEmpty := false
	if seedPath == "" {
		seedPath = st.cfg.SeedPath(st.home)
		onlyIfEmpty = true
	}
	if seedPath != "" {
		if _, err := loadSeed(c.Context, st, seedPath, onlyIfEmpty); err != nil {
			return outputError(err)
		}
	}

	p := presenter.New(st.db, st.logger)
	if err := console.Run(c.Context, st.in, st.out, p, console.Options{
		Prompt:      st.cfg.Prompt,
		Interactive: st.interactive,
	}); err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	return nil
}

// loadSeed reads a seed file and inserts its items.
func loadSeed(ctx context.Context, st *appState, path string, onlyIfEmpty bool) (*ops.SeedOutput, error) {
	inputs, err := seed.Load(path)
	if err != nil {
		return nil, err
	}

	var output *ops.SeedOutput
	if onlyIfEmpty {
		output, err = ops.SeedIfEmpty(ctx, st.db, inputs)
	} else {
		output, err = ops.Seed(ctx, st.db, inputs)
	}
	if err != nil {
		return nil, err
	}

	if output.Skipped {
		st.logger.Printf("seed %s skipped: store is not empty", path)
	} else {
		st.logger.Printf("seeded %d items from %s", output.Inserted, path)
	}
	return output, nil
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if errors.Is(err, errors.ErrUnknownCommand) || errors.Is(err, errors.ErrMalformedArguments) {
		return exitUsage
	}
	return exitFailure
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.ShelfError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), exitCode(err))
	}
	return cli.Exit(err.Error(), exitFailure)
}
