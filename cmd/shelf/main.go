package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// isTerminal returns true if both stdin and stdout are terminals.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	st := &appState{
		in:          os.Stdin,
		out:         os.Stdout,
		logger:      log.New(os.Stderr, "shelf: ", log.LstdFlags),
		interactive: isTerminal(),
	}

	app := newCLIApp(st)
	err := app.Run(os.Args)
	st.close()

	if err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		}
		code := 1
		if exitErr, ok := err.(cli.ExitCoder); ok && exitErr.ExitCode() != 0 {
			code = exitErr.ExitCode()
		}
		os.Exit(code)
	}
}
