// Package console runs the read-eval-print loop of the interactive shell.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hpungsan/shelf/internal/item"
	"github.com/hpungsan/shelf/internal/presenter"
)

// MaxLineSize bounds a single input line.
const MaxLineSize = 1 << 20

// Options controls what the loop prints besides responses.
type Options struct {
	// Prompt is printed before each line when Interactive is set.
	Prompt string

	// Interactive enables the welcome banner and the prompt.
	Interactive bool
}

// Banner is printed once when an interactive session starts.
func Banner() string {
	return "Welcome to shelf, the inventory command shell.\n\n" +
		presenter.HelpText() + "\n\n" +
		"Tables: " + item.TableNames()
}

// Run reads commands from in until QUIT, end of input, or ctx is done,
// writing each response to out. Blank lines are skipped.
func Run(ctx context.Context, in io.Reader, out io.Writer, p *presenter.Presenter, opts Options) error {
	if opts.Interactive {
		if _, err := fmt.Fprintln(out, Banner()); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if opts.Interactive {
			if _, err := fmt.Fprint(out, opts.Prompt); err != nil {
				return err
			}
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if _, err := fmt.Fprintln(out, p.ProcessInput(ctx, line)); err != nil {
			return err
		}
		if p.Quit() {
			return nil
		}
	}
}
