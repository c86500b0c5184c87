package main

import (
	goerrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rustyast/rustyast/batch"
	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/parser"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (a *app) colorStderr(cmd *cobra.Command) bool {
	return !a.noColor() && isTerminal(cmd.ErrOrStderr())
}

func (a *app) colorStdout(cmd *cobra.Command) bool {
	return !a.noColor() && isTerminal(cmd.OutOrStdout())
}

// diagnostic renders err the way rustc reports problems, with the source
// line and a caret when the error has a location. A parse failure lists
// every error the parser collected.
func diagnostic(err *errors.RenderError, useColor bool) string {
	f := errors.NewFormatter(useColor)
	var perrs *parser.Errors
	if err.Kind == errors.ParseFailed && goerrors.As(err.Cause, &perrs) && perrs.Count() > 1 {
		return f.FormatMultiple(perrs.ToFormattedMultiple()) + "\n"
	}
	return f.Format(err.ToFormatted()) + "\n"
}

// runBatch renders every source file under dir, printing a header before
// each file's output. Failures are reported as they are found and make the
// command exit with status 1 once all files are done.
func (a *app) runBatch(cmd *cobra.Command, dir string) error {
	runner, err := batch.New(
		batch.WithWorkers(a.v.GetInt("workers")),
		batch.WithRecursive(a.v.GetBool("recursive")),
		batch.WithFailFast(a.v.GetBool("fail-fast")),
		batch.WithLogger(a.log),
		batch.WithRenderOptions(a.renderOptions()...),
	)
	if err != nil {
		return a.fail(cmd, err)
	}
	files, err := runner.Discover(dir)
	if err != nil {
		return a.fail(cmd, err)
	}
	a.log.Info().Str("dir", dir).Int("files", len(files)).Msg("rendering directory")

	results, runErr := runner.Run(cmd.Context(), files)
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	useColor := a.colorStderr(cmd)
	failed, printed := 0, 0
	for _, res := range results {
		switch {
		case res.Skipped:
			continue
		case res.Err != nil:
			failed++
			if re, ok := errors.AsRenderError(res.Err); ok {
				fmt.Fprint(stderr, diagnostic(re, useColor))
			} else {
				fmt.Fprintf(stderr, "%s: %s\n", res.Path, red(res.Err.Error()))
			}
		default:
			if printed > 0 {
				fmt.Fprintln(stdout)
			}
			printed++
			fmt.Fprintf(stdout, "==> %s <==\n", res.Path)
			if _, err := io.WriteString(stdout, res.Output); err != nil {
				return err
			}
		}
	}
	if failed > 0 || runErr != nil {
		a.log.Warn().Int("failed", failed).Int("files", len(files)).Msg("some files could not be rendered")
		return &exitError{code: 1}
	}
	return nil
}
