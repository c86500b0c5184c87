package main

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var exit *exitError
		if !goerrors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			os.Exit(1)
		}
		os.Exit(exit.code)
	}
}

// exitError ends the process with code once its diagnostics have already
// been written.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var red = color.New(color.FgRed).SprintFunc()
