package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyast/rustyast/errors"
)

type inputKind int

const (
	inputCode inputKind = iota
	inputStdin
	inputFile
	inputDir
)

func (k inputKind) String() string {
	switch k {
	case inputCode:
		return "code"
	case inputStdin:
		return "stdin"
	case inputFile:
		return "file"
	default:
		return "directory"
	}
}

type input struct {
	kind   inputKind
	name   string // file name reported in diagnostics
	source string // for code and stdin
	path   string // for files and directories
}

// selectInput determines what to render. Exactly one of --code, --file,
// --stdin or a path argument must be given.
func (a *app) selectInput(cmd *cobra.Command, args []string) (*input, error) {
	var chosen []string
	if cmd.Flags().Changed("code") || a.v.GetString("code") != "" {
		chosen = append(chosen, "--code")
	}
	if a.v.GetString("file") != "" {
		chosen = append(chosen, "--file")
	}
	if a.v.GetBool("stdin") {
		chosen = append(chosen, "--stdin")
	}
	if len(args) > 0 {
		chosen = append(chosen, "path")
	}
	switch len(chosen) {
	case 0:
		return nil, errors.NewConfigError(errors.E2004, "no input: use --code, --file, --stdin or a path").
			WithHint("run 'rusty-ast --help' for usage")
	case 1:
	default:
		return nil, errors.NewConfigError(errors.E2004, "multiple input sources specified: %v", chosen)
	}

	switch chosen[0] {
	case "--code":
		return &input{kind: inputCode, name: "<code>", source: a.v.GetString("code")}, nil
	case "--stdin":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.NewInputError(errors.E3001, "<stdin>", err)
		}
		return &input{kind: inputStdin, name: "<stdin>", source: string(data)}, nil
	case "--file":
		return &input{kind: inputFile, path: a.v.GetString("file")}, nil
	}
	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewInputError(errors.E3001, path, err)
	}
	if info.IsDir() {
		return &input{kind: inputDir, path: path}, nil
	}
	return &input{kind: inputFile, path: path}, nil
}
