package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rustyast/rustyast"
	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/render"
)

const envPrefix = "RUSTY_AST"

// app holds the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	log     zerolog.Logger
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zerolog.Nop()}
	cmd := &cobra.Command{
		Use:   "rusty-ast [path]",
		Short: "Print the syntax tree of Rust source code",
		Long: `Print the syntax tree of Rust source code as an indented outline or JSON.

The source is given with exactly one of --code, --file, --stdin or a path
argument. A directory path renders every .rs file it contains.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.run,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.rusty-ast.yaml)")
	pf.Bool("no-color", false, "disable colored output")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")

	f := cmd.Flags()
	f.StringP("code", "c", "", "Rust code to render")
	f.StringP("file", "f", "", "Rust file to render")
	f.Bool("stdin", false, "read Rust code from stdin")
	f.StringP("format", "o", string(render.FormatText), "output format (text or json)")
	f.IntP("indent", "i", render.DefaultIndent, "spaces per nesting level")
	f.BoolP("recursive", "r", false, "descend into subdirectories")
	f.Bool("compact", false, "print JSON on a single line")
	f.Bool("color", false, "color node labels in text output")
	f.Int("workers", runtime.NumCPU(), "files rendered concurrently")
	f.Bool("fail-fast", false, "stop at the first file that fails")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text"}, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(a.versionCmd())
	return cmd
}

// setup loads configuration and logging before any command runs. Flags take
// precedence over RUSTY_AST_* environment variables, which take precedence
// over the config file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".rusty-ast")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || a.cfgFile != "" {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	log, err := newLogger(cmd.ErrOrStderr(), a.v.GetString("log-level"), a.noColor())
	if err != nil {
		return err
	}
	a.log = log
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug().Str("path", used).Msg("loaded config")
	}
	return nil
}

func (a *app) noColor() bool {
	return a.v.GetBool("no-color")
}

func (a *app) renderOptions() []rustyast.Option {
	return []rustyast.Option{
		rustyast.WithFormat(render.Format(a.v.GetString("format"))),
		rustyast.WithIndent(a.v.GetInt("indent")),
		rustyast.WithCompactJSON(a.v.GetBool("compact")),
		rustyast.WithColor(a.v.GetBool("color") && !a.noColor()),
	}
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	in, err := a.selectInput(cmd, args)
	if err != nil {
		return a.fail(cmd, err)
	}
	ctx := cmd.Context()
	opts := a.renderOptions()

	switch in.kind {
	case inputDir:
		return a.runBatch(cmd, in.path)
	case inputFile:
		a.log.Debug().Str("path", in.path).Msg("rendering file")
		out, err := rustyast.RenderFile(ctx, in.path, opts...)
		if err != nil {
			return a.fail(cmd, err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	default:
		a.log.Debug().Str("source", in.kind.String()).Int("bytes", len(in.source)).Msg("rendering")
		out, err := rustyast.Render(ctx, in.source, append(opts, rustyast.WithFilename(in.name))...)
		if err != nil {
			return a.fail(cmd, err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}
}

// fail reports err on stderr, as a diagnostic when it carries one, and
// returns the error that sets the exit status.
func (a *app) fail(cmd *cobra.Command, err error) error {
	if re, ok := errors.AsRenderError(err); ok {
		fmt.Fprint(cmd.ErrOrStderr(), diagnostic(re, a.colorStderr(cmd)))
		return &exitError{code: 1}
	}
	return err
}
