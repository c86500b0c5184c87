// Package batch renders many Rust source units concurrently. Paths may name
// files or directories; directories are expanded to the .rs files they
// contain.
package batch

import (
	"context"
	goerrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rustyast/rustyast"
	"github.com/rustyast/rustyast/errors"
)

// SourceExt is the extension of the files picked up from directories.
const SourceExt = ".rs"

// Result is the outcome of rendering one source unit.
type Result struct {
	Path    string
	Output  string
	Err     error
	Skipped bool // not attempted because an earlier unit failed
}

// Failed reports whether the unit was attempted and failed.
func (r Result) Failed() bool {
	return r.Err != nil && !r.Skipped
}

// Runner renders batches of source units.
type Runner struct {
	workers   int
	recursive bool
	failFast  bool
	log       zerolog.Logger
	opts      []rustyast.Option
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets how many units are rendered at once. The default is the
// number of CPUs.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.workers = n
	}
}

// WithRecursive descends into subdirectories when expanding directories.
func WithRecursive(enabled bool) Option {
	return func(r *Runner) {
		r.recursive = enabled
	}
}

// WithFailFast stops scheduling new units after the first failure.
func WithFailFast(enabled bool) Option {
	return func(r *Runner) {
		r.failFast = enabled
	}
}

// WithLogger sets the logger used for progress and failures.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithRenderOptions sets the options applied to every unit.
func WithRenderOptions(opts ...rustyast.Option) Option {
	return func(r *Runner) {
		r.opts = append(r.opts, opts...)
	}
}

// New returns a Runner configured by opts.
func New(opts ...Option) (*Runner, error) {
	r := &Runner{
		workers: runtime.NumCPU(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		return nil, errors.NewConfigError(errors.E2003, "workers must be at least 1, got %d", r.workers)
	}
	return r, nil
}

// Discover expands paths into the list of source files to render. Files are
// kept as given, whatever their extension. Directories contribute their .rs
// files in lexical order, descending into subdirectories only when the
// Runner is recursive.
func (r *Runner) Discover(paths ...string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.NewInputError(errors.E3001, path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := r.scanDir(path)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			r.log.Warn().Str("dir", path).Bool("recursive", r.recursive).Msg("no source files found")
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, &errors.RenderError{
			Kind:    errors.UnreadableInput,
			Code:    errors.E3003,
			Message: errors.E3003.Description(),
		}
	}
	return files, nil
}

func (r *Runner) scanDir(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.NewInputError(errors.E3001, path, err)
		}
		if d.IsDir() {
			if path != root && !r.recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// Run renders each file and returns one Result per file, in the order the
// files were given. The error is nil when every unit rendered. Otherwise it
// aggregates the unit failures, or holds only the first failure when the
// Runner fails fast. Cancelling ctx stops units that have not started.
func (r *Runner) Run(ctx context.Context, files []string) ([]Result, error) {
	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range files {
		results[i].Path = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				results[i].Skipped = true
				return nil
			}
			out, err := rustyast.RenderFile(gctx, path, r.opts...)
			if err != nil {
				if gctx.Err() != nil && isContextErr(err) {
					results[i].Err = err
					results[i].Skipped = true
					return nil
				}
				results[i].Err = err
				r.log.Debug().Err(err).Str("path", path).Msg("render failed")
				if r.failFast {
					return err
				}
				return nil
			}
			results[i].Output = out
			r.log.Debug().Str("path", path).Int("bytes", len(out)).Msg("rendered")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	var merr *multierror.Error
	for _, res := range results {
		if res.Failed() {
			merr = multierror.Append(merr, res.Err)
		}
	}
	return results, merr.ErrorOrNil()
}

func isContextErr(err error) bool {
	return goerrors.Is(err, context.Canceled) || goerrors.Is(err, context.DeadlineExceeded)
}
