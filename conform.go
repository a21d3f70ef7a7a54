package conform

import (
	"context"
	"log/slog"
	"time"

	"github.com/conformhq/conform/pkg/checks"
	"github.com/conformhq/conform/pkg/gitrepo"
	"github.com/conformhq/conform/pkg/remote"
	"github.com/conformhq/conform/pkg/runner"
)

// Failure is a public alias for a per-file check failure.
type Failure = checks.Failure

type options struct {
	root        string
	baseURL     string
	fetcher     remote.Fetcher
	baselineRev string
	cacheDir    string
	logger      *slog.Logger
	runner      runner.Runner
}

// Option configures a conform run.
type Option func(*options)

// WithRoot pins the repository root instead of discovering it via git.
func WithRoot(root string) Option {
	return func(o *options) { o.root = root }
}

// WithRemoteBaseURL points the reference fetcher at a different tree.
func WithRemoteBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithRemote injects a custom reference fetcher.
func WithRemote(f remote.Fetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// WithBaselineRev sets the revision versions are gated against.
// Defaults to origin/master.
func WithBaselineRev(rev string) Option {
	return func(o *options) { o.baselineRev = rev }
}

// WithCacheDir overrides the baseline version cache location.
func WithCacheDir(dir string) Option {
	return func(o *options) { o.cacheDir = dir }
}

// WithLogger sets the logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRunner injects the subprocess runner used to apply bumps.
func WithRunner(r runner.Runner) Option {
	return func(o *options) { o.runner = r }
}

// newConfig resolves options into a checks.Config, discovering the
// repository root when none was pinned.
func newConfig(ctx context.Context, opts []Option) (*checks.Config, *options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	git := gitrepo.NewClient(o.root, o.logger)
	root := o.root
	if root == "" {
		discovered, err := git.Root(ctx)
		if err != nil {
			return nil, nil, err
		}
		root = discovered
		git = gitrepo.NewClient(root, o.logger)
	}

	fetcher := o.fetcher
	if fetcher == nil {
		fetcher = remote.NewHTTPFetcher(o.baseURL)
	}

	return &checks.Config{
		Root:        root,
		Remote:      fetcher,
		Git:         git,
		BaselineRev: o.baselineRev,
		CacheDir:    o.cacheDir,
		Logger:      o.logger,
	}, o, nil
}

// Check runs the registered checks for the given repo-relative filenames.
// One file's failure never stops the others; all failures come back
// together. A non-nil error means the run could not even start.
func Check(ctx context.Context, filenames []string, opts ...Option) ([]Failure, error) {
	cfg, _, err := newConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	return checks.Run(ctx, cfg, filenames), nil
}

// Watch re-runs the checks for filenames whenever one changes, delivering
// each run's failures to onResult. It blocks until ctx is cancelled.
func Watch(ctx context.Context, filenames []string, onResult func([]Failure), opts ...Option) error {
	cfg, _, err := newConfig(ctx, opts)
	if err != nil {
		return err
	}
	return checks.Watch(ctx, cfg, filenames, 200*time.Millisecond, onResult)
}

// Bump gates the project version against the baseline revision and applies
// a patch bump when required. setupCfg reads setup.cfg instead of
// .bumpversion.cfg. It reports whether the file ended up at an accepted
// version.
func Bump(ctx context.Context, setupCfg bool, opts ...Option) (bool, error) {
	cfg, o, err := newConfig(ctx, opts)
	if err != nil {
		return false, err
	}
	run := o.runner
	if run == nil {
		run = &runner.ExecRunner{Dir: cfg.Root, Logger: o.logger}
	}
	return cfg.Bump(ctx, setupCfg, run)
}

// Sync overwrites the named local files with their remote reference copies
// when they are missing or stale.
func Sync(ctx context.Context, names []string, opts ...Option) error {
	cfg, _, err := newConfig(ctx, opts)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := cfg.SyncWithRemote(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
