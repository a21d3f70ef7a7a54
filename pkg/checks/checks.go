// Package checks orchestrates the individual settings checks: it maps file
// names to check functions, loads the local configuration, and compares it
// against expected tables or the remote reference copy.
package checks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/conformhq/conform/pkg/core"
	"github.com/conformhq/conform/pkg/gitrepo"
	"github.com/conformhq/conform/pkg/loader"
	"github.com/conformhq/conform/pkg/remote"
)

// Config carries the collaborators every check needs.
type Config struct {
	// Root is the repository root all file paths are resolved against.
	Root string
	// Remote serves the canonical reference files.
	Remote remote.Fetcher
	// Git reads baseline data out of version control.
	Git *gitrepo.Client
	// BaselineRev is the revision versions are gated against.
	BaselineRev string
	// CacheDir overrides the user cache dir (tests).
	CacheDir string
	// Logger receives warnings and progress; nil means slog.Default.
	Logger *slog.Logger
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Config) path(name string) string {
	return filepath.Join(c.Root, filepath.FromSlash(name))
}

// readFile reads a repo-relative file.
func (c *Config) readFile(name string) ([]byte, error) {
	return os.ReadFile(c.path(name))
}

// loadValue reads and parses a repo-relative configuration file.
func (c *Config) loadValue(name string) (core.Value, error) {
	data, err := c.readFile(name)
	if err != nil {
		return core.Value{}, err
	}
	l, err := loader.ForPath(name)
	if err != nil {
		return core.Value{}, err
	}
	v, err := l.Load(data)
	if err != nil {
		return core.Value{}, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// matchReport runs the structural matcher, logs its warnings, and turns a
// failure into an error naming the offending file.
func (c *Config) matchReport(name string, actual, expected core.Value) error {
	r := core.Match(actual, expected)
	for _, w := range r.Warnings {
		c.logger().Warn(w.String(), "file", name)
	}
	if r.Err != nil {
		return fmt.Errorf("%s: %w", name, r.Err)
	}
	return nil
}

// Check is one registered settings check.
type Check struct {
	Name string
	// Pattern is a doublestar pattern matched against the repo-relative
	// path handed to Run.
	Pattern string
	Fn      func(ctx context.Context, c *Config) error
}

// Registry returns the built-in checks in dispatch order.
func Registry() []Check {
	return []Check{
		{Name: "flake8", Pattern: "**/.flake8", Fn: checkFlake8},
		{Name: "gitignore", Pattern: "**/.gitignore", Fn: checkGitignore},
		{Name: "pre-commit-config", Pattern: "**/.pre-commit-config.yaml", Fn: checkPreCommitConfig},
		{Name: "workflow-pull-request", Pattern: "**/workflows/pull-request.yml", Fn: checkWorkflowPullRequest},
		{Name: "workflow-push", Pattern: "**/workflows/push.yml", Fn: checkWorkflowPush},
		{Name: "pyproject", Pattern: "**/pyproject.toml", Fn: checkPyproject},
		{Name: "pyrightconfig", Pattern: "**/pyrightconfig.json", Fn: checkPyright},
	}
}

// Failure ties a check failure to the file that triggered it.
type Failure struct {
	File string
	Err  error
}

func (f Failure) Error() string { return fmt.Sprintf("%s: %v", f.File, f.Err) }

func (f Failure) Unwrap() error { return f.Err }

// Run dispatches each filename to its registered check. A failing check
// never stops the others; all failures are returned together.
func Run(ctx context.Context, c *Config, filenames []string) []Failure {
	var failures []Failure
	for _, name := range filenames {
		rel := filepath.ToSlash(name)
		matched := false
		for _, chk := range Registry() {
			ok, err := doublestar.Match(chk.Pattern, rel)
			if err != nil || !ok {
				continue
			}
			matched = true
			c.logger().Debug("running check", "check", chk.Name, "file", rel)
			if err := chk.Fn(ctx, c); err != nil {
				failures = append(failures, Failure{File: rel, Err: err})
			}
			break
		}
		if !matched {
			c.logger().Debug("no check registered", "file", rel)
		}
	}
	return failures
}
