package checks

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/conformhq/conform/pkg/cache"
	"github.com/conformhq/conform/pkg/core"
	"github.com/conformhq/conform/pkg/loader"
	"github.com/conformhq/conform/pkg/runner"
)

// BumpVersionPattern extracts the version from .bumpversion.cfg and
// setup.cfg.
var BumpVersionPattern = regexp.MustCompile(`(?m)^current_version = (\d+\.\d+\.\d+)$`)

// ExtractVersion finds exactly one version occurrence in text. Zero or
// several matches are a fatal input error, never a decision outcome.
func ExtractVersion(pattern *regexp.Regexp, text string) (core.Version, error) {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) != 1 {
		return core.Version{}, fmt.Errorf("%w: %d matches of %q", core.ErrMalformedVersion, len(matches), pattern)
	}
	m := matches[0]
	s := m[0]
	if len(m) > 1 {
		s = m[len(m)-1]
	}
	return core.ParseVersion(s)
}

// VersionCheck names a version-gated file.
type VersionCheck struct {
	// Path is the repo-relative file holding the version.
	Path string
	// Pattern extracts the version; its last capture group (or the whole
	// match) must be "major.minor.patch".
	Pattern *regexp.Regexp
	// Hook scopes the baseline cache (e.g. "bump").
	Hook string
}

// CheckVersions gates the current version in vc.Path against the baseline
// revision. It returns nil when the current version is a valid bump of the
// baseline, and otherwise the patch-bumped baseline the file must move to.
func (c *Config) CheckVersions(ctx context.Context, vc VersionCheck) (*core.Version, error) {
	data, err := c.readFile(vc.Path)
	if err != nil {
		return nil, err
	}
	current, err := ExtractVersion(vc.Pattern, string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", vc.Path, err)
	}

	baseline, err := c.baselineVersion(ctx, vc)
	if err != nil {
		return nil, err
	}

	d := core.Decide(current, baseline)
	if d.Accepted {
		return nil, nil
	}
	return &d.Target, nil
}

// baselineVersion resolves the baseline revision's version of vc.Path,
// consulting the on-disk cache first. A cache write failure is logged, not
// fatal: the baseline was already resolved.
func (c *Config) baselineVersion(ctx context.Context, vc VersionCheck) (core.Version, error) {
	rev := c.BaselineRev
	if rev == "" {
		rev = "origin/master"
	}
	commit, err := c.Git.RevParse(ctx, rev)
	if err != nil {
		return core.Version{}, err
	}

	store, err := cache.New(vc.Hook, c.CacheDir)
	if err != nil {
		return core.Version{}, err
	}
	key := cache.RepoKey(c.Root, commit)

	if s, ok := store.Get(key); ok {
		v, err := core.ParseVersion(s)
		if err == nil {
			return v, nil
		}
		c.logger().Warn("discarding corrupt cache entry", "key", key, "value", s)
	}

	text, err := c.Git.Show(ctx, commit, vc.Path)
	if err != nil {
		return core.Version{}, err
	}
	v, err := ExtractVersion(vc.Pattern, text)
	if err != nil {
		return core.Version{}, fmt.Errorf("%s@%s: %w", vc.Path, rev, err)
	}

	if err := store.Put(key, v.String()); err != nil {
		c.logger().Warn("failed to cache baseline version", "key", key, "error", err)
	}
	return v, nil
}

// Bump gates the project version and, when a bump is required, applies it
// with bump2version and trims the trailing spaces the tool leaves behind.
// It reports whether the file ended up at an accepted version.
func (c *Config) Bump(ctx context.Context, setupCfg bool, run runner.Runner) (bool, error) {
	filename := ".bumpversion.cfg"
	if setupCfg {
		filename = "setup.cfg"
	}

	target, err := c.CheckVersions(ctx, VersionCheck{
		Path:    filename,
		Pattern: BumpVersionPattern,
		Hook:    "bump",
	})
	if err != nil {
		return false, err
	}
	if target == nil {
		return true, nil
	}

	c.logger().Info("version requires bump", "file", filename, "target", target)
	err = run.Run(ctx, "bump2version", "--allow-dirty", "--new-version="+target.String(), "patch")
	if err != nil {
		return false, fmt.Errorf("failed to run bump2version: %w", err)
	}
	if err := c.trimTrailingSpaces(filename); err != nil {
		return false, err
	}
	return true, nil
}

// trimTrailingSpaces strips trailing space characters from every line of a
// repo-relative file. bump2version pads rewritten lines.
func (c *Config) trimTrailingSpaces(name string) error {
	path := c.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return loader.WriteFileAtomic(path, []byte(strings.Join(lines, "\n")), 0o644)
}
