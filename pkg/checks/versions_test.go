package checks

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conformhq/conform/pkg/core"
	"github.com/conformhq/conform/pkg/gitrepo"
	"github.com/conformhq/conform/pkg/remote"
)

func TestExtractVersion(t *testing.T) {
	pattern := BumpVersionPattern

	tests := []struct {
		name    string
		text    string
		want    core.Version
		wantErr bool
	}{
		{
			name: "single match",
			text: "[bumpversion]\ncurrent_version = 1.2.3\n",
			want: core.Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:    "no match",
			text:    "[bumpversion]\n",
			wantErr: true,
		},
		{
			name:    "several matches",
			text:    "current_version = 1.2.3\ncurrent_version = 1.2.4\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVersion(pattern, tt.text)
			if tt.wantErr {
				require.ErrorIs(t, err, core.ErrMalformedVersion)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractVersionWholeMatchPattern(t *testing.T) {
	v, err := ExtractVersion(regexp.MustCompile(`\d+\.\d+\.\d+`), "version 2.0.1 here")
	require.NoError(t, err)
	require.Equal(t, core.Version{Major: 2, Minor: 0, Patch: 1}, v)
}

// versionRepo builds a git repo whose HEAD holds .bumpversion.cfg at
// baseline, then rewrites the working copy to current.
func versionRepo(t *testing.T, baseline, current string) *Config {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	git := gitrepo.NewClient(dir, nil)
	ctx := context.Background()

	run := func(args ...string) {
		t.Helper()
		out, err := git.Run(ctx, args...)
		require.NoError(t, err, out)
	}
	write := func(version string) {
		t.Helper()
		content := "[bumpversion]\ncurrent_version = " + version + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".bumpversion.cfg"), []byte(content), 0o644))
	}

	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
	write(baseline)
	run("add", ".bumpversion.cfg")
	run("commit", "-m", "baseline")
	write(current)

	return &Config{
		Root:        dir,
		Remote:      remote.StaticFetcher{},
		Git:         git,
		BaselineRev: "HEAD",
		CacheDir:    t.TempDir(),
	}
}

func TestCheckVersionsAccepted(t *testing.T) {
	for _, current := range []string{"1.2.4", "1.3.0", "2.0.0"} {
		t.Run(current, func(t *testing.T) {
			c := versionRepo(t, "1.2.3", current)

			target, err := c.CheckVersions(context.Background(), VersionCheck{
				Path:    ".bumpversion.cfg",
				Pattern: BumpVersionPattern,
				Hook:    "bump",
			})
			require.NoError(t, err)
			require.Nil(t, target)
		})
	}
}

func TestCheckVersionsRequiresBump(t *testing.T) {
	for _, current := range []string{"1.2.3", "5.0.0", "1.3.1"} {
		t.Run(current, func(t *testing.T) {
			c := versionRepo(t, "1.2.3", current)

			target, err := c.CheckVersions(context.Background(), VersionCheck{
				Path:    ".bumpversion.cfg",
				Pattern: BumpVersionPattern,
				Hook:    "bump",
			})
			require.NoError(t, err)
			require.NotNil(t, target)
			require.Equal(t, core.Version{Major: 1, Minor: 2, Patch: 4}, *target)
		})
	}
}

func TestCheckVersionsUsesCache(t *testing.T) {
	c := versionRepo(t, "1.2.3", "1.2.4")
	ctx := context.Background()
	vc := VersionCheck{Path: ".bumpversion.cfg", Pattern: BumpVersionPattern, Hook: "bump"}

	commit, err := c.Git.RevParse(ctx, "HEAD")
	require.NoError(t, err)

	_, err = c.CheckVersions(ctx, vc)
	require.NoError(t, err)

	// Second run must hit the cache. Point git at an empty repository that
	// can still resolve the raw hash but no longer holds the baseline blob:
	// only a cache hit lets the check succeed.
	emptyDir := t.TempDir()
	empty := gitrepo.NewClient(emptyDir, nil)
	_, err = empty.Run(ctx, "init")
	require.NoError(t, err)
	c.Git = empty
	c.BaselineRev = commit

	target, err := c.CheckVersions(ctx, vc)
	require.NoError(t, err)
	require.Nil(t, target)
}

func TestCheckVersionsMalformed(t *testing.T) {
	c := versionRepo(t, "1.2.3", "1.2.4")
	require.NoError(t, os.WriteFile(filepath.Join(c.Root, ".bumpversion.cfg"), []byte("nothing here\n"), 0o644))

	_, err := c.CheckVersions(context.Background(), VersionCheck{
		Path:    ".bumpversion.cfg",
		Pattern: BumpVersionPattern,
		Hook:    "bump",
	})
	require.ErrorIs(t, err, core.ErrMalformedVersion)
}

// recordingRunner captures the command it was asked to run.
type recordingRunner struct {
	name string
	args []string
	err  error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func TestBumpAccepted(t *testing.T) {
	c := versionRepo(t, "1.2.3", "1.3.0")
	run := &recordingRunner{}

	ok, err := c.Bump(context.Background(), false, run)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, run.name, "no subprocess for an accepted version")
}

func TestBumpAppliesTarget(t *testing.T) {
	c := versionRepo(t, "1.2.3", "1.2.3")
	run := &recordingRunner{}

	ok, err := c.Bump(context.Background(), false, run)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "bump2version", run.name)
	require.Equal(t, []string{"--allow-dirty", "--new-version=1.2.4", "patch"}, run.args)
}

func TestBumpTrimsTrailingSpaces(t *testing.T) {
	c := versionRepo(t, "1.2.3", "1.2.3")
	path := filepath.Join(c.Root, ".bumpversion.cfg")
	require.NoError(t, os.WriteFile(path, []byte("[bumpversion]  \ncurrent_version = 1.2.3\n"), 0o644))

	ok, err := c.Bump(context.Background(), false, &recordingRunner{})
	require.NoError(t, err)
	require.True(t, ok)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[bumpversion]\ncurrent_version = 1.2.3\n", string(data))
}
