package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conformhq/conform/pkg/core"
	"github.com/conformhq/conform/pkg/remote"
)

const canonicalBlack = `[tool.black]
line-length = 80
skip-magic-trailing-comma = true
target-version = ["py38"]
`

func TestCheckBlack(t *testing.T) {
	t.Run("canonical passes", func(t *testing.T) {
		c := newTestConfig(t, remote.StaticFetcher{})
		writeTree(t, c.Root, map[string]string{"pyproject.toml": canonicalBlack})
		require.NoError(t, checkBlack(context.Background(), c))
	})

	t.Run("extra setting warns only", func(t *testing.T) {
		c := newTestConfig(t, remote.StaticFetcher{})
		writeTree(t, c.Root, map[string]string{"pyproject.toml": canonicalBlack + "preview = true\n"})
		require.NoError(t, checkBlack(context.Background(), c))
	})

	t.Run("wrong line length fails", func(t *testing.T) {
		c := newTestConfig(t, remote.StaticFetcher{})
		writeTree(t, c.Root, map[string]string{"pyproject.toml": `[tool.black]
line-length = 88
skip-magic-trailing-comma = true
target-version = ["py38"]
`})
		err := checkBlack(context.Background(), c)
		var matchErr *core.MatchError
		require.ErrorAs(t, err, &matchErr)
		require.Equal(t, core.ValueMismatch, matchErr.Kind)
	})

	t.Run("missing table fails", func(t *testing.T) {
		c := newTestConfig(t, remote.StaticFetcher{})
		writeTree(t, c.Root, map[string]string{"pyproject.toml": "[tool.isort]\nprofile = \"black\"\n"})
		require.ErrorContains(t, checkBlack(context.Background(), c), "[tool.black]")
	})
}

func TestIsDependency(t *testing.T) {
	pyproject := core.MustFromAny(map[string]any{
		"tool": map[string]any{
			"poetry": map[string]any{
				"dependencies":     map[string]any{"python": "^3.9", "requests": "*"},
				"dev-dependencies": map[string]any{"pytest": "^7.0"},
			},
		},
	})

	require.True(t, isDependency(pyproject, "requests"))
	require.True(t, isDependency(pyproject, "pytest"))
	require.False(t, isDependency(pyproject, "pytest-xdist"))
	require.False(t, isDependency(core.Map(nil), "pytest"))
}

func TestCheckPyproject(t *testing.T) {
	withPytest := `[tool.poetry.dev-dependencies]
pytest = "^7.0"

[tool.pytest.ini_options]
addopts = ["-q", "-rsxX", "--color=yes", "--strict-markers"]
minversion = 6.0
xfail_strict = true
log_level = "WARNING"
log_cli_date_format = "%Y-%m-%d %H:%M:%S"
log_cli_format = "[%(asctime)s.%(msecs)03d] [%(levelno)d] [%(name)s:%(funcName)s] [%(process)d]\n%(msg)s"
log_cli_level = "WARNING"
`

	t.Run("canonical pytest table passes", func(t *testing.T) {
		c := newTestConfig(t, remote.StaticFetcher{})
		writeTree(t, c.Root, map[string]string{"pyproject.toml": withPytest})
		require.NoError(t, checkPyproject(context.Background(), c))
	})

	t.Run("no pytest dependency skips", func(t *testing.T) {
		c := newTestConfig(t, remote.StaticFetcher{})
		writeTree(t, c.Root, map[string]string{"pyproject.toml": "[tool.poetry.dependencies]\npython = \"^3.9\"\n"})
		require.NoError(t, checkPyproject(context.Background(), c))
	})

	t.Run("missing addopts entry fails", func(t *testing.T) {
		broken := `[tool.poetry.dev-dependencies]
pytest = "^7.0"

[tool.pytest.ini_options]
addopts = ["-q"]
minversion = 6.0
xfail_strict = true
log_level = "WARNING"
log_cli_date_format = "%Y-%m-%d %H:%M:%S"
log_cli_format = "x"
log_cli_level = "WARNING"
`
		c := newTestConfig(t, remote.StaticFetcher{})
		writeTree(t, c.Root, map[string]string{"pyproject.toml": broken})
		require.Error(t, checkPyproject(context.Background(), c))
	})

	t.Run("src layout requires testpaths", func(t *testing.T) {
		c := newTestConfig(t, remote.StaticFetcher{})
		writeTree(t, c.Root, map[string]string{
			"pyproject.toml": withPytest,
			"src/tests/keep": "",
		})
		err := checkPyproject(context.Background(), c)
		var matchErr *core.MatchError
		require.ErrorAs(t, err, &matchErr)
		require.Equal(t, core.MissingKey, matchErr.Kind)
		require.Equal(t, "testpaths", matchErr.Key)
	})
}

func TestCheckIsort(t *testing.T) {
	canonical := `[tool.isort]
atomic = true
float_to_top = true
force_single_line = true
line_length = 80
lines_after_imports = 2
profile = "black"
remove_redundant_aliases = true
skip_gitignore = true
src_paths = ["src"]
virtual_env = ".venv/bin/python"
`
	c := newTestConfig(t, remote.StaticFetcher{})
	writeTree(t, c.Root, map[string]string{"pyproject.toml": canonical})
	require.NoError(t, checkIsort(context.Background(), c))
}
