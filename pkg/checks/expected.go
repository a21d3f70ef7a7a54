package checks

import (
	"context"
	"os"
	"strings"

	"github.com/conformhq/conform/pkg/core"
)

// Expected tables are pure data: the canonical settings each tool must
// carry. They are supplied to the matcher as-is, never interpreted here.

func blackExpected() core.Value {
	return core.MustFromAny(map[string]any{
		"line-length":               80,
		"skip-magic-trailing-comma": true,
		"target-version":            []any{"py38"},
	})
}

func isortExpected() core.Value {
	return core.MustFromAny(map[string]any{
		"atomic":                   true,
		"float_to_top":             true,
		"force_single_line":        true,
		"line_length":              80,
		"lines_after_imports":      2,
		"profile":                  "black",
		"remove_redundant_aliases": true,
		"skip_gitignore":           true,
		"src_paths":                []any{"src"},
		"virtual_env":              ".venv/bin/python",
	})
}

func pyrightExpected() core.Value {
	return core.MustFromAny(map[string]any{
		"include":  []any{"src"},
		"venvPath": ".venv",
		"executionEnvironments": []any{
			map[string]any{"root": "src"},
		},
	})
}

// pytestExpected depends on the project layout and its declared
// dependencies, so it is assembled per invocation.
func (c *Config) pytestExpected(pyproject core.Value) core.Value {
	addopts := []any{"-q", "-rsxX", "--color=yes", "--strict-markers"}
	if isDependency(pyproject, "pytest-instafail") {
		addopts = append(addopts, "--instafail")
	}

	expected := map[string]any{
		"addopts":             addopts,
		"minversion":          6.0,
		"xfail_strict":        true,
		"log_level":           "WARNING",
		"log_cli_date_format": "%Y-%m-%d %H:%M:%S",
		"log_cli_format": "[%(asctime)s.%(msecs)03d] [%(levelno)d] [%(name)s:%(funcName)s] " +
			"[%(process)d]\n%(msg)s",
		"log_cli_level": "WARNING",
	}

	if info, err := os.Stat(c.path("src")); err == nil && info.IsDir() {
		expected["testpaths"] = []any{"src/tests"}
		if isDependency(pyproject, "pytest-xdist") {
			expected["looponfailroots"] = []any{"src"}
		}
	}
	return core.MustFromAny(expected)
}

// repoExpectation is the expected shape of one well-known pre-commit repo.
type repoExpectation struct {
	URL string
	// EnabledHooks is the exact hook id set the repo must configure.
	EnabledHooks []string
	// HookArgs maps hook id to its required args.
	HookArgs map[string][]string
	// HookDeps maps hook id to a provider of its required
	// additional_dependencies (the flake8 extension list comes from the
	// remote reference, never from a table here).
	HookDeps map[string]depsProvider
	// ConfigCheck validates the tool's own configuration file.
	ConfigCheck func(ctx context.Context, c *Config) error
}

type depsProvider func(ctx context.Context, c *Config) (core.Value, error)

func flake8Extensions(ctx context.Context, c *Config) (core.Value, error) {
	text, err := c.Remote.Fetch(ctx, "flake8-extensions")
	if err != nil {
		return core.Value{}, err
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return core.Strings(lines...), nil
}

func repoExpectations() []repoExpectation {
	return []repoExpectation{
		{
			URL: "https://github.com/myint/autoflake",
			HookArgs: map[string][]string{
				"autoflake": {
					"--in-place",
					"--remove-all-unused-imports",
					"--remove-duplicate-keys",
					"--remove-unused-variables",
				},
			},
		},
		{
			URL:         "https://github.com/psf/black",
			ConfigCheck: checkBlack,
		},
		{
			URL:         "https://github.com/PyCQA/flake8",
			HookDeps:    map[string]depsProvider{"flake8": flake8Extensions},
			ConfigCheck: checkFlake8,
		},
		{
			URL:         "https://github.com/pre-commit/mirrors-isort",
			ConfigCheck: checkIsort,
		},
		{
			URL: "https://github.com/jumanjihouse/pre-commit-hooks",
			EnabledHooks: []string{
				"script-must-have-extension",
				"script-must-not-have-extension",
			},
		},
		{
			URL: "https://github.com/pre-commit/pre-commit-hooks",
			EnabledHooks: []string{
				"check-case-conflict",
				"check-executables-have-shebangs",
				"check-merge-conflict",
				"check-symlinks",
				"check-vcs-permalinks",
				"destroyed-symlinks",
				"detect-private-key",
				"end-of-file-fixer",
				"fix-byte-order-marker",
				"mixed-line-ending",
				"no-commit-to-branch",
				"trailing-whitespace",
			},
			HookArgs: map[string][]string{
				"mixed-line-ending": {"--fix=lf"},
			},
		},
		{
			URL: "https://github.com/a-ibs/pre-commit-mirrors-elm-format",
			HookArgs: map[string][]string{
				"elmformat": {"--yes"},
			},
		},
		{
			URL: "https://github.com/asottile/pyupgrade",
			HookArgs: map[string][]string{
				"pyupgrade": {"--py39-plus"},
			},
		},
		{
			URL:      "https://github.com/asottile/yesqa",
			HookDeps: map[string]depsProvider{"yesqa": flake8Extensions},
		},
	}
}
