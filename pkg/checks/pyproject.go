package checks

import (
	"context"
	"fmt"

	"github.com/conformhq/conform/pkg/core"
)

// toolTable loads pyproject.toml and returns the named [tool.<name>]
// subtable.
func (c *Config) toolTable(name string) (core.Value, error) {
	pyproject, err := c.loadValue("pyproject.toml")
	if err != nil {
		return core.Value{}, err
	}
	tool, ok := pyproject.Get("tool")
	if !ok {
		return core.Value{}, fmt.Errorf("pyproject.toml: no [tool] table")
	}
	table, ok := tool.Get(name)
	if !ok {
		return core.Value{}, fmt.Errorf("pyproject.toml: no [tool.%s] table", name)
	}
	return table, nil
}

// isDependency reports whether package name is declared under poetry's
// dependencies or dev-dependencies.
func isDependency(pyproject core.Value, name string) bool {
	tool, ok := pyproject.Get("tool")
	if !ok {
		return false
	}
	poetry, ok := tool.Get("poetry")
	if !ok {
		return false
	}
	for _, section := range []string{"dependencies", "dev-dependencies"} {
		if deps, ok := poetry.Get(section); ok {
			if _, ok := deps.Get(name); ok {
				return true
			}
		}
	}
	return false
}

// checkBlack validates [tool.black] against the canonical table.
func checkBlack(ctx context.Context, c *Config) error {
	table, err := c.toolTable("black")
	if err != nil {
		return err
	}
	return c.matchReport("pyproject.toml [tool.black]", table, blackExpected())
}

// checkIsort validates [tool.isort] against the canonical table.
func checkIsort(ctx context.Context, c *Config) error {
	table, err := c.toolTable("isort")
	if err != nil {
		return err
	}
	return c.matchReport("pyproject.toml [tool.isort]", table, isortExpected())
}

// checkPytest validates [tool.pytest.ini_options].
func checkPytest(ctx context.Context, c *Config) error {
	pyproject, err := c.loadValue("pyproject.toml")
	if err != nil {
		return err
	}
	pytest, err := c.toolTable("pytest")
	if err != nil {
		return err
	}
	options, ok := pytest.Get("ini_options")
	if !ok {
		return fmt.Errorf("pyproject.toml: no [tool.pytest.ini_options] table")
	}
	return c.matchReport("pyproject.toml [tool.pytest.ini_options]", options, c.pytestExpected(pyproject))
}

// checkPyproject is the dispatch entry for pyproject.toml: the pytest table
// is only checked when pytest is actually a dependency.
func checkPyproject(ctx context.Context, c *Config) error {
	pyproject, err := c.loadValue("pyproject.toml")
	if err != nil {
		return err
	}
	if !isDependency(pyproject, "pytest") {
		return nil
	}
	return checkPytest(ctx, c)
}

// checkPyright validates pyrightconfig.json against the canonical table.
func checkPyright(ctx context.Context, c *Config) error {
	config, err := c.loadValue("pyrightconfig.json")
	if err != nil {
		return err
	}
	return c.matchReport("pyrightconfig.json", config, pyrightExpected())
}
