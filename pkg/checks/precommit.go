package checks

import (
	"context"
	"fmt"
	"sort"

	"github.com/conformhq/conform/pkg/core"
)

// preCommitRepos reshapes .pre-commit-config.yaml into a mapping of repo
// URL to its hooks, each hook keyed by id with the id field stripped.
func (c *Config) preCommitRepos() (core.Value, error) {
	config, err := c.loadValue(".pre-commit-config.yaml")
	if err != nil {
		return core.Value{}, err
	}
	repos, ok := config.Get("repos")
	if !ok {
		return core.Value{}, fmt.Errorf(".pre-commit-config.yaml: no repos list")
	}

	out := map[string]core.Value{}
	for _, entry := range repos.Items() {
		url, ok := entry.Get("repo")
		if !ok {
			return core.Value{}, fmt.Errorf(".pre-commit-config.yaml: repo entry without repo url")
		}
		urlStr, ok := url.Raw().(string)
		if !ok {
			return core.Value{}, fmt.Errorf(".pre-commit-config.yaml: repo url is not a string")
		}

		hooks, err := reshapeByID(entry, "hooks", "id")
		if err != nil {
			return core.Value{}, fmt.Errorf(".pre-commit-config.yaml: repo %s: %w", urlStr, err)
		}
		out[urlStr] = hooks
	}
	return core.Map(out), nil
}

// reshapeByID turns a list of mappings under listKey into a mapping keyed by
// each entry's idKey, with the id field removed from the entry.
func reshapeByID(parent core.Value, listKey, idKey string) (core.Value, error) {
	list, ok := parent.Get(listKey)
	if !ok {
		return core.Value{}, fmt.Errorf("no %s list", listKey)
	}

	out := map[string]core.Value{}
	for _, entry := range list.Items() {
		id, ok := entry.Get(idKey)
		if !ok {
			return core.Value{}, fmt.Errorf("%s entry without %s", listKey, idKey)
		}
		idStr, ok := id.Raw().(string)
		if !ok {
			return core.Value{}, fmt.Errorf("%s entry %s is not a string", listKey, idKey)
		}

		rest := map[string]core.Value{}
		for k, v := range entry.Fields() {
			if k != idKey {
				rest[k] = v
			}
		}
		out[idStr] = core.Map(rest)
	}
	return core.Map(out), nil
}

// checkRepo validates one well-known repo's configuration, if present. A
// repo the project does not use is skipped, not failed.
func (c *Config) checkRepo(ctx context.Context, repos core.Value, exp repoExpectation) error {
	repo, ok := repos.Get(exp.URL)
	if !ok {
		return nil
	}

	if exp.EnabledHooks != nil {
		if err := c.matchReport(exp.URL, repo, core.Strings(exp.EnabledHooks...)); err != nil {
			return err
		}
	}
	if exp.HookArgs != nil {
		if err := c.checkHookFields(exp.URL, repo, exp.HookArgs, "args"); err != nil {
			return err
		}
	}
	for _, hook := range sortedKeys(exp.HookDeps) {
		deps, err := exp.HookDeps[hook](ctx, c)
		if err != nil {
			return fmt.Errorf("%s: %w", exp.URL, err)
		}
		if err := c.checkHookField(exp.URL, repo, hook, "additional_dependencies", deps); err != nil {
			return err
		}
	}
	if exp.ConfigCheck != nil {
		return exp.ConfigCheck(ctx, c)
	}
	return nil
}

// checkHookFields validates one field of several hooks against expected
// values.
func (c *Config) checkHookFields(repoURL string, repo core.Value, expected map[string][]string, field string) error {
	for _, hook := range sortedKeys(expected) {
		if err := c.checkHookField(repoURL, repo, hook, field, core.Strings(expected[hook]...)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) checkHookField(repoURL string, repo core.Value, hook, field string, expected core.Value) error {
	h, ok := repo.Get(hook)
	if !ok {
		return fmt.Errorf("%s: missing hook: %s", repoURL, hook)
	}
	current, ok := h.Get(field)
	if !ok {
		return fmt.Errorf("%s: hook %s: missing key: %s", repoURL, hook, field)
	}
	return c.matchReport(fmt.Sprintf("%s hook %s %s", repoURL, hook, field), current, expected)
}

// checkPreCommitConfig validates .pre-commit-config.yaml against every
// well-known repo expectation.
func checkPreCommitConfig(ctx context.Context, c *Config) error {
	repos, err := c.preCommitRepos()
	if err != nil {
		return err
	}
	for _, exp := range repoExpectations() {
		if err := c.checkRepo(ctx, repos, exp); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
