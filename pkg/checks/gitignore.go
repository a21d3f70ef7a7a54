package checks

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// splitIgnoreGroups splits .gitignore lines into groups separated by blank
// lines. Comment lines head a group and are not part of its ordering.
func splitIgnoreGroups(lines []string) [][]string {
	var groups [][]string
	var current []string

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, "#"):
			flush()
		default:
			current = append(current, line)
		}
	}
	flush()
	return groups
}

// checkGitignore requires every pattern group in .gitignore to be sorted.
func checkGitignore(ctx context.Context, c *Config) error {
	data, err := c.readFile(".gitignore")
	if err != nil {
		return err
	}

	lines := strings.Split(strings.Trim(string(data), "\n"), "\n")
	for _, group := range splitIgnoreGroups(lines) {
		sorted := append([]string(nil), group...)
		sort.Strings(sorted)
		for i := range group {
			if group[i] != sorted[i] {
				return fmt.Errorf(".gitignore: unsorted group should be: %s", strings.Join(sorted, ", "))
			}
		}
	}
	return nil
}
