package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conformhq/conform/pkg/remote"
)

func TestSplitIgnoreGroups(t *testing.T) {
	lines := []string{
		"# build artifacts",
		"dist/",
		"out/",
		"",
		"*.log",
		"*.tmp",
		"# editors",
		".idea/",
		".vscode/",
	}

	groups := splitIgnoreGroups(lines)
	require.Equal(t, [][]string{
		{"dist/", "out/"},
		{"*.log", "*.tmp"},
		{".idea/", ".vscode/"},
	}, groups)
}

func TestCheckGitignore(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ok      bool
	}{
		{"sorted groups", "a\nb\n\nx\nz\n", true},
		{"unsorted group", "b\na\n", false},
		{"unsorted later group", "a\nb\n\nz\ny\n", false},
		{"comments reset ordering", "z/\n# next\na/\n", true},
		{"empty file", "\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConfig(t, remote.StaticFetcher{})
			writeTree(t, c.Root, map[string]string{".gitignore": tt.content})

			err := checkGitignore(context.Background(), c)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, "unsorted group")
			}
		})
	}
}
