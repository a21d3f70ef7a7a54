package checks

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conformhq/conform/pkg/core"
	"github.com/conformhq/conform/pkg/remote"
)

func TestSyncWithRemote(t *testing.T) {
	const reference = "[flake8]\nignore = E203,W503\nmax-line-length = 88\n"
	ref := remote.StaticFetcher{".flake8": reference}
	ctx := context.Background()

	t.Run("creates missing file", func(t *testing.T) {
		c := newTestConfig(t, ref)
		require.NoError(t, c.SyncWithRemote(ctx, ".flake8"))

		data, err := os.ReadFile(c.path(".flake8"))
		require.NoError(t, err)
		require.Equal(t, reference, string(data))
	})

	t.Run("replaces stale file", func(t *testing.T) {
		c := newTestConfig(t, ref)
		writeTree(t, c.Root, map[string]string{".flake8": "[flake8]\nignore = E203\n"})

		require.NoError(t, c.SyncWithRemote(ctx, ".flake8"))
		data, err := os.ReadFile(c.path(".flake8"))
		require.NoError(t, err)
		require.Equal(t, reference, string(data))
	})

	t.Run("leaves identical file alone", func(t *testing.T) {
		c := newTestConfig(t, ref)
		writeTree(t, c.Root, map[string]string{".flake8": reference})

		info, err := os.Stat(c.path(".flake8"))
		require.NoError(t, err)

		require.NoError(t, c.SyncWithRemote(ctx, ".flake8"))

		after, err := os.Stat(c.path(".flake8"))
		require.NoError(t, err)
		require.Equal(t, info.ModTime(), after.ModTime())
	})

	t.Run("creates nested directories", func(t *testing.T) {
		nested := remote.StaticFetcher{".github/workflows/push.yml": "name: push\n"}
		c := newTestConfig(t, nested)

		require.NoError(t, c.SyncWithRemote(ctx, ".github/workflows/push.yml"))
		data, err := os.ReadFile(c.path(".github/workflows/push.yml"))
		require.NoError(t, err)
		require.Equal(t, "name: push\n", string(data))
	})

	t.Run("unreachable remote fails", func(t *testing.T) {
		c := newTestConfig(t, remote.StaticFetcher{})
		require.ErrorIs(t, c.SyncWithRemote(ctx, ".flake8"), core.ErrRemoteUnavailable)
	})
}
