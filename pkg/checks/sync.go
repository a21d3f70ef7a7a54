package checks

import (
	"context"
	"os"
	"path/filepath"

	"github.com/conformhq/conform/pkg/loader"
)

// SyncWithRemote makes the local copy of name byte-for-byte identical to
// the remote reference. This is the only path that rewrites a file without
// asking: a missing or stale file is replaced wholesale, never merged.
func (c *Config) SyncWithRemote(ctx context.Context, name string) error {
	want, err := c.Remote.Fetch(ctx, name)
	if err != nil {
		return err
	}

	path := c.path(name)
	local, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		c.logger().Info("file not found; creating", "file", name)
	case err != nil:
		return err
	case string(local) == want:
		return nil
	default:
		c.logger().Info("file is out-of-sync; updating", "file", name)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return loader.WriteFileAtomic(path, []byte(want), 0o644)
}

// checkFlake8 keeps .flake8 identical to the reference copy.
func checkFlake8(ctx context.Context, c *Config) error {
	return c.SyncWithRemote(ctx, ".flake8")
}
