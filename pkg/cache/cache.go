// Package cache persists resolved baseline versions so the checker only
// reads the baseline file out of version control once per commit.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conformhq/conform/pkg/loader"
)

// Store is an on-disk string cache keyed by an opaque key. Entries live
// under <user cache dir>/conform/<scope>/<key>.
type Store struct {
	root string
}

// New creates a store scoped to one hook name (e.g. "bump"). The base
// directory defaults to the user cache dir; baseDir overrides it for tests.
func New(scope, baseDir string) (*Store, error) {
	if baseDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate cache dir: %w", err)
		}
		baseDir = dir
	}
	return &Store{root: filepath.Join(baseDir, "conform", scope)}, nil
}

// RepoKey derives the cache key for a working tree and commit: the md5 of
// the absolute tree path keeps unrelated checkouts of the same project
// apart, the commit pins the baseline revision.
func RepoKey(workTree, commit string) string {
	sum := md5.Sum([]byte(filepath.ToSlash(workTree)))
	return filepath.Join(hex.EncodeToString(sum[:]), commit)
}

// Get returns the cached value for key. A miss is (value "", ok false),
// never an error; a corrupt or unreadable entry counts as a miss.
func (s *Store) Get(key string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.root, key))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// Put stores value under key, creating parent directories as needed. The
// write is atomic so concurrent checkers racing on the same key cannot
// corrupt the entry.
func (s *Store) Put(key, value string) error {
	path := filepath.Join(s.root, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	return loader.WriteFileAtomic(path, []byte(value), 0o644)
}
