// Package gitrepo wraps the git commands the checker needs: locating the
// working tree, resolving the baseline revision and reading a file from it.
package gitrepo

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Client executes git in a working directory.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
}

// NewClient creates a git client rooted at workDir. An empty workDir means
// the process working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{WorkDir: workDir, Logger: logger}
}

// Run executes a raw git command and returns its trimmed output.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)
	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}
	return strings.TrimSpace(output), nil
}

// Root returns the absolute path of the working tree top level.
func (c *Client) Root(ctx context.Context) (string, error) {
	return c.Run(ctx, "rev-parse", "--show-toplevel")
}

// RevParse resolves a revision (e.g. "origin/master") to a commit hash.
func (c *Client) RevParse(ctx context.Context, rev string) (string, error) {
	return c.Run(ctx, "rev-parse", rev)
}

// Show returns the contents of path at the given revision.
func (c *Client) Show(ctx context.Context, rev, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "show", rev+":"+path)
	cmd.Dir = c.WorkDir
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", cmd.Args[1:], "dir", c.WorkDir)
	}

	// Show keeps the exact blob bytes; CombinedOutput would mix in stderr.
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git show %s:%s failed: %w", rev, path, err)
	}
	return string(out), nil
}
