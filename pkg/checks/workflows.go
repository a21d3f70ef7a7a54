package checks

import (
	"context"
	"fmt"

	"github.com/conformhq/conform/pkg/core"
	"github.com/conformhq/conform/pkg/loader"
)

const (
	workflowPullRequest = ".github/workflows/pull-request.yml"
	workflowPush        = ".github/workflows/push.yml"
)

// checkWorkflowPullRequest compares the pull-request workflow against the
// reference copy section by section. Projects may carry extra jobs, but the
// shared sections must structurally match.
func checkWorkflowPullRequest(ctx context.Context, c *Config) error {
	local, err := c.loadValue(workflowPullRequest)
	if err != nil {
		return err
	}

	text, err := c.Remote.Fetch(ctx, workflowPullRequest)
	if err != nil {
		return err
	}
	ref, err := (&loader.YAMLLoader{}).Load([]byte(text))
	if err != nil {
		return fmt.Errorf("%s (remote): %w", workflowPullRequest, err)
	}

	for _, section := range []string{"name", "on"} {
		if err := c.matchWorkflowSection(local, ref, section); err != nil {
			return err
		}
	}

	localJobs, ok := local.Get("jobs")
	if !ok {
		return fmt.Errorf("%s: missing key: jobs", workflowPullRequest)
	}
	refJobs, ok := ref.Get("jobs")
	if !ok {
		return fmt.Errorf("%s (remote): missing key: jobs", workflowPullRequest)
	}

	if err := c.matchWorkflowSection(localJobs, refJobs, "pre-commit"); err != nil {
		return err
	}
	// pytest is optional in the project; when present it must match.
	if _, ok := localJobs.Get("pytest"); ok {
		if err := c.matchWorkflowSection(localJobs, refJobs, "pytest"); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) matchWorkflowSection(local, ref core.Value, key string) error {
	want, ok := ref.Get(key)
	if !ok {
		return fmt.Errorf("%s (remote): missing key: %s", workflowPullRequest, key)
	}
	got, ok := local.Get(key)
	if !ok {
		return fmt.Errorf("%s: missing key: %s", workflowPullRequest, key)
	}
	return c.matchReport(fmt.Sprintf("%s %s", workflowPullRequest, key), got, want)
}

// checkWorkflowPush keeps the push workflow identical to the reference.
func checkWorkflowPush(ctx context.Context, c *Config) error {
	return c.SyncWithRemote(ctx, workflowPush)
}
