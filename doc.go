// Package conform checks a project's tooling configuration against its
// canonical baseline.
//
// It validates formatter and linter tables, pre-commit hook definitions, CI
// workflow files, .gitignore ordering and version strings, fetching reference
// copies from a remote tree where one exists. Structural comparison is
// subset-with-warnings: configuration may carry extra keys and values (those
// are reported), but anything the baseline requires must be present and
// equal.
//
// Usage:
//
//	// Run the checks registered for the given files.
//	failures, err := conform.Check(ctx, []string{".pre-commit-config.yaml"},
//		conform.WithLogger(logger),
//	)
//
//	// Gate the project version against origin/master and bump if needed.
//	ok, err := conform.Bump(ctx, false)
package conform
