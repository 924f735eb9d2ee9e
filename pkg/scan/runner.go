package scan

import (
	"context"
	"slices"

	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
	"github.com/wandb/parallel"
)

// Run analyzes all commits and returns the combined findings. Commits are
// scanned concurrently but results keep the supplied commit order, and files
// keep their per-commit order; the ordering is part of the output contract.
// Each goroutine writes its own slot, so results stay positional no matter
// which commit finishes first.
func Run(ctx context.Context, commits []types.Commit, opts Options) []types.Finding {
	maxThreads := opts.MaxThreads
	if maxThreads < 1 {
		maxThreads = 1
	}

	results := make([][]types.Finding, len(commits))
	group := parallel.Limited(ctx, maxThreads)
	for i, commit := range commits {
		group.Go(func(ctx context.Context) {
			results[i] = AnalyzeCommit(ctx, commit, opts)
		})
	}
	group.Wait()

	return slices.Concat(results...)
}
