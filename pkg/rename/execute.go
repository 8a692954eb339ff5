package rename

import (
	"context"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎮 Mode selects whether Execute mutates the filesystem.
type Mode int

const (
	// DryRun reports what would happen without touching anything. This is
	// the default mode everywhere in scriptkit; Apply is strictly opt-in.
	DryRun Mode = iota
	Apply
)

func (m Mode) String() string {
	if m == Apply {
		return "apply"
	}
	return "dry-run"
}

// 📊 Status is the per-entry outcome of an execution.
type Status string

const (
	StatusApplied Status = "applied"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// 💥 FailureReason classifies a failed entry.
type FailureReason string

const (
	ReasonTargetExists     FailureReason = "target_exists"
	ReasonPermissionDenied FailureReason = "permission_denied"
	ReasonIOFailure        FailureReason = "io_failure"
)

// 📋 Result is the outcome for one plan entry. Created by Execute, never
// mutated afterward.
type Result struct {
	Entry  PlanEntry
	Status Status
	Reason FailureReason // set only when Status is StatusFailed
	Err    error         // underlying error, when any
}

// Failed reports whether any result in the batch failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFailed {
			return true
		}
	}
	return false
}

// 🏃 Execute runs the plan. In DryRun mode no filesystem mutation happens at
// all. In Apply mode each entry is an independent, non-transactional rename:
// a failure is recorded and the batch continues with the next entry, and
// entries already applied are never rolled back. The batch is best-effort,
// not atomic.
//
// Before each rename the target is re-checked on disk: a file that appeared
// there after planning (an external write racing this invocation) turns the
// entry into a failed/target_exists result instead of an overwrite.
func Execute(ctx context.Context, plan *Plan, mode Mode) []Result {
	logger := zerolog.Ctx(ctx)
	results := make([]Result, 0, len(plan.Entries))

	for _, entry := range plan.Entries {
		results = append(results, executeEntry(logger, entry, mode))
	}

	return results
}

func executeEntry(logger *zerolog.Logger, entry PlanEntry, mode Mode) Result {
	if entry.Unchanged() {
		return Result{Entry: entry, Status: StatusSkipped}
	}

	if mode == DryRun {
		// Would be applied; reported for display only.
		return Result{Entry: entry, Status: StatusApplied}
	}

	// Fresh-collision check: os.Rename would silently replace an existing
	// target on most platforms, so anything already at the target that is
	// not this entry's own original (a pure case change) fails the entry.
	if _, err := os.Lstat(entry.ProposedPath); err == nil {
		if normalizePath(entry.ProposedPath) != normalizePath(entry.Candidate.Path) {
			logger.Warn().
				Str("from", entry.Candidate.Path).
				Str("to", entry.ProposedPath).
				Msg("target already exists, skipping rename")
			return Result{
				Entry:  entry,
				Status: StatusFailed,
				Reason: ReasonTargetExists,
				Err:    errors.Errorf("target %q already exists", entry.ProposedPath),
			}
		}
	} else if !os.IsNotExist(err) {
		return Result{
			Entry:  entry,
			Status: StatusFailed,
			Reason: ReasonIOFailure,
			Err:    errors.Errorf("checking target: %w", err),
		}
	}

	if err := os.Rename(entry.Candidate.Path, entry.ProposedPath); err != nil {
		reason := ReasonIOFailure
		if errors.Is(err, fs.ErrPermission) {
			reason = ReasonPermissionDenied
		}
		logger.Error().
			Err(err).
			Str("from", entry.Candidate.Path).
			Str("to", entry.ProposedPath).
			Msg("rename failed")
		return Result{
			Entry:  entry,
			Status: StatusFailed,
			Reason: reason,
			Err:    errors.Errorf("renaming file: %w", err),
		}
	}

	logger.Debug().
		Str("from", entry.Candidate.Path).
		Str("to", entry.ProposedPath).
		Msg("renamed")

	return Result{Entry: entry, Status: StatusApplied}
}
