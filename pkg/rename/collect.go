package rename

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 CollectOptions configures candidate enumeration.
type CollectOptions struct {
	// Recursive descends into subdirectories.
	Recursive bool
	// Ignore holds doublestar glob patterns matched against the path
	// relative to root (slash-separated). Matching files are excluded.
	Ignore []string
}

// 📂 Collect enumerates the files under root in a deterministic order:
// lexicographic per directory level (os.ReadDir and filepath.WalkDir both
// guarantee sorted entries). Directories themselves are never candidates.
func Collect(ctx context.Context, root string, opts CollectOptions) ([]Candidate, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("reading root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root %q is not a directory", root)
	}

	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	var candidates []Candidate

	if !opts.Recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, errors.Errorf("listing directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if ignored(opts.Ignore, entry.Name()) {
				continue
			}
			candidates = append(candidates, NewCandidate(filepath.Join(root, entry.Name())))
		}
	} else {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if ignored(opts.Ignore, filepath.ToSlash(rel)) {
				return nil
			}
			candidates = append(candidates, NewCandidate(path))
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("walking directory: %w", err)
		}
	}

	logger.Debug().
		Str("root", root).
		Bool("recursive", opts.Recursive).
		Int("files", len(candidates)).
		Msg("collected candidates")

	return candidates, nil
}

func ignored(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		// Patterns are validated up front, Match cannot fail here.
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
