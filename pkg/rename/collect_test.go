package rename

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect_FlatLexicographicOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "zebra.txt", "apple.txt", "mango.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	writeFiles(t, filepath.Join(dir, "sub"), "nested.txt")

	cands, err := Collect(context.Background(), dir, CollectOptions{})
	require.NoError(t, err)

	names := make([]string, 0, len(cands))
	for _, c := range cands {
		names = append(names, c.Name)
	}

	// Directories are skipped, files come back sorted.
	assert.Equal(t, []string{"apple.txt", "mango.txt", "zebra.txt"}, names)
}

func TestCollect_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "root.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0755))
	writeFiles(t, filepath.Join(dir, "a"), "mid.txt")
	writeFiles(t, filepath.Join(dir, "a", "b"), "deep.txt")

	cands, err := Collect(context.Background(), dir, CollectOptions{Recursive: true})
	require.NoError(t, err)

	paths := make([]string, 0, len(cands))
	for _, c := range cands {
		rel, relErr := filepath.Rel(dir, c.Path)
		require.NoError(t, relErr)
		paths = append(paths, filepath.ToSlash(rel))
	}

	// WalkDir visits in lexical order.
	assert.Equal(t, []string{"a/b/deep.txt", "a/mid.txt", "root.txt"}, paths)
}

func TestCollect_IgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "keep.txt", "skip.log", "notes.md")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "logs"), 0755))
	writeFiles(t, filepath.Join(dir, "logs"), "deep.log")

	tests := []struct {
		name    string
		opts    CollectOptions
		want    []string
		wantErr string
	}{
		{
			name: "flat_glob",
			opts: CollectOptions{Ignore: []string{"*.log"}},
			want: []string{"keep.txt", "notes.md"},
		},
		{
			name: "recursive_doublestar",
			opts: CollectOptions{Recursive: true, Ignore: []string{"**/*.log"}},
			want: []string{"keep.txt", "notes.md"},
		},
		{
			name:    "invalid_pattern",
			opts:    CollectOptions{Ignore: []string{"[unclosed"}},
			wantErr: "invalid ignore pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands, err := Collect(context.Background(), dir, tt.opts)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			names := make([]string, 0, len(cands))
			for _, c := range cands {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCollect_MissingRoot(t *testing.T) {
	_, err := Collect(context.Background(), filepath.Join(t.TempDir(), "nope"), CollectOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading root directory")
}

func TestCollect_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")

	_, err := Collect(context.Background(), filepath.Join(dir, "a.txt"), CollectOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}
