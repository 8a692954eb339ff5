package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptkit/scriptkit/cmd/scriptkit/opts"
	"github.com/scriptkit/scriptkit/pkg/config"
	"github.com/scriptkit/scriptkit/pkg/status"
)

func runRename(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	ro := &opts.RootOpts{
		Config:  cfg,
		Printer: status.NewPrinter(&buf, zerolog.Nop()),
	}

	cmd := NewRenameCmd(ro)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTestFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func listTestDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestRenameCmd_DryRunByDefault(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir, "a.txt", "b.txt")

	out, err := runRename(t, &config.Config{}, dir, "--prefix", "new_")
	require.NoError(t, err)

	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "would rename 2 file(s)")

	// Nothing on disk changed.
	assert.Equal(t, []string{"a.txt", "b.txt"}, listTestDir(t, dir))
}

func TestRenameCmd_Apply(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir, "a.txt")

	out, err := runRename(t, &config.Config{}, dir, "--prefix", "new_", "--apply")
	require.NoError(t, err)

	assert.Contains(t, out, "renamed 1 file(s)")
	assert.Equal(t, []string{"new_a.txt"}, listTestDir(t, dir))
}

func TestRenameCmd_ExplicitDryRunWinsOverApply(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir, "a.txt")

	_, err := runRename(t, &config.Config{}, dir, "--prefix", "new_", "--apply", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, listTestDir(t, dir))
}

func TestRenameCmd_NoRulesIsAnError(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir, "a.txt")

	_, err := runRename(t, &config.Config{}, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rename rule enabled")
}

func TestRenameCmd_DuplicateTargetAbortsBeforeApply(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir, "my file.txt", "my_file.txt")

	_, err := runRename(t, &config.Config{}, dir, "--sanitize", "--apply")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planning renames")

	// The collision was detected before any mutation.
	assert.Equal(t, []string{"my file.txt", "my_file.txt"}, listTestDir(t, dir))
}

func TestRenameCmd_ConfigDefaultsApply(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir, "a.txt", "b.txt")

	cfg := &config.Config{
		Rename: &config.RenameConfig{NumberStart: 10, NumberWidth: 4},
	}

	out, err := runRename(t, cfg, dir, "--number")
	require.NoError(t, err)
	assert.Contains(t, out, "a_0010.txt")
	assert.Contains(t, out, "b_0011.txt")
}

func TestRenameCmd_FailedEntriesYieldError(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir, "a.txt", "new_a.txt")

	// a.txt's target is already taken by an unrelated file.
	_, err := runRename(t, &config.Config{}, dir, "--prefix", "new_", "--ignore", "new_*", "--apply")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be renamed")
}
