package fsutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/iiqentities/internal/model"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, name := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("<x/>\n"), 0o644))
	}
}

func relPaths(entries []model.FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.RelPath)
	}
	return out
}

func TestFindFilesByExtension_FindsMatchesAtAnyDepth(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	writeTree(t, root,
		"a.xml",
		"sub/b.xml",
		"sub/deeper/c.xml",
		"sub/deeper/notes.txt",
		"UPPER.XML",
		"sub/example.xml.bak",
	)

	// --- Act ---
	entries, err := FindFilesByExtension(context.Background(), root, "xml")

	// --- Assert ---
	require.NoError(t, err)
	want := []string{"a.xml", "sub/b.xml", "sub/deeper/c.xml"}
	if diff := cmp.Diff(want, relPaths(entries)); diff != "" {
		t.Errorf("unexpected entries (-want +got):\n%s", diff)
	}
	for _, e := range entries {
		require.True(t, filepath.IsAbs(e.AbsPath), "AbsPath should be absolute: %s", e.AbsPath)
		_, statErr := os.Stat(e.AbsPath)
		require.NoError(t, statErr)
	}
}

func TestFindFilesByExtension_SuffixIsNotAParsedExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, "configxml", "a.xml")

	entries, err := FindFilesByExtension(context.Background(), root, "xml")

	require.NoError(t, err)
	require.Equal(t, []string{"a.xml", "configxml"}, relPaths(entries))
}

func TestFindFilesByExtension_MissingRootIsEmpty(t *testing.T) {
	t.Parallel()

	entries, err := FindFilesByExtension(context.Background(), filepath.Join(t.TempDir(), "nope"), "xml")

	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFindFilesByExtension_FileRootIsEmpty(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, "a.xml")

	entries, err := FindFilesByExtension(context.Background(), filepath.Join(root, "a.xml"), "xml")

	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFindFilesByExtension_EmptyExtensionPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_, _ = FindFilesByExtension(context.Background(), t.TempDir(), "")
	})
}

func TestFindFilesByExtension_SymlinkCycleTerminates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	writeTree(t, root, "sub/b.xml")
	require.NoError(t, os.Symlink(root, filepath.Join(root, "sub", "loop")))

	// --- Act ---
	entries, err := FindFilesByExtension(context.Background(), root, "xml")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"sub/b.xml"}, relPaths(entries))
}

func TestFindFilesByExtension_FollowsDirectorySymlinkOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	t.Parallel()

	root := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, "shared.xml")
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linked")))

	entries, err := FindFilesByExtension(context.Background(), root, "xml")

	require.NoError(t, err)
	require.Equal(t, []string{"linked/shared.xml"}, relPaths(entries))
}

func TestFindFilesByExtension_UnreadableDirectoryIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	writeTree(t, root, "a.xml", "locked/hidden.xml", "open/c.xml")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	// --- Act ---
	entries, err := FindFilesByExtension(context.Background(), root, "xml")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"a.xml", "open/c.xml"}, relPaths(entries))
}

func TestFindFilesByExtension_CancelledContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, "a.xml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindFilesByExtension(ctx, root, "xml")

	require.ErrorIs(t, err, context.Canceled)
}
