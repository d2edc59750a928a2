package fsutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReplaceFile rewrites dest with the bytes produced by write. The new content
// goes to a scratch file in the same directory, which is synced, closed and
// renamed over dest. Either dest keeps its old content or it holds the complete
// new content; a failure never leaves it half-written. The file mode of dest
// is preserved.
func ReplaceFile(dest string, write func(w io.Writer) error) error {
	// Replace the link target, not the link.
	if real, err := filepath.EvalSymlinks(dest); err == nil {
		dest = real
	}
	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", dest, err)
	}

	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(dest)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create scratch file for %s: %w", dest, err)
	}
	tmpPath := tmp.Name()
	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	bw := bufio.NewWriterSize(tmp, readBufSize)
	if err := write(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(fmt.Errorf("failed to write scratch file %s: %w", tmpPath, err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("failed to sync scratch file %s: %w", tmpPath, err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close scratch file %s: %w", tmpPath, err)
	}
	_ = os.Chmod(tmpPath, info.Mode().Perm())
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", dest, err)
	}
	return nil
}
