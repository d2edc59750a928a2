package document

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite_CreatesAndTruncates(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "deploy.xml")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous content"), 0o644))

	// --- Act ---
	err := Write(path, "<sailpoint>ü</sailpoint>")

	// --- Assert ---
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<sailpoint>ü</sailpoint>", string(got))
}

func TestWrite_MissingDirectoryFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "deploy.xml")

	err := Write(path, "x")

	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), path)
}

// failingCloser records what was written and fails on demand.
type failingCloser struct {
	written  bytes.Buffer
	writeErr error
	closeErr error
	closed   bool
}

func (f *failingCloser) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.written.Write(p)
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndClose_CloseErrorIsReported(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	closeErr := errors.New("disk full on flush")
	w := &failingCloser{closeErr: closeErr}

	// --- Act ---
	err := writeAndClose("deploy.xml", w, "<sailpoint/>")

	// --- Assert ---
	require.ErrorIs(t, err, closeErr)
	require.Contains(t, err.Error(), "failed to close output file deploy.xml")
	require.Equal(t, "<sailpoint/>", w.written.String())
}

func TestWriteAndClose_WriteAndCloseErrorsAreJoined(t *testing.T) {
	t.Parallel()

	writeErr := errors.New("short write")
	closeErr := errors.New("close failed")
	w := &failingCloser{writeErr: writeErr, closeErr: closeErr}

	err := writeAndClose("deploy.xml", w, "<sailpoint/>")

	require.ErrorIs(t, err, writeErr)
	require.ErrorIs(t, err, closeErr)
	require.True(t, w.closed)
}

func TestWriteAndClose_ClosesOnSuccess(t *testing.T) {
	t.Parallel()

	w := &failingCloser{}

	require.NoError(t, writeAndClose("deploy.xml", w, "x"))
	require.True(t, w.closed)
}
