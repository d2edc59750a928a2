package document

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Write creates or truncates path and writes body to it in one call. The
// body is written as is; Go strings carry UTF-8, which is also the encoding
// declared in the document header. A failing Close is reported even when the
// write itself succeeded.
func Write(path string, body string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", path, err)
	}
	return writeAndClose(path, f, body)
}

// writeAndClose writes body to w and closes it on every path. path only
// names the destination in errors.
func writeAndClose(path string, w io.WriteCloser, body string) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close output file %s: %w", path, cerr))
		}
	}()

	if _, err := io.WriteString(w, body); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
