package fsutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const readBufSize = 64 * 1024

// ReadLines calls fn once per line of r, with the terminator removed. A
// line ends at "\n", "\r" or "\r\n". A final line without terminator is
// still delivered; a trailing terminator does not produce an extra empty
// line. Lines have no length limit. The first error returned by fn stops the
// iteration and is returned unchanged.
func ReadLines(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReaderSize(r, readBufSize)
	var line strings.Builder
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			if line.Len() > 0 {
				return fn(line.String())
			}
			return nil
		}
		if err != nil {
			return err
		}

		switch b {
		case '\r':
			if next, perr := br.Peek(1); perr == nil && next[0] == '\n' {
				_, _ = br.ReadByte()
			}
		case '\n':
		default:
			line.WriteByte(b)
			continue
		}

		if ferr := fn(line.String()); ferr != nil {
			return ferr
		}
		line.Reset()
	}
}

// ReadFileLines opens path, feeds every line to fn and closes the file on all
// exit paths. Read failures are wrapped with the path.
func ReadFileLines(path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var fnErr error
	err = ReadLines(f, func(line string) error {
		if e := fn(line); e != nil {
			fnErr = e
			return e
		}
		return nil
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}
