package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string) []string {
	t.Helper()
	var got []string
	err := ReadLines(strings.NewReader(input), func(line string) error {
		got = append(got, line)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestReadLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single without terminator", "a", []string{"a"}},
		{"trailing terminator", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"cr", "a\rb\r", []string{"a", "b"}},
		{"mixed terminators", "a\rb\nc\r\nd", []string{"a", "b", "c", "d"}},
		{"blank cr lines kept", "a\r\rb", []string{"a", "", "b"}},
		{"cr then blank lf line", "a\r\n\nb", []string{"a", "", "b"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, collect(t, tt.input))
		})
	}
}

func TestReadLines_LongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 3*readBufSize)
	require.Equal(t, []string{long, "tail"}, collect(t, long+"\ntail"))
}

func TestReadLines_CRLFAcrossBufferBoundary(t *testing.T) {
	t.Parallel()

	first := strings.Repeat("x", readBufSize-1)
	require.Equal(t, []string{first, "next"}, collect(t, first+"\r\nnext"))
}

func TestReadLines_CallbackErrorStops(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	calls := 0
	err := ReadLines(strings.NewReader("a\nb\nc\n"), func(string) error {
		calls++
		return stop
	})

	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, calls)
}

func TestReadFileLines_MissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.xml")
	err := ReadFileLines(missing, func(string) error { return nil })

	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), missing)
}
