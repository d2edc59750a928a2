package tokens

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeTokenFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tokens.properties")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_ParsesKeyValueLines(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeTokenFile(t, "@@@ENV@@@=prod\n\n@@@URL@@@=jdbc:x?a=b&c=d\n@@@SPACE@@@ = padded \n")

	// --- Act ---
	m, err := Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	want := Map{
		"@@@ENV@@@":    "prod",
		"@@@URL@@@":    "jdbc:x?a=b&c=d",
		"@@@SPACE@@@ ": " padded ",
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("unexpected token map (-want +got):\n%s", diff)
	}
}

func TestLoad_SizeMatchesNonEmptyLines(t *testing.T) {
	t.Parallel()

	path := writeTokenFile(t, "a=1\nb=2\n\nc=3=4\r\n")

	m, err := Load(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, m, 3)
	require.Equal(t, "3=4", m["c"])
}

func TestLoad_LastDuplicateWins(t *testing.T) {
	t.Parallel()

	path := writeTokenFile(t, "k=first\nk=second\n")

	m, err := Load(context.Background(), path)

	require.NoError(t, err)
	require.Equal(t, Map{"k": "second"}, m)
}

func TestLoad_LineWithoutSeparatorIsIgnored(t *testing.T) {
	t.Parallel()

	path := writeTokenFile(t, "garbage\nk=v\n")

	m, err := Load(context.Background(), path)

	require.NoError(t, err)
	require.Equal(t, Map{"k": "v"}, m)
}

func TestLoad_EmptyPathIsEmptyMap(t *testing.T) {
	t.Parallel()

	m, err := Load(context.Background(), "")

	require.NoError(t, err)
	require.NotNil(t, m)
	require.Empty(t, m)
}

func TestLoad_MissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing"))

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMerge_LaterWins(t *testing.T) {
	t.Parallel()

	base := Map{"a": "1", "b": "2"}
	got := Merge(base, Map{"b": "3"}, nil)

	require.Equal(t, Map{"a": "1", "b": "3"}, got)
	require.Equal(t, "2", base["b"], "inputs must not be modified")
}
