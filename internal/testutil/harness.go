// Package testutil provides shared fixtures for tests that drive a complete
// assembly run.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/iiqentities/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles creates every file of files (relative path to content) below
// root, creating parent directories as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	// Output is the content of the written document, empty when the run
	// did not produce one.
	Output string
}

// RunApp validates cfg, runs an App with debug logging and reads back the
// output file. Configuration errors from NewConfig are returned in Err.
func RunApp(t *testing.T, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunAppWithContext(context.Background(), t, cfg)
}

// RunAppWithContext is RunApp with a caller-provided context.
func RunAppWithContext(ctx context.Context, t *testing.T, cfg app.Config) *HarnessResult {
	t.Helper()

	cfg.LogLevel = "debug"
	validated, err := app.NewConfig(cfg)
	if err != nil {
		return &HarnessResult{Err: err}
	}

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, validated)
	runErr := testApp.Run(ctx)

	if os.Getenv("IIQ_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result := &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
	if data, err := os.ReadFile(testApp.OutputPath()); err == nil {
		result.Output = string(data)
	}
	return result
}
