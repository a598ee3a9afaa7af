// Package testutil provides shared helpers for integration-style tests:
// a thread-safe log buffer and a harness that materializes HCL documents in
// a temporary directory and runs the full app against them.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/parametry/internal/app"
	"github.com/vk/parametry/internal/docload"
	"github.com/vk/parametry/internal/module"
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

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunBuild writes the given document files into a temp directory, builds an
// app over them with the provided modules, and runs the build phase. Files
// are keyed by relative path; subdirectories are created as needed.
func RunBuild(t *testing.T, files map[string]string, modules ...module.Module) *HarnessResult {
	t.Helper()
	return RunBuildWithContext(context.Background(), t, files, modules...)
}

// RunBuildWithContext is RunBuild with a caller-provided context.
func RunBuildWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...module.Module) *HarnessResult {
	t.Helper()

	docsDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(docsDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig, err := app.NewConfig(app.Config{
		DocsPath:    docsDir,
		LogLevel:    "debug",
		LogFormat:   "text",
		WorkerCount: 4,
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, docload.NewLoader(), modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	buildErr := testApp.Build(ctx)
	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       buildErr,
		App:       testApp,
	}
}
