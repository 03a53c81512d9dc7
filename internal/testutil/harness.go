package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/peunion/internal/app"
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

// WriteFiles creates a temporary root directory and writes files into it.
// Keys are slash-separated paths relative to the root; intermediate
// directories are created. The root is returned.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// AppHarness bundles an App with the buffers it writes to.
type AppHarness struct {
	App    *app.App
	Out    *SafeBuffer
	Logs   *SafeBuffer
	Config *app.Config
}

// SetupAppTest creates a new app instance for system testing. Logs run at
// debug level and are echoed to the test log when PEUNION_TEST_LOGS=true.
func SetupAppTest(t *testing.T, cfg app.Config, opts ...app.Option) *AppHarness {
	t.Helper()

	cfg.LogLevel = "debug"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	h := &AppHarness{
		App:    app.NewApp(out, logs, appConfig, opts...),
		Out:    out,
		Logs:   logs,
		Config: appConfig,
	}

	t.Cleanup(func() {
		if os.Getenv("PEUNION_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return h
}
