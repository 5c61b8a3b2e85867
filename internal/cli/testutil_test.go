package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxscope/pkg/observability"
)

// sampleDump is root(200x200) > [tabs(0,0 200x100) > [a, b active], footer].
// The root also lists a child that does not exist.
const sampleDump = `{
  "snapshot": {"nodeId": "root", "width": 200, "height": 200},
  "nodes": [
    {"id": "root", "bounds": {"x": 0, "y": 0, "width": 200, "height": 200}, "children": ["tabs", "footer", "ghost"]},
    {"id": "tabs", "bounds": {"x": 0, "y": 0, "width": 200, "height": 100}, "children": ["a", "b"], "activeChild": "b"},
    {"id": "a", "bounds": {"x": 10, "y": 10, "width": 50, "height": 50}},
    {"id": "b", "bounds": {"x": 20, "y": 20, "width": 60, "height": 40}},
    {"id": "footer", "bounds": {"x": 0, "y": 150, "width": 200, "height": 50}}
  ]
}`

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// testCLI returns a CLI with a quiet logger and an isolated config and cache.
func testCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)
	return New(io.Discard, log.InfoLevel)
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	var err error
	out := captureStdout(t, func() { err = root.ExecuteContext(t.Context()) })
	return out, err
}

// captureStdout redirects os.Stdout while fn runs.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	defer func() { os.Stdout = orig }()
	fn()
	w.Close()
	return string(<-done)
}

func decodeJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(bytes.NewBufferString(s)).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}
