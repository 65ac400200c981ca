package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a config that keeps every path inside dir and
// points configPath at it for the duration of the test.
func writeTestConfig(t *testing.T, dir, corpusPath string) {
	t.Helper()
	content := fmt.Sprintf(`data_dir: %q
corpus_path: %q
corpus_source: file
allow_builtin_corpus: true
index:
  path: %q
  provider: hashing
  dimensions: 64
  threshold: 0.6
roadmap:
  seed: 7
export:
  output_dir: %q
  latest_path: %q
  static_dir: %q
  static_url: /static/roadmaps
logger:
  level: error
`,
		filepath.Join(dir, "data"),
		corpusPath,
		filepath.Join(dir, "embeddings", "index.json"),
		filepath.Join(dir, "outputs"),
		filepath.Join(dir, "latest.json"),
		filepath.Join(dir, "static"),
	)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	prev := configPath
	configPath = path
	t.Cleanup(func() { configPath = prev })
}

// testCommand returns a command whose output is captured in the returned buffer.
func testCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	return cmd, &buf
}
