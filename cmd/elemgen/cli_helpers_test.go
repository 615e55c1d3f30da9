package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func executeCommand(t *testing.T, args ...string) cliResult {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, contents := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
}

// scenarioProject lays out a project with card, card-header and gallery
// components and returns the path of its configuration file.
func scenarioProject(t *testing.T) (configPath, root string) {
	t.Helper()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"elemgen.yaml": "root: src/components\ncategories: [layout, media]\n",
		"src/components/layout/card.ts": `/**
 * @tag card
 */
export default class Card extends HTMLElement {}
`,
		"src/components/layout/card-header.ts": `/**
 * @tag card-header
 * @dependency card
 */
export default class CardHeader extends HTMLElement {}
`,
		"src/components/media/gallery.ts": `import { html } from 'lit';

/**
 * @tag gallery
 * @dependency card-header
 * @dependency lightbox
 */
export default class Gallery extends HTMLElement {}
`,
	})

	return filepath.Join(dir, "elemgen.yaml"), filepath.Join(dir, "src", "components")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
