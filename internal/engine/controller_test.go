package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/elemgen/internal/config"
	"github.com/alexisbeaulieu97/elemgen/internal/model"
	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

func writeSource(t *testing.T, root, rel, contents string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func scenario(t *testing.T) *Controller {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.Root = "components"
	cfg.Categories = []string{"layout", "media"}

	root := cfg.SourceRoot()
	writeSource(t, root, "layout/card.ts", "/**\n * Groups content.\n * @tag card\n */\nexport default class Card extends HTMLElement {}\n")
	writeSource(t, root, "layout/card-header.ts", "/**\n * @tag card-header\n * @dependency card\n */\nexport default class CardHeader extends HTMLElement {}\n")
	writeSource(t, root, "media/gallery.ts", "/**\n * @tag gallery\n * @dependency card-header\n * @dependency lightbox\n */\nexport class Gallery extends HTMLElement {}\n")

	return NewController(cfg, nil)
}

// snapshot reads every generated file under the controller's root.
func snapshot(t *testing.T, c *Controller) map[string]string {
	t.Helper()
	files, err := c.existing()
	require.NoError(t, err)

	out := make(map[string]string, len(files))
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(c.Root(), filepath.FromSlash(rel)))
		require.NoError(t, err)
		out[rel] = string(data)
	}
	return out
}

func TestRunScenario(t *testing.T) {
	c := scenario(t)

	summary, err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Generated)
	assert.Equal(t, 3, summary.Components)
	assert.Equal(t, 3, summary.FilesScanned)
	assert.Equal(t, 0, summary.Removed)

	require.Len(t, summary.Warnings, 1)
	assert.Equal(t, model.WarningUnresolvedDependency, summary.Warnings[0].Kind)
	assert.Contains(t, summary.Warnings[0].Message, `"lightbox"`)

	files := snapshot(t, c)
	require.Len(t, files, 4)
	assert.NotContains(t, files["media/gallery.define.ts"], "lightbox")
	assert.Contains(t, files["media/gallery.define.ts"], "import { Gallery } from './gallery.js';\nimport '../layout/card-header.define.js';\n")
	assert.Contains(t, files["layout/card-header.define.ts"], "import './card.define.js';\n")
	assert.Equal(t, `// Code generated by elemgen. DO NOT EDIT.

// layout
import './layout/card.define.js';
import './layout/card-header.define.js';

// media
import './media/gallery.define.js';
`, files["index.define.ts"])
}

func TestRunIsDeterministic(t *testing.T) {
	c := scenario(t)

	_, err := c.Run()
	require.NoError(t, err)
	first := snapshot(t, c)

	summary, err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Removed)
	assert.Equal(t, first, snapshot(t, c))
}

func TestCleanIsIdempotent(t *testing.T) {
	c := scenario(t)

	removed, err := c.Clean()
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	_, err = c.Run()
	require.NoError(t, err)

	removed, err = c.Clean()
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	removed, err = c.Clean()
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.FileExists(t, filepath.Join(c.Root(), "layout", "card.ts"))

	missing := config.Default(t.TempDir())
	removed, err = NewController(missing, nil).Clean()
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestRunRemovesOutputOfDeletedComponents(t *testing.T) {
	c := scenario(t)
	_, err := c.Run()
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(c.Root(), "media", "gallery.ts")))

	summary, err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Generated)
	assert.NoFileExists(t, filepath.Join(c.Root(), "media", "gallery.define.ts"))
}

func TestDuplicateTagIsFatalAndWritesNothing(t *testing.T) {
	c := scenario(t)
	writeSource(t, c.Root(), "media/other-card.ts", "/** @tag card */\nexport default class OtherCard extends HTMLElement {}\n")

	_, err := c.Run()
	require.Error(t, err)

	var dup *elemerrors.DuplicateTagError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "card", dup.Tag)
	assert.Equal(t, "layout/card.ts:3", dup.First.String())
	assert.Equal(t, "media/other-card.ts:1", dup.Second.String())
	assert.Empty(t, snapshot(t, c))
}

func TestDuplicateTagLeavesPreviousOutputUntouched(t *testing.T) {
	c := scenario(t)
	_, err := c.Run()
	require.NoError(t, err)
	before := snapshot(t, c)

	writeSource(t, c.Root(), "media/other-card.ts", "/** @tag card */\nexport default class OtherCard extends HTMLElement {}\n")
	_, err = c.Run()
	require.Error(t, err)
	assert.Equal(t, before, snapshot(t, c))
}

func TestRunWarnsOnEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default(dir)
	writeSource(t, cfg.SourceRoot(), "utils/format.ts", "export const format = (s: string) => s.trim();\n")

	summary, err := NewController(cfg, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Components)
	require.Len(t, summary.Warnings, 1)
	assert.Equal(t, model.WarningEmptyOutput, summary.Warnings[0].Kind)
}

func TestRunWarnsOnEmptyOutputWhenEveryModuleIsMalformed(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.Categories = []string{"layout"}
	writeSource(t, cfg.SourceRoot(), "layout/card.ts", "/** @tag card */\nclass Card extends HTMLElement {}\n")

	summary, err := NewController(cfg, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Components)
	require.Len(t, summary.Warnings, 2)
	assert.Equal(t, model.WarningMalformedModule, summary.Warnings[0].Kind)
	assert.Equal(t, model.WarningEmptyOutput, summary.Warnings[1].Kind)
	assert.Equal(t, "scanned 1 files but found no valid components", summary.Warnings[1].Message)
}

func TestRunKeepsComponentWithInvalidDependencyName(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.Categories = []string{"media"}
	writeSource(t, cfg.SourceRoot(), "media/gallery.ts", "/**\n * @tag gallery\n * @dependency Lightbox\n */\nexport default class Gallery extends HTMLElement {}\n")

	c := NewController(cfg, nil)
	summary, err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Components)
	require.Len(t, summary.Warnings, 1)
	assert.Equal(t, model.WarningUnresolvedDependency, summary.Warnings[0].Kind)
	assert.Equal(t, "gallery", summary.Warnings[0].Tag)
	assert.Contains(t, summary.Warnings[0].Message, "Lightbox")

	files := snapshot(t, c)
	require.Contains(t, files, "media/gallery.define.ts")
	assert.NotContains(t, files["media/gallery.define.ts"], "Lightbox")
	assert.Contains(t, files["media/gallery.define.ts"], "customElements.define('gallery', Gallery);")
}

func TestBuildRejectsOutputCollision(t *testing.T) {
	c := scenario(t)
	writeSource(t, c.Root(), "layout/card.js", "/** @tag card-js */\nexport default class CardJS extends HTMLElement {}\n")

	_, err := c.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout/card.define.ts")
}

func TestCheckReportsDrift(t *testing.T) {
	c := scenario(t)

	drift, err := c.Check()
	require.NoError(t, err)
	assert.False(t, drift.InSync())
	assert.Len(t, drift.Missing, 4)

	_, err = c.Run()
	require.NoError(t, err)

	drift, err = c.Check()
	require.NoError(t, err)
	assert.True(t, drift.InSync())

	writeSource(t, c.Root(), "layout/card.define.ts", "// edited by hand\n")
	writeSource(t, c.Root(), "media/stale.define.ts", "// left over\n")
	require.NoError(t, os.Remove(filepath.Join(c.Root(), "index.define.ts")))

	drift, err = c.Check()
	require.NoError(t, err)
	require.Len(t, drift.Stale, 1)
	assert.Equal(t, "layout/card.define.ts", drift.Stale[0].Path)
	assert.Contains(t, drift.Stale[0].Diff, "-// edited by hand")
	assert.Contains(t, drift.Stale[0].Diff, "+customElements.define('card', Card);")
	assert.Equal(t, []string{"index.define.ts"}, drift.Missing)
	assert.Equal(t, []string{"media/stale.define.ts"}, drift.Orphaned)
}

func TestVerifyGeneratedOutput(t *testing.T) {
	c := scenario(t)
	_, err := c.Run()
	require.NoError(t, err)

	report, err := c.Verify()
	require.NoError(t, err)
	assert.True(t, report.OK(), "%v", report.Problems)
	assert.Equal(t, 3, report.Modules)
	assert.Equal(t, []string{"card", "card-header", "gallery"}, report.Tags)
}

func TestVerifyCyclicOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.Output.DefineStyle = config.DefineStyleStatic
	root := cfg.SourceRoot()
	writeSource(t, root, "tabs/tab-group.ts", "/**\n * @tag tab-group\n * @dependency tab-panel\n */\nexport class TabGroup {}\n")
	writeSource(t, root, "tabs/tab-panel.ts", "/**\n * @tag tab-panel\n * @dependency tab-group\n */\nexport class TabPanel {}\n")

	c := NewController(cfg, nil)
	summary, err := c.Run()
	require.NoError(t, err)
	require.Len(t, summary.Warnings, 1)
	assert.Equal(t, model.WarningDependencyCycle, summary.Warnings[0].Kind)
	assert.Equal(t, "dependency cycle detected: tab-group -> tab-panel -> tab-group", summary.Warnings[0].Message)

	report, err := c.Verify()
	require.NoError(t, err)
	assert.True(t, report.OK(), "%v", report.Problems)
	assert.Equal(t, []string{"tab-group", "tab-panel"}, report.Tags)
}
