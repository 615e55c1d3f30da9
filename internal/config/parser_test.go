package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"

	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

func writeFile(t *testing.T, path, contents string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	validYAML := `root: web/components
categories: [actions, layout]
extensions: [.ts]
exclude: ["*.test.ts"]
output:
  suffix: .register
  import_extension: .mjs
  define_style: static
`

	validHCL := `root = "web/components"
categories = ["actions", "layout"]
exclude = ["*.stories.ts"]

output {
  manifest = "all"
  extension = ".js"
}
`

	cases := []struct {
		name     string
		file     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "yaml configuration is parsed with defaults filled",
			file:     "elemgen.yaml",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, "web/components", cfg.Root)
				require.Equal(t, []string{"actions", "layout"}, cfg.Categories)
				require.Equal(t, []string{".ts"}, cfg.Extensions)
				require.Equal(t, ".register", cfg.Output.Suffix)
				require.Equal(t, ".mjs", cfg.Output.ImportExtension)
				require.Equal(t, DefineStyleStatic, cfg.Output.DefineStyle)
				require.Equal(t, DefaultExtension, cfg.Output.Extension)
				require.Equal(t, DefaultManifest, cfg.Output.Manifest)
				require.Equal(t, filepath.Join(cfg.Dir, "web/components"), cfg.SourceRoot())
				require.Equal(t, "index.register.ts", cfg.ManifestFile())
			},
		},
		{
			name:     "hcl configuration is parsed",
			file:     "elemgen.hcl",
			contents: validHCL,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, []string{"actions", "layout"}, cfg.Categories)
				require.Equal(t, []string{"*.stories.ts"}, cfg.Exclude)
				require.Equal(t, DefaultExtensions, cfg.Extensions)
				require.Equal(t, "all.define.js", cfg.ManifestFile())
			},
		},
		{
			name:     "empty hcl file falls back to defaults",
			file:     "elemgen.hcl",
			contents: "",
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, DefaultRoot, cfg.Root)
				require.Equal(t, DefineStyleCustomElements, cfg.Output.DefineStyle)
			},
		},
		{
			name:     "malformed yaml reports line",
			file:     "elemgen.yaml",
			contents: "root: src\ncategories: [a, b\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var parseErr *elemerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Greater(t, parseErr.Line, 0)
			},
		},
		{
			name:     "malformed hcl reports line",
			file:     "elemgen.hcl",
			contents: "root = \"src\"\n\noutput {\n  suffix = \n}\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var parseErr *elemerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Greater(t, parseErr.Line, 0)
			},
		},
		{
			name:     "invalid suffix fails validation",
			file:     "elemgen.yaml",
			contents: "output:\n  suffix: define\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var validationErr *elemerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "output.suffix", validationErr.Field)
			},
		},
		{
			name:     "unknown define style fails validation",
			file:     "elemgen.yaml",
			contents: "output:\n  define_style: eager\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *elemerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "output.define_style", validationErr.Field)
			},
		},
		{
			name:     "category with path separator fails validation",
			file:     "elemgen.yaml",
			contents: "categories: [layout/cards]\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *elemerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "categories[0]", validationErr.Field)
			},
		},
		{
			name:     "duplicate categories fail validation",
			file:     "elemgen.yaml",
			contents: "categories: [layout, layout]\n",
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *elemerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "categories", validationErr.Field)
			},
		},
		{
			name:     "unsupported extension is a parse error",
			file:     "elemgen.toml",
			contents: "root = 'src'",
			assert: func(t *testing.T, cfg *Config, err error) {
				var parseErr *elemerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Contains(t, err.Error(), "unsupported config format")
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, filepath.Join(t.TempDir(), tc.file), tc.contents)
			cfg, err := ParseConfig(path)
			tc.assert(t, cfg, err)
		})
	}
}

func TestValidateTagName(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"card", "card-header", "x.y", "ui-button2"} {
		require.NoError(t, ValidateTagName(valid), valid)
	}
	for _, invalid := range []string{"", "Card", "1card", "-card", "card header", "card/header"} {
		require.Error(t, ValidateTagName(invalid), invalid)
	}
}

func TestResolveUsesExplicitConfigAndRootOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "conf", "custom.yaml"), "root: components\n")

	cfg, err := Resolve(ResolveOptions{ConfigPath: path, WorkDir: dir})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "conf", "components"), cfg.SourceRoot())
	require.Equal(t, path, cfg.Source)

	cfg, err = Resolve(ResolveOptions{ConfigPath: path, Root: "elsewhere", WorkDir: dir})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "elsewhere"), cfg.SourceRoot())
}

func TestResolveDiscoversConfigAtRepositoryRoot(t *testing.T) {
	t.Parallel()

	repoDir := t.TempDir()
	_, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)

	writeFile(t, filepath.Join(repoDir, "elemgen.yaml"), "root: ui\n")
	nested := filepath.Join(repoDir, "packages", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	root, ok := RepositoryRoot(nested)
	require.True(t, ok)
	require.Equal(t, repoDir, root)

	cfg, err := Resolve(ResolveOptions{WorkDir: nested})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(repoDir, "ui"), cfg.SourceRoot())
}

func TestResolveDefaultsOutsideRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := Resolve(ResolveOptions{WorkDir: dir})
	require.NoError(t, err)
	require.Empty(t, cfg.Source)
	require.Equal(t, filepath.Join(dir, DefaultRoot), cfg.SourceRoot())
	require.Empty(t, Discover(dir))
}
