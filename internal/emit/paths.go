package emit

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/elemgen/internal/model"
)

// RegistrationPath is the slash path, relative to the source root, of the
// registration module generated for desc.
func (e *Emitter) RegistrationPath(desc model.Descriptor) string {
	return path.Join(desc.Dir(), desc.Stem()+e.opts.Suffix+e.opts.Extension)
}

// ManifestPath is the slash path of the umbrella module, relative to the root.
func (e *Emitter) ManifestPath() string {
	return e.opts.Manifest + e.opts.Suffix + e.opts.Extension
}

// importPath rewrites a generated file path to the extension used in import
// specifiers.
func (e *Emitter) importPath(generated string) string {
	return strings.TrimSuffix(generated, e.opts.Extension) + e.opts.ImportExtension
}

// implementationPath is the import path of the source module itself.
func (e *Emitter) implementationPath(desc model.Descriptor) string {
	ext := model.ImportExtension(path.Ext(desc.SourceModule), e.opts.ImportExtension)
	return path.Join(desc.Dir(), desc.Stem()+ext)
}

// Specifier returns the relative module specifier that a module located in
// fromDir uses to import target. Both arguments are slash paths relative to
// the same root.
func Specifier(fromDir, target string) string {
	rel, err := filepath.Rel(filepath.FromSlash(path.Clean(fromDir)), filepath.FromSlash(path.Clean(target)))
	if err != nil {
		rel = target
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}
