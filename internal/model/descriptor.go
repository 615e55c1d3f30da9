package model

import (
	"path"
	"strings"

	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

// ExportKind records how a module exports its implementing class.
type ExportKind string

const (
	// ExportDefault marks `export default class X`.
	ExportDefault ExportKind = "default"
	// ExportNamed marks `export class X` or `export { X }`.
	ExportNamed ExportKind = "named"
)

// Descriptor is the metadata of one discovered custom element.
type Descriptor struct {
	Tag          string
	TypeName     string
	Export       ExportKind
	Category     string
	SourceModule string // slash-separated, relative to the source root
	DependsOn    []string
	Line         int
}

// Location returns the source position of the tag annotation.
func (d Descriptor) Location() elemerrors.Location {
	return elemerrors.Location{Path: d.SourceModule, Line: d.Line}
}

// Dir is the slash-separated directory holding the source module.
func (d Descriptor) Dir() string {
	return path.Dir(d.SourceModule)
}

// Stem is the source file name without its extension.
func (d Descriptor) Stem() string {
	base := path.Base(d.SourceModule)
	if strings.HasSuffix(base, ".d.ts") {
		return strings.TrimSuffix(base, ".d.ts")
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// Clone returns a copy whose DependsOn slice can be modified independently.
func (d Descriptor) Clone() Descriptor {
	d.DependsOn = append([]string(nil), d.DependsOn...)
	return d
}

// GeneratedExtensions are the module extensions a generated file may carry.
var GeneratedExtensions = []string{".ts", ".js", ".mjs", ".cjs", ".mts", ".cts"}

// IsGeneratedName reports whether a file name carries the reserved generated
// suffix, e.g. "card.define.ts" for suffix ".define".
func IsGeneratedName(name, suffix string) bool {
	if suffix == "" {
		return false
	}
	ext := path.Ext(name)
	for _, allowed := range GeneratedExtensions {
		if ext != allowed {
			continue
		}
		stem := strings.TrimSuffix(name, ext)
		return strings.HasSuffix(stem, suffix) && len(stem) > len(suffix)
	}
	return false
}

// ImportExtension returns the extension an import specifier uses for a source
// module with extension ext. Module-kind extensions keep their kind (.mts and
// .mjs import as .mjs, .cts and .cjs as .cjs) and plain .js imports as
// itself. Everything else uses fallback, the configured import extension.
func ImportExtension(ext, fallback string) string {
	switch ext {
	case ".mts", ".mjs":
		return ".mjs"
	case ".cts", ".cjs":
		return ".cjs"
	case ".js":
		return ".js"
	default:
		return fallback
	}
}

// SourceExtensions lists the TypeScript source extensions a specifier with
// the JavaScript extension ext may refer to.
func SourceExtensions(ext string) []string {
	switch ext {
	case ".js":
		return []string{".ts", ".tsx"}
	case ".mjs":
		return []string{".mts"}
	case ".cjs":
		return []string{".cts"}
	default:
		return nil
	}
}
