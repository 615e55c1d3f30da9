package emit

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/elemgen/internal/model"
)

// Header is the first line of every generated module.
const Header = "// Code generated by elemgen. DO NOT EDIT."

const (
	DefineStyleCustomElements = "custom-elements"
	DefineStyleStatic         = "static"
)

// Kind distinguishes the generated file types.
type Kind string

const (
	KindRegistration Kind = "registration"
	KindManifest     Kind = "manifest"
)

// File is one generated module held in memory until the write phase.
type File struct {
	// Path is slash-separated and relative to the source root.
	Path    string
	Kind    Kind
	Tag     string
	Content []byte
}

// Options controls file naming and the define statement form.
type Options struct {
	Suffix          string
	Extension       string
	ImportExtension string
	Manifest        string
	DefineStyle     string
}

// Source is the registry view the emitter reads.
type Source interface {
	Get(tag string) (model.Descriptor, bool)
	Categories() []string
	ByCategory() map[string][]model.Descriptor
}

// Emitter renders registration modules and the manifest.
type Emitter struct {
	opts Options
}

// New creates an Emitter.
func New(opts Options) *Emitter {
	if opts.DefineStyle == "" {
		opts.DefineStyle = DefineStyleCustomElements
	}
	return &Emitter{opts: opts}
}

// Registration renders the module that imports desc's implementation, imports
// the registration module of each dependency, then defines desc's tag. The
// dependencies in desc must already be resolved against src.
func (e *Emitter) Registration(desc model.Descriptor, src Source) (File, error) {
	out := e.RegistrationPath(desc)
	dir := desc.Dir()

	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n// Source: ")
	b.WriteString(desc.SourceModule)
	b.WriteString("\n\n")

	impl := Specifier(dir, e.implementationPath(desc))
	switch desc.Export {
	case model.ExportDefault:
		fmt.Fprintf(&b, "import %s from '%s';\n", desc.TypeName, impl)
	case model.ExportNamed:
		fmt.Fprintf(&b, "import { %s } from '%s';\n", desc.TypeName, impl)
	default:
		return File{}, fmt.Errorf("component %q has unknown export kind %q", desc.Tag, desc.Export)
	}

	for _, tag := range desc.DependsOn {
		dep, ok := src.Get(tag)
		if !ok {
			return File{}, fmt.Errorf("component %q depends on unregistered tag %q", desc.Tag, tag)
		}
		fmt.Fprintf(&b, "import '%s';\n", Specifier(dir, e.importPath(e.RegistrationPath(dep))))
	}

	b.WriteString("\n")
	switch e.opts.DefineStyle {
	case DefineStyleStatic:
		fmt.Fprintf(&b, "%s.define('%s');\n", desc.TypeName, desc.Tag)
	default:
		fmt.Fprintf(&b, "customElements.define('%s', %s);\n", desc.Tag, desc.TypeName)
	}

	b.WriteString("\n")
	if desc.Export == model.ExportDefault {
		fmt.Fprintf(&b, "export default %s;\n", desc.TypeName)
	} else {
		fmt.Fprintf(&b, "export { %s };\n", desc.TypeName)
	}

	return File{Path: out, Kind: KindRegistration, Tag: desc.Tag, Content: []byte(b.String())}, nil
}

// Manifest renders the umbrella module importing every registration module,
// grouped by category and sorted by tag within a group.
func (e *Emitter) Manifest(src Source) File {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")

	groups := src.ByCategory()
	for _, category := range src.Categories() {
		fmt.Fprintf(&b, "\n// %s\n", category)
		for _, desc := range groups[category] {
			fmt.Fprintf(&b, "import '%s';\n", Specifier(".", e.importPath(e.RegistrationPath(desc))))
		}
	}

	return File{Path: e.ManifestPath(), Kind: KindManifest, Content: []byte(b.String())}
}
