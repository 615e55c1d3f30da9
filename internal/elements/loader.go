package elements

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/alexisbeaulieu97/elemgen/internal/jslex"
	"github.com/alexisbeaulieu97/elemgen/internal/model"
)

// Options maps import specifiers back to files on disk.
type Options struct {
	// Extension is the extension generated modules are written with.
	Extension string
	// ImportExtension is the extension used inside import specifiers.
	ImportExtension string
}

// Event records one define call, in evaluation order.
type Event struct {
	Module   string
	Tag      string
	TypeName string
}

type moduleState int

const (
	stateLoading moduleState = iota + 1
	stateLoaded
)

// Loader evaluates generated registration modules with ES module semantics:
// each module is evaluated at most once, its imports run depth-first in
// source order before its body, and a module that is still being evaluated
// counts as loaded when imported again.
type Loader struct {
	fsys     fs.FS
	registry Registry
	opts     Options
	state    map[string]moduleState
	loaded   []string
	trace    []Event
}

// NewLoader creates a Loader that reads modules from fsys and defines into reg.
func NewLoader(fsys fs.FS, reg Registry, opts Options) *Loader {
	return &Loader{
		fsys:     fsys,
		registry: reg,
		opts:     opts,
		state:    make(map[string]moduleState),
	}
}

// Load evaluates the module at name, a slash path inside the loader's FS.
func (l *Loader) Load(name string) error {
	return l.load(path.Clean(name))
}

// Trace returns every define call made so far.
func (l *Loader) Trace() []Event {
	return append([]Event(nil), l.trace...)
}

// Loaded returns module paths in the order their evaluation finished.
func (l *Loader) Loaded() []string {
	return append([]string(nil), l.loaded...)
}

// Registry returns the registry the loader defines into.
func (l *Loader) Registry() Registry {
	return l.registry
}

func (l *Loader) load(name string) error {
	if _, seen := l.state[name]; seen {
		return nil
	}
	l.state[name] = stateLoading

	src, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}

	mod, err := parseModule(name, src)
	if err != nil {
		return err
	}

	for _, spec := range mod.sideEffects {
		target, err := l.resolve(name, spec)
		if err != nil {
			return err
		}
		if err := l.load(target); err != nil {
			return err
		}
	}
	for _, spec := range mod.bindingImports {
		if _, err := l.resolve(name, spec); err != nil {
			return err
		}
	}

	for _, def := range mod.defines {
		if _, ok := mod.bindings[def.typeName]; !ok {
			return fmt.Errorf("%s: define %q uses unbound identifier %s", name, def.tag, def.typeName)
		}
		if err := l.registry.Define(def.tag, def.typeName); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		l.trace = append(l.trace, Event{Module: name, Tag: def.tag, TypeName: def.typeName})
	}

	l.state[name] = stateLoaded
	l.loaded = append(l.loaded, name)
	return nil
}

// resolve turns a relative specifier into a path inside the FS. Specifiers
// naming the import extension are tried with the output extension first, then
// with the TypeScript sources they may stand for (`./x.js` for `./x.ts`,
// `./x.mjs` for `./x.mts`), then as written.
func (l *Loader) resolve(from, spec string) (string, error) {
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		return "", fmt.Errorf("%s: import %q is not a relative specifier", from, spec)
	}

	target := path.Join(path.Dir(from), spec)
	if strings.HasPrefix(target, "../") || target == ".." {
		return "", fmt.Errorf("%s: import %q escapes the source root", from, spec)
	}

	var candidates []string
	if l.opts.ImportExtension != "" && l.opts.Extension != "" && strings.HasSuffix(target, l.opts.ImportExtension) {
		candidates = append(candidates, strings.TrimSuffix(target, l.opts.ImportExtension)+l.opts.Extension)
	}
	ext := path.Ext(target)
	for _, source := range model.SourceExtensions(ext) {
		candidates = append(candidates, strings.TrimSuffix(target, ext)+source)
	}
	candidates = append(candidates, target)
	for _, candidate := range candidates {
		if _, err := fs.Stat(l.fsys, candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: stat %s: %w", from, candidate, err)
		}
	}
	return "", fmt.Errorf("%s: cannot resolve import %q", from, spec)
}

type define struct {
	tag      string
	typeName string
}

type module struct {
	sideEffects    []string
	bindingImports []string
	bindings       map[string]struct{}
	defines        []define
}

// parseModule reads the statements a generated module consists of: imports,
// define calls and exports. Anything else is ignored.
func parseModule(name string, src []byte) (*module, error) {
	tokens, err := jslex.Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	var sig []jslex.Token
	for _, tok := range tokens {
		if !tok.IsComment() && tok.Kind != jslex.EOF {
			sig = append(sig, tok)
		}
	}
	at := func(i int) jslex.Token {
		if i < 0 || i >= len(sig) {
			return jslex.Token{Kind: jslex.EOF}
		}
		return sig[i]
	}

	mod := &module{bindings: make(map[string]struct{})}
	for i := 0; i < len(sig); i++ {
		tok := sig[i]
		switch {
		case tok.Is("import") && at(i+1).Kind == jslex.String:
			mod.sideEffects = append(mod.sideEffects, at(i+1).Text)
			i++

		case tok.Is("import"):
			j := i + 1
			for ; at(j).Kind != jslex.EOF && !at(j).Is("from"); j++ {
				if at(j).Kind == jslex.Ident && !at(j).Is("as") && !at(j+1).Is("as") {
					mod.bindings[at(j).Text] = struct{}{}
				}
			}
			if at(j+1).Kind != jslex.String {
				return nil, fmt.Errorf("parse %s:%d: malformed import", name, tok.Line)
			}
			mod.bindingImports = append(mod.bindingImports, at(j+1).Text)
			i = j + 1

		case tok.Is("customElements") && at(i+1).Is(".") && at(i+2).Is("define"):
			if !at(i+3).Is("(") || at(i+4).Kind != jslex.String || !at(i+5).Is(",") || at(i+6).Kind != jslex.Ident {
				return nil, fmt.Errorf("parse %s:%d: malformed customElements.define call", name, tok.Line)
			}
			mod.defines = append(mod.defines, define{tag: at(i + 4).Text, typeName: at(i + 6).Text})
			i += 6

		case tok.Kind == jslex.Ident && at(i+1).Is(".") && at(i+2).Is("define") && at(i+3).Is("("):
			if at(i+4).Kind != jslex.String {
				return nil, fmt.Errorf("parse %s:%d: malformed %s.define call", name, tok.Line, tok.Text)
			}
			mod.defines = append(mod.defines, define{tag: at(i + 4).Text, typeName: tok.Text})
			i += 4
		}
	}
	return mod, nil
}
