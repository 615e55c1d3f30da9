package elements

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/alexisbeaulieu97/elemgen/internal/model"
)

// VerifyOptions describes the generated file layout being verified.
type VerifyOptions struct {
	Options
	Suffix string
	// Manifest is the manifest's slash path inside the FS.
	Manifest string
}

// Problem is one failed expectation found by Verify.
type Problem struct {
	Module  string
	Message string
}

func (p Problem) String() string {
	return p.Module + ": " + p.Message
}

// Report summarises a verification run.
type Report struct {
	// Modules is the number of registration modules checked in isolation.
	Modules int
	// Tags are the tags the manifest defined, sorted.
	Tags     []string
	Problems []Problem
}

// OK reports whether verification found no problems.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Verify loads the manifest into a fresh registry, expecting every tag to be
// defined exactly once, then loads each registration module alone and checks
// that everything it transitively imports was defined before its own tag.
func Verify(fsys fs.FS, opts VerifyOptions) (*Report, error) {
	modules, err := registrationModules(fsys, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{Modules: len(modules)}

	manifest := NewLoader(fsys, NewRegistry(), opts.Options)
	manifestErr := manifest.Load(opts.Manifest)
	if manifestErr != nil {
		report.Problems = append(report.Problems, Problem{Module: opts.Manifest, Message: manifestErr.Error()})
	}
	report.Tags = manifest.Registry().Tags()

	reached := make(map[string]struct{})
	for _, name := range manifest.Loaded() {
		reached[name] = struct{}{}
	}

	for _, name := range modules {
		if _, ok := reached[name]; !ok && manifestErr == nil {
			report.Problems = append(report.Problems, Problem{Module: name, Message: "not imported by the manifest"})
		}
		if problem := verifyModule(fsys, name, opts.Options); problem != nil {
			report.Problems = append(report.Problems, *problem)
		}
	}

	return report, nil
}

func verifyModule(fsys fs.FS, name string, opts Options) *Problem {
	loader := NewLoader(fsys, NewRegistry(), opts)
	if err := loader.Load(name); err != nil {
		msg := err.Error()
		if errors.Is(err, ErrAlreadyDefined) {
			msg = "duplicate definition: " + msg
		}
		return &Problem{Module: name, Message: msg}
	}

	trace := loader.Trace()
	if len(trace) == 0 || trace[len(trace)-1].Module != name {
		return &Problem{Module: name, Message: "module does not define its own tag last"}
	}

	defined := make(map[string]bool)
	for _, ev := range trace {
		defined[ev.Module] = true
	}
	for _, dep := range loader.Loaded() {
		if !defined[dep] {
			return &Problem{Module: name, Message: fmt.Sprintf("dependency module %s defined nothing", dep)}
		}
	}
	return nil
}

// registrationModules lists generated registration modules, excluding the
// manifest, in lexical order.
func registrationModules(fsys fs.FS, opts VerifyOptions) ([]string, error) {
	manifest := path.Clean(opts.Manifest)

	var modules []string
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name != "." && (d.Name()[0] == '.' || d.Name() == "node_modules") {
				return fs.SkipDir
			}
			return nil
		}
		if name == manifest || path.Ext(name) != opts.Extension {
			return nil
		}
		if model.IsGeneratedName(d.Name(), opts.Suffix) {
			modules = append(modules, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list registration modules: %w", err)
	}

	sort.Strings(modules)
	return modules, nil
}
