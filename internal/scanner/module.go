package scanner

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/elemgen/internal/config"
	"github.com/alexisbeaulieu97/elemgen/internal/jslex"
	"github.com/alexisbeaulieu97/elemgen/internal/model"
	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

// Module holds the local facts extracted from one source file.
type Module struct {
	Tag       string
	TagLine   int
	TypeName  string
	Export    model.ExportKind
	DependsOn []string
	// SelfDependency is set when a @dependency named the module's own tag.
	SelfDependency bool
}

type classDecl struct {
	name   string
	start  int // index of the first token of the declaration (export/abstract/class)
	export model.ExportKind
}

// ParseModule extracts the registration metadata declared by a source module.
// It returns (nil, nil) for modules without a @tag annotation and a
// *MalformedModuleError when a @tag is present but unusable.
func ParseModule(path string, src []byte) (*Module, error) {
	tokens, err := jslex.Tokenize(src)
	if err != nil {
		if !bytes.Contains(src, []byte(annotationTag)) {
			return nil, nil
		}
		line := 0
		if syntaxErr, ok := err.(*jslex.SyntaxError); ok {
			line = syntaxErr.Line
		}
		return nil, &elemerrors.MalformedModuleError{Path: path, Line: line, Reason: err.Error()}
	}

	var (
		tags   []annotation
		tagTok = -1
		deps   []string
		seen   = make(map[string]struct{})
	)

	for i, tok := range tokens {
		if !tok.IsDoc() {
			continue
		}
		for _, ann := range parseDocComment(tok) {
			switch ann.name {
			case annotationTag:
				tags = append(tags, ann)
				if tagTok < 0 {
					tagTok = i
				}
			default:
				if ann.value == "" {
					return nil, &elemerrors.MalformedModuleError{Path: path, Line: ann.line, Reason: ann.name + " annotation has no tag name"}
				}
				if _, dup := seen[ann.value]; dup {
					continue
				}
				seen[ann.value] = struct{}{}
				deps = append(deps, ann.value)
			}
		}
	}

	if len(tags) == 0 {
		return nil, nil
	}

	tag := tags[0]
	if len(tags) > 1 {
		lines := make([]string, len(tags))
		for i, t := range tags {
			lines[i] = fmt.Sprint(t.line)
		}
		return nil, &elemerrors.MalformedModuleError{
			Path:   path,
			Line:   tags[1].line,
			Reason: "multiple @tag annotations (lines " + strings.Join(lines, ", ") + ")",
		}
	}
	if tag.value == "" {
		return nil, &elemerrors.MalformedModuleError{Path: path, Line: tag.line, Reason: "@tag annotation has no tag name"}
	}
	if err := config.ValidateTagName(tag.value); err != nil {
		return nil, &elemerrors.MalformedModuleError{Path: path, Line: tag.line, Reason: fmt.Sprintf("invalid tag name %q", tag.value)}
	}
	// Dependency names are kept verbatim. One that is not a valid tag can
	// never resolve and is pruned with a warning during validation.

	decl, reason := implementingClass(tokens, tagTok)
	if decl == nil {
		return nil, &elemerrors.MalformedModuleError{Path: path, Line: tag.line, Reason: reason}
	}

	mod := &Module{
		Tag:      tag.value,
		TagLine:  tag.line,
		TypeName: decl.name,
		Export:   decl.export,
	}
	for _, dep := range deps {
		if dep == tag.value {
			mod.SelfDependency = true
			continue
		}
		mod.DependsOn = append(mod.DependsOn, dep)
	}

	return mod, nil
}

// implementingClass resolves the exported class the @tag doc comment describes.
func implementingClass(tokens []jslex.Token, tagTok int) (*classDecl, string) {
	classes, exports := declarations(tokens)

	for i := range classes {
		if classes[i].export == "" {
			classes[i].export = exports[classes[i].name]
		}
	}

	if start := attachedDeclaration(tokens, tagTok); start >= 0 {
		for i := range classes {
			if classes[i].start != start {
				continue
			}
			if classes[i].export == "" {
				return nil, fmt.Sprintf("class %s is not exported", classes[i].name)
			}
			return &classes[i], ""
		}
	}

	var exported []*classDecl
	for i := range classes {
		if classes[i].export != "" {
			exported = append(exported, &classes[i])
		}
	}

	switch len(exported) {
	case 0:
		return nil, "no exported class declaration found"
	case 1:
		return exported[0], ""
	default:
		names := make([]string, len(exported))
		for i, c := range exported {
			names[i] = c.name
		}
		sort.Strings(names)
		return nil, "ambiguous implementing type (" + strings.Join(names, ", ") + "); attach the @tag comment to one class"
	}
}

// declarations collects top-level class declarations and the names exported by
// export clauses (`export default X;`, `export { X, Y as default }`).
func declarations(tokens []jslex.Token) ([]classDecl, map[string]model.ExportKind) {
	sig := significant(tokens)
	exports := make(map[string]model.ExportKind)
	var classes []classDecl

	depth := 0
	for i := 0; i < len(sig); i++ {
		tok := tokens[sig[i]]
		at := func(offset int) jslex.Token {
			if i+offset < 0 || i+offset >= len(sig) {
				return jslex.Token{Kind: jslex.EOF}
			}
			return tokens[sig[i+offset]]
		}

		switch {
		case tok.Is("{"):
			depth++
			continue
		case tok.Is("}"):
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth != 0 {
			continue
		}

		if tok.Is("class") && at(1).Kind == jslex.Ident && !at(-1).Is(".") {
			decl := classDecl{name: at(1).Text, start: sig[i]}
			back := -1
			if at(back).Is("abstract") {
				decl.start = sig[i+back]
				back--
			}
			switch {
			case at(back).Is("default") && at(back-1).Is("export"):
				decl.export = model.ExportDefault
				decl.start = sig[i+back-1]
			case at(back).Is("export"):
				decl.export = model.ExportNamed
				decl.start = sig[i+back]
			}
			classes = append(classes, decl)
			continue
		}

		if !tok.Is("export") {
			continue
		}

		next := at(1)
		switch {
		case next.Is("default") && at(2).Kind == jslex.Ident && !isDeclarationKeyword(at(2).Text):
			exports[at(2).Text] = model.ExportDefault
		case next.Is("{"):
			j := 2
			for ; at(j).Kind != jslex.EOF && !at(j).Is("}"); j++ {
				name := at(j)
				if name.Kind != jslex.Ident || at(j-1).Is("as") {
					continue
				}
				if at(j+1).Is("as") {
					alias := at(j + 2)
					if alias.Is("default") {
						exports[name.Text] = model.ExportDefault
					} else if alias.Text == name.Text {
						exports[name.Text] = model.ExportNamed
					}
					continue
				}
				if _, ok := exports[name.Text]; !ok {
					exports[name.Text] = model.ExportNamed
				}
			}
			// `export { ... } from '...'` re-exports foreign bindings.
			if at(j+1).Is("from") {
				for k := 2; k < j; k++ {
					delete(exports, at(k).Text)
				}
			}
			i += j
		}
	}

	return classes, exports
}

// attachedDeclaration returns the token index where the declaration directly
// following the doc comment at docIdx starts, skipping decorators. It returns
// -1 when the comment is not followed by a class declaration.
func attachedDeclaration(tokens []jslex.Token, docIdx int) int {
	if docIdx < 0 {
		return -1
	}

	i := skipComments(tokens, docIdx+1)
	for i < len(tokens) && tokens[i].Kind == jslex.Ident && strings.HasPrefix(tokens[i].Text, "@") {
		i = skipComments(tokens, skipDecorator(tokens, i))
	}
	if i >= len(tokens) {
		return -1
	}

	start := i
	if tokens[i].Is("export") {
		i = skipComments(tokens, i+1)
		if i < len(tokens) && tokens[i].Is("default") {
			i = skipComments(tokens, i+1)
		}
	}
	if i < len(tokens) && tokens[i].Is("abstract") {
		i = skipComments(tokens, i+1)
	}
	if i < len(tokens) && tokens[i].Is("class") {
		return start
	}
	return -1
}

// skipDecorator advances past `@name`, `@a.b` and `@name(args)` forms.
func skipDecorator(tokens []jslex.Token, i int) int {
	i++
	for i+1 < len(tokens) && tokens[i].Is(".") && tokens[i+1].Kind == jslex.Ident {
		i += 2
	}
	if i >= len(tokens) || !tokens[i].Is("(") {
		return i
	}

	depth := 0
	for ; i < len(tokens); i++ {
		switch {
		case tokens[i].Is("("):
			depth++
		case tokens[i].Is(")"):
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return i
}

func skipComments(tokens []jslex.Token, i int) int {
	for i < len(tokens) && tokens[i].IsComment() && !tokens[i].IsDoc() {
		i++
	}
	return i
}

func significant(tokens []jslex.Token) []int {
	idx := make([]int, 0, len(tokens))
	for i, tok := range tokens {
		if tok.IsComment() || tok.Kind == jslex.EOF {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

func isDeclarationKeyword(word string) bool {
	switch word {
	case "class", "abstract", "function", "async", "const", "let", "var", "interface", "enum", "type":
		return true
	}
	return false
}
