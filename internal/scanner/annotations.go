package scanner

import (
	"strings"

	"github.com/alexisbeaulieu97/elemgen/internal/jslex"
)

const (
	annotationTag        = "@tag"
	annotationDependency = "@dependency"
	annotationDependsOn  = "@dependsOn"
)

// annotation is a single @-directive found at the start of a doc comment line.
type annotation struct {
	name  string
	value string
	line  int
}

// parseDocComment extracts the directives elemgen understands from a /** */ comment.
// Unrelated JSDoc tags (@summary, @slot, @csspart ...) are ignored.
func parseDocComment(tok jslex.Token) []annotation {
	body := strings.TrimPrefix(tok.Text, "/**")
	body = strings.TrimSuffix(body, "*/")

	var out []annotation
	for offset, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		line = strings.TrimLeft(line, "*")
		line = strings.TrimSpace(line)

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case annotationTag, annotationDependency, annotationDependsOn:
		default:
			continue
		}

		value := ""
		if len(fields) > 1 {
			value = strings.Trim(fields[1], "`'\"")
		}
		out = append(out, annotation{name: fields[0], value: value, line: tok.Line + offset})
	}
	return out
}
