// Package jslex tokenises the declaration surface of TypeScript and JavaScript
// modules. It understands enough of the language (comments, strings, template
// literals, regular expressions) that annotation lookalikes inside literals are
// never mistaken for real declarations. It does not build a syntax tree.
package jslex

import (
	"fmt"
	"strings"
)

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Punct
	String
	Template
	Number
	Regexp
	LineComment
	BlockComment
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case Punct:
		return "punctuation"
	case String:
		return "string"
	case Template:
		return "template"
	case Number:
		return "number"
	case Regexp:
		return "regexp"
	case LineComment:
		return "line comment"
	case BlockComment:
		return "block comment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a lexical unit. For strings Text holds the unquoted value; for
// everything else it is the raw source text.
type Token struct {
	Kind Kind
	Text string
	Line int
}

// IsDoc reports whether the token is a /** doc comment.
func (t Token) IsDoc() bool {
	return t.Kind == BlockComment && strings.HasPrefix(t.Text, "/**") && t.Text != "/**/"
}

// IsComment reports whether the token is any kind of comment.
func (t Token) IsComment() bool {
	return t.Kind == LineComment || t.Kind == BlockComment
}

// Is reports whether the token is the given identifier or punctuation.
func (t Token) Is(text string) bool {
	return (t.Kind == Ident || t.Kind == Punct) && t.Text == text
}

// SyntaxError reports input the lexer could not tokenise.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// keywords after which a slash starts a regular expression rather than a division.
var regexKeywords = map[string]struct{}{
	"return": {}, "typeof": {}, "instanceof": {}, "in": {}, "of": {}, "new": {},
	"delete": {}, "void": {}, "throw": {}, "case": {}, "do": {}, "else": {}, "yield": {}, "await": {},
}

// keywords whose parenthesised header is followed by a statement, so a slash
// after the closing paren starts a regular expression.
var headerKeywords = map[string]struct{}{
	"if": {}, "while": {}, "for": {}, "with": {},
}

type lexer struct {
	src    string
	pos    int
	line   int
	tokens []Token
	// parens records, per open paren, whether it starts a statement header.
	parens []bool
	// headerClose is the token index of the last ")" that closed a header.
	headerClose int
}

// Tokenize splits src into tokens, ending with a single EOF token.
func Tokenize(src []byte) ([]Token, error) {
	lx := &lexer{src: string(src), line: 1, headerClose: -1}
	if err := lx.run(0); err != nil {
		return nil, err
	}
	lx.tokens = append(lx.tokens, Token{Kind: EOF, Line: lx.line})
	return lx.tokens, nil
}

// run lexes until EOF, or until the closing brace of a template substitution
// when depth > 0.
func (lx *lexer) run(depth int) error {
	braces := 0
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\n':
			lx.line++
			lx.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			lx.pos++
		case c == '/' && lx.peek(1) == '/':
			lx.lineComment()
		case c == '/' && lx.peek(1) == '*':
			if err := lx.blockComment(); err != nil {
				return err
			}
		case c == '/' && lx.regexAllowed():
			if err := lx.regexp(); err != nil {
				return err
			}
		case c == '\'' || c == '"':
			if err := lx.str(c); err != nil {
				return err
			}
		case c == '`':
			if err := lx.template(); err != nil {
				return err
			}
		case isIdentStart(c):
			lx.ident()
		case isDigit(c):
			lx.number()
		default:
			if depth > 0 {
				if c == '{' {
					braces++
				} else if c == '}' {
					if braces == 0 {
						lx.pos++
						return nil
					}
					braces--
				}
			}
			lx.punct()
		}
	}
	if depth > 0 {
		return &SyntaxError{Line: lx.line, Msg: "unterminated template substitution"}
	}
	return nil
}

func (lx *lexer) peek(offset int) byte {
	if lx.pos+offset < len(lx.src) {
		return lx.src[lx.pos+offset]
	}
	return 0
}

func (lx *lexer) emit(kind Kind, text string, line int) {
	lx.tokens = append(lx.tokens, Token{Kind: kind, Text: text, Line: line})
}

func (lx *lexer) lineComment() {
	start := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		lx.pos++
	}
	lx.emit(LineComment, lx.src[start:lx.pos], lx.line)
}

func (lx *lexer) blockComment() error {
	start, line := lx.pos, lx.line
	end := strings.Index(lx.src[lx.pos+2:], "*/")
	if end < 0 {
		return &SyntaxError{Line: line, Msg: "unterminated block comment"}
	}
	lx.pos += end + 4
	text := lx.src[start:lx.pos]
	lx.line += strings.Count(text, "\n")
	lx.emit(BlockComment, text, line)
	return nil
}

func (lx *lexer) str(quote byte) error {
	line := lx.line
	lx.pos++
	var sb strings.Builder
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == quote:
			lx.pos++
			lx.emit(String, sb.String(), line)
			return nil
		case c == '\\' && lx.pos+1 < len(lx.src):
			next := lx.src[lx.pos+1]
			switch next {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\n':
				lx.line++
			default:
				sb.WriteByte(next)
			}
			lx.pos += 2
		case c == '\n':
			return &SyntaxError{Line: line, Msg: "unterminated string literal"}
		default:
			sb.WriteByte(c)
			lx.pos++
		}
	}
	return &SyntaxError{Line: line, Msg: "unterminated string literal"}
}

func (lx *lexer) template() error {
	start, line := lx.pos, lx.line
	lx.pos++
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '`':
			lx.pos++
			lx.emit(Template, lx.src[start:lx.pos], line)
			return nil
		case c == '\\':
			if lx.peek(1) == '\n' {
				lx.line++
			}
			lx.pos += 2
		case c == '$' && lx.peek(1) == '{':
			lx.pos += 2
			// Substitutions are lexed only to find their end; their tokens are dropped.
			mark := len(lx.tokens)
			if err := lx.run(1); err != nil {
				return err
			}
			lx.tokens = lx.tokens[:mark]
		case c == '\n':
			lx.line++
			lx.pos++
		default:
			lx.pos++
		}
	}
	return &SyntaxError{Line: line, Msg: "unterminated template literal"}
}

func (lx *lexer) regexp() error {
	start, line := lx.pos, lx.line
	lx.pos++
	inClass := false
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\n':
			return &SyntaxError{Line: line, Msg: "unterminated regular expression"}
		case c == '\\':
			lx.pos += 2
			continue
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			lx.pos++
			for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
				lx.pos++
			}
			lx.emit(Regexp, lx.src[start:lx.pos], line)
			return nil
		}
		lx.pos++
	}
	return &SyntaxError{Line: line, Msg: "unterminated regular expression"}
}

// regexAllowed decides whether a slash begins a regular expression literal by
// looking at the previous significant token.
func (lx *lexer) regexAllowed() bool {
	for i := len(lx.tokens) - 1; i >= 0; i-- {
		prev := lx.tokens[i]
		if prev.IsComment() {
			continue
		}
		switch prev.Kind {
		case Ident:
			_, ok := regexKeywords[prev.Text]
			return ok
		case Number, String, Template, Regexp:
			return false
		case Punct:
			if prev.Text == ")" {
				return i == lx.headerClose
			}
			return prev.Text != "]" && prev.Text != "}"
		}
	}
	return true
}

func (lx *lexer) ident() {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
		lx.pos++
	}
	lx.emit(Ident, lx.src[start:lx.pos], lx.line)
}

func (lx *lexer) number() {
	start := lx.pos
	for lx.pos < len(lx.src) && (isIdentPart(lx.src[lx.pos]) || lx.src[lx.pos] == '.') {
		lx.pos++
	}
	lx.emit(Number, lx.src[start:lx.pos], lx.line)
}

func (lx *lexer) punct() {
	switch lx.src[lx.pos] {
	case '(':
		lx.parens = append(lx.parens, lx.opensHeader())
	case ')':
		header := false
		if n := len(lx.parens); n > 0 {
			header = lx.parens[n-1]
			lx.parens = lx.parens[:n-1]
		}
		lx.headerClose = -1
		if header {
			lx.headerClose = len(lx.tokens)
		}
	}
	lx.emit(Punct, lx.src[lx.pos:lx.pos+1], lx.line)
	lx.pos++
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || c == '@' || c == '#' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// opensHeader reports whether a "(" at the current position follows if,
// while, for or with (including "for await").
func (lx *lexer) opensHeader() bool {
	var prev []Token
	for i := len(lx.tokens) - 1; i >= 0 && len(prev) < 3; i-- {
		if !lx.tokens[i].IsComment() {
			prev = append(prev, lx.tokens[i])
		}
	}
	if len(prev) == 0 || prev[0].Kind != Ident {
		return false
	}
	if prev[0].Text == "await" && len(prev) > 1 && prev[1].Is("for") {
		prev = prev[1:]
	}
	if _, ok := headerKeywords[prev[0].Text]; !ok {
		return false
	}
	return len(prev) < 2 || !prev[1].Is(".")
}
