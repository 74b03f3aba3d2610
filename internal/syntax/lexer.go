package syntax

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mark3labs/ridl/internal/diag"
)

type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokInt
	TokFloat
	TokStr
	TokChar
	TokLifetime
	TokPunct
	TokOuterDoc // `/// text`
	TokInnerDoc // `//! text`
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "end of input"
	case TokIdent:
		return "identifier"
	case TokInt:
		return "integer literal"
	case TokFloat:
		return "float literal"
	case TokStr:
		return "string literal"
	case TokChar:
		return "char literal"
	case TokLifetime:
		return "lifetime"
	case TokPunct:
		return "punctuation"
	case TokOuterDoc, TokInnerDoc:
		return "doc comment"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a lexical token. For string literals Val holds the unescaped value.
// A raw identifier `r#name` has Val "name" and Raw set; it never matches a
// keyword.
type Token struct {
	Kind TokenKind
	Val  string
	Raw  bool
	Span diag.Span
}

func (t Token) is(kind TokenKind, val string) bool {
	return t.Kind == kind && t.Val == val && !t.Raw
}

// multi-character punctuation, longest first.
var puncts = []string{"::", "->", "=>", "..", "==", "!=", "<=", ">=", "&&", "||"}

// Lexer splits source text into tokens. `>` and `&` are never merged with a
// following character so nested generics and references parse naturally.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Tokenize returns every token up to and including TokEOF.
func Tokenize(src string) ([]Token, error) {
	l := NewLexer(src)
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == TokEOF {
			return out, nil
		}
	}
}

func (l *Lexer) here() diag.LineColumn {
	return diag.LineColumn{Line: l.line, Column: l.col}
}

func (l *Lexer) peekRune(offset int) rune {
	p := l.pos
	for i := 0; i < offset && p < len(l.src); i++ {
		_, size := utf8.DecodeRuneInString(l.src[p:])
		p += size
	}
	if p >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[p:])
	return r
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) errorf(start diag.LineColumn, format string, args ...any) error {
	return diag.Errorf(diag.Span{Start: start, End: l.here()}, diag.ReadError, format, args...)
}

// Next returns the next token, skipping whitespace and plain comments.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}
	start := l.here()
	if l.pos >= len(l.src) {
		return Token{Kind: TokEOF, Span: diag.Span{Start: start, End: start}}, nil
	}
	tok := func(kind TokenKind, val string) (Token, error) {
		return Token{Kind: kind, Val: val, Span: diag.Span{Start: start, End: l.here()}}, nil
	}

	rest := l.src[l.pos:]
	switch {
	case strings.HasPrefix(rest, "///") && !strings.HasPrefix(rest, "////"):
		return tok(TokOuterDoc, l.lineComment(3))
	case strings.HasPrefix(rest, "//!"):
		return tok(TokInnerDoc, l.lineComment(3))
	}

	r := l.peekRune(0)
	switch {
	case r == 'r' && (l.peekRune(1) == '"' || (l.peekRune(1) == '#' && (l.peekRune(2) == '"' || l.peekRune(2) == '#'))):
		s, err := l.rawString(start)
		if err != nil {
			return Token{}, err
		}
		return tok(TokStr, s)
	case r == 'r' && l.peekRune(1) == '#' && isIdentStart(l.peekRune(2)):
		l.advance()
		l.advance()
		name := l.ident()
		return Token{Kind: TokIdent, Val: name, Raw: true, Span: diag.Span{Start: start, End: l.here()}}, nil
	case isIdentStart(r):
		return tok(TokIdent, l.ident())
	case unicode.IsDigit(r):
		return l.number(start)
	case r == '"':
		s, err := l.quoted(start, '"')
		if err != nil {
			return Token{}, err
		}
		return tok(TokStr, s)
	case r == '\'':
		// 'a' is a char, 'a (no closing quote) is a lifetime.
		if l.peekRune(2) == '\'' || l.peekRune(1) == '\\' {
			s, err := l.quoted(start, '\'')
			if err != nil {
				return Token{}, err
			}
			return tok(TokChar, s)
		}
		l.advance()
		begin := l.pos
		for l.pos < len(l.src) {
			c := l.peekRune(0)
			if c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
				break
			}
			l.advance()
		}
		return tok(TokLifetime, l.src[begin:l.pos])
	}

	for _, p := range puncts {
		if strings.HasPrefix(rest, p) {
			for range p {
				l.advance()
			}
			return tok(TokPunct, p)
		}
	}
	if strings.ContainsRune("#![](){}<>,;:=&*+-/.?@|^%~$", r) {
		l.advance()
		return tok(TokPunct, string(r))
	}
	l.advance()
	return Token{}, l.errorf(start, "unexpected character %q", r)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func (l *Lexer) ident() string {
	begin := l.pos
	for l.pos < len(l.src) {
		c := l.peekRune(0)
		if c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			break
		}
		l.advance()
	}
	return l.src[begin:l.pos]
}

func (l *Lexer) skipTrivia() error {
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]
		switch {
		case unicode.IsSpace(l.peekRune(0)):
			l.advance()
		case strings.HasPrefix(rest, "////"):
			l.lineComment(0)
		case strings.HasPrefix(rest, "///"), strings.HasPrefix(rest, "//!"):
			return nil
		case strings.HasPrefix(rest, "//"):
			l.lineComment(0)
		case strings.HasPrefix(rest, "/*"):
			if err := l.blockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// lineComment consumes to end of line and returns the text after the
// first skip bytes.
func (l *Lexer) lineComment(skip int) string {
	for i := 0; i < skip; i++ {
		l.advance()
	}
	begin := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.advance()
	}
	return strings.TrimRight(l.src[begin:l.pos], "\r")
}

func (l *Lexer) blockComment() error {
	start := l.here()
	depth := 0
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]
		switch {
		case strings.HasPrefix(rest, "/*"):
			depth++
			l.advance()
			l.advance()
		case strings.HasPrefix(rest, "*/"):
			depth--
			l.advance()
			l.advance()
			if depth == 0 {
				return nil
			}
		default:
			l.advance()
		}
	}
	return l.errorf(start, "unterminated block comment")
}

func (l *Lexer) number(start diag.LineColumn) (Token, error) {
	begin := l.pos
	float := false
	for l.pos < len(l.src) {
		c := l.peekRune(0)
		switch {
		case c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c):
			l.advance()
		case c == '.' && unicode.IsDigit(l.peekRune(1)) && !float:
			float = true
			l.advance()
		default:
			kind := TokInt
			if float {
				kind = TokFloat
			}
			return Token{Kind: kind, Val: l.src[begin:l.pos], Span: diag.Span{Start: start, End: l.here()}}, nil
		}
	}
	kind := TokInt
	if float {
		kind = TokFloat
	}
	return Token{Kind: kind, Val: l.src[begin:l.pos], Span: diag.Span{Start: start, End: l.here()}}, nil
}

func (l *Lexer) quoted(start diag.LineColumn, quote rune) (string, error) {
	l.advance()
	var b strings.Builder
	for l.pos < len(l.src) {
		r := l.advance()
		switch r {
		case quote:
			return b.String(), nil
		case '\\':
			if l.pos >= len(l.src) {
				return "", l.errorf(start, "unterminated literal")
			}
			e := l.advance()
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '0':
				b.WriteByte(0)
			case '\\', '"', '\'':
				b.WriteRune(e)
			case '\n':
				for unicode.IsSpace(l.peekRune(0)) {
					l.advance()
				}
			default:
				return "", l.errorf(start, "unsupported escape sequence \\%c", e)
			}
		default:
			b.WriteRune(r)
		}
	}
	return "", l.errorf(start, "unterminated literal")
}

func (l *Lexer) rawString(start diag.LineColumn) (string, error) {
	l.advance() // r
	hashes := 0
	for l.peekRune(0) == '#' {
		hashes++
		l.advance()
	}
	if l.peekRune(0) != '"' {
		return "", l.errorf(start, "malformed raw string literal")
	}
	l.advance()
	closing := "\"" + strings.Repeat("#", hashes)
	end := strings.Index(l.src[l.pos:], closing)
	if end < 0 {
		return "", l.errorf(start, "unterminated raw string literal")
	}
	body := l.src[l.pos : l.pos+end]
	for range body {
		l.advance()
	}
	for range closing {
		l.advance()
	}
	return body, nil
}
