package formula

import (
	"strings"
	"text/scanner"
)

// lexer tokenizes formula source text using text/scanner for the
// ident/number/whitespace machinery, with a thin layer on top to
// recognise the multi-rune operators "=>" and "<=>" and to attach a
// trailing polarity suffix ("+" or "-") directly onto an identifier,
// the same two-level approach gorgo's earley lexer uses for its
// token stream.
type lexer struct {
	sc  scanner.Scanner
	buf []token
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokPunct
)

type token struct {
	kind tokKind
	text string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	l := &lexer{}
	l.sc.Init(strings.NewReader(src))
	l.sc.Mode = scanner.ScanIdents
	l.sc.Whitespace = 1<<'\t' | 1<<'\n' | 1<<'\r' | 1<<' '
	return l
}

// peek returns, without consuming, the next token.
func (l *lexer) peek() token {
	if len(l.buf) == 0 {
		l.buf = append(l.buf, l.scan())
	}
	return l.buf[0]
}

// next consumes and returns the next token.
func (l *lexer) next() token {
	if len(l.buf) > 0 {
		t := l.buf[0]
		l.buf = l.buf[1:]
		return t
	}
	return l.scan()
}

func (l *lexer) scan() token {
	r := l.sc.Scan()
	pos := l.sc.Position
	switch r {
	case scanner.EOF:
		return token{kind: tokEOF, pos: pos.Offset, line: pos.Line}
	case scanner.Ident:
		text := l.sc.TokenText()
		for {
			p := l.sc.Peek()
			if p == '+' || p == '-' {
				l.sc.Next()
				text += string(p)
				continue
			}
			break
		}
		return token{kind: tokIdent, text: text, pos: pos.Offset, line: pos.Line}
	case '<':
		if l.sc.Peek() == '=' {
			l.sc.Next()
			if l.sc.Peek() == '>' {
				l.sc.Next()
				return token{kind: tokPunct, text: "<=>", pos: pos.Offset, line: pos.Line}
			}
		}
		return token{kind: tokPunct, text: "<", pos: pos.Offset, line: pos.Line}
	case '=':
		if l.sc.Peek() == '>' {
			l.sc.Next()
			return token{kind: tokPunct, text: "=>", pos: pos.Offset, line: pos.Line}
		}
		return token{kind: tokPunct, text: "=", pos: pos.Offset, line: pos.Line}
	default:
		return token{kind: tokPunct, text: string(r), pos: pos.Offset, line: pos.Line}
	}
}
