package lexer

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode"

	"github.com/KimNorgaard/go-clausewitz/internal/token"
)

const (
	eof = -1
	bom = '\uFEFF'
)

// Lexer holds the state for tokenizing Clausewitz source.
type Lexer struct {
	r      *bufio.Reader
	buf    bytes.Buffer
	ch     rune
	line   int
	column int
	err    error
}

// New creates and returns a new Lexer. A leading byte order mark is skipped.
func New(r io.Reader) *Lexer {
	l := &Lexer{
		r:      bufio.NewReader(r),
		line:   1,
		column: 1,
	}
	l.readRune()
	if l.ch == bom {
		l.readRune()
	}
	return l
}

// Err returns the first error returned by the underlying reader, other
// than io.EOF.
func (l *Lexer) Err() error {
	return l.err
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	tok := token.Token{Line: l.line, Column: l.column}
	switch l.ch {
	case eof:
		tok.Type = token.EOF
	case '=', '{', '}':
		tok.Type = token.Type(l.ch)
		tok.Literal = string(l.ch)
		l.advance()
	case '#':
		tok.Type = token.COMMENT
		tok.Literal = l.readComment()
	case '"':
		tok.Type = token.STRING
		tok.Literal, tok.Unterminated = l.readQuoted()
	default:
		tok.Type = token.WORD
		tok.Literal = l.readWord()
	}
	return tok
}

func (l *Lexer) readRune() {
	r, _, err := l.r.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) && l.err == nil {
			l.err = err
		}
		l.ch = eof
		return
	}
	l.ch = r
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.readRune()
	l.column++
}

func (l *Lexer) skipWhitespace() {
	for l.ch != eof && unicode.IsSpace(l.ch) {
		l.advance()
	}
}

// readComment consumes a comment up to, but not including, the newline.
func (l *Lexer) readComment() string {
	l.advance() // consume '#'
	l.buf.Reset()
	for l.ch != '\n' && l.ch != eof {
		l.buf.WriteRune(l.ch)
		l.advance()
	}
	return l.buf.String()
}

func (l *Lexer) readWord() string {
	l.buf.Reset()
	for l.ch != eof && !unicode.IsSpace(l.ch) && !IsDelimiter(l.ch) {
		l.buf.WriteRune(l.ch)
		l.advance()
	}
	return l.buf.String()
}

// readQuoted reads a quoted literal. A literal still open at the end of the
// line is closed there; the newline itself is left for skipWhitespace.
func (l *Lexer) readQuoted() (string, bool) {
	l.advance() // consume opening quote
	l.buf.Reset()
	for {
		switch l.ch {
		case '"':
			l.advance() // consume closing quote
			return l.buf.String(), false
		case '\n', eof:
			return string(bytes.TrimSuffix(l.buf.Bytes(), []byte("\r"))), true
		case '\\':
			if r, ok := unescape(l.peekRune()); ok {
				l.advance()
				l.buf.WriteRune(r)
			} else {
				l.buf.WriteRune('\\')
			}
		default:
			l.buf.WriteRune(l.ch)
		}
		l.advance()
	}
}

func (l *Lexer) peekRune() rune {
	r, _, err := l.r.ReadRune()
	if err != nil {
		return eof
	}
	_ = l.r.UnreadRune()
	return r
}

// IsDelimiter reports whether ch ends a bare word.
func IsDelimiter(ch rune) bool {
	switch ch {
	case '=', '{', '}', '#', '"':
		return true
	}
	return false
}

func unescape(ch rune) (rune, bool) {
	switch ch {
	case '"', '\\':
		return ch, true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	}
	return 0, false
}
