package clausewitz

import (
	"fmt"

	"github.com/KimNorgaard/go-clausewitz/internal/lexer"
	"github.com/KimNorgaard/go-clausewitz/internal/token"
)

// frame is a document still being filled, together with the brace that
// opened it.
type frame struct {
	doc  *Document
	open token.Token
}

// parser turns a token stream into a Document in a single pass. Nesting is
// tracked on an explicit stack, so input depth is bounded only by memory.
// Malformed input never stops the parser; each recovery is recorded as a
// ParseError.
type parser struct {
	l      *lexer.Lexer
	errors ParseErrors

	curToken  token.Token
	peekToken token.Token

	stack []frame
}

func newParser(l *lexer.Lexer) *parser {
	p := &parser{l: l}
	// Read two tokens, so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the recoveries made during parsing.
func (p *parser) Errors() ParseErrors {
	return p.errors
}

func (p *parser) parse() *Document {
	root := &Document{}
	p.stack = []frame{{doc: root}}

	for !p.curTokenIs(token.EOF) {
		p.parseEntry()
	}

	for len(p.stack) > 1 {
		p.errorf(p.top().open, "unclosed '{'")
		p.pop()
	}
	return root
}

// nextToken advances the token window. Comments never reach the parser, so
// peekToken is always the next significant token.
func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	for p.peekToken.Type == token.COMMENT {
		p.peekToken = p.l.NextToken()
	}
}

// The contract for all parse functions is that they are entered with
// p.curToken being the first token of the construct, and they must return
// with p.curToken pointing to the token *after* the construct.

func (p *parser) parseEntry() {
	switch p.curToken.Type {
	case token.LBRACE:
		p.push("", p.curToken)
		p.nextToken()
	case token.RBRACE:
		if len(p.stack) == 1 {
			p.errorf(p.curToken, "unexpected '}'")
		} else {
			p.pop()
		}
		p.nextToken()
	case token.ASSIGN:
		p.errorf(p.curToken, "unexpected '=' without a key")
		p.nextToken()
	default:
		p.checkLiteral(p.curToken)
		if p.peekTokenIs(token.ASSIGN) {
			p.parseAssignment()
			return
		}
		p.top().doc.Set("", p.curToken.Literal)
		p.nextToken()
	}
}

func (p *parser) parseAssignment() {
	key := p.curToken
	p.nextToken() // consume key
	p.nextToken() // consume '='
	for p.curTokenIs(token.ASSIGN) {
		p.errorf(p.curToken, "unexpected '='")
		p.nextToken()
	}

	switch {
	case p.curTokenIs(token.LBRACE):
		p.push(key.Literal, p.curToken)
		p.nextToken()
	case p.curToken.IsLiteral():
		p.checkLiteral(p.curToken)
		p.top().doc.Set(key.Literal, p.curToken.Literal)
		p.nextToken()
	default:
		// '}' or EOF; leave it for parseEntry.
		p.errorf(key, "missing value for key %q", key.Literal)
		p.top().doc.Set(key.Literal, "")
	}
}

func (p *parser) checkLiteral(tok token.Token) {
	if tok.Unterminated {
		p.errorf(tok, "unterminated quoted string")
	}
}

func (p *parser) push(key string, open token.Token) {
	child := p.top().doc.SetNested(key)
	p.stack = append(p.stack, frame{doc: child, open: open})
}

func (p *parser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *parser) top() *frame {
	return &p.stack[len(p.stack)-1]
}

func (p *parser) errorf(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, ParseError{Message: msg, Line: tok.Line, Column: tok.Column})
}

func (p *parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}
