package token

// Type is the type of a token.
type Type string

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int

	// Unterminated is set on a STRING token whose closing quote was never
	// found. The literal was closed at the end of the line or input.
	Unterminated bool
}

const (
	// Special tokens
	EOF Type = "EOF" // End of file

	// Literals
	WORD   Type = "WORD"   // bare_word, 1444.11.11, -0.5
	STRING Type = "STRING" // "quoted literal"

	// Delimiters
	ASSIGN Type = "="
	LBRACE Type = "{"
	RBRACE Type = "}"

	COMMENT Type = "COMMENT" // # a comment
)

// IsLiteral reports whether the token carries a scalar literal that can be
// used as a key or a value.
func (t Token) IsLiteral() bool {
	return t.Type == WORD || t.Type == STRING
}
