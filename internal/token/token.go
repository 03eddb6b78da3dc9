package token

import "fmt"

type TokenType string

// Token is the positional unit the parser attaches to every node.
// The analyzer only reads Type (for operators) and the position fields.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// Pos renders the position as "line:col".
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	CHAR   TokenType = "CHAR"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"
	STRING TokenType = "STRING"

	// Arithmetic
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	POWER    TokenType = "**"

	// Bitwise
	AMPERSAND TokenType = "&"
	PIPE      TokenType = "|"
	CARET     TokenType = "^"
	LSHIFT    TokenType = "<<"
	RSHIFT    TokenType = ">>"

	// Comparison
	LT     TokenType = "<"
	GT     TokenType = ">"
	LTE    TokenType = "<="
	GTE    TokenType = ">="
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="

	// Unary only
	BANG  TokenType = "!"
	TILDE TokenType = "~"

	// Assignment
	ASSIGN          TokenType = "="
	PLUS_ASSIGN     TokenType = "+="
	MINUS_ASSIGN    TokenType = "-="
	ASTERISK_ASSIGN TokenType = "*="
	SLASH_ASSIGN    TokenType = "/="
	PERCENT_ASSIGN  TokenType = "%="

	// Delimiters
	COMMA    TokenType = ","
	DOT      TokenType = "."
	COLON    TokenType = ":"
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	LET      TokenType = "LET"
	MUT      TokenType = "MUT"
	FN       TokenType = "FN"
	STRUCT   TokenType = "STRUCT"
	CLASS    TokenType = "CLASS"
	VARIANT  TokenType = "VARIANT"
	IF       TokenType = "IF"
	ELIF     TokenType = "ELIF"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	DEFER    TokenType = "DEFER"
)

// Operators maps operator lexemes to their token types.
// Fixture loaders use it to rebuild operator tokens from text.
var Operators = map[string]TokenType{
	"+": PLUS, "-": MINUS, "*": ASTERISK, "/": SLASH, "%": PERCENT, "**": POWER,
	"&": AMPERSAND, "|": PIPE, "^": CARET, "<<": LSHIFT, ">>": RSHIFT,
	"<": LT, ">": GT, "<=": LTE, ">=": GTE, "==": EQ, "!=": NOT_EQ,
	"!": BANG, "~": TILDE,
	"=": ASSIGN, "+=": PLUS_ASSIGN, "-=": MINUS_ASSIGN, "*=": ASTERISK_ASSIGN,
	"/=": SLASH_ASSIGN, "%=": PERCENT_ASSIGN,
}
