package framing

//go:generate stringer -type=TokenType -trimprefix=Token
type TokenType uint64

const (
	TokenIf TokenType = iota
	TokenOpenCurly
	TokenCloseCurly
	TokenOpenParentheses
	TokenCloseParentheses
	TokenAssignMarker
	TokenAssign
	TokenSemicolon
	TokenIdentifier
	TokenInteger
	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenGreater
	TokenLess
)

var keywordTable = map[string]TokenType{
	"if": TokenIf,
}

var operatorTable = map[rune]TokenType{
	'@': TokenAssignMarker,
	'=': TokenAssign,
	';': TokenSemicolon,
	'(': TokenOpenParentheses,
	')': TokenCloseParentheses,
	'{': TokenOpenCurly,
	'}': TokenCloseCurly,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMulti,
	'/': TokenDiv,
	'>': TokenGreater,
	'<': TokenLess,
}

// Token is a classified lexeme. Offset is the byte offset of its first rune
// in the source text.
type Token struct {
	Typ    TokenType
	Value  string
	Offset int
}

func (t Token) String() string {
	return t.Value
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Value)
}

// signsInteger reports whether a '-' directly after a token of this type
// starts a negative integer literal rather than a subtraction.
func (t TokenType) signsInteger() bool {
	switch t {
	case TokenAssign, TokenIf, TokenOpenParentheses, TokenOpenCurly, TokenSemicolon,
		TokenPlus, TokenMinus, TokenMulti, TokenDiv, TokenGreater, TokenLess:
		return true
	default:
		return false
	}
}

func (t TokenType) isExprStart() bool {
	return t == TokenIdentifier || t == TokenInteger || t == TokenOpenParentheses
}

func (t TokenType) isStatementStart() bool {
	return t == TokenIf || t == TokenAssignMarker || t == TokenOpenCurly || t.isExprStart()
}
