package framing

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

const EOF rune = -1

type stateFunc func(l *Lexer) stateFunc

type Lexer struct {
	reader *bufio.Reader
	offset int
	start  int
	tokens []Token
	err    error
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
	}
}

// Tokenize splits src into tokens. The whole text is always scanned from the
// beginning.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(strings.NewReader(src)).Run()
}

// Run scans the input to the end and returns every token in source order, or
// the first lexical error.
func (l *Lexer) Run() ([]Token, error) {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	if l.err != nil {
		return nil, l.err
	}

	return l.tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = l.offset

		switch r := l.peek(); {
		case r == EOF:
			return nil
		case unicode.IsSpace(r):
			l.next()
			continue
		case isDigit(r):
			return numberState
		case unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	return l.emmitValue(TokenInteger, num.String())
}

// negativeNumberState scans the digits of a literal whose '-' was already
// consumed by operatorState.
func negativeNumberState(l *Lexer) stateFunc {
	var num strings.Builder
	num.WriteRune('-')
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	return l.emmitValue(TokenInteger, num.String())
}

// identifierState scans a letter followed by letters and digits. Letters are
// any Unicode letter, not only ASCII.
func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || isDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emmitValue(t, id.String())
	}

	return l.emmitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if r == '-' && isDigit(l.peek()) && l.signAllowed() {
		return negativeNumberState
	}

	if tok, ok := operatorTable[r]; ok {
		return l.emmitValue(tok, string(r))
	}

	return l.errorf(r)
}

func (l *Lexer) signAllowed() bool {
	if len(l.tokens) == 0 {
		return true
	}

	return l.tokens[len(l.tokens)-1].Typ.signsInteger()
}

func (l *Lexer) errorf(r rune) stateFunc {
	l.err = &LexicalError{
		Char:   r,
		Offset: l.start,
	}

	return nil
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	l.tokens = append(l.tokens, Token{
		Typ:    t,
		Value:  val,
		Offset: l.start,
	})

	return defaultState
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}
	_ = l.reader.UnreadRune()

	return r
}

func (l *Lexer) next() rune {
	r, size, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}
	l.offset += size

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
