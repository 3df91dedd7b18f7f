package framing

import (
	"fmt"
	"strconv"
)

// Parser builds an AST from a token sequence by recursive descent:
//
//	Program        -> Statement*
//	Statement      -> IfStatement | AssignStatement | BlockStatement | ExpressionStatement
//	BlockStatement -> '{' Statement* '}'
//	IfStatement    -> 'if' '(' Expression? ')' Statement
//	AssignStatement-> '@' Identifier '=' Expression ';'
//	ExpressionStatement -> Expression ';'
//	Expression     -> PlusMinus ( ('>' | '<') PlusMinus )?
//	PlusMinus      -> MulDiv ( ('+' | '-') MulDiv )*
//	MulDiv         -> Simple ( ('*' | '/') Simple )*
//	Simple         -> Identifier | Integer | '(' Expression ')'
//
// The first error stops the parse.
type Parser struct {
	tokens []Token
	pos    int
	scope  map[string]*Variable
}

func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
	}
}

func Parse(tokens []Token) (*AST, error) {
	return NewParser(tokens).Run()
}

// Run parses the whole token sequence. Every call starts a fresh variable
// table, so trees from different runs never share a *Variable.
func (p *Parser) Run() (*AST, error) {
	p.pos = 0
	p.scope = make(map[string]*Variable)

	root := &BlockStmt{}
	for p.pos < len(p.tokens) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		root.Statements = append(root.Statements, stmt)
	}
	root.Span = Span{0, len(p.tokens)}

	return &AST{
		Root:      root,
		Variables: p.scope,
	}, nil
}

func (p *Parser) peek() (*Token, error) {
	if p.pos >= len(p.tokens) {
		return nil, &SyntaxError{
			Index: p.pos,
			Msg:   "expected more tokens",
		}
	}

	tok := p.tokens[p.pos]
	return &tok, nil
}

func (p *Parser) next() (*Token, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	p.pos++
	return tok, nil
}

// check reports whether the current token has one of the given types. It is
// false at the end of input.
func (p *Parser) check(types ...TokenType) bool {
	if p.pos >= len(p.tokens) {
		return false
	}

	for _, typ := range types {
		if p.tokens[p.pos].Typ == typ {
			return true
		}
	}

	return false
}

func (p *Parser) expect(typ TokenType) (*Token, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Typ != typ {
		return nil, p.errorf(tok, "expected %s", typ)
	}

	p.pos++
	return tok, nil
}

func (p *Parser) errorf(tok *Token, format string, args ...interface{}) error {
	return &SyntaxError{
		Token: tok,
		Index: p.pos,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (p *Parser) statement() (Stmt, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Typ == TokenIf:
		return p.ifStmt()
	case tok.Typ == TokenAssignMarker:
		return p.assignStmt()
	case tok.Typ == TokenOpenCurly:
		return p.blockStmt()
	case tok.Typ.isExprStart():
		return p.exprStmt()
	default:
		return nil, p.errorf(tok, "expected statement")
	}
}

func (p *Parser) blockStmt() (*BlockStmt, error) {
	start := p.pos
	if _, err := p.expect(TokenOpenCurly); err != nil {
		return nil, err
	}

	block := &BlockStmt{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if !tok.Typ.isStatementStart() {
			break
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		block.Statements = append(block.Statements, stmt)
	}

	if _, err := p.expect(TokenCloseCurly); err != nil {
		return nil, err
	}

	block.Span = Span{start, p.pos}
	return block, nil
}

func (p *Parser) ifStmt() (*IfStmt, error) {
	start := p.pos
	if _, err := p.expect(TokenIf); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	var cond Expr = &EmptyExpr{Span{p.pos, p.pos}}
	if !p.check(TokenCloseParentheses) {
		var err error
		if cond, err = p.expr(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &IfStmt{
		Span: Span{start, p.pos},
		Cond: cond,
		Body: body,
	}, nil
}

func (p *Parser) assignStmt() (*AssignStmt, error) {
	start := p.pos
	if _, err := p.expect(TokenAssignMarker); err != nil {
		return nil, err
	}

	v, err := p.variable()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &AssignStmt{
		Span:  Span{start, p.pos},
		Var:   v,
		Value: value,
	}, nil
}

func (p *Parser) exprStmt() (*ExprStmt, error) {
	start := p.pos
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &ExprStmt{
		Span: Span{start, p.pos},
		Expr: expr,
	}, nil
}

// expr allows a single comparison; "a > b > c" fails on the second '>'.
func (p *Parser) expr() (Expr, error) {
	start := p.pos
	lhs, err := p.additiveExpr()
	if err != nil {
		return nil, err
	}

	if !p.check(TokenGreater, TokenLess) {
		return lhs, nil
	}

	op, _ := p.next()
	rhs, err := p.additiveExpr()
	if err != nil {
		return nil, err
	}

	return &BinaryExpr{
		Span:      Span{start, p.pos},
		Operation: binaryOpTable[op.Typ],
		Op1:       lhs,
		Op2:       rhs,
	}, nil
}

func (p *Parser) additiveExpr() (Expr, error) {
	start := p.pos
	lhs, err := p.multiplicativeExpr()
	if err != nil {
		return nil, err
	}

	for p.check(TokenPlus, TokenMinus) {
		op, _ := p.next()
		rhs, err := p.multiplicativeExpr()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Span:      Span{start, p.pos},
			Operation: binaryOpTable[op.Typ],
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) multiplicativeExpr() (Expr, error) {
	start := p.pos
	lhs, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.check(TokenMulti, TokenDiv) {
		op, _ := p.next()
		rhs, err := p.primary()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Span:      Span{start, p.pos},
			Operation: binaryOpTable[op.Typ],
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) primary() (Expr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Typ {
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenIdentifier:
		start := p.pos
		v, err := p.variable()
		if err != nil {
			return nil, err
		}

		return &VariableRef{Span{start, p.pos}, v}, nil
	case TokenInteger:
		return p.literal()
	default:
		return nil, p.errorf(tok, "expected expression")
	}
}

func (p *Parser) parenthesisedExpression() (Expr, error) {
	if _, err := p.expect(TokenOpenParentheses); err != nil {
		return nil, err
	}

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return expr, nil
}

func (p *Parser) literal() (*Constant, error) {
	tok, err := p.expect(TokenInteger)
	if err != nil {
		return nil, err
	}

	v, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		p.pos--
		return nil, p.errorf(tok, "integer out of range")
	}

	return &Constant{Span{p.pos - 1, p.pos}, v}, nil
}

// variable resolves the identifier through the parse-local table.
func (p *Parser) variable() (*Variable, error) {
	tok, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	if v, ok := p.scope[tok.Value]; ok {
		return v, nil
	}

	v := &Variable{Name: tok.Value}
	p.scope[tok.Value] = v

	return v, nil
}
