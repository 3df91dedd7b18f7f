package framing

import "fmt"

// Span is the half-open range [Start, End) of token indices a node was built
// from. It is set when the node is constructed and never changes.
type Span struct {
	Start int
	End   int
}

func (s Span) Pos() Span {
	return s
}

func (s Span) Len() int {
	return s.End - s.Start
}

type Node interface {
	Pos() Span
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

// AST is the result of one parse. Variables holds every name seen by that
// parse; each name maps to the single *Variable shared by all its uses.
type AST struct {
	Root      *BlockStmt
	Variables map[string]*Variable
}

type Variable struct {
	Name string
}

type Constant struct {
	Span
	Value int64
}

type VariableRef struct {
	Span
	Var *Variable
}

type BinaryExpr struct {
	Span
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

// EmptyExpr is the condition of "if ()".
type EmptyExpr struct {
	Span
}

func (*Constant) exprNode()    {}
func (*VariableRef) exprNode() {}
func (*BinaryExpr) exprNode()  {}
func (*EmptyExpr) exprNode()   {}

type ExprStmt struct {
	Span
	Expr Expr
}

type AssignStmt struct {
	Span
	Var   *Variable
	Value Expr
}

type IfStmt struct {
	Span
	Cond Expr
	Body Stmt
}

type BlockStmt struct {
	Span
	Statements []Stmt
}

func (*ExprStmt) stmtNode()   {}
func (*AssignStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*BlockStmt) stmtNode()  {}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryGreater        BinaryOp = ">"
	BinaryLess           BinaryOp = "<"
)

var binaryOpTable = map[TokenType]BinaryOp{
	TokenPlus:    BinaryAddition,
	TokenMinus:   BinarySubtraction,
	TokenMulti:   BinaryMultiplication,
	TokenDiv:     BinaryDivision,
	TokenGreater: BinaryGreater,
	TokenLess:    BinaryLess,
}

// Apply evaluates the operator. Comparisons yield 1 for true and 0 for false.
func (op BinaryOp) Apply(a, b int64) (int64, error) {
	switch op {
	case BinaryAddition:
		return a + b, nil
	case BinarySubtraction:
		return a - b, nil
	case BinaryMultiplication:
		return a * b, nil
	case BinaryDivision:
		if b == 0 {
			return 0, ErrDivisionByZero
		}

		return a / b, nil
	case BinaryGreater:
		return truth(a > b), nil
	case BinaryLess:
		return truth(a < b), nil
	default:
		return 0, fmt.Errorf("unknown operator '%s'", string(op))
	}
}

func (op BinaryOp) valid() bool {
	switch op {
	case BinaryAddition, BinarySubtraction, BinaryMultiplication, BinaryDivision, BinaryGreater, BinaryLess:
		return true
	default:
		return false
	}
}

func truth(b bool) int64 {
	if b {
		return 1
	}

	return 0
}
