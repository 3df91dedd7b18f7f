package framing

import "fmt"

// ExecNode is a node of the executable tree. The set of implementations is
// closed: *ExprNode, *AssignNode, *IfNode and *BlockNode.
type ExecNode interface {
	Node
	execNode()
}

type ExprNode struct {
	Span
	Expr Expr
}

type AssignNode struct {
	Span
	Var   *Variable
	Value Expr
}

type IfNode struct {
	Span
	Cond Expr
	Body ExecNode
}

type BlockNode struct {
	Span
	Statements []ExecNode
}

func (*ExprNode) execNode()   {}
func (*AssignNode) execNode() {}
func (*IfNode) execNode()     {}
func (*BlockNode) execNode()  {}

// StaticAnalyzer lowers a syntax tree to an executable tree of the same shape.
type StaticAnalyzer struct{}

func NewStaticAnalyzer() *StaticAnalyzer {
	return &StaticAnalyzer{}
}

func (a *StaticAnalyzer) Do(ast *AST) (*BlockNode, error) {
	if ast == nil || ast.Root == nil {
		return nil, &AnalysisError{Msg: "missing program root"}
	}

	return a.block(ast.Root)
}

func (a *StaticAnalyzer) block(b *BlockStmt) (*BlockNode, error) {
	node := &BlockNode{
		Span:       b.Span,
		Statements: make([]ExecNode, 0, len(b.Statements)),
	}

	for _, stmt := range b.Statements {
		child, err := a.statement(stmt)
		if err != nil {
			return nil, err
		}

		node.Statements = append(node.Statements, child)
	}

	return node, nil
}

func (a *StaticAnalyzer) statement(stmt Stmt) (ExecNode, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		if err := a.check(s.Span, s.Expr); err != nil {
			return nil, err
		}

		return &ExprNode{s.Span, s.Expr}, nil
	case *AssignStmt:
		if s.Var == nil {
			return nil, &AnalysisError{s.Span, "assignment without a variable"}
		}

		if err := a.check(s.Span, s.Value); err != nil {
			return nil, err
		}

		return &AssignNode{s.Span, s.Var, s.Value}, nil
	case *IfStmt:
		if err := a.check(s.Span, s.Cond); err != nil {
			return nil, err
		}

		if s.Body == nil {
			return nil, &AnalysisError{s.Span, "if statement without a body"}
		}

		body, err := a.statement(s.Body)
		if err != nil {
			return nil, err
		}

		return &IfNode{s.Span, s.Cond, body}, nil
	case *BlockStmt:
		if s == nil {
			return nil, &AnalysisError{Msg: "nil block"}
		}

		return a.block(s)
	default:
		return nil, &AnalysisError{Msg: fmt.Sprintf("unexpected statement %T", stmt)}
	}
}

// check verifies that an expression is complete: no missing operands,
// unknown operators or unresolved variables.
func (a *StaticAnalyzer) check(at Span, expr Expr) error {
	switch e := expr.(type) {
	case *Constant, *EmptyExpr:
		return nil
	case *VariableRef:
		if e.Var == nil {
			return &AnalysisError{e.Span, "unresolved variable reference"}
		}

		return nil
	case *BinaryExpr:
		if !e.Operation.valid() {
			return &AnalysisError{e.Span, fmt.Sprintf("undefined operation '%s'", string(e.Operation))}
		}

		if err := a.check(e.Span, e.Op1); err != nil {
			return err
		}

		return a.check(e.Span, e.Op2)
	case nil:
		return &AnalysisError{at, "missing expression"}
	default:
		return &AnalysisError{at, fmt.Sprintf("unexpected expression %T", expr)}
	}
}

// Equal reports whether two executable trees have the same shape and
// contents. Variables compare by name, so trees from different parses can be
// compared.
func Equal(a, b ExecNode) bool {
	switch x := a.(type) {
	case *ExprNode:
		y, ok := b.(*ExprNode)
		return ok && EqualExpr(x.Expr, y.Expr)
	case *AssignNode:
		y, ok := b.(*AssignNode)
		return ok && x.Var.Name == y.Var.Name && EqualExpr(x.Value, y.Value)
	case *IfNode:
		y, ok := b.(*IfNode)
		return ok && EqualExpr(x.Cond, y.Cond) && Equal(x.Body, y.Body)
	case *BlockNode:
		y, ok := b.(*BlockNode)
		if !ok || len(x.Statements) != len(y.Statements) {
			return false
		}

		for i := range x.Statements {
			if !Equal(x.Statements[i], y.Statements[i]) {
				return false
			}
		}

		return true
	default:
		return a == nil && b == nil
	}
}

func EqualExpr(a, b Expr) bool {
	switch x := a.(type) {
	case *Constant:
		y, ok := b.(*Constant)
		return ok && x.Value == y.Value
	case *VariableRef:
		y, ok := b.(*VariableRef)
		return ok && x.Var.Name == y.Var.Name
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && x.Operation == y.Operation && EqualExpr(x.Op1, y.Op1) && EqualExpr(x.Op2, y.Op2)
	case *EmptyExpr:
		_, ok := b.(*EmptyExpr)
		return ok
	default:
		return a == nil && b == nil
	}
}
