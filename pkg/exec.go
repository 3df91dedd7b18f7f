package framing

import "fmt"

// Store is the mutable variable store a tree executes against. Results
// collects the value of every executed expression statement in order.
type Store struct {
	vals    map[string]int64
	Results []int64
}

func NewStore() *Store {
	return &Store{
		vals: make(map[string]int64),
	}
}

func (s *Store) Get(name string) (int64, bool) {
	v, ok := s.vals[name]
	return v, ok
}

func (s *Store) Set(name string, v int64) {
	s.vals[name] = v
}

// Len returns the number of defined variables.
func (s *Store) Len() int {
	return len(s.vals)
}

// Execute runs node against store. The first runtime failure is returned as
// an *ExecutionError; assignments made before it stay in the store.
func Execute(node ExecNode, store *Store) error {
	switch n := node.(type) {
	case *ExprNode:
		v, err := Eval(n.Expr, store)
		if err != nil {
			return err
		}

		store.Results = append(store.Results, v)
	case *AssignNode:
		v, err := Eval(n.Value, store)
		if err != nil {
			return err
		}

		store.Set(n.Var.Name, v)
	case *IfNode:
		cond, err := Eval(n.Cond, store)
		if err != nil {
			return err
		}

		if cond != 0 {
			return Execute(n.Body, store)
		}
	case *BlockNode:
		for _, stmt := range n.Statements {
			if err := Execute(stmt, store); err != nil {
				return err
			}
		}
	default:
		return &ExecutionError{Msg: fmt.Sprintf("unexpected node %T", node)}
	}

	return nil
}

// Eval computes an expression. The empty condition of "if ()" is false.
func Eval(expr Expr, store *Store) (int64, error) {
	switch e := expr.(type) {
	case *Constant:
		return e.Value, nil
	case *VariableRef:
		v, ok := store.Get(e.Var.Name)
		if !ok {
			return 0, &ExecutionError{Span: e.Span, Msg: "undefined variable: " + e.Var.Name}
		}

		return v, nil
	case *BinaryExpr:
		lhs, err := Eval(e.Op1, store)
		if err != nil {
			return 0, err
		}

		rhs, err := Eval(e.Op2, store)
		if err != nil {
			return 0, err
		}

		v, err := e.Operation.Apply(lhs, rhs)
		if err != nil {
			return 0, &ExecutionError{Span: e.Span, Msg: err.Error(), Err: err}
		}

		return v, nil
	case *EmptyExpr:
		return 0, nil
	default:
		return 0, &ExecutionError{Msg: fmt.Sprintf("unexpected expression %T", expr)}
	}
}
