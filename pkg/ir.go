package framing

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// ValueLookup maps variable names to their stack slots.
type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

// LLVMIRBuilder lowers an executable tree into the body of an LLVM "main"
// function. Every variable lives in an i64 alloca of the entry block and every
// expression statement prints its value.
type LLVMIRBuilder struct {
	mod    *ir.Module
	fn     *ir.Func
	entry  *ir.Block
	block  *ir.Block
	values *ValueLookup
	print  *ir.Func
	ifs    int
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
	}

	defineBuiltins(builder)
	return builder
}

// EmitIR compiles tree to an LLVM module. Reading a variable before any
// assignment to it in program order is an *AnalysisError. Every variable
// starts at 0, so a read after an assignment in a skipped if body yields 0.
func EmitIR(tree *BlockNode) (*ir.Module, error) {
	if tree == nil {
		return nil, &AnalysisError{Msg: "missing program root"}
	}

	b := NewLLVMIRBuilder()
	if err := b.program(tree); err != nil {
		return nil, err
	}

	return b.mod, nil
}

func (b *LLVMIRBuilder) program(tree *BlockNode) error {
	b.fn = b.mod.NewFunc("main", types.I64)
	b.entry = b.fn.NewBlock("entry")

	body := b.fn.NewBlock("body")
	b.block = body

	if err := b.statement(tree); err != nil {
		return err
	}

	b.block.NewRet(constant.NewInt(types.I64, 0))
	b.entry.NewBr(body)

	return nil
}

func (b *LLVMIRBuilder) statement(node ExecNode) error {
	switch n := node.(type) {
	case *ExprNode:
		v, err := b.expression(n.Expr)
		if err != nil {
			return err
		}

		b.block.NewCall(b.print, v)
	case *AssignNode:
		v, err := b.expression(n.Value)
		if err != nil {
			return err
		}

		b.block.NewStore(v, b.slot(n.Var.Name))
	case *IfNode:
		cond, err := b.expression(n.Cond)
		if err != nil {
			return err
		}

		b.ifs++
		then := b.fn.NewBlock(fmt.Sprintf("if.then.%d", b.ifs))
		end := b.fn.NewBlock(fmt.Sprintf("if.end.%d", b.ifs))

		isTrue := b.block.NewICmp(enum.IPredNE, cond, constant.NewInt(types.I64, 0))
		b.block.NewCondBr(isTrue, then, end)

		b.block = then
		if err := b.statement(n.Body); err != nil {
			return err
		}
		b.block.NewBr(end)

		b.block = end
	case *BlockNode:
		for _, stmt := range n.Statements {
			if err := b.statement(stmt); err != nil {
				return err
			}
		}
	default:
		return &AnalysisError{Msg: fmt.Sprintf("unexpected node %T", node)}
	}

	return nil
}

func (b *LLVMIRBuilder) slot(name string) value.Value {
	if ptr, ok := b.values.Get(name); ok {
		return ptr
	}

	ptr := b.entry.NewAlloca(types.I64)
	ptr.SetName(name + ".addr")
	// An assignment in a branch that did not run leaves the variable at 0.
	b.entry.NewStore(constant.NewInt(types.I64, 0), ptr)
	b.values.Set(name, ptr)

	return ptr
}

func (b *LLVMIRBuilder) expression(expr Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *Constant:
		return constant.NewInt(types.I64, e.Value), nil
	case *EmptyExpr:
		return constant.NewInt(types.I64, 0), nil
	case *VariableRef:
		ptr, ok := b.values.Get(e.Var.Name)
		if !ok {
			return nil, &AnalysisError{e.Span, "variable used before assignment: " + e.Var.Name}
		}

		return b.block.NewLoad(types.I64, ptr), nil
	case *BinaryExpr:
		return b.binaryExpression(e)
	default:
		return nil, &AnalysisError{Msg: fmt.Sprintf("unexpected expression %T", expr)}
	}
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) (value.Value, error) {
	v1, err := b.expression(expr.Op1)
	if err != nil {
		return nil, err
	}

	v2, err := b.expression(expr.Op2)
	if err != nil {
		return nil, err
	}

	switch expr.Operation {
	case BinaryAddition:
		return b.block.NewAdd(v1, v2), nil
	case BinarySubtraction:
		return b.block.NewSub(v1, v2), nil
	case BinaryMultiplication:
		return b.block.NewMul(v1, v2), nil
	case BinaryDivision:
		return b.block.NewSDiv(v1, v2), nil
	case BinaryGreater:
		cmp := b.block.NewICmp(enum.IPredSGT, v1, v2)
		return b.block.NewZExt(cmp, types.I64), nil
	case BinaryLess:
		cmp := b.block.NewICmp(enum.IPredSLT, v1, v2)
		return b.block.NewZExt(cmp, types.I64), nil
	default:
		return nil, &AnalysisError{expr.Span, "unexpected binary op: " + string(expr.Operation)}
	}
}
