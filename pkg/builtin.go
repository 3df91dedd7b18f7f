package framing

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

func defineBuiltins(b *LLVMIRBuilder) {
	b.print = builtinPrint(b.mod)
}

// builtinPrint defines "print(i64)" on top of libc printf.
func builtinPrint(mod *ir.Module) *ir.Func {
	printf := mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	f := mod.NewFunc("print", types.Void, ir.NewParam("v", types.I64))
	b := f.NewBlock("")

	zero := constant.NewInt(types.I64, 0)

	format := constant.NewCharArrayFromString("%lld\n\x00")
	formatGlob := mod.NewGlobalDef("._print_fmt", format)

	fmtAddr := constant.NewGetElementPtr(format.Typ, formatGlob, zero, zero)

	b.NewCall(printf, fmtAddr, f.Params[0])

	b.NewRet(nil)

	return f
}
