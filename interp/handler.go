package interp

import (
	"github.com/ezrec/uop/ir"
)

// Handler executes one instruction against ctx.
type Handler func(ctx *Context, inst *ir.Inst)

// Binding is a Handler together with the IR signature it implements.
type Binding struct {
	Handler Handler
	Ret     ir.Type   // Result type, or TYPE_VOID.
	Args    []ir.Type // Operand types.
}

// Raw binds a handler that resolves its own operands and stores its own
// result.
func Raw(fn Handler, ret ir.Type, args ...ir.Type) Binding {
	return Binding{Handler: fn, Ret: ret, Args: args}
}

// Op0 binds a handler with no operands.
func Op0[R Storable](fn func() R) Binding {
	return Binding{
		Handler: func(ctx *Context, inst *ir.Inst) {
			ctx.Define(inst.Index(), Of(fn()))
		},
		Ret: retTypeOf[R](),
	}
}

// Op1 binds a handler with one operand.
func Op1[R Storable, A Operand](fn func(A) R) Binding {
	return Binding{
		Handler: func(ctx *Context, inst *ir.Inst) {
			a := Arg[A](ctx, inst, 0)
			ctx.Define(inst.Index(), Of(fn(a)))
		},
		Ret:  retTypeOf[R](),
		Args: []ir.Type{argTypeOf[A]()},
	}
}

// Op2 binds a handler with two operands.
func Op2[R Storable, A, B Operand](fn func(A, B) R) Binding {
	return Binding{
		Handler: func(ctx *Context, inst *ir.Inst) {
			a := Arg[A](ctx, inst, 0)
			b := Arg[B](ctx, inst, 1)
			ctx.Define(inst.Index(), Of(fn(a, b)))
		},
		Ret:  retTypeOf[R](),
		Args: []ir.Type{argTypeOf[A](), argTypeOf[B]()},
	}
}

// Op3 binds a handler with three operands.
func Op3[R Storable, A, B, C Operand](fn func(A, B, C) R) Binding {
	return Binding{
		Handler: func(ctx *Context, inst *ir.Inst) {
			a := Arg[A](ctx, inst, 0)
			b := Arg[B](ctx, inst, 1)
			c := Arg[C](ctx, inst, 2)
			ctx.Define(inst.Index(), Of(fn(a, b, c)))
		},
		Ret:  retTypeOf[R](),
		Args: []ir.Type{argTypeOf[A](), argTypeOf[B](), argTypeOf[C]()},
	}
}

// Void0 binds a handler with no operands and no result.
func Void0(fn func()) Binding {
	return Binding{
		Handler: func(ctx *Context, inst *ir.Inst) {
			fn()
		},
	}
}

// Void1 binds a handler with one operand and no result.
func Void1[A Operand](fn func(A)) Binding {
	return Binding{
		Handler: func(ctx *Context, inst *ir.Inst) {
			fn(Arg[A](ctx, inst, 0))
		},
		Args: []ir.Type{argTypeOf[A]()},
	}
}

// Void2 binds a handler with two operands and no result.
func Void2[A, B Operand](fn func(A, B)) Binding {
	return Binding{
		Handler: func(ctx *Context, inst *ir.Inst) {
			a := Arg[A](ctx, inst, 0)
			b := Arg[B](ctx, inst, 1)
			fn(a, b)
		},
		Args: []ir.Type{argTypeOf[A](), argTypeOf[B]()},
	}
}

// matches returns true if the binding implements the signature op
// declares in the IR opcode table.
func (b Binding) matches(op ir.Opcode) bool {
	if b.Handler == nil || b.Ret != op.Type() || len(b.Args) != op.NumArgs() {
		return false
	}
	for n, typ := range b.Args {
		if typ != op.ArgType(n) {
			return false
		}
	}
	return true
}
