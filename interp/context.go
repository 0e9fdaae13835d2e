package interp

import (
	"iter"
)

// Context is the value store for one run of one block. Slots are
// indexed by instruction index and may be written only once.
type Context struct {
	values []Value
}

// NewContext creates a store with size unset slots.
func NewContext(size int) *Context {
	return &Context{values: make([]Value, size)}
}

// Len returns the number of slots.
func (ctx *Context) Len() int {
	return len(ctx.values)
}

// Define sets slot index. Redefining a slot, or defining an unset
// Value, panics with *ErrMalformed.
func (ctx *Context) Define(index int, v Value) {
	if index < 0 || index >= len(ctx.values) {
		panic(malformed(ErrOutOfRange))
	}
	if ctx.values[index].IsSet() {
		panic(malformed(ErrRedefined))
	}
	if !v.IsSet() {
		panic(malformed(ErrUndefined))
	}

	ctx.values[index] = v
}

// Lookup returns slot index, if it has been defined.
func (ctx *Context) Lookup(index int) (v Value, ok bool) {
	if index < 0 || index >= len(ctx.values) {
		return
	}

	v = ctx.values[index]
	ok = v.IsSet()
	return
}

// Value returns slot index. An undefined slot panics with *ErrMalformed.
func (ctx *Context) Value(index int) Value {
	v, ok := ctx.Lookup(index)
	if !ok {
		panic(malformed(ErrUndefined))
	}
	return v
}

// Values iterates the defined slots in index order.
func (ctx *Context) Values() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for index, v := range ctx.values {
			if !v.IsSet() {
				continue
			}
			if !yield(index, v) {
				return
			}
		}
	}
}
