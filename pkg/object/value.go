package object

import (
	"fmt"

	pp "github.com/vilterp/mixins/pkg/prettyprint"
)

// Value is anything that can sit in a slot. A nil Value means "no value";
// functions with nothing to return return nil.
type Value interface {
	Format() pp.Doc
	GetType() Type
}

// SlotHolder is implemented by values that carry their own named slots.
// Own slots shadow whatever the value's type surface defines.
type SlotHolder interface {
	Value
	Get(name string) (Value, bool)
}

// Format renders v, including the nil value.
func Format(v Value) pp.Doc {
	if v == nil {
		return pp.Text("nil")
	}
	return v.Format()
}

// Int

type VInt int

var _ Value = NewVInt(0)

func NewVInt(v int) *VInt {
	val := VInt(v)
	return &val
}

func (v *VInt) Format() pp.Doc {
	if v == nil {
		return pp.Text("nil")
	}
	return pp.Textf("%d", int(*v))
}

func (v *VInt) GetType() Type {
	return TInt
}

// Bool

type VBool bool

var _ Value = NewVBool(false)

func NewVBool(b bool) *VBool {
	val := VBool(b)
	return &val
}

func (v *VBool) Format() pp.Doc {
	if v == nil {
		return pp.Text("nil")
	}
	if *v {
		return pp.Text("true")
	}
	return pp.Text("false")
}

func (v *VBool) GetType() Type {
	return TBool
}

// String

type VString string

var _ Value = NewVString("")

func NewVString(s string) *VString {
	val := VString(s)
	return &val
}

func (v *VString) Format() pp.Doc {
	if v == nil {
		return pp.Text("nil")
	}
	return pp.Textf("%q", string(*v))
}

func (v *VString) GetType() Type {
	return TString
}

// Array

type VArray struct {
	values []Value
}

var _ Value = &VArray{}

func NewVArray(values []Value) *VArray {
	return &VArray{values: values}
}

func (v *VArray) Values() []Value {
	out := make([]Value, len(v.values))
	copy(out, v.values)
	return out
}

func (v *VArray) Len() int {
	return len(v.values)
}

func (v *VArray) Format() pp.Doc {
	if v == nil {
		return pp.Text("nil")
	}
	docs := make([]pp.Doc, len(v.values))
	for idx, val := range v.values {
		docs[idx] = Format(val)
	}
	return pp.Seq(pp.Text("["), pp.Join(docs, pp.Text(", ")), pp.Text("]"))
}

func (v *VArray) GetType() Type {
	return TArray
}

// Function

// Impl is the body of a function. self is the receiver the function was
// invoked on; it may be nil for free functions.
type Impl func(self Value, args []Value) (Value, error)

type VFunction struct {
	Name string
	Impl Impl
}

var _ Value = &VFunction{}

func NewVFunction(name string, impl Impl) *VFunction {
	return &VFunction{
		Name: name,
		Impl: impl,
	}
}

func (vf *VFunction) Call(self Value, args ...Value) (Value, error) {
	if vf.Impl == nil {
		return nil, fmt.Errorf("function %s has no implementation", vf.Name)
	}
	return vf.Impl(self, args)
}

func (vf *VFunction) Format() pp.Doc {
	if vf == nil {
		return pp.Text("nil")
	}
	return pp.Textf("<function %s>", vf.Name)
}

func (vf *VFunction) GetType() Type {
	return TFunction
}

// IsFunction reports whether v can be called.
func IsFunction(v Value) bool {
	_, ok := v.(*VFunction)
	return ok
}
