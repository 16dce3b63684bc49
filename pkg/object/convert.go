package object

import "fmt"

type wrongType struct {
	Wanted Type
	Got    Value
}

func (e *wrongType) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("expected %s; got nil", e.Wanted.Name())
	}
	return fmt.Sprintf("expected %s; got %s %s", e.Wanted.Name(), e.Got.GetType().Name(), e.Got.Format())
}

type wrongArity struct {
	Function string
	Wanted   int
	Got      int
}

func (e *wrongArity) Error() string {
	return fmt.Sprintf("%s takes %d arguments; given %d", e.Function, e.Wanted, e.Got)
}

// CheckArity fails unless exactly n args were passed to the named function.
func CheckArity(function string, args []Value, n int) error {
	if len(args) != n {
		return &wrongArity{Function: function, Wanted: n, Got: len(args)}
	}
	return nil
}

func ToInt(v Value) (int, error) {
	i, ok := v.(*VInt)
	if !ok || i == nil {
		return 0, &wrongType{Wanted: TInt, Got: v}
	}
	return int(*i), nil
}

func ToBool(v Value) (bool, error) {
	b, ok := v.(*VBool)
	if !ok || b == nil {
		return false, &wrongType{Wanted: TBool, Got: v}
	}
	return bool(*b), nil
}

func ToString(v Value) (string, error) {
	s, ok := v.(*VString)
	if !ok || s == nil {
		return "", &wrongType{Wanted: TString, Got: v}
	}
	return string(*s), nil
}

func ToArray(v Value) (*VArray, error) {
	a, ok := v.(*VArray)
	if !ok || a == nil {
		return nil, &wrongType{Wanted: TArray, Got: v}
	}
	return a, nil
}

func ToFunction(v Value) (*VFunction, error) {
	f, ok := v.(*VFunction)
	if !ok || f == nil {
		return nil, &wrongType{Wanted: TFunction, Got: v}
	}
	return f, nil
}

// Ints builds an array of ints.
func Ints(ints ...int) *VArray {
	values := make([]Value, len(ints))
	for idx, i := range ints {
		values[idx] = NewVInt(i)
	}
	return NewVArray(values)
}

type indexOutOfRange struct {
	Index int
	Len   int
}

func (e *indexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range for array of length %d", e.Index, e.Len)
}
