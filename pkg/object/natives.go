package object

import "strconv"

// Native methods each builtin type defines before anything is patched onto
// it, keyed by the type itself. These scopes are never mutated after init.
var nativeScopes map[Type]*Scope

func init() {
	intScope := NewScope(nil)
	intScope.AddMap(map[string]Value{
		"plus": NewVFunction("plus", func(self Value, args []Value) (Value, error) {
			if err := CheckArity("plus", args, 1); err != nil {
				return nil, err
			}
			l, err := ToInt(self)
			if err != nil {
				return nil, err
			}
			r, err := ToInt(args[0])
			if err != nil {
				return nil, err
			}
			return NewVInt(l + r), nil
		}),
		"toString": NewVFunction("toString", func(self Value, args []Value) (Value, error) {
			if err := CheckArity("toString", args, 0); err != nil {
				return nil, err
			}
			i, err := ToInt(self)
			if err != nil {
				return nil, err
			}
			return NewVString(strconv.Itoa(i)), nil
		}),
	})

	boolScope := NewScope(nil)
	boolScope.Add("not", NewVFunction("not", func(self Value, args []Value) (Value, error) {
		if err := CheckArity("not", args, 0); err != nil {
			return nil, err
		}
		b, err := ToBool(self)
		if err != nil {
			return nil, err
		}
		return NewVBool(!b), nil
	}))

	stringScope := NewScope(nil)
	stringScope.AddMap(map[string]Value{
		"concat": NewVFunction("concat", func(self Value, args []Value) (Value, error) {
			if err := CheckArity("concat", args, 1); err != nil {
				return nil, err
			}
			l, err := ToString(self)
			if err != nil {
				return nil, err
			}
			r, err := ToString(args[0])
			if err != nil {
				return nil, err
			}
			return NewVString(l + r), nil
		}),
		"len": NewVFunction("len", func(self Value, args []Value) (Value, error) {
			if err := CheckArity("len", args, 0); err != nil {
				return nil, err
			}
			s, err := ToString(self)
			if err != nil {
				return nil, err
			}
			return NewVInt(len(s)), nil
		}),
	})

	arrayScope := NewScope(nil)
	arrayScope.AddMap(map[string]Value{
		"len": NewVFunction("len", func(self Value, args []Value) (Value, error) {
			if err := CheckArity("len", args, 0); err != nil {
				return nil, err
			}
			a, err := ToArray(self)
			if err != nil {
				return nil, err
			}
			return NewVInt(a.Len()), nil
		}),
		"get": NewVFunction("get", func(self Value, args []Value) (Value, error) {
			if err := CheckArity("get", args, 1); err != nil {
				return nil, err
			}
			a, err := ToArray(self)
			if err != nil {
				return nil, err
			}
			idx, err := ToInt(args[0])
			if err != nil {
				return nil, err
			}
			if idx < 0 || idx >= a.Len() {
				return nil, &indexOutOfRange{Index: idx, Len: a.Len()}
			}
			return a.values[idx], nil
		}),
	})

	nativeScopes = map[Type]*Scope{
		TInt:       intScope,
		TBool:      boolScope,
		TString:    stringScope,
		TArray:     arrayScope,
		TFunction:  NewScope(nil),
		TComposite: NewScope(nil),
	}
}

// NativeScope returns the methods typ defines on its own, or nil for types
// declared with NewType, including ones that reuse a builtin's name.
func NativeScope(typ Type) *Scope {
	return nativeScopes[typ]
}
