package object

import (
	"fmt"

	pp "github.com/vilterp/mixins/pkg/prettyprint"
)

// Type identifies a shared behavior surface. Every value of a type sees the
// methods installed on it. Surfaces are keyed by the Type value, not its
// name: two types declared with the same name are still distinct targets.
type Type interface {
	Name() string
	Format() pp.Doc
}

type namedType struct {
	name string
}

func (t *namedType) Name() string {
	return t.name
}

func (t *namedType) Format() pp.Doc {
	return pp.Text(t.name)
}

var (
	TInt       Type = &namedType{name: "int"}
	TBool      Type = &namedType{name: "bool"}
	TString    Type = &namedType{name: "string"}
	TArray     Type = &namedType{name: "array"}
	TFunction  Type = &namedType{name: "function"}
	TComposite Type = &namedType{name: "composite"}
)

var builtinTypes = []Type{TInt, TBool, TString, TArray, TFunction, TComposite}

// NewType declares a surface outside the builtin set, e.g. for a host
// application's own object kinds. Its native surface is empty, and it
// shares nothing with a builtin of the same name.
func NewType(name string) Type {
	return &namedType{name: name}
}

func ParseType(name string) (Type, error) {
	for _, typ := range builtinTypes {
		if typ.Name() == name {
			return typ, nil
		}
	}
	return nil, fmt.Errorf("can't parse type %s", name)
}
