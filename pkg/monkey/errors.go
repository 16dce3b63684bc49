package monkey

import (
	"fmt"

	"github.com/vilterp/mixins/pkg/object"
)

type noSuchMethod struct {
	Type object.Type
	Name string
}

func (e *noSuchMethod) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("can't send %s to nil", e.Name)
	}
	return fmt.Sprintf("%s has no method %s", e.Type.Name(), e.Name)
}

type notAFunction struct {
	Type object.Type
	Name string
}

func (e *notAFunction) Error() string {
	return fmt.Sprintf("%s.%s is not a function", e.Type.Name(), e.Name)
}
