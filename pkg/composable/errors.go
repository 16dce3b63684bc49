package composable

import (
	"fmt"

	"github.com/pkg/errors"
)

// The two ways a merge can conflict. ActsLikeA wraps them with the behavior
// and slot involved; match with errors.Cause or errors.Is.
var (
	// ErrFunctionAssignedToAttribute is returned when a behavior supplies a
	// plain value under a name the composite already exposes as a function.
	ErrFunctionAssignedToAttribute = errors.New("attribute supplied for a name already defined as a function")

	// ErrAttributeAssignedToFunction is returned when a behavior supplies a
	// function under a name the composite already holds as a plain value.
	ErrAttributeAssignedToFunction = errors.New("function supplied for a name already defined as an attribute")
)

type noSuchFunction struct {
	Name string
}

func (e *noSuchFunction) Error() string {
	return fmt.Sprintf("composite has no function %q", e.Name)
}

type functionViaSet struct {
	Name string
}

func (e *functionViaSet) Error() string {
	return fmt.Sprintf("can't set function %q directly; merge a behavior defining it", e.Name)
}

type wrongReceiver struct {
	Method string
}

func (e *wrongReceiver) Error() string {
	return fmt.Sprintf("method %s must be called on a composite", e.Method)
}
