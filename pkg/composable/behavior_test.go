package composable

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vilterp/mixins/pkg/object"
)

func TestBehaviorBuilder(t *testing.T) {
	base := NewBehavior("Dog").With("name", object.NewVString("Ludo"))
	withBark := base.Method("bark", func(*Composite, []object.Value) error { return nil })

	// Builders don't mutate the behavior they're called on.
	require.Len(t, base.Slots(), 1)
	require.Len(t, withBark.Slots(), 2)

	slots := withBark.Slots()
	require.Equal(t, "name", slots[0].Name)
	require.Equal(t, KindAttribute, slots[0].Kind)
	require.Equal(t, "bark", slots[1].Name)
	require.Equal(t, KindFunction, slots[1].Kind)

	// Function values passed to With are function slots.
	withFn := base.With("speak", object.NewVFunction("speak", nil))
	require.Equal(t, KindFunction, withFn.Slots()[1].Kind)

	// Redefining keeps the original position.
	renamed := withBark.With("name", object.NewVString("Rex"))
	slots = renamed.Slots()
	require.Len(t, slots, 2)
	require.Equal(t, "name", slots[0].Name)
	require.Equal(t, `"Rex"`, slots[0].Value.Format().String())
	require.Equal(t, "Dog", renamed.Name())
}

func TestBehaviorFormat(t *testing.T) {
	b := NewBehavior("Dog").
		With("name", object.NewVString("Ludo")).
		Method("bark", func(*Composite, []object.Value) error { return nil })
	expected := `Dog {
  name: "Ludo",
  bark: <function bark>,
}`
	require.Equal(t, expected, b.Format().String())
	require.Equal(t, "Empty {}", NewBehavior("Empty").Format().String())
}

func TestKindString(t *testing.T) {
	require.Equal(t, "attribute", KindAttribute.String())
	require.Equal(t, "function", KindFunction.String())
	require.Equal(t, "Kind(7)", Kind(7).String())
}
