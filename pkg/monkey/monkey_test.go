package monkey

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vilterp/mixins/pkg/object"
)

// upTo accumulates the integers from the receiver to its argument, inclusive.
var upTo = object.NewVFunction("upTo", func(self object.Value, args []object.Value) (object.Value, error) {
	if err := object.CheckArity("upTo", args, 1); err != nil {
		return nil, err
	}
	from, err := object.ToInt(self)
	if err != nil {
		return nil, err
	}
	to, err := object.ToInt(args[0])
	if err != nil {
		return nil, err
	}
	var out []object.Value
	for i := from; i <= to; i++ {
		out = append(out, object.NewVInt(i))
	}
	return object.NewVArray(out), nil
})

// times calls its argument with 0..n-1, n being the receiver.
var times = object.NewVFunction("times", func(self object.Value, args []object.Value) (object.Value, error) {
	if err := object.CheckArity("times", args, 1); err != nil {
		return nil, err
	}
	n, err := object.ToInt(self)
	if err != nil {
		return nil, err
	}
	iterate, err := object.ToFunction(args[0])
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if _, err := iterate.Call(nil, object.NewVInt(i)); err != nil {
			return nil, err
		}
	}
	return nil, nil
})

func TestPatchAndUnpatch(t *testing.T) {
	defer Default.Reset()

	require.False(t, RespondsTo(object.NewVInt(50), "upTo"))

	Patch(object.TInt, "upTo", upTo)
	require.True(t, RespondsTo(object.NewVInt(50), "upTo"))

	out, err := Send(object.NewVInt(50), "upTo", object.NewVInt(75))
	require.NoError(t, err)
	require.Equal(t, 26, out.(*object.VArray).Len())

	out, err = Send(object.NewVInt(1), "upTo", object.NewVInt(5))
	require.NoError(t, err)
	require.Equal(t, "[1, 2, 3, 4, 5]", out.Format().String())

	// Other types don't see it.
	require.False(t, RespondsTo(object.NewVString("1"), "upTo"))

	Unpatch(object.TInt, "upTo")
	require.False(t, RespondsTo(object.NewVInt(50), "upTo"))
	_, err = Send(object.NewVInt(50), "upTo", object.NewVInt(75))
	require.EqualError(t, err, "int has no method upTo")

	// Unpatching again, or unpatching something never patched, is a no-op.
	Unpatch(object.TInt, "upTo")
	Unpatch(object.TString, "neverPatched")
}

func TestPatchReplacesAndUnpatchDeletes(t *testing.T) {
	defer Default.Reset()

	first := object.NewVFunction("first", func(object.Value, []object.Value) (object.Value, error) {
		return object.NewVString("first"), nil
	})
	second := object.NewVFunction("second", func(object.Value, []object.Value) (object.Value, error) {
		return object.NewVString("second"), nil
	})

	Patch(object.TInt, "which", first)
	Patch(object.TInt, "which", second)
	out, err := Send(object.NewVInt(1), "which")
	require.NoError(t, err)
	require.Equal(t, `"second"`, out.Format().String())

	// Stacked patches are not restored: the name is simply gone.
	Unpatch(object.TInt, "which")
	require.False(t, RespondsTo(object.NewVInt(1), "which"))
}

func TestPatchShadowsNativeUntilUnpatched(t *testing.T) {
	defer Default.Reset()

	out, err := Send(object.NewVInt(2), "plus", object.NewVInt(3))
	require.NoError(t, err)
	require.Equal(t, "5", out.Format().String())

	minus := object.NewVFunction("plus", func(self object.Value, args []object.Value) (object.Value, error) {
		l, _ := object.ToInt(self)
		r, _ := object.ToInt(args[0])
		return object.NewVInt(l - r), nil
	})
	Patch(object.TInt, "plus", minus)
	out, err = Send(object.NewVInt(2), "plus", object.NewVInt(3))
	require.NoError(t, err)
	require.Equal(t, "-1", out.Format().String())

	Unpatch(object.TInt, "plus")
	out, err = Send(object.NewVInt(2), "plus", object.NewVInt(3))
	require.NoError(t, err)
	require.Equal(t, "5", out.Format().String())
}

func TestCustomTypes(t *testing.T) {
	r := NewRegistry("custom")
	widget := object.NewType("widget")

	_, ok := r.Lookup(widget, "spin")
	require.False(t, ok)

	r.Install(widget, "spin", upTo)
	fn, ok := r.Lookup(widget, "spin")
	require.True(t, ok)
	require.True(t, fn == upTo)

	installed, ok := r.Installed(widget, "spin")
	require.True(t, ok)
	require.True(t, installed == upTo)

	// Natives aren't reported as installed.
	_, ok = r.Installed(object.TInt, "plus")
	require.False(t, ok)

	r.Uninstall(widget, "spin")
	_, ok = r.Lookup(widget, "spin")
	require.False(t, ok)
}

func TestCustomTypeSharingBuiltinName(t *testing.T) {
	r := NewRegistry("lookalike")
	fakeInt := object.NewType("int")

	_, ok := r.Lookup(fakeInt, "plus")
	require.False(t, ok, "a custom type has no natives")

	r.Install(fakeInt, "spin", upTo)
	_, ok = r.Lookup(fakeInt, "spin")
	require.True(t, ok)
	_, ok = r.Lookup(object.TInt, "spin")
	require.False(t, ok)
	_, ok = r.Lookup(fakeInt, "plus")
	require.False(t, ok)

	r.Install(object.TInt, "upTo", upTo)
	_, ok = r.Lookup(fakeInt, "upTo")
	require.False(t, ok)
	_, ok = r.Lookup(object.TInt, "plus")
	require.True(t, ok)

	entries := r.Entries()
	require.Len(t, entries, 2)
	require.True(t, entries[0].Target == fakeInt)
	require.Equal(t, "spin", entries[0].Name)
	require.True(t, entries[1].Target == object.TInt)
	require.Equal(t, "upTo", entries[1].Name)

	r.Uninstall(fakeInt, "spin")
	_, ok = r.Installed(object.TInt, "upTo")
	require.True(t, ok)
	require.Equal(t, 1, r.Len())
}

func TestSendErrors(t *testing.T) {
	r := NewRegistry("errors")

	_, err := r.Send(nil, "upTo")
	require.EqualError(t, err, "can't send upTo to nil")
	require.False(t, r.RespondsTo(nil, "upTo"))

	r.Install(object.TInt, "upTo", upTo)
	_, err = r.Send(object.NewVInt(1), "upTo")
	require.EqualError(t, err, "upTo takes 1 arguments; given 0")
}

func TestEntriesAndFormat(t *testing.T) {
	r := NewRegistry("entries")
	require.Equal(t, "Registry entries {}", r.Format().String())

	r.Install(object.TString, "shout", times)
	r.Install(object.TInt, "upTo", upTo)
	r.Install(object.TInt, "times", times)

	entries := r.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, 3, r.Len())
	require.Equal(t, object.TInt, entries[0].Target)
	require.Equal(t, "times", entries[0].Name)

	expected := `Registry entries {
  int.times = <function times>,
  int.upTo = <function upTo>,
  string.shout = <function times>,
}`
	require.Equal(t, expected, r.Format().String())

	r.Reset()
	require.Empty(t, r.Entries())
	require.Equal(t, 0, r.Len())
}
