package monkey

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/vilterp/mixins/pkg/composable"
	"github.com/vilterp/mixins/pkg/object"
)

func counterFunc(counter *int) *object.VFunction {
	return object.NewVFunction("increment", func(object.Value, []object.Value) (object.Value, error) {
		*counter++
		return nil, nil
	})
}

func TestPatchSetLifecycle(t *testing.T) {
	defer Default.Reset()

	countingDSL := Create()
	countingDSL.RegisterPatch(object.TInt, "times", times)

	// Registering does not apply it yet.
	require.False(t, RespondsTo(object.NewVInt(50), "times"))
	require.Equal(t, 1, countingDSL.Len())

	countingDSL.Activate()
	require.True(t, RespondsTo(object.NewVInt(50), "times"))

	countingDSL.Deactivate()
	require.False(t, RespondsTo(object.NewVInt(50), "times"))

	// Deactivating twice is safe.
	countingDSL.Deactivate()
	require.False(t, RespondsTo(object.NewVInt(50), "times"))

	// Activating twice reinstalls idempotently.
	countingDSL.Activate()
	countingDSL.Activate()
	require.Equal(t, 1, Default.Len())
	countingDSL.Deactivate()
	require.Equal(t, 0, Default.Len())
}

func TestWrap(t *testing.T) {
	defer Default.Reset()

	countingDSL := Create()
	countingDSL.RegisterPatch(object.TInt, "times", times)

	counter := 0
	err := countingDSL.Wrap(func() error {
		// Inside the callback the patch is active.
		_, err := Send(object.NewVInt(10), "times", counterFunc(&counter))
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 10, counter)
	require.False(t, RespondsTo(object.NewVInt(10), "times"))
}

func TestWrapDeactivatesOnFailure(t *testing.T) {
	r := NewRegistry("wrap")
	ps := r.Create()
	ps.RegisterPatch(object.TInt, "upTo", upTo)

	boom := errors.New("boom")
	err := ps.Wrap(func() error {
		require.True(t, r.RespondsTo(object.NewVInt(1), "upTo"))
		return boom
	})
	require.Equal(t, boom, err)
	require.False(t, r.RespondsTo(object.NewVInt(1), "upTo"))

	require.PanicsWithValue(t, "kaboom", func() {
		_ = ps.Wrap(func() error {
			panic("kaboom")
		})
	})
	require.False(t, r.RespondsTo(object.NewVInt(1), "upTo"))
}

func TestWrapUnguardedLeavesPatchesOnFailure(t *testing.T) {
	r := NewRegistry("unguarded")
	ps := r.Create()
	ps.RegisterPatch(object.TInt, "upTo", upTo)

	require.NoError(t, ps.WrapUnguarded(func() error { return nil }))
	require.False(t, r.RespondsTo(object.NewVInt(1), "upTo"))

	boom := errors.New("boom")
	require.Equal(t, boom, ps.WrapUnguarded(func() error { return boom }))
	require.True(t, r.RespondsTo(object.NewVInt(1), "upTo"))
	ps.Deactivate()

	require.Panics(t, func() {
		_ = ps.WrapUnguarded(func() error { panic("kaboom") })
	})
	require.True(t, r.RespondsTo(object.NewVInt(1), "upTo"))
	ps.Deactivate()
	require.Equal(t, 0, r.Len())
}

func TestSameKeyPatchesInOneSet(t *testing.T) {
	r := NewRegistry("same-key")
	first := object.NewVFunction("first", func(object.Value, []object.Value) (object.Value, error) {
		return object.NewVInt(1), nil
	})
	second := object.NewVFunction("second", func(object.Value, []object.Value) (object.Value, error) {
		return object.NewVInt(2), nil
	})

	ps := r.Create()
	ps.RegisterPatch(object.TInt, "which", first)
	ps.RegisterPatch(object.TInt, "which", second)

	ps.Activate()
	out, err := r.Send(object.NewVInt(0), "which")
	require.NoError(t, err)
	require.Equal(t, "2", out.Format().String())

	// Deactivation deletes the name instead of falling back to first.
	ps.Deactivate()
	require.False(t, r.RespondsTo(object.NewVInt(0), "which"))
}

func TestPatchSetFormat(t *testing.T) {
	ps := NewRegistry("format").Create()
	require.Equal(t, "PatchSet []", ps.Format().String())

	ps.RegisterPatch(object.TInt, "upTo", upTo)
	ps.RegisterPatch(object.TInt, "times", times)
	expected := `PatchSet [
  int.upTo = <function upTo>,
  int.times = <function times>,
]`
	require.Equal(t, expected, ps.Format().String())

	patches := ps.Patches()
	patches[0].Name = "changed"
	require.Equal(t, "upTo", ps.Patches()[0].Name)
	require.NotEqual(t, ps.ID(), NewRegistry("other").Create().ID())
}

func TestCompositeSlotsShadowTypeSurface(t *testing.T) {
	r := NewRegistry("composite")
	var calls []string

	c := composable.New()
	require.NoError(t, c.ActsLikeA(composable.NewBehavior("Dog").
		With("name", object.NewVString("Ludo")).
		Method("speak", func(*composable.Composite, []object.Value) error {
			calls = append(calls, "own")
			return nil
		})))

	r.Install(object.TComposite, "speak", object.NewVFunction("speak", func(object.Value, []object.Value) (object.Value, error) {
		calls = append(calls, "patched")
		return nil, nil
	}))
	r.Install(object.TComposite, "describe", object.NewVFunction("describe", func(self object.Value, _ []object.Value) (object.Value, error) {
		calls = append(calls, "describe")
		name, _ := self.(*composable.Composite).Get("name")
		return name, nil
	}))

	_, err := r.Send(c, "speak")
	require.NoError(t, err)
	out, err := r.Send(c, "describe")
	require.NoError(t, err)
	require.Equal(t, `"Ludo"`, out.Format().String())
	require.Equal(t, []string{"own", "describe"}, calls)

	_, err = r.Send(c, "name")
	require.EqualError(t, err, "composite.name is not a function")
	require.False(t, r.RespondsTo(c, "name"))
}

func TestConcurrentPatchSets(t *testing.T) {
	r := NewRegistry("concurrent")
	const workers = 8

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			name := fmt.Sprintf("upTo%d", w)
			ps := r.Create()
			ps.RegisterPatch(object.TInt, name, upTo)
			for i := 0; i < 100; i++ {
				err := ps.Wrap(func() error {
					out, err := r.Send(object.NewVInt(1), name, object.NewVInt(3))
					if err != nil {
						return err
					}
					if out.Format().String() != "[1, 2, 3]" {
						return fmt.Errorf("unexpected %s", out.Format())
					}
					return nil
				})
				if err != nil {
					t.Errorf("worker %d: %v", w, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	require.Equal(t, 0, r.Len())
}

func TestMetrics(t *testing.T) {
	r := NewRegistry("metrics")
	ps := r.Create()
	ps.RegisterPatch(object.TInt, "upTo", upTo)
	ps.RegisterPatch(object.TInt, "times", times)

	ps.Activate()
	require.Equal(t, float64(2), testutil.ToFloat64(r.metrics.installedPatches))
	require.NoError(t, ps.Wrap(func() error { return nil }))
	r.Uninstall(object.TString, "absent")

	require.Equal(t, float64(4), testutil.ToFloat64(r.metrics.installs))
	require.Equal(t, float64(3), testutil.ToFloat64(r.metrics.uninstalls))
	require.Equal(t, float64(2), testutil.ToFloat64(r.metrics.activations))
	require.Equal(t, float64(0), testutil.ToFloat64(r.metrics.installedPatches))

	count, err := testutil.GatherAndCount(r.Gatherer())
	require.NoError(t, err)
	require.Equal(t, 5, count)
}
