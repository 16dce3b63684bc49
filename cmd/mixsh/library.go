package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/vilterp/mixins/pkg/composable"
	"github.com/vilterp/mixins/pkg/object"
)

func behaviorLibrary(out io.Writer) map[string]*composable.Behavior {
	say := func(what string) composable.MethodFunc {
		return func(*composable.Composite, []object.Value) error {
			_, err := fmt.Fprintln(out, what)
			return err
		}
	}

	return map[string]*composable.Behavior{
		"Dog": composable.NewBehavior("Dog").
			With("name", object.NewVString("Ludo")).
			Method("speak", func(self *composable.Composite, _ []object.Value) error {
				return self.Call("bark")
			}).
			Method("bark", say("Woof!")),
		"Cat": composable.NewBehavior("Cat").
			With("name", object.NewVString("Nicodemus")).
			Method("speak", func(self *composable.Composite, _ []object.Value) error {
				return self.Call("meow")
			}).
			Method("meow", say("Mrawr.")),
		"Personable": composable.NewBehavior("Personable").
			Method("greet", func(_ *composable.Composite, args []object.Value) error {
				if err := object.CheckArity("greet", args, 1); err != nil {
					return err
				}
				name, err := object.ToString(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "Hello, %s!\n", name)
				return err
			}),
		"Counter": composable.NewBehavior("Counter").
			With("count", object.NewVInt(0)).
			Method("tick", func(self *composable.Composite, _ []object.Value) error {
				val, _ := self.Get("count")
				n, err := object.ToInt(val)
				if err != nil {
					return err
				}
				return self.Set("count", object.NewVInt(n+1))
			}),
	}
}

func patchLibrary() map[string]*object.VFunction {
	return map[string]*object.VFunction{
		"upTo": object.NewVFunction("upTo", func(self object.Value, args []object.Value) (object.Value, error) {
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
			var vals []object.Value
			for i := from; i <= to; i++ {
				vals = append(vals, object.NewVInt(i))
			}
			return object.NewVArray(vals), nil
		}),
		"double": object.NewVFunction("double", func(self object.Value, args []object.Value) (object.Value, error) {
			if err := object.CheckArity("double", args, 0); err != nil {
				return nil, err
			}
			i, err := object.ToInt(self)
			if err != nil {
				return nil, err
			}
			return object.NewVInt(2 * i), nil
		}),
		"shout": object.NewVFunction("shout", func(self object.Value, args []object.Value) (object.Value, error) {
			if err := object.CheckArity("shout", args, 0); err != nil {
				return nil, err
			}
			s, err := object.ToString(self)
			if err != nil {
				return nil, err
			}
			return object.NewVString(strings.ToUpper(s) + "!"), nil
		}),
		"repeat": object.NewVFunction("repeat", func(self object.Value, args []object.Value) (object.Value, error) {
			if err := object.CheckArity("repeat", args, 1); err != nil {
				return nil, err
			}
			s, err := object.ToString(self)
			if err != nil {
				return nil, err
			}
			n, err := object.ToInt(args[0])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, fmt.Errorf("repeat: negative count %d", n)
			}
			return object.NewVString(strings.Repeat(s, n)), nil
		}),
	}
}
