package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/vilterp/mixins/pkg/composable"
	"github.com/vilterp/mixins/pkg/monkey"
	"github.com/vilterp/mixins/pkg/object"
	"github.com/vilterp/mixins/pkg/parse"
)

// session holds the objects and patch sets a shell user has created.
type session struct {
	out       io.Writer
	registry  *monkey.Registry
	behaviors map[string]*composable.Behavior
	patches   map[string]*object.VFunction

	objects map[string]*composable.Composite
	sets    map[string]*monkey.PatchSet
}

func newSession(registry *monkey.Registry, out io.Writer) *session {
	return &session{
		out:       out,
		registry:  registry,
		behaviors: behaviorLibrary(out),
		patches:   patchLibrary(),
		objects:   map[string]*composable.Composite{},
		sets:      map[string]*monkey.PatchSet{},
	}
}

const helpText = `new <obj>                          create an empty composite (not named after a command)
<obj> acts like <Behavior>         merge a behavior into a composite
show <obj|set>                     print a composite or patch set
call <obj>.<fn>(<args>)            call a composite's function
patch <type> <name>                install a patch on a type
unpatch <type> <name>              remove a patch from a type
send <literal>.<name>(<args>)      call a method on a value
set <set> register <type> <name>   add a patch to a patch set
activate <set>                     install a patch set
deactivate <set>                   remove a patch set
wrap <set> send ...                send with the patch set active
\h                                 help
\library                           list behaviors and patches
\patches                           list installed patches
\dump <obj>                        dump a composite's internals`

// exec runs one line of input.
func (s *session) exec(line string) error {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return nil
	case line == `\h`:
		s.println(helpText)
		return nil
	case line == `\library`:
		s.println("behaviors:", strings.Join(sortedKeys(s.behaviors), ", "))
		s.println("patches:", strings.Join(sortedKeys(s.patches), ", "))
		return nil
	case line == `\patches`:
		s.println(s.registry.Format().String())
		return nil
	case strings.HasPrefix(line, `\dump `):
		c, err := s.object(strings.TrimSpace(strings.TrimPrefix(line, `\dump `)))
		if err != nil {
			return err
		}
		spew.Fdump(s.out, c)
		return nil
	}

	cmd, err := parse.Parse(line)
	if err != nil {
		return errors.Wrap(err, "parse error")
	}
	return s.run(cmd)
}

func (s *session) run(cmd *parse.Command) error {
	switch {
	case cmd.New != nil:
		s.objects[cmd.New.Object] = composable.New()
		return nil

	case cmd.ActsLike != nil:
		c, err := s.object(cmd.ActsLike.Object)
		if err != nil {
			return err
		}
		b, ok := s.behaviors[cmd.ActsLike.Behavior]
		if !ok {
			return fmt.Errorf("no such behavior: %s", cmd.ActsLike.Behavior)
		}
		return c.ActsLikeA(b)

	case cmd.Show != nil:
		if c, ok := s.objects[cmd.Show.Name]; ok {
			s.println(c.Format().String())
			return nil
		}
		if ps, ok := s.sets[cmd.Show.Name]; ok {
			s.println(ps.Format().String())
			return nil
		}
		return fmt.Errorf("no such object or patch set: %s", cmd.Show.Name)

	case cmd.Call != nil:
		c, err := s.object(cmd.Call.Object)
		if err != nil {
			return err
		}
		args, err := parse.Values(cmd.Call.Args)
		if err != nil {
			return err
		}
		return c.Call(cmd.Call.Method, args...)

	case cmd.Patch != nil:
		typ, impl, err := s.patch(cmd.Patch.Type, cmd.Patch.Name)
		if err != nil {
			return err
		}
		s.registry.Install(typ, cmd.Patch.Name, impl)
		return nil

	case cmd.Unpatch != nil:
		typ, err := object.ParseType(cmd.Unpatch.Type)
		if err != nil {
			return err
		}
		s.registry.Uninstall(typ, cmd.Unpatch.Name)
		return nil

	case cmd.Send != nil:
		return s.send(cmd.Send)

	case cmd.Register != nil:
		typ, impl, err := s.patch(cmd.Register.Type, cmd.Register.Name)
		if err != nil {
			return err
		}
		ps, ok := s.sets[cmd.Register.Set]
		if !ok {
			ps = s.registry.Create()
			s.sets[cmd.Register.Set] = ps
		}
		ps.RegisterPatch(typ, cmd.Register.Name, impl)
		return nil

	case cmd.Activate != nil:
		ps, err := s.set(cmd.Activate.Set)
		if err != nil {
			return err
		}
		ps.Activate()
		return nil

	case cmd.Deactivate != nil:
		ps, err := s.set(cmd.Deactivate.Set)
		if err != nil {
			return err
		}
		ps.Deactivate()
		return nil

	case cmd.Wrap != nil:
		ps, err := s.set(cmd.Wrap.Set)
		if err != nil {
			return err
		}
		return ps.Wrap(func() error {
			return s.send(cmd.Wrap.Send)
		})
	}
	return fmt.Errorf("unhandled command: %s", cmd.Format())
}

func (s *session) send(send *parse.Send) error {
	recv, err := send.Receiver.Value()
	if err != nil {
		return err
	}
	args, err := parse.Values(send.Args)
	if err != nil {
		return err
	}
	result, err := s.registry.Send(recv, send.Method, args...)
	if err != nil {
		return err
	}
	s.println(object.Format(result).String())
	return nil
}

func (s *session) object(name string) (*composable.Composite, error) {
	c, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", name)
	}
	return c, nil
}

func (s *session) set(name string) (*monkey.PatchSet, error) {
	ps, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("no such patch set: %s", name)
	}
	return ps, nil
}

func (s *session) patch(typeName string, name string) (object.Type, *object.VFunction, error) {
	typ, err := object.ParseType(typeName)
	if err != nil {
		return nil, nil, err
	}
	impl, ok := s.patches[name]
	if !ok {
		return nil, nil, fmt.Errorf("no such patch: %s", name)
	}
	return typ, impl, nil
}

func (s *session) println(args ...interface{}) {
	fmt.Fprintln(s.out, args...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
