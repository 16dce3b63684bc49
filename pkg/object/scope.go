package object

import (
	"sort"

	pp "github.com/vilterp/mixins/pkg/prettyprint"
)

// Scope maps names to values. Lookups that miss fall through to the parent;
// writes and removals only ever touch the scope itself.
type Scope struct {
	parent *Scope
	vals   map[string]Value
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		vals:   map[string]Value{},
		parent: parent,
	}
}

func (s *Scope) NewChildScope() *Scope {
	return NewScope(s)
}

func (s *Scope) Find(name string) (Value, bool) {
	val, ok := s.vals[name]
	if !ok {
		if s.parent != nil {
			return s.parent.Find(name)
		}
		return nil, false
	}
	return val, true
}

// Own looks the name up in this scope only.
func (s *Scope) Own(name string) (Value, bool) {
	val, ok := s.vals[name]
	return val, ok
}

func (s *Scope) Add(name string, value Value) {
	s.vals[name] = value
}

func (s *Scope) AddMap(vals map[string]Value) {
	for name, val := range vals {
		s.Add(name, val)
	}
}

// Remove deletes name from this scope. It is a no-op if name isn't bound
// here; bindings in the parent are left alone and become visible again.
func (s *Scope) Remove(name string) {
	delete(s.vals, name)
}

func (s *Scope) Len() int {
	return len(s.vals)
}

// Names returns this scope's own names, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.vals))
	for name := range s.vals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scope) Format() pp.Doc {
	names := s.Names()
	docs := make([]pp.Doc, len(names))
	for idx, name := range names {
		docs[idx] = pp.KV(name, Format(s.vals[name]))
	}

	var parentDoc pp.Doc
	if s.parent == nil {
		parentDoc = pp.Text("<nil>")
	} else {
		parentDoc = s.parent.Format()
	}

	return pp.Block("Scope{", []pp.Doc{
		pp.KV("vals", pp.Block("{", docs, "}")),
		pp.KV("parent", parentDoc),
	}, "}")
}
