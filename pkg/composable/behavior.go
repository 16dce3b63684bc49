package composable

import (
	"fmt"

	"github.com/vilterp/mixins/pkg/object"
	pp "github.com/vilterp/mixins/pkg/prettyprint"
)

type Kind int

const (
	KindAttribute Kind = iota
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Slot struct {
	Name  string
	Kind  Kind
	Value object.Value
}

// Behavior is a named, ordered bag of slots that composites take on as a
// unit. Builder methods return a new Behavior, so a Behavior can be shared
// and merged into any number of composites.
type Behavior struct {
	name  string
	slots []Slot
}

func NewBehavior(name string) *Behavior {
	return &Behavior{name: name}
}

func (b *Behavior) Name() string {
	return b.name
}

// Slots returns the slots in the order they were defined.
func (b *Behavior) Slots() []Slot {
	out := make([]Slot, len(b.slots))
	copy(out, b.slots)
	return out
}

// With defines a slot. Function values become function slots; everything
// else, nil included, is an attribute. Redefining a name replaces the slot
// in place.
func (b *Behavior) With(name string, value object.Value) *Behavior {
	kind := KindAttribute
	if object.IsFunction(value) {
		kind = KindFunction
	}
	return b.with(Slot{Name: name, Kind: kind, Value: value})
}

// Method defines a function slot whose receiver is the composite.
func (b *Behavior) Method(name string, fn MethodFunc) *Behavior {
	return b.with(Slot{Name: name, Kind: KindFunction, Value: NewMethod(name, fn)})
}

func (b *Behavior) with(slot Slot) *Behavior {
	slots := make([]Slot, 0, len(b.slots)+1)
	replaced := false
	for _, existing := range b.slots {
		if existing.Name == slot.Name {
			slots = append(slots, slot)
			replaced = true
			continue
		}
		slots = append(slots, existing)
	}
	if !replaced {
		slots = append(slots, slot)
	}
	return &Behavior{name: b.name, slots: slots}
}

func (b *Behavior) Format() pp.Doc {
	docs := make([]pp.Doc, len(b.slots))
	for idx, slot := range b.slots {
		docs[idx] = pp.KV(slot.Name, object.Format(slot.Value))
	}
	return pp.Seq(pp.Text(b.name), pp.Text(" "), pp.Block("{", docs, "}"))
}

// MethodFunc is a function slot body with the composite as its receiver.
type MethodFunc func(self *Composite, args []object.Value) error

// NewMethod adapts fn to a function value. Calling it on anything but a
// composite fails.
func NewMethod(name string, fn MethodFunc) *object.VFunction {
	return object.NewVFunction(name, func(self object.Value, args []object.Value) (object.Value, error) {
		c, ok := self.(*Composite)
		if !ok || c == nil {
			return nil, &wrongReceiver{Method: name}
		}
		return nil, fn(c, args)
	})
}
