package composable

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vilterp/mixins/pkg/log"
	"github.com/vilterp/mixins/pkg/object"
	pp "github.com/vilterp/mixins/pkg/prettyprint"
)

// Composite is an object assembled from behaviors. Attributes are exposed
// as-is; every function name is exposed as one combinator that calls each
// implementation merged under that name, in merge order.
//
// Composites are not safe for concurrent use. Merging needs exclusive access.
type Composite struct {
	id  uuid.UUID
	ctx context.Context

	// Exposed slots: attributes, plus one combinator per function name.
	slots map[string]object.Value
	order []string

	// Implementations per function name, in merge order. A name is in here
	// iff its exposed slot is a combinator.
	functions map[string][]*object.VFunction
}

var _ object.Value = &Composite{}
var _ object.SlotHolder = &Composite{}

func New() *Composite {
	id := uuid.New()
	return &Composite{
		id:        id,
		ctx:       log.WithTag(context.Background(), log.CompositeIDKey, id),
		slots:     map[string]object.Value{},
		functions: map[string][]*object.VFunction{},
	}
}

func (c *Composite) ID() uuid.UUID {
	return c.id
}

func (c *Composite) Ctx() context.Context {
	return c.ctx
}

// ActsLikeA merges b's slots into c, in b's slot order. A conflict between a
// function and an attribute stops the merge at the offending slot; slots
// merged before it stay merged.
func (c *Composite) ActsLikeA(b *Behavior) error {
	for _, slot := range b.slots {
		if err := c.mergeSlot(slot); err != nil {
			log.Debugf(c, "merging %s: %v", b.name, err)
			return errors.Wrapf(err, "behavior %s: slot %q", b.name, slot.Name)
		}
	}
	log.Debugf(c, "acts like a %s (%d slots)", b.name, len(b.slots))
	return nil
}

func (c *Composite) mergeSlot(slot Slot) error {
	_, exists := c.slots[slot.Name]
	_, isFunction := c.functions[slot.Name]

	switch slot.Kind {
	case KindFunction:
		if exists && !isFunction {
			return ErrAttributeAssignedToFunction
		}
		impl, err := object.ToFunction(slot.Value)
		if err != nil {
			return err
		}
		if !isFunction {
			c.expose(slot.Name, c.combinator(slot.Name))
		}
		c.functions[slot.Name] = append(c.functions[slot.Name], impl)
	default:
		if isFunction {
			return ErrFunctionAssignedToAttribute
		}
		c.expose(slot.Name, slot.Value)
	}
	return nil
}

func (c *Composite) expose(name string, value object.Value) {
	if _, ok := c.slots[name]; !ok {
		c.order = append(c.order, name)
	}
	c.slots[name] = value
}

// combinator fans a call out to every implementation of name. The list is
// read at call time, so implementations merged later are included.
func (c *Composite) combinator(name string) *object.VFunction {
	return object.NewVFunction(name, func(_ object.Value, args []object.Value) (object.Value, error) {
		for _, impl := range c.functions[name] {
			if _, err := impl.Call(c, args...); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
}

// Get returns the exposed slot: the attribute value, or the combinator for
// a function name.
func (c *Composite) Get(name string) (object.Value, bool) {
	val, ok := c.slots[name]
	return val, ok
}

func (c *Composite) Has(name string) bool {
	_, ok := c.slots[name]
	return ok
}

func (c *Composite) IsFunction(name string) bool {
	_, ok := c.functions[name]
	return ok
}

// Implementations returns how many functions have been merged under name.
func (c *Composite) Implementations(name string) int {
	return len(c.functions[name])
}

// Set writes an attribute. Functions only arrive through ActsLikeA.
func (c *Composite) Set(name string, value object.Value) error {
	if c.IsFunction(name) {
		return errors.Wrapf(ErrFunctionAssignedToAttribute, "slot %q", name)
	}
	if object.IsFunction(value) {
		return &functionViaSet{Name: name}
	}
	c.expose(name, value)
	return nil
}

// Call invokes the combinator for name with c as the receiver.
func (c *Composite) Call(name string, args ...object.Value) error {
	if !c.IsFunction(name) {
		return &noSuchFunction{Name: name}
	}
	_, err := c.slots[name].(*object.VFunction).Call(c, args...)
	return err
}

// Names returns exposed slot names in the order they first appeared.
func (c *Composite) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Composite) GetType() object.Type {
	return object.TComposite
}

func (c *Composite) Format() pp.Doc {
	docs := make([]pp.Doc, len(c.order))
	for idx, name := range c.order {
		if c.IsFunction(name) {
			docs[idx] = pp.KV(name, pp.Textf("<function %s x%d>", name, len(c.functions[name])))
			continue
		}
		docs[idx] = pp.KV(name, object.Format(c.slots[name]))
	}
	return pp.Block("Composite{", docs, "}")
}
