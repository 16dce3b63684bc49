package monkey

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vilterp/mixins/pkg/log"
	"github.com/vilterp/mixins/pkg/object"
	pp "github.com/vilterp/mixins/pkg/prettyprint"
)

// PatchSet is an ordered list of patches that are installed and removed
// together. Whether a set is active is up to the caller; activating an
// active set reinstalls every patch, deactivating an inactive one is a
// no-op.
//
// Overlapping sets, or nested Wrap calls, that touch the same type and name
// are not supported: deactivation deletes the name rather than restoring
// what the other scope installed.
type PatchSet struct {
	id       uuid.UUID
	ctx      context.Context
	registry *Registry
	patches  []Override
}

func newPatchSet(r *Registry) *PatchSet {
	id := uuid.New()
	ctx := log.WithTag(r.ctx, log.PatchSetIDKey, id)
	return &PatchSet{
		id:       id,
		ctx:      ctx,
		registry: r,
	}
}

func (ps *PatchSet) ID() uuid.UUID {
	return ps.id
}

func (ps *PatchSet) Ctx() context.Context {
	return ps.ctx
}

// RegisterPatch appends a patch. Nothing is installed until activation.
func (ps *PatchSet) RegisterPatch(target object.Type, name string, impl *object.VFunction) {
	ps.patches = append(ps.patches, Override{Target: target, Name: name, Impl: impl})
}

func (ps *PatchSet) Patches() []Override {
	out := make([]Override, len(ps.patches))
	copy(out, ps.patches)
	return out
}

func (ps *PatchSet) Len() int {
	return len(ps.patches)
}

// Activate installs every patch in registration order; of two patches for
// the same type and name, the later one ends up installed.
func (ps *PatchSet) Activate() {
	ps.registry.apply(ps.patches, true)
	ps.registry.metrics.activations.Inc()
	log.Debugf(ps, "activated %d patches", len(ps.patches))
}

// Deactivate uninstalls every patch in registration order.
func (ps *PatchSet) Deactivate() {
	ps.registry.apply(ps.patches, false)
	log.Debugf(ps, "deactivated %d patches", len(ps.patches))
}

// Wrap runs cb with the set active. The set is deactivated however cb
// exits: by returning, by returning an error, or by panicking (the panic
// continues after deactivation).
func (ps *PatchSet) Wrap(cb func() error) error {
	start := time.Now()
	ps.Activate()
	defer func() {
		ps.Deactivate()
		ps.registry.metrics.wrapLatency.Observe(float64(time.Since(start).Nanoseconds()))
	}()
	return cb()
}

// WrapUnguarded runs cb with the set active and deactivates it only if cb
// returns nil. If cb fails or panics the patches stay installed and the
// caller is responsible for calling Deactivate.
func (ps *PatchSet) WrapUnguarded(cb func() error) error {
	ps.Activate()
	if err := cb(); err != nil {
		log.Printf(ps, "left active after error: %v", err)
		return err
	}
	ps.Deactivate()
	return nil
}

func (ps *PatchSet) Format() pp.Doc {
	docs := make([]pp.Doc, len(ps.patches))
	for idx, patch := range ps.patches {
		docs[idx] = patch.Format()
	}
	return pp.Seq(pp.Text("PatchSet "), pp.Block("[", docs, "]"))
}
