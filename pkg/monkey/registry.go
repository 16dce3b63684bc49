package monkey

import (
	"context"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vilterp/mixins/pkg/log"
	"github.com/vilterp/mixins/pkg/object"
	pp "github.com/vilterp/mixins/pkg/prettyprint"
)

// Override is one patch: impl reachable as Name on every value of Target.
type Override struct {
	Target object.Type
	Name   string
	Impl   *object.VFunction
}

func (p Override) Format() pp.Doc {
	return pp.Seq(p.Target.Format(), pp.Textf(".%s = ", p.Name), object.Format(p.Impl))
}

// Registry holds the patched surface of every type it has seen. Each
// target gets a scope layered over the type's native methods, so removing
// a patch exposes whatever the type defines on its own.
//
// All operations are serialized. Implementations run outside the lock.
type Registry struct {
	name string
	ctx  context.Context

	mu struct {
		sync.RWMutex
		surfaces map[object.Type]*object.Scope
		// Targets in the order they were first patched.
		targets []object.Type
	}

	metrics *metrics
}

// Default is the process-wide registry used by Patch, Unpatch, Send and
// Create.
var Default = NewRegistry("default")

func NewRegistry(name string) *Registry {
	r := &Registry{
		name: name,
		ctx:  log.WithTag(context.Background(), log.RegistryKey, name),
	}
	r.mu.surfaces = map[object.Type]*object.Scope{}
	r.metrics = newMetrics(r)
	return r
}

func (r *Registry) Name() string {
	return r.name
}

func (r *Registry) Ctx() context.Context {
	return r.ctx
}

// Install makes impl reachable as name for every value of target,
// replacing whatever was reachable under that name before.
func (r *Registry) Install(target object.Type, name string, impl *object.VFunction) {
	r.apply([]Override{{Target: target, Name: name, Impl: impl}}, true)
}

// Uninstall deletes name from target's patched surface. It does not bring
// back an earlier install of the same name; only native methods reappear.
// Uninstalling something that isn't installed is a no-op.
func (r *Registry) Uninstall(target object.Type, name string) {
	r.apply([]Override{{Target: target, Name: name}}, false)
}

// apply installs or uninstalls patches in order under one lock acquisition.
func (r *Registry) apply(patches []Override, install bool) {
	r.mu.Lock()
	for _, patch := range patches {
		if install {
			r.surfaceLocked(patch.Target).Add(patch.Name, patch.Impl)
			continue
		}
		if surface, ok := r.mu.surfaces[patch.Target]; ok {
			surface.Remove(patch.Name)
		}
	}
	r.mu.Unlock()

	for _, patch := range patches {
		if install {
			r.metrics.installs.Inc()
			log.Debugf(r, "patched %s.%s", patch.Target.Name(), patch.Name)
		} else {
			r.metrics.uninstalls.Inc()
			log.Debugf(r, "unpatched %s.%s", patch.Target.Name(), patch.Name)
		}
	}
}

func (r *Registry) surfaceLocked(target object.Type) *object.Scope {
	surface, ok := r.mu.surfaces[target]
	if !ok {
		if natives := object.NativeScope(target); natives != nil {
			surface = natives.NewChildScope()
		} else {
			surface = object.NewScope(nil)
		}
		r.mu.surfaces[target] = surface
		r.mu.targets = append(r.mu.targets, target)
	}
	return surface
}

// Lookup resolves name on target: installed patches first, then native
// methods.
func (r *Registry) Lookup(target object.Type, name string) (*object.VFunction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var val object.Value
	var found bool
	if surface, ok := r.mu.surfaces[target]; ok {
		val, found = surface.Find(name)
	} else if natives := object.NativeScope(target); natives != nil {
		val, found = natives.Find(name)
	}
	if !found {
		return nil, false
	}
	fn, isFn := val.(*object.VFunction)
	return fn, isFn && fn != nil
}

// Installed reports the patch installed under name, ignoring natives.
func (r *Registry) Installed(target object.Type, name string) (*object.VFunction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	surface, ok := r.mu.surfaces[target]
	if !ok {
		return nil, false
	}
	val, ok := surface.Own(name)
	if !ok {
		return nil, false
	}
	fn, _ := val.(*object.VFunction)
	return fn, true
}

// Entries returns a snapshot of installed patches, sorted by target name
// then patch name. Distinct targets sharing a name keep the order in which
// they were first patched.
func (r *Registry) Entries() []Override {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]object.Type, len(r.mu.targets))
	copy(targets, r.mu.targets)
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Name() < targets[j].Name()
	})

	var out []Override
	for _, target := range targets {
		surface := r.mu.surfaces[target]
		for _, name := range surface.Names() {
			val, _ := surface.Own(name)
			fn, _ := val.(*object.VFunction)
			out = append(out, Override{
				Target: target,
				Name:   name,
				Impl:   fn,
			})
		}
	}
	return out
}

// Len returns the number of installed patches.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, surface := range r.mu.surfaces {
		count += surface.Len()
	}
	return count
}

// Reset uninstalls everything.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.mu.surfaces = map[object.Type]*object.Scope{}
	r.mu.targets = nil
	r.mu.Unlock()
	log.Debugf(r, "reset")
}

// RespondsTo reports whether Send(recv, name) would find a function.
func (r *Registry) RespondsTo(recv object.Value, name string) bool {
	if holder, ok := recv.(object.SlotHolder); ok {
		if val, ok := holder.Get(name); ok {
			return object.IsFunction(val)
		}
	}
	if recv == nil {
		return false
	}
	_, ok := r.Lookup(recv.GetType(), name)
	return ok
}

// Send calls name on recv. Slots a value carries itself shadow its type's
// surface; otherwise the patched surface of recv's type is consulted, then
// its natives.
func (r *Registry) Send(recv object.Value, name string, args ...object.Value) (object.Value, error) {
	if recv == nil {
		return nil, &noSuchMethod{Name: name}
	}
	if holder, ok := recv.(object.SlotHolder); ok {
		if val, ok := holder.Get(name); ok {
			fn, err := object.ToFunction(val)
			if err != nil {
				return nil, &notAFunction{Type: recv.GetType(), Name: name}
			}
			return fn.Call(recv, args...)
		}
	}
	fn, ok := r.Lookup(recv.GetType(), name)
	if !ok {
		return nil, &noSuchMethod{Type: recv.GetType(), Name: name}
	}
	return fn.Call(recv, args...)
}

// Create returns an empty patch set bound to r.
func (r *Registry) Create() *PatchSet {
	return newPatchSet(r)
}

// Gatherer exposes r's metrics.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.metrics.registry
}

func (r *Registry) Format() pp.Doc {
	entries := r.Entries()
	docs := make([]pp.Doc, len(entries))
	for idx, entry := range entries {
		docs[idx] = entry.Format()
	}
	return pp.Seq(pp.Textf("Registry %s ", r.name), pp.Block("{", docs, "}"))
}
