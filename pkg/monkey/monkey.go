// Package monkey installs and removes methods on the shared surface of a
// type, either directly or through patch sets that can be activated for
// the extent of a single call.
package monkey

import "github.com/vilterp/mixins/pkg/object"

// Patch installs impl as name on target in the default registry. Every
// value of target sees it immediately.
func Patch(target object.Type, name string, impl *object.VFunction) {
	Default.Install(target, name, impl)
}

// Unpatch removes name from target in the default registry.
func Unpatch(target object.Type, name string) {
	Default.Uninstall(target, name)
}

// Create returns an empty patch set on the default registry.
func Create() *PatchSet {
	return Default.Create()
}

// Send calls name on recv through the default registry.
func Send(recv object.Value, name string, args ...object.Value) (object.Value, error) {
	return Default.Send(recv, name, args...)
}

// RespondsTo reports whether recv has a method name in the default
// registry.
func RespondsTo(recv object.Value, name string) bool {
	return Default.RespondsTo(recv, name)
}
