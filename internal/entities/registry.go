// Package entities implements the bijection between entity names and the
// small dense integer ids assigned to them on first registration. An id is
// never reused once its entity is deregistered; the name_to_id map and the
// id_to_name vector evolve together so a stale id always resolves to
// "retired" rather than to a different entity.
package entities

import (
	"github.com/relmon/relmon/internal/hashmap"
	"github.com/relmon/relmon/internal/idvector"
)

// Registry is the entity-name <-> id bijection. Id 0 is reserved to mean
// "absent"; live ids start at 1 and are issued by a monotone counter that
// never rewinds, even across deregistration.
type Registry struct {
	nameToID *hashmap.Map[uint64]
	idToName *idvector.Vector[string]
	nextID   uint64
}

// New constructs an empty Registry, pre-sizing its backing map and vector
// for nameCapacity entities.
func New(nameCapacity int) *Registry {
	return &Registry{
		nameToID: hashmap.New[uint64](nameCapacity),
		idToName: idvector.New[string](nameCapacity),
	}
}

// Register assigns a new id to name if it is not already registered.
// Re-registering an already-known name is a no-op.
func (r *Registry) Register(name string) {
	if _, ok := r.nameToID.Lookup(name); ok {
		return
	}
	r.nextID++
	id := r.nextID
	r.nameToID.Insert(name, id)
	r.idToName.InsertAt(int(id), &name)
}

// Deregister retires name's id, if registered. The id is never reissued.
// Deregistering an unknown name is a no-op.
func (r *Registry) Deregister(name string) {
	id, ok := r.nameToID.Lookup(name)
	if !ok {
		return
	}
	r.idToName.InsertAt(int(id), nil)
	r.nameToID.Remove(name)
}

// IsRegistered reports whether name currently has a live id.
func (r *Registry) IsRegistered(name string) bool {
	_, ok := r.nameToID.Lookup(name)
	return ok
}

// ID returns name's id, if registered.
func (r *Registry) ID(name string) (uint64, bool) {
	return r.nameToID.Lookup(name)
}

// Name returns the name currently holding id, if that id is live.
func (r *Registry) Name(id uint64) (string, bool) {
	v, ok := r.idToName.Get(int(id))
	if !ok {
		return "", false
	}
	return *v, true
}

// Len returns the number of currently registered entities.
func (r *Registry) Len() int {
	return r.nameToID.Len()
}
