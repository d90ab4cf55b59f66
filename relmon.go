// Package relmon provides a minimal public API for embedding the entity/
// relation monitor in other Go programs.
//
// Most callers should just run cmd/relmon as a filter process. This
// package exists for programs that want the in-memory Store directly —
// for example to drive it from something other than a line-oriented
// stdin stream.
package relmon

import (
	"github.com/relmon/relmon/internal/config"
	"github.com/relmon/relmon/internal/monitor"
)

// Store is the monitor's mutable state: the entity registry plus the
// per-relation adjacency store, and the five mutation/report operations
// over them.
type Store = monitor.Store

// New constructs an empty Store using the default capacities.
func New() *Store {
	return monitor.New(config.Default())
}

// NewWithCapacities constructs an empty Store with explicit initial
// capacities for the entity map, the relation map, and each relation's
// inner destination/origin maps.
func NewWithCapacities(entityCapacity, relationCapacity, innerCapacity int) *Store {
	return monitor.New(config.Config{
		EntityCapacity:   entityCapacity,
		RelationCapacity: relationCapacity,
		InnerCapacity:    innerCapacity,
	})
}
