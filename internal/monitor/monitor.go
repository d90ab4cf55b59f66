// Package monitor wires the entity registry and relation store together
// behind the five mutation verbs (addent, delent, addrel, delrel, report)
// and formats the report line. This is the mutation API and report engine
// from the design: the only place that enforces the cross-cutting
// invariant that an arrow's endpoints must be currently registered
// entities, and the only place that formats output.
package monitor

import (
	"fmt"
	"strings"

	"github.com/relmon/relmon/internal/config"
	"github.com/relmon/relmon/internal/entities"
	"github.com/relmon/relmon/internal/relations"
)

// Store is the process-wide state: the entity registry and the relation
// store. There is exactly one writer and no concurrent reader, so Store
// carries no internal locking — see spec §5.
type Store struct {
	entities  *entities.Registry
	relations *relations.Store
}

// New constructs an empty Store sized per cfg.
func New(cfg config.Config) *Store {
	return &Store{
		entities:  entities.New(cfg.EntityCapacity),
		relations: relations.New(cfg.RelationCapacity, cfg.InnerCapacity),
	}
}

// AddEntity registers name. Idempotent; a no-op for an empty name.
func (s *Store) AddEntity(name string) {
	if name == "" {
		return
	}
	s.entities.Register(name)
}

// DelEntity deregisters name and purges every arrow that touched it,
// across every relation, before returning. A no-op for an empty or
// unregistered name.
func (s *Store) DelEntity(name string) {
	if name == "" || !s.entities.IsRegistered(name) {
		return
	}
	s.relations.PurgeEntity(name)
	s.entities.Deregister(name)
}

// AddRelation records origin -> dest under rel. A no-op unless both
// endpoints are currently registered; idempotent otherwise.
func (s *Store) AddRelation(origin, dest, rel string) {
	if origin == "" || dest == "" || rel == "" {
		return
	}
	if !s.entities.IsRegistered(origin) || !s.entities.IsRegistered(dest) {
		return
	}
	s.relations.AddArrow(origin, dest, rel)
}

// DelRelation removes origin -> dest under rel, if present. A no-op for
// an absent relation, destination, or arrow.
func (s *Store) DelRelation(origin, dest, rel string) {
	if origin == "" || dest == "" || rel == "" {
		return
	}
	s.relations.RemoveArrow(origin, dest, rel)
}

// Report formats the current state per spec §4.6: one
// `"R" "d1" "d2" … max;`-per-relation line, relations in sorted order,
// separated by a single space, terminated with a newline — or exactly
// "none\n" if no relation currently has any live arrow.
func (s *Store) Report() string {
	records := s.relations.Report()
	if len(records) == 0 {
		return "none\n"
	}

	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%q", rec.Relation)
		for _, winner := range rec.Winners {
			fmt.Fprintf(&sb, " %q", winner)
		}
		fmt.Fprintf(&sb, " %d;", rec.MaxDegree)
	}
	sb.WriteByte('\n')
	return sb.String()
}
