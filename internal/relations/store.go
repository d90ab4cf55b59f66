// Package relations implements the per-relation adjacency store: for each
// relation name, a Holder mapping destination entity name to the set of
// origin names with an arrow into it. This is the "Holder-of-maps"
// encoding from the design notes — it amortizes better than a sorted
// id-pair vector under frequent reports, at the cost of a little more
// bookkeeping on delete.
package relations

import (
	"sort"

	"github.com/relmon/relmon/internal/hashmap"
)

// originSet is the set of origin names pointing at one destination under
// one relation. Presence is tracked with an empty struct{} value so the
// underlying map owns no payload beyond the key itself.
type originSet struct {
	origins *hashmap.Map[struct{}]
}

// Holder is one relation's adjacency: destination name -> origin set.
type Holder struct {
	dests *hashmap.Map[*originSet]
}

// Store is the relation-name-keyed collection of Holders.
type Store struct {
	relations     *hashmap.Map[*Holder]
	innerCapacity int
}

// New constructs an empty Store. relationCapacity sizes the outer
// relation-name map; innerCapacity sizes each Holder's destination map and
// each destination's origin set as they are lazily created.
func New(relationCapacity, innerCapacity int) *Store {
	return &Store{
		relations:     hashmap.New[*Holder](relationCapacity),
		innerCapacity: innerCapacity,
	}
}

func (s *Store) newHolder() *Holder {
	return &Holder{dests: hashmap.New[*originSet](s.innerCapacity)}
}

func (s *Store) newOriginSet() *originSet {
	return &originSet{origins: hashmap.New[struct{}](s.innerCapacity)}
}

// AddArrow records origin -> dest under rel. Idempotent: inserting the
// same triple twice leaves the state unchanged. The caller is responsible
// for checking that origin and dest are currently registered entities.
func (s *Store) AddArrow(origin, dest, rel string) {
	holder := s.relations.GetOrInsert(rel, s.newHolder)
	set := holder.dests.GetOrInsert(dest, s.newOriginSet)
	set.origins.Insert(origin, struct{}{})
}

// RemoveArrow deletes origin -> dest under rel, if present, cleaning up
// any destination entry or relation that becomes empty as a result. A
// no-op if the relation, destination, or arrow does not exist.
func (s *Store) RemoveArrow(origin, dest, rel string) {
	holder, ok := s.relations.Lookup(rel)
	if !ok {
		return
	}
	set, ok := holder.dests.Lookup(dest)
	if !ok {
		return
	}
	if !set.origins.Remove(origin) {
		return
	}
	if set.origins.Len() == 0 {
		holder.dests.Remove(dest)
	}
	if holder.dests.Len() == 0 {
		s.relations.Remove(rel)
	}
}

// PurgeEntity removes every arrow touching name, as either origin or
// destination, across every relation — the cascade step required before a
// delent command returns. Empty destination entries and empty relations
// are cleaned up as they would be by RemoveArrow.
func (s *Store) PurgeEntity(name string) {
	for _, relName := range s.relations.Keys() {
		holder, ok := s.relations.Lookup(relName)
		if !ok {
			continue
		}

		// name as destination: drop all of its incoming arrows at once.
		holder.dests.Remove(name)

		// name as origin: walk every remaining destination's origin set.
		for _, destName := range holder.dests.Keys() {
			set, ok := holder.dests.Lookup(destName)
			if !ok {
				continue
			}
			if set.origins.Remove(name) && set.origins.Len() == 0 {
				holder.dests.Remove(destName)
			}
		}

		if holder.dests.Len() == 0 {
			s.relations.Remove(relName)
		}
	}
}

// Record is one relation's report line: the alphabetically sorted winners
// tied at the maximum in-degree, and that maximum.
type Record struct {
	Relation  string
	Winners   []string
	MaxDegree int
}

// Report computes, for every relation with at least one live arrow, the
// destinations tied at maximum in-degree. Relations are returned sorted by
// name; winners within a relation are sorted by name. A relation whose
// Holder has no destinations with any incoming arrow (which should not
// happen — RemoveArrow and PurgeEntity clean those up — but is guarded
// against defensively) is omitted.
func (s *Store) Report() []Record {
	names := s.relations.Keys()
	sort.Strings(names)

	records := make([]Record, 0, len(names))
	for _, name := range names {
		holder, ok := s.relations.Lookup(name)
		if !ok {
			continue
		}

		maxDegree := 0
		var winners []string
		for _, dest := range holder.dests.Keys() {
			set, ok := holder.dests.Lookup(dest)
			if !ok {
				continue
			}
			degree := set.origins.Len()
			switch {
			case degree > maxDegree:
				maxDegree = degree
				winners = []string{dest}
			case degree == maxDegree && degree > 0:
				winners = append(winners, dest)
			}
		}
		if maxDegree == 0 {
			continue
		}
		sort.Strings(winners)
		records = append(records, Record{Relation: name, Winners: winners, MaxDegree: maxDegree})
	}
	return records
}
