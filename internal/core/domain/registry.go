package domain

import "sort"

// Registry is the immutable in-memory index over one validated content
// set: id -> record plus the outgoing cross-reference graph. It is built
// once, never mutated, and safe to share across concurrent readers
// without locking. Rebuilds produce a new Registry that is swapped in
// whole; see the runtime snapshot holder.
type Registry struct {
	byID  map[string]*ContentRecord
	ids   []string
	graph map[string]map[string]struct{}
}

// NewRegistry indexes the given records. Callers are responsible for
// having already excluded records that fail hard validation; ids are
// assumed unique here. Iteration order is the sorted id order so two
// builds from the same input answer queries identically.
func NewRegistry(records []*ContentRecord) *Registry {
	r := &Registry{
		byID:  make(map[string]*ContentRecord, len(records)),
		ids:   make([]string, 0, len(records)),
		graph: make(map[string]map[string]struct{}, len(records)),
	}
	for _, rec := range records {
		r.byID[rec.ID] = rec
		r.ids = append(r.ids, rec.ID)

		out := make(map[string]struct{}, len(rec.CrossReferences))
		for _, xref := range rec.CrossReferences {
			out[xref.TargetID] = struct{}{}
		}
		r.graph[rec.ID] = out
	}
	sort.Strings(r.ids)
	return r
}

// Get returns the record for an id.
func (r *Registry) Get(id string) (*ContentRecord, bool) {
	rec, ok := r.byID[id]
	return rec, ok
}

// Contains reports whether an id is indexed.
func (r *Registry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the number of indexed records.
func (r *Registry) Len() int {
	return len(r.byID)
}

// IDs returns all indexed ids in sorted order. The returned slice is a
// copy; callers may not mutate registry internals.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Outgoing returns the distinct cross-reference targets declared by the
// given record, sorted.
func (r *Registry) Outgoing(id string) []string {
	targets := r.graph[id]
	out := make([]string, 0, len(targets))
	for t := range targets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// References reports whether source declares any cross-reference to target.
func (r *Registry) References(source, target string) bool {
	_, ok := r.graph[source][target]
	return ok
}
