package stub

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const stubUser = "stub"

// SaveParams mirror the query parameters of a bulk save.
type SaveParams struct {
	ReplaceClassifications      bool
	ReplaceBusinessAttributes   bool
	OverwriteBusinessAttributes bool
}

// Store holds the catalog state in memory. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	entities   map[string]doc
	identities map[string]string
	workflows  map[string]doc
	runs       map[string]doc
	now        func() time.Time
	runFor     time.Duration
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithRunDuration sets how long workflow runs stay in the Running phase.
func WithRunDuration(d time.Duration) StoreOption {
	return func(s *Store) {
		s.runFor = d
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entities:   make(map[string]doc),
		identities: make(map[string]string),
		workflows:  make(map[string]doc),
		runs:       make(map[string]doc),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func identityKey(typeName, qualifiedName string) string {
	return typeName + "::" + qualifiedName
}

// Len returns the number of stored entities, including archived ones.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// SaveEntities creates or updates entities and returns a mutation response.
// An entity is matched by GUID first, then by type and qualified name.
// Updates that change nothing are not reported.
func (s *Store) SaveEntities(entities []doc, params SaveParams) (doc, error) {
	for i, e := range entities {
		if str(e, "typeName") == "" {
			return nil, badRequest("entity %d has no typeName", i)
		}
		if str(subDoc(e, "attributes"), "qualifiedName") == "" {
			return nil, badRequest("entity %d (%s) has no qualifiedName", i, str(e, "typeName"))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UnixMilli()
	var created, updated []any
	assignments := make(map[string]any)
	for _, in := range entities {
		typeName := str(in, "typeName")
		qn := str(subDoc(in, "attributes"), "qualifiedName")
		guid := str(in, "guid")

		existingGUID := ""
		if _, ok := s.entities[guid]; ok && guid != "" {
			existingGUID = guid
		} else if g, ok := s.identities[identityKey(typeName, qn)]; ok {
			existingGUID = g
		}

		if existingGUID == "" {
			stored := s.create(in, ts)
			if strings.HasPrefix(guid, "-") {
				assignments[guid] = stored["guid"]
			}
			created = append(created, cloneDoc(stored))
			continue
		}

		if strings.HasPrefix(guid, "-") {
			assignments[guid] = existingGUID
		}
		if stored, changed := s.update(existingGUID, in, params, ts); changed {
			updated = append(updated, cloneDoc(stored))
		}
	}

	mutated := doc{}
	if len(created) > 0 {
		mutated["CREATE"] = created
	}
	if len(updated) > 0 {
		mutated["UPDATE"] = updated
	}
	resp := doc{"mutatedEntities": mutated}
	if len(assignments) > 0 {
		resp["guidAssignments"] = assignments
	}
	return resp, nil
}

func (s *Store) create(in doc, ts int64) doc {
	stored := cloneDoc(in)
	guid := uuid.NewString()
	stored["guid"] = guid
	if str(stored, "status") == "" {
		stored["status"] = "ACTIVE"
	}
	stored["createdBy"] = stubUser
	stored["updatedBy"] = stubUser
	stored["createTime"] = ts
	stored["updateTime"] = ts
	stored["version"] = int64(1)
	if stored["attributes"] == nil {
		stored["attributes"] = doc{}
	}
	attrs := subDoc(stored, "attributes")
	for k, v := range attrs {
		if v == nil {
			delete(attrs, k)
		}
	}
	if _, ok := stored["businessAttributes"]; ok {
		stripNullSets(subDoc(stored, "businessAttributes"))
	}
	s.entities[guid] = stored
	s.identities[identityKey(str(stored, "typeName"), str(attrs, "qualifiedName"))] = guid
	return stored
}

func (s *Store) update(guid string, in doc, params SaveParams, ts int64) (doc, bool) {
	stored := s.entities[guid]
	before := cloneDoc(stored)

	attrs := subDoc(stored, "attributes")
	for k, v := range subDoc(in, "attributes") {
		if v == nil {
			delete(attrs, k)
			continue
		}
		attrs[k] = cloneValue(v)
	}
	if status := str(in, "status"); status != "" {
		stored["status"] = status
	}
	if incomplete, ok := in["isIncomplete"].(bool); ok && !incomplete {
		stored["isIncomplete"] = false
	}

	incoming := asSlice(in["classifications"])
	if params.ReplaceClassifications {
		if len(incoming) == 0 {
			delete(stored, "classifications")
		} else {
			stored["classifications"] = cloneValue(incoming)
		}
	} else if len(incoming) > 0 {
		stored["classifications"] = mergeClassifications(asSlice(stored["classifications"]), incoming)
	}

	if sets := subDoc(in, "businessAttributes"); sets != nil && params.ReplaceBusinessAttributes {
		if params.OverwriteBusinessAttributes {
			stored["businessAttributes"] = cloneDoc(sets)
		} else {
			current := subDoc(stored, "businessAttributes")
			if current == nil {
				current = doc{}
				stored["businessAttributes"] = current
			}
			for set, values := range sets {
				target := subDoc(current, set)
				if target == nil {
					target = doc{}
					current[set] = target
				}
				mergeInto(target, asDoc(values))
			}
		}
		stripNullSets(subDoc(stored, "businessAttributes"))
	}

	if reflect.DeepEqual(before, stored) {
		return stored, false
	}
	stored["updateTime"] = ts
	stored["updatedBy"] = stubUser
	stored["version"] = toVersion(stored["version"]) + 1
	return stored, true
}

func toVersion(v any) int64 {
	return int64(toFloat(v))
}

func mergeClassifications(current, incoming []any) []any {
	seen := make(map[string]bool, len(current))
	out := make([]any, 0, len(current)+len(incoming))
	for _, c := range current {
		seen[str(asDoc(c), "typeName")] = true
		out = append(out, c)
	}
	for _, c := range incoming {
		name := str(asDoc(c), "typeName")
		if !seen[name] {
			seen[name] = true
			out = append(out, cloneValue(c))
		}
	}
	return out
}

func stripNullSets(sets doc) {
	for name, values := range sets {
		m := asDoc(values)
		for k, v := range m {
			if v == nil {
				delete(m, k)
			}
		}
		if len(m) == 0 {
			delete(sets, name)
		}
	}
}

// GetEntity returns a copy of the entity with the given GUID.
func (s *Store) GetEntity(guid string) (doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[guid]
	if !ok {
		return nil, notFound("entity with guid %s does not exist", guid)
	}
	return cloneDoc(e), nil
}

// GetEntityByQualifiedName returns a copy of the entity with the given
// type and qualified name.
func (s *Store) GetEntityByQualifiedName(typeName, qualifiedName string) (doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	guid, ok := s.identities[identityKey(typeName, qualifiedName)]
	if !ok {
		return nil, notFound("%s with qualifiedName %s does not exist", typeName, qualifiedName)
	}
	return cloneDoc(s.entities[guid]), nil
}

// DeleteEntities archives (SOFT) or removes (HARD, PURGE) entities.
func (s *Store) DeleteEntities(guids []string, deleteType string) (doc, error) {
	switch deleteType {
	case "", "SOFT", "HARD", "PURGE":
	default:
		return nil, badRequest("unknown deleteType %q", deleteType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range guids {
		if _, ok := s.entities[g]; !ok {
			return nil, notFound("entity with guid %s does not exist", g)
		}
	}
	ts := s.now().UnixMilli()
	deleted := make([]any, 0, len(guids))
	for _, g := range guids {
		e := s.entities[g]
		if deleteType == "" || deleteType == "SOFT" {
			if str(e, "status") == "DELETED" {
				continue
			}
			e["status"] = "DELETED"
			e["updateTime"] = ts
			deleted = append(deleted, cloneDoc(e))
			continue
		}
		delete(s.entities, g)
		delete(s.identities, identityKey(str(e, "typeName"), str(subDoc(e, "attributes"), "qualifiedName")))
		e["status"] = "DELETED"
		deleted = append(deleted, e)
	}
	mutated := doc{}
	if len(deleted) > 0 {
		mutated["DELETE"] = deleted
	}
	return doc{"mutatedEntities": mutated}, nil
}

// SearchEntities evaluates an index search request.
func (s *Store) SearchEntities(req doc) (doc, error) {
	dsl := subDoc(req, "dsl")

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]doc, 0, len(s.entities))
	for _, e := range s.entities {
		all = append(all, e)
	}
	hits, err := filterDocs(all, dsl["query"], entityField)
	if err != nil {
		return nil, err
	}
	sortDocs(hits, asSlice(dsl["sort"]), entityField, func(d doc) string { return str(d, "guid") })
	page := paginate(hits, dsl)

	entities := make([]any, len(page))
	for i, e := range page {
		entities[i] = cloneDoc(e)
	}
	return doc{"approximateCount": len(hits), "entities": entities}, nil
}

func filterDocs(all []doc, q any, resolve resolver) ([]doc, error) {
	var hits []doc
	for _, d := range all {
		ok, err := matches(q, d, resolve)
		if err != nil {
			return nil, err
		}
		if ok {
			hits = append(hits, d)
		}
	}
	return hits, nil
}

func paginate(hits []doc, dsl doc) []doc {
	from := int(toFloat(dsl["from"]))
	size := len(hits)
	if v, ok := dsl["size"]; ok {
		size = int(toFloat(v))
	}
	if from < 0 {
		from = 0
	}
	if from >= len(hits) || size <= 0 {
		return nil
	}
	return hits[from:min(from+size, len(hits))]
}
