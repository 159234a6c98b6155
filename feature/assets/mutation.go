package assets

import "maps"

// MutatedEntities groups the assets changed by a request by operation.
type MutatedEntities struct {
	Create        List `json:"CREATE,omitempty"`
	Update        List `json:"UPDATE,omitempty"`
	PartialUpdate List `json:"PARTIAL_UPDATE,omitempty"`
	Delete        List `json:"DELETE,omitempty"`
}

// MutationResponse is returned by every asset save and delete.
type MutationResponse struct {
	MutatedEntities MutatedEntities   `json:"mutatedEntities"`
	GUIDAssignments map[string]string `json:"guidAssignments,omitempty"`
}

// Created returns the assets that were created.
func (r *MutationResponse) Created() []Asset {
	if r == nil {
		return nil
	}
	return r.MutatedEntities.Create
}

// Updated returns the assets that were fully or partially updated.
func (r *MutationResponse) Updated() []Asset {
	if r == nil {
		return nil
	}
	out := make([]Asset, 0, len(r.MutatedEntities.Update)+len(r.MutatedEntities.PartialUpdate))
	out = append(out, r.MutatedEntities.Update...)
	return append(out, r.MutatedEntities.PartialUpdate...)
}

// Deleted returns the assets that were deleted.
func (r *MutationResponse) Deleted() []Asset {
	if r == nil {
		return nil
	}
	return r.MutatedEntities.Delete
}

// AssignedGUID returns the GUID the server assigned to a placeholder GUID.
func (r *MutationResponse) AssignedGUID(placeholder string) string {
	if r == nil {
		return ""
	}
	return r.GUIDAssignments[placeholder]
}

// IsEmpty reports whether the response records no changes.
func (r *MutationResponse) IsEmpty() bool {
	if r == nil {
		return true
	}
	m := r.MutatedEntities
	return len(m.Create)+len(m.Update)+len(m.PartialUpdate)+len(m.Delete) == 0
}

// Merge appends the changes of other into r.
func (r *MutationResponse) Merge(other *MutationResponse) {
	if other == nil || other == r {
		return
	}
	r.MutatedEntities.Create = append(r.MutatedEntities.Create, other.MutatedEntities.Create...)
	r.MutatedEntities.Update = append(r.MutatedEntities.Update, other.MutatedEntities.Update...)
	r.MutatedEntities.PartialUpdate = append(r.MutatedEntities.PartialUpdate, other.MutatedEntities.PartialUpdate...)
	r.MutatedEntities.Delete = append(r.MutatedEntities.Delete, other.MutatedEntities.Delete...)
	if len(other.GUIDAssignments) > 0 {
		if r.GUIDAssignments == nil {
			r.GUIDAssignments = make(map[string]string, len(other.GUIDAssignments))
		}
		maps.Copy(r.GUIDAssignments, other.GUIDAssignments)
	}
}
