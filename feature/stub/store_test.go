package stub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entity(typeName, qn, guid string, attrs doc) doc {
	a := doc{"qualifiedName": qn, "name": qn}
	for k, v := range attrs {
		a[k] = v
	}
	e := doc{"typeName": typeName, "attributes": a}
	if guid != "" {
		e["guid"] = guid
	}
	return e
}

func mutated(resp doc, op string) []any {
	return asSlice(subDoc(resp, "mutatedEntities")[op])
}

// TestSaveEntities_CreateThenUpdate tests creation, placeholder assignment and change detection.
func TestSaveEntities_CreateThenUpdate(t *testing.T) {
	s := NewStore()

	resp, err := s.SaveEntities([]doc{entity("Table", "a/t1", "-1", nil)}, SaveParams{})
	require.NoError(t, err)
	created := mutated(resp, "CREATE")
	require.Len(t, created, 1)
	guid := str(asDoc(created[0]), "guid")
	assert.Equal(t, guid, subDoc(resp, "guidAssignments")["-1"])
	assert.Equal(t, "ACTIVE", str(asDoc(created[0]), "status"))

	resp, err = s.SaveEntities([]doc{entity("Table", "a/t1", "-7", nil)}, SaveParams{})
	require.NoError(t, err)
	assert.Empty(t, mutated(resp, "UPDATE"), "unchanged entities are not reported")
	assert.Equal(t, guid, subDoc(resp, "guidAssignments")["-7"])

	resp, err = s.SaveEntities([]doc{entity("Table", "a/t1", "", doc{"description": "d"})}, SaveParams{})
	require.NoError(t, err)
	updated := mutated(resp, "UPDATE")
	require.Len(t, updated, 1)
	assert.Equal(t, "d", subDoc(asDoc(updated[0]), "attributes")["description"])
	assert.EqualValues(t, 2, asDoc(updated[0])["version"])

	resp, err = s.SaveEntities([]doc{entity("Table", "a/t1", "", doc{"description": nil})}, SaveParams{})
	require.NoError(t, err)
	require.Len(t, mutated(resp, "UPDATE"), 1)
	got, err := s.GetEntity(guid)
	require.NoError(t, err)
	assert.NotContains(t, subDoc(got, "attributes"), "description")
	assert.Equal(t, 1, s.Len())
}

// TestSaveEntities_Validation tests rejection of entities without identity.
func TestSaveEntities_Validation(t *testing.T) {
	s := NewStore()
	_, err := s.SaveEntities([]doc{{"attributes": doc{"qualifiedName": "x"}}}, SaveParams{})
	assert.ErrorIs(t, err, ErrBadRequest)
	_, err = s.SaveEntities([]doc{{"typeName": "Table", "attributes": doc{}}}, SaveParams{})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, 0, s.Len())
}

// TestSaveEntities_Classifications tests append and replace semantics for tags.
func TestSaveEntities_Classifications(t *testing.T) {
	s := NewStore()
	withTags := func(names ...string) doc {
		e := entity("Table", "a/t", "", nil)
		var tags []any
		for _, n := range names {
			tags = append(tags, doc{"typeName": n})
		}
		e["classifications"] = tags
		return e
	}

	_, err := s.SaveEntities([]doc{withTags("PII")}, SaveParams{})
	require.NoError(t, err)
	_, err = s.SaveEntities([]doc{withTags("PII", "Gold")}, SaveParams{})
	require.NoError(t, err)
	got, _ := s.GetEntityByQualifiedName("Table", "a/t")
	assert.Len(t, asSlice(got["classifications"]), 2)

	_, err = s.SaveEntities([]doc{withTags("Silver")}, SaveParams{ReplaceClassifications: true})
	require.NoError(t, err)
	got, _ = s.GetEntityByQualifiedName("Table", "a/t")
	require.Len(t, asSlice(got["classifications"]), 1)
	assert.Equal(t, "Silver", str(asDoc(asSlice(got["classifications"])[0]), "typeName"))
}

// TestSaveEntities_CustomMetadata tests ignore, merge and overwrite handling.
func TestSaveEntities_CustomMetadata(t *testing.T) {
	s := NewStore()
	withCM := func(sets doc) doc {
		e := entity("Table", "a/t", "", nil)
		e["businessAttributes"] = sets
		return e
	}

	_, err := s.SaveEntities([]doc{withCM(doc{"Quality": doc{"score": 1.0, "owner": "x"}})}, SaveParams{})
	require.NoError(t, err)

	_, err = s.SaveEntities([]doc{withCM(doc{"Quality": doc{"score": 2.0}})}, SaveParams{})
	require.NoError(t, err)
	got, _ := s.GetEntityByQualifiedName("Table", "a/t")
	assert.Equal(t, 1.0, subDoc(subDoc(got, "businessAttributes"), "Quality")["score"], "ignored")

	_, err = s.SaveEntities([]doc{withCM(doc{"Quality": doc{"score": 3.0}})}, SaveParams{ReplaceBusinessAttributes: true})
	require.NoError(t, err)
	got, _ = s.GetEntityByQualifiedName("Table", "a/t")
	quality := subDoc(subDoc(got, "businessAttributes"), "Quality")
	assert.Equal(t, 3.0, quality["score"])
	assert.Equal(t, "x", quality["owner"], "merged")

	_, err = s.SaveEntities([]doc{withCM(doc{"Cost": doc{"usd": 5.0}})}, SaveParams{ReplaceBusinessAttributes: true, OverwriteBusinessAttributes: true})
	require.NoError(t, err)
	got, _ = s.GetEntityByQualifiedName("Table", "a/t")
	assert.NotContains(t, subDoc(got, "businessAttributes"), "Quality", "overwritten")
	assert.Contains(t, subDoc(got, "businessAttributes"), "Cost")
}

// TestDeleteEntities tests soft delete, restore by save, and purge.
func TestDeleteEntities(t *testing.T) {
	s := NewStore()
	resp, err := s.SaveEntities([]doc{entity("Table", "a/t", "", nil)}, SaveParams{})
	require.NoError(t, err)
	guid := str(asDoc(mutated(resp, "CREATE")[0]), "guid")

	resp, err = s.DeleteEntities([]string{guid}, "SOFT")
	require.NoError(t, err)
	assert.Len(t, mutated(resp, "DELETE"), 1)
	got, _ := s.GetEntity(guid)
	assert.Equal(t, "DELETED", got["status"])

	resp, err = s.DeleteEntities([]string{guid}, "")
	require.NoError(t, err)
	assert.Empty(t, mutated(resp, "DELETE"), "already archived")

	restore := entity("Table", "a/t", "", nil)
	restore["status"] = "ACTIVE"
	resp, err = s.SaveEntities([]doc{restore}, SaveParams{})
	require.NoError(t, err)
	assert.Len(t, mutated(resp, "UPDATE"), 1)

	_, err = s.DeleteEntities([]string{guid}, "PURGE")
	require.NoError(t, err)
	_, err = s.GetEntity(guid)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetEntityByQualifiedName("Table", "a/t")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.DeleteEntities([]string{"missing"}, "SOFT")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.DeleteEntities([]string{guid}, "SHRED")
	assert.ErrorIs(t, err, ErrBadRequest)
}

// TestSearchEntities_Paging tests filtering, sorting and pagination.
func TestSearchEntities_Paging(t *testing.T) {
	s := NewStore()
	var batch []doc
	for _, qn := range []string{"a/t3", "a/t1", "a/t2", "b/t4"} {
		batch = append(batch, entity("Table", qn, "", nil))
	}
	batch = append(batch, entity("View", "a/v1", "", nil))
	_, err := s.SaveEntities(batch, SaveParams{})
	require.NoError(t, err)

	req := doc{"dsl": doc{
		"from": 1.0,
		"size": 1.0,
		"query": doc{"bool": doc{"filter": []any{
			doc{"term": doc{"__typeName.keyword": doc{"value": "Table"}}},
			doc{"prefix": doc{"qualifiedName": doc{"value": "a/"}}},
		}}},
		"sort": []any{doc{"qualifiedName": doc{"order": "asc"}}},
	}}
	resp, err := s.SearchEntities(req)
	require.NoError(t, err)
	assert.Equal(t, 3, resp["approximateCount"])
	entities := asSlice(resp["entities"])
	require.Len(t, entities, 1)
	assert.Equal(t, "a/t2", subDoc(asDoc(entities[0]), "attributes")["qualifiedName"])

	subDoc(req, "dsl")["from"] = 10.0
	resp, err = s.SearchEntities(req)
	require.NoError(t, err)
	assert.Empty(t, asSlice(resp["entities"]))
}

// TestWorkflowRuns tests submission, run progression and stopping.
func TestWorkflowRuns(t *testing.T) {
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return clock }), WithRunDuration(time.Minute))

	wf := doc{
		"metadata": doc{
			"name":        "atlan-snowflake-1",
			"annotations": doc{"package.argoproj.io/name": "@atlan/snowflake"},
		},
		"spec": doc{"templates": []any{doc{"name": "main"}}},
	}
	stored, err := s.SubmitWorkflow(wf)
	require.NoError(t, err)
	assert.Equal(t, "default", subDoc(stored, "metadata")["namespace"])
	assert.NotEmpty(t, subDoc(stored, "metadata")["uid"])

	found, err := s.SearchWorkflows(doc{"query": doc{"term": doc{
		"metadata.annotations.package.argoproj.io/name.keyword": doc{"value": "@atlan/snowflake"},
	}}})
	require.NoError(t, err)
	assert.Equal(t, 1, subDoc(subDoc(found, "hits"), "total")["value"])

	runQuery := doc{"query": doc{"term": doc{"spec.workflowTemplateRef.name.keyword": "atlan-snowflake-1"}}}
	runs, err := s.SearchRuns(runQuery)
	require.NoError(t, err)
	hits := asSlice(subDoc(runs, "hits")["hits"])
	require.Len(t, hits, 1)
	run := subDoc(asDoc(hits[0]), "_source")
	assert.Equal(t, "Running", subDoc(run, "status")["phase"])
	runName := str(subDoc(run, "metadata"), "name")

	clock = clock.Add(2 * time.Minute)
	runs, err = s.SearchRuns(runQuery)
	require.NoError(t, err)
	run = subDoc(asDoc(asSlice(subDoc(runs, "hits")["hits"])[0]), "_source")
	assert.Equal(t, "Succeeded", subDoc(run, "status")["phase"])

	_, err = s.SubmitWorkflow(wf)
	require.NoError(t, err)
	runs, err = s.SearchRuns(runQuery)
	require.NoError(t, err)
	assert.Equal(t, 2, subDoc(subDoc(runs, "hits"), "total")["value"])

	var running string
	for _, h := range asSlice(subDoc(runs, "hits")["hits"]) {
		if str(asDoc(h), "_id") != runName {
			running = str(asDoc(h), "_id")
		}
	}
	stopped, err := s.StopRun(running)
	require.NoError(t, err)
	assert.Equal(t, "Failed", subDoc(stopped, "status")["phase"])

	_, err = s.StopRun("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.SubmitWorkflow(doc{"metadata": doc{}})
	assert.ErrorIs(t, err, ErrBadRequest)
}
