package stub

import (
	"time"

	"github.com/google/uuid"
)

const (
	timeLayout       = "2006-01-02T15:04:05.000000000Z07:00"
	templateLabel    = "workflows.argoproj.io/workflow-template"
	defaultNamespace = "default"
)

// SubmitWorkflow stores (or replaces) a workflow template and starts a run.
func (s *Store) SubmitWorkflow(w doc) (doc, error) {
	meta := subDoc(w, "metadata")
	name := str(meta, "name")
	if name == "" {
		return nil, badRequest("workflow metadata.name is required")
	}
	if len(asSlice(subDoc(w, "spec")["templates"])) == 0 {
		return nil, badRequest("workflow %s has no templates", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.now().UTC()
	stored := cloneDoc(w)
	meta = subDoc(stored, "metadata")
	if str(meta, "namespace") == "" {
		meta["namespace"] = defaultNamespace
	}
	if prev, ok := s.workflows[name]; ok {
		meta["uid"] = str(subDoc(prev, "metadata"), "uid")
		meta["creationTimestamp"] = str(subDoc(prev, "metadata"), "creationTimestamp")
	} else {
		meta["uid"] = uuid.NewString()
		meta["creationTimestamp"] = started.Format(timeLayout)
	}
	s.workflows[name] = stored

	labels := doc{templateLabel: name}
	for k, v := range subDoc(meta, "labels") {
		labels[k] = v
	}
	runName := name + "-" + uuid.NewString()[:5]
	s.runs[runName] = doc{
		"metadata": doc{
			"name":              runName,
			"namespace":         meta["namespace"],
			"uid":               uuid.NewString(),
			"creationTimestamp": started.Format(timeLayout),
			"labels":            labels,
		},
		"spec": doc{
			"workflowTemplateRef": doc{"name": name},
		},
		"status": doc{
			"phase":     "Running",
			"startedAt": started.Format(timeLayout),
			"progress":  "0/1",
		},
	}
	return cloneDoc(stored), nil
}

// SearchWorkflows evaluates a search over workflow templates.
func (s *Store) SearchWorkflows(req doc) (doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]doc, 0, len(s.workflows))
	for _, w := range s.workflows {
		all = append(all, w)
	}
	return hitsResponse(all, req, func(d doc) string { return str(subDoc(d, "metadata"), "name") })
}

// SearchRuns evaluates a search over workflow runs.
func (s *Store) SearchRuns(req doc) (doc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]doc, 0, len(s.runs))
	for _, r := range s.runs {
		s.advance(r)
		all = append(all, r)
	}
	return hitsResponse(all, req, func(d doc) string { return str(subDoc(d, "metadata"), "name") })
}

// StopRun stops a running workflow run.
func (s *Store) StopRun(name string) (doc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[name]
	if !ok {
		return nil, notFound("workflow run %s does not exist", name)
	}
	s.advance(r)
	status := subDoc(r, "status")
	if str(status, "phase") == "Running" {
		status["phase"] = "Failed"
		status["message"] = "Stopped with strategy 'Stop'"
		status["finishedAt"] = s.now().UTC().Format(timeLayout)
	}
	return cloneDoc(r), nil
}

// advance completes a running run once the run duration has elapsed.
func (s *Store) advance(r doc) {
	status := subDoc(r, "status")
	if str(status, "phase") != "Running" {
		return
	}
	started, err := time.Parse(time.RFC3339Nano, str(status, "startedAt"))
	if err != nil {
		return
	}
	now := s.now().UTC()
	if now.Sub(started) < s.runFor {
		return
	}
	status["phase"] = "Succeeded"
	status["progress"] = "1/1"
	status["finishedAt"] = now.Format(timeLayout)
}

func hitsResponse(all []doc, req doc, id func(doc) string) (doc, error) {
	matched, err := filterDocs(all, req["query"], workflowField)
	if err != nil {
		return nil, err
	}
	sortDocs(matched, asSlice(req["sort"]), workflowField, id)
	page := paginate(matched, req)

	hits := make([]any, len(page))
	for i, d := range page {
		hits[i] = doc{"_id": id(d), "_source": cloneDoc(d)}
	}
	return doc{"hits": doc{
		"total": doc{"value": len(matched)},
		"hits":  hits,
	}}, nil
}
