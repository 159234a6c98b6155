package workflow

import (
	"time"
)

// Metadata identifies a workflow or run.
type Metadata struct {
	Name              string            `json:"name,omitempty"`
	Namespace         string            `json:"namespace,omitempty"`
	UID               string            `json:"uid,omitempty"`
	CreationTimestamp string            `json:"creationTimestamp,omitempty"`
	Labels            map[string]string `json:"labels,omitempty"`
	Annotations       map[string]string `json:"annotations,omitempty"`
}

// Parameter is a named task argument. Values are strings on the wire.
type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Arguments carries the parameters of a task.
type Arguments struct {
	Parameters []Parameter `json:"parameters"`
}

// Get returns the value of the named parameter.
func (a Arguments) Get(name string) (string, bool) {
	for _, p := range a.Parameters {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// TemplateRef points a task at a cluster-wide package template.
type TemplateRef struct {
	Name         string `json:"name"`
	Template     string `json:"template"`
	ClusterScope bool   `json:"clusterScope"`
}

// Task is one step of a DAG.
type Task struct {
	Name        string      `json:"name"`
	Arguments   Arguments   `json:"arguments"`
	TemplateRef TemplateRef `json:"templateRef"`
}

// DAG lists the tasks of a template.
type DAG struct {
	Tasks []Task `json:"tasks"`
}

// Template is a named DAG.
type Template struct {
	Name string `json:"name"`
	DAG  DAG    `json:"dag"`
}

// Spec is the executable part of a workflow.
type Spec struct {
	Entrypoint string     `json:"entrypoint,omitempty"`
	Templates  []Template `json:"templates"`
}

// PackageParameter is a value the service stores before running, such as
// a credential. Body is opaque to the workflow itself.
type PackageParameter struct {
	Parameter string         `json:"parameter"`
	Type      string         `json:"type"`
	Body      map[string]any `json:"body"`
}

// Workflow is a runnable package configuration.
type Workflow struct {
	Metadata Metadata           `json:"metadata"`
	Spec     Spec               `json:"spec"`
	Payload  []PackageParameter `json:"payload,omitempty"`
}

// Task returns the named task of the entrypoint template.
func (w *Workflow) Task(name string) (Task, bool) {
	for _, tmpl := range w.Spec.Templates {
		if tmpl.Name != w.Spec.Entrypoint {
			continue
		}
		for _, t := range tmpl.DAG.Tasks {
			if t.Name == name {
				return t, true
			}
		}
	}
	return Task{}, false
}

// PackageName returns the package the workflow was built from.
func (w *Workflow) PackageName() string {
	return w.Metadata.Annotations[packageNameKey]
}

// Phase is the lifecycle state of a run.
type Phase string

const (
	PhasePending   Phase = "Pending"
	PhaseRunning   Phase = "Running"
	PhaseSucceeded Phase = "Succeeded"
	PhaseFailed    Phase = "Failed"
	PhaseError     Phase = "Error"
)

// IsTerminal reports whether a run in this phase has finished.
func (p Phase) IsTerminal() bool {
	switch p {
	case PhaseSucceeded, PhaseFailed, PhaseError:
		return true
	}
	return false
}

// RunStatus is the progress of a run.
type RunStatus struct {
	Phase      Phase  `json:"phase"`
	StartedAt  string `json:"startedAt,omitempty"`
	FinishedAt string `json:"finishedAt,omitempty"`
	Progress   string `json:"progress,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Started parses StartedAt.
func (s RunStatus) Started() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s.StartedAt)
}

// RunSpec links a run to its workflow.
type RunSpec struct {
	WorkflowTemplateRef struct {
		Name string `json:"name"`
	} `json:"workflowTemplateRef"`
}

// Run is one execution of a workflow.
type Run struct {
	Metadata Metadata  `json:"metadata"`
	Spec     RunSpec   `json:"spec"`
	Status   RunStatus `json:"status"`
}

// WorkflowName returns the name of the workflow the run belongs to.
func (r *Run) WorkflowName() string {
	return r.Spec.WorkflowTemplateRef.Name
}

type hit[T any] struct {
	ID     string `json:"_id"`
	Source T      `json:"_source"`
}

type hitsResponse[T any] struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []hit[T] `json:"hits"`
	} `json:"hits"`
}
