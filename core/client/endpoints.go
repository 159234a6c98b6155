package client

import (
	"fmt"
	"net/http"
	"net/url"
)

// Endpoint identifies a catalog API operation.
type Endpoint struct {
	Method string
	Path   string
}

// With returns a copy of the endpoint with path placeholders filled in.
// Arguments are path-escaped.
func (e Endpoint) With(args ...string) Endpoint {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(a)
	}
	return Endpoint{Method: e.Method, Path: fmt.Sprintf(e.Path, escaped...)}
}

func (e Endpoint) String() string {
	return e.Method + " " + e.Path
}

// Metastore endpoints.
var (
	BulkSaveEntities           = Endpoint{http.MethodPost, "/api/meta/entity/bulk"}
	BulkDeleteEntities         = Endpoint{http.MethodDelete, "/api/meta/entity/bulk"}
	GetEntityByGUID            = Endpoint{http.MethodGet, "/api/meta/entity/guid/%s"}
	GetEntityByUniqueAttribute = Endpoint{http.MethodGet, "/api/meta/entity/uniqueAttribute/type/%s"}
	IndexSearch                = Endpoint{http.MethodPost, "/api/meta/search/indexsearch"}
)

// Orchestration service endpoints.
var (
	SubmitWorkflow  = Endpoint{http.MethodPost, "/api/service/workflows"}
	SearchWorkflows = Endpoint{http.MethodPost, "/api/service/workflows/indexsearch"}
	SearchRuns      = Endpoint{http.MethodPost, "/api/service/runs/indexsearch"}
	StopRun         = Endpoint{http.MethodPost, "/api/service/runs/%s/stop"}
)
