package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atlan-sdk/core/client"
	"atlan-sdk/feature/assets"
	"atlan-sdk/feature/query"

	"go.uber.org/zap"
)

// ErrNoRun is returned when a workflow has never run.
var ErrNoRun = errors.New("workflow has no runs")

const (
	packageField  = "metadata.annotations." + packageNameKey + ".keyword"
	workflowField = "spec.workflowTemplateRef.name.keyword"
	startedField  = "status.startedAt"
)

type searchRequest struct {
	From  int              `json:"from"`
	Size  int              `json:"size"`
	Query query.Query      `json:"query"`
	Sort  []query.SortItem `json:"sort,omitempty"`
}

// Service submits workflows and follows their runs.
type Service struct {
	api    assets.Caller
	logger *zap.Logger
}

// NewService creates a workflow service.
func NewService(api assets.Caller, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, logger: logger}
}

// Run submits a workflow, which starts a run. Submitting a workflow with an
// existing name replaces it.
func (s *Service) Run(ctx context.Context, w *Workflow) (*Workflow, error) {
	var out Workflow
	if err := s.api.Call(ctx, client.SubmitWorkflow, nil, w, &out); err != nil {
		return nil, fmt.Errorf("failed to run workflow %s: %w", w.Metadata.Name, err)
	}
	s.logger.Info("Submitted workflow",
		zap.String("workflow", out.Metadata.Name),
		zap.String("package", w.PackageName()))
	return &out, nil
}

// FindByType returns up to limit workflows built from the package, e.g.
// SnowflakePackage.
func (s *Service) FindByType(ctx context.Context, pkg string, limit int) ([]*Workflow, error) {
	req := searchRequest{
		Size:  limit,
		Query: query.Bool{Filter: []query.Query{query.Term{Field: packageField, Value: pkg}}},
	}
	var resp hitsResponse[Workflow]
	if err := s.api.Call(ctx, client.SearchWorkflows, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to find %s workflows: %w", pkg, err)
	}
	out := make([]*Workflow, len(resp.Hits.Hits))
	for i := range resp.Hits.Hits {
		out[i] = &resp.Hits.Hits[i].Source
	}
	return out, nil
}

// FindRuns returns up to limit runs of a workflow, most recent first.
func (s *Service) FindRuns(ctx context.Context, workflowName string, limit int) ([]*Run, error) {
	req := searchRequest{
		Size:  limit,
		Query: query.Bool{Filter: []query.Query{query.Term{Field: workflowField, Value: workflowName}}},
		Sort:  []query.SortItem{{Field: startedField, Order: query.Descending}},
	}
	var resp hitsResponse[Run]
	if err := s.api.Call(ctx, client.SearchRuns, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to find runs of %s: %w", workflowName, err)
	}
	out := make([]*Run, len(resp.Hits.Hits))
	for i := range resp.Hits.Hits {
		out[i] = &resp.Hits.Hits[i].Source
	}
	return out, nil
}

// FindLatestRun returns the most recent run of a workflow, or ErrNoRun.
func (s *Service) FindLatestRun(ctx context.Context, workflowName string) (*Run, error) {
	runs, err := s.FindRuns(ctx, workflowName, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%s: %w", workflowName, ErrNoRun)
	}
	return runs[0], nil
}

// Stop stops a running run.
func (s *Service) Stop(ctx context.Context, runName string) (*Run, error) {
	var run Run
	if err := s.api.Call(ctx, client.StopRun.With(runName), nil, nil, &run); err != nil {
		return nil, fmt.Errorf("failed to stop run %s: %w", runName, err)
	}
	s.logger.Info("Stopped run", zap.String("run", runName), zap.String("phase", string(run.Status.Phase)))
	return &run, nil
}

// Monitor polls the latest run of a workflow every interval until it
// finishes, and returns its final state.
func (s *Service) Monitor(ctx context.Context, workflowName string, interval time.Duration) (*Run, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("polling interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		run, err := s.FindLatestRun(ctx, workflowName)
		if err != nil {
			return nil, err
		}
		if run.Status.Phase.IsTerminal() {
			s.logger.Info("Run finished",
				zap.String("run", run.Metadata.Name),
				zap.String("phase", string(run.Status.Phase)))
			return run, nil
		}
		s.logger.Debug("Run in progress",
			zap.String("run", run.Metadata.Name),
			zap.String("progress", run.Status.Progress))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
