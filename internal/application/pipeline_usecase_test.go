package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/glpipe/glpipe/internal/domain"
	"go.uber.org/zap"
)

func testIdentity() domain.ProjectIdentity {
	return domain.NewProjectIdentity("gitlab.com", "group", "project")
}

func newTestService(ci *domain.MockCIClient) *Service {
	resolver := &domain.MockResolver{Root: "/repo", Identity: testIdentity()}
	return NewService(zap.NewNop(), resolver, ci, ".glpipe/artifacts")
}

func TestPipelineDetails_TraceFailureIsIsolated(t *testing.T) {
	ci := &domain.MockCIClient{
		Pipelines: []domain.Pipeline{{ID: 7, Status: domain.StatusFailed}},
		Jobs: []domain.Job{
			{ID: 1, Name: "build"},
			{ID: 2, Name: "test"},
			{ID: 3, Name: "deploy"},
		},
		Traces:   map[int64]string{1: "build ok", 3: "deploy ok"},
		TraceErr: map[int64]error{2: errors.New("boom")},
	}

	res := newTestService(ci).PipelineDetails(context.Background(), ".", 0)
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}

	details := res.Data.(domain.PipelineDetails)
	if len(details.Jobs) != 3 {
		t.Fatalf("got %d jobs", len(details.Jobs))
	}
	if details.Jobs[0].Trace != "build ok" || details.Jobs[2].Trace != "deploy ok" {
		t.Errorf("healthy traces corrupted: %+v", details.Jobs)
	}
	if !strings.Contains(details.Jobs[1].Trace, "failed to fetch trace") {
		t.Errorf("job 2 trace = %q, want diagnostic placeholder", details.Jobs[1].Trace)
	}
	if details.Pipeline.Project == nil || details.Pipeline.Project.FullPath() != "group/project" {
		t.Errorf("project identity not attached: %+v", details.Pipeline.Project)
	}
}

func TestPipelineDetails_EmptyPipelineListIsSuccessWithNilData(t *testing.T) {
	ci := &domain.MockCIClient{}

	res := newTestService(ci).PipelineDetails(context.Background(), ".", 0)
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}
	if res.Data != nil {
		t.Errorf("data = %+v, want nil", res.Data)
	}
	if !strings.Contains(res.Message, "no pipelines found") {
		t.Errorf("message = %q", res.Message)
	}
}

func TestPipelineDetails_ListFailureIsFailure(t *testing.T) {
	ci := &domain.MockCIClient{ListErr: errors.New("502")}

	res := newTestService(ci).PipelineDetails(context.Background(), ".", 0)
	if res.Success {
		t.Fatal("success = true, want failure")
	}
	if res.Data != nil {
		t.Errorf("data = %+v, want nil on failure", res.Data)
	}
}

func TestPipelineDetails_JobAndArtifactListingDegradeToEmpty(t *testing.T) {
	ci := &domain.MockCIClient{
		Pipelines:    []domain.Pipeline{{ID: 7}},
		JobsErr:      errors.New("jobs 500"),
		ArtifactsErr: errors.New("artifacts 500"),
	}

	res := newTestService(ci).PipelineDetails(context.Background(), ".", 0)
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}

	details := res.Data.(domain.PipelineDetails)
	if len(details.Jobs) != 0 || len(details.Artifacts) != 0 {
		t.Errorf("details = %+v, want empty jobs and artifacts", details)
	}
}

func TestPipelineDetails_ExplicitIDSkipsListing(t *testing.T) {
	ci := &domain.MockCIClient{
		ListErr:      errors.New("must not be called"),
		PipelineByID: map[int64]domain.Pipeline{42: {ID: 42, Status: domain.StatusSuccess}},
	}

	res := newTestService(ci).PipelineDetails(context.Background(), ".", 42)
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}
	if res.Data.(domain.PipelineDetails).Pipeline.ID != 42 {
		t.Errorf("pipeline = %+v", res.Data)
	}
}

func TestPipelineDetails_ResolverFailureShortCircuits(t *testing.T) {
	ci := &domain.MockCIClient{}
	resolver := &domain.MockResolver{Err: domain.ErrNotGitLabRemote}
	svc := NewService(zap.NewNop(), resolver, ci, ".glpipe/artifacts")

	res := svc.PipelineDetails(context.Background(), ".", 0)
	if res.Success {
		t.Fatal("success = true, want failure")
	}
	if ci.Calls != 0 {
		t.Errorf("backend saw %d calls, want 0", ci.Calls)
	}
}

func TestLatestPipeline_AttachesIdentity(t *testing.T) {
	ci := &domain.MockCIClient{
		Pipelines:    []domain.Pipeline{{ID: 9}},
		PipelineByID: map[int64]domain.Pipeline{9: {ID: 9, Status: domain.StatusRunning, Ref: "main"}},
	}

	res := newTestService(ci).LatestPipeline(context.Background(), ".")
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}
	p := res.Data.(domain.Pipeline)
	if p.ID != 9 || p.Status != domain.StatusRunning {
		t.Errorf("pipeline = %+v", p)
	}
	if p.Project == nil {
		t.Error("project identity not attached")
	}
}

func TestRepoURL_ReportsIdentity(t *testing.T) {
	res := newTestService(&domain.MockCIClient{}).RepoURL(context.Background(), ".")
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}
	id := res.Data.(domain.ProjectIdentity)
	if id.WebURL() != "https://gitlab.com/group/project" {
		t.Errorf("web url = %q", id.WebURL())
	}
}
