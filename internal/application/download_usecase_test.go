package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glpipe/glpipe/internal/domain"
	"go.uber.org/zap"
)

func newDownloadService(t *testing.T, ci *domain.MockCIClient) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	resolver := &domain.MockResolver{Root: root, Identity: testIdentity()}
	return NewService(zap.NewNop(), resolver, ci, ".glpipe/artifacts"), root
}

func artifactJob(id int64, name string) domain.Job {
	return domain.Job{
		ID:            id,
		Name:          name,
		ArtifactsFile: &domain.ArtifactsFile{Filename: "artifacts.zip", Size: 4},
	}
}

func TestDownloadJobArtifacts_WritesArchive(t *testing.T) {
	ci := &domain.MockCIClient{
		JobByID:  map[int64]domain.Job{11: artifactJob(11, "build")},
		Archives: map[int64][]byte{11: []byte("zip!")},
	}
	svc, root := newDownloadService(t, ci)

	res := svc.DownloadJobArtifacts(context.Background(), ".", 11, "")
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}

	dl := res.Data.(domain.JobArtifactsDownload)
	if len(dl.Files) != 1 {
		t.Fatalf("files = %+v", dl.Files)
	}
	wantPath := filepath.Join(root, ".glpipe", "artifacts", "job-11", "job_11_artifacts.zip")
	if dl.Files[0].Path != wantPath {
		t.Errorf("path = %q, want %q", dl.Files[0].Path, wantPath)
	}
	if dl.Files[0].Size != 4 {
		t.Errorf("size = %d", dl.Files[0].Size)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("archive not written: %v", err)
	}
	if string(data) != "zip!" {
		t.Errorf("content = %q", data)
	}
}

func TestDownloadJobArtifacts_ExplicitTargetDir(t *testing.T) {
	ci := &domain.MockCIClient{
		JobByID:  map[int64]domain.Job{11: artifactJob(11, "build")},
		Archives: map[int64][]byte{11: []byte("zip!")},
	}
	svc, _ := newDownloadService(t, ci)
	target := t.TempDir()

	res := svc.DownloadJobArtifacts(context.Background(), ".", 11, target)
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}
	dl := res.Data.(domain.JobArtifactsDownload)
	if filepath.Dir(dl.Files[0].Path) != target {
		t.Errorf("path = %q, want under %q", dl.Files[0].Path, target)
	}
}

func TestDownloadJobArtifacts_NoArtifactsIsSuccess(t *testing.T) {
	ci := &domain.MockCIClient{
		JobByID: map[int64]domain.Job{11: {ID: 11, Name: "lint"}},
	}
	svc, _ := newDownloadService(t, ci)

	res := svc.DownloadJobArtifacts(context.Background(), ".", 11, "")
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}
	if dl := res.Data.(domain.JobArtifactsDownload); len(dl.Files) != 0 {
		t.Errorf("files = %+v, want empty", dl.Files)
	}
}

func TestDownloadPipelineArtifacts_FailureDoesNotStopRest(t *testing.T) {
	ci := &domain.MockCIClient{
		Pipelines: []domain.Pipeline{{ID: 7}},
		Jobs: []domain.Job{
			artifactJob(1, "build"),
			artifactJob(2, "test"),
			artifactJob(3, "package"),
			{ID: 4, Name: "lint"}, // no artifacts, filtered out
		},
		Archives: map[int64][]byte{
			1: []byte("a"),
			3: []byte("ccc"),
		},
		DownloadErr: map[int64]error{2: &domain.APIError{Status: 502, Body: "bad gateway"}},
	}
	svc, _ := newDownloadService(t, ci)

	res := svc.DownloadPipelineArtifacts(context.Background(), ".", 0, "")
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}

	summary := res.Data.(domain.DownloadSummary)
	if summary.Attempted != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Outcomes) != 3 {
		t.Fatalf("outcomes = %+v", summary.Outcomes)
	}
	if summary.Outcomes[0].JobID != 1 || summary.Outcomes[1].JobID != 2 || summary.Outcomes[2].JobID != 3 {
		t.Errorf("outcome order broken: %+v", summary.Outcomes)
	}
	if summary.Outcomes[1].Success || summary.Outcomes[1].Error == "" {
		t.Errorf("failed outcome = %+v", summary.Outcomes[1])
	}
	// The download after the failed one still happened.
	if !summary.Outcomes[2].Success || summary.Outcomes[2].Size != 3 {
		t.Errorf("outcome 3 = %+v", summary.Outcomes[2])
	}
}

func TestDownloadPipelineArtifacts_NoArtifactJobs(t *testing.T) {
	ci := &domain.MockCIClient{
		Pipelines: []domain.Pipeline{{ID: 7}},
		Jobs:      []domain.Job{{ID: 1, Name: "lint"}},
	}
	svc, _ := newDownloadService(t, ci)

	res := svc.DownloadPipelineArtifacts(context.Background(), ".", 0, "")
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}
	summary := res.Data.(domain.DownloadSummary)
	if summary.Attempted != 0 || len(summary.Outcomes) != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestDownloadPipelineArtifacts_NoPipelines(t *testing.T) {
	svc, _ := newDownloadService(t, &domain.MockCIClient{})

	res := svc.DownloadPipelineArtifacts(context.Background(), ".", 0, "")
	if !res.Success {
		t.Fatalf("success = false: %s", res.Message)
	}
	if res.Data != nil {
		t.Errorf("data = %+v, want nil", res.Data)
	}
}
