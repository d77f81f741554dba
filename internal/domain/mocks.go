package domain

import (
	"context"
	"sync"
)

// MockCIClient is a hand-rolled test double. Calls counts every API
// method invocation so tests can assert that no network-equivalent
// call happens on early failures.
type MockCIClient struct {
	Pipelines    []Pipeline
	PipelineByID map[int64]Pipeline
	Jobs         []Job
	Artifacts    []Artifact
	JobByID      map[int64]Job
	JobArtifacts map[int64][]Artifact
	Traces       map[int64]string
	Archives     map[int64][]byte

	ListErr         error
	GetPipelineErr  error
	JobsErr         error
	ArtifactsErr    error
	GetJobErr       error
	JobArtifactsErr error
	TraceErr        map[int64]error
	DownloadErr     map[int64]error

	mu    sync.Mutex
	Calls int
}

// called is safe under the aggregator's parallel trace fan-out.
func (m *MockCIClient) called() {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
}

func (m *MockCIClient) ListPipelines(context.Context, ProjectIdentity, ListOptions) ([]Pipeline, error) {
	m.called()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Pipelines, nil
}

func (m *MockCIClient) GetPipeline(_ context.Context, _ ProjectIdentity, id int64) (Pipeline, error) {
	m.called()
	if m.GetPipelineErr != nil {
		return Pipeline{}, m.GetPipelineErr
	}
	if p, ok := m.PipelineByID[id]; ok {
		return p, nil
	}
	return Pipeline{ID: id}, nil
}

func (m *MockCIClient) ListPipelineJobs(context.Context, ProjectIdentity, int64) ([]Job, error) {
	m.called()
	if m.JobsErr != nil {
		return nil, m.JobsErr
	}
	return m.Jobs, nil
}

func (m *MockCIClient) ListPipelineArtifacts(context.Context, ProjectIdentity, int64) ([]Artifact, error) {
	m.called()
	if m.ArtifactsErr != nil {
		return nil, m.ArtifactsErr
	}
	return m.Artifacts, nil
}

func (m *MockCIClient) GetJob(_ context.Context, _ ProjectIdentity, id int64) (Job, error) {
	m.called()
	if m.GetJobErr != nil {
		return Job{}, m.GetJobErr
	}
	if j, ok := m.JobByID[id]; ok {
		return j, nil
	}
	return Job{ID: id}, nil
}

func (m *MockCIClient) ListJobArtifacts(_ context.Context, _ ProjectIdentity, id int64) ([]Artifact, error) {
	m.called()
	if m.JobArtifactsErr != nil {
		return nil, m.JobArtifactsErr
	}
	return m.JobArtifacts[id], nil
}

func (m *MockCIClient) GetJobTrace(_ context.Context, _ ProjectIdentity, id int64) (string, error) {
	m.called()
	if err := m.TraceErr[id]; err != nil {
		return "", err
	}
	return m.Traces[id], nil
}

func (m *MockCIClient) DownloadJobArtifacts(_ context.Context, _ ProjectIdentity, id int64) ([]byte, error) {
	m.called()
	if err := m.DownloadErr[id]; err != nil {
		return nil, err
	}
	return m.Archives[id], nil
}

type MockRemoteReader struct {
	URL string
	Err error
}

func (m *MockRemoteReader) RemoteURL(context.Context, string, string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.URL, nil
}

type MockResolver struct {
	Root     string
	Identity ProjectIdentity
	Err      error
}

func (m *MockResolver) Resolve(context.Context, string) (string, ProjectIdentity, error) {
	if m.Err != nil {
		return "", ProjectIdentity{}, m.Err
	}
	return m.Root, m.Identity, nil
}
