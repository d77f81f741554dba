package domain

import "context"

type ListOptions struct {
	OrderBy string
	Sort    string
	PerPage int
}

// CIClient is the read surface of the GitLab CI API. Every call is a
// single attempt; composition at higher layers decides whether a
// failed call is tolerable.
type CIClient interface {
	ListPipelines(ctx context.Context, project ProjectIdentity, opts ListOptions) ([]Pipeline, error)
	GetPipeline(ctx context.Context, project ProjectIdentity, pipelineID int64) (Pipeline, error)
	ListPipelineJobs(ctx context.Context, project ProjectIdentity, pipelineID int64) ([]Job, error)
	ListPipelineArtifacts(ctx context.Context, project ProjectIdentity, pipelineID int64) ([]Artifact, error)
	GetJob(ctx context.Context, project ProjectIdentity, jobID int64) (Job, error)
	ListJobArtifacts(ctx context.Context, project ProjectIdentity, jobID int64) ([]Artifact, error)
	GetJobTrace(ctx context.Context, project ProjectIdentity, jobID int64) (string, error)
	DownloadJobArtifacts(ctx context.Context, project ProjectIdentity, jobID int64) ([]byte, error)
}

// RemoteReader reads the configured URL of a named remote.
type RemoteReader interface {
	RemoteURL(ctx context.Context, dir, remote string) (string, error)
}

// ProjectResolver locates the repository root governing startPath and
// derives the project identity from its origin remote.
type ProjectResolver interface {
	Resolve(ctx context.Context, startPath string) (root string, project ProjectIdentity, err error)
}
