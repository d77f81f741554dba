package domain

import (
	"net/url"
	"time"
)

type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusRunning  Status = "running"
	StatusPending  Status = "pending"
	StatusCanceled Status = "canceled"
	StatusSkipped  Status = "skipped"
	StatusManual   Status = "manual"
	StatusUnknown  Status = "unknown"
)

func StatusFrom(s string) Status {
	switch Status(s) {
	case StatusSuccess, StatusFailed, StatusRunning, StatusPending,
		StatusCanceled, StatusSkipped, StatusManual:
		return Status(s)
	default:
		return StatusUnknown
	}
}

// ProjectIdentity is derived from a repository's origin remote URL.
// EncodedPath is the URL-safe form of "namespace/project" accepted by
// the GitLab API as a project id (slashes become %2F).
type ProjectIdentity struct {
	Host        string
	Namespace   string
	ProjectName string
	EncodedPath string
}

func NewProjectIdentity(host, namespace, project string) ProjectIdentity {
	return ProjectIdentity{
		Host:        host,
		Namespace:   namespace,
		ProjectName: project,
		EncodedPath: url.PathEscape(namespace + "/" + project),
	}
}

func (p ProjectIdentity) FullPath() string { return p.Namespace + "/" + p.ProjectName }

func (p ProjectIdentity) WebURL() string { return "https://" + p.Host + "/" + p.FullPath() }

type User struct {
	Name     string
	Username string
}

type Pipeline struct {
	ID         int64
	Status     Status
	Ref        string
	SHA        string
	WebURL     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Duration   float64
	Coverage   string
	Source     string
	Tag        bool
	User       User
	YAMLErrors string

	// Project is the identity snapshot attached by the use case that
	// produced this pipeline; nil when fetched without one.
	Project *ProjectIdentity
}

// ArtifactsFile is the downloadable archive attached to a job. Its
// presence is the sole signal that a job has artifacts to fetch.
type ArtifactsFile struct {
	Filename string
	Size     int64
}

type Job struct {
	ID             int64
	Name           string
	Stage          string
	Status         Status
	Duration       float64
	QueuedDuration float64
	WebURL         string
	TagList        []string
	ArtifactsFile  *ArtifactsFile
	Coverage       float64
	AllowFailure   bool
	CreatedAt      time.Time
	StartedAt      *time.Time
	FinishedAt     *time.Time

	// Trace holds the raw job log once fetched, or a diagnostic
	// placeholder when the trace fetch failed.
	Trace string
}

func (j Job) HasArtifacts() bool {
	return j.ArtifactsFile != nil && j.ArtifactsFile.Filename != ""
}

// Artifact is artifact metadata only; archive internals are opaque.
type Artifact struct {
	JobID        int64
	JobName      string
	Filename     string
	Size         int64
	FileType     string
	FileFormat   string
	DownloadPath string
}

// PipelineDetails is the composite result of one aggregation call.
type PipelineDetails struct {
	Pipeline  Pipeline
	Jobs      []Job
	Artifacts []Artifact
}

type DownloadedFile struct {
	FileName string
	Path     string
	Size     int64
}

// JobArtifactsDownload reports a single-job download. Files is empty
// when the job carries no artifacts, which is a valid terminal state.
type JobArtifactsDownload struct {
	JobID   int64
	JobName string
	Files   []DownloadedFile
}

// DownloadOutcome is the per-job record of a pipeline-wide download.
type DownloadOutcome struct {
	JobID    int64
	JobName  string
	FileName string
	Path     string
	Size     int64
	Success  bool
	Error    string
}

// DownloadSummary aggregates outcomes in backend job-listing order.
type DownloadSummary struct {
	PipelineID int64
	Attempted  int
	Succeeded  int
	Failed     int
	Outcomes   []DownloadOutcome
}
