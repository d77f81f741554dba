package gitlab_http

import (
	"time"

	"github.com/glpipe/glpipe/internal/domain"
)

// DTOs mirror the GitLab wire format; coercion into domain types
// happens here so nothing upstream touches raw JSON shapes.

type userDTO struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type pipelineDTO struct {
	ID         int64     `json:"id"`
	Status     string    `json:"status"`
	Ref        string    `json:"ref"`
	SHA        string    `json:"sha"`
	WebURL     string    `json:"web_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Duration   float64   `json:"duration"`
	Coverage   string    `json:"coverage"`
	Source     string    `json:"source"`
	Tag        bool      `json:"tag"`
	User       userDTO   `json:"user"`
	YAMLErrors string    `json:"yaml_errors"`
}

func (d pipelineDTO) toPipeline() domain.Pipeline {
	return domain.Pipeline{
		ID:         d.ID,
		Status:     domain.StatusFrom(d.Status),
		Ref:        d.Ref,
		SHA:        d.SHA,
		WebURL:     d.WebURL,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		Duration:   d.Duration,
		Coverage:   d.Coverage,
		Source:     d.Source,
		Tag:        d.Tag,
		User:       domain.User{Name: d.User.Name, Username: d.User.Username},
		YAMLErrors: d.YAMLErrors,
	}
}

type artifactsFileDTO struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type artifactDTO struct {
	FileType   string `json:"file_type"`
	Size       int64  `json:"size"`
	Filename   string `json:"filename"`
	FileFormat string `json:"file_format"`
}

type jobDTO struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Stage          string            `json:"stage"`
	Status         string            `json:"status"`
	Duration       float64           `json:"duration"`
	QueuedDuration float64           `json:"queued_duration"`
	WebURL         string            `json:"web_url"`
	TagList        []string          `json:"tag_list"`
	ArtifactsFile  *artifactsFileDTO `json:"artifacts_file"`
	Artifacts      []artifactDTO     `json:"artifacts"`
	Coverage       float64           `json:"coverage"`
	AllowFailure   bool              `json:"allow_failure"`
	CreatedAt      time.Time         `json:"created_at"`
	StartedAt      *time.Time        `json:"started_at"`
	FinishedAt     *time.Time        `json:"finished_at"`
}

func (d jobDTO) toJob() domain.Job {
	j := domain.Job{
		ID:             d.ID,
		Name:           d.Name,
		Stage:          d.Stage,
		Status:         domain.StatusFrom(d.Status),
		Duration:       d.Duration,
		QueuedDuration: d.QueuedDuration,
		WebURL:         d.WebURL,
		TagList:        d.TagList,
		Coverage:       d.Coverage,
		AllowFailure:   d.AllowFailure,
		CreatedAt:      d.CreatedAt,
		StartedAt:      d.StartedAt,
		FinishedAt:     d.FinishedAt,
	}
	if d.ArtifactsFile != nil {
		j.ArtifactsFile = &domain.ArtifactsFile{
			Filename: d.ArtifactsFile.Filename,
			Size:     d.ArtifactsFile.Size,
		}
	}
	return j
}

func (d jobDTO) toArtifacts() []domain.Artifact {
	artifacts := make([]domain.Artifact, 0, len(d.Artifacts))
	for _, a := range d.Artifacts {
		artifacts = append(artifacts, domain.Artifact{
			JobID:      d.ID,
			JobName:    d.Name,
			Filename:   a.Filename,
			Size:       a.Size,
			FileType:   a.FileType,
			FileFormat: a.FileFormat,
		})
	}
	return artifacts
}
