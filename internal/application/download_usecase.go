package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glpipe/glpipe/internal/domain"
	"go.uber.org/zap"
)

// DownloadJobArtifacts materializes one job's artifact archive under
// targetDir, or under the repository's staging area when targetDir is
// empty. A job without artifacts is a valid terminal state, reported
// as success with an empty file list.
func (s *Service) DownloadJobArtifacts(ctx context.Context, projectPath string, jobID int64, targetDir string) Result {
	root, project, err := s.resolver.Resolve(ctx, projectPath)
	if err != nil {
		return failure("resolving repository at %s: %v", projectPath, err)
	}

	job, err := s.ci.GetJob(ctx, project, jobID)
	if err != nil {
		return failure("fetching job %d: %v", jobID, err)
	}

	if !job.HasArtifacts() {
		return success(fmt.Sprintf("job %d %q has no artifacts", job.ID, job.Name),
			domain.JobArtifactsDownload{JobID: job.ID, JobName: job.Name})
	}

	dir := targetDir
	if dir == "" {
		dir = s.stagingDir(root, job.ID)
	}

	file, err := s.materialize(ctx, project, job.ID, dir)
	if err != nil {
		return failure("downloading artifacts for job %d: %v", jobID, err)
	}

	return success(
		fmt.Sprintf("wrote %s (%d bytes)", file.Path, file.Size),
		domain.JobArtifactsDownload{JobID: job.ID, JobName: job.Name, Files: []domain.DownloadedFile{file}},
	)
}

// DownloadPipelineArtifacts downloads every artifact-carrying job of a
// pipeline, strictly sequentially. One job's failure never stops the
// rest; each job yields a DownloadOutcome either way, in backend
// job-listing order.
func (s *Service) DownloadPipelineArtifacts(ctx context.Context, projectPath string, pipelineID int64, targetDir string) Result {
	root, project, err := s.resolver.Resolve(ctx, projectPath)
	if err != nil {
		return failure("resolving repository at %s: %v", projectPath, err)
	}

	id, ok, err := s.effectivePipelineID(ctx, project, pipelineID)
	if err != nil {
		return failure("%v", err)
	}
	if !ok {
		return emptySuccess("no pipelines found for %s", project.FullPath())
	}

	jobs, err := s.ci.ListPipelineJobs(ctx, project, id)
	if err != nil {
		return failure("listing jobs for pipeline %d: %v", id, err)
	}

	var withArtifacts []domain.Job
	for _, j := range jobs {
		if j.HasArtifacts() {
			withArtifacts = append(withArtifacts, j)
		}
	}
	if len(withArtifacts) == 0 {
		return success(fmt.Sprintf("pipeline %d has no jobs with artifacts", id),
			domain.DownloadSummary{PipelineID: id})
	}

	outcomes := sequentialMap(withArtifacts, func(j domain.Job) domain.DownloadOutcome {
		dir := targetDir
		if dir == "" {
			dir = s.stagingDir(root, j.ID)
		}

		file, err := s.materialize(ctx, project, j.ID, dir)
		if err != nil {
			s.log.Warn("artifact download failed",
				zap.Int64("job", j.ID), zap.String("name", j.Name), zap.Error(err))
			return domain.DownloadOutcome{JobID: j.ID, JobName: j.Name, Error: err.Error()}
		}
		return domain.DownloadOutcome{
			JobID:    j.ID,
			JobName:  j.Name,
			FileName: file.FileName,
			Path:     file.Path,
			Size:     file.Size,
			Success:  true,
		}
	})

	summary := domain.DownloadSummary{
		PipelineID: id,
		Attempted:  len(outcomes),
		Outcomes:   outcomes,
	}
	for _, o := range outcomes {
		if o.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	return success(
		fmt.Sprintf("pipeline %d: %d/%d artifact downloads succeeded", id, summary.Succeeded, summary.Attempted),
		summary,
	)
}

func (s *Service) stagingDir(root string, jobID int64) string {
	return filepath.Join(root, filepath.FromSlash(s.artifactsDir), fmt.Sprintf("job-%d", jobID))
}

// materialize fetches the archive for one job and writes it under dir
// with a filename derived from the job id. Directory creation is
// idempotent; the full archive is buffered before the write.
func (s *Service) materialize(ctx context.Context, project domain.ProjectIdentity, jobID int64, dir string) (domain.DownloadedFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.DownloadedFile{}, fmt.Errorf("creating %s: %w", dir, err)
	}

	data, err := s.ci.DownloadJobArtifacts(ctx, project, jobID)
	if err != nil {
		return domain.DownloadedFile{}, err
	}

	name := fmt.Sprintf("job_%d_artifacts.zip", jobID)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.DownloadedFile{}, fmt.Errorf("writing %s: %w", path, err)
	}

	return domain.DownloadedFile{FileName: name, Path: path, Size: int64(len(data))}, nil
}
