package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// JobDetails fetches a single job by id.
func (s *Service) JobDetails(ctx context.Context, projectPath string, jobID int64) Result {
	_, project, err := s.resolver.Resolve(ctx, projectPath)
	if err != nil {
		return failure("resolving repository at %s: %v", projectPath, err)
	}

	job, err := s.ci.GetJob(ctx, project, jobID)
	if err != nil {
		return failure("fetching job %d: %v", jobID, err)
	}
	return success(fmt.Sprintf("job %d %q (%s)", job.ID, job.Name, job.Status), job)
}

// JobLogs fetches the raw trace of a single job.
func (s *Service) JobLogs(ctx context.Context, projectPath string, jobID int64) Result {
	_, project, err := s.resolver.Resolve(ctx, projectPath)
	if err != nil {
		return failure("resolving repository at %s: %v", projectPath, err)
	}

	job, err := s.ci.GetJob(ctx, project, jobID)
	if err != nil {
		return failure("fetching job %d: %v", jobID, err)
	}

	trace, err := s.ci.GetJobTrace(ctx, project, jobID)
	if err != nil {
		return failure("fetching trace for job %d: %v", jobID, err)
	}

	job.Trace = trace
	return success(fmt.Sprintf("trace for job %d %q (%d bytes)", job.ID, job.Name, len(trace)), job)
}

// JobArtifacts lists artifact metadata for a single job. A failed
// metadata listing degrades to an empty list, same as a job without
// artifacts; the job fetch itself still has to succeed.
func (s *Service) JobArtifacts(ctx context.Context, projectPath string, jobID int64) Result {
	_, project, err := s.resolver.Resolve(ctx, projectPath)
	if err != nil {
		return failure("resolving repository at %s: %v", projectPath, err)
	}

	if _, err := s.ci.GetJob(ctx, project, jobID); err != nil {
		return failure("fetching job %d: %v", jobID, err)
	}

	artifacts, err := s.ci.ListJobArtifacts(ctx, project, jobID)
	if err != nil {
		s.log.Warn("artifact metadata fetch failed, reporting none",
			zap.Int64("job", jobID), zap.Error(err))
		artifacts = nil
	}

	return success(fmt.Sprintf("%d artifacts for job %d", len(artifacts), jobID), artifacts)
}
