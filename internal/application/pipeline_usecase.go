package application

import (
	"context"
	"fmt"

	"github.com/glpipe/glpipe/internal/domain"
	"go.uber.org/zap"
)

// RepoURL resolves the local repository to its GitLab project and
// reports the identity.
func (s *Service) RepoURL(ctx context.Context, projectPath string) Result {
	_, project, err := s.resolver.Resolve(ctx, projectPath)
	if err != nil {
		return failure("resolving repository at %s: %v", projectPath, err)
	}
	return success(fmt.Sprintf("project %s on %s", project.FullPath(), project.Host), project)
}

// LatestPipeline returns the most recently updated pipeline for the
// project governing projectPath.
func (s *Service) LatestPipeline(ctx context.Context, projectPath string) Result {
	_, project, err := s.resolver.Resolve(ctx, projectPath)
	if err != nil {
		return failure("resolving repository at %s: %v", projectPath, err)
	}

	id, ok, err := s.effectivePipelineID(ctx, project, 0)
	if err != nil {
		return failure("%v", err)
	}
	if !ok {
		return emptySuccess("no pipelines found for %s", project.FullPath())
	}

	pipeline, err := s.ci.GetPipeline(ctx, project, id)
	if err != nil {
		return failure("fetching pipeline %d: %v", id, err)
	}
	pipeline.Project = &project

	return success(fmt.Sprintf("pipeline %d (%s)", pipeline.ID, pipeline.Status), pipeline)
}

// PipelineDetails aggregates one pipeline with its jobs (traces
// attached) and artifact metadata. pipelineID 0 means "latest".
//
// Partial-failure policy: job listing and artifact metadata degrade to
// empty lists, and a failed trace fetch only marks that job's Trace
// field. Only repository resolution, credential and pipeline-fetch
// errors fail the whole operation.
func (s *Service) PipelineDetails(ctx context.Context, projectPath string, pipelineID int64) Result {
	_, project, err := s.resolver.Resolve(ctx, projectPath)
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

	pipeline, err := s.ci.GetPipeline(ctx, project, id)
	if err != nil {
		return failure("fetching pipeline %d: %v", id, err)
	}
	pipeline.Project = &project

	jobs, err := s.ci.ListPipelineJobs(ctx, project, id)
	if err != nil {
		s.log.Warn("job listing failed, continuing without jobs",
			zap.Int64("pipeline", id), zap.Error(err))
		jobs = nil
	}

	artifacts, err := s.ci.ListPipelineArtifacts(ctx, project, id)
	if err != nil {
		s.log.Warn("artifact listing failed, continuing without artifacts",
			zap.Int64("pipeline", id), zap.Error(err))
		artifacts = nil
	}

	jobs = parallelMap(jobs, func(j domain.Job) domain.Job {
		trace, err := s.ci.GetJobTrace(ctx, project, j.ID)
		if err != nil {
			s.log.Warn("trace fetch failed",
				zap.Int64("job", j.ID), zap.String("name", j.Name), zap.Error(err))
			j.Trace = fmt.Sprintf("failed to fetch trace for job %d: %v", j.ID, err)
			return j
		}
		j.Trace = trace
		return j
	})

	details := domain.PipelineDetails{Pipeline: pipeline, Jobs: jobs, Artifacts: artifacts}
	return success(fmt.Sprintf("pipeline %d (%s), %d jobs", pipeline.ID, pipeline.Status, len(jobs)), details)
}
