package application

import (
	"context"
	"fmt"

	"github.com/glpipe/glpipe/internal/domain"
	"go.uber.org/zap"
)

// Service carries the collaborators shared by all operations. It holds
// no mutable state: every call re-resolves the project and goes back
// to the backend.
type Service struct {
	log          *zap.Logger
	resolver     domain.ProjectResolver
	ci           domain.CIClient
	artifactsDir string
}

func NewService(log *zap.Logger, resolver domain.ProjectResolver, ci domain.CIClient, artifactsDir string) *Service {
	return &Service{
		log:          log,
		resolver:     resolver,
		ci:           ci,
		artifactsDir: artifactsDir,
	}
}

// effectivePipelineID resolves an omitted pipeline id to the most
// recently updated pipeline. ok=false means the project has no
// pipelines at all, which is not an error.
func (s *Service) effectivePipelineID(ctx context.Context, project domain.ProjectIdentity, pipelineID int64) (int64, bool, error) {
	if pipelineID != 0 {
		return pipelineID, true, nil
	}

	pipelines, err := s.ci.ListPipelines(ctx, project, domain.ListOptions{
		OrderBy: "updated_at",
		Sort:    "desc",
		PerPage: 1,
	})
	if err != nil {
		return 0, false, fmt.Errorf("listing pipelines for %s: %w", project.FullPath(), err)
	}
	if len(pipelines) == 0 {
		return 0, false, nil
	}
	return pipelines[0].ID, true, nil
}
