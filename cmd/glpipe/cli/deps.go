package cli

import (
	"fmt"
	"os"

	"github.com/glpipe/glpipe/internal/application"
	"github.com/glpipe/glpipe/internal/infrastructure/config"
	"github.com/glpipe/glpipe/internal/infrastructure/gitlab_http"
	"github.com/glpipe/glpipe/internal/infrastructure/gitrepo"
	"github.com/glpipe/glpipe/internal/presentation"
	"go.uber.org/zap"
)

func buildService(log *zap.Logger, cfg config.Config) *application.Service {
	client := gitlab_http.New(cfg.GitLab.BaseURL, cfg.GitLab.Token, cfg.GitLab.Timeout)
	resolver := gitrepo.NewResolver(gitrepo.GitRemoteReader{}, cfg.Host())
	return application.NewService(log, resolver, client, cfg.Artifacts.Dir)
}

func loadService(log *zap.Logger) *application.Service {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}
	return buildService(log, cfg)
}

// printResult renders a result to stdout and exits non-zero on
// failure, after the message has been shown.
func printResult(res application.Result) {
	fmt.Println(presentation.Result(res))
	if !res.Success {
		os.Exit(1)
	}
}
