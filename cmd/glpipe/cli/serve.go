package cli

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/glpipe/glpipe/internal/application"
	"github.com/glpipe/glpipe/internal/infrastructure/config"
	"github.com/glpipe/glpipe/internal/infrastructure/logging"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serviceHolder lets a running MCP server pick up config changes:
// tool calls read the current service, the watcher swaps it.
type serviceHolder struct {
	mu  sync.RWMutex
	svc *application.Service
}

func (h *serviceHolder) get() *application.Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc
}

func (h *serviceHolder) set(svc *application.Service) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.svc = svc
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the GitLab CI tools over MCP stdio",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.New()
		defer func() { _ = log.Sync() }()

		cfg, err := config.Load(cfgPath)
		if err != nil {
			log.Fatal("config", zap.Error(err))
		}

		holder := &serviceHolder{svc: buildService(log, cfg)}
		watchAndReload(cfgPath, log, holder)

		s := server.NewMCPServer("glpipe", version, server.WithToolCapabilities(false))
		registerTools(s, holder)

		log.Info("serving tools over stdio",
			zap.String("version", version),
			zap.String("gitlab", cfg.GitLab.BaseURL),
		)

		if err := server.ServeStdio(s); err != nil {
			log.Fatal("serve", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func watchAndReload(cfgPath string, log *zap.Logger, holder *serviceHolder) {
	if cfgPath == "" {
		return
	}

	dir := filepath.Dir(cfgPath)
	base := filepath.Base(cfgPath)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("fsnotify init failed", zap.Error(err))
		return
	}

	go func() {
		defer func() { _ = w.Close() }()

		var timer *time.Timer
		fire := func() {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				log.Warn("config reload failed", zap.Error(err))
				return
			}
			holder.set(buildService(log, cfg))
			log.Info("config reloaded", zap.String("gitlab", cfg.GitLab.BaseURL))
		}

		startTimer := func() {
			if timer == nil {
				timer = time.AfterFunc(300*time.Millisecond, fire)
			} else {
				timer.Reset(300 * time.Millisecond)
			}
		}

		if err := w.Add(dir); err != nil {
			log.Warn("fsnotify add dir failed", zap.String("dir", dir), zap.Error(err))
			return
		}

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					startTimer()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("fsnotify error", zap.Error(err))
			}
		}
	}()
}
