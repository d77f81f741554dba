package logging

import "go.uber.org/zap"

// New builds the process logger. Output goes to stderr: stdout is
// reserved for tool payloads and the MCP stdio transport.
func New() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
