package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/glpipe/glpipe/internal/application"
	"github.com/glpipe/glpipe/internal/presentation"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerTools exposes the eight operations as MCP tools. A missing
// required argument yields an error tool result, never a protocol
// failure.
func registerTools(s *server.MCPServer, holder *serviceHolder) {
	s.AddTool(mcp.NewTool("get_repo_url",
		mcp.WithDescription("Resolve the GitLab project from the repository's origin remote and return its URL"),
		mcp.WithString("project_path", mcp.Required(), mcp.Description("Path inside the local git repository")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, errRes := requirePath(req)
		if errRes != nil {
			return errRes, nil
		}
		return render(holder.get().RepoURL(ctx, path)), nil
	})

	s.AddTool(mcp.NewTool("get_latest_pipeline",
		mcp.WithDescription("Get the most recently updated CI pipeline for the repository"),
		mcp.WithString("project_path", mcp.Required(), mcp.Description("Path inside the local git repository")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, errRes := requirePath(req)
		if errRes != nil {
			return errRes, nil
		}
		return render(holder.get().LatestPipeline(ctx, path)), nil
	})

	s.AddTool(mcp.NewTool("get_pipeline_details",
		mcp.WithDescription("Get a pipeline with its jobs, job traces and artifact metadata"),
		mcp.WithString("project_path", mcp.Required(), mcp.Description("Path inside the local git repository")),
		mcp.WithString("pipeline_id", mcp.Description("Pipeline id; omit for the latest pipeline")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, errRes := requirePath(req)
		if errRes != nil {
			return errRes, nil
		}
		id, errRes := optionalID(req, "pipeline_id")
		if errRes != nil {
			return errRes, nil
		}
		return render(holder.get().PipelineDetails(ctx, path, id)), nil
	})

	s.AddTool(mcp.NewTool("get_job_details",
		mcp.WithDescription("Get a single CI job by id"),
		mcp.WithString("project_path", mcp.Required(), mcp.Description("Path inside the local git repository")),
		mcp.WithString("job_id", mcp.Required(), mcp.Description("Job id")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, id, errRes := requirePathAndJob(req)
		if errRes != nil {
			return errRes, nil
		}
		return render(holder.get().JobDetails(ctx, path, id)), nil
	})

	s.AddTool(mcp.NewTool("get_job_logs",
		mcp.WithDescription("Get the raw trace log of a CI job"),
		mcp.WithString("project_path", mcp.Required(), mcp.Description("Path inside the local git repository")),
		mcp.WithString("job_id", mcp.Required(), mcp.Description("Job id")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, id, errRes := requirePathAndJob(req)
		if errRes != nil {
			return errRes, nil
		}
		return render(holder.get().JobLogs(ctx, path, id)), nil
	})

	s.AddTool(mcp.NewTool("get_job_artifacts",
		mcp.WithDescription("List artifact metadata of a CI job"),
		mcp.WithString("project_path", mcp.Required(), mcp.Description("Path inside the local git repository")),
		mcp.WithString("job_id", mcp.Required(), mcp.Description("Job id")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, id, errRes := requirePathAndJob(req)
		if errRes != nil {
			return errRes, nil
		}
		return render(holder.get().JobArtifacts(ctx, path, id)), nil
	})

	s.AddTool(mcp.NewTool("download_job_artifacts",
		mcp.WithDescription("Download the artifact archive of a CI job to local storage"),
		mcp.WithString("project_path", mcp.Required(), mcp.Description("Path inside the local git repository")),
		mcp.WithString("job_id", mcp.Required(), mcp.Description("Job id")),
		mcp.WithString("download_path", mcp.Description("Target directory; omit for the repository's staging area")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, id, errRes := requirePathAndJob(req)
		if errRes != nil {
			return errRes, nil
		}
		return render(holder.get().DownloadJobArtifacts(ctx, path, id, req.GetString("download_path", ""))), nil
	})

	s.AddTool(mcp.NewTool("download_pipeline_artifacts",
		mcp.WithDescription("Download artifact archives for every job of a pipeline"),
		mcp.WithString("project_path", mcp.Required(), mcp.Description("Path inside the local git repository")),
		mcp.WithString("pipeline_id", mcp.Description("Pipeline id; omit for the latest pipeline")),
		mcp.WithString("download_path", mcp.Description("Target directory; omit for the repository's staging area")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, errRes := requirePath(req)
		if errRes != nil {
			return errRes, nil
		}
		id, errRes := optionalID(req, "pipeline_id")
		if errRes != nil {
			return errRes, nil
		}
		return render(holder.get().DownloadPipelineArtifacts(ctx, path, id, req.GetString("download_path", ""))), nil
	})
}

func render(res application.Result) *mcp.CallToolResult {
	text := presentation.Result(res)
	if !res.Success {
		return mcp.NewToolResultError(text)
	}
	return mcp.NewToolResultText(text)
}

func requirePath(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	v, ok := req.GetArguments()["project_path"].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", mcp.NewToolResultError("missing required argument: project_path")
	}
	return v, nil
}

func requirePathAndJob(req mcp.CallToolRequest) (string, int64, *mcp.CallToolResult) {
	path, errRes := requirePath(req)
	if errRes != nil {
		return "", 0, errRes
	}
	id, errRes := optionalID(req, "job_id")
	if errRes != nil {
		return "", 0, errRes
	}
	if id == 0 {
		return "", 0, mcp.NewToolResultError("missing required argument: job_id")
	}
	return path, id, nil
}

// optionalID tolerates both string and number arguments: MCP clients
// send ids either way.
func optionalID(req mcp.CallToolRequest, name string) (int64, *mcp.CallToolResult) {
	raw, ok := req.GetArguments()[name]
	if !ok || raw == nil {
		return 0, nil
	}

	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, nil
		}
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, mcp.NewToolResultError(fmt.Sprintf("argument %s must be a numeric id, got %q", name, v))
		}
		return id, nil
	case float64:
		return int64(v), nil
	default:
		return 0, mcp.NewToolResultError(fmt.Sprintf("argument %s must be a numeric id", name))
	}
}
