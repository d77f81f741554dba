package gitlab_http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/glpipe/glpipe/internal/domain"
)

// Client talks to the GitLab v4 REST API. Every call is exactly one
// attempt: a failed call is a failed call, and the use cases decide
// what to tolerate.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

var _ domain.CIClient = (*Client)(nil)

func New(baseURL, token string, timeout time.Duration) *Client {
	tr := &http.Transport{
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: trimSlash(baseURL),
		token:   token,
		hc:      &http.Client{Transport: tr, Timeout: timeout},
	}
}

// get performs one authenticated GET and buffers the full body. The
// token check runs before any network I/O.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.token == "" {
		return nil, domain.ErrMissingToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decoding gitlab response for %s: %w", path, err)
	}
	return nil
}

func (c *Client) ListPipelines(ctx context.Context, project domain.ProjectIdentity, opts domain.ListOptions) ([]domain.Pipeline, error) {
	q := url.Values{}
	if opts.OrderBy != "" {
		q.Set("order_by", opts.OrderBy)
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.PerPage > 0 {
		q.Set("per_page", fmt.Sprintf("%d", opts.PerPage))
	}

	path := fmt.Sprintf("/api/v4/projects/%s/pipelines", project.EncodedPath)
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var dtos []pipelineDTO
	if err := c.getJSON(ctx, path, &dtos); err != nil {
		return nil, err
	}

	pipelines := make([]domain.Pipeline, len(dtos))
	for i, d := range dtos {
		pipelines[i] = d.toPipeline()
	}
	return pipelines, nil
}

func (c *Client) GetPipeline(ctx context.Context, project domain.ProjectIdentity, pipelineID int64) (domain.Pipeline, error) {
	var dto pipelineDTO
	path := fmt.Sprintf("/api/v4/projects/%s/pipelines/%d", project.EncodedPath, pipelineID)
	if err := c.getJSON(ctx, path, &dto); err != nil {
		return domain.Pipeline{}, err
	}
	return dto.toPipeline(), nil
}

func (c *Client) ListPipelineJobs(ctx context.Context, project domain.ProjectIdentity, pipelineID int64) ([]domain.Job, error) {
	dtos, err := c.pipelineJobs(ctx, project, pipelineID)
	if err != nil {
		return nil, err
	}

	jobs := make([]domain.Job, len(dtos))
	for i, d := range dtos {
		jobs[i] = d.toJob()
	}
	return jobs, nil
}

// ListPipelineArtifacts collects artifact metadata across all jobs of
// a pipeline. GitLab exposes no dedicated endpoint for this; the job
// listing carries the per-job artifact entries.
func (c *Client) ListPipelineArtifacts(ctx context.Context, project domain.ProjectIdentity, pipelineID int64) ([]domain.Artifact, error) {
	dtos, err := c.pipelineJobs(ctx, project, pipelineID)
	if err != nil {
		return nil, err
	}

	var artifacts []domain.Artifact
	for _, d := range dtos {
		artifacts = append(artifacts, d.toArtifacts()...)
	}
	return artifacts, nil
}

func (c *Client) pipelineJobs(ctx context.Context, project domain.ProjectIdentity, pipelineID int64) ([]jobDTO, error) {
	var dtos []jobDTO
	path := fmt.Sprintf("/api/v4/projects/%s/pipelines/%d/jobs", project.EncodedPath, pipelineID)
	if err := c.getJSON(ctx, path, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (c *Client) GetJob(ctx context.Context, project domain.ProjectIdentity, jobID int64) (domain.Job, error) {
	dto, err := c.job(ctx, project, jobID)
	if err != nil {
		return domain.Job{}, err
	}
	return dto.toJob(), nil
}

func (c *Client) ListJobArtifacts(ctx context.Context, project domain.ProjectIdentity, jobID int64) ([]domain.Artifact, error) {
	dto, err := c.job(ctx, project, jobID)
	if err != nil {
		return nil, err
	}
	return dto.toArtifacts(), nil
}

func (c *Client) job(ctx context.Context, project domain.ProjectIdentity, jobID int64) (jobDTO, error) {
	var dto jobDTO
	path := fmt.Sprintf("/api/v4/projects/%s/jobs/%d", project.EncodedPath, jobID)
	if err := c.getJSON(ctx, path, &dto); err != nil {
		return jobDTO{}, err
	}
	return dto, nil
}

// GetJobTrace returns the raw job log as plain text.
func (c *Client) GetJobTrace(ctx context.Context, project domain.ProjectIdentity, jobID int64) (string, error) {
	path := fmt.Sprintf("/api/v4/projects/%s/jobs/%d/trace", project.EncodedPath, jobID)
	body, err := c.get(ctx, path)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadJobArtifacts returns the artifact archive as one buffered
// binary payload.
func (c *Client) DownloadJobArtifacts(ctx context.Context, project domain.ProjectIdentity, jobID int64) ([]byte, error) {
	path := fmt.Sprintf("/api/v4/projects/%s/jobs/%d/artifacts", project.EncodedPath, jobID)
	return c.get(ctx, path)
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
