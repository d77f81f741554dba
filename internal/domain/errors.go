package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the locate/resolve/authenticate path. Callers
// check them with errors.Is.
var (
	ErrRepoNotFound    = errors.New("no git repository found")
	ErrNoRemote        = errors.New(`remote "origin" is not configured`)
	ErrNotGitLabRemote = errors.New("remote does not point at a gitlab host")
	ErrMalformedRemote = errors.New("malformed remote url")
	ErrMissingToken    = errors.New("GITLAB_TOKEN is not set")
)

// APIError is a non-2xx response from the GitLab API. Body carries the
// upstream response verbatim for diagnostics.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gitlab api: status %d: %s", e.Status, e.Body)
}

// TransportError is a network-level failure (DNS, timeout, broken
// connection) before any HTTP status was received.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string { return "gitlab request failed: " + e.Cause.Error() }

func (e *TransportError) Unwrap() error { return e.Cause }
