package gitrepo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/glpipe/glpipe/internal/domain"
)

// ResolveIdentity derives a project identity from a remote URL. Three
// shapes are accepted:
//
//	https://gitlab.example.com/group/project(.git)
//	git@gitlab.example.com:group/project(.git)
//	ssh://git@gitlab.example.com/group/project(.git)
//
// The host must contain "gitlab" or equal extraHost (the configured
// base URL host, for self-hosted instances under another name).
// Pure string/URL logic, no filesystem or network access.
func ResolveIdentity(rawURL, extraHost string) (domain.ProjectIdentity, error) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return domain.ProjectIdentity{}, domain.ErrNoRemote
	}

	normalized, err := normalize(strings.TrimSuffix(raw, ".git"))
	if err != nil {
		return domain.ProjectIdentity{}, fmt.Errorf("%w: %s", err, raw)
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return domain.ProjectIdentity{}, fmt.Errorf("%w: %s", domain.ErrMalformedRemote, raw)
	}

	host := u.Hostname()
	if !strings.Contains(host, "gitlab") && (extraHost == "" || host != extraHost) {
		return domain.ProjectIdentity{}, fmt.Errorf("%w: %s", domain.ErrNotGitLabRemote, host)
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return domain.ProjectIdentity{}, fmt.Errorf("%w: want namespace/project, got %q", domain.ErrMalformedRemote, u.Path)
	}

	namespace := strings.Join(segments[:len(segments)-1], "/")
	project := segments[len(segments)-1]
	return domain.NewProjectIdentity(host, namespace, project), nil
}

// normalize rewrites the SSH shapes into an equivalent https URL so a
// single parse path handles all three.
func normalize(s string) (string, error) {
	switch {
	case strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://"):
		return s, nil
	case strings.HasPrefix(s, "ssh://git@"):
		return "https://" + strings.TrimPrefix(s, "ssh://git@"), nil
	case strings.HasPrefix(s, "git@"):
		host, path, ok := strings.Cut(strings.TrimPrefix(s, "git@"), ":")
		if !ok || host == "" {
			return "", domain.ErrMalformedRemote
		}
		return "https://" + host + "/" + path, nil
	default:
		return "", domain.ErrNotGitLabRemote
	}
}

// Resolver chains Locate, the remote read and ResolveIdentity into the
// domain.ProjectResolver port.
type Resolver struct {
	remotes domain.RemoteReader
	host    string
}

func NewResolver(remotes domain.RemoteReader, host string) *Resolver {
	return &Resolver{remotes: remotes, host: host}
}

func (r *Resolver) Resolve(ctx context.Context, startPath string) (string, domain.ProjectIdentity, error) {
	root, err := Locate(startPath)
	if err != nil {
		return "", domain.ProjectIdentity{}, err
	}

	raw, err := r.remotes.RemoteURL(ctx, root, "origin")
	if err != nil {
		return "", domain.ProjectIdentity{}, err
	}

	id, err := ResolveIdentity(raw, r.host)
	if err != nil {
		return "", domain.ProjectIdentity{}, err
	}
	return root, id, nil
}
