package gitrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/glpipe/glpipe/internal/domain"
)

func TestResolveIdentity_AcceptedShapes(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"https", "https://gitlab.com/group/project"},
		{"https with .git", "https://gitlab.com/group/project.git"},
		{"scp-like ssh", "git@gitlab.com:group/project"},
		{"scp-like ssh with .git", "git@gitlab.com:group/project.git"},
		{"ssh scheme", "ssh://git@gitlab.com/group/project"},
		{"ssh scheme with .git", "ssh://git@gitlab.com/group/project.git"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ResolveIdentity(tc.url, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.Host != "gitlab.com" {
				t.Errorf("host = %q, want gitlab.com", id.Host)
			}
			if id.Namespace != "group" {
				t.Errorf("namespace = %q, want group", id.Namespace)
			}
			if id.ProjectName != "project" {
				t.Errorf("project = %q, want project", id.ProjectName)
			}
			if id.EncodedPath != "group%2Fproject" {
				t.Errorf("encoded path = %q, want group%%2Fproject", id.EncodedPath)
			}
		})
	}
}

func TestResolveIdentity_NestedGroups(t *testing.T) {
	for _, url := range []string{
		"https://gitlab.com/group/subgroup/project.git",
		"git@gitlab.com:group/subgroup/project.git",
		"ssh://git@gitlab.com/group/subgroup/project",
	} {
		id, err := ResolveIdentity(url, "")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", url, err)
		}
		if id.Namespace != "group/subgroup" {
			t.Errorf("%s: namespace = %q, want group/subgroup", url, id.Namespace)
		}
		if id.ProjectName != "project" {
			t.Errorf("%s: project = %q, want project", url, id.ProjectName)
		}
		if id.EncodedPath != "group%2Fsubgroup%2Fproject" {
			t.Errorf("%s: encoded path = %q", url, id.EncodedPath)
		}
	}
}

func TestResolveIdentity_SelfHosted(t *testing.T) {
	id, err := ResolveIdentity("git@gitlab.internal.corp:team/tool.git", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Host != "gitlab.internal.corp" {
		t.Errorf("host = %q", id.Host)
	}

	// A host without "gitlab" in it passes only as an exact match
	// against the configured instance host.
	id, err = ResolveIdentity("https://code.corp.io/team/tool", "code.corp.io")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Host != "code.corp.io" {
		t.Errorf("host = %q", id.Host)
	}
}

func TestResolveIdentity_RejectsForeignHost(t *testing.T) {
	for _, url := range []string{
		"https://github.com/owner/repo.git",
		"git@github.com:owner/repo.git",
		"ssh://git@bitbucket.org/owner/repo",
	} {
		_, err := ResolveIdentity(url, "")
		if !errors.Is(err, domain.ErrNotGitLabRemote) {
			t.Errorf("%s: err = %v, want ErrNotGitLabRemote", url, err)
		}
	}
}

func TestResolveIdentity_RejectsUnsupportedShape(t *testing.T) {
	_, err := ResolveIdentity("ftp://gitlab.com/group/project", "")
	if !errors.Is(err, domain.ErrNotGitLabRemote) {
		t.Errorf("err = %v, want ErrNotGitLabRemote", err)
	}
}

func TestResolveIdentity_RejectsShortPath(t *testing.T) {
	for _, url := range []string{
		"https://gitlab.com/project",
		"git@gitlab.com:project",
	} {
		_, err := ResolveIdentity(url, "")
		if !errors.Is(err, domain.ErrMalformedRemote) {
			t.Errorf("%s: err = %v, want ErrMalformedRemote", url, err)
		}
	}
}

func TestResolveIdentity_EmptyURL(t *testing.T) {
	_, err := ResolveIdentity("  ", "")
	if !errors.Is(err, domain.ErrNoRemote) {
		t.Errorf("err = %v, want ErrNoRemote", err)
	}
}

func TestResolver_ChainsLocateAndRemote(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(&domain.MockRemoteReader{URL: "git@gitlab.com:group/project.git"}, "")
	gotRoot, id, err := r.Resolve(context.Background(), nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRoot != root {
		t.Errorf("root = %q, want %q", gotRoot, root)
	}
	if id.FullPath() != "group/project" {
		t.Errorf("full path = %q", id.FullPath())
	}
}

func TestResolver_NoRemote(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(&domain.MockRemoteReader{Err: domain.ErrNoRemote}, "")
	_, _, err := r.Resolve(context.Background(), root)
	if !errors.Is(err, domain.ErrNoRemote) {
		t.Errorf("err = %v, want ErrNoRemote", err)
	}
}
