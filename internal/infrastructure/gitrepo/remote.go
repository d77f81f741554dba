package gitrepo

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/glpipe/glpipe/internal/domain"
)

// GitRemoteReader shells out to git for the single external read the
// resolver needs: the configured URL of a named remote.
type GitRemoteReader struct{}

func (GitRemoteReader) RemoteURL(ctx context.Context, dir, remote string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "config", "--get", "remote."+remote+".url")
	out, err := cmd.Output()
	if err != nil {
		// git config --get exits 1 when the key is unset.
		if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
			return "", domain.ErrNoRemote
		}
		return "", fmt.Errorf("reading remote %q: %w", remote, err)
	}

	url := strings.TrimSpace(string(out))
	if url == "" {
		return "", domain.ErrNoRemote
	}
	return url, nil
}
