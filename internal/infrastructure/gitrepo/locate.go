package gitrepo

import (
	"os"
	"path/filepath"

	"github.com/glpipe/glpipe/internal/domain"
)

// Locate walks upward from start and returns the closest directory
// (start included) containing a .git entry. A .git file counts too:
// worktrees and submodules store a pointer file instead of a
// directory.
func Locate(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", domain.ErrRepoNotFound
		}
		dir = parent
	}
}
