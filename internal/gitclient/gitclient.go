package gitclient

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Client fetches branch tips from remote repositories. Implemented by CLI;
// checks depend on this interface so tests can substitute a fake.
type Client interface {
	FetchBranchTip(repoURL, branch string, depth int, workdir string) (string, error)
}

// CLI is a Client backed by the git command line.
type CLI struct{}

// New creates a git CLI client.
func New() *CLI {
	return &CLI{}
}

// FetchBranchTip clones a single branch of repoURL at the given depth into
// workdir and returns the commit hash of the branch tip. A stale workdir
// from a previous run is removed first; if the removal fails the fetch is
// aborted since no clean snapshot can be obtained.
func (c *CLI) FetchBranchTip(repoURL, branch string, depth int, workdir string) (string, error) {
	if err := prepareWorkspace(workdir); err != nil {
		return "", err
	}

	args := []string{"clone", "--depth", fmt.Sprintf("%d", depth),
		"--branch", branch, "--single-branch", repoURL, workdir}
	if out, err := exec.Command("git", args...).CombinedOutput(); err != nil {
		return "", fmt.Errorf("git clone %s (%s): %s: %w", repoURL, branch, strings.TrimSpace(string(out)), err)
	}

	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = workdir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD in %s: %w", workdir, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// prepareWorkspace removes a leftover clone at path so re-runs are
// idempotent. Failure to remove is a hard error, not something to clone over.
func prepareWorkspace(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("inspecting workspace %s: %w", path, err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing stale workspace %s: %w", path, err)
	}
	return nil
}
