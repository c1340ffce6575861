// internal/hosted/github.go
package hosted

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/repowatch/repowatch/internal/domain"
)

// Client is the hosted-repository API consumed by status checks.
type Client interface {
	Resolve(repo string) (domain.RepoHandle, error)
	OpenPullRequests(h domain.RepoHandle) (int, error)
	OpenIssuesExcludingPRs(h domain.RepoHandle) (int, error)
	PostComment(h domain.RepoHandle, issueNumber int, body string) error
}

// GitHub implements Client via the gh CLI.
type GitHub struct {
	pageSize int
}

// NewGitHub creates a gh-backed GitHub client.
func NewGitHub() *GitHub {
	return &GitHub{pageSize: 100}
}

type ghRepo struct {
	FullName string `json:"full_name"`
}

// ghIssue is the slice of the issues listing we care about. GitHub returns
// pull requests in the issues listing too; entries that are really PRs carry
// a non-nil pull_request object.
type ghIssue struct {
	Number      int              `json:"number"`
	PullRequest *json.RawMessage `json:"pull_request"`
}

type ghPull struct {
	Number int `json:"number"`
}

// Resolve looks up the repository and returns its canonical handle.
func (g *GitHub) Resolve(repo string) (domain.RepoHandle, error) {
	out, err := exec.Command("gh", "api", "repos/"+repo).Output()
	if err != nil {
		return domain.RepoHandle{}, fmt.Errorf("gh api repos/%s: %w", repo, err)
	}

	var r ghRepo
	if err := json.Unmarshal(out, &r); err != nil {
		return domain.RepoHandle{}, fmt.Errorf("parse gh output: %w", err)
	}
	if r.FullName == "" {
		return domain.RepoHandle{}, fmt.Errorf("repo %s not found", repo)
	}

	return domain.RepoHandle{FullName: r.FullName}, nil
}

// OpenPullRequests returns the number of open pull requests.
func (g *GitHub) OpenPullRequests(h domain.RepoHandle) (int, error) {
	count := 0
	for page := 1; ; page++ {
		out, err := exec.Command("gh", "api",
			fmt.Sprintf("repos/%s/pulls?state=open&per_page=%d&page=%d", h.FullName, g.pageSize, page)).Output()
		if err != nil {
			return 0, fmt.Errorf("gh api pulls for %s: %w", h.FullName, err)
		}

		var pulls []ghPull
		if err := json.Unmarshal(out, &pulls); err != nil {
			return 0, fmt.Errorf("parse gh output: %w", err)
		}

		count += len(pulls)
		if len(pulls) < g.pageSize {
			return count, nil
		}
	}
}

// OpenIssuesExcludingPRs returns the number of open issues that are not
// pull requests. The listing conflates the two, so PR-flagged entries are
// filtered out before counting.
func (g *GitHub) OpenIssuesExcludingPRs(h domain.RepoHandle) (int, error) {
	count := 0
	for page := 1; ; page++ {
		out, err := exec.Command("gh", "api",
			fmt.Sprintf("repos/%s/issues?state=open&per_page=%d&page=%d", h.FullName, g.pageSize, page)).Output()
		if err != nil {
			return 0, fmt.Errorf("gh api issues for %s: %w", h.FullName, err)
		}

		var issues []ghIssue
		if err := json.Unmarshal(out, &issues); err != nil {
			return 0, fmt.Errorf("parse gh output: %w", err)
		}

		count += countIssuesOnly(issues)
		if len(issues) < g.pageSize {
			return count, nil
		}
	}
}

func countIssuesOnly(issues []ghIssue) int {
	n := 0
	for _, issue := range issues {
		if issue.PullRequest == nil {
			n++
		}
	}
	return n
}

// PostComment posts a comment on an issue.
func (g *GitHub) PostComment(h domain.RepoHandle, issueNumber int, body string) error {
	cmd := exec.Command("gh", "issue", "comment", fmt.Sprintf("%d", issueNumber),
		"--repo", h.FullName, "--body", body)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gh issue comment: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}
