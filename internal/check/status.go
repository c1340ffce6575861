package check

import (
	"fmt"
	"log"

	"github.com/repowatch/repowatch/internal/domain"
	"github.com/repowatch/repowatch/internal/hosted"
)

// StatusCheck reports the open pull request and issue counts of one hosted
// repository. It is informational: a successful check settles on WARNING so
// the counts always appear in the report, never on PASS.
type StatusCheck struct {
	domain.ResultLog

	repo    string
	client  hosted.Client
	verdict domain.Verdict
}

// NewStatusCheck creates a status check for one hosted repository locator
// like "bluez/bluez".
func NewStatusCheck(client hosted.Client, repo string) *StatusCheck {
	c := &StatusCheck{
		repo:    repo,
		client:  client,
		verdict: domain.VerdictWarning,
	}
	c.AddResult("Github Repo: " + repo)
	return c
}

// Name returns the repository locator.
func (c *StatusCheck) Name() string { return c.repo }

// Verdict returns the outcome of the last Check.
func (c *StatusCheck) Verdict() domain.Verdict { return c.verdict }

// Check resolves the repository and records its open PR and issue counts.
// PR-flagged entries in the issues listing are excluded from the issue count.
func (c *StatusCheck) Check() int {
	handle, err := c.client.Resolve(c.repo)
	if err != nil {
		log.Printf("status %s: failed to initialize repo: %v", c.repo, err)
		c.AddResult("   Result: Fail (Failed to init github repo)")
		c.verdict = domain.VerdictError
		return -1
	}

	prs, err := c.client.OpenPullRequests(handle)
	if err != nil {
		log.Printf("status %s: pull request query failed: %v", c.repo, err)
		c.AddResult("   Result: Fail (Failed to query pull requests)")
		c.verdict = domain.VerdictError
		return -1
	}
	c.AddResult(fmt.Sprintf("   PRs:    %d", prs))

	issues, err := c.client.OpenIssuesExcludingPRs(handle)
	if err != nil {
		log.Printf("status %s: issue query failed: %v", c.repo, err)
		c.AddResult("   Result: Fail (Failed to query issues)")
		c.verdict = domain.VerdictError
		return -1
	}
	c.AddResult(fmt.Sprintf("   Issues: %d", issues))

	return 0
}
