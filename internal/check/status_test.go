package check

import (
	"errors"
	"strings"
	"testing"

	"github.com/repowatch/repowatch/internal/domain"
)

// fakeHosted simulates the hosted-repo API. The issues listing conflates
// issues and pull requests; prFlagged marks which entries are really PRs.
type fakeHosted struct {
	resolveErr error
	prs        int
	prsErr     error
	issueList  []bool // one entry per open "issue", true = PR-flagged
	issuesErr  error
	comments   []string
}

func (f *fakeHosted) Resolve(repo string) (domain.RepoHandle, error) {
	if f.resolveErr != nil {
		return domain.RepoHandle{}, f.resolveErr
	}
	return domain.RepoHandle{FullName: repo}, nil
}

func (f *fakeHosted) OpenPullRequests(h domain.RepoHandle) (int, error) {
	return f.prs, f.prsErr
}

func (f *fakeHosted) OpenIssuesExcludingPRs(h domain.RepoHandle) (int, error) {
	if f.issuesErr != nil {
		return 0, f.issuesErr
	}
	n := 0
	for _, isPR := range f.issueList {
		if !isPR {
			n++
		}
	}
	return n, nil
}

func (f *fakeHosted) PostComment(h domain.RepoHandle, issueNumber int, body string) error {
	f.comments = append(f.comments, body)
	return nil
}

func TestStatusCheck_Counts(t *testing.T) {
	// 3 open PRs; 5 entries in the issues listing, 2 of them PR-flagged.
	client := &fakeHosted{
		prs:       3,
		issueList: []bool{false, true, false, true, false},
	}

	c := NewStatusCheck(client, "bluez/bluez")
	if rc := c.Check(); rc != 0 {
		t.Errorf("Check() = %d, want 0", rc)
	}
	if c.Verdict() != domain.VerdictWarning {
		t.Errorf("verdict = %s, want WARNING (informational)", c.Verdict())
	}

	result := c.Result()
	if !strings.Contains(result, "PRs:    3") {
		t.Errorf("result missing PR count:\n%s", result)
	}
	if !strings.Contains(result, "Issues: 3") {
		t.Errorf("PR-flagged entries must not be counted as issues:\n%s", result)
	}
	if strings.Contains(result, "Issues: 5") {
		t.Errorf("raw listing length leaked into issue count:\n%s", result)
	}
}

func TestStatusCheck_ResolveFails(t *testing.T) {
	client := &fakeHosted{resolveErr: errors.New("404 not found")}

	c := NewStatusCheck(client, "bluez/missing")
	if rc := c.Check(); rc == 0 {
		t.Error("Check() should signal failure")
	}
	if c.Verdict() != domain.VerdictError {
		t.Errorf("verdict = %s, want ERROR", c.Verdict())
	}
	if !strings.Contains(c.Result(), "Failed to init github repo") {
		t.Errorf("result missing init failure:\n%s", c.Result())
	}
}

func TestStatusCheck_QueryFails(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeHosted
		want   string
	}{
		{"pull requests", &fakeHosted{prsErr: errors.New("rate limited")}, "Failed to query pull requests"},
		{"issues", &fakeHosted{issuesErr: errors.New("rate limited")}, "Failed to query issues"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewStatusCheck(tt.client, "bluez/bluez")
			c.Check()
			if c.Verdict() != domain.VerdictError {
				t.Errorf("verdict = %s, want ERROR", c.Verdict())
			}
			if !strings.Contains(c.Result(), tt.want) {
				t.Errorf("result missing %q:\n%s", tt.want, c.Result())
			}
		})
	}
}

func TestStatusCheck_HeaderAlwaysPresent(t *testing.T) {
	c := NewStatusCheck(&fakeHosted{}, "bluez/bluez")
	if !strings.Contains(c.Result(), "Github Repo: bluez/bluez") {
		t.Errorf("result missing identifying header:\n%s", c.Result())
	}
}
