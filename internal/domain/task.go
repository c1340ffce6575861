package domain

import "strings"

// CheckTask is the contract every check implements. Check runs the check
// exactly once per reporting cycle, mutating the task's own verdict and
// result buffer. The returned int is a secondary success indicator
// (0 = success, non-zero = failure); the authoritative outcome is Verdict.
// Collaborator failures never escape Check - they are converted into an
// ERROR verdict plus a descriptive result line.
type CheckTask interface {
	Name() string
	Check() int
	Verdict() Verdict
	Result() string
}

// ResultLog accumulates the human-readable result lines of a check.
// Lines are append-only and newline-joined on read. Concrete checks embed
// it and append an identifying header line at construction time, so the
// result is never empty once a task exists.
type ResultLog struct {
	lines []string
}

// AddResult appends one line to the accumulated result.
func (r *ResultLog) AddResult(line string) {
	r.lines = append(r.lines, line)
}

// Result returns the accumulated result text.
func (r *ResultLog) Result() string {
	return strings.Join(r.lines, "\n")
}

// RepoHandle identifies a resolved hosted repository.
type RepoHandle struct {
	FullName string
}

// SyncPair describes one mirror relationship to verify: the branch tip of
// SrcRepo@SrcBranch must match DestRepo@DestBranch.
type SyncPair struct {
	Name       string `yaml:"name"`
	SrcRepo    string `yaml:"src_repo"`
	SrcBranch  string `yaml:"src_branch"`
	DestRepo   string `yaml:"dest_repo"`
	DestBranch string `yaml:"dest_branch"`
}
