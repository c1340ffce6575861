// Package runner drives one reporting cycle: it builds the configured
// checks, runs them strictly in order, and aggregates the outcome.
package runner

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/repowatch/repowatch/internal/check"
	"github.com/repowatch/repowatch/internal/domain"
	"github.com/repowatch/repowatch/internal/gitclient"
	"github.com/repowatch/repowatch/internal/hosted"
	"github.com/repowatch/repowatch/internal/manifest"
	"github.com/repowatch/repowatch/internal/report"
)

// Runner builds and executes check tasks against the collaborator clients.
type Runner struct {
	git     gitclient.Client
	hosted  hosted.Client
	baseDir string
	verbose bool
}

// Outcome is the result of one full cycle.
type Outcome struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	SyncTasks   []domain.CheckTask
	StatusTasks []domain.CheckTask
	Report      string
	ExitCode    int
}

// New creates a Runner. baseDir is where sync checks place their ephemeral
// clone workspaces.
func New(git gitclient.Client, hostedClient hosted.Client, baseDir string, verbose bool) *Runner {
	return &Runner{git: git, hosted: hostedClient, baseDir: baseDir, verbose: verbose}
}

// Run executes every configured check sequentially, in manifest order.
// Each task is fully isolated: a failing task never aborts the rest.
func (r *Runner) Run(m *manifest.Manifest) *Outcome {
	out := &Outcome{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}

	for _, pair := range m.SyncPairs {
		if r.verbose {
			log.Printf("sync check %s: %s (%s) -> %s (%s)",
				pair.Name, pair.SrcRepo, pair.SrcBranch, pair.DestRepo, pair.DestBranch)
		}
		task := check.NewSyncCheck(r.git, r.baseDir, pair)
		task.Check()
		out.SyncTasks = append(out.SyncTasks, task)
	}

	for _, repo := range m.Repos {
		if r.verbose {
			log.Printf("status check %s", repo)
		}
		task := check.NewStatusCheck(r.hosted, repo)
		task.Check()
		out.StatusTasks = append(out.StatusTasks, task)
	}

	out.Report = report.Compose(out.SyncTasks, out.StatusTasks)
	out.ExitCode = exitCode(out.SyncTasks, out.StatusTasks)
	out.FinishedAt = time.Now()
	return out
}

// Tally returns verdict counts over every task of the outcome.
func (o *Outcome) Tally() map[domain.Verdict]int {
	counts := make(map[domain.Verdict]int)
	for _, t := range o.SyncTasks {
		counts[t.Verdict()]++
	}
	for _, t := range o.StatusTasks {
		counts[t.Verdict()]++
	}
	return counts
}

// exitCode is 0 only when every task is PASS or WARNING.
func exitCode(lists ...[]domain.CheckTask) int {
	for _, tasks := range lists {
		for _, t := range tasks {
			if !t.Verdict().Healthy() {
				return 1
			}
		}
	}
	return 0
}
