package check

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/repowatch/repowatch/internal/domain"
	"github.com/repowatch/repowatch/internal/gitclient"
)

// cloneDepth is all we need: only the branch tip is compared.
const cloneDepth = 1

// SyncCheck verifies that a mirrored repository is in sync with its
// upstream by fetching both branch tips and comparing their commit hashes.
type SyncCheck struct {
	domain.ResultLog

	name       string
	srcRepo    string
	srcBranch  string
	destRepo   string
	destBranch string
	workdir    string

	git     gitclient.Client
	verdict domain.Verdict
}

// NewSyncCheck creates a sync check for one mirror pair. Workspaces are
// derived from the pair name under baseDir.
func NewSyncCheck(git gitclient.Client, baseDir string, pair domain.SyncPair) *SyncCheck {
	c := &SyncCheck{
		name:       pair.Name,
		srcRepo:    pair.SrcRepo,
		srcBranch:  pair.SrcBranch,
		destRepo:   pair.DestRepo,
		destBranch: pair.DestBranch,
		workdir:    filepath.Join(baseDir, pair.Name),
		git:        git,
		verdict:    domain.VerdictPending,
	}
	c.AddResult("Repo Sync: " + c.name)
	return c
}

// Name returns the mirror pair name.
func (c *SyncCheck) Name() string { return c.name }

// Verdict returns the outcome of the last Check.
func (c *SyncCheck) Verdict() domain.Verdict { return c.verdict }

// Check fetches fresh shallow snapshots of both sides and compares their
// branch tips. The destination is never fetched when the source fetch fails.
func (c *SyncCheck) Check() int {
	srcSHA, err := c.git.FetchBranchTip(c.srcRepo, c.srcBranch, cloneDepth, c.workdir+"_src")
	if err != nil {
		log.Printf("sync %s: unable to clone src repo %s: %v", c.name, c.srcRepo, err)
		c.AddResult("   Results: Failed (Clone src repo failed)")
		c.verdict = domain.VerdictError
		return -1
	}

	destSHA, err := c.git.FetchBranchTip(c.destRepo, c.destBranch, cloneDepth, c.workdir+"_dest")
	if err != nil {
		log.Printf("sync %s: unable to clone dest repo %s: %v", c.name, c.destRepo, err)
		c.AddResult("   Results: Failed (Clone dest repo failed)")
		c.verdict = domain.VerdictError
		return -1
	}

	// Both tips go into the result regardless of the outcome, for audit.
	c.AddResult(fmt.Sprintf("   SRC HEAD:  %s", srcSHA))
	c.AddResult(fmt.Sprintf("   DEST HEAD: %s", destSHA))

	if srcSHA != destSHA {
		c.AddResult("   Result: Fail (SHA mismatch)")
		c.verdict = domain.VerdictFail
		return -1
	}

	c.AddResult("   Result: Pass")
	c.verdict = domain.VerdictPass
	return 0
}
