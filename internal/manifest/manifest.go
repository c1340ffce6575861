// Package manifest loads the check manifest: which mirror pairs to verify
// and which hosted repositories to poll for status.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/repowatch/repowatch/internal/domain"
)

// Manifest is the static check configuration for one deployment.
type Manifest struct {
	SyncPairs []domain.SyncPair `yaml:"sync"`
	Repos     []string          `yaml:"github_repos"`
}

// Load reads and validates a YAML manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals and validates manifest content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every entry is complete enough to run.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.SyncPairs))
	for i, p := range m.SyncPairs {
		if p.Name == "" {
			return fmt.Errorf("sync pair #%d: missing name", i+1)
		}
		if seen[p.Name] {
			return fmt.Errorf("sync pair %q: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if p.SrcRepo == "" || p.DestRepo == "" {
			return fmt.Errorf("sync pair %q: src_repo and dest_repo are required", p.Name)
		}
		if p.SrcBranch == "" || p.DestBranch == "" {
			return fmt.Errorf("sync pair %q: src_branch and dest_branch are required", p.Name)
		}
	}
	for i, repo := range m.Repos {
		if repo == "" {
			return fmt.Errorf("github repo #%d: empty locator", i+1)
		}
	}
	return nil
}
