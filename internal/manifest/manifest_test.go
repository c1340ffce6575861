package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `
sync:
  - name: bluez
    src_repo: https://git.kernel.org/pub/scm/bluetooth/bluez.git
    src_branch: master
    dest_repo: https://github.com/bluez/bluez
    dest_branch: master
  - name: bluetooth-next:for-upstream
    src_repo: https://git.kernel.org/pub/scm/linux/kernel/git/bluetooth/bluetooth-next.git
    src_branch: for-upstream
    dest_repo: https://github.com/bluez/bluetooth-next
    dest_branch: for-upstream

github_repos:
  - bluez/bluez
  - bluez/bluetooth-next
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatal(err)
	}

	if len(m.SyncPairs) != 2 {
		t.Fatalf("SyncPairs = %d, want 2", len(m.SyncPairs))
	}
	if len(m.Repos) != 2 {
		t.Fatalf("Repos = %d, want 2", len(m.Repos))
	}

	first := m.SyncPairs[0]
	if first.Name != "bluez" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.SrcBranch != "master" || first.DestBranch != "master" {
		t.Errorf("branches = %q/%q, want master/master", first.SrcBranch, first.DestBranch)
	}

	second := m.SyncPairs[1]
	if second.SrcBranch != "for-upstream" {
		t.Errorf("SrcBranch = %q, want for-upstream", second.SrcBranch)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checks.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.SyncPairs) != 2 {
		t.Errorf("SyncPairs = %d, want 2", len(m.SyncPairs))
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing name",
			"sync:\n  - src_repo: a\n    src_branch: x\n    dest_repo: b\n    dest_branch: y\n",
			"missing name",
		},
		{
			"duplicate name",
			`sync:
  - {name: a, src_repo: r1, src_branch: m, dest_repo: r2, dest_branch: m}
  - {name: a, src_repo: r3, src_branch: m, dest_repo: r4, dest_branch: m}
`,
			"duplicate name",
		},
		{
			"missing repo",
			"sync:\n  - {name: a, src_branch: m, dest_branch: m}\n",
			"required",
		},
		{
			"missing branch",
			"sync:\n  - {name: a, src_repo: r1, dest_repo: r2}\n",
			"required",
		},
		{
			"empty github repo",
			`github_repos: ["bluez/bluez", ""]`,
			"empty locator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
