package report

import (
	"strings"
	"testing"
	"time"

	"github.com/repowatch/repowatch/internal/domain"
)

// stubTask is a pre-baked check result for aggregation tests.
type stubTask struct {
	domain.ResultLog
	name    string
	verdict domain.Verdict
}

func newStub(name string, verdict domain.Verdict, lines ...string) *stubTask {
	s := &stubTask{name: name, verdict: verdict}
	for _, l := range lines {
		s.AddResult(l)
	}
	return s
}

func (s *stubTask) Name() string            { return s.name }
func (s *stubTask) Check() int              { return 0 }
func (s *stubTask) Verdict() domain.Verdict { return s.verdict }

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil); got != "" {
		t.Errorf("Aggregate(nil) = %q, want empty", got)
	}
	if got := Aggregate([]domain.CheckTask{}); got != "" {
		t.Errorf("Aggregate([]) = %q, want empty", got)
	}
}

func TestAggregate_FiltersPass(t *testing.T) {
	tasks := []domain.CheckTask{
		newStub("a", domain.VerdictPass, "Repo Sync: a", "   Result: Pass"),
		newStub("b", domain.VerdictFail, "Repo Sync: b", "   Result: Fail (SHA mismatch)"),
		newStub("c", domain.VerdictError, "Repo Sync: c", "   Results: Failed (Clone src repo failed)"),
	}

	got := Aggregate(tasks)
	if strings.Contains(got, "Repo Sync: a") {
		t.Errorf("PASS task must be omitted:\n%s", got)
	}
	for _, want := range []string{"Repo Sync: b", "Repo Sync: c"} {
		if !strings.Contains(got, want) {
			t.Errorf("aggregate missing %q:\n%s", want, got)
		}
	}
}

func TestAggregate_OrderAndSeparation(t *testing.T) {
	tasks := []domain.CheckTask{
		newStub("b", domain.VerdictFail, "first"),
		newStub("c", domain.VerdictWarning, "second"),
		newStub("d", domain.VerdictError, "third"),
	}

	got := Aggregate(tasks)
	want := "first\n\nsecond\n\nthird"
	if got != want {
		t.Errorf("Aggregate = %q, want %q (input order, one blank line apart)", got, want)
	}
}

func TestAggregate_WarningAlwaysIncluded(t *testing.T) {
	tasks := []domain.CheckTask{
		newStub("bluez/bluez", domain.VerdictWarning, "Github Repo: bluez/bluez", "   PRs:    3", "   Issues: 3"),
	}

	got := Aggregate(tasks)
	if !strings.Contains(got, "PRs:    3") {
		t.Errorf("WARNING task output must always be surfaced:\n%s", got)
	}
}

func TestCompose_AllSynced(t *testing.T) {
	// Scenario: both mirrors at the same tip - the sync section is empty.
	syncTasks := []domain.CheckTask{
		newStub("bluez", domain.VerdictPass, "Repo Sync: bluez", "   SRC HEAD:  abc123", "   DEST HEAD: abc123", "   Result: Pass"),
	}
	statusTasks := []domain.CheckTask{
		newStub("bluez/bluez", domain.VerdictWarning, "Github Repo: bluez/bluez", "   PRs:    3", "   Issues: 3"),
	}

	body := Compose(syncTasks, statusTasks)
	if strings.Contains(body, "abc123") {
		t.Errorf("healthy sync output leaked into report:\n%s", body)
	}
	for _, want := range []string{syncSectionTitle, statusSectionTitle, "PRs:    3", "Hi team,", "Regards,"} {
		if !strings.Contains(body, want) {
			t.Errorf("report missing %q:\n%s", want, body)
		}
	}
}

func TestCompose_Mismatch(t *testing.T) {
	syncTasks := []domain.CheckTask{
		newStub("bluez", domain.VerdictFail,
			"Repo Sync: bluez",
			"   SRC HEAD:  abc123",
			"   DEST HEAD: def456",
			"   Result: Fail (SHA mismatch)"),
	}

	body := Compose(syncTasks, nil)
	for _, want := range []string{"abc123", "def456", "Result: Fail (SHA mismatch)"} {
		if !strings.Contains(body, want) {
			t.Errorf("report missing %q:\n%s", want, body)
		}
	}
}

func TestSubject(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)

	if got := Subject("[Internal]", now); got != "[Internal] Repository Status - 2026-08-26" {
		t.Errorf("Subject = %q", got)
	}
	if got := Subject("", now); got != "[repowatch] Repository Status - 2026-08-26" {
		t.Errorf("Subject with default prefix = %q", got)
	}
}
