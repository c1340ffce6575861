package notify

import "github.com/repowatch/repowatch/internal/domain"

// Report is a composed status report ready for delivery.
type Report struct {
	Subject string
	Body    string
	// Verdict tallies for sinks that summarize instead of quoting the body.
	Passed   int
	Failed   int
	Errors   int
	Warnings int
}

// Healthy returns true when no task failed or errored.
func (r Report) Healthy() bool {
	return r.Failed == 0 && r.Errors == 0
}

// TallyFrom fills the verdict counters from a tally map.
func (r *Report) TallyFrom(tally map[domain.Verdict]int) {
	r.Passed = tally[domain.VerdictPass]
	r.Failed = tally[domain.VerdictFail]
	r.Errors = tally[domain.VerdictError]
	r.Warnings = tally[domain.VerdictWarning]
}

// Notifier is the interface for delivering a report
type Notifier interface {
	Send(r Report) error
}

// MultiNotifier sends to multiple notifiers
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier that sends to all provided notifiers
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Send sends the report to all notifiers
func (m *MultiNotifier) Send(r Report) error {
	var lastErr error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(r); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// NoopNotifier does nothing (for testing or disabled notifications)
type NoopNotifier struct{}

func (NoopNotifier) Send(r Report) error { return nil }
