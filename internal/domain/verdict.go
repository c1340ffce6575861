package domain

// Verdict classifies the outcome of a single check
type Verdict string

const (
	VerdictPending Verdict = "PENDING"
	VerdictPass    Verdict = "PASS"
	VerdictFail    Verdict = "FAIL"
	VerdictError   Verdict = "ERROR"
	VerdictSkip    Verdict = "SKIP"
	VerdictWarning Verdict = "WARNING"
)

// Reportable returns true if a task with this verdict belongs in the report.
// PASS is the only verdict that is filtered out; everything else is surfaced,
// including WARNING (informational checks settle on WARNING so their output
// is always included).
func (v Verdict) Reportable() bool {
	return v != VerdictPass
}

// Healthy returns true if this verdict does not count against the overall
// exit status. WARNING is healthy: informational checks are not gates.
func (v Verdict) Healthy() bool {
	return v == VerdictPass || v == VerdictWarning
}
