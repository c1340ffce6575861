package domain

import "testing"

func TestResultLog_Append(t *testing.T) {
	var r ResultLog

	r.AddResult("Repo Sync: bluez")
	if got := r.Result(); got != "Repo Sync: bluez" {
		t.Errorf("Result() = %q, want header only", got)
	}

	r.AddResult("   Result: Pass")
	want := "Repo Sync: bluez\n   Result: Pass"
	if got := r.Result(); got != want {
		t.Errorf("Result() = %q, want %q", got, want)
	}
}

func TestVerdict_Reportable(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    bool
	}{
		{VerdictPass, false},
		{VerdictFail, true},
		{VerdictError, true},
		{VerdictWarning, true},
		{VerdictSkip, true},
		{VerdictPending, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.verdict), func(t *testing.T) {
			if got := tt.verdict.Reportable(); got != tt.want {
				t.Errorf("Reportable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerdict_Healthy(t *testing.T) {
	healthy := []Verdict{VerdictPass, VerdictWarning}
	for _, v := range healthy {
		if !v.Healthy() {
			t.Errorf("%s should be healthy", v)
		}
	}

	unhealthy := []Verdict{VerdictFail, VerdictError, VerdictSkip, VerdictPending}
	for _, v := range unhealthy {
		if v.Healthy() {
			t.Errorf("%s should not be healthy", v)
		}
	}
}
