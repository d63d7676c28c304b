package project

import "testing"

func TestStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   bool
	}{
		{StatusCompleted, true},
		{StatusInProgress, true},
		{StatusOngoing, true},
		{StatusPrototype, true},
		{"", false},
		{"In Progress", false},
		{"in progress", false},
		{"Archived", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()

			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("Status(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestStatuses_AllValid(t *testing.T) {
	t.Parallel()

	for _, s := range Statuses {
		if !s.IsValid() {
			t.Errorf("Statuses contains invalid %q", s)
		}
	}
}
