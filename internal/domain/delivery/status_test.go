package delivery

import (
	"testing"
)

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPendingReceive, StatusPendingInspection, true},
		{StatusPendingReceive, StatusRejected, true},
		{StatusPendingReceive, StatusPendingArchive, false},
		{StatusPendingInspection, StatusPendingArchive, true},
		{StatusPendingInspection, StatusRejected, true},
		{StatusPendingArchive, StatusPendingWarehouse, true},
		{StatusPendingArchive, StatusRejected, false},
		{StatusPendingWarehouse, StatusCompleted, true},
		{StatusPendingWarehouse, StatusRejected, false},
		{StatusCompleted, StatusPendingReceive, false},
		{StatusRejected, StatusPendingReceive, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{
		StatusPendingReceive, StatusPendingInspection, StatusPendingArchive,
		StatusPendingWarehouse, StatusCompleted, StatusRejected,
	} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("shipped").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestNote_Guards(t *testing.T) {
	tests := []struct {
		status        Status
		qualityPassed bool
		canReceive    bool
		canInspect    bool
		canArchive    bool
		canWarehouse  bool
		canReject     bool
	}{
		{StatusPendingReceive, false, true, false, false, false, true},
		{StatusPendingInspection, false, false, true, false, false, true},
		{StatusPendingArchive, true, false, false, true, false, false},
		{StatusPendingArchive, false, false, false, false, false, false},
		{StatusPendingWarehouse, true, false, false, false, true, false},
		{StatusCompleted, true, false, false, false, false, false},
		{StatusRejected, false, false, false, false, false, false},
	}

	for _, tt := range tests {
		n := &Note{Status: tt.status, QualityPassed: tt.qualityPassed}
		if got := n.CanReceive(); got != tt.canReceive {
			t.Errorf("%s(qc=%v) CanReceive = %v", tt.status, tt.qualityPassed, got)
		}
		if got := n.CanInspect(); got != tt.canInspect {
			t.Errorf("%s(qc=%v) CanInspect = %v", tt.status, tt.qualityPassed, got)
		}
		if got := n.CanArchive(); got != tt.canArchive {
			t.Errorf("%s(qc=%v) CanArchive = %v", tt.status, tt.qualityPassed, got)
		}
		if got := n.CanWarehouse(); got != tt.canWarehouse {
			t.Errorf("%s(qc=%v) CanWarehouse = %v", tt.status, tt.qualityPassed, got)
		}
		if got := n.CanReject(); got != tt.canReject {
			t.Errorf("%s(qc=%v) CanReject = %v", tt.status, tt.qualityPassed, got)
		}
	}
}
