package domain

import (
	"reflect"
	"testing"
)

func TestSeverityForScore_Thresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  Severity
	}{
		{0.0, SeverityInfo},
		{0.19, SeverityInfo},
		{0.2, SeverityLow},
		{0.39, SeverityLow},
		{0.4, SeverityMedium},
		{0.69, SeverityMedium},
		{0.7, SeverityHigh},
		{1.0, SeverityHigh},
	}
	for _, tc := range cases {
		if got := SeverityForScore(tc.score); got != tc.want {
			t.Fatalf("SeverityForScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestNewRiskSignal_ClampsAndSorts(t *testing.T) {
	signal := NewRiskSignal("evidence.deepfake", 1.7, SignalSourceProvider,
		[]ReasonCode{"B_CODE", "A_CODE", "B_CODE"}, nil)
	if signal.Score != 1 {
		t.Fatalf("expected clamped score 1, got %v", signal.Score)
	}
	if signal.Severity != SeverityHigh {
		t.Fatalf("expected high severity, got %s", signal.Severity)
	}
	if !reflect.DeepEqual(signal.ReasonCodes, []ReasonCode{"A_CODE", "B_CODE"}) {
		t.Fatalf("codes not canonicalized: %v", signal.ReasonCodes)
	}

	negative := NewRiskSignal("x", -0.4, SignalSourceRules, nil, nil)
	if negative.Score != 0 || negative.Severity != SeverityInfo {
		t.Fatalf("expected floor at 0/info, got %v/%s", negative.Score, negative.Severity)
	}
}
