package calculations

import (
	"math"
	"testing"
)

func approxEqual(got, want float64) bool {
	return math.Abs(got-want) <= 1e-6*math.Max(1, math.Abs(want))
}

func assertApprox(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approxEqual(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertPeriods(t *testing.T, m InterestMatrix, year int, want []float64) {
	t.Helper()
	got, err := m.Year(year)
	if err != nil {
		t.Fatalf("Year(%d) error = %v", year, err)
	}
	if len(got) != len(want) {
		t.Fatalf("year %d: expected %d periods, got %d", year, len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("year %d period %d = %v, want %v", year, i+1, got[i], want[i])
		}
	}
}

func intPtr(v int) *int { return &v }
