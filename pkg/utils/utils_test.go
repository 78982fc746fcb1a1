package utils

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{
			name:  "round a period balance",
			input: 501.4166666666667,
			want:  501.42,
		},
		{
			name:  "round down",
			input: 502.8333333333333,
			want:  502.83,
		},
		{
			name:  "already 2 decimals",
			input: 271251.75,
			want:  271251.75,
		},
		{
			name:  "integer",
			input: 269500.0,
			want:  269500.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(tt.input)
			if got != tt.want {
				t.Errorf("Round2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{
			name:  "finite number",
			input: 123.45,
			want:  true,
		},
		{
			name:  "infinity",
			input: math.Inf(1),
			want:  false,
		},
		{
			name:  "negative infinity",
			input: math.Inf(-1),
			want:  false,
		},
		{
			name:  "NaN",
			input: math.NaN(),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsFinite(tt.input)
			if got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSum(t *testing.T) {
	got := Sum([]float64{17, 17.578000000000003})
	if got != 34.578 {
		t.Errorf("Sum() = %v, want 34.578", got)
	}
	if Sum(nil) != 0 {
		t.Error("Sum(nil) should be 0")
	}
}

func TestLast(t *testing.T) {
	if _, ok := Last(nil); ok {
		t.Error("Last(nil) should report false")
	}
	v, ok := Last([]float64{1, 2, 517})
	if !ok || v != 517 {
		t.Errorf("Last() = %v, %v, want 517, true", v, ok)
	}
}
