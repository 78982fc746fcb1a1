package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloud-ru/mcp-compound-go/internal/calculations"
	"github.com/cloud-ru/mcp-compound-go/internal/config"
	"go.uber.org/zap"
)

const sample = `
projections:
  - name: pension pot
    options:
      type: contribution
      principal: 250000
      rate: 7.8
      years: 25
      payments_per_annum: 12
      amount_per_annum: 12000
      current_position_in_years: 5
  - name: buy to let
    options:
      principal: 250000
      rate: 7.8
      years: 1
      payments_per_annum: 12
      accrual_of_payments_per_annum: true
      debt_repayment:
        interest_rate: 6
        type: interestOnly
  - options:
      principal: 500
      rate: 3.4
      years: 1
      payments_per_annum: 12
mortgages:
  - name: first home
    type: repayment
    mortgage:
      home_value: 150000
      deposit: 15000
      interest_rate: 6
      years: 25
`

func TestParseAndRun(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Projections) != 3 || len(f.Mortgages) != 1 {
		t.Fatalf("expected 3 projections and 1 mortgage, got %d and %d", len(f.Projections), len(f.Mortgages))
	}
	if f.Projections[2].Name != "projection-3" {
		t.Errorf("expected generated name, got %q", f.Projections[2].Name)
	}
	if pos := f.Projections[0].Options.CurrentPositionInYears; pos == nil || *pos != 5 {
		t.Error("expected current position 5 to be parsed")
	}

	outcomes := Run(config.Default(), f, zap.NewNop())
	if len(outcomes) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(outcomes))
	}

	pension := outcomes[0]
	if pension.Err != nil {
		t.Fatalf("pension pot error = %v", pension.Err)
	}
	if pension.Projection.CurrentBalance != 363943.38 {
		t.Errorf("expected current balance 363943.38, got %v", pension.Projection.CurrentBalance)
	}

	if !errors.Is(outcomes[1].Err, calculations.ErrConfiguration) {
		t.Errorf("expected configuration error for debt with accrual, got %v", outcomes[1].Err)
	}
	if outcomes[1].Projection != nil {
		t.Error("failed scenario should not carry a result")
	}

	if outcomes[2].Err != nil || outcomes[2].Projection.EndBalance != 517 {
		t.Errorf("unexpected lump sum outcome: %+v", outcomes[2])
	}

	home := outcomes[3]
	if home.Err != nil {
		t.Fatalf("mortgage error = %v", home.Err)
	}
	if home.Mortgage.MonthlyRepayment != 869.81 {
		t.Errorf("expected monthly repayment 869.81, got %v", home.Mortgage.MonthlyRepayment)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("projections: [")); err == nil {
		t.Error("expected YAML syntax error")
	}
	if _, err := Parse([]byte("other: 1\n")); err == nil {
		t.Error("expected error for a file without scenarios")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Projections) != 3 {
		t.Errorf("expected 3 projections, got %d", len(f.Projections))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
