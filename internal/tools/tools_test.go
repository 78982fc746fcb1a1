package tools

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cloud-ru/mcp-compound-go/internal/calculations"
	"github.com/cloud-ru/mcp-compound-go/internal/config"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func newRegistry(cfg *config.Config) map[string]ToolHandler {
	return Registry(cfg, noop.NewTracerProvider().Tracer("test"), zap.NewNop())
}

func TestCompoundInterestHandler(t *testing.T) {
	handlers := newRegistry(config.Default())
	handler := handlers[CompoundInterestTool]

	tests := []struct {
		name         string
		params       map[string]interface{}
		wantError    bool
		wantInvalid  bool
		checkSummary func(*testing.T, *calculations.Result)
	}{
		{
			name: "lump sum",
			params: map[string]interface{}{
				"type":             "lumpSum",
				"principal":        500.0,
				"rate":             3.4,
				"years":            1.0,
				"paymentsPerAnnum": 12.0,
			},
			checkSummary: func(t *testing.T, r *calculations.Result) {
				if r.InterestMatrix[0][11] != 517 {
					t.Errorf("expected matrix to end in 517, got %v", r.InterestMatrix[0][11])
				}
				if r.TotalPayments != 1 {
					t.Errorf("expected 1 total payment, got %d", r.TotalPayments)
				}
			},
		},
		{
			name: "interest only debt",
			params: map[string]interface{}{
				"principal":        250000.0,
				"rate":             7.8,
				"years":            1.0,
				"paymentsPerAnnum": 12.0,
				"debtRepayment": map[string]interface{}{
					"interestRate": 6.0,
					"type":         "interestOnly",
				},
			},
			checkSummary: func(t *testing.T, r *calculations.Result) {
				if r.DebtResult == nil {
					t.Fatal("expected debt metrics")
				}
				if r.RemainingDebt != 250000 {
					t.Errorf("expected remaining debt 250000, got %f", r.RemainingDebt)
				}
				if r.InterestPayments.Yearly != 15000 {
					t.Errorf("expected yearly interest 15000, got %f", r.InterestPayments.Yearly)
				}
			},
		},
		{
			name: "current position",
			params: map[string]interface{}{
				"principal":              250000.0,
				"rate":                   7.8,
				"years":                  25.0,
				"paymentsPerAnnum":       12.0,
				"amountPerAnnum":         12000.0,
				"currentPositionInYears": 5.0,
			},
			checkSummary: func(t *testing.T, r *calculations.Result) {
				if r.CurrentBalance != 363943.38 {
					t.Errorf("expected current balance 363943.38, got %v", r.CurrentBalance)
				}
			},
		},
		{
			name: "debt with accrual",
			params: map[string]interface{}{
				"principal":                 250000.0,
				"rate":                      7.8,
				"years":                     1.0,
				"accrualOfPaymentsPerAnnum": true,
				"debtRepayment":             map[string]interface{}{"interestRate": 6.0, "type": "interestOnly"},
			},
			wantError:   true,
			wantInvalid: true,
		},
		{
			name:        "missing principal",
			params:      map[string]interface{}{"rate": 7.8, "years": 1.0},
			wantError:   true,
			wantInvalid: true,
		},
		{
			name:        "fractional years",
			params:      map[string]interface{}{"principal": 500.0, "rate": 7.8, "years": 1.5},
			wantError:   true,
			wantInvalid: true,
		},
		{
			name:        "malformed debt repayment",
			params:      map[string]interface{}{"principal": 500.0, "rate": 7.8, "years": 1.0, "debtRepayment": "interestOnly"},
			wantError:   true,
			wantInvalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := handler(context.Background(), tt.params)
			if (err != nil) != tt.wantError {
				t.Fatalf("handler error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				if IsInvalidParams(err) != tt.wantInvalid {
					t.Errorf("IsInvalidParams(%v) = %v, want %v", err, !tt.wantInvalid, tt.wantInvalid)
				}
				return
			}
			result, ok := out.(*calculations.Result)
			if !ok {
				t.Fatalf("expected *calculations.Result, got %T", out)
			}
			tt.checkSummary(t, result)
		})
	}
}

func TestCompoundInterestHandlerConfigurationError(t *testing.T) {
	handler := newRegistry(config.Default())[CompoundInterestTool]

	_, err := handler(context.Background(), map[string]interface{}{
		"principal":                 250000.0,
		"rate":                      7.8,
		"years":                     1.0,
		"accrualOfPaymentsPerAnnum": true,
		"debtRepayment":             map[string]interface{}{"interestRate": 6.0, "type": "repayment"},
	})
	if !errors.Is(err, calculations.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestCompoundInterestHandlerBalanceCap(t *testing.T) {
	cfg := config.Default()
	cfg.MaxBalanceCap = 1000

	handler := newRegistry(cfg)[CompoundInterestTool]
	_, err := handler(context.Background(), map[string]interface{}{
		"principal": 900.0,
		"rate":      50.0,
		"years":     2.0,
	})
	if err == nil {
		t.Fatal("expected balance cap error")
	}
	if IsInvalidParams(err) {
		t.Error("balance cap is a calculation error, not a parameter error")
	}
}

func TestMortgageCalculatorHandler(t *testing.T) {
	handler := newRegistry(config.Default())[MortgageTool]

	out, err := handler(context.Background(), map[string]interface{}{
		"homeValue":    150000.0,
		"deposit":      15000.0,
		"interestRate": 6.0,
		"years":        25.0,
		"type":         "repayment",
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	result := out.(*calculations.MortgageResult)
	if result.MonthlyRepayment != 869.81 {
		t.Errorf("expected monthly repayment 869.81, got %v", result.MonthlyRepayment)
	}
	if result.Principal != 135000 {
		t.Errorf("expected principal 135000, got %f", result.Principal)
	}

	_, err = handler(context.Background(), map[string]interface{}{
		"homeValue":    100000.0,
		"deposit":      150000.0,
		"interestRate": 6.0,
		"years":        25.0,
		"type":         "repayment",
	})
	if !errors.Is(err, calculations.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	_, err = handler(context.Background(), map[string]interface{}{
		"homeValue":    150000.0,
		"interestRate": 6.0,
		"years":        25.0,
	})
	if !IsInvalidParams(err) {
		t.Errorf("expected invalid params for missing type, got %v", err)
	}
}

func TestAnnuityPaymentHandler(t *testing.T) {
	handler := newRegistry(config.Default())[AnnuityPaymentTool]

	out, err := handler(context.Background(), map[string]interface{}{
		"ratePerPeriod": 0.0,
		"numPeriods":    10.0,
		"presentValue":  100000.0,
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	payment := out.(map[string]interface{})["payment"].(float64)
	if payment != 10000 {
		t.Errorf("expected payment 10000, got %v", payment)
	}

	_, err = handler(context.Background(), map[string]interface{}{
		"ratePerPeriod": 0.01,
		"numPeriods":    0.0,
		"presentValue":  100000.0,
	})
	if !IsInvalidParams(err) {
		t.Errorf("expected invalid params for zero periods, got %v", err)
	}
}

func TestAnnuityPaymentHandlerExtremeRates(t *testing.T) {
	handler := newRegistry(config.Default())[AnnuityPaymentTool]

	tests := []struct {
		name          string
		ratePerPeriod float64
		numPeriods    float64
		want          float64
	}{
		{name: "rate below float precision", ratePerPeriod: 1e-17, numPeriods: 12, want: 1000.0 / 12},
		{name: "growth overflows", ratePerPeriod: 0.5, numPeriods: 2000, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := handler(context.Background(), map[string]interface{}{
				"ratePerPeriod": tt.ratePerPeriod,
				"numPeriods":    tt.numPeriods,
				"presentValue":  1000.0,
			})
			if err != nil {
				t.Fatalf("handler error = %v", err)
			}
			payment := out.(map[string]interface{})["payment"].(float64)
			if math.Abs(payment-tt.want) > 1e-6 {
				t.Errorf("expected payment %v, got %v", tt.want, payment)
			}
		})
	}

	_, err := handler(context.Background(), map[string]interface{}{
		"ratePerPeriod": 0.01,
		"numPeriods":    12.0,
		"presentValue":  1e300,
	})
	if !IsInvalidParams(err) {
		t.Errorf("expected invalid params for oversized present value, got %v", err)
	}
}

func TestInterestPaymentsHandler(t *testing.T) {
	handler := newRegistry(config.Default())[InterestPaymentsTool]

	out, err := handler(context.Background(), map[string]interface{}{
		"principal": 250000.0,
		"rate":      6.0,
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	got := out.(calculations.InterestPayments)
	want := calculations.InterestPayments{Yearly: 15000, Monthly: 1250, Period: 1250}
	if got != want {
		t.Errorf("InterestPayments = %+v, want %+v", got, want)
	}
}

func TestRegistry(t *testing.T) {
	handlers := newRegistry(config.Default())
	for _, name := range []string{CompoundInterestTool, MortgageTool, AnnuityPaymentTool, InterestPaymentsTool} {
		if handlers[name] == nil {
			t.Errorf("expected handler %s", name)
		}
	}
}
