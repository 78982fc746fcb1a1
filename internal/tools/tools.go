package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloud-ru/mcp-compound-go/internal/calculations"
	"github.com/cloud-ru/mcp-compound-go/internal/config"
	"github.com/cloud-ru/mcp-compound-go/internal/metrics"
	"github.com/cloud-ru/mcp-compound-go/internal/validators"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Имена инструментов
const (
	CompoundInterestTool = "compound_interest_per_period"
	MortgageTool         = "mortgage_calculator"
	AnnuityPaymentTool   = "annuity_payment"
	InterestPaymentsTool = "interest_payments"
)

// ErrInvalidParams неверные параметры инструмента
var ErrInvalidParams = errors.New("неверные параметры")

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// call общая обвязка вызова: спан, метрики, логирование
type call struct {
	toolName string
	span     trace.Span
	logger   *zap.Logger
}

func startCall(ctx context.Context, tracer trace.Tracer, logger *zap.Logger, toolName string) (context.Context, *call) {
	ctx, span := tracer.Start(ctx, toolName)
	metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()
	return ctx, &call{toolName: toolName, span: span, logger: logger.With(zap.String("tool", toolName))}
}

func (c *call) invalid(err error) error {
	c.span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.ToolCalls.WithLabelValues(c.toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.toolName, "validation").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.toolName, "error").Inc()
	c.logger.Warn("invalid parameters", zap.Error(err))
	return fmt.Errorf("%w: %w", ErrInvalidParams, err)
}

func (c *call) failed(err error) error {
	// ошибки конфигурации расчета - это тоже ошибки параметров
	if errors.Is(err, calculations.ErrConfiguration) || errors.Is(err, calculations.ErrValidation) {
		return c.invalid(err)
	}
	c.span.SetAttributes(attribute.String("error", "calculation_error"))
	metrics.ToolCalls.WithLabelValues(c.toolName, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.toolName, "calculation").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.toolName, "error").Inc()
	c.logger.Error("calculation failed", zap.Error(err))
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

func (c *call) succeeded(attrs ...attribute.KeyValue) {
	c.span.SetAttributes(append(attrs, attribute.Bool("success", true))...)
	metrics.ToolCalls.WithLabelValues(c.toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.toolName, "success").Inc()
	c.logger.Debug("calculation finished")
}

// OptionsFromParams собирает параметры расчета из аргументов инструмента
func OptionsFromParams(params map[string]interface{}) (calculations.Options, error) {
	var opts calculations.Options
	var err error

	investmentType, err := stringParam(params, "type", false)
	if err != nil {
		return opts, err
	}
	opts.Type = calculations.InvestmentType(investmentType)

	if opts.Principal, err = floatParam(params, "principal", true, 0); err != nil {
		return opts, err
	}
	if opts.Rate, err = floatParam(params, "rate", true, 0); err != nil {
		return opts, err
	}
	if opts.Years, err = intParam(params, "years", true, 0); err != nil {
		return opts, err
	}
	if opts.PaymentsPerAnnum, err = intParam(params, "paymentsPerAnnum", false, 1); err != nil {
		return opts, err
	}
	if opts.AmountPerAnnum, err = floatParam(params, "amountPerAnnum", false, 0); err != nil {
		return opts, err
	}
	if opts.AccrualOfPaymentsPerAnnum, err = boolParam(params, "accrualOfPaymentsPerAnnum"); err != nil {
		return opts, err
	}
	if _, ok := params["currentPositionInYears"]; ok {
		position, err := intParam(params, "currentPositionInYears", true, 0)
		if err != nil {
			return opts, err
		}
		opts.CurrentPositionInYears = &position
	}

	if raw, ok := params["debtRepayment"]; ok && raw != nil {
		debtParams, ok := raw.(map[string]interface{})
		if !ok {
			return opts, fmt.Errorf("invalid parameter: debtRepayment")
		}
		rate, err := floatParam(debtParams, "interestRate", true, 0)
		if err != nil {
			return opts, fmt.Errorf("debtRepayment: %w", err)
		}
		debtType, err := stringParam(debtParams, "type", true)
		if err != nil {
			return opts, fmt.Errorf("debtRepayment: %w", err)
		}
		opts.DebtRepayment = &calculations.DebtRepaymentOptions{
			InterestRate: rate,
			Type:         calculations.DebtRepaymentType(debtType),
		}
	}

	return opts, nil
}

// MortgageFromParams собирает параметры ипотеки из аргументов инструмента
func MortgageFromParams(params map[string]interface{}) (calculations.MortgageOptions, calculations.MortgageType, error) {
	var m calculations.MortgageOptions
	var err error

	if m.HomeValue, err = floatParam(params, "homeValue", true, 0); err != nil {
		return m, "", err
	}
	if m.Deposit, err = floatParam(params, "deposit", false, 0); err != nil {
		return m, "", err
	}
	if m.InterestRate, err = floatParam(params, "interestRate", true, 0); err != nil {
		return m, "", err
	}
	if m.Years, err = intParam(params, "years", true, 0); err != nil {
		return m, "", err
	}
	mortgageType, err := stringParam(params, "type", true)
	if err != nil {
		return m, "", err
	}
	return m, calculations.MortgageType(mortgageType), nil
}

// CompoundInterestHandler обрабатывает запрос на расчет сложного процента по периодам
func CompoundInterestHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, c := startCall(ctx, tracer, logger, CompoundInterestTool)
		defer c.span.End()

		opts, err := OptionsFromParams(params)
		if err != nil {
			return nil, c.invalid(err)
		}

		c.span.SetAttributes(
			attribute.String("type", string(opts.Type)),
			attribute.Float64("principal", opts.Principal),
			attribute.Float64("rate", opts.Rate),
			attribute.Int("years", opts.Years),
			attribute.Int("payments_per_annum", opts.PaymentsPerAnnum),
			attribute.Float64("amount_per_annum", opts.AmountPerAnnum),
			attribute.Bool("accrual_of_payments_per_annum", opts.AccrualOfPaymentsPerAnnum),
		)

		if err := validators.CheckOptions(cfg, opts); err != nil {
			return nil, c.invalid(err)
		}

		result, err := calculations.CompoundInterestPerPeriod(opts)
		if err != nil {
			return nil, c.failed(err)
		}
		if err := validators.CheckResult(cfg, result); err != nil {
			return nil, c.failed(err)
		}

		metrics.ProjectedPeriods.WithLabelValues(string(result.InvestmentType)).
			Observe(float64(result.Years * result.PaymentsPerAnnum))

		c.succeeded(
			attribute.String("investment_type", string(result.InvestmentType)),
			attribute.Float64("end_balance", result.EndBalance),
			attribute.Float64("total_interest", result.TotalInterest),
		)
		return result, nil
	}
}

// MortgageCalculatorHandler обрабатывает запрос на расчет ипотеки
func MortgageCalculatorHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, c := startCall(ctx, tracer, logger, MortgageTool)
		defer c.span.End()

		mortgage, mortgageType, err := MortgageFromParams(params)
		if err != nil {
			return nil, c.invalid(err)
		}

		c.span.SetAttributes(
			attribute.String("type", string(mortgageType)),
			attribute.Float64("home_value", mortgage.HomeValue),
			attribute.Float64("deposit", mortgage.Deposit),
			attribute.Float64("interest_rate", mortgage.InterestRate),
			attribute.Int("years", mortgage.Years),
		)

		if err := validators.CheckMortgage(cfg, mortgage); err != nil {
			return nil, c.invalid(err)
		}

		result, err := calculations.MortgageCalculator(mortgage, mortgageType)
		if err != nil {
			return nil, c.failed(err)
		}
		if err := validators.CheckMortgageResult(result); err != nil {
			return nil, c.failed(err)
		}

		c.succeeded(
			attribute.Float64("principal", result.Principal),
			attribute.Float64("monthly_repayment", result.MonthlyRepayment),
		)
		return result, nil
	}
}

// AnnuityPaymentHandler обрабатывает запрос на расчет платежа аннуитета (PMT)
func AnnuityPaymentHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, c := startCall(ctx, tracer, logger, AnnuityPaymentTool)
		defer c.span.End()

		ratePerPeriod, err := floatParam(params, "ratePerPeriod", true, 0)
		if err != nil {
			return nil, c.invalid(err)
		}
		numPeriods, err := intParam(params, "numPeriods", true, 0)
		if err != nil {
			return nil, c.invalid(err)
		}
		presentValue, err := floatParam(params, "presentValue", true, 0)
		if err != nil {
			return nil, c.invalid(err)
		}
		futureValue, err := floatParam(params, "futureValue", false, 0)
		if err != nil {
			return nil, c.invalid(err)
		}
		timing, err := intParam(params, "paymentTiming", false, 0)
		if err != nil {
			return nil, c.invalid(err)
		}

		if err := validators.ValidatePositiveNumber("ratePerPeriod", ratePerPeriod, 0, 1); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.ValidateIntRange("numPeriods", numPeriods, 1, cfg.MaxYears*cfg.MaxPaymentsPerAnnum); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.ValidateIntRange("paymentTiming", timing, 0, 1); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckAmount(cfg, "presentValue", presentValue); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckAmount(cfg, "futureValue", futureValue); err != nil {
			return nil, c.invalid(err)
		}

		payment := calculations.PMT(ratePerPeriod, numPeriods, presentValue, futureValue, calculations.PaymentTiming(timing))
		if err := validators.CheckFinite("payment", payment); err != nil {
			return nil, c.failed(err)
		}

		c.succeeded(attribute.Float64("payment", payment))
		return map[string]interface{}{"payment": payment}, nil
	}
}

// InterestPaymentsHandler обрабатывает запрос на расчет процентных платежей без погашения долга
func InterestPaymentsHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, c := startCall(ctx, tracer, logger, InterestPaymentsTool)
		defer c.span.End()

		principal, err := floatParam(params, "principal", true, 0)
		if err != nil {
			return nil, c.invalid(err)
		}
		rate, err := floatParam(params, "rate", true, 0)
		if err != nil {
			return nil, c.invalid(err)
		}
		paymentsPerAnnum, err := intParam(params, "paymentsPerAnnum", false, 12)
		if err != nil {
			return nil, c.invalid(err)
		}

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckRate(cfg, rate); err != nil {
			return nil, c.invalid(err)
		}
		if err := validators.CheckPaymentsPerAnnum(cfg, paymentsPerAnnum); err != nil {
			return nil, c.invalid(err)
		}

		payments := calculations.CalcInterestPayments(principal, rate, paymentsPerAnnum)
		if err := validators.CheckFinite("yearly", payments.Yearly); err != nil {
			return nil, c.failed(err)
		}

		c.succeeded(attribute.Float64("yearly", payments.Yearly))
		return payments, nil
	}
}

// Registry возвращает все инструменты сервера по именам
func Registry(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) map[string]ToolHandler {
	return map[string]ToolHandler{
		CompoundInterestTool: CompoundInterestHandler(cfg, tracer, logger),
		MortgageTool:         MortgageCalculatorHandler(cfg, tracer, logger),
		AnnuityPaymentTool:   AnnuityPaymentHandler(cfg, tracer, logger),
		InterestPaymentsTool: InterestPaymentsHandler(cfg, tracer, logger),
	}
}

// IsInvalidParams сообщает, вызвана ли ошибка неверными параметрами
func IsInvalidParams(err error) bool {
	return errors.Is(err, ErrInvalidParams)
}
