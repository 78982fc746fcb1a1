package validators

import (
	"errors"
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-compound-go/internal/calculations"
	"github.com/cloud-ru/mcp-compound-go/internal/config"
	"github.com/cloud-ru/mcp-compound-go/pkg/utils"
)

// ErrNonFinite расчет дал NaN или бесконечность
var ErrNonFinite = errors.New("результат расчета не является конечным числом")

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %.0f", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%.0f)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет начальную сумму (может быть нулевой)
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 0.0, cfg.MaxPrincipal)
}

// CheckAmount проверяет сумму, которая может быть отрицательной (денежный поток), по модулю
func CheckAmount(cfg *config.Config, name string, amount float64) error {
	return ValidatePositiveNumber(name, math.Abs(amount), 0.0, cfg.MaxPrincipal)
}

// CheckRate проверяет процентную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("rate", rate, 0.0, cfg.MaxRate)
}

// CheckYears проверяет срок в годах
func CheckYears(cfg *config.Config, years int) error {
	return ValidateIntRange("years", years, 1, cfg.MaxYears)
}

// CheckPaymentsPerAnnum проверяет количество периодов в году
func CheckPaymentsPerAnnum(cfg *config.Config, paymentsPerAnnum int) error {
	return ValidateIntRange("paymentsPerAnnum", paymentsPerAnnum, 1, cfg.MaxPaymentsPerAnnum)
}

// CheckContribution проверяет ежегодный взнос
func CheckContribution(cfg *config.Config, amountPerAnnum float64) error {
	return ValidatePositiveNumber("amountPerAnnum", amountPerAnnum, 0.0, cfg.MaxContribution)
}

// CheckOptions проверяет параметры расчета по лимитам конфигурации.
// Несовместимые комбинации параметров проверяет сам расчет.
func CheckOptions(cfg *config.Config, opts calculations.Options) error {
	if err := CheckPrincipal(cfg, opts.Principal); err != nil {
		return err
	}
	if err := CheckRate(cfg, opts.Rate); err != nil {
		return err
	}
	if err := CheckYears(cfg, opts.Years); err != nil {
		return err
	}
	if opts.PaymentsPerAnnum != 0 {
		if err := CheckPaymentsPerAnnum(cfg, opts.PaymentsPerAnnum); err != nil {
			return err
		}
	}
	if err := CheckContribution(cfg, opts.AmountPerAnnum); err != nil {
		return err
	}
	if opts.CurrentPositionInYears != nil {
		if err := ValidateIntRange("currentPositionInYears", *opts.CurrentPositionInYears, 1, opts.Years); err != nil {
			return err
		}
	}
	if opts.DebtRepayment != nil {
		if err := ValidatePositiveNumber("debtRepayment.interestRate", opts.DebtRepayment.InterestRate, 0.0, cfg.MaxRate); err != nil {
			return err
		}
	}
	return nil
}

// CheckMortgage проверяет параметры ипотеки по лимитам конфигурации
func CheckMortgage(cfg *config.Config, mortgage calculations.MortgageOptions) error {
	if err := ValidatePositiveNumber("homeValue", mortgage.HomeValue, 0.0, cfg.MaxPrincipal); err != nil {
		return err
	}
	if err := ValidatePositiveNumber("deposit", mortgage.Deposit, 0.0, cfg.MaxPrincipal); err != nil {
		return err
	}
	if err := CheckRate(cfg, mortgage.InterestRate); err != nil {
		return err
	}
	return CheckYears(cfg, mortgage.Years)
}

// CheckBalance проверяет, что итоговый баланс не превысил верхнюю границу
func CheckBalance(cfg *config.Config, balance float64) error {
	if !utils.IsFinite(balance) || balance > BalanceCap(cfg) {
		return fmt.Errorf("итоговый баланс превысил верхнюю границу (проверьте ставку/срок/взносы)")
	}
	return nil
}

// BalanceCap возвращает максимальный баланс
func BalanceCap(cfg *config.Config) float64 {
	if cfg == nil {
		return 1e12 // Значение по умолчанию
	}
	return cfg.BalanceCap()
}

// CheckFinite проверяет, что значение результата конечно
func CheckFinite(name string, value float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%w: %s = %v", ErrNonFinite, name, value)
	}
	return nil
}

type namedValue struct {
	name  string
	value float64
}

// CheckResult проверяет итог проекции: все показатели конечны и баланс не выше границы
func CheckResult(cfg *config.Config, r *calculations.Result) error {
	fields := []namedValue{
		{"totalInvestment", r.TotalInvestment},
		{"currentBalance", r.CurrentBalance},
		{"endBalance", r.EndBalance},
		{"totalInterest", r.TotalInterest},
	}
	if r.DebtResult != nil {
		fields = append(fields, namedValue{"totalEquity", r.TotalEquity}, namedValue{"netInvestment", r.NetInvestment})
		if r.RepaymentDetails != nil {
			fields = append(fields,
				namedValue{"totalDebtPaid", r.TotalDebtPaid},
				namedValue{"monthlyRepaymentAmount", r.MonthlyRepaymentAmount},
			)
		}
	}
	for _, f := range fields {
		if err := CheckFinite(f.name, f.value); err != nil {
			return err
		}
	}

	for year, periods := range r.InterestMatrix {
		for _, v := range periods {
			if err := CheckFinite(fmt.Sprintf("interestMatrix[%d]", year+1), v); err != nil {
				return err
			}
		}
	}

	return CheckBalance(cfg, r.EndBalance)
}

// CheckMortgageResult проверяет, что показатели ипотеки конечны
func CheckMortgageResult(r *calculations.MortgageResult) error {
	if err := CheckFinite("monthlyRepayment", r.MonthlyRepayment); err != nil {
		return err
	}
	if err := CheckFinite("totalPaid", r.TotalPaid); err != nil {
		return err
	}
	if err := CheckFinite("totalInterest", r.TotalInterest); err != nil {
		return err
	}
	if r.InterestPayments != nil {
		return CheckFinite("interestPayments.yearly", r.InterestPayments.Yearly)
	}
	return nil
}
