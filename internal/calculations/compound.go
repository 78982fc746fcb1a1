package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-compound-go/pkg/utils"
)

// CompoundInterestPerPeriod рассчитывает баланс по периодам для единовременной
// инвестиции, инвестиции со взносами или инвестиции на заемные средства.
// При ошибке конфигурации результат не возвращается.
func CompoundInterestPerPeriod(opts Options) (*Result, error) {
	opts.PaymentsPerAnnum = paymentsPerAnnum(opts)

	investmentType, err := checkOptions(opts)
	if err != nil {
		return nil, err
	}

	rate := NormalizeRate(opts.Rate)
	ratePerPeriod := rate / float64(opts.PaymentsPerAnnum)
	totalPayments := CalcTotalPayments(opts.Years, opts.PaymentsPerAnnum, investmentType)
	totalInvestment := CalcTotalInvestment(opts, investmentType)

	matrix, interestPerAnnum, err := projectPeriods(projection{
		principal:        opts.Principal,
		rate:             rate,
		years:            opts.Years,
		paymentsPerAnnum: opts.PaymentsPerAnnum,
		amountPerAnnum:   opts.AmountPerAnnum,
		accrual:          opts.AccrualOfPaymentsPerAnnum,
	})
	if err != nil {
		return nil, err
	}

	position := opts.Years
	if opts.CurrentPositionInYears != nil {
		position = *opts.CurrentPositionInYears
	}
	currentBalance, err := matrix.Balance(position)
	if err != nil {
		return nil, err
	}

	var endBalance float64
	if opts.AccrualOfPaymentsPerAnnum {
		endBalance, err = matrix.Balance(opts.Years)
		if err != nil {
			return nil, err
		}
	} else {
		endBalance = opts.Principal * math.Pow(1+rate, float64(opts.Years))
		if investmentType == InvestmentContribution {
			endBalance += opts.AmountPerAnnum * float64(opts.Years)
		}
	}

	result := &Result{
		Principal:                 opts.Principal,
		Rate:                      rate,
		Years:                     opts.Years,
		PaymentsPerAnnum:          opts.PaymentsPerAnnum,
		TotalPayments:             totalPayments,
		RatePerPeriod:             ratePerPeriod,
		MultiplierPerPeriod:       1 + ratePerPeriod,
		MultiplierTotal:           math.Pow(1+rate, float64(opts.Years)),
		TotalInvestment:           totalInvestment,
		CurrentBalance:            currentBalance,
		EndBalance:                endBalance,
		TotalInterest:             utils.Sum(interestPerAnnum),
		InterestPerAnnum:          interestPerAnnum,
		InterestMatrix:            matrix,
		InvestmentType:            investmentType,
		AccrualOfPaymentsPerAnnum: opts.AccrualOfPaymentsPerAnnum,
	}
	if opts.CurrentPositionInYears != nil {
		pos := *opts.CurrentPositionInYears
		result.CurrentPositionInYears = &pos
	}

	if investmentType == InvestmentDebtRepayment {
		result.DebtResult = assembleDebt(opts, result)
	}

	return result, nil
}

// assembleDebt дополняет результат показателями долга
func assembleDebt(opts Options, base *Result) *DebtResult {
	debt := opts.DebtRepayment

	switch debt.Type {
	case DebtCapitalRepayment:
		monthly := PMT(NormalizeRate(debt.InterestRate)/float64(opts.PaymentsPerAnnum),
			base.TotalPayments, opts.Principal, 0, PaymentAtEnd)
		return &DebtResult{
			RemainingDebt: 0,
			TotalEquity:   base.EndBalance,
			NetInvestment: base.EndBalance - base.TotalInvestment,
			RepaymentDetails: &RepaymentDetails{
				TotalDebtPaid:          base.TotalInvestment - opts.Principal,
				MonthlyRepaymentAmount: monthly,
			},
		}
	default:
		// основной долг не погашается
		payments := CalcInterestPayments(opts.Principal, debt.InterestRate, opts.PaymentsPerAnnum)
		equity := base.EndBalance - opts.Principal
		return &DebtResult{
			RemainingDebt:    opts.Principal,
			TotalEquity:      equity,
			NetInvestment:    equity - base.TotalInvestment,
			InterestPayments: &payments,
		}
	}
}

// checkOptions проверяет параметры и возвращает тип инвестиции
func checkOptions(opts Options) (InvestmentType, error) {
	if opts.Years < 1 {
		return "", fmt.Errorf("%w: years должен быть ≥ 1, получено %d", ErrConfiguration, opts.Years)
	}
	if !utils.IsFinite(opts.Principal) || opts.Principal < 0 {
		return "", fmt.Errorf("%w: principal должен быть конечным неотрицательным числом", ErrConfiguration)
	}
	if !utils.IsFinite(opts.Rate) || opts.Rate < 0 {
		return "", fmt.Errorf("%w: rate должен быть конечным неотрицательным числом", ErrConfiguration)
	}
	if !utils.IsFinite(opts.AmountPerAnnum) || opts.AmountPerAnnum < 0 {
		return "", fmt.Errorf("%w: amountPerAnnum должен быть конечным неотрицательным числом", ErrConfiguration)
	}
	if opts.DebtRepayment != nil && opts.AccrualOfPaymentsPerAnnum {
		return "", fmt.Errorf("%w: debtRepayment и accrualOfPaymentsPerAnnum несовместимы", ErrConfiguration)
	}
	if pos := opts.CurrentPositionInYears; pos != nil && (*pos < 1 || *pos > opts.Years) {
		return "", fmt.Errorf("%w: currentPositionInYears должен быть в диапазоне [1; %d], получено %d",
			ErrConfiguration, opts.Years, *pos)
	}
	if debt := opts.DebtRepayment; debt != nil {
		if !debt.Type.Valid() {
			return "", fmt.Errorf("%w: неизвестная схема погашения %q", ErrConfiguration, debt.Type)
		}
		if !utils.IsFinite(debt.InterestRate) || debt.InterestRate < 0 {
			return "", fmt.Errorf("%w: debtRepayment.interestRate должен быть конечным неотрицательным числом", ErrConfiguration)
		}
	}

	investmentType := ClassifyInvestment(opts)
	if opts.Type != "" {
		if !opts.Type.Valid() {
			return "", fmt.Errorf("%w: неизвестный тип инвестиции %q", ErrConfiguration, opts.Type)
		}
		if opts.Type != investmentType {
			return "", fmt.Errorf("%w: тип %q не соответствует параметрам (ожидается %q)",
				ErrTypeMismatch, opts.Type, investmentType)
		}
	}

	return investmentType, nil
}
