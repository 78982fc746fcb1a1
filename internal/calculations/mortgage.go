package calculations

import (
	"fmt"

	"github.com/cloud-ru/mcp-compound-go/pkg/utils"
)

const mortgagePaymentsPerAnnum = 12

// MortgageCalculator рассчитывает ипотеку: сумма кредита равна стоимости жилья за вычетом первого взноса
func MortgageCalculator(mortgage MortgageOptions, mortgageType MortgageType) (*MortgageResult, error) {
	principal := mortgage.HomeValue - mortgage.Deposit

	if err := checkMortgage(mortgage, principal, mortgageType); err != nil {
		return nil, err
	}

	result := &MortgageResult{
		Type:         mortgageType,
		HomeValue:    mortgage.HomeValue,
		Deposit:      mortgage.Deposit,
		Principal:    principal,
		Years:        mortgage.Years,
		InterestRate: mortgage.InterestRate,
	}

	switch mortgageType {
	case MortgageRepayment:
		months := mortgage.Years * mortgagePaymentsPerAnnum
		r := mortgage.InterestRate / 100 / mortgagePaymentsPerAnnum

		schedule := RepaymentSchedule(principal, r, months)
		totalPaid, totalInterest := 0.0, 0.0
		for _, entry := range schedule {
			totalPaid = utils.Round2(totalPaid + entry.Payment)
		}
		if len(schedule) > 0 {
			totalInterest = schedule[len(schedule)-1].CumulativeInterest
		}

		result.MonthlyRepayment = utils.Round2(PMT(r, months, principal, 0, PaymentAtEnd))
		result.TotalPaid = totalPaid
		result.TotalInterest = totalInterest
		result.Schedule = schedule
	case MortgageInterestOnly:
		payments := CalcInterestPayments(principal, mortgage.InterestRate, mortgagePaymentsPerAnnum)
		result.InterestPayments = &payments
	}

	return result, nil
}

func checkMortgage(mortgage MortgageOptions, principal float64, mortgageType MortgageType) error {
	for name, v := range map[string]float64{
		"homeValue":    mortgage.HomeValue,
		"deposit":      mortgage.Deposit,
		"interestRate": mortgage.InterestRate,
	} {
		if !utils.IsFinite(v) {
			return fmt.Errorf("%w: %s не является конечным числом", ErrValidation, name)
		}
	}

	switch {
	case principal < 0:
		return fmt.Errorf("%w: principal cannot be negative", ErrValidation)
	case mortgage.Years < 0:
		return fmt.Errorf("%w: years cannot be negative", ErrValidation)
	case mortgage.InterestRate < 0:
		return fmt.Errorf("%w: interest rate cannot be negative", ErrValidation)
	case mortgage.HomeValue < 0:
		return fmt.Errorf("%w: home value cannot be negative", ErrValidation)
	case mortgage.Deposit < 0:
		return fmt.Errorf("%w: deposit cannot be negative", ErrValidation)
	case mortgage.Deposit > mortgage.HomeValue:
		return fmt.Errorf("%w: deposit cannot be greater than home value", ErrValidation)
	case mortgage.Years == 0:
		return fmt.Errorf("%w: years cannot be 0", ErrValidation)
	}

	if mortgageType != MortgageInterestOnly && mortgageType != MortgageRepayment {
		return fmt.Errorf("%w: invalid mortgage type %q", ErrValidation, mortgageType)
	}
	return nil
}
