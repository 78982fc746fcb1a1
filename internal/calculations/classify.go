package calculations

import "math"

// ClassifyInvestment определяет тип инвестиции по параметрам
func ClassifyInvestment(opts Options) InvestmentType {
	switch {
	case opts.DebtRepayment != nil:
		return InvestmentDebtRepayment
	case opts.AmountPerAnnum > 0:
		return InvestmentContribution
	default:
		return InvestmentLumpSum
	}
}

// CalcTotalPayments возвращает общее количество платежей.
// Для единовременной инвестиции это 1: значение служит только делителем.
func CalcTotalPayments(years, paymentsPerAnnum int, investmentType InvestmentType) int {
	switch investmentType {
	case InvestmentContribution, InvestmentDebtRepayment:
		return years * paymentsPerAnnum
	default:
		return 1
	}
}

// CalcTotalInvestment рассчитывает сумму собственных вложений за весь срок
func CalcTotalInvestment(opts Options, investmentType InvestmentType) float64 {
	switch investmentType {
	case InvestmentContribution:
		return opts.Principal + opts.AmountPerAnnum*float64(opts.Years)
	case InvestmentDebtRepayment:
		debt := opts.DebtRepayment
		if debt == nil {
			return 0
		}
		switch debt.Type {
		case DebtInterestOnly:
			payments := CalcInterestPayments(opts.Principal, debt.InterestRate, paymentsPerAnnum(opts))
			return payments.Yearly * float64(opts.Years)
		case DebtCapitalRepayment:
			months := opts.Years * 12
			monthly := PMT(NormalizeRate(debt.InterestRate)/12, months, opts.Principal, 0, PaymentAtEnd)
			return monthly * 12 * float64(opts.Years)
		}
		return 0
	default:
		return opts.Principal
	}
}

// CompoundInterestOverYears рассчитывает баланс по формуле сложного процента с ежегодной капитализацией
func CompoundInterestOverYears(principal, rate float64, years int) float64 {
	return principal * math.Pow(1+NormalizeRate(rate), float64(years))
}

// CalcInvestmentWithInterest рассчитывает итог инвестиции без разбивки по периодам.
// Взносы прибавляются к итоговому балансу без начисления на них процентов.
func CalcInvestmentWithInterest(principal, rate float64, years, paymentsPerAnnum int, amountPerAnnum float64) InvestmentSummary {
	totalInvestment := principal + amountPerAnnum*float64(years)
	finalBalance := CompoundInterestOverYears(principal, rate, years) + amountPerAnnum*float64(years)

	return InvestmentSummary{
		Principal:       principal,
		FinalBalance:    finalBalance,
		TotalPayments:   years * paymentsPerAnnum,
		TotalInvestment: totalInvestment,
		TotalInterest:   finalBalance - totalInvestment,
	}
}

func paymentsPerAnnum(opts Options) int {
	if opts.PaymentsPerAnnum < 1 {
		return 1
	}
	return opts.PaymentsPerAnnum
}
