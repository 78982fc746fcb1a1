package calculations

import (
	"math"

	"github.com/cloud-ru/mcp-compound-go/pkg/utils"
)

// PaymentTiming момент платежа внутри периода
type PaymentTiming int

const (
	PaymentAtEnd       PaymentTiming = 0
	PaymentAtBeginning PaymentTiming = 1
)

// PMT рассчитывает фиксированный платеж аннуитета.
// ratePerPeriod - десятичная ставка за период, numPeriods должен быть ≥ 1.
// Результат всегда конечен: при исчезающе малой ставке это (pv+fv)/n,
// при очень большом r*n платеж стремится к r*pv/(1+r*timing).
func PMT(ratePerPeriod float64, numPeriods int, presentValue, futureValue float64, timing PaymentTiming) float64 {
	if numPeriods <= 0 {
		return 0
	}
	n := float64(numPeriods)
	r := ratePerPeriod

	// (1+r)^n считается через логарифм, чтобы не терять малые ставки и не переполняться
	x := n * math.Log1p(r)
	shrink := -math.Expm1(-x) // 1 - (1+r)^-n
	if r == 0.0 || shrink == 0.0 || math.IsNaN(shrink) {
		return (presentValue + futureValue) / n
	}
	decay := math.Exp(-x) // (1+r)^-n

	return r * (presentValue + futureValue*decay) / ((1.0 + r*float64(timing)) * shrink)
}

// CalcInterestPayments рассчитывает процентные платежи на неизменный основной долг
func CalcInterestPayments(principal, rate float64, paymentsPerAnnum int) InterestPayments {
	yearly := principal * NormalizeRate(rate)
	if paymentsPerAnnum < 1 {
		paymentsPerAnnum = 1
	}
	return InterestPayments{
		Yearly:  yearly,
		Monthly: yearly / 12,
		Period:  yearly / float64(paymentsPerAnnum),
	}
}

// RepaymentSchedule рассчитывает график аннуитетного погашения
func RepaymentSchedule(principal, ratePerPeriod float64, periods int) []ScheduleEntry {
	if periods <= 0 {
		return nil
	}

	r := ratePerPeriod
	payment := PMT(r, periods, principal, 0, PaymentAtEnd)

	schedule := make([]ScheduleEntry, 0, periods)
	remaining := principal
	cumI := 0.0
	cumP := 0.0

	for m := 1; m <= periods; m++ {
		interest := remaining * r
		principalComponent := payment - interest
		monthly := payment

		// последний платеж закрывает остаток, накопленный округлениями
		if m == periods {
			principalComponent = remaining
			monthly = principalComponent + interest
		}

		interest = utils.Round2(interest)
		principalComponent = utils.Round2(principalComponent)
		monthly = utils.Round2(monthly)

		remaining = utils.Round2(remaining - principalComponent)
		cumI = utils.Round2(cumI + interest)
		cumP = utils.Round2(cumP + principalComponent)

		remainingPrincipal := remaining
		if remainingPrincipal < 0 {
			remainingPrincipal = 0.0
		}

		schedule = append(schedule, ScheduleEntry{
			Month:               m,
			Payment:             monthly,
			Interest:            interest,
			PrincipalComponent:  principalComponent,
			RemainingPrincipal:  remainingPrincipal,
			CumulativeInterest:  cumI,
			CumulativePrincipal: cumP,
		})
	}

	return schedule
}
