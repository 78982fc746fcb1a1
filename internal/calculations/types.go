package calculations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cloud-ru/mcp-compound-go/pkg/utils"
)

// InvestmentType тип инвестиции
type InvestmentType string

const (
	InvestmentLumpSum       InvestmentType = "lumpSum"
	InvestmentContribution  InvestmentType = "contribution"
	InvestmentDebtRepayment InvestmentType = "debtRepayment"
)

// Valid проверяет, что тип инвестиции известен
func (t InvestmentType) Valid() bool {
	switch t {
	case InvestmentLumpSum, InvestmentContribution, InvestmentDebtRepayment:
		return true
	}
	return false
}

// DebtRepaymentType схема погашения долга
type DebtRepaymentType string

const (
	DebtInterestOnly     DebtRepaymentType = "interestOnly"
	DebtCapitalRepayment DebtRepaymentType = "repayment"
)

// Valid проверяет, что схема погашения известна
func (t DebtRepaymentType) Valid() bool {
	return t == DebtInterestOnly || t == DebtCapitalRepayment
}

// DebtRepaymentOptions параметры заемного капитала
type DebtRepaymentOptions struct {
	InterestRate float64           `json:"interestRate" yaml:"interest_rate"`
	Type         DebtRepaymentType `json:"type" yaml:"type"`
}

// Options параметры расчета сложного процента по периодам.
// Пустой Type выводится из остальных полей (см. ClassifyInvestment).
type Options struct {
	Type                      InvestmentType        `json:"type,omitempty" yaml:"type,omitempty"`
	Principal                 float64               `json:"principal" yaml:"principal"`
	Rate                      float64               `json:"rate" yaml:"rate"`
	Years                     int                   `json:"years" yaml:"years"`
	PaymentsPerAnnum          int                   `json:"paymentsPerAnnum,omitempty" yaml:"payments_per_annum,omitempty"`
	AmountPerAnnum            float64               `json:"amountPerAnnum,omitempty" yaml:"amount_per_annum,omitempty"`
	AccrualOfPaymentsPerAnnum bool                  `json:"accrualOfPaymentsPerAnnum,omitempty" yaml:"accrual_of_payments_per_annum,omitempty"`
	CurrentPositionInYears    *int                  `json:"currentPositionInYears,omitempty" yaml:"current_position_in_years,omitempty"`
	DebtRepayment             *DebtRepaymentOptions `json:"debtRepayment,omitempty" yaml:"debt_repayment,omitempty"`
}

// InterestPayments процентные платежи по неамортизируемому долгу
type InterestPayments struct {
	Yearly  float64 `json:"yearly"`
	Monthly float64 `json:"monthly"`
	Period  float64 `json:"period"`
}

// InterestMatrix балансы по периодам: индекс года - 1, внутри года периоды в хронологическом порядке
type InterestMatrix [][]float64

// Year возвращает балансы периодов года year (нумерация с 1)
func (m InterestMatrix) Year(year int) ([]float64, error) {
	if year < 1 || year > len(m) {
		return nil, fmt.Errorf("%w: год %d не рассчитан (доступно лет: %d)", ErrLookup, year, len(m))
	}
	return m[year-1], nil
}

// Balance возвращает баланс на конец года year
func (m InterestMatrix) Balance(year int) (float64, error) {
	periods, err := m.Year(year)
	if err != nil {
		return 0, err
	}
	balance, ok := utils.Last(periods)
	if !ok {
		return 0, fmt.Errorf("%w: у года %d нет периодов", ErrLookup, year)
	}
	return balance, nil
}

// MarshalJSON сериализует матрицу как объект {"1": [...], "2": [...]} в порядке лет
func (m InterestMatrix) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, periods := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(i + 1)))
		buf.WriteByte(':')
		row, err := json.Marshal(periods)
		if err != nil {
			return nil, err
		}
		buf.Write(row)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result результат расчета. Для долговых инвестиций заполнен DebtResult.
type Result struct {
	Principal                 float64        `json:"principal"`
	Rate                      float64        `json:"rate"`
	Years                     int            `json:"years"`
	PaymentsPerAnnum          int            `json:"paymentsPerAnnum"`
	TotalPayments             int            `json:"totalPayments"`
	RatePerPeriod             float64        `json:"ratePerPeriod"`
	MultiplierPerPeriod       float64        `json:"multiplierPerPeriod"`
	MultiplierTotal           float64        `json:"multiplierTotal"`
	TotalInvestment           float64        `json:"totalInvestment"`
	CurrentBalance            float64        `json:"currentBalance"`
	EndBalance                float64        `json:"endBalance"`
	TotalInterest             float64        `json:"totalInterest"`
	InterestPerAnnum          []float64      `json:"interestPerAnnum"`
	InterestMatrix            InterestMatrix `json:"interestMatrix"`
	InvestmentType            InvestmentType `json:"investmentType"`
	AccrualOfPaymentsPerAnnum bool           `json:"accrualOfPaymentsPerAnnum"`
	CurrentPositionInYears    *int           `json:"currentPositionInYears,omitempty"`

	*DebtResult
}

// DebtResult показатели долговой инвестиции
type DebtResult struct {
	RemainingDebt    float64           `json:"remainingDebt"`
	TotalEquity      float64           `json:"totalEquity"`
	NetInvestment    float64           `json:"netInvestment"`
	InterestPayments *InterestPayments `json:"interestPayments,omitempty"`

	*RepaymentDetails
}

// RepaymentDetails показатели амортизируемого долга
type RepaymentDetails struct {
	TotalDebtPaid          float64 `json:"totalDebtPaid"`
	MonthlyRepaymentAmount float64 `json:"monthlyRepaymentAmount"`
}

// InvestmentSummary сводка по инвестиции без разбивки по периодам
type InvestmentSummary struct {
	Principal       float64 `json:"principal"`
	FinalBalance    float64 `json:"finalBalance"`
	TotalPayments   int     `json:"totalPayments"`
	TotalInvestment float64 `json:"totalInvestment"`
	TotalInterest   float64 `json:"totalInterest"`
}

// MortgageType тип ипотеки
type MortgageType string

const (
	MortgageInterestOnly MortgageType = "interestOnly"
	MortgageRepayment    MortgageType = "repayment"
)

// MortgageOptions параметры ипотеки
type MortgageOptions struct {
	HomeValue    float64 `json:"homeValue" yaml:"home_value"`
	Deposit      float64 `json:"deposit" yaml:"deposit"`
	InterestRate float64 `json:"interestRate" yaml:"interest_rate"`
	Years        int     `json:"years" yaml:"years"`
}

// ScheduleEntry представляет одну запись в графике платежей
type ScheduleEntry struct {
	Month               int     `json:"month"`
	Payment             float64 `json:"payment"`
	Interest            float64 `json:"interest"`
	PrincipalComponent  float64 `json:"principal_component"`
	RemainingPrincipal  float64 `json:"remaining_principal"`
	CumulativeInterest  float64 `json:"cumulative_interest"`
	CumulativePrincipal float64 `json:"cumulative_principal"`
}

// MortgageResult результат расчета ипотеки
type MortgageResult struct {
	Type             MortgageType      `json:"type"`
	HomeValue        float64           `json:"homeValue"`
	Deposit          float64           `json:"deposit"`
	Principal        float64           `json:"principal"`
	Years            int               `json:"years"`
	InterestRate     float64           `json:"interestRate"`
	MonthlyRepayment float64           `json:"monthlyRepayment,omitempty"`
	TotalPaid        float64           `json:"totalPaid,omitempty"`
	TotalInterest    float64           `json:"totalInterest,omitempty"`
	InterestPayments *InterestPayments `json:"interestPayments,omitempty"`
	Schedule         []ScheduleEntry   `json:"schedule,omitempty"`
}
