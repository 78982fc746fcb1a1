package calculations

import (
	"github.com/cloud-ru/mcp-compound-go/pkg/utils"
)

// projection входные данные цикла по периодам; rate уже в десятичной форме
type projection struct {
	principal        float64
	rate             float64
	years            int
	paymentsPerAnnum int
	amountPerAnnum   float64
	accrual          bool
}

// projectPeriods строит матрицу балансов год за годом.
// Каждый баланс периода округляется до копеек при записи, и следующий год
// начинается с округленного баланса последнего периода.
func projectPeriods(p projection) (InterestMatrix, []float64, error) {
	matrix := make(InterestMatrix, 0, p.years)
	interestPerAnnum := make([]float64, 0, p.years)

	ratePerPeriod := p.rate / float64(p.paymentsPerAnnum)
	contribution := p.amountPerAnnum / float64(p.paymentsPerAnnum)

	for year := 1; year <= p.years; year++ {
		prevBalance := p.principal
		if year > 1 {
			last, err := matrix.Balance(year - 1)
			if err != nil {
				return nil, nil, err
			}
			prevBalance = last
		}

		var periods []float64
		var interestThisYear float64
		if p.accrual {
			periods, interestThisYear = accrueYear(prevBalance, ratePerPeriod, contribution, p.paymentsPerAnnum)
		} else {
			periods, interestThisYear = spreadYear(prevBalance, p.rate, p.paymentsPerAnnum)
		}

		matrix = append(matrix, periods)
		interestPerAnnum = append(interestPerAnnum, interestThisYear)
	}

	return matrix, interestPerAnnum, nil
}

// spreadYear начисляет годовые проценты на баланс начала года и делит их поровну между периодами
func spreadYear(opening, rate float64, paymentsPerAnnum int) ([]float64, float64) {
	interestThisYear := opening * rate
	interest := interestThisYear / float64(paymentsPerAnnum)

	periods := make([]float64, 0, paymentsPerAnnum)
	balance := opening
	for i := 0; i < paymentsPerAnnum; i++ {
		balance += interest
		periods = append(periods, utils.Round2(balance))
	}
	return periods, interestThisYear
}

// accrueYear добавляет взнос в начале каждого периода и начисляет проценты уже на него
func accrueYear(opening, ratePerPeriod, contribution float64, paymentsPerAnnum int) ([]float64, float64) {
	periods := make([]float64, 0, paymentsPerAnnum)
	balance := opening
	interestThisYear := 0.0
	for i := 0; i < paymentsPerAnnum; i++ {
		interest := (balance + contribution) * ratePerPeriod
		balance = balance + interest + contribution
		interestThisYear += interest
		periods = append(periods, utils.Round2(balance))
	}
	return periods, interestThisYear
}
