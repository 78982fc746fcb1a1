package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cloud-ru/mcp-compound-go/internal/calculations"
	"github.com/shopspring/decimal"
)

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderProjection печатает проекцию по годам: баланс на конец года и проценты
func renderProjection(w io.Writer, r *calculations.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tBalance\tInterest\t")
	for i := range r.InterestMatrix {
		balance, err := r.InterestMatrix.Balance(i + 1)
		if err != nil {
			return err
		}
		interest := 0.0
		if i < len(r.InterestPerAnnum) {
			interest = r.InterestPerAnnum[i]
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", i+1, money(balance), money(interest))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Type:              %s\n", r.InvestmentType)
	fmt.Fprintf(w, "Total investment:  %s\n", money(r.TotalInvestment))
	fmt.Fprintf(w, "Total interest:    %s\n", money(r.TotalInterest))
	fmt.Fprintf(w, "Current balance:   %s\n", money(r.CurrentBalance))
	fmt.Fprintf(w, "End balance:       %s\n", money(r.EndBalance))

	if r.DebtResult != nil {
		fmt.Fprintf(w, "Remaining debt:    %s\n", money(r.RemainingDebt))
		fmt.Fprintf(w, "Total equity:      %s\n", money(r.TotalEquity))
		fmt.Fprintf(w, "Net investment:    %s\n", money(r.NetInvestment))
		if r.InterestPayments != nil {
			fmt.Fprintf(w, "Interest payments: %s/yr, %s/mo, %s/period\n",
				money(r.InterestPayments.Yearly), money(r.InterestPayments.Monthly), money(r.InterestPayments.Period))
		}
		if r.RepaymentDetails != nil {
			fmt.Fprintf(w, "Debt paid:         %s\n", money(r.TotalDebtPaid))
			fmt.Fprintf(w, "Repayment:         %s/period\n", money(r.MonthlyRepaymentAmount))
		}
	}
	return nil
}

// renderMortgage печатает результат ипотеки
func renderMortgage(w io.Writer, m *calculations.MortgageResult) error {
	fmt.Fprintf(w, "Type:              %s\n", m.Type)
	fmt.Fprintf(w, "Home value:        %s\n", money(m.HomeValue))
	fmt.Fprintf(w, "Deposit:           %s\n", money(m.Deposit))
	fmt.Fprintf(w, "Principal:         %s\n", money(m.Principal))
	fmt.Fprintf(w, "Term:              %d years at %s%%\n", m.Years, decimal.NewFromFloat(m.InterestRate).String())

	if m.InterestPayments != nil {
		fmt.Fprintf(w, "Interest payments: %s/yr, %s/mo\n",
			money(m.InterestPayments.Yearly), money(m.InterestPayments.Monthly))
		return nil
	}

	fmt.Fprintf(w, "Monthly repayment: %s\n", money(m.MonthlyRepayment))
	fmt.Fprintf(w, "Total paid:        %s\n", money(m.TotalPaid))
	fmt.Fprintf(w, "Total interest:    %s\n", money(m.TotalInterest))
	return nil
}
