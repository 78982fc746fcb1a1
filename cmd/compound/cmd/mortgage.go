package cmd

import (
	"github.com/cloud-ru/mcp-compound-go/internal/calculations"
	"github.com/cloud-ru/mcp-compound-go/internal/validators"
	"github.com/spf13/cobra"
)

var mortgageFlags struct {
	homeValue    float64
	deposit      float64
	interestRate float64
	years        int
	mortgageType string
	asJSON       bool
}

var mortgageCmd = &cobra.Command{
	Use:   "mortgage",
	Short: "Расчет ипотеки",
	Long: `Рассчитывает ежемесячный платеж по ипотеке (repayment) или
процентные платежи без погашения тела (interestOnly).

Пример:
  compound mortgage --home-value 150000 --deposit 15000 --rate 6 --years 25`,
	RunE: runMortgage,
}

func init() {
	f := mortgageCmd.Flags()
	f.Float64Var(&mortgageFlags.homeValue, "home-value", 0, "Стоимость жилья")
	f.Float64Var(&mortgageFlags.deposit, "deposit", 0, "Первоначальный взнос")
	f.Float64Var(&mortgageFlags.interestRate, "rate", 0, "Годовая ставка в процентах")
	f.IntVar(&mortgageFlags.years, "years", 25, "Срок в годах")
	f.StringVar(&mortgageFlags.mortgageType, "type", string(calculations.MortgageRepayment), "Тип ипотеки (repayment, interestOnly)")
	f.BoolVar(&mortgageFlags.asJSON, "json", false, "Вывести результат в JSON")
	rootCmd.AddCommand(mortgageCmd)
}

func runMortgage(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		printError("ипотека", err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	mortgage := calculations.MortgageOptions{
		HomeValue:    mortgageFlags.homeValue,
		Deposit:      mortgageFlags.deposit,
		InterestRate: mortgageFlags.interestRate,
		Years:        mortgageFlags.years,
	}
	if err := validators.CheckMortgage(cfg, mortgage); err != nil {
		printError("ипотека", err)
		return err
	}

	result, err := calculations.MortgageCalculator(mortgage, calculations.MortgageType(mortgageFlags.mortgageType))
	if err != nil {
		printError("ипотека", err)
		return err
	}
	if err := validators.CheckMortgageResult(result); err != nil {
		printError("ипотека", err)
		return err
	}

	if mortgageFlags.asJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	return renderMortgage(cmd.OutOrStdout(), result)
}
