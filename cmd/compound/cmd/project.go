package cmd

import (
	"errors"

	"github.com/cloud-ru/mcp-compound-go/internal/calculations"
	"github.com/cloud-ru/mcp-compound-go/internal/validators"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var projectFlags struct {
	investmentType   string
	principal        float64
	rate             float64
	years            int
	paymentsPerAnnum int
	amountPerAnnum   float64
	accrual          bool
	position         int
	debtRate         float64
	debtType         string
	asJSON           bool
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Проекция инвестиции по годам",
	Long: `Рассчитывает матрицу процентов по периодам и итоговые показатели.

Примеры:
  compound project --principal 500 --rate 3.4 --years 2 --payments-per-annum 12
  compound project --principal 250000 --rate 5 --years 25 --amount-per-annum 7000 --position 5
  compound project --principal 240000 --rate 5 --years 30 --debt-rate 5 --debt-type repayment`,
	RunE: runProject,
}

func init() {
	f := projectCmd.Flags()
	f.StringVar(&projectFlags.investmentType, "type", "", "Тип инвестиции (lumpSum, contribution, debtRepayment); по умолчанию определяется автоматически")
	f.Float64Var(&projectFlags.principal, "principal", 0, "Начальная сумма")
	f.Float64Var(&projectFlags.rate, "rate", 0, "Годовая ставка в процентах")
	f.IntVar(&projectFlags.years, "years", 1, "Срок в годах")
	f.IntVar(&projectFlags.paymentsPerAnnum, "payments-per-annum", 1, "Периодов в году")
	f.Float64Var(&projectFlags.amountPerAnnum, "amount-per-annum", 0, "Взносы в год")
	f.BoolVar(&projectFlags.accrual, "accrual", false, "Начислять проценты на взносы внутри года")
	f.IntVar(&projectFlags.position, "position", 0, "Текущий год для currentBalance (0 - последний год)")
	f.Float64Var(&projectFlags.debtRate, "debt-rate", 0, "Ставка по долгу в процентах")
	f.StringVar(&projectFlags.debtType, "debt-type", "", "Тип погашения долга (interestOnly, repayment)")
	f.BoolVar(&projectFlags.asJSON, "json", false, "Вывести результат в JSON")
	rootCmd.AddCommand(projectCmd)
}

// projectOptions собирает параметры проекции из флагов
func projectOptions() (calculations.Options, error) {
	if projectFlags.debtRate != 0 && projectFlags.debtType == "" {
		return calculations.Options{}, errors.New("--debt-rate задан без --debt-type (interestOnly или repayment)")
	}

	opts := calculations.Options{
		Type:                      calculations.InvestmentType(projectFlags.investmentType),
		Principal:                 projectFlags.principal,
		Rate:                      projectFlags.rate,
		Years:                     projectFlags.years,
		PaymentsPerAnnum:          projectFlags.paymentsPerAnnum,
		AmountPerAnnum:            projectFlags.amountPerAnnum,
		AccrualOfPaymentsPerAnnum: projectFlags.accrual,
	}
	if projectFlags.position > 0 {
		position := projectFlags.position
		opts.CurrentPositionInYears = &position
	}
	if projectFlags.debtType != "" {
		opts.DebtRepayment = &calculations.DebtRepaymentOptions{
			InterestRate: projectFlags.debtRate,
			Type:         calculations.DebtRepaymentType(projectFlags.debtType),
		}
	}
	return opts, nil
}

func runProject(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		printError("проекция", err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts, err := projectOptions()
	if err != nil {
		printError("проекция", err)
		return err
	}
	if err := validators.CheckOptions(cfg, opts); err != nil {
		printError("проекция", err)
		return err
	}

	result, err := calculations.CompoundInterestPerPeriod(opts)
	if err != nil {
		printError("проекция", err)
		return err
	}
	if err := validators.CheckResult(cfg, result); err != nil {
		printError("проекция", err)
		return err
	}

	logger.Debug("projection calculated",
		zap.String("investment_type", string(result.InvestmentType)),
		zap.Int("years", result.Years),
		zap.Float64("end_balance", result.EndBalance),
	)

	if projectFlags.asJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	return renderProjection(cmd.OutOrStdout(), result)
}
