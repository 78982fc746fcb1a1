package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/cloud-ru/mcp-compound-go/internal/scenario"
	"github.com/spf13/cobra"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios [file]",
	Short: "Пакетный расчет сценариев из YAML",
	Long: `Рассчитывает все проекции и ипотеки из YAML-файла сценариев.
Без аргумента используется SCENARIO_FILE из конфигурации.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		printError("сценарии", err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	path := cfg.ScenarioFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		err := errors.New("не задан файл сценариев (аргумент или SCENARIO_FILE)")
		printError("сценарии", err)
		return err
	}

	f, err := scenario.Load(path)
	if err != nil {
		printError("сценарии", err)
		return err
	}

	failed := renderOutcomes(cmd.OutOrStdout(), scenario.Run(cfg, f, logger))
	if failed > 0 {
		return fmt.Errorf("%d scenario(s) failed", failed)
	}
	return nil
}

// renderOutcomes печатает результаты сценариев и возвращает число ошибок
func renderOutcomes(w io.Writer, outcomes []scenario.Outcome) int {
	failed := 0
	for _, out := range outcomes {
		fmt.Fprintf(w, "== %s\n", out.Name)
		switch {
		case out.Err != nil:
			failed++
			fmt.Fprintf(w, "error: %v\n", out.Err)
		case out.Projection != nil:
			if err := renderProjection(w, out.Projection); err != nil {
				failed++
				fmt.Fprintf(w, "error: %v\n", err)
			}
		case out.Mortgage != nil:
			_ = renderMortgage(w, out.Mortgage)
		}
		fmt.Fprintln(w)
	}
	return failed
}
