// Package scenario загружает наборы расчетов из YAML и выполняет их по очереди.
package scenario

import (
	"fmt"
	"os"

	"github.com/cloud-ru/mcp-compound-go/internal/calculations"
	"github.com/cloud-ru/mcp-compound-go/internal/config"
	"github.com/cloud-ru/mcp-compound-go/internal/validators"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Projection именованный расчет сложного процента
type Projection struct {
	Name    string               `yaml:"name"`
	Options calculations.Options `yaml:"options"`
}

// Mortgage именованный расчет ипотеки
type Mortgage struct {
	Name     string                       `yaml:"name"`
	Type     calculations.MortgageType    `yaml:"type"`
	Mortgage calculations.MortgageOptions `yaml:"mortgage"`
}

// File содержимое файла сценариев
type File struct {
	Projections []Projection `yaml:"projections"`
	Mortgages   []Mortgage   `yaml:"mortgages"`
}

// Outcome результат одного сценария; при ошибке результат не заполняется
type Outcome struct {
	Name       string
	Projection *calculations.Result
	Mortgage   *calculations.MortgageResult
	Err        error
}

// Load читает файл сценариев
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios: %w", err)
	}
	return Parse(data)
}

// Parse разбирает YAML со сценариями
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(f.Projections) == 0 && len(f.Mortgages) == 0 {
		return nil, fmt.Errorf("parse scenarios: файл не содержит сценариев")
	}
	for i, p := range f.Projections {
		if p.Name == "" {
			f.Projections[i].Name = fmt.Sprintf("projection-%d", i+1)
		}
	}
	for i, m := range f.Mortgages {
		if m.Name == "" {
			f.Mortgages[i].Name = fmt.Sprintf("mortgage-%d", i+1)
		}
	}
	return &f, nil
}

// Run выполняет все сценарии: сначала расчеты сложного процента, затем ипотеки.
// Ошибка одного сценария не останавливает остальные.
func Run(cfg *config.Config, f *File, logger *zap.Logger) []Outcome {
	outcomes := make([]Outcome, 0, len(f.Projections)+len(f.Mortgages))

	for _, p := range f.Projections {
		out := Outcome{Name: p.Name}
		if err := validators.CheckOptions(cfg, p.Options); err != nil {
			out.Err = err
		} else if result, err := calculations.CompoundInterestPerPeriod(p.Options); err != nil {
			out.Err = err
		} else if err := validators.CheckResult(cfg, result); err != nil {
			out.Err = err
		} else {
			out.Projection = result
		}
		logOutcome(logger, out)
		outcomes = append(outcomes, out)
	}

	for _, m := range f.Mortgages {
		out := Outcome{Name: m.Name}
		if err := validators.CheckMortgage(cfg, m.Mortgage); err != nil {
			out.Err = err
		} else if result, err := calculations.MortgageCalculator(m.Mortgage, m.Type); err != nil {
			out.Err = err
		} else if err := validators.CheckMortgageResult(result); err != nil {
			out.Err = err
		} else {
			out.Mortgage = result
		}
		logOutcome(logger, out)
		outcomes = append(outcomes, out)
	}

	return outcomes
}

func logOutcome(logger *zap.Logger, out Outcome) {
	if out.Err != nil {
		logger.Warn("scenario failed", zap.String("scenario", out.Name), zap.Error(out.Err))
		return
	}
	logger.Debug("scenario calculated", zap.String("scenario", out.Name))
}
