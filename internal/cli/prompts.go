package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/kephothoX/SokoAnalyst/internal/tools"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.=-]+$`)

// PromptForSymbols prompts for a comma or space separated symbol list
func PromptForSymbols() ([]string, error) {
	var input string
	prompt := &survey.Input{
		Message: "Enter symbols (e.g. AAPL, BTC-USD, EURUSD=X):",
		Help:    "Separate multiple symbols with commas or spaces",
	}

	err := survey.AskOne(prompt, &input, survey.WithValidator(func(val interface{}) error {
		symbols := splitSymbols(val.(string))
		if len(symbols) == 0 {
			return fmt.Errorf("enter at least one symbol")
		}
		for _, symbol := range symbols {
			if len(symbol) > 12 {
				return fmt.Errorf("symbol %q too long (max 12 characters)", symbol)
			}
			if !symbolPattern.MatchString(symbol) {
				return fmt.Errorf("invalid symbol %q (use letters, numbers, dots, hyphens)", symbol)
			}
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}

	return splitSymbols(input), nil
}

func splitSymbols(input string) []string {
	fields := strings.FieldsFunc(strings.ToUpper(input), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	symbols := make([]string, 0, len(fields))
	for _, field := range fields {
		if field != "" {
			symbols = append(symbols, field)
		}
	}
	return symbols
}

// PromptForMarket prompts for a market category
func PromptForMarket() (string, error) {
	var market string
	prompt := &survey.Select{
		Message: "Select market:",
		Options: []string{"stocks", "crypto", "forex", "indices", "commodities"},
		Default: "stocks",
	}
	err := survey.AskOne(prompt, &market)
	return market, err
}

// PromptForIndicators prompts for the indicators to compute
func PromptForIndicators() ([]string, error) {
	var selected []string
	options := tools.SupportedIndicators()
	prompt := &survey.MultiSelect{
		Message: "Select indicators:",
		Options: options,
		Default: options,
		Help:    "Use space to toggle, enter to confirm",
	}
	err := survey.AskOne(prompt, &selected)
	return selected, err
}

// PromptForQuestion prompts for a free-form question or query
func PromptForQuestion() (string, error) {
	var question string
	prompt := &survey.Input{
		Message: "Enter your question:",
	}
	err := survey.AskOne(prompt, &question, survey.WithValidator(survey.Required))
	return strings.TrimSpace(question), err
}
