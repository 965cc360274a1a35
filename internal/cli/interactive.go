package cli

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/kephothoX/SokoAnalyst/internal/config"
	"github.com/kephothoX/SokoAnalyst/internal/display"
	"github.com/kephothoX/SokoAnalyst/internal/models"
	"github.com/kephothoX/SokoAnalyst/internal/tools"
)

const (
	actionAsk       = "Ask the AI analyst"
	actionQuote     = "Fetch quotes"
	actionTechnical = "Technical analysis"
	actionSentiment = "Sentiment analysis"
	actionNews      = "Latest news"
	actionConfig    = "Show configuration"
	actionExit      = "Exit"
)

// runInteractiveMode drives the menu-based session
func runInteractiveMode(cfg *config.Config) error {
	DisplayWelcomeBanner()

	for {
		var action string
		prompt := &survey.Select{
			Message: "What would you like to do?",
			Options: []string{
				actionAsk, actionQuote, actionTechnical,
				actionSentiment, actionNews, actionConfig, actionExit,
			},
		}
		if err := survey.AskOne(prompt, &action); err != nil {
			return err
		}

		var err error
		switch action {
		case actionAsk:
			err = interactiveAsk(cfg)
		case actionQuote:
			err = interactiveQuote(cfg)
		case actionTechnical:
			err = interactiveTechnical(cfg)
		case actionSentiment:
			err = interactiveSentiment(cfg)
		case actionNews:
			err = interactiveNews(cfg)
		case actionConfig:
			err = showConfig(cfg)
		case actionExit:
			fmt.Println("👋 Thank you for using SokoAnalyst!")
			return nil
		}
		if err != nil {
			fmt.Printf("❌ %v\n", err)
		}
		fmt.Println()
	}
}

func interactiveAsk(cfg *config.Config) error {
	question, err := PromptForQuestion()
	if err != nil {
		return err
	}
	return runAsk(cfg, question)
}

func interactiveQuote(cfg *config.Config) error {
	symbols, err := PromptForSymbols()
	if err != nil {
		return err
	}
	market, err := PromptForMarket()
	if err != nil {
		return err
	}
	resp := tools.MarketDataReport(context.Background(), cfg, models.MarketDataInput{
		Symbols: symbols,
		Market:  market,
	})
	display.Print(*resp)
	return nil
}

func interactiveTechnical(cfg *config.Config) error {
	symbols, err := PromptForSymbols()
	if err != nil {
		return err
	}
	indicators, err := PromptForIndicators()
	if err != nil {
		return err
	}
	for _, symbol := range symbols {
		resp := tools.TechnicalAnalysisReport(context.Background(), cfg, models.TechnicalAnalysisInput{
			Symbol:     symbol,
			Indicators: indicators,
		})
		display.Print(*resp)
	}
	return nil
}

func interactiveSentiment(cfg *config.Config) error {
	symbols, err := PromptForSymbols()
	if err != nil {
		return err
	}
	resp := tools.SentimentReport(context.Background(), cfg, models.SentimentInput{Symbols: symbols})
	display.Print(*resp)
	return nil
}

func interactiveNews(cfg *config.Config) error {
	query, err := PromptForQuestion()
	if err != nil {
		return err
	}
	return runNews(cfg, query, 10)
}
