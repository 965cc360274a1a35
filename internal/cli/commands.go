package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kephothoX/SokoAnalyst/internal/agent"
	"github.com/kephothoX/SokoAnalyst/internal/config"
	"github.com/kephothoX/SokoAnalyst/internal/dataflows"
	"github.com/kephothoX/SokoAnalyst/internal/display"
	"github.com/kephothoX/SokoAnalyst/internal/models"
	"github.com/kephothoX/SokoAnalyst/internal/tools"
)

// newAskCmd creates the free-form analyst command
func newAskCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "analyze [QUESTION]",
		Aliases: []string{"ask"},
		Short:   "Ask the AI analyst a market question",
		Long: `Run the full agent over a free-form market question. The agent decides
which tools to call: quotes, indicators, sentiment, portfolio analysis, or research.
Example: sokoanalyst analyze "Is NVDA overextended after the latest run-up?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cfg, strings.Join(args, " "))
		},
	}
}

func runAsk(cfg *config.Config, question string) error {
	ctx := context.Background()
	analyst, err := agent.NewAnalyst(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Println("🔍 Analyzing...")
	msg, err := analyst.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	fmt.Println(msg.Content)
	return nil
}

// newQuoteCmd creates the quote command
func newQuoteCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [SYMBOLS...]",
		Short: "Fetch real-time quotes for one or more symbols",
		Long: `Fetch real-time market data for the given symbols.
Example: sokoanalyst quote AAPL MSFT BTC-USD --market=stocks`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, _ := cmd.Flags().GetString("market")
			resp := tools.MarketDataReport(context.Background(), cfg, models.MarketDataInput{
				Symbols: args,
				Market:  market,
			})
			display.Print(*resp)
			saveToHistory(cfg, models.ToolMarketData, args, *resp)
			return nil
		},
	}
	cmd.Flags().String("market", "stocks", "Market category: stocks, crypto, forex, indices, commodities")
	return cmd
}

// newTechnicalCmd creates the technical analysis command
func newTechnicalCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "technical [SYMBOL]",
		Short: "Compute technical indicators for a symbol",
		Long: `Compute technical indicators over daily price history.
Example: sokoanalyst technical AAPL --indicators=rsi,macd,bollinger`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indicators, _ := cmd.Flags().GetStringSlice("indicators")
			resp := tools.TechnicalAnalysisReport(context.Background(), cfg, models.TechnicalAnalysisInput{
				Symbol:     args[0],
				Indicators: indicators,
			})
			display.Print(*resp)
			saveToHistory(cfg, models.ToolTechnicalAnalysis, args[:1], *resp)
			return nil
		},
	}
	cmd.Flags().StringSlice("indicators", nil, "Indicators to compute: "+strings.Join(tools.SupportedIndicators(), ", "))
	return cmd
}

// newSentimentCmd creates the sentiment command
func newSentimentCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentiment [SYMBOLS...]",
		Short: "Score market sentiment for symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, _ := cmd.Flags().GetStringSlice("sources")
			resp := tools.SentimentReport(context.Background(), cfg, models.SentimentInput{
				Symbols: args,
				Sources: sources,
			})
			display.Print(*resp)
			saveToHistory(cfg, models.ToolMarketSentiment, args, *resp)
			return nil
		},
	}
	cmd.Flags().StringSlice("sources", nil, "Sentiment sources: news, social, technical, fundamental")
	return cmd
}

// newNewsCmd creates the news command
func newNewsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news [QUERY]",
		Short: "Fetch recent financial news headlines",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if articleURL, _ := cmd.Flags().GetString("url"); articleURL != "" {
				return runNewsURL(cfg, articleURL)
			}
			if len(args) == 0 {
				return fmt.Errorf("provide a search query or --url")
			}
			limit, _ := cmd.Flags().GetInt("limit")
			return runNews(cfg, strings.Join(args, " "), limit)
		},
	}
	cmd.Flags().Int("limit", 10, "Maximum number of headlines")
	cmd.Flags().String("url", "", "Fetch a single article by URL instead of searching")
	return cmd
}

func runNews(cfg *config.Config, query string, limit int) error {
	scraper := dataflows.NewNewsScraperClient(cfg)
	articles, err := scraper.GetGoogleNews(dataflows.GoogleNewsParams{
		Query:      query,
		MaxResults: limit,
	}, cfg)
	if err != nil {
		return fmt.Errorf("news fetch failed: %w", err)
	}

	if len(articles) == 0 {
		fmt.Println("No recent news found for", query)
		return nil
	}

	fmt.Printf("📰 Recent news for %q:\n\n", query)
	for _, article := range articles {
		fmt.Printf("  • %s\n", article.Title)
		if article.Source != "" {
			fmt.Printf("    %s | %s\n", article.Source, article.PublishedAt.Format("2006-01-02"))
		}
	}
	return nil
}

func runNewsURL(cfg *config.Config, articleURL string) error {
	scraper := dataflows.NewNewsScraperClient(cfg)
	article, err := scraper.GetNewsFromURL(articleURL)
	if err != nil {
		return fmt.Errorf("article fetch failed: %w", err)
	}

	fmt.Printf("📰 %s\n", article.Title)
	fmt.Printf("   %s | %s\n\n", article.Source, article.PublishedAt.Format("2006-01-02"))
	body := article.Content
	if len(body) > 1200 {
		body = body[:1200] + "…"
	}
	if body != "" {
		fmt.Println(body)
	}
	return nil
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.NewManager(config.WithInitialConfig(cfg))
			if err != nil {
				return fmt.Errorf("failed to initialize config file: %w", err)
			}
			fmt.Printf("✅ Configuration written to %s\n", mgr.Path())
			return nil
		},
	})

	return configCmd
}

func showConfig(cfg *config.Config) error {
	shown := *cfg
	shown.PerplexityAPIKey = maskSecret(shown.PerplexityAPIKey)
	shown.OpenAIAPIKey = maskSecret(shown.OpenAIAPIKey)
	shown.DeepSeekAPIKey = maskSecret(shown.DeepSeekAPIKey)

	data, err := json.MarshalIndent(shown, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func validateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	fmt.Println("✅ Configuration is valid")
	if cfg.PerplexityAPIKey == "" {
		fmt.Println("⚠️  PERPLEXITY_API_KEY is not set, search tools will fall back to synthetic data")
	}
	switch cfg.LLMProvider {
	case "deepseek":
		if cfg.DeepSeekAPIKey == "" {
			fmt.Println("⚠️  DEEPSEEK_API_KEY is not set, the ask command will not work")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			fmt.Println("⚠️  OPENAI_API_KEY is not set, the ask command will not work")
		}
	}
	return nil
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		if secret == "" {
			return ""
		}
		return "****"
	}
	return secret[:4] + "****" + secret[len(secret)-4:]
}
