package agent

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
	"github.com/kephothoX/SokoAnalyst/internal/config"
	"github.com/kephothoX/SokoAnalyst/internal/tools"
)

const systemPrompt = `You are SokoAnalyst, a financial markets analyst covering global equities,
crypto, forex, commodities, and emerging markets.

Use the provided tools to ground every answer in data. Fetch quotes before
quoting prices, compute indicators before making technical calls, and cite
sources when intelligence tools return them. When a tool is temporarily
unavailable, say so and work with what the remaining tools provide.

Structure answers with a short summary first, then key points, then detail.
Always state the risks alongside any opportunity.`

// Analyst wraps a ReAct agent over the full analytical toolset.
type Analyst struct {
	agent *react.Agent
	cfg   *config.Config
}

// NewAnalyst builds the agent for the configured LLM provider.
func NewAnalyst(ctx context.Context, cfg *config.Config) (*Analyst, error) {
	chatModel, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	agent, err := react.NewAgent(ctx, &react.AgentConfig{
		MaxStep:          40,
		ToolCallingModel: chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: tools.AllTools(cfg),
		},
		StreamToolCallChecker: toolCallChecker,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create analyst agent: %w", err)
	}

	return &Analyst{agent: agent, cfg: cfg}, nil
}

// Ask runs one analysis turn and returns the final message.
func (a *Analyst) Ask(ctx context.Context, question string) (*schema.Message, error) {
	return a.agent.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(question),
	})
}

// Stream runs one analysis turn, streaming the final answer.
func (a *Analyst) Stream(ctx context.Context, question string) (*schema.StreamReader[*schema.Message], error) {
	return a.agent.Stream(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(question),
	})
}

// NewChatModel creates the tool-calling chat model for cfg.LLMProvider.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.ToolCallingChatModel, error) {
	switch cfg.LLMProvider {
	case "deepseek":
		chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     cfg.DeepThinkLLM,
			MaxTokens: 8192,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create DeepSeek model: %w", err)
		}
		return chatModel, nil
	case "openai":
		maxTokens := 8192
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   cfg.BackendURL,
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.QuickThinkLLM,
			MaxTokens: &maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI model: %w", err)
		}
		return chatModel, nil
	}
	return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
}

// toolCallChecker reports whether the streamed response carries tool calls.
// Some providers only attach tool calls after a few content chunks, so the
// whole stream is scanned.
func toolCallChecker(ctx context.Context, sr *schema.StreamReader[*schema.Message]) (bool, error) {
	defer sr.Close()
	for {
		msg, err := sr.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		if len(msg.ToolCalls) > 0 {
			return true, nil
		}
	}
}
