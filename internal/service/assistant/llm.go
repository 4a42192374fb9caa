package assistant

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/issac8080/aurashop/internal/config"
)

// LLM wraps the Ark-backed chat chain used when credentials are configured.
// The chain is prompt template -> chat model, compiled once at startup.
type LLM struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewLLM builds and compiles the response chain.
func NewLLM(ctx context.Context, cfg config.AIConfig) (*LLM, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile chat chain: %w", err)
	}
	return &LLM{chain: runnable}, nil
}

// Stream runs the chain and returns the token stream.
func (l *LLM) Stream(ctx context.Context, system string, history []*schema.Message, query string) (*schema.StreamReader[*schema.Message], error) {
	return l.chain.Stream(ctx, map[string]any{
		"system":  system,
		"history": history,
		"query":   query,
	})
}
