// Package agent exposes the catalog, cart, and delivery operations to a
// conversational model through OpenAI function calling. The model never
// touches storage or the delivery provider directly; every action goes
// through the same service interfaces the HTTP handlers use.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/config"
	"github.com/jayyu23/daNomNoms-monad/internal/repository"
	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

const systemPrompt = "You are a helpful assistant for the daNomNoms food " +
	"delivery service. You can help users browse restaurants, view menus, " +
	"build carts, create orders, and manage deliveries. Use the available " +
	"functions to interact with the service when needed. When a function " +
	"result contains an error (success: false or an error field), quote the " +
	"exact error message to the user instead of paraphrasing it away."

const (
	// maxToolRounds bounds how many completion/tool-call cycles one prompt
	// may trigger.
	maxToolRounds = 10
	// maxToolResultChars caps a single tool result fed back to the model.
	maxToolResultChars = 5000

	completionTemperature = 0.7
	completionMaxTokens   = 1000
)

// completionClient is the slice of the OpenAI API the service uses.
// Implemented by *openai.Client; faked in tests.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Reply is the outcome of one chat turn.
type Reply struct {
	Response string
	ThreadID string
}

type Service struct {
	client   completionClient
	model    string
	tools    []openai.Tool
	dispatch *dispatcher
	threads  *threadStore
	logger   *zap.Logger
}

// NewService creates the ordering agent. A missing API key does not fail
// construction; Chat reports the configuration error when called, so the
// rest of the API runs fine without OpenAI credentials.
func NewService(
	cfg config.OpenAIConfig,
	catalog repository.CatalogRepository,
	carts CartBuilder,
	deliveries DeliveryRequester,
	logger *zap.Logger,
) *Service {
	var client completionClient
	if cfg.APIKey != "" {
		client = openai.NewClient(cfg.APIKey)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		model:  cfg.Model,
		tools:  toolDefinitions(),
		dispatch: &dispatcher{
			catalog:    catalog,
			carts:      carts,
			deliveries: deliveries,
			logger:     logger,
		},
		threads: newThreadStore(),
		logger:  logger,
	}
}

// Chat runs one conversational turn: prompt in, assistant reply out, with as
// many tool-call rounds in between as the model asks for (bounded). An empty
// threadID starts a new conversation; the returned thread ID continues it.
func (s *Service) Chat(ctx context.Context, threadID, prompt string) (*Reply, error) {
	if s.client == nil {
		return nil, &errors.ErrAuthConfiguration{Reason: "OPEN_AI_API_KEY is not set"}
	}
	if prompt == "" {
		return nil, &errors.ErrValidation{
			Message: "prompt is required",
			Fields:  map[string]string{"prompt": "is required"},
		}
	}

	if threadID == "" {
		threadID = newThreadID()
	}
	history := s.threads.history(threadID)

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	messages = append(messages, history...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	var final string
	for round := 0; round < maxToolRounds; round++ {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       s.model,
			Messages:    messages,
			Tools:       s.tools,
			Temperature: completionTemperature,
			MaxTokens:   completionMaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("chat completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("chat completion returned no choices")
		}

		assistant := resp.Choices[0].Message
		messages = append(messages, assistant)

		if len(assistant.ToolCalls) == 0 {
			final = assistant.Content
			break
		}

		for _, call := range assistant.ToolCalls {
			s.logger.Info("Agent tool call",
				zap.String("thread_id", threadID),
				zap.String("tool", call.Function.Name),
			)
			result := s.dispatch.execute(ctx, call.Function.Name, call.Function.Arguments)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    marshalToolResult(result),
			})
		}
	}

	if final == "" {
		// The round budget ran out mid tool exchange; surface the last text
		// the assistant produced rather than nothing.
		for i := len(messages) - 1; i >= 0; i-- {
			if messages[i].Role == openai.ChatMessageRoleAssistant && messages[i].Content != "" {
				final = messages[i].Content
				break
			}
		}
	}
	if final == "" {
		final = "I was unable to complete that request."
	}

	// Persist everything except the system prompt, which is re-added per turn
	s.threads.save(threadID, messages[1:])

	return &Reply{Response: final, ThreadID: threadID}, nil
}

// marshalToolResult encodes a tool result for the model, truncating oversized
// payloads instead of blowing the context window.
func marshalToolResult(result interface{}) string {
	data, err := json.Marshal(result)
	if err != nil {
		data, _ = json.Marshal(toolError("failed to encode tool result: " + err.Error()))
	}
	s := string(data)
	if len(s) > maxToolResultChars {
		s = s[:maxToolResultChars] + `... [truncated]`
	}
	return s
}
