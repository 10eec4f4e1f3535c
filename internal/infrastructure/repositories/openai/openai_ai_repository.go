package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	goopenai "github.com/sashabaranov/go-openai"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
)

const secondsPerMinute = 60

const systemPrompt = "You are a strict validator. You are given a CONDITION and a BLOCK. " +
	"If the BLOCK satisfies the CONDITION, reply with exactly: OK. " +
	"If it violates, reply ONLY with a short, meaningful, and actionable error message " +
	"that explains what is wrong and how to fix it."

// AIRepository checks conditions with an OpenAI-compatible chat completion API.
// The client is created on first use so runs without check-ai blocks need no API key.
type AIRepository struct {
	settings *entities.Settings

	once    sync.Once
	client  *goopenai.Client
	limiter *rate.Limiter
	initErr error
}

var _ repositories.AIRepository = (*AIRepository)(nil)

// NewAIRepository creates an AIRepository configured from settings.
func NewAIRepository(settings *entities.Settings) *AIRepository {
	return &AIRepository{settings: settings}
}

// Check sends the condition and the content to the model. Any reply other than
// "OK" is returned as the violation message.
func (it *AIRepository) Check(ctx context.Context, condition, content string) (string, error) {
	it.once.Do(it.init)
	if it.initErr != nil {
		return "", it.initErr
	}

	if err := it.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	logger.Debugf("Checking AI condition with model %q", it.settings.AI.Model)
	resp, err := it.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: it.settings.AI.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: UserPrompt(condition, content)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if IsApproval(reply) {
		return "", nil
	}
	if reply == "" {
		return "", errors.New("chat completion returned an empty reply")
	}
	return reply, nil
}

func (it *AIRepository) init() {
	if it.settings.AI.APIKey == "" {
		it.initErr = errors.New("API key is not set, export BLOCKWATCH_AI_API_KEY")
		return
	}
	config := goopenai.DefaultConfig(it.settings.AI.APIKey)
	if it.settings.AI.URL != "" {
		config.BaseURL = it.settings.AI.URL
	}
	it.client = goopenai.NewClientWithConfig(config)

	it.limiter = rate.NewLimiter(rate.Inf, 1)
	if rpm := it.settings.AI.RequestsPerMinute; rpm > 0 {
		it.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/secondsPerMinute), 1)
	}
}

// UserPrompt formats the user message sent for a block.
func UserPrompt(condition, content string) string {
	return "CONDITION:\n" + condition + "\n\nBLOCK (formatting preserved):\n" + content
}

// IsApproval reports whether a reply means the condition holds.
func IsApproval(reply string) bool {
	return strings.EqualFold(strings.TrimSuffix(strings.TrimSpace(reply), "."), "OK")
}
