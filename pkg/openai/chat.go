package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

type IChatGPT interface {
	Generate(ctx context.Context, userQuery string, industry string, chatbotName string) (string, error)
	EnhanceResponse(ctx context.Context, trigger string, response string, industry string) (string, error)
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

func NewChatGPT() IChatGPT {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &chatGPTService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Generate answers a widget visitor when no trigger rule covered the
// question. Errors bubble up; the interaction pipeline substitutes its own
// apology text.
func (c *chatGPTService) Generate(ctx context.Context, userQuery string, industry string, chatbotName string) (string, error) {
	if chatbotName == "" {
		chatbotName = "Assistant"
	}

	systemPrompt := fmt.Sprintf(`You are %s, a friendly and helpful customer service chatbot for a %s business.
Provide concise, accurate, and helpful answers to customer questions.
If you don't know something specific about the business, provide general information that would be helpful.
Keep responses under 100 words and maintain a friendly, professional tone.`, chatbotName, industry)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userQuery,
				},
			},
			Temperature: 0.7,
			MaxTokens:   150,
		},
	)
	if err != nil {
		return "", fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from ChatGPT")
	}

	return resp.Choices[0].Message.Content, nil
}

// EnhanceResponse rewrites an owner-authored reply in a more natural tone
// without changing its information. On provider failure the original text is
// returned unchanged so the editor never loses the draft.
func (c *chatGPTService) EnhanceResponse(ctx context.Context, trigger string, response string, industry string) (string, error) {
	systemPrompt := fmt.Sprintf(`You are an expert %s customer service assistant.
Your job is to enhance customer service responses to make them more helpful,
natural, and engaging while maintaining the same information.`, industry)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("Enhance this response to the trigger question/phrase: %q\n\nOriginal response: %q", trigger, response),
				},
			},
			Temperature: 0.7,
			MaxTokens:   300,
		},
	)
	if err != nil {
		return response, err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return response, nil
	}

	return resp.Choices[0].Message.Content, nil
}
