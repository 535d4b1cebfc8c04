package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"storydesk/internal/apperr"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4o,
		modelName: "gpt-4o",
	}
}

func (c *OpenAIClient) Generate(input ArticleInput) (*GeneratedArticle, error) {
	return c.complete(articleSystemPrompt, buildArticlePrompt(input))
}

func (c *OpenAIClient) Revise(title string, content []string, notes string) (*GeneratedArticle, error) {
	return c.complete(revisionSystemPrompt, buildRevisionPrompt(title, content, notes))
}

func (c *OpenAIClient) complete(system, user string) (*GeneratedArticle, error) {
	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("%w: openai API error: %v", apperr.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response from openai", apperr.ErrUpstream)
	}

	return parseArticle(cleanJSONResponse(resp.Choices[0].Message.Content), c.modelName)
}

func parseArticle(content, modelName string) (*GeneratedArticle, error) {
	var parsed struct {
		Title   string   `json:"title"`
		Content []string `json:"content"`
	}

	err := json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse article response: %v, content: %s", apperr.ErrUpstream, err, content)
	}

	if parsed.Title == "" || len(parsed.Content) == 0 {
		return nil, fmt.Errorf("%w: article response missing title or content", apperr.ErrUpstream)
	}

	return &GeneratedArticle{
		Title:         parsed.Title,
		Content:       parsed.Content,
		ModelUsed:     modelName,
		PromptVersion: promptVersion,
	}, nil
}
