package llm

import (
	"context"
	"fmt"

	"storydesk/internal/apperr"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaudeSonnet4_5,
		modelName: "claude-4.5-sonnet",
	}
}

func (c *AnthropicClient) Generate(input ArticleInput) (*GeneratedArticle, error) {
	return c.complete(articleSystemPrompt, buildArticlePrompt(input))
}

func (c *AnthropicClient) Revise(title string, content []string, notes string) (*GeneratedArticle, error) {
	return c.complete(revisionSystemPrompt, buildRevisionPrompt(title, content, notes))
}

func (c *AnthropicClient) complete(system, user string) (*GeneratedArticle, error) {
	resp, err := c.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("%w: anthropic API error: %v", apperr.ErrUpstream, err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("%w: no response from anthropic", apperr.ErrUpstream)
	}

	return parseArticle(cleanJSONResponse(resp.Content[0].Text), c.modelName)
}
