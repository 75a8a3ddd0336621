package llm

import (
	"context"
	"fmt"

	"github.com/conneroisu/groq-go"

	"dewi/internal/script"
	"dewi/pkg/prompts"
)

type GroqGenerator struct {
	client  *groq.Client
	model   groq.ChatModel
	prompts *prompts.Prompts
}

func NewGroqGenerator(apiKey, model string, p *prompts.Prompts) (*GroqGenerator, error) {
	client, err := groq.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	return &GroqGenerator{
		client:  client,
		model:   groq.ChatModel(model),
		prompts: p,
	}, nil
}

func (g *GroqGenerator) Available() bool {
	return g.client != nil
}

func (g *GroqGenerator) GenerateScript(ctx context.Context, factText, vibe string) (*script.Script, error) {
	prompt, err := g.prompts.RenderScript(prompts.ScriptParams{
		Fact:  factText,
		Vibe:  vibe,
		Style: StyleFor(vibe),
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	content, err := g.generate(ctx, g.prompts.System.Script, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := script.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return parsed, nil
}

func (g *GroqGenerator) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: g.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleSystem, Content: systemPrompt},
			{Role: groq.RoleUser, Content: userPrompt},
		},
		ResponseFormat: &groq.ChatResponseFormat{
			Type: "json_object",
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response")
	}

	return content, nil
}
