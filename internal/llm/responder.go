package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"gopkg.in/yaml.v3"
)

// PromptSpec is the fallback responder's prompt, loaded from a YAML file so
// wording can change without a rebuild.
type PromptSpec struct {
	System string `yaml:"system"`
	Style  struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
}

// Responder answers general questions via the chat completion API.
type Responder struct {
	spec   PromptSpec
	client *openai.Client
	model  string
}

func Load(path string, client *openai.Client, model string) (*Responder, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt spec: %w", err)
	}
	var spec PromptSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("parse prompt spec: %w", err)
	}
	return &Responder{spec: spec, client: client, model: model}, nil
}

func (r *Responder) Respond(ctx context.Context, message string) (string, error) {
	temp := r.spec.Style.Temperature
	if temp <= 0 {
		temp = 0.7
	}
	maxTok := r.spec.Style.MaxTokens
	if maxTok <= 0 {
		maxTok = 300
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: temp,
		MaxTokens:   maxTok,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: r.spec.System},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
