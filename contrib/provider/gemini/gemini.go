package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/studymate-ai/studymate/llm"
	"github.com/studymate-ai/studymate/message"
)

// Config holds Gemini provider configuration
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int32
	Temperature float32
}

// DefaultConfig returns default Gemini configuration
func DefaultConfig(apiKey string) *Config {
	return &Config{
		APIKey:      apiKey,
		Model:       "gemini-1.5-flash",
		MaxTokens:   2048,
		Temperature: 0.1,
	}
}

// Provider implements the llm.Client interface for Google Gemini
type Provider struct {
	config *Config
	client *genai.Client
}

var _ llm.Client = (*Provider)(nil)

// New creates a new Gemini provider using the official SDK
func New(ctx context.Context, config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig("")
	}
	if config.Model == "" {
		config.Model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Provider{
		config: config,
		client: client,
	}, nil
}

// Generate implements llm.Client
func (p *Provider) Generate(ctx context.Context, messages []*message.Message) (*message.Message, error) {
	model := p.client.GenerativeModel(p.config.Model)
	model.SetTemperature(p.config.Temperature)
	if p.config.MaxTokens > 0 {
		model.SetMaxOutputTokens(p.config.MaxTokens)
	}

	var systemParts []genai.Part
	var userParts []genai.Part
	for _, msg := range messages {
		switch msg.Role {
		case message.RoleSystem:
			systemParts = append(systemParts, genai.Text(msg.Content))
		default:
			userParts = append(userParts, genai.Text(msg.Content))
		}
	}
	if len(systemParts) > 0 {
		model.SystemInstruction = &genai.Content{Parts: systemParts}
	}
	if len(userParts) == 0 {
		return nil, fmt.Errorf("no user content to send")
	}

	resp, err := model.GenerateContent(ctx, userParts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return message.NewMessage(message.RoleAssistant, text.String()), nil
}

// SetTemperature updates the temperature setting for generation
func (p *Provider) SetTemperature(temp float64) {
	p.config.Temperature = float32(temp)
}

// SetMaxTokens updates the maximum tokens limit for generation
func (p *Provider) SetMaxTokens(max int64) {
	p.config.MaxTokens = int32(max)
}

// SetModel updates the model to use for generation
func (p *Provider) SetModel(model string) {
	p.config.Model = model
}

// Close releases the underlying API client.
func (p *Provider) Close() error {
	return p.client.Close()
}
