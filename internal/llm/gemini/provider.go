package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aldisaputra17/chatbot-backend/internal/config"
	"github.com/aldisaputra17/chatbot-backend/internal/llm"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Provider talks to the Gemini API through a single client constructed at
// startup and shared across requests.
type Provider struct {
	client *genai.Client
	model  string
}

// NewProvider creates the shared Gemini client
func NewProvider(ctx context.Context, cfg config.GeminiConfig) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &Provider{client: client, model: model}, nil
}

func (p *Provider) Name() string {
	return "gemini"
}

// Close releases the underlying client
func (p *Provider) Close() error {
	return p.client.Close()
}

// Invoke sends the fragment list to Gemini and returns its reply as typed
// fragments.
func (p *Provider) Invoke(ctx context.Context, fragments []llm.Fragment) (llm.Reply, error) {
	parts := make([]genai.Part, 0, len(fragments))
	for _, f := range fragments {
		switch f.Kind {
		case llm.FragmentText:
			parts = append(parts, genai.Text(f.Text))
		case llm.FragmentImage:
			format, data, err := decodeDataURI(f.URI)
			if err != nil {
				return llm.Reply{}, fmt.Errorf("invalid image fragment: %w", err)
			}
			parts = append(parts, genai.ImageData(format, data))
		}
	}

	resp, err := p.client.GenerativeModel(p.model).GenerateContent(ctx, parts...)
	if err != nil {
		return llm.Reply{}, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return llm.Reply{}, fmt.Errorf("empty response from gemini")
	}

	var out []llm.Fragment
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out = append(out, llm.TextFragment(string(text)))
		}
	}

	return llm.Reply{Fragments: out}, nil
}

// decodeDataURI splits a data:image/...;base64,... URI into the image format
// expected by genai (subtype only, e.g. "png") and the decoded payload.
func decodeDataURI(uri string) (string, []byte, error) {
	meta, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI")
	}

	mime := strings.TrimPrefix(meta, "data:")
	mime = strings.TrimSuffix(mime, ";base64")
	format := strings.TrimPrefix(mime, "image/")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image payload: %w", err)
	}

	return format, data, nil
}
