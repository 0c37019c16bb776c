package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"payroll/internal/config"
	"payroll/internal/domain"
	"payroll/internal/parser"
	"payroll/internal/port"
)

const defaultModel = "gemini-2.0-flash"

// Extractor implements port.RosterExtractor using the Google GenAI SDK.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a Gemini-based extractor. BaseURL overrides the API host (for
// gateways and tests).
func NewExtractor(ctx context.Context, cfg *config.ParserProviderConfig) (*Extractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Extractor{client: client, model: model}, nil
}

// Factory adapts NewExtractor to parser.ProviderFactory.
func Factory(cfg *config.ParserProviderConfig) (port.RosterExtractor, error) {
	return NewExtractor(context.Background(), cfg)
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	if _, ok := domain.AllowedImageTypes[input.ContentType]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, input.ContentType)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(input.ImageBytes, input.ContentType),
		}, genai.RoleUser),
	}
	gc := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(parser.RosterPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.1),
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, gc)
	if err != nil {
		if code := apiErrorCode(err); code == http.StatusTooManyRequests {
			return nil, parser.NewRateLimitError("gemini", fmt.Errorf("gemini API error: %w", err), 0)
		}
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return nil, fmt.Errorf("output truncated (finish_reason: MAX_TOKENS)")
	}

	text := resp.Text()
	if text == "" {
		text = "[]"
	}
	return &port.ExtractOutput{
		RawText:    text,
		ModelUsed:  e.model,
		PromptUsed: parser.RosterPrompt,
	}, nil
}

func apiErrorCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code
	}
	return 0
}
