package port

import "context"

// ExtractInput carries one photographed roster or ID/bank document.
type ExtractInput struct {
	ImageBytes  []byte
	ContentType string
	FileName    string
}

// ExtractOutput is the raw model answer. RawText is untrusted and may be code-fenced.
type ExtractOutput struct {
	RawText    string
	ModelUsed  string
	PromptUsed string
}

// RosterExtractor abstracts a vision LLM call that reads worker records off an image.
type RosterExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
