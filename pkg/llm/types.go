package llm

import (
	"github.com/kriti1799/Resume-Builder/pkg/profile"
)

// ExtractionResult represents one turn of the conversational extraction.
type ExtractionResult struct {
	Profile profile.CandidateProfile `json:"profile"`

	// AssistantMessage is a short conversational reply ending with exactly
	// one question, or empty when the extractor has nothing left to ask.
	AssistantMessage string `json:"assistant_message,omitempty"`

	// RemainingQuestionsCount is the extractor's advisory estimate of
	// outstanding gaps. 0 when complete.
	RemainingQuestionsCount int `json:"remaining_questions_count"`

	// CurrentFocusField is the top-level profile key being probed.
	CurrentFocusField string `json:"current_focus_field,omitempty"`

	// IsComplete is the extractor's own completeness judgment. The engine
	// treats it as advisory and applies its own turn budget on top.
	IsComplete bool `json:"is_complete"`
}

// ClaudeRequest represents the Claude API request format.
type ClaudeRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// ClaudeResponse represents the Claude API response format.
type ClaudeResponse struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Role    string    `json:"role"`
	Content []Content `json:"content"`
	Model   string    `json:"model"`
	Usage   Usage     `json:"usage"`
}

// Message represents a message in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Content represents content in the response.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Usage represents token usage information.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
