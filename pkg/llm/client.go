package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/kriti1799/Resume-Builder/pkg/profile"
	"github.com/pkg/errors"
)

const (
	// ClaudeAPIEndpoint is the Anthropic API endpoint.
	ClaudeAPIEndpoint = "https://api.anthropic.com/v1/messages"
	// ClaudeModel is the model to use.
	ClaudeModel = "claude-sonnet-4-20250514"
	// ClaudeAPIVersion is the API version.
	ClaudeAPIVersion = "2023-06-01"
)

// Client represents a Claude API client. One long-lived instance holds the
// model configuration for all extraction and tailoring calls.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a new Claude API client.
func NewClient(apiKey, model string) (client *Client) {
	if model == "" {
		model = ClaudeModel // Default to Sonnet 4
	}
	client = &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: ClaudeAPIEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	return client
}

// Extract runs one turn of the conversational extraction: resume text plus
// the chat history so far in, updated profile and next question out.
func (c *Client) Extract(ctx context.Context, resumeText string, history []Message, current profile.CandidateProfile) (result ExtractionResult, err error) {
	prompt := buildExtractionPrompt(resumeText, history, current)

	var responseText string
	responseText, err = c.sendRequest(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "extraction request failed")
		return result, err
	}

	// Clean markdown code fences if present
	cleanedText := stripMarkdownCodeFences(responseText)

	// Parse JSON response, repairing malformed output if needed
	err = decodeJSON([]byte(cleanedText), &result)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse extraction response: %s", responseText)
		return result, err
	}

	return result, err
}

// Enhance rewrites profile content for a specific job description without
// inventing facts. Input and output are the profile's JSON encoding.
func (c *Client) Enhance(ctx context.Context, profileJSON []byte, jobDescription string) (enhancedJSON []byte, err error) {
	prompt := buildEnhancementPrompt(profileJSON, jobDescription)

	var responseText string
	responseText, err = c.sendRequest(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "enhancement request failed")
		return enhancedJSON, err
	}

	cleanedText := stripMarkdownCodeFences(responseText)

	// Validate the output is a JSON object, repairing if needed
	var parsed map[string]interface{}
	err = decodeJSON([]byte(cleanedText), &parsed)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse enhancement response: %s", responseText)
		return enhancedJSON, err
	}

	enhancedJSON, err = json.Marshal(parsed)
	if err != nil {
		err = errors.Wrap(err, "failed to re-marshal enhanced profile")
		return enhancedJSON, err
	}

	return enhancedJSON, err
}

// RenderTemplate fills the template's structural skeleton with the enhanced
// content and returns complete LaTeX source.
func (c *Client) RenderTemplate(ctx context.Context, enhancedJSON []byte, template string) (texSource string, err error) {
	prompt := buildRenderPrompt(enhancedJSON, template)

	var responseText string
	responseText, err = c.sendRequest(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "render request failed")
		return texSource, err
	}

	texSource = stripMarkdownCodeFences(responseText)
	if texSource == "" {
		err = errors.New("render response is empty")
		return texSource, err
	}

	return texSource, err
}

// Generate sends a free-form prompt and returns the raw text reply. Used by
// the upskill advisor, which manages its own prompt structure.
func (c *Client) Generate(ctx context.Context, prompt string) (responseText string, err error) {
	responseText, err = c.sendRequest(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "generation request failed")
		return responseText, err
	}
	return responseText, err
}

// sendRequest sends a request to Claude API.
func (c *Client) sendRequest(ctx context.Context, prompt string) (responseText string, err error) {
	// Build request
	claudeReq := ClaudeRequest{
		Model:     c.model,
		MaxTokens: 8192,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	var reqBody []byte
	reqBody, err = json.Marshal(claudeReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	// Create HTTP request
	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}

	// Set headers
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", ClaudeAPIVersion)

	// Send request
	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return responseText, err
	}
	defer resp.Body.Close()

	// Read response body
	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return responseText, err
	}

	// Check status code
	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return responseText, err
	}

	// Parse Claude response
	var claudeResp ClaudeResponse
	err = json.Unmarshal(respBody, &claudeResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse Claude response: %s", string(respBody))
		return responseText, err
	}

	// Extract text content
	if len(claudeResp.Content) == 0 {
		err = errors.New("no content in Claude response")
		return responseText, err
	}

	responseText = claudeResp.Content[0].Text

	return responseText, err
}

// stripMarkdownCodeFences removes markdown code fences from responses.
func stripMarkdownCodeFences(text string) (cleaned string) {
	cleaned = text

	// Check if text starts with ``` and ends with ```
	if len(cleaned) > 3 && cleaned[:3] == "```" {
		// Find first newline after the opening fence
		start := 3
		for start < len(cleaned) && cleaned[start] != '\n' {
			start++
		}
		start++ // skip the newline
		if start > len(cleaned) {
			return cleaned
		}

		// Find last ```
		end := len(cleaned)
		if end > 3 && cleaned[end-3:] == "```" {
			end -= 3
		}

		// Remove trailing whitespace before ```
		for end > start && (cleaned[end-1] == '\n' || cleaned[end-1] == ' ' || cleaned[end-1] == '\r') {
			end--
		}

		cleaned = cleaned[start:end]
	}

	return cleaned
}
