package jd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/pkg/errors"
)

const (
	// fetchTimeout bounds one job-description fetch.
	fetchTimeout = 30 * time.Second
	// maxContentChars bounds the text handed to the tailoring pipeline.
	maxContentChars = 12000
	// minUsefulChars filters out pages whose extracted text is too short
	// to be a real job description.
	minUsefulChars = 200
)

// Fetch retrieves a job description from a file path or URL.
func Fetch(input string) (content string, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	content, err = FetchWithContext(ctx, input)
	return content, err
}

// FetchWithContext retrieves a job description with context.
func FetchWithContext(ctx context.Context, input string) (content string, err error) {
	// Check if input is a URL
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		// It's a URL - fetch via HTTP
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch job description from URL: %s", input)
			return content, err
		}
		return content, err
	}

	// It's a file path - read from disk
	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch job description from file: %s", input)
		return content, err
	}

	return content, err
}

// fetchFromFile reads a job description from a file.
func fetchFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = bound(string(data))
	if content == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

// fetchFromURL retrieves a job description from a URL. Job boards usually
// publish the posting in an ld+json script block; that is tried first,
// falling back to a full-page HTML-to-markdown conversion.
func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0.0.0")

	client := &http.Client{
		Timeout: fetchTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	// Read response body
	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	rawHTML := string(bodyBytes)

	// Structured posting data first
	if desc := descriptionFromLDJSON(rawHTML); desc != "" {
		content = bound(desc)
		return content, err
	}

	// Full-page conversion
	content = bound(htmlToText(rawHTML))
	if len(content) < minUsefulChars {
		err = errors.New("fetched content is too short after processing")
		return content, err
	}

	return content, err
}

// ldJSONRegex matches ld+json script blocks.
var ldJSONRegex = regexp.MustCompile(`(?is)<script[^>]*type=['"]application/ld\+json['"][^>]*>(.*?)</script>`)

// descriptionFromLDJSON extracts a posting description from structured
// page data, returning "" when none is present.
func descriptionFromLDJSON(rawHTML string) (description string) {
	for _, match := range ldJSONRegex.FindAllStringSubmatch(rawHTML, -1) {
		var data map[string]interface{}
		if json.Unmarshal([]byte(strings.TrimSpace(match[1])), &data) != nil {
			continue
		}

		if desc, ok := data["description"].(string); ok && desc != "" {
			description = htmlToText(desc)
			return description
		}

		// Some boards nest the posting inside an @graph array.
		if graph, ok := data["@graph"].([]interface{}); ok && len(graph) > 0 {
			if first, ok := graph[0].(map[string]interface{}); ok {
				if desc, ok := first["description"].(string); ok && desc != "" {
					description = htmlToText(desc)
					return description
				}
			}
		}
	}
	return description
}

var (
	scriptRegex = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRegex  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRegex    = regexp.MustCompile(`<[^>]+>`)
	spaceRegex  = regexp.MustCompile(`[ \t]+`)
)

// htmlToText converts HTML to plain markdown-ish text, with regex-based
// stripping as a fallback when conversion fails.
func htmlToText(rawHTML string) (text string) {
	text, err := htmltomarkdown.ConvertString(rawHTML)
	if err == nil {
		text = strings.TrimSpace(text)
		return text
	}

	text = scriptRegex.ReplaceAllString(rawHTML, " ")
	text = styleRegex.ReplaceAllString(text, " ")
	text = tagRegex.ReplaceAllString(text, " ")
	text = spaceRegex.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return text
}

// bound truncates content to the pipeline's input limit.
func bound(content string) (bounded string) {
	bounded = strings.TrimSpace(content)
	if len(bounded) > maxContentChars {
		runes := []rune(bounded)
		if len(runes) > maxContentChars {
			runes = runes[:maxContentChars]
		}
		bounded = string(runes)
	}
	return bounded
}
