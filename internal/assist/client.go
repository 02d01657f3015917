// Package assist talks to the language model service used for word problems
// and explanations.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultURL        = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-preview-09-2025:generateContent"
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
	DefaultTimeout    = 60 * time.Second
)

// Replies starting with this prefix are failures.
const ErrorPrefix = "Error:"

// TranslatePrompt instructs the model to turn a word problem into an expression.
const TranslatePrompt = "You are a math expression generator. Convert the user's word problem into a single, valid mathematical expression for a calculator. Only output the expression. For example: '5 times 10' -> '5 * 10'. 'sine of 90 degrees' -> 'sin(90)'. 'log of 100' -> 'log10(100)'. '10 permute 3' -> 'permutations(10, 3)'. '10 choose 3' -> 'combinations(10, 3)'. Use operators like `*`, `/`, `+`, `-` and functions like `sin()`, `cos()`, `tan()`, `log10()`, `log()` (for natural log), `sqrt()`, `factorial()`, `pow(base, exp)`, `permutations(n, k)`, `combinations(n, k)`. If you cannot convert it, output 'Error: Invalid problem'."

// ExplainPrompt instructs the model to explain a calculation.
const ExplainPrompt = "You are a math tutor. Explain the following calculation step-by-step. Be concise and clear. The user's calculation was:"

// Client sends requests to a Gemini generateContent endpoint.
type Client struct {
	URL        string
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
	HTTP       *http.Client
	Log        *log.Logger

	// Sleep waits between attempts. It defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a client with the default retry policy.
func NewClient(url, apiKey string) *Client {
	return &Client{
		URL:        url,
		APIKey:     apiKey,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		HTTP:       &http.Client{Timeout: DefaultTimeout},
		Log:        log.Default(),
		Sleep:      sleep,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction content   `json:"systemInstruction"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// statusError is a non-2xx reply.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.code)
}

var errBadResponse = errors.New("could not parse LLM response")

// Ask sends userText with the given system instruction and returns the
// model's reply. Failures are returned as text starting with ErrorPrefix.
// Network errors, non-2xx statuses and bodies that are not JSON are retried.
// A JSON reply without text fails immediately.
func (c *Client) Ask(ctx context.Context, userText, systemInstruction string) string {
	body, err := json.Marshal(generateRequest{
		Contents:          []content{{Parts: []part{{Text: userText}}}},
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
	})
	if err != nil {
		return ErrorPrefix + " " + err.Error()
	}

	delay := c.RetryDelay
	for attempt := 0; ; attempt++ {
		text, err := c.do(ctx, body)
		switch {
		case err == nil:
			return text
		case errors.Is(err, errBadResponse):
			return ErrorPrefix + " Could not parse LLM response."
		case attempt >= c.MaxRetries || ctx.Err() != nil:
			return fmt.Sprintf("%s API request failed: %v", ErrorPrefix, err)
		}
		c.logf("request failed (attempt %d/%d), retrying in %v: %v", attempt+1, c.MaxRetries+1, delay, err)
		wait := c.Sleep
		if wait == nil {
			wait = sleep
		}
		if err := wait(ctx, delay); err != nil {
			return fmt.Sprintf("%s API request failed: %v", ErrorPrefix, err)
		}
		delay *= 2
	}
}

func (c *Client) do(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-goog-api-key", c.APIKey)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &statusError{resp.StatusCode}
	}

	var r generateResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return "", fmt.Errorf("invalid response body: %v", err)
	}
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 || r.Candidates[0].Content.Parts[0].Text == "" {
		return "", errBadResponse
	}
	return r.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Printf(format, args...)
	}
}

// PlainText strips markdown bold markers from model output.
func PlainText(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
