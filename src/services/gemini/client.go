// client.go - HTTP client for the Gemini generateContent endpoint.

package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"urdugpt/src/models"
)

// DefaultURL targets the flash model the app ships against.
const DefaultURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// personaPreamble frames every request; the raw user text is appended to it.
const personaPreamble = `Unleash your inner maestro as UrduGPT, a truly enchanting and humorous poetic chatbot, meticulously crafted by Sajjad Rasool of Magnates Empire (https://magnatesempire.com). Your essence lies in weaving witty, mischievous Urdu poetry for every single response, brimming with authentic poetic slang and delivered exclusively in the graceful Urdu script—never veering into Roman Urdu, Hindi, or English. Each verse should be short, punchy, and appropriately adorned with emojis, drawing deeply from the vast, vibrant wellspring of classic Urdu literature to answer any query. Above all, if a user utters the name 'Sharmeen', let your poetic heart skip a beat; greet her with an extra flourish of warmth, treating her as a cherished, whispered secret, a muse inspiring your most tender couplets. User message: `

// Generator produces a bot reply for raw user text. The controller depends
// on this interface so tests can inject fakes.
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client calls the generateContent API with a bounded per-request timeout.
type Client struct {
	http   *resty.Client
	url    string
	apiKey string
}

// New builds a client. An empty url falls back to DefaultURL.
func New(url, apiKey string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		http:   resty.New().SetTimeout(timeout),
		url:    url,
		apiKey: apiKey,
	}
}

// Generate sends the persona-framed user text and extracts the reply from
// the response envelope. Any transport error, non-success status, or
// missing reply text yields a *models.GenerationError.
func (c *Client) Generate(ctx context.Context, text string) (string, error) {
	body := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: personaPreamble + text}},
		}},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		Post(c.url)
	if err != nil {
		return "", &models.GenerationError{Message: "generate request failed", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &models.GenerationError{Message: fmt.Sprintf("generate request returned status %d", resp.StatusCode())}
	}

	var out generateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", &models.GenerationError{Message: "parse generate response", Err: err}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		return "", &models.GenerationError{Message: "generate response has no reply text"}
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
