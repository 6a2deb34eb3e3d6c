package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// FallbackReply is what Complete hands back when the provider call fails.
// A failed turn must not crash the session or lose prior transcript state.
const FallbackReply = "😅 Sorry, there was an error processing your request."

const DefaultTranscriptionModel = "whisper-large-v3"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Info string `json:"info"`
}

// Client talks to a Groq-compatible API: model listing, chat completions
// and audio transcription. One request per call, no shared state beyond
// the underlying http.Client.
type Client struct {
	BaseURL string
	APIKey  string
	Retry   RetryPolicy
	Client  *http.Client
}

func NewClient(baseURL, apiKey string, retry RetryPolicy) *Client {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Retry:   retry,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

type chatReq struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResp struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type modelsResp struct {
	Data []struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	} `json:"data"`
}

type transcriptionResp struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s%s", strings.TrimRight(c.BaseURL, "/"), path)
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	return req, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return fmt.Errorf("groq: %s", msg)
}

// Chat sends the full conversation context and returns the first choice's
// content. Transport failures, non-2xx statuses and malformed bodies are
// all errors; Complete is the fail-soft wrapper.
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	if c.Client == nil {
		return "", errors.New("groq: http client is nil")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return "", errors.New("groq: api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return "", errors.New("groq: model is required")
	}

	b, err := json.Marshal(chatReq{Model: model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(resp)
	}

	var decoded chatResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", errors.New(decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("groq: empty response")
	}
	return decoded.Choices[0].Message.Content, nil
}

// Complete is the fail-soft completion used on the chat path: any error is
// logged and replaced by the fixed fallback reply.
func (c *Client) Complete(ctx context.Context, model string, messages []Message) string {
	reply, err := c.Chat(ctx, model, messages)
	if err != nil {
		log.Printf("[provider] chat completion failed model=%s err=%v", model, err)
		return FallbackReply
	}
	return reply
}

// ListModels fetches the model catalog. Transport failures and non-2xx
// statuses are retried per the configured policy; a 2xx body that does not
// parse is a hard error (retrying would fetch the same body again).
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	if c.Client == nil {
		return nil, errors.New("groq: http client is nil")
	}

	var lastErr error
	for attempt := 1; attempt <= c.Retry.attempts(); attempt++ {
		if attempt > 1 {
			if err := c.Retry.wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := c.newRequest(ctx, http.MethodGet, "/models", nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = statusError(resp)
			resp.Body.Close()
			continue
		}

		var decoded modelsResp
		err = json.NewDecoder(resp.Body).Decode(&decoded)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("groq: parse models response: %w", err)
		}
		if decoded.Data == nil {
			return nil, errors.New("groq: models response missing data")
		}

		out := make([]Model, 0, len(decoded.Data))
		for _, m := range decoded.Data {
			out = append(out, Model{ID: m.ID, Name: m.ID, Info: m.Description})
		}
		return out, nil
	}
	return nil, lastErr
}

// Transcribe sends raw audio bytes to the transcription endpoint. An empty
// language leaves detection to the provider.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename, model, language string) (string, error) {
	if c.Client == nil {
		return "", errors.New("groq: http client is nil")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultTranscriptionModel
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", err
	}
	if err := w.WriteField("model", model); err != nil {
		return "", err
	}
	if language != "" {
		if err := w.WriteField("language", language); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/audio/transcriptions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(resp)
	}

	var decoded transcriptionResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", errors.New(decoded.Error.Message)
	}
	return decoded.Text, nil
}
