// Package llm is the HTTP client for the generative-text collaborator: a
// llama.cpp style server exposing an OpenAI-compatible /v1/chat/completions
// endpoint. The retrieval core never calls it; handlers do, and every
// resolver result stands on its own when this backend is down.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 120 * time.Second

// Client talks to an OpenAI-compatible chat-completions server.
type Client struct {
	httpClient *http.Client
	chatURL    string
	model      string
}

// NewClient creates a client for the given base URL and model name.
func NewClient(baseURL, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		chatURL:    strings.TrimRight(baseURL, "/") + "/v1/chat/completions",
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// promptFrame pins the model to the retrieved context and to a linguistic
// (not theological) comparison. The placeholders are context, instruction.
const promptFrame = `Eres un experto en lingüística comparativa especializado en griego koiné y español.

CONTEXTO (usa SOLO este texto):
%s

INSTRUCCIONES:
- Realiza una comparación LINGÜÍSTICA (no teológica)
- Analiza palabras clave, matices de traducción y estructura gramatical
- Cita siempre el libro, capítulo y versículo
- Indica claramente el idioma de cada texto
- Explica que el griego es el texto original
- Si el contexto no contiene el versículo solicitado, indica que no se encontró

%s`

// Generate sends the instruction plus context block and returns the model's
// reply.
func (c *Client) Generate(ctx context.Context, instruction, contextBlock string) (string, error) {
	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(promptFrame, contextBlock, instruction)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.chatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generative backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generative backend returned %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("generative backend error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("generative backend returned no choices")
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
