package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Request describe una llamada de generación: mensaje de sistema opcional,
// prompt de usuario y temperatura (0 usa el default del proveedor).
type Request struct {
	System      string
	User        string
	Temperature float64
}

// Client define la interfaz para generar texto con un LLM externo.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrDisabled se devuelve cuando no hay proveedor configurado. Los callers
// deben degradar a su camino determinístico, nunca propagarlo al request.
var ErrDisabled = errors.New("llm client disabled")

// HTTPClient implementa Client contra una API chat-completions compatible
// con OpenAI (Groq incluido).
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient construye un cliente HTTP apuntando a la API de chat completions.
func NewHTTPClient(baseURL, apiKey, model string, logger *zap.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

func (c *HTTPClient) Generate(ctx context.Context, genReq Request) (string, error) {
	msgs := make([]chatMessage, 0, 2)
	if strings.TrimSpace(genReq.System) != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: genReq.System})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: genReq.User})

	reqBody := chatRequest{
		Model:    c.model,
		Messages: msgs,
	}
	if genReq.Temperature > 0 {
		reqBody.Temperature = &genReq.Temperature
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("llm error status", zap.Int("status", resp.StatusCode), zap.ByteString("body", respBody))
		return "", fmt.Errorf("llm http error: status=%d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if cr.Error != nil {
		return "", fmt.Errorf("llm api error: %s", cr.Error.Message)
	}

	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("llm empty response")
	}

	return cr.Choices[0].Message.Content, nil
}

// Disabled es el cliente usado cuando LLM_API_KEY no esta configurada.
type Disabled struct{}

func (Disabled) Generate(ctx context.Context, _ Request) (string, error) {
	return "", ErrDisabled
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
