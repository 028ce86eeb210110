package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

const (
	anthropicAPIEndpoint = "https://api.anthropic.com/v1/messages"
	defaultModel         = "claude-3-5-haiku-latest"
	defaultMaxTokens     = 1000
	anthropicVersion     = "2023-06-01"
)

// FallbackMessage é devolvida ao usuário em qualquer falha na consulta
const FallbackMessage = "Error al conectar con el Asesor IA. Verifica tu API Key."

var (
	ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY não configurada")
	ErrEmptyQuestion = errors.New("pergunta não pode ser vazia")
	ErrEmptyReply    = errors.New("resposta vazia do serviço de IA")
)

// Summary é o resumo do negócio enviado junto com a pergunta
type Summary struct {
	TotalSales   int      `json:"totalSales"`
	TotalRevenue float64  `json:"totalRevenue"`
	TopProducts  []string `json:"topProducts"`
	ClientCount  int      `json:"clientCount"`
}

// Config contém as configurações do cliente
type Config struct {
	APIKey    string
	Model     string
	Endpoint  string
	MaxTokens int
	Timeout   time.Duration
}

// NewConfigFromEnv cria a configuração a partir de variáveis de ambiente
func NewConfigFromEnv() Config {
	maxTokens, err := strconv.Atoi(getEnv("ADVISOR_MAX_TOKENS", "1000"))
	if err != nil {
		maxTokens = defaultMaxTokens
	}
	timeout, err := strconv.Atoi(getEnv("ADVISOR_TIMEOUT_SECONDS", "30"))
	if err != nil {
		timeout = 30
	}

	return Config{
		APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		Model:     getEnv("ADVISOR_MODEL", defaultModel),
		Endpoint:  getEnv("ADVISOR_ENDPOINT", anthropicAPIEndpoint),
		MaxTokens: maxTokens,
		Timeout:   time.Duration(timeout) * time.Second,
	}
}

// Client consulta o modelo de linguagem com um resumo do negócio
type Client struct {
	config Config
	client *http.Client
	logger logger.Logger
}

// NewClient cria um novo cliente do assessor
func NewClient(config Config, logger logger.Logger) *Client {
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Endpoint == "" {
		config.Endpoint = anthropicAPIEndpoint
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaultMaxTokens
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// Enabled informa se há chave de API configurada
func (c *Client) Enabled() bool {
	return c.config.APIKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// BuildPrompt monta o texto enviado ao modelo
func BuildPrompt(summary Summary, question string) (string, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar resumo: %w", err)
	}
	return fmt.Sprintf("Actúa como consultor de negocios para una cafetería. Datos: %s. Pregunta: %s", data, question), nil
}

// Ask envia o resumo e a pergunta e devolve o texto da resposta. Em qualquer falha
// devolve FallbackMessage junto com o erro. Não há novas tentativas.
func (c *Client) Ask(ctx context.Context, summary Summary, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return FallbackMessage, ErrEmptyQuestion
	}
	if !c.Enabled() {
		return FallbackMessage, ErrMissingAPIKey
	}

	prompt, err := BuildPrompt(summary, question)
	if err != nil {
		return FallbackMessage, err
	}

	reqJSON, err := json.Marshal(messageRequest{
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		c.logger.Error("Erro ao serializar requisição", "error", err)
		return FallbackMessage, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewBuffer(reqJSON))
	if err != nil {
		c.logger.Error("Erro ao criar requisição HTTP", "error", err)
		return FallbackMessage, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.config.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Accept", "application/json")

	c.logger.Info("Consultando assessor de IA", "model", c.config.Model)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Erro na chamada da API", "error", err)
		return FallbackMessage, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Erro ao ler resposta", "error", err)
		return FallbackMessage, err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("API retornou erro", "status", resp.Status, "body", string(respBody))
		return FallbackMessage, fmt.Errorf("API error: %s", resp.Status)
	}

	var apiResp messageResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		c.logger.Error("Erro ao deserializar resposta", "error", err)
		return FallbackMessage, err
	}

	var reply strings.Builder
	for _, content := range apiResp.Content {
		if content.Type == "text" {
			reply.WriteString(content.Text)
		}
	}
	if reply.Len() == 0 {
		c.logger.Error("Resposta vazia da API", "body", string(respBody))
		return FallbackMessage, ErrEmptyReply
	}

	c.logger.Info("Resposta gerada com sucesso",
		"model", apiResp.Model,
		"input_tokens", apiResp.Usage.InputTokens,
		"output_tokens", apiResp.Usage.OutputTokens,
		"stop_reason", apiResp.StopReason)

	return reply.String(), nil
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
