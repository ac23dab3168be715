package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"syscatalog/internal/config"
	"syscatalog/internal/models"
	"syscatalog/internal/rag"
	"syscatalog/pkg/logger"
)

const (
	defaultChatModel   = "gpt-3.5-turbo-0125"
	defaultMaxTokens   = 300
	defaultTemperature = 0.7

	// One bounded retry when the provider reports a transient
	// model-loading condition.
	loadingRetryDelay = 2 * time.Second
)

// Degraded-mode answers. Misconfiguration stays diagnosable from the
// chat endpoint itself instead of surfacing as a raw fault.
const (
	msgNoAPIKey = "OpenAI API key not configured. Please add your API key to enable AI responses with RAG functionality."
	msgNotReady = "RAG pipeline not initialized. Please check the PDF document and OpenAI API key configuration."
	msgEmpty    = "I'm sorry, I couldn't generate a helpful response at this time. Please try rephrasing your question."
)

// llmCall invokes one language model with a fully rendered prompt.
type llmCall func(ctx context.Context, model string, maxTokens int, temperature float32, prompt string) (string, error)

// ChatService forwards prompts through the retrieval pipeline and a
// configured language-model provider. It never returns an error to the
// handler: every failure mode degrades to an explanatory answer.
type ChatService struct {
	cfg       *config.Config
	retriever *rag.Retriever
	ready     bool
	call      llmCall
}

func NewChatService(cfg *config.Config) *ChatService {
	s := &ChatService{cfg: cfg}
	s.call = s.dispatch
	return s
}

// InitPipeline builds the retrieval side of the pipeline: extract the
// guidelines PDF, split it, embed the chunks and index them. Failure
// leaves the service in degraded mode; the server still starts.
func (s *ChatService) InitPipeline(ctx context.Context) {
	if s.cfg.OpenAI.APIKey == "" {
		logger.Warn().Msg("OpenAI API key not set, chat runs in degraded mode")
		return
	}

	text, err := rag.LoadPDF(s.cfg.RAG.PDFPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", s.cfg.RAG.PDFPath).Msg("guidelines PDF unavailable, chat runs in degraded mode")
		return
	}

	splitter := rag.Splitter{
		ChunkSize:    s.cfg.RAG.ChunkSize,
		ChunkOverlap: s.cfg.RAG.ChunkOverlap,
	}
	chunks := splitter.Split(text)
	if len(chunks) == 0 {
		logger.Warn().Str("path", s.cfg.RAG.PDFPath).Msg("guidelines PDF produced no text, chat runs in degraded mode")
		return
	}

	embedder := newOpenAIEmbedder(&s.cfg.OpenAI, s.cfg.RAG.EmbeddingModel)
	vectors, err := embedder.Embed(ctx, chunks)
	if err != nil {
		logger.Warn().Err(err).Msg("chunk embedding failed, chat runs in degraded mode")
		return
	}
	if len(vectors) != len(chunks) {
		logger.Warn().Int("chunks", len(chunks)).Int("vectors", len(vectors)).
			Msg("embedding count mismatch, chat runs in degraded mode")
		return
	}

	index := rag.NewIndex()
	for i, chunk := range chunks {
		index.Add(chunk, vectors[i])
	}

	s.retriever = rag.NewRetriever(embedder, index, s.cfg.RAG.TopK)
	s.ready = true
	logger.Info().Int("chunks", index.Len()).Str("pdf", s.cfg.RAG.PDFPath).Msg("RAG pipeline ready")
}

// Ready reports whether the retrieval pipeline is available.
func (s *ChatService) Ready() bool {
	return s.ready
}

// Answer runs the prompt through retrieval and the language model.
// The returned response is always usable; provider faults become
// diagnostic text rather than errors.
func (s *ChatService) Answer(ctx context.Context, req *models.ChatRequest) *models.ChatResponse {
	model := req.Model
	if model == "" {
		model = defaultChatModel
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	resp := &models.ChatResponse{ModelUsed: model + " (RAG-powered)"}

	if s.cfg.OpenAI.APIKey == "" && s.cfg.OpenAI.Provider != "ollama" {
		resp.Response = msgNoAPIKey
		return resp
	}
	if !s.ready {
		resp.Response = msgNotReady
		return resp
	}

	timeout := time.Duration(s.cfg.RAG.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	docs, err := s.retriever.Retrieve(ctx, req.Prompt)
	if err != nil {
		logger.Warn().Err(err).Msg("retrieval failed")
		resp.Response = fallbackAnswer(err)
		return resp
	}

	prompt := rag.BuildPrompt(docs, req.Prompt)
	logger.Debug().Int("prompt_chars", len(prompt)).Int("context_docs", len(docs)).Msg("chat prompt assembled")

	answer, err := s.callWithRetry(ctx, model, maxTokens, temperature, prompt)
	if err != nil {
		logger.Warn().Err(err).Str("model", model).Msg("model call failed")
		resp.Response = fallbackAnswer(err)
		return resp
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		resp.Response = msgEmpty
		return resp
	}
	resp.Response = answer
	return resp
}

// callWithRetry retries exactly once when the provider reports that the
// model is still loading. All other failures propagate immediately.
func (s *ChatService) callWithRetry(ctx context.Context, model string, maxTokens int, temperature float32, prompt string) (string, error) {
	answer, err := s.call(ctx, model, maxTokens, temperature, prompt)
	if err == nil || !isModelLoading(err) {
		return answer, err
	}

	logger.Infof("[chat] model %s still loading, retrying once", model)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(loadingRetryDelay):
	}
	return s.call(ctx, model, maxTokens, temperature, prompt)
}

func isModelLoading(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "loading")
}

// fallbackAnswer wraps an upstream error in the diagnostic answer the
// chat contract promises, with the raw error truncated.
func fallbackAnswer(err error) string {
	msg := err.Error()
	if len(msg) > 100 {
		msg = msg[:100]
	}
	return fmt.Sprintf(
		"I'm experiencing technical difficulties with the RAG system. Error: %s. Please check your OpenAI API key configuration and ensure the PDF document is available.",
		msg)
}

// dispatch routes the call to the configured provider.
func (s *ChatService) dispatch(ctx context.Context, model string, maxTokens int, temperature float32, prompt string) (string, error) {
	switch s.cfg.OpenAI.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, model, maxTokens, prompt)
	case "ollama":
		return s.callOllama(ctx, model, temperature, prompt)
	case "gemini":
		return s.callGemini(ctx, model, prompt)
	default:
		// openai and OpenAI-compatible endpoints
		return s.callOpenAI(ctx, model, maxTokens, temperature, prompt)
	}
}

func (s *ChatService) callOpenAI(ctx context.Context, model string, maxTokens int, temperature float32, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(s.cfg.OpenAI.APIKey)
	if s.cfg.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = s.cfg.OpenAI.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *ChatService) callAnthropic(ctx context.Context, model string, maxTokens int, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(s.cfg.OpenAI.APIKey),
	)

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	return content.String(), nil
}

func (s *ChatService) callOllama(ctx context.Context, model string, temperature float32, prompt string) (string, error) {
	baseURL := s.cfg.OpenAI.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Options: map[string]interface{}{
			"temperature": temperature,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}
	return content.String(), nil
}

func (s *ChatService) callGemini(ctx context.Context, model string, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.cfg.OpenAI.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}

// openAIEmbedder implements rag.Embedder on the OpenAI embeddings API.
type openAIEmbedder struct {
	client *openai.Client
	model  string
}

func newOpenAIEmbedder(cfg *config.OpenAIConfig, model string) *openAIEmbedder {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &openAIEmbedder{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (e *openAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings API error: %w", err)
	}

	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embeddings API returned out-of-range index %d", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
