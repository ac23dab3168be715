package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"syscatalog/internal/config"
	"syscatalog/internal/models"
	"syscatalog/internal/rag"
)

type fixedEmbedder struct {
	vector []float32
}

func (f *fixedEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

func newTestChat(t *testing.T) *ChatService {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OpenAI.APIKey = "sk-test"
	svc := NewChatService(cfg)

	index := rag.NewIndex()
	index.Add("escalation goes to the business steward", []float32{1, 0})
	index.Add("backups are retained ninety days", []float32{0, 1})
	svc.retriever = rag.NewRetriever(&fixedEmbedder{vector: []float32{1, 0}}, index, 1)
	svc.ready = true
	return svc
}

func TestAnswer_NoAPIKey(t *testing.T) {
	cfg := config.DefaultConfig()
	svc := NewChatService(cfg)

	resp := svc.Answer(context.Background(), &models.ChatRequest{Prompt: "hello"})
	if resp.Response != msgNoAPIKey {
		t.Errorf("expected missing-key message, got %q", resp.Response)
	}
	if resp.ModelUsed != "gpt-3.5-turbo-0125 (RAG-powered)" {
		t.Errorf("unexpected model_used %q", resp.ModelUsed)
	}
}

func TestAnswer_PipelineNotReady(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OpenAI.APIKey = "sk-test"
	svc := NewChatService(cfg)

	resp := svc.Answer(context.Background(), &models.ChatRequest{Prompt: "hello"})
	if resp.Response != msgNotReady {
		t.Errorf("expected not-ready message, got %q", resp.Response)
	}
}

func TestAnswer_ForwardsPromptWithContext(t *testing.T) {
	svc := newTestChat(t)

	var gotPrompt string
	svc.call = func(_ context.Context, model string, maxTokens int, temperature float32, prompt string) (string, error) {
		gotPrompt = prompt
		if model != defaultChatModel {
			t.Errorf("expected default model, got %q", model)
		}
		if maxTokens != defaultMaxTokens {
			t.Errorf("expected default max tokens, got %d", maxTokens)
		}
		if temperature != defaultTemperature {
			t.Errorf("expected default temperature, got %f", temperature)
		}
		return "  Escalate to the business steward.  ", nil
	}

	resp := svc.Answer(context.Background(), &models.ChatRequest{Prompt: "who handles escalation?"})

	if resp.Response != "Escalate to the business steward." {
		t.Errorf("expected trimmed model answer, got %q", resp.Response)
	}
	if !strings.Contains(gotPrompt, "escalation goes to the business steward") {
		t.Error("prompt must include the retrieved context chunk")
	}
	if !strings.Contains(gotPrompt, "Question: who handles escalation?") {
		t.Error("prompt must include the user question")
	}
}

func TestAnswer_ParameterOverrides(t *testing.T) {
	svc := newTestChat(t)

	svc.call = func(_ context.Context, model string, maxTokens int, temperature float32, _ string) (string, error) {
		if model != "gpt-4" || maxTokens != 512 || temperature != 0.2 {
			t.Errorf("overrides not forwarded: model=%q maxTokens=%d temperature=%f",
				model, maxTokens, temperature)
		}
		return "ok", nil
	}

	resp := svc.Answer(context.Background(), &models.ChatRequest{
		Prompt:      "q",
		Model:       "gpt-4",
		MaxTokens:   512,
		Temperature: 0.2,
	})
	if resp.ModelUsed != "gpt-4 (RAG-powered)" {
		t.Errorf("unexpected model_used %q", resp.ModelUsed)
	}
}

func TestAnswer_ProviderFaultBecomesDiagnosticText(t *testing.T) {
	svc := newTestChat(t)

	svc.call = func(context.Context, string, int, float32, string) (string, error) {
		return "", errors.New("upstream exploded")
	}

	resp := svc.Answer(context.Background(), &models.ChatRequest{Prompt: "q"})
	if !strings.Contains(resp.Response, "technical difficulties") {
		t.Errorf("expected diagnostic fallback, got %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "upstream exploded") {
		t.Errorf("fallback should carry the upstream error, got %q", resp.Response)
	}
}

func TestAnswer_EmptyModelOutput(t *testing.T) {
	svc := newTestChat(t)

	svc.call = func(context.Context, string, int, float32, string) (string, error) {
		return "   ", nil
	}

	resp := svc.Answer(context.Background(), &models.ChatRequest{Prompt: "q"})
	if resp.Response != msgEmpty {
		t.Errorf("expected empty-answer message, got %q", resp.Response)
	}
}

func TestCallWithRetry_RetriesOnceOnModelLoading(t *testing.T) {
	svc := newTestChat(t)
	svc.cfg.RAG.TimeoutSeconds = 30

	calls := 0
	svc.call = func(context.Context, string, int, float32, string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("model is currently loading")
		}
		return "recovered", nil
	}

	answer, err := svc.callWithRetry(context.Background(), "m", 10, 0.1, "p")
	if err != nil {
		t.Fatalf("callWithRetry() error: %v", err)
	}
	if answer != "recovered" {
		t.Errorf("expected recovered answer, got %q", answer)
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 calls, got %d", calls)
	}
}

func TestCallWithRetry_NoRetryOnOtherErrors(t *testing.T) {
	svc := newTestChat(t)

	calls := 0
	svc.call = func(context.Context, string, int, float32, string) (string, error) {
		calls++
		return "", errors.New("invalid api key")
	}

	if _, err := svc.callWithRetry(context.Background(), "m", 10, 0.1, "p"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 call, got %d", calls)
	}
}

func TestCallWithRetry_SingleRetryOnly(t *testing.T) {
	svc := newTestChat(t)

	calls := 0
	svc.call = func(context.Context, string, int, float32, string) (string, error) {
		calls++
		return "", errors.New("model is currently loading")
	}

	if _, err := svc.callWithRetry(context.Background(), "m", 10, 0.1, "p"); err == nil {
		t.Fatal("expected error after retry exhausted")
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 calls, got %d", calls)
	}
}

func TestCallWithRetry_CancelledContext(t *testing.T) {
	svc := newTestChat(t)

	ctx, cancel := context.WithCancel(context.Background())
	svc.call = func(context.Context, string, int, float32, string) (string, error) {
		cancel()
		return "", errors.New("model is currently loading")
	}

	if _, err := svc.callWithRetry(ctx, "m", 10, 0.1, "p"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled during retry wait, got %v", err)
	}
}

func TestFallbackAnswer_TruncatesLongErrors(t *testing.T) {
	long := fmt.Errorf("%s", strings.Repeat("x", 300))

	answer := fallbackAnswer(long)
	if strings.Contains(answer, strings.Repeat("x", 101)) {
		t.Error("upstream error must be truncated to 100 chars")
	}
	if !strings.Contains(answer, strings.Repeat("x", 100)) {
		t.Error("truncated error text missing from fallback")
	}
}
