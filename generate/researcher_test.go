package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	llm "github.com/randalmurphal/llmkit/claude"
	"github.com/randalmurphal/seoflow"
)

const researchJSON = `{
  "sources": [
    {"url": "https://example.com/a", "title": "A", "credibility": 0.9, "summary": "sa"},
    {"url": "https://example.com/b", "title": "B", "credibility": 0.5, "summary": "sb"}
  ],
  "findings": ["one", "two"],
  "summary": "overall"
}`

func TestLLMResearcher_Research(t *testing.T) {
	mock := llm.NewMockClient("").WithResponses(researchJSON)
	r := NewResearcher(mock)

	got, err := r.Research(context.Background(), "espresso machines")
	if err != nil {
		t.Fatalf("Research: %v", err)
	}
	if got.Keyword != "espresso machines" {
		t.Errorf("keyword = %q", got.Keyword)
	}
	if len(got.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(got.Sources))
	}
	if got.Sources[0].URL != "https://example.com/a" || got.Sources[0].Credibility != 0.9 {
		t.Errorf("source[0] = %+v", got.Sources[0])
	}
	if len(got.Findings) != 2 || got.Summary != "overall" {
		t.Errorf("findings = %v, summary = %q", got.Findings, got.Summary)
	}
}

func TestLLMResearcher_FencedResponse(t *testing.T) {
	mock := llm.NewMockClient("").WithResponses("```json\n" + researchJSON + "\n```")
	r := NewResearcher(mock)

	got, err := r.Research(context.Background(), "espresso machines")
	if err != nil {
		t.Fatalf("Research: %v", err)
	}
	if len(got.Sources) != 2 {
		t.Errorf("sources = %d, want 2", len(got.Sources))
	}
}

func TestLLMResearcher_ClientErrorIsTransient(t *testing.T) {
	mock := llm.NewMockClient("").WithCompleteFunc(
		func(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return nil, errors.New("cli crashed")
		})
	r := NewResearcher(mock)

	_, err := r.Research(context.Background(), "espresso machines")
	if !seoflow.IsTransient(err) {
		t.Errorf("client failures should be transient, got %v", err)
	}
}

func TestLLMResearcher_GarbageResponseIsTransient(t *testing.T) {
	mock := llm.NewMockClient("").WithResponses("sorry, I cannot do that")
	r := NewResearcher(mock)

	_, err := r.Research(context.Background(), "espresso machines")
	if !seoflow.IsTransient(err) {
		t.Errorf("undecodable responses should be transient, got %v", err)
	}
}

func TestLLMResearcher_PromptMentionsKeywordAndCap(t *testing.T) {
	var gotPrompt string
	mock := llm.NewMockClient("").WithCompleteFunc(
		func(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			gotPrompt = req.Messages[0].Content
			return &llm.CompletionResponse{Content: researchJSON}, nil
		})
	r := NewResearcher(mock)
	r.MaxSources = 5

	if _, err := r.Research(context.Background(), "espresso machines"); err != nil {
		t.Fatalf("Research: %v", err)
	}
	if !strings.Contains(gotPrompt, `"espresso machines"`) {
		t.Errorf("prompt should quote the keyword: %s", gotPrompt)
	}
	if !strings.Contains(gotPrompt, "up to 5 sources") {
		t.Errorf("prompt should carry the source cap: %s", gotPrompt)
	}
}
