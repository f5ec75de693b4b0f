package generate

import (
	"context"
	"fmt"
	"strings"

	llm "github.com/randalmurphal/llmkit/claude"
	"github.com/randalmurphal/seoflow"
)

// LLMWriter implements seoflow.Writer over an llm.Client.
type LLMWriter struct {
	Client llm.Client

	// TargetWords hints the article length (default: 1200).
	TargetWords int
}

// NewWriter creates a writer backed by client.
func NewWriter(client llm.Client) *LLMWriter {
	return &LLMWriter{Client: client, TargetWords: 1200}
}

// articleResponse is the JSON document the model is asked to produce.
type articleResponse struct {
	Title           string   `json:"title"`
	HTML            string   `json:"html"`
	MetaDescription string   `json:"meta_description"`
	CitedSources    []string `json:"cited_sources"`
}

// Write implements seoflow.Writer. The orchestrator invokes it once
// per run; a failed call fails the run, so no error is marked
// transient here.
func (w *LLMWriter) Write(ctx context.Context, keyword string, research *seoflow.ResearchResult) (*seoflow.ArticleResult, error) {
	result, err := w.Client.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: writerSystemPrompt,
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: w.prompt(keyword, research)}},
	})
	if err != nil {
		return nil, fmt.Errorf("write article: %w", err)
	}

	var resp articleResponse
	if err := decodeResponse(result.Content, &resp); err != nil {
		return nil, fmt.Errorf("write article: %w", err)
	}

	return &seoflow.ArticleResult{
		Title:           resp.Title,
		HTML:            resp.HTML,
		MetaDescription: resp.MetaDescription,
		CitedSources:    resp.CitedSources,
		WordCount:       countWords(resp.HTML),
	}, nil
}

const writerSystemPrompt = "You are an experienced long-form writer. " +
	"Cite only the sources you are given. " +
	"Respond with a single JSON object and nothing else."

func (w *LLMWriter) prompt(keyword string, research *seoflow.ResearchResult) string {
	target := w.TargetWords
	if target <= 0 {
		target = 1200
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write an article of roughly %d words on %q as an HTML fragment.\n\n", target, keyword)
	if research.Summary != "" {
		fmt.Fprintf(&b, "Research summary:\n%s\n\n", research.Summary)
	}
	if len(research.Findings) > 0 {
		b.WriteString("Key findings:\n")
		for _, f := range research.Findings {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}
	b.WriteString("Sources to cite:\n")
	for _, s := range research.Sources {
		if !s.Usable() {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s)\n", s.URL, s.Title)
	}
	b.WriteString("\nRespond with JSON of this shape:\n")
	b.WriteString(`{"title": "...", "html": "...", "meta_description": "...", "cited_sources": ["https://..."]}`)
	return b.String()
}

// countWords estimates the word count of an HTML fragment by dropping
// tags and counting fields.
func countWords(html string) int {
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return len(strings.Fields(b.String()))
}
