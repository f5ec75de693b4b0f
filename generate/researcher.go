package generate

import (
	"context"
	"fmt"
	"strings"

	llm "github.com/randalmurphal/llmkit/claude"
	"github.com/randalmurphal/seoflow"
)

// LLMResearcher implements seoflow.Researcher over an llm.Client.
type LLMResearcher struct {
	Client llm.Client

	// MaxSources caps the number of sources requested (default: 8).
	MaxSources int
}

// NewResearcher creates a researcher backed by client.
func NewResearcher(client llm.Client) *LLMResearcher {
	return &LLMResearcher{Client: client, MaxSources: 8}
}

// researchResponse is the JSON document the model is asked to produce.
type researchResponse struct {
	Sources []struct {
		URL         string  `json:"url"`
		Title       string  `json:"title"`
		Credibility float64 `json:"credibility"`
		Summary     string  `json:"summary"`
	} `json:"sources"`
	Findings []string `json:"findings"`
	Summary  string   `json:"summary"`
}

// Research implements seoflow.Researcher. Client and decode failures
// are reported as transient so the orchestrator retries them; the
// structural quality of the result is judged by the orchestrator.
func (r *LLMResearcher) Research(ctx context.Context, keyword string) (*seoflow.ResearchResult, error) {
	result, err := r.Client.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: researchSystemPrompt,
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: r.prompt(keyword)}},
	})
	if err != nil {
		return nil, seoflow.NewTransientError("research", err)
	}

	var resp researchResponse
	if err := decodeResponse(result.Content, &resp); err != nil {
		return nil, seoflow.NewTransientError("research", err)
	}

	out := &seoflow.ResearchResult{
		Keyword:  keyword,
		Findings: resp.Findings,
		Summary:  resp.Summary,
	}
	for _, s := range resp.Sources {
		out.Sources = append(out.Sources, seoflow.Source{
			URL:         s.URL,
			Title:       s.Title,
			Credibility: s.Credibility,
			Summary:     s.Summary,
		})
	}
	return out, nil
}

const researchSystemPrompt = "You are a meticulous research assistant. " +
	"Respond with a single JSON object and nothing else."

func (r *LLMResearcher) prompt(keyword string) string {
	maxSources := r.MaxSources
	if maxSources <= 0 {
		maxSources = 8
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Research the topic %q for an in-depth article.\n\n", keyword)
	fmt.Fprintf(&b, "Gather up to %d sources. For each source estimate a credibility score between 0.0 and 1.0.\n\n", maxSources)
	b.WriteString("Respond with JSON of this shape:\n")
	b.WriteString(`{"sources": [{"url": "...", "title": "...", "credibility": 0.8, "summary": "..."}], "findings": ["..."], "summary": "..."}`)
	return b.String()
}
