package seoflow

import "context"

// =============================================================================
// Research Types
// =============================================================================

// Source is a single research source with a credibility signal.
type Source struct {
	URL         string  `json:"url"`
	Title       string  `json:"title,omitempty"`
	Credibility float64 `json:"credibility"` // 0.0 - 1.0
	Summary     string  `json:"summary,omitempty"`
}

// Usable reports whether the source carries enough signal to cite.
func (s Source) Usable() bool {
	return s.URL != "" && s.Credibility >= MinUsableCredibility
}

// MinUsableCredibility is the credibility floor for a source to count
// toward the low-source warning threshold.
const MinUsableCredibility = 0.3

// ResearchResult is the output of the research phase.
type ResearchResult struct {
	Keyword  string   `json:"keyword"`
	Sources  []Source `json:"sources"`
	Findings []string `json:"findings,omitempty"`
	Summary  string   `json:"summary,omitempty"`
}

// UsableSources counts sources that pass the credibility floor.
func (r *ResearchResult) UsableSources() int {
	n := 0
	for _, s := range r.Sources {
		if s.Usable() {
			n++
		}
	}
	return n
}

// Empty reports whether the result is structurally empty: no usable
// sources at all. An empty result is a validation failure, not a
// transient one, so it is never retried.
func (r *ResearchResult) Empty() bool {
	return r == nil || r.UsableSources() == 0
}

// =============================================================================
// Article Types
// =============================================================================

// ArticleResult is the output of the writing phase.
type ArticleResult struct {
	Title           string   `json:"title"`
	HTML            string   `json:"html"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	CitedSources    []string `json:"citedSources"`
	WordCount       int      `json:"wordCount,omitempty"`
}

// =============================================================================
// Collaborator Contracts
// =============================================================================

// Researcher performs the research phase for a keyword.
//
// Implementations must distinguish transient failures (wrap in
// *TransientError so the orchestrator retries) from structural ones
// (any other error fails the run immediately).
type Researcher interface {
	Research(ctx context.Context, keyword string) (*ResearchResult, error)
}

// Writer produces an article from a keyword and its research.
// The orchestrator invokes it exactly once per run; it is never retried.
type Writer interface {
	Write(ctx context.Context, keyword string, research *ResearchResult) (*ArticleResult, error)
}
