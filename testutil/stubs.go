// Package testutil provides stub collaborators and helpers for
// testing the workflow coordinator.
package testutil

import (
	"context"
	"fmt"

	"github.com/randalmurphal/seoflow"
)

// StubResearcher is a scriptable Researcher. Errs are returned in
// order, one per call; once exhausted, Result is returned.
type StubResearcher struct {
	Result *seoflow.ResearchResult
	Errs   []error
	Calls  int
}

// Research implements seoflow.Researcher.
func (s *StubResearcher) Research(_ context.Context, keyword string) (*seoflow.ResearchResult, error) {
	call := s.Calls
	s.Calls++
	if call < len(s.Errs) && s.Errs[call] != nil {
		return nil, s.Errs[call]
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return GoodResearch(keyword), nil
}

// StubWriter is a scriptable Writer.
type StubWriter struct {
	Result *seoflow.ArticleResult
	Err    error
	Calls  int
}

// Write implements seoflow.Writer.
func (s *StubWriter) Write(_ context.Context, keyword string, _ *seoflow.ResearchResult) (*seoflow.ArticleResult, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return GoodArticle(keyword), nil
}

// GoodResearch returns a research result with enough usable sources to
// avoid the low-source warning.
func GoodResearch(keyword string) *seoflow.ResearchResult {
	r := &seoflow.ResearchResult{
		Keyword:  keyword,
		Summary:  "summary of " + keyword,
		Findings: []string{"finding one", "finding two"},
	}
	for i := 1; i <= 3; i++ {
		r.Sources = append(r.Sources, seoflow.Source{
			URL:         fmt.Sprintf("https://example.com/%d", i),
			Title:       fmt.Sprintf("Source %d", i),
			Credibility: 0.9,
		})
	}
	return r
}

// ThinResearch returns a research result with a single usable source,
// which triggers the low-source warning but still completes.
func ThinResearch(keyword string) *seoflow.ResearchResult {
	return &seoflow.ResearchResult{
		Keyword: keyword,
		Sources: []seoflow.Source{
			{URL: "https://example.com/only", Title: "Only Source", Credibility: 0.8},
		},
	}
}

// EmptyResearch returns a structurally-empty result: sources exist but
// none pass the credibility floor.
func EmptyResearch(keyword string) *seoflow.ResearchResult {
	return &seoflow.ResearchResult{
		Keyword: keyword,
		Sources: []seoflow.Source{
			{URL: "https://example.com/spam", Credibility: 0.1},
		},
	}
}

// GoodArticle returns a complete article citing one source.
func GoodArticle(keyword string) *seoflow.ArticleResult {
	return &seoflow.ArticleResult{
		Title:           "All About " + keyword,
		HTML:            "<h1>" + keyword + "</h1><p>Body text.</p>",
		MetaDescription: "An article about " + keyword,
		CitedSources:    []string{"https://example.com/1"},
		WordCount:       420,
	}
}

// UncitedArticle returns an article with zero cited sources.
func UncitedArticle(keyword string) *seoflow.ArticleResult {
	a := GoodArticle(keyword)
	a.CitedSources = nil
	return a
}
