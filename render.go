package seoflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Committed artifact names.
const (
	ArtifactArticle  = "article.html"
	ArtifactResearch = "research.json"
	ArtifactIndex    = "index.html"
)

// headCloseMarker is where default styling is injected.
const headCloseMarker = "</head>"

// defaultCSS is injected into every rendered article so output is
// readable without external assets.
const defaultCSS = `<style>
body { font-family: Georgia, 'Times New Roman', serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; color: #222; }
h1, h2, h3 { font-family: Helvetica, Arial, sans-serif; line-height: 1.25; }
a { color: #0b5394; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1rem; color: #555; }
code { background: #f4f4f4; padding: 0.1em 0.3em; border-radius: 3px; }
</style>`

// renderArticleHTML injects the default stylesheet into the article
// document before the head-close marker. Documents without a <head>
// are wrapped in a minimal one.
func renderArticleHTML(article *ArticleResult) string {
	html := article.HTML
	if idx := headCloseIndex(html); idx >= 0 {
		return html[:idx] + defaultCSS + "\n" + html[idx:]
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<meta charset=\"utf-8\">\n<title>%s</title>\n", template.HTMLEscapeString(article.Title))
	if article.MetaDescription != "" {
		fmt.Fprintf(&b, "<meta name=\"description\" content=\"%s\">\n", template.HTMLEscapeString(article.MetaDescription))
	}
	b.WriteString(defaultCSS)
	b.WriteString("\n</head>\n<body>\n")
	b.WriteString(html)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// headCloseIndex locates the head-close marker with an ASCII
// case-insensitive scan over the raw bytes. Folding the whole document
// first would change byte offsets when it contains multibyte text.
func headCloseIndex(doc string) int {
	for i := 0; i+len(headCloseMarker) <= len(doc); i++ {
		j := 0
		for ; j < len(headCloseMarker); j++ {
			c := doc[i+j]
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c != headCloseMarker[j] {
				break
			}
		}
		if j == len(headCloseMarker) {
			return i
		}
	}
	return -1
}

// researchExport is the structured research document written next to
// the article for downstream tooling.
type researchExport struct {
	Keyword    string    `json:"keyword"`
	ExportedAt time.Time `json:"exported_at"`
	Summary    string    `json:"summary,omitempty"`
	Findings   []string  `json:"findings,omitempty"`
	Sources    []Source  `json:"sources"`
}

// renderResearchJSON serializes the research result for export.
func renderResearchJSON(research *ResearchResult) ([]byte, error) {
	export := researchExport{
		Keyword:    research.Keyword,
		ExportedAt: time.Now().UTC(),
		Summary:    research.Summary,
		Findings:   research.Findings,
		Sources:    research.Sources,
	}
	return json.MarshalIndent(export, "", "  ")
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Heading}} — Review</title>
{{.CSS}}
</head>
<body>
<h1>{{.Heading}}</h1>
<p>Generated {{.Generated}} · {{.SourceCount}} sources · {{.WordCount}} words</p>
<ul>
<li><a href="{{.ArticleHref}}">Article</a></li>
<li><a href="{{.ResearchHref}}">Research export</a></li>
</ul>
<h2>Sources</h2>
<ol>
{{- range .Sources}}
<li><a href="{{.URL}}">{{if .Title}}{{.Title}}{{else}}{{.URL}}{{end}}</a> (credibility {{printf "%.2f" .Credibility}})</li>
{{- end}}
</ol>
</body>
</html>
`))

// renderIndexHTML renders the human-review landing page, referencing
// the article and research export by relative path.
func renderIndexHTML(keyword string, article *ArticleResult, research *ResearchResult) ([]byte, error) {
	data := struct {
		Heading      string
		CSS          template.HTML
		Generated    string
		SourceCount  int
		WordCount    int
		ArticleHref  string
		ResearchHref string
		Sources      []Source
	}{
		Heading:      cases.Title(language.English).String(keyword),
		CSS:          template.HTML(defaultCSS),
		Generated:    time.Now().UTC().Format(time.RFC1123),
		SourceCount:  len(research.Sources),
		WordCount:    article.WordCount,
		ArticleHref:  ArtifactArticle,
		ResearchHref: ArtifactResearch,
		Sources:      research.Sources,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	return buf.Bytes(), nil
}
