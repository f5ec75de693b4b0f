package seoflow

import (
	"fmt"
	"os"
	"path/filepath"
)

// =============================================================================
// AtomicOutputCommitter
// =============================================================================

// Committer builds output artifacts in a private staging directory and
// publishes them with a single atomic rename into the final namespaced
// directory. Until the rename completes, nothing is visible under the
// final namespace.
type Committer struct {
	outputRoot string
}

// NewCommitter creates a committer rooted at outputRoot.
func NewCommitter(outputRoot string) *Committer {
	return &Committer{outputRoot: outputRoot}
}

// OutputRoot returns the output root directory.
func (c *Committer) OutputRoot() string {
	return c.outputRoot
}

// Stage creates the uniquely-named staging directory for a session and
// returns its path. The directory is exclusively owned by the calling
// orchestrator instance.
func (c *Committer) Stage(sessionID string) (string, error) {
	dir := StagingPath(c.outputRoot, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	return dir, nil
}

// WriteArtifacts renders the full artifact set into dir: the article
// document with default styling injected, the structured research
// export, and the review landing page referencing both by relative
// path. Everything stays within dir until Commit.
func (c *Committer) WriteArtifacts(dir string, article *ArticleResult, research *ResearchResult) error {
	articleHTML := renderArticleHTML(article)
	if err := writeFile(dir, ArtifactArticle, []byte(articleHTML)); err != nil {
		return err
	}

	researchJSON, err := renderResearchJSON(research)
	if err != nil {
		return err
	}
	if err := writeFile(dir, ArtifactResearch, researchJSON); err != nil {
		return err
	}

	indexHTML, err := renderIndexHTML(research.Keyword, article, research)
	if err != nil {
		return err
	}
	return writeFile(dir, ArtifactIndex, indexHTML)
}

// Commit publishes the staging directory as finalDir with one rename.
// On failure the staging directory is left in place for inspection and
// a *CommitError is returned; the caller treats it as a phase failure.
func (c *Committer) Commit(stagingDir, finalDir string) error {
	if err := os.Rename(stagingDir, finalDir); err != nil {
		return &CommitError{StagingDir: stagingDir, FinalDir: finalDir, Err: err}
	}
	return nil
}

// SaveDirect writes the artifact set straight into finalDir without
// staging. Used by the non-atomic save variant.
func (c *Committer) SaveDirect(finalDir string, article *ArticleResult, research *ResearchResult) error {
	if err := os.MkdirAll(finalDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return c.WriteArtifacts(finalDir, article, research)
}

func writeFile(dir, name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
