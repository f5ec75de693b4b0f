// Package upload mirrors committed output directories to an external
// document store. Uploads are best-effort: the orchestrator logs
// failures and never fails a run over them.
//
// Implementations exist for GitHub and GitLab repositories, which make
// a committed article set reviewable from a browser without shell
// access to the pipeline host.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Provider publishes a committed artifact directory.
type Provider interface {
	// Upload publishes every file in dir under a path derived from
	// keyword and the directory name.
	Upload(ctx context.Context, keyword, dir string) error
}

// readArtifacts loads every regular file directly under dir, keyed by
// filename. Committed output directories are flat.
func readArtifacts(dir string) (map[string][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read artifact dir: %w", err)
	}

	files := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read artifact %s: %w", entry.Name(), err)
		}
		files[entry.Name()] = data
	}
	return files, nil
}

// remotePath builds the repository path for an artifact file.
func remotePath(dir, name string) string {
	return filepath.ToSlash(filepath.Join("articles", filepath.Base(dir), name))
}

// =============================================================================
// MockProvider
// =============================================================================

// MockProvider records uploads for testing.
type MockProvider struct {
	Uploads []MockUpload
	Err     error // Returned from Upload when set
}

// MockUpload is one recorded Upload call.
type MockUpload struct {
	Keyword string
	Dir     string
	Files   map[string][]byte
}

// Upload implements Provider.
func (m *MockProvider) Upload(_ context.Context, keyword, dir string) error {
	if m.Err != nil {
		return m.Err
	}
	files, err := readArtifacts(dir)
	if err != nil {
		return err
	}
	m.Uploads = append(m.Uploads, MockUpload{Keyword: keyword, Dir: dir, Files: files})
	return nil
}
