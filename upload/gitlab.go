package upload

import (
	"context"
	"fmt"
	"sort"

	"github.com/xanzy/go-gitlab"
)

// GitLabProvider uploads committed artifacts into a GitLab project
// using the repository files API.
type GitLabProvider struct {
	client    *gitlab.Client
	projectID string
	branch    string
}

// NewGitLabProvider creates a GitLab upload provider.
// token is a personal access token; baseURL is the instance URL (empty
// for gitlab.com); projectID is a numeric ID or "namespace/project"
// path; branch defaults to "main".
func NewGitLabProvider(token, baseURL, projectID, branch string) (*GitLabProvider, error) {
	if token == "" {
		return nil, fmt.Errorf("GitLab token is required")
	}
	if projectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}
	if branch == "" {
		branch = "main"
	}

	var client *gitlab.Client
	var err error
	if baseURL != "" {
		client, err = gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	} else {
		client, err = gitlab.NewClient(token)
	}
	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}

	return &GitLabProvider{
		client:    client,
		projectID: projectID,
		branch:    branch,
	}, nil
}

// Upload implements Provider.
func (p *GitLabProvider) Upload(ctx context.Context, keyword, dir string) error {
	files, err := readArtifacts(dir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := remotePath(dir, name)
		opts := &gitlab.CreateFileOptions{
			Branch:        gitlab.Ptr(p.branch),
			Content:       gitlab.Ptr(string(files[name])),
			CommitMessage: gitlab.Ptr(fmt.Sprintf("Add %s for %q", name, keyword)),
		}
		if _, _, err := p.client.RepositoryFiles.CreateFile(p.projectID, path, opts, gitlab.WithContext(ctx)); err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}
	}
	return nil
}
