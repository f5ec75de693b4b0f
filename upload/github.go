package upload

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubProvider uploads committed artifacts into a GitHub repository
// using the contents API.
type GitHubProvider struct {
	client *github.Client
	owner  string
	repo   string
	branch string
}

// NewGitHubProvider creates a GitHub upload provider.
// token is a personal access token; owner and repo identify the
// destination repository; branch defaults to "main".
func NewGitHubProvider(token, owner, repo, branch string) (*GitHubProvider, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repo are required")
	}
	if branch == "" {
		branch = "main"
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return &GitHubProvider{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
		branch: branch,
	}, nil
}

// Upload implements Provider. Each artifact becomes one commit; the
// destination path never exists beforehand because committed output
// directories are timestamped.
func (p *GitHubProvider) Upload(ctx context.Context, keyword, dir string) error {
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
		opts := &github.RepositoryContentFileOptions{
			Message: github.String(fmt.Sprintf("Add %s for %q", name, keyword)),
			Content: files[name],
			Branch:  github.String(p.branch),
		}
		if _, _, err := p.client.Repositories.CreateFile(ctx, p.owner, p.repo, path, opts); err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}
	}
	return nil
}
