// Package publish uploads rendered slides to a GitHub repository and returns
// a stable raw-content URL for them.
package publish

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"

	"github.com/medscafe/flowerslide/internal/config"
	"github.com/medscafe/flowerslide/internal/errors"
)

const rawContentBase = "https://raw.githubusercontent.com"

// RemoteFileRef addresses a file in a repository. SHA is the content hash
// GitHub requires on update; it is read right before the update and never cached.
type RemoteFileRef struct {
	Repo   string
	Branch string
	Path   string
	SHA    string
}

// RawURL returns the raw-content URL of the file at its branch.
func (r RemoteFileRef) RawURL() string {
	return fmt.Sprintf("%s/%s/%s/%s", rawContentBase, r.Repo, r.Branch, r.Path)
}

// GitHubPublisher upserts files through the GitHub contents API.
type GitHubPublisher struct {
	cfg    config.GitHubConfig
	client *github.Client
	log    *slog.Logger
	now    func() time.Time
}

type Option func(*GitHubPublisher)

func WithLogger(l *slog.Logger) Option {
	return func(p *GitHubPublisher) {
		p.log = l
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(p *GitHubPublisher) {
		p.client = github.NewClient(c)
	}
}

// WithClock overrides the time used in commit messages.
func WithClock(now func() time.Time) Option {
	return func(p *GitHubPublisher) {
		p.now = now
	}
}

// NewGitHubPublisher builds a publisher from cfg. A missing token is not an
// error here; Publish reports it.
func NewGitHubPublisher(cfg config.GitHubConfig, opts ...Option) (*GitHubPublisher, error) {
	p := &GitHubPublisher{
		cfg:    cfg,
		client: github.NewClient(nil),
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if cfg.APIURL != "" {
		u, err := url.Parse(strings.TrimRight(cfg.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse github api url: %w", err)
		}
		p.client.BaseURL = u
	}
	if cfg.Token != "" {
		p.client = p.client.WithAuthToken(cfg.Token)
	}
	return p, nil
}

// Publish uploads filePath to <remote dir>/<basename> on repo ("owner/name")
// at branch, creating or updating it, and returns its raw-content URL. An
// empty branch means "main". Failures are logged and returned with an empty URL.
func (p *GitHubPublisher) Publish(ctx context.Context, filePath, repo, branch string) (string, error) {
	rawURL, err := p.publish(ctx, filePath, repo, branch)
	if err != nil {
		p.log.Error("error uploading to github", "path", filePath, "repo", repo, "branch", branch, "error", err)
		return "", err
	}
	p.log.Info("uploaded to github", "path", filePath, "url", rawURL)
	return rawURL, nil
}

func (p *GitHubPublisher) publish(ctx context.Context, filePath, repo, branch string) (string, error) {
	if p.cfg.Token == "" {
		return "", errors.NewConfiguration("GITHUB_TOKEN", "GITHUB_TOKEN environment variable not set")
	}
	owner, name, ok := splitRepo(repo)
	if !ok {
		return "", errors.NewConfiguration("FLOWERSLIDE_REPO", fmt.Sprintf("repository must be owner/name, got %q", repo))
	}
	if branch == "" {
		branch = "main"
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filePath, err)
	}

	ref := RemoteFileRef{
		Repo:   repo,
		Branch: branch,
		Path:   path.Join(p.cfg.RemoteDir, filepath.Base(filePath)),
	}
	found, err := p.lookup(ctx, owner, name, &ref)
	if err != nil {
		return "", err
	}

	stamp := p.now().Format("2006-01-02 15:04:05")
	opts := &github.RepositoryContentFileOptions{
		Content: content,
		Branch:  github.String(branch),
	}
	if found {
		opts.Message = github.String("Update flower graphic - " + stamp)
		opts.SHA = github.String(ref.SHA)
		if _, _, err := p.client.Repositories.UpdateFile(ctx, owner, name, ref.Path, opts); err != nil {
			return "", fmt.Errorf("update %s: %w", ref.Path, err)
		}
	} else {
		opts.Message = github.String("Add flower graphic - " + stamp)
		if _, _, err := p.client.Repositories.CreateFile(ctx, owner, name, ref.Path, opts); err != nil {
			return "", fmt.Errorf("create %s: %w", ref.Path, err)
		}
	}

	return ref.RawURL(), nil
}

// lookup fills ref.SHA when the file exists. A 404 is reported as
// found == false; every other failure is an error.
func (p *GitHubPublisher) lookup(ctx context.Context, owner, name string, ref *RemoteFileRef) (bool, error) {
	file, _, resp, err := p.client.Repositories.GetContents(ctx, owner, name, ref.Path,
		&github.RepositoryContentGetOptions{Ref: ref.Branch})
	if err != nil {
		if isNotFound(resp, err) {
			return false, nil
		}
		return false, fmt.Errorf("get %s@%s: %w", ref.Path, ref.Branch, err)
	}
	if file == nil {
		return false, fmt.Errorf("%s is a directory", ref.Path)
	}
	ref.SHA = file.GetSHA()
	return true, nil
}

func isNotFound(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var ghErr *github.ErrorResponse
	return stderrors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

func splitRepo(repo string) (string, string, bool) {
	owner, name, ok := strings.Cut(strings.TrimSpace(repo), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return owner, name, true
}
