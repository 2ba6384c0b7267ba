package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/go-enry/go-enry/v2"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/filetree"
)

// RepoMetadata is the subset of GET /repos/{owner}/{repo} we display.
type RepoMetadata struct {
	Description     string    `json:"description"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (c *Client) githubHeader() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/vnd.github+json")
	h.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.cfg.GitHubToken != "" {
		h.Set("Authorization", "Bearer "+c.cfg.GitHubToken)
	}
	return h
}

func (c *Client) repoURL(owner, name string) string {
	return fmt.Sprintf("%s/repos/%s/%s", c.cfg.GitHubAPIURL, url.PathEscape(owner), url.PathEscape(name))
}

// FetchMetadata returns public metadata for owner/name.
func (c *Client) FetchMetadata(ctx context.Context, owner, name string) (*RepoMetadata, error) {
	var meta RepoMetadata
	if err := c.doJSON(ctx, http.MethodGet, c.repoURL(owner, name), nil, &meta, c.githubHeader()); err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	return &meta, nil
}

// FetchLanguages returns the byte count per language for owner/name.
func (c *Client) FetchLanguages(ctx context.Context, owner, name string) (map[string]int64, error) {
	langs := map[string]int64{}
	if err := c.doJSON(ctx, http.MethodGet, c.repoURL(owner, name)+"/languages", nil, &langs, c.githubHeader()); err != nil {
		return nil, fmt.Errorf("fetch languages: %w", err)
	}
	return langs, nil
}

// PrimaryLanguage returns the language with the most bytes. Ties go to the
// alphabetically first name so the result is stable.
func PrimaryLanguage(langs map[string]int64) string {
	best, bestBytes := "", int64(-1)
	for lang, n := range langs {
		if n > bestBytes || (n == bestBytes && lang < best) {
			best, bestBytes = lang, n
		}
	}
	return best
}

// GuessLanguage picks the dominant programming language of a tree from
// file names alone. Vendored, documentation and configuration files are
// ignored. Returns "" when nothing is recognized.
func GuessLanguage(tree []domain.FileNode) string {
	counts := map[string]int64{}
	for _, f := range filetree.Files(tree) {
		if enry.IsVendor(f.Path) || enry.IsDocumentation(f.Path) || enry.IsConfiguration(f.Path) {
			continue
		}
		lang, _ := enry.GetLanguageByExtension(f.Name)
		if lang == "" {
			lang, _ = enry.GetLanguageByFilename(f.Name)
		}
		if lang == "" || enry.GetLanguageType(lang) != enry.Programming {
			continue
		}
		counts[lang]++
	}
	return PrimaryLanguage(counts)
}

// languageNames lists langs by descending byte count, for logging.
func languageNames(langs map[string]int64) []string {
	names := make([]string, 0, len(langs))
	for l := range langs {
		names = append(names, l)
	}
	sort.Slice(names, func(i, j int) bool {
		if langs[names[i]] != langs[names[j]] {
			return langs[names[i]] > langs[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
