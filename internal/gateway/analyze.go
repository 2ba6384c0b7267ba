package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/filetree"
)

type uploadRequest struct {
	RepoURL string `json:"repo_url"`
}

type uploadResponse struct {
	Summary         string          `json:"summary"`
	Description     string          `json:"description"`
	FileTree        json.RawMessage `json:"file_tree"`
	ChunksProcessed int             `json:"chunks_processed"`
}

// AnalyzeRepository submits repoURL for analysis and returns the new
// session. GitHub metadata is best effort: failures are logged and the
// session falls back to defaults. The session is cached in the store.
func (c *Client) AnalyzeRepository(ctx context.Context, repoURL string) (*domain.RepositorySession, error) {
	start := time.Now()
	c.log.Info("analyze_started", map[string]interface{}{"url": repoURL})

	var resp uploadResponse
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.BackendURL+"/upload-repo", uploadRequest{RepoURL: repoURL}, &resp, nil); err != nil {
		status, msg, cause := split(err)
		aerr := &domain.AnalysisError{URL: repoURL, Status: status, Message: msg, Err: cause}
		c.log.Error("analyze_failed", map[string]interface{}{"url": repoURL}, aerr)
		return nil, aerr
	}

	owner, name, err := ParseRepoURL(repoURL)
	if err != nil {
		aerr := &domain.AnalysisError{URL: repoURL, Err: err}
		c.log.Error("analyze_failed", map[string]interface{}{"url": repoURL}, aerr)
		return nil, aerr
	}

	var raw any
	if len(resp.FileTree) > 0 {
		if err := json.Unmarshal(resp.FileTree, &raw); err != nil {
			c.log.Warn("file_tree_malformed", map[string]interface{}{"url": repoURL}, err)
		}
	}

	sess := &domain.RepositorySession{
		SourceURL:       repoURL,
		Name:            name,
		Owner:           owner,
		Summary:         resp.Summary,
		Description:     resp.Description,
		FileTree:        filetree.Transform(raw),
		ChunksProcessed: resp.ChunksProcessed,
		LastUpdatedAt:   c.now(),
	}

	c.enrich(ctx, sess)

	if c.sessions != nil {
		if err := c.sessions.Save(ctx, sess); err != nil {
			c.log.Warn("session_save_failed", map[string]interface{}{"repo": sess.FullName()}, err)
		}
	}

	files, dirs := filetree.Count(sess.FileTree)
	c.log.TimedEvent("analyze_completed", start, map[string]interface{}{
		"repo":     sess.FullName(),
		"files":    files,
		"dirs":     dirs,
		"chunks":   sess.ChunksProcessed,
		"language": sess.PrimaryLanguage,
	})
	return sess, nil
}

// enrich fills GitHub metadata into sess. The two lookups run concurrently
// and each one's result is applied independently of the other's failure.
func (c *Client) enrich(ctx context.Context, sess *domain.RepositorySession) {
	var (
		meta  *RepoMetadata
		langs map[string]int64
		g     errgroup.Group
	)

	repo := sess.FullName()
	g.Go(func() error {
		m, err := c.FetchMetadata(ctx, sess.Owner, sess.Name)
		if err != nil {
			c.log.Warn("enrichment_failed", map[string]interface{}{"repo": repo, "call": "metadata"}, err)
		}
		meta = m
		return err
	})
	g.Go(func() error {
		l, err := c.FetchLanguages(ctx, sess.Owner, sess.Name)
		if err != nil {
			c.log.Warn("enrichment_failed", map[string]interface{}{"repo": repo, "call": "languages"}, err)
		}
		langs = l
		return err
	})

	// each failure is logged above
	_ = g.Wait()

	if meta != nil {
		if meta.Description != "" {
			sess.Description = meta.Description
		}
		sess.StarCount = meta.StargazersCount
		sess.ForkCount = meta.ForksCount
		sess.OpenIssuesCount = meta.OpenIssuesCount
		if !meta.UpdatedAt.IsZero() {
			sess.LastUpdatedAt = meta.UpdatedAt
		}
	}

	sess.PrimaryLanguage = PrimaryLanguage(langs)
	if sess.PrimaryLanguage == "" {
		sess.PrimaryLanguage = GuessLanguage(sess.FileTree)
		c.log.Debug("language_guessed", map[string]interface{}{"language": sess.PrimaryLanguage})
	} else {
		c.log.Debug("languages", map[string]interface{}{"ranked": languageNames(langs)})
	}
}
