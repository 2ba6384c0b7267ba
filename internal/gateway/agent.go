package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/joss/repochat/internal/domain"
)

// agentFilePrefix is where the backend expects agent inputs to live.
const agentFilePrefix = "./temp/cloned_repo/"

// noResults replaces an empty agent answer.
const noResults = "No results returned."

type agentRequest struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// RunAgent runs one analysis agent over a file's content. A returned
// result always has StatusSuccess; failures come back as *domain.AgentError.
func (c *Client) RunAgent(ctx context.Context, kind domain.AgentKind, filePath, content string) (*domain.AgentResult, error) {
	if !kind.Valid() {
		aerr := &domain.AgentError{Kind: kind, Err: fmt.Errorf("agent type %q not supported", kind)}
		c.log.Warn("agent_failed", map[string]interface{}{"path": filePath}, aerr)
		return nil, aerr
	}

	req := agentRequest{
		FilePath: agentFilePrefix + strings.TrimPrefix(filePath, "/"),
		Content:  content,
	}

	var resp answerResponse
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.BackendURL+kind.Endpoint(), req, &resp, nil); err != nil {
		status, msg, cause := split(err)
		aerr := &domain.AgentError{Kind: kind, Status: status, Message: msg, Err: cause}
		c.log.Warn("agent_failed", map[string]interface{}{"agent": string(kind), "path": filePath}, aerr)
		return nil, aerr
	}

	answer := resp.Answer
	if strings.TrimSpace(answer) == "" {
		answer = noResults
	}

	c.log.Info("agent_completed", map[string]interface{}{"agent": string(kind), "path": filePath})
	return &domain.AgentResult{
		Kind:       kind,
		Title:      kind.Title(),
		Content:    answer,
		Status:     domain.StatusSuccess,
		ProducedAt: c.now(),
		FilePath:   filePath,
	}, nil
}
