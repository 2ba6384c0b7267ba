package gateway

import (
	"context"
	"net/http"

	"github.com/joss/repochat/internal/domain"
)

type chatRequest struct {
	Query    string `json:"query"`
	RepoName string `json:"repo_name"`
}

type answerResponse struct {
	Answer string `json:"answer"`
}

// AskQuestion sends a natural-language question about the current
// repository and returns the assistant's answer.
func (c *Client) AskQuestion(ctx context.Context, question string) (string, error) {
	req := chatRequest{Query: question, RepoName: c.repoName(ctx)}

	var resp answerResponse
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.BackendURL+"/chat", req, &resp, nil); err != nil {
		status, msg, cause := split(err)
		cerr := &domain.ChatError{Status: status, Message: msg, Err: cause}
		c.log.Warn("chat_failed", map[string]interface{}{"repo": req.RepoName}, cerr)
		return "", cerr
	}
	return resp.Answer, nil
}
