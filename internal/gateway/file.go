package gateway

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/joss/repochat/internal/domain"
)

// FetchFileContent returns the text of filePath in the current repository.
// The backend serves clones under temp/<repository name>/.
func (c *Client) FetchFileContent(ctx context.Context, filePath string) (string, error) {
	full := path.Join("temp", c.repoName(ctx), strings.TrimPrefix(filePath, "/"))
	endpoint := c.cfg.BackendURL + "/view-file?file_path=" + url.QueryEscape(full)

	data, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		status, msg, cause := split(err)
		ferr := &domain.FetchError{Path: filePath, Status: status, Message: msg, Err: cause}
		c.log.Warn("fetch_file_failed", map[string]interface{}{"path": filePath}, ferr)
		return "", ferr
	}
	return string(data), nil
}
