package gateway

import (
	"fmt"
	"net/url"
	"strings"

	giturls "github.com/whilp/git-urls"
)

// ParseRepoURL extracts owner and repository name from a repository URL.
// It accepts https, ssh and scp-style remotes, with or without a ".git"
// suffix, and falls back to plain path segments when the URL parser
// rejects the input.
func ParseRepoURL(raw string) (owner, name string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("empty repository URL")
	}

	var path, host string
	if u, perr := giturls.Parse(raw); perr == nil {
		path, host = u.Path, u.Host
	} else if u, perr := url.Parse(raw); perr == nil {
		path, host = u.Path, u.Host
	} else {
		path = raw
	}

	segs := segments(path)
	// "github.com/acme/widgets" parses as a bare path; drop the host part.
	if host == "" && len(segs) > 2 && strings.Contains(segs[0], ".") {
		segs = segs[1:]
	}
	if len(segs) < 2 {
		return "", "", fmt.Errorf("repository URL %q has no owner/name path", raw)
	}

	return segs[0], strings.TrimSuffix(segs[1], ".git"), nil
}

func segments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
