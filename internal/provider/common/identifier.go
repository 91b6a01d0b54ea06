package common

import (
	"fmt"
	"regexp"
	"strings"
)

var contentsURLRegex = regexp.MustCompile(`^https://api\.github\.com/repos/([^/]+)/([^/]+)/contents`)

// ParseContentsURL extracts owner and repository from a search result's
// contents_url, e.g. "https://api.github.com/repos/owner/repo/contents/{+path}".
func ParseContentsURL(contentsURL string) (user, repo string, err error) {
	matches := contentsURLRegex.FindStringSubmatch(contentsURL)
	if len(matches) != 3 {
		return "", "", fmt.Errorf("%w: '%s'", ErrInvalidContentsURL, contentsURL)
	}
	return matches[1], matches[2], nil
}

// ParseFullName splits "owner/repo".
func ParseFullName(fullName string) (user, repo string, err error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: expected 'owner/repo', got '%s'", ErrInvalidContentsURL, fullName)
	}
	return parts[0], parts[1], nil
}

// RawURL joins a raw-content base with repository coordinates and a path.
func RawURL(base, user, repo, branch, path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", strings.TrimSuffix(base, "/"), user, repo, branch, strings.TrimPrefix(path, "/"))
}
