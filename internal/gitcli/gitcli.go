package gitcli

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client invokes the git binary for one repository.
type Client struct {
	repoRoot string
}

// Discover locates the repository containing path and returns a client
// rooted there.
func Discover(path string) (*Client, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = filepath.Dir(path)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git repository not detected: %w", err)
	}
	return &Client{repoRoot: strings.TrimSpace(string(out))}, nil
}

// RepoRoot returns the absolute path of the repository root.
func (c *Client) RepoRoot() string { return c.repoRoot }

// Blame runs `git blame --line-porcelain` on the working-tree copy of path
// and returns the raw report lines. The call blocks until git exits; there
// is no timeout. On a non-zero exit the returned error carries git's own
// output verbatim.
func (c *Client) Blame(path string) ([]string, error) {
	rel, err := c.relPath(path)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("git", "-C", c.repoRoot, "blame", "--line-porcelain", "--", rel)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			body := strings.TrimSpace(string(exitErr.Stderr) + string(out))
			if body != "" {
				return nil, errors.New(body)
			}
		}
		return nil, err
	}

	text := strings.TrimSuffix(string(out), "\n")
	if text == "" {
		return []string{}, nil
	}
	return strings.Split(text, "\n"), nil
}

func (c *Client) relPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(c.repoRoot, abs)
	if err != nil {
		return "", err
	}
	return rel, nil
}
