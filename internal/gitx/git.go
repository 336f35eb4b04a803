package gitx

import (
	"context"
	"fmt"
	"strings"
)

// DirtyCounts holds working tree change counts.
type DirtyCounts struct {
	Staged    int
	Unstaged  int
	Untracked int
}

// IsClean reports whether nothing is staged, modified or untracked.
func (d DirtyCounts) IsClean() bool {
	return d.Staged == 0 && d.Unstaged == 0 && d.Untracked == 0
}

// String formats the counts the way the git segment shows them.
func (d DirtyCounts) String() string {
	var parts []string
	if d.Staged > 0 {
		parts = append(parts, fmt.Sprintf("+%d", d.Staged))
	}
	if d.Unstaged > 0 {
		parts = append(parts, fmt.Sprintf("*%d", d.Unstaged))
	}
	if d.Untracked > 0 {
		parts = append(parts, fmt.Sprintf("?%d", d.Untracked))
	}
	return strings.Join(parts, " ")
}

// Client runs git queries for one working directory.
type Client struct {
	runner Runner
	dir    string
}

// NewClient creates a client rooted at dir.
func NewClient(runner Runner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

// Dir returns the working directory.
func (c *Client) Dir() string {
	return c.dir
}

func (c *Client) git(ctx context.Context, args ...string) (string, bool) {
	if c.dir == "" {
		return "", false
	}
	return c.runner.Run(ctx, c.dir, "git", args)
}

// Branch resolves the current branch. Outside a repository it returns "".
// On a detached HEAD it returns "<short sha> (detached)".
func (c *Client) Branch(ctx context.Context) string {
	name, ok := c.git(ctx, "branch", "--show-current")
	if !ok {
		return ""
	}
	if name != "" {
		return name
	}

	sha, ok := c.git(ctx, "rev-parse", "--short", "HEAD")
	if !ok || sha == "" {
		return ""
	}
	return sha + " (detached)"
}

// Dirty returns staged/unstaged/untracked counts. Failure yields zero counts.
func (c *Client) Dirty(ctx context.Context) DirtyCounts {
	out, ok := c.git(ctx, "status", "--porcelain")
	if !ok {
		return DirtyCounts{}
	}
	return ParsePorcelain(out)
}

// ParsePorcelain counts `git status --porcelain` (v1) lines.
//
// Output arrives trimmed, so a first line like " M file" reaches us as
// "M file". Porcelain always puts a space at column 2; when it is missing the
// stripped leading space is restored before classification.
func ParsePorcelain(out string) DirtyCounts {
	var counts DirtyCounts
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 2 {
			continue
		}
		if len(line) >= 3 && line[2] != ' ' && line[1] == ' ' {
			line = " " + line
		}

		x, y := line[0], line[1]
		if x == '?' && y == '?' {
			counts.Untracked++
			continue
		}
		if x == '!' {
			continue
		}
		if x != ' ' {
			counts.Staged++
		}
		if y != ' ' {
			counts.Unstaged++
		}
	}
	return counts
}
