// Package remote locates the GitHub repository that publishes hexbot
// releases.
//
// Values set at build time via ldflags take precedence; otherwise the
// repository is derived from the local git remote origin.
package remote

import (
	"context"
	"log/slog"
	"os/exec"
	"regexp"
	"time"
)

// Set at build time via:
//
//	-X tools.zach/dev/hexbot/internal/remote.ldOwner=...
//	-X tools.zach/dev/hexbot/internal/remote.ldRepo=...
var (
	ldOwner string
	ldRepo  string
)

// DefaultBranch is the branch raw files are served from.
const DefaultBranch = "main"

// githubRemoteRe extracts owner and repo from GitHub remote URLs.
// Matches both HTTPS (github.com/) and SSH (github.com:) formats.
var githubRemoteRe = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/.\s]+)`)

// Repository identifies a GitHub repository and branch.
type Repository struct {
	Owner  string
	Repo   string
	Branch string
}

// Known reports whether both owner and repo are set.
func (r Repository) Known() bool { return r.Owner != "" && r.Repo != "" }

// RawURL returns the raw content URL of path, or "" when the repository is
// unknown.
func (r Repository) RawURL(path string) string {
	if !r.Known() {
		return ""
	}
	branch := r.Branch
	if branch == "" {
		branch = DefaultBranch
	}
	return "https://raw.githubusercontent.com/" + r.Owner + "/" + r.Repo + "/" + branch + "/" + path
}

// Parse extracts the repository from a GitHub remote URL.
func Parse(url string) (Repository, bool) {
	m := githubRemoteRe.FindStringSubmatch(url)
	if len(m) != 3 {
		return Repository{}, false
	}
	return Repository{Owner: m[1], Repo: m[2], Branch: DefaultBranch}, true
}

// Resolve returns the build-time repository if one was linked in, else the
// one named by `git remote get-url origin`. The zero Repository is returned
// when neither is available.
func Resolve(ctx context.Context) Repository {
	if ldOwner != "" && ldRepo != "" {
		return Repository{Owner: ldOwner, Repo: ldRepo, Branch: DefaultBranch}
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, "git", "remote", "get-url", "origin").Output()
	if err != nil {
		slog.Debug("remote: ldflags not set and git remote unavailable", "error", err)
		return Repository{}
	}
	r, ok := Parse(string(out))
	if !ok {
		slog.Debug("remote: origin is not a GitHub URL", "origin", string(out))
	}
	return r
}
