// Package main prints the hexbot build version for -ldflags "-X main.version=...".
//
// The version comes from git and the release manifest:
//
//	No tags, clean:     1.4.0-dev+05ffee5   (1.4.0 read from .release-manifest.json)
//	No tags, dirty:     1.4.0-dev+05ffee5.dirty
//	On tag v1.4.0:      1.4.0
//	Dirty tag:          1.4.0-dirty
//	3 past v1.4.0:      1.4.0-dev.3+g1234567
//	Same but dirty:     1.4.0-dev.3+g1234567.dirty
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"tools.zach/dev/hexbot/internal/paths"
	"tools.zach/dev/hexbot/internal/update"
)

func main() {
	fmt.Print(buildVersion(git))
}

// git runs a git subcommand and returns its trimmed output.
func git(args ...string) (string, error) {
	out, err := exec.Command("git", args...).Output()
	return strings.TrimSpace(string(out)), err
}

// buildVersion assembles the version from run, which executes git.
func buildVersion(run func(args ...string) (string, error)) string {
	if desc, err := run("describe", "--tags", "--match", "v*", "--dirty"); err == nil {
		return parseDescribe(desc).String()
	}

	base := manifestVersion(paths.ReleaseManifest)
	hash, err := run("rev-parse", "--short=7", "HEAD")
	if err != nil {
		return base + "-dev"
	}
	v := base + "-dev+" + hash
	if status, err := run("status", "--porcelain"); err == nil && status != "" {
		v += ".dirty"
	}
	return v
}

// describe is the parsed output of git describe --tags --dirty.
type describe struct {
	tag   string // without the "v" prefix
	ahead string // commits past tag, "" on the tag itself
	hash  string // "g" + abbreviated hash
	dirty bool
}

// parseDescribe splits output such as "v1.4.0-3-g1234567-dirty". A tag
// that itself contains dashes, such as v2.0.0-beta.1, is kept whole.
func parseDescribe(s string) describe {
	var d describe
	s, d.dirty = strings.CutSuffix(s, "-dirty")
	s = strings.TrimPrefix(s, "v")

	parts := strings.Split(s, "-")
	if n := len(parts); n >= 3 && strings.HasPrefix(parts[n-1], "g") && isDigits(parts[n-2]) {
		d.tag = strings.Join(parts[:n-2], "-")
		d.ahead = parts[n-2]
		d.hash = parts[n-1]
		return d
	}
	d.tag = s
	return d
}

func (d describe) String() string {
	if d.ahead == "" {
		if d.dirty {
			return d.tag + "-dirty"
		}
		return d.tag
	}
	v := fmt.Sprintf("%s-dev.%s+%s", d.tag, d.ahead, d.hash)
	if d.dirty {
		v += ".dirty"
	}
	return v
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// manifestVersion reads the root version from the release manifest at
// path, or "0.0.0" when it is missing or has none.
func manifestVersion(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "0.0.0"
	}
	v, err := update.ParseManifest(data)
	if err != nil || v == "" {
		return "0.0.0"
	}
	return v
}
