// Package update checks for newer hexbot releases via the release manifest.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tools.zach/dev/hexbot"
)

// ErrNoManifest is returned when no manifest URL is configured.
var ErrNoManifest = errors.New("no release manifest configured")

// Result is the outcome of a version check.
type Result struct {
	Current string
	Latest  string
	// Newer is true when Latest is a higher version than Current.
	Newer bool
}

// ///////////////////////////////////////////////
// Checker
// ///////////////////////////////////////////////

// Checker fetches the release manifest through a [hexbot.Transport].
type Checker struct {
	Transport hexbot.Transport
	// URL of the manifest, a JSON object whose "." key holds the latest
	// stable version.
	URL string
}

// Check fetches the manifest and compares its version with current.
func (c Checker) Check(ctx context.Context, current string) (Result, error) {
	res := Result{Current: current}
	if c.URL == "" {
		return res, ErrNoManifest
	}
	latest, err := c.fetchLatest(ctx)
	if err != nil {
		return res, err
	}
	res.Latest = latest
	res.Newer = latest != "" && latest != current && semverLess(current, latest)
	return res, nil
}

// fetchLatest downloads the release manifest and returns the version stored
// under the "." key.
func (c Checker) fetchLatest(ctx context.Context) (string, error) {
	body, err := c.Transport.Get(ctx, c.URL)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", c.URL, err)
	}
	return ParseManifest(body)
}

// ParseManifest returns the root version of a release manifest such as
// {".": "1.4.0"}. A manifest without a root entry yields "".
func ParseManifest(data []byte) (string, error) {
	var manifest map[string]string
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("parsing manifest: %w", err)
	}
	return manifest["."], nil
}

// ///////////////////////////////////////////////
// Version comparison
// ///////////////////////////////////////////////

// semverLess reports whether a < b. Versions that are not of the form
// [v]MAJOR.MINOR.PATCH[-pre][+build] never compare less. A pre-release is
// less than the same version without one.
func semverLess(a, b string) bool {
	pa, aPre, okA := parseSemver(a)
	pb, bPre, okB := parseSemver(b)
	if !okA || !okB {
		return false
	}
	for i := range pa {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return aPre && !bPre
}

// parseSemver returns the numeric core of s and whether it carries a
// pre-release suffix.
func parseSemver(s string) (core [3]int, pre bool, ok bool) {
	s = strings.TrimPrefix(s, "v")
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s, pre = s[:i], true
	}
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return core, false, false
	}
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return core, false, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return core, false, false
		}
		core[i] = n
	}
	return core, pre, true
}
