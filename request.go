package hexbot

import "strings"

// DefaultEndpoint is the public Hexbot API.
const DefaultEndpoint = "https://api.noopschallenge.com/hexbot"

// Request groups the optional query parameters of one call. The zero value
// requests a single color with the service defaults.
type Request struct {
	Count Count
	Size  WidthHeight
	Seed  Seed
}

// URL returns the request URL for endpoint. See [BuildURL].
func (r Request) URL(endpoint string) string {
	return BuildURL(endpoint, r.Count, r.Size, r.Seed)
}

// BuildURL composes the request URL: endpoint, "?", then "&count=N",
// "&width=W&height=H" and "&seed=S" for each parameter that is present, in
// that order. Absent parameters add nothing.
func BuildURL(endpoint string, count Count, size WidthHeight, seed Seed) string {
	var b strings.Builder
	b.WriteString(endpoint)
	b.WriteByte('?')
	if count.Present() {
		b.WriteString("&count=")
		b.WriteString(count.String())
	}
	if size.Present() {
		b.WriteString("&width=")
		b.WriteString(size.Width().String())
		b.WriteString("&height=")
		b.WriteString(size.Height().String())
	}
	if seed.Present() {
		b.WriteString("&seed=")
		b.WriteString(seed.String())
	}
	return b.String()
}
