package cinedex

import (
	"net/url"
	"strings"
)

// QueryParam is a single query string key/value pair.
type QueryParam struct {
	Key   string
	Value string
}

// ParseURL parses a raw absolute or relative URL. Unlike url.Parse it
// rejects input containing whitespace or control characters, which is never
// a usable link. Returns EINVALID on failure.
func ParseURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, Errorf(EINVALID, "empty URL")
	}
	if strings.ContainsFunc(raw, func(r rune) bool { return r <= ' ' || r == 0x7f }) {
		return nil, Errorf(EINVALID, "invalid URL %q", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	return u, nil
}

// BuildURL appends params, in order, to the query string of base. An
// existing query is kept ahead of the new parameters and an existing
// fragment is reattached after the rewritten query. With no params the base
// is returned as given. Returns EINVALID if base cannot be parsed.
func BuildURL(base string, params ...QueryParam) (string, error) {
	u, err := ParseURL(base)
	if err != nil {
		return "", err
	}
	if len(params) == 0 {
		return base, nil
	}

	parts := make([]string, 0, len(params)+1)
	if u.RawQuery != "" {
		parts = append(parts, u.RawQuery)
	}
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	u.RawQuery = strings.Join(parts, "&")
	u.ForceQuery = false

	return u.String(), nil
}

// ResolveURL qualifies href against base. Absolute hrefs on the base host
// are returned unchanged and relative ones are resolved. Returns an empty
// string for links to another host or when either side cannot be parsed.
func ResolveURL(base, href string) string {
	ref, err := ParseURL(href)
	if err != nil {
		return ""
	}
	b, err := ParseURL(base)
	if err != nil {
		return ""
	}
	resolved := b.ResolveReference(ref)
	if !strings.EqualFold(resolved.Hostname(), b.Hostname()) {
		return ""
	}
	if ref.IsAbs() {
		return href
	}
	return resolved.String()
}
