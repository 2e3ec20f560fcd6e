package crawl

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// pageFingerprint identifies a listing page by its raw markup, so pages
// whose entries all lack a name still differ.
func pageFingerprint(html string) uint64 {
	return xxhash.Sum64String(html)
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// String summarizes the result on one line.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d saved", r.Saved)
	if r.Failed > 0 {
		fmt.Fprintf(&b, ", %d failed", r.Failed)
	}
	if r.Skipped > 0 {
		fmt.Fprintf(&b, ", %d skipped", r.Skipped)
	}
	fmt.Fprintf(&b, " (%d entries on %d pages)", r.Entries, r.Pages)
	return b.String()
}
