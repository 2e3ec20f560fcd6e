package cinedex

import (
	"fmt"
	"strings"
)

// FormatMovie formats a movie and its associations for display.
// Empty attributes and association kinds are omitted.
func FormatMovie(m *Movie) string {
	var b strings.Builder
	b.WriteString("## " + m.Name + "\n")

	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	if m.ReleaseDate != nil {
		line("Released", m.ReleaseDate.Format(DateLayout))
	}
	if m.Runtime > 0 {
		line("Runtime", fmt.Sprintf("%d min", m.Runtime))
	}
	line("Rated", m.ContentRating)
	if m.SourceRank > 0 {
		line("Rank", fmt.Sprintf("%d", m.SourceRank))
	}
	if m.SourceScore > 0 {
		line("Score", fmt.Sprintf("%g", m.SourceScore))
	}
	for _, k := range Kinds {
		line(kindLabels[k], joinTaxonomyNames(m.Taxonomies(k)))
	}
	line("Source", m.SourceURL)

	if m.Synopsis != "" {
		b.WriteString("\n" + m.Synopsis + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

var kindLabels = [KindCount]string{
	KindCast:     "Cast",
	KindCreator:  "Creators",
	KindDirector: "Directors",
	KindGenre:    "Genres",
	KindKeyword:  "Keywords",
}

func joinTaxonomyNames(ts []*Taxonomy) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
