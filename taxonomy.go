package cinedex

import (
	"context"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Kind identifies one of the taxonomy entity kinds a movie references.
type Kind int

// Kind constants. The set is closed; KindCount is not a kind.
const (
	KindCast Kind = iota
	KindCreator
	KindDirector
	KindGenre
	KindKeyword

	KindCount
)

// Kinds lists every taxonomy kind in search document order.
var Kinds = []Kind{KindCast, KindCreator, KindDirector, KindGenre, KindKeyword}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < KindCount
}

// String returns the plural name of the kind, e.g. "cast_members".
func (k Kind) String() string {
	switch k {
	case KindCast:
		return "cast_members"
	case KindCreator:
		return "creators"
	case KindDirector:
		return "directors"
	case KindGenre:
		return "genres"
	case KindKeyword:
		return "keywords"
	}
	return "unknown"
}

// ParseKind returns the kind named by s, accepting the values of Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, Errorf(EINVALID, "unknown taxonomy kind %q", s)
}

// Taxonomy is a shared entity referenced by movies: a cast member, creator,
// director, genre or keyword. Tag is unique within a kind; Name is for display.
type Taxonomy struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	Tag       string    `json:"tag"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the taxonomy contains invalid fields.
func (t *Taxonomy) Validate() error {
	if !t.Kind.Valid() {
		return Errorf(EINVALID, "taxonomy kind %d unsupported", int(t.Kind))
	}
	if t.Name == "" {
		return Errorf(EINVALID, "taxonomy name required")
	}
	if t.Tag == "" {
		return Errorf(EINVALID, "taxonomy tag required")
	}
	return nil
}

// TaxonomyService represents a service for managing taxonomy entities.
type TaxonomyService interface {
	// CreateTaxonomy creates a new taxonomy entity.
	// Returns ECONFLICT if the tag is already taken within the kind.
	CreateTaxonomy(ctx context.Context, t *Taxonomy) error

	// FindTaxonomyByID retrieves a taxonomy entity by kind and ID.
	// Returns ENOTFOUND if it does not exist.
	FindTaxonomyByID(ctx context.Context, kind Kind, id string) (*Taxonomy, error)

	// FindTaxonomies retrieves taxonomy entities of one kind matching the filter.
	FindTaxonomies(ctx context.Context, filter TaxonomyFilter) ([]*Taxonomy, error)
}

// TaxonomyFilter represents a filter for FindTaxonomies.
type TaxonomyFilter struct {
	Kind Kind    `json:"kind"`
	Tag  *string `json:"tag"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Tag returns the resolution key for a display name: accents stripped,
// lower-cased, with every run of characters other than letters and digits
// collapsed into a single hyphen.
//
//	Tag("World War II")  // "world-war-ii"
//	Tag("Amélie")        // "amelie"
func Tag(name string) string {
	folded := Fold(name)

	var b strings.Builder
	pending := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// Fold lower-cases s and strips its accents, e.g. "L'ÉCOLE" becomes
// "l'ecole". Tags and substring search compare folded text.
func Fold(s string) string {
	t := transform.Chain(norm.NFKD, stripMarks, norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
