package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Product metadata lives inside the media directory identifier itself:
//
//	Home/<category>/<slugified-title>-<price-in-cents>
//
// There is no product database. Encode and Decode are the two halves of
// that naming convention and must stay in lockstep: every identifier the
// uploader writes has to be parseable by the listing path, including the
// legacy pre-category forms (`<category>/<slug>` and bare `<slug>`).

// RootFolder is the fixed top folder in the media directory.
const RootFolder = "Home"

// CategoryMiscelanea is the fallback for identifiers whose category
// segment is missing or not in the closed set.
const CategoryMiscelanea = "miscelanea"

// Categories is the closed category set, short names as used in query
// parameters and folder names.
var Categories = []string{"hombres", "mujeres", "ninos", "deportivos", "miscelanea"}

// ValidCategory reports whether name is one of the closed set.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// CategoryFolder maps a short category name to its folder path,
// e.g. "hombres" -> "Home/hombres".
func CategoryFolder(name string) (string, bool) {
	if !ValidCategory(name) {
		return "", false
	}
	return RootFolder + "/" + name, true
}

var hyphenRun = regexp.MustCompile(`-+`)

// Slugify normalizes a product title for use in an identifier:
// lowercase, diacritics stripped, only word characters and hyphens kept,
// whitespace runs turned into single hyphens. Lossy on purpose.
func Slugify(title string) string {
	t := norm.NFD.String(strings.ToLower(title))

	var b strings.Builder
	for _, r := range t {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from decomposition
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			// anything else (punctuation, symbols, non-latin letters) is dropped
		}
	}

	s := strings.Join(strings.Fields(b.String()), "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Encode builds the slug portion of an identifier from a title and a
// price in major units: "<slug>-<cents>". The caller prefixes the
// category folder when it builds the full identifier.
func Encode(title string, price float64) string {
	cents := int64(math.Round(price * 100))
	return fmt.Sprintf("%s-%d", Slugify(title), cents)
}

// PublicID builds the full identifier for a new product. An invalid
// category falls back to miscelanea rather than failing the upload.
func PublicID(category, title string, price float64) string {
	folder, ok := CategoryFolder(category)
	if !ok {
		folder, _ = CategoryFolder(CategoryMiscelanea)
	}
	return folder + "/" + Encode(title, price)
}

// Decoded is the metadata recovered from one identifier.
type Decoded struct {
	Title    string
	Price    float64
	Category string
}

// Decode parses an identifier back into product metadata. The second
// return value is false when the identifier is not a product at all
// (no trailing all-digit price segment); callers use it as a filter, so
// it never panics and never partially succeeds.
func Decode(id string) (Decoded, bool) {
	category := CategoryMiscelanea
	slug := id

	parts := strings.Split(id, "/")
	switch {
	case len(parts) >= 3 && parts[0] == RootFolder:
		category = parts[1]
		slug = parts[len(parts)-1]
	case len(parts) == 2:
		// legacy form: <category>/<slug>
		category = strings.TrimPrefix(parts[0], RootFolder+"/")
		slug = parts[1]
	}
	if !ValidCategory(category) {
		category = CategoryMiscelanea
	}

	pieces := strings.Split(slug, "-")
	last := pieces[len(pieces)-1]
	if !isAllDigits(last) {
		return Decoded{}, false
	}
	cents, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		// all-digit but too large to be a price
		return Decoded{}, false
	}

	words := make([]string, 0, len(pieces)-1)
	for _, piece := range pieces[:len(pieces)-1] {
		if piece == "" {
			continue
		}
		words = append(words, capitalize(piece))
	}

	return Decoded{
		Title:    strings.Join(words, " "),
		Price:    float64(cents) / 100,
		Category: category,
	}, true
}

// IsProductID reports whether Decode would accept id. Listing code uses
// it as the filter predicate before mapping.
func IsProductID(id string) bool {
	_, ok := Decode(id)
	return ok
}

func isAllDigits(s string) bool {
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

func capitalize(word string) string {
	r := []rune(word)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
