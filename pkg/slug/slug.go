package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from a book title and author,
// e.g. ("The Hobbit", "J.R.R. Tolkien") → "the-hobbit-j-r-r-tolkien".
// Common Latin diacritics are transliterated to ASCII so catalog slugs
// stay stable across accented author names.
func Generate(parts ...string) string {
	s := strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))

	replacer := strings.NewReplacer(
		"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a",
		"è", "e", "é", "e", "ê", "e", "ë", "e",
		"ì", "i", "í", "i", "î", "i", "ï", "i",
		"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o",
		"ù", "u", "ú", "u", "û", "u", "ü", "u",
		"ç", "c", "ñ", "n", "ß", "ss",
	)
	s = replacer.Replace(s)

	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
