// Package textclean rewrites extracted résumé text into the canonical form
// the vectorizer was fitted on.
package textclean

import (
	"regexp"
	"strings"
)

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// space is Python's Unicode whitespace set. RE2's \s only covers
// [\t\n\f\r ], which would let URL and tag matches run through NBSP,
// \v or the \x1c-\x1f separators.
const space = `\t\n\v\f\r\x1c-\x1f\x85\p{Z}`

var (
	urlPattern        = regexp.MustCompile(`http[^` + space + `]+[` + space + `]*`)
	retweetPattern    = regexp.MustCompile(`RT|cc`)
	tagPattern        = regexp.MustCompile(`#[^` + space + `]+|@[^` + space + `]+`)
	whitespacePattern = regexp.MustCompile(`[\t\n\v\f\r \x1c-\x1f]+`)
)

// Clean applies, in order: URL removal, RT/cc removal, hashtag and mention
// removal, punctuation and non-ASCII blanking, whitespace collapsing, trim.
// The order matters: '#' and '@' are punctuation too.
func Clean(text string) string {
	text = urlPattern.ReplaceAllString(text, " ")
	text = retweetPattern.ReplaceAllString(text, " ")
	text = tagPattern.ReplaceAllString(text, " ")
	text = strings.Map(func(r rune) rune {
		if r >= 0x80 || strings.ContainsRune(punctuation, r) {
			return ' '
		}
		return r
	}, text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.Trim(text, " ")
}
