package search

import (
	"regexp"
	"strings"
	"unicode"
)

// stopWords are dropped during tokenization: common English function words
// plus a handful of keywords that dominate source files without carrying
// meaning.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"was": {}, "were": {}, "with": {}, "this": {}, "that": {}, "from": {},
	"they": {}, "them": {}, "have": {}, "has": {}, "had": {}, "been": {},
	"will": {}, "would": {}, "there": {}, "their": {}, "what": {},
	"which": {}, "when": {}, "where": {}, "who": {}, "how": {}, "all": {},
	"can": {}, "its": {}, "you": {}, "your": {},
	"function": {}, "class": {}, "const": {}, "var": {}, "let": {},
	"return": {}, "import": {}, "export": {}, "default": {},
}

var fragmentSplit = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Tokenize splits text into lowercase search tokens. Fragments are cut on
// runs of non-alphanumeric characters, then on lowercase-to-uppercase
// boundaries (camelCase), then lowercased. Tokens of length <= 2 and stop
// words are dropped. Duplicates are retained: term frequency matters to
// the ranker.
func Tokenize(text string) []string {
	var tokens []string
	for _, fragment := range fragmentSplit.Split(text, -1) {
		if fragment == "" {
			continue
		}
		for _, part := range splitCamel(fragment) {
			token := strings.ToLower(part)
			if len(token) <= 2 {
				continue
			}
			if _, stop := stopWords[token]; stop {
				continue
			}
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// splitCamel inserts a boundary between a lowercase letter and the
// uppercase letter immediately following it.
func splitCamel(s string) []string {
	var parts []string
	runes := []rune(s)
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	return append(parts, string(runes[start:]))
}
