package tabular

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Cell values keep word characters, accented Latin letters, whitespace,
	// @ . and - ; everything else is stripped before further checks.
	disallowedChars = regexp.MustCompile(`[^\w@.\sÀ-ÿ-]`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// missingMarkers are values treated as absent, checked case-insensitively
// after trimming.
var missingMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"#n/a": {},
}

// CleanCell normalizes one cell:
//
//  1. missing markers map to the empty string;
//  2. surrounding whitespace is trimmed;
//  3. disallowed characters are stripped;
//  4. well-formed emails are lowercased and returned as-is;
//  5. anything else still containing an @ maps to empty;
//  6. remaining text is capitalized word by word.
func CleanCell(value string) string {
	trimmed := strings.TrimSpace(value)
	if _, ok := missingMarkers[strings.ToLower(trimmed)]; ok {
		return ""
	}

	cleaned := disallowedChars.ReplaceAllString(trimmed, "")
	if emailPattern.MatchString(cleaned) {
		return strings.ToLower(cleaned)
	}
	if strings.Contains(cleaned, "@") {
		return ""
	}
	return capitalizeWords(cleaned)
}

// capitalizeWords uppercases the first rune of every whitespace-separated
// token and lowercases the rest, joining tokens with single spaces. Runs of
// whitespace collapse; hyphenated parts stay one token ("jean-pierre" →
// "Jean-pierre").
func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// dedupRows drops rows whose full cell tuple already appeared, keeping the
// first occurrence and preserving order.
func dedupRows(rows [][]string) [][]string {
	seen := make(map[string]struct{}, len(rows))
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}
