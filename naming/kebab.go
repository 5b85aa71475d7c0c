package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"golang.org/x/text/unicode/norm"
)

type runeClass int

const (
	classOther runeClass = iota
	classUpper
	classLower
	classDigit
)

func classify(r rune) runeClass {
	switch {
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsLetter(r), unicode.IsMark(r):
		// caseless scripts and combining marks stick to surrounding letters
		return classLower
	case unicode.IsDigit(r):
		return classDigit
	default:
		return classOther
	}
}

// splitWords breaks name into words: "Ab" capitalized words, "ab" lowercase
// runs, "AB" acronyms and "12" digit runs. Acronym immediately followed by
// capitalized word gives up its last letter: "HTMLParser" -> "HTML",
// "Parser". Anything else separates words.
func splitWords(name string) []string {
	runes := []rune(norm.NFC.String(name))
	words := make([]string, 0, 4)

	run := func(from int, class runeClass) int {
		for from < len(runes) && classify(runes[from]) == class {
			from++
		}
		return from
	}

	for i := 0; i < len(runes); {
		switch classify(runes[i]) {
		case classDigit:
			j := run(i, classDigit)
			words = append(words, string(runes[i:j]))
			i = j
		case classLower:
			j := run(i, classLower)
			words = append(words, string(runes[i:j]))
			i = j
		case classUpper:
			j := run(i, classUpper)
			if j < len(runes) && classify(runes[j]) == classLower {
				if j-i > 1 {
					// acronym followed by capitalized word
					words = append(words, string(runes[i:j-1]))
					i = j - 1
					continue
				}
				j = run(j, classLower)
			}
			words = append(words, string(runes[i:j]))
			i = j
		default:
			i++
		}
	}
	return words
}

// KebabCase converts arbitrary name to lowercase words joined by dashes,
// transliterating non ASCII letters so result could be used as CSS class
// name as is.
func KebabCase(name string) string {
	words := splitWords(name)
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if !isASCII(w) {
			w = slug.Make(w)
		}
		if len(w) > 0 {
			out = append(out, w)
		}
	}
	return strings.Join(out, "-")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
