package parsing

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// maxUserNumber is the highest "User<n>" number mapped onto a client id.
const maxUserNumber = 100

var (
	productIDPattern = regexp.MustCompile(`(?i)\bP(\d{1,3})\b`)
	clientIDPattern  = regexp.MustCompile(`(?i)\bC(\d{1,4})\b`)
	userPatterns     = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\buser\s*(\d+)\b`),
		regexp.MustCompile(`(?i)\busuario\s+(\d+)\b`),
	}
)

// keywordVocabulary lists clothing nouns, materials, fit adjectives and colors.
var keywordVocabulary = map[string]bool{
	// garments
	"abrigo": true, "camisa": true, "pantalón": true, "pantalon": true, "vestido": true,
	"blusa": true, "falda": true, "chaqueta": true, "suéter": true, "sueter": true,
	"jersey": true, "camiseta": true, "polo": true, "blazer": true, "cárdigan": true,
	// materials
	"algodón": true, "algodon": true, "lana": true, "lino": true, "poliéster": true,
	"poliester": true, "seda": true, "mezcla": true,
	"cotton": true, "wool": true, "linen": true, "polyester": true, "blend": true,
	// fits
	"slim": true, "regular": true, "loose": true, "oversized": true, "tailored": true,
	"ajustado": true, "holgado": true, "entallado": true,
	// colors
	"azul": true, "rojo": true, "verde": true, "negro": true, "blanco": true, "gris": true,
	"rosa": true, "amarillo": true, "morado": true, "naranja": true, "beige": true, "marrón": true,
}

type idMatch struct {
	pos int
	id  string
}

// ExtractProductIDs returns the product ids mentioned in text as P### in order of appearance.
func ExtractProductIDs(text string) []string {
	var matches []idMatch
	for _, loc := range productIDPattern.FindAllStringSubmatchIndex(text, -1) {
		n, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		matches = append(matches, idMatch{pos: loc[0], id: fmt.Sprintf("P%03d", n)})
	}
	return dedupeMatches(matches)
}

// ExtractClientIDs returns the client ids mentioned in text as C#### in order of appearance.
// "User<n>" and "usuario <n>" are mapped to C<n> when n does not exceed maxUserNumber.
func ExtractClientIDs(text string) []string {
	var matches []idMatch
	for _, loc := range clientIDPattern.FindAllStringSubmatchIndex(text, -1) {
		n, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		matches = append(matches, idMatch{pos: loc[0], id: fmt.Sprintf("C%04d", n)})
	}

	for _, pattern := range userPatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			n, err := strconv.Atoi(text[loc[2]:loc[3]])
			if err != nil || n > maxUserNumber {
				continue
			}
			matches = append(matches, idMatch{pos: loc[0], id: fmt.Sprintf("C%04d", n)})
		}
	}

	return dedupeMatches(matches)
}

// ExtractKeywords returns vocabulary words found in text, deduplicated, in order of appearance.
func ExtractKeywords(text string) []string {
	keywords := make([]string, 0)
	seen := make(map[string]bool)
	for _, w := range Words(NormalizeText(text)) {
		if keywordVocabulary[w] && !seen[w] {
			seen[w] = true
			keywords = append(keywords, w)
		}
	}
	return keywords
}

func dedupeMatches(matches []idMatch) []string {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].pos < matches[j].pos
	})

	ids := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m.id] {
			continue
		}
		seen[m.id] = true
		ids = append(ids, m.id)
	}
	return ids
}
