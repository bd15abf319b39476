package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// maxContinuationLength is the longest reply (in runes) still treated as a continuation.
const maxContinuationLength = 10

var affirmativeTokens = map[string]bool{
	"si": true, "sí": true, "ok": true, "okay": true, "vale": true, "perfecto": true,
	"claro": true, "dale": true, "genial": true, "bien": true, "yes": true, "sure": true,
}

var continuationPhrases = map[string]bool{
	"sí claro": true, "si claro": true, "de acuerdo": true, "adelante": true,
	"por favor": true, "hazlo": true, "continúa": true, "continua": true,
}

var searchTriggerWords = []string{
	"buscar", "busca", "busco", "búscame", "buscame",
	"encontrar", "encuentra", "encuentro",
	"ver", "mostrar", "listar", "lista", "listame",
}

var searchTriggerPhrases = []string{
	"qué productos", "que productos", "cuáles productos", "cuales productos",
}

var searchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`productos\s+(con|de|que)\b`),
	regexp.MustCompile(`busca\s+productos`),
	regexp.MustCompile(`lista\s+(de\s+)?productos`),
	regexp.MustCompile(`productos\s+disponibles`),
}

var descriptorWords = []string{
	"ajuste", "material", "slim", "regular", "oversized", "loose", "tailored", "fit", "fabric",
}

var sizeKeywords = []string{
	"talla", "size", "ajuste", "fit", "medida", "qué talla", "recomienda", "recomendación", "recomendacion", "recomendar",
}

var visualKeywords = []string{
	"muestra", "enseña", "imagen", "visual", "cómo se ve", "como se ve", "avatar", "genera",
}

var helpKeywords = []string{"ayuda", "help"}

// intentRule is one step of the classification cascade. Rules are evaluated in order
// and the first match decides the intent.
type intentRule struct {
	name   string
	match  func(q *queryText) bool
	intent types.Intent
}

var intentRules = []intentRule{
	{name: "continuation", match: isContinuation, intent: types.IntentSizeRecommendation},
	{name: "search trigger", match: hasSearchTrigger, intent: types.IntentProductSearch},
	{name: "search pattern", match: matchesSearchPattern, intent: types.IntentProductSearch},
	{name: "descriptor browse", match: isDescriptorBrowse, intent: types.IntentProductSearch},
	{name: "size keyword", match: hasSizeKeyword, intent: types.IntentSizeRecommendation},
	{name: "visual keyword", match: hasVisualKeyword, intent: types.IntentSizeRecommendation},
	{name: "help", match: func(q *queryText) bool { return q.hasSubstring(helpKeywords...) }, intent: types.IntentHelp},
}

// ClassifyIntent returns the intent of text.
func ClassifyIntent(text string) types.Intent {
	return classify(newQueryText(text))
}

func classify(q *queryText) types.Intent {
	for _, rule := range intentRules {
		if rule.match(q) {
			return rule.intent
		}
	}
	return types.IntentGeneral
}

// isContinuation treats a short affirmative reply as "go on with the previous request".
// This is a heuristic and can misfire on unrelated short replies.
func isContinuation(q *queryText) bool {
	text := strings.TrimRight(q.normalized, ".!?¡¿, ")
	text = strings.TrimLeft(text, "¡¿ ")
	if text == "" || utf8.RuneCountInString(text) > maxContinuationLength {
		return false
	}
	return affirmativeTokens[text] || continuationPhrases[text]
}

func hasSearchTrigger(q *queryText) bool {
	return q.hasWord(searchTriggerWords...) || q.hasSubstring(searchTriggerPhrases...)
}

func matchesSearchPattern(q *queryText) bool {
	for _, pattern := range searchPatterns {
		if pattern.MatchString(q.normalized) {
			return true
		}
	}
	return false
}

// isDescriptorBrowse matches fit or fabric talk that names no client.
func isDescriptorBrowse(q *queryText) bool {
	return q.hasWord(descriptorWords...) && len(ExtractClientIDs(q.raw)) == 0
}

func hasSizeKeyword(q *queryText) bool {
	return q.hasSubstring(sizeKeywords...)
}

func hasVisualKeyword(q *queryText) bool {
	return q.hasSubstring(visualKeywords...)
}

// HasVisualIntent reports whether text asks to see something.
func HasVisualIntent(text string) bool {
	return hasVisualKeyword(newQueryText(text))
}

// IsContinuation reports whether text is a short affirmative reply.
func IsContinuation(text string) bool {
	return isContinuation(newQueryText(text))
}
