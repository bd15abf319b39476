package parsing

import "github.com/jonathan/sizing-assistant/internal/types"

// Parse reads a chat message into a ParsedQuery. It never fails: text it cannot make
// sense of yields the general intent with empty entity lists.
func Parse(text string) types.ParsedQuery {
	q := newQueryText(text)
	return types.ParsedQuery{
		Intent:          classify(q),
		ProductIDs:      ExtractProductIDs(text),
		ClientIDs:       ExtractClientIDs(text),
		Keywords:        ExtractKeywords(text),
		HasVisualIntent: hasVisualKeyword(q),
		IsContinuation:  isContinuation(q),
		OriginalQuery:   text,
	}
}
