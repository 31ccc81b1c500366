package classifier

import "strings"

// punctCutset is stripped from the leading and trailing edges of each
// whitespace-split piece.
const punctCutset = `.,!?;:()[]"'`

// Tokenize lowercases the transcript, splits on whitespace, trims edge
// punctuation and drops empties and stop words.
func (c *Classifier) Tokenize(transcript string) []string {
	fields := strings.Fields(strings.ToLower(transcript))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.Trim(f, punctCutset)
		if tok == "" || c.lex.IsStopWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}
