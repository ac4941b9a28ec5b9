// Package pipeline assembles engine inputs from the transaction log and
// orchestrates the anomaly, forecast, weather, and insight components.
package pipeline

import "strings"

// legalSuffixes are corporate forms stripped from the end of merchant names
// so repeat visits group under one key regardless of how the processor
// spelled the legal entity.
var legalSuffixes = map[string]struct{}{
	"llc":  {},
	"inc":  {},
	"ltd":  {},
	"co":   {},
	"corp": {},
	"gmbh": {},
	"plc":  {},
	"sa":   {},
	"srl":  {},
	"bv":   {},
}

// NormalizeMerchant derives the merchantKey for a raw merchant string:
// lowercase, collapsed whitespace, punctuation-insensitive, legal suffixes
// removed. "  Starbucks  Inc." and "STARBUCKS INC" map to the same key.
func NormalizeMerchant(raw string) string {
	lowered := strings.ToLower(raw)

	// Split on whitespace, dropping punctuation from each token edge.
	var tokens []string
	for _, tok := range strings.Fields(lowered) {
		tok = strings.Trim(tok, ".,;:!*#()[]'\"")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	// Strip trailing legal suffixes; "acme holdings ltd llc" ends as
	// "acme holdings".
	for len(tokens) > 1 {
		if _, ok := legalSuffixes[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}

	return strings.Join(tokens, " ")
}
