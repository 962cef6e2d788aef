package harvest

// searchAlphabet is the key space used to flush companies out of the
// name-search endpoint, which has no bulk listing.
const searchAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// SearchTerms returns every single character of the alphabet followed by
// every ordered two-character pair: 36 + 36*36 = 1332 terms, no duplicates,
// in a fixed order so batch numbering is stable run to run.
func SearchTerms() []string {
	n := len(searchAlphabet)
	terms := make([]string, 0, n+n*n)
	for i := 0; i < n; i++ {
		terms = append(terms, string(searchAlphabet[i]))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			terms = append(terms, string(searchAlphabet[i])+string(searchAlphabet[j]))
		}
	}
	return terms
}
