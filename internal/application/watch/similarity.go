package watch

import (
	"sort"
	"strings"

	"github.com/adrg/strutil/metrics"
)

// ratio is the Ratcliff/Obershelp sequence similarity, the same metric family
// the original screening spreadsheet workflow used.  The metric carries no
// state, so sharing one instance across goroutines is safe.
var ratio = metrics.NewRatcliffObershelp()

// tokenSort rewrites a normalized text with its whitespace tokens in sorted
// order, making the string comparison insensitive to word order
// ("tools acme" scores identically to "acme tools").
func tokenSort(s string) string {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return s
	}
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// editSimilarity returns the token-order-insensitive string similarity of two
// normalized texts, in [0,1].
//
// Guarantees relied on by the reproducibility tests:
//   - symmetric: the arguments are put in canonical (lexicographic) order
//     before comparison, so editSimilarity(a,b) == editSimilarity(b,a);
//   - identical inputs score exactly 1.0;
//   - an empty input on either side scores 0 (valid no-match, not an error).
func editSimilarity(a, b string) float64 {
	a, b = tokenSort(a), tokenSort(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	if a > b {
		a, b = b, a
	}
	return ratio.Compare(a, b)
}

// containment reports the substring-containment bonus: 1.0 when one
// space-stripped normalized text contains the other, else 0.  Stripping
// spaces lets "acme tools" register as contained in "acmetoolsinc", which is
// exactly the squatting pattern the bonus exists to catch.
func containment(a, b string) float64 {
	a = strings.ReplaceAll(a, " ", "")
	b = strings.ReplaceAll(b, " ", "")
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 1.0
	}
	return 0
}

// compositeScore blends edit similarity and containment under the configured
// weights and clamps the result to [0,1].  Identical normalized texts score
// exactly 1.0 regardless of weights.
func compositeScore(a, b string, o Options) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	score := o.EditWeight*editSimilarity(a, b) + o.ContainWeight*containment(a, b)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
