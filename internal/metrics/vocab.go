package metrics

// clinicalTerms is the closed vocabulary used for information density.
// Matching is exact token equality after lower-casing — "anxious" does not
// match "anxiety".
var clinicalTerms = map[string]struct{}{
	"symptoms":      {},
	"depression":    {},
	"anxiety":       {},
	"mood":          {},
	"sleep":         {},
	"appetite":      {},
	"suicidal":      {},
	"therapy":       {},
	"medication":    {},
	"diagnosis":     {},
	"treatment":     {},
	"psychiatric":   {},
	"mental":        {},
	"stress":        {},
	"trauma":        {},
	"bipolar":       {},
	"panic":         {},
	"obsessive":     {},
	"compulsive":    {},
	"psychotic":     {},
	"hallucination": {},
	"delusion":      {},
	"mania":         {},
	"substance":     {},
	"alcohol":       {},
	"drug":          {},
	"withdrawal":    {},
	"ptsd":          {},
}

// positiveTerms marks words counted as warm or supportive for the emotional
// tendency statistic.
var positiveTerms = map[string]struct{}{
	"thank":      {},
	"understand": {},
	"help":       {},
	"support":    {},
	"appreciate": {},
	"sorry":      {},
	"concerned":  {},
	"care":       {},
	"comfort":    {},
	"safe":       {},
	"better":     {},
	"hope":       {},
}

// negativeTerms marks words counted as cold or judgemental. Disjoint from
// positiveTerms.
var negativeTerms = map[string]struct{}{
	"wrong":     {},
	"bad":       {},
	"fault":     {},
	"blame":     {},
	"stupid":    {},
	"waste":     {},
	"annoying":  {},
	"bother":    {},
	"problem":   {},
	"difficult": {},
	"harsh":     {},
}
