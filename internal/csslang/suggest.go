package csslang

// suggestThreshold is the maximum edit distance for a typo suggestion.
const suggestThreshold = 2

// Suggest returns the candidate closest to name within the suggestion
// threshold, or "" when nothing is close enough. Ties go to the
// earliest candidate.
func Suggest(name string, candidates []string) string {
	best := ""
	bestDist := suggestThreshold + 1
	for _, c := range candidates {
		d := levenshtein(name, c)
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// levenshtein computes the edit distance between two strings using a
// single rolling row.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur := i
		diag := prev[0]
		prev[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := min3(prev[j]+1, cur+1, diag+cost)
			diag = prev[j]
			prev[j] = next
			cur = next
		}
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
