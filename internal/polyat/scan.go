package polyat

// Package polyat measures homopolymer runs of adenine and thymine in
// sequencing reads and aggregates them into per-file threshold counts.

// Poly-A/T thresholds in nucleotides. A read whose longest run reaches a
// threshold increments that threshold's counter; the three checks are
// independent of each other.
const (
	Threshold10 = 10
	Threshold15 = 15
	Threshold20 = 20
)

// LongestRun returns the length of the longest contiguous run of one
// repeated base in seq, restricted to A and T (case-insensitive). Any other
// byte, including ambiguity codes such as N, breaks the current run. Only
// repeats of the same base extend a run, so "ATATAT" scores 1, not 6.
func LongestRun(seq string) int {
	longest, current := 0, 0
	var prev byte
	for i := 0; i < len(seq); i++ {
		b := seq[i]
		if b == 'a' || b == 't' {
			b -= 'a' - 'A'
		}
		if b != 'A' && b != 'T' {
			current, prev = 0, 0
			continue
		}
		if b == prev {
			current++
		} else {
			current, prev = 1, b
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}
