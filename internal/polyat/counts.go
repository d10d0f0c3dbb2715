package polyat

import (
	"github.com/Clinical-Virology-Unit/polyat/internal/fastq"
)

// Counts accumulates the read tallies of one file. The ordering
// Poly20 <= Poly15 <= Poly10 <= Total always holds because all three
// comparisons use the same longest-run value per read.
type Counts struct {
	Total  int
	Poly10 int
	Poly15 int
	Poly20 int
}

// Add classifies one read by its longest A/T run.
func (c *Counts) Add(run int) {
	c.Total++
	if run >= Threshold10 {
		c.Poly10++
	}
	if run >= Threshold15 {
		c.Poly15++
	}
	if run >= Threshold20 {
		c.Poly20++
	}
}

// CountFile streams every record of the FASTQ file at path and returns its
// counts. Records whose trimmed sequence line is empty are consumed but not
// counted. The file is opened and closed exactly once; read errors are
// returned as-is for the caller to handle.
func CountFile(path string) (Counts, error) {
	r, err := fastq.Open(path)
	if err != nil {
		return Counts{}, err
	}
	defer r.Close()

	var c Counts
	for {
		seq, ok := r.Next()
		if !ok {
			break
		}
		if seq == "" {
			continue
		}
		c.Add(LongestRun(seq))
	}
	if err := r.Err(); err != nil {
		return Counts{}, err
	}
	return c, nil
}
