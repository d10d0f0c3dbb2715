package report

// Package report assembles the per-sample summary table and renders it as a
// tab-separated text file and a self-contained HTML page.

import (
	"fmt"
	"io"
	"strings"

	"github.com/Clinical-Virology-Unit/polyat/internal/polyat"
)

// Output file names, relative to the output directory.
const (
	TextFileName = "polyA_counts.txt"
	HTMLFileName = "polyA_counts.html"
)

// Sample is one output row: a sample name and its counts.
type Sample struct {
	Name   string
	Counts polyat.Counts
}

// Column describes one table column. Numeric columns get a minimum-value
// filter in the HTML rendering; text columns get a substring filter.
type Column struct {
	Label   string
	Numeric bool
}

// Columns lists the table columns in output order, shared by the text and
// HTML renderings.
var Columns = []Column{
	{"Sample", false},
	{"Total_Reads", true},
	{"PolyA/T_10+", true},
	{"PolyA/T_15+", true},
	{"PolyA/T_20+", true},
	{"Percent_10+", true},
	{"Percent_15+", true},
	{"Percent_20+", true},
}

// FormatPercent renders count/total as a percentage with exactly two decimal
// digits. A zero total formats as "0.00" rather than dividing by zero.
func FormatPercent(count, total int) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(count*100)/float64(total))
}

// Row returns the cell values for one sample, in column order.
func Row(s Sample) []string {
	c := s.Counts
	return []string{
		s.Name,
		fmt.Sprintf("%d", c.Total),
		fmt.Sprintf("%d", c.Poly10),
		fmt.Sprintf("%d", c.Poly15),
		fmt.Sprintf("%d", c.Poly20),
		FormatPercent(c.Poly10, c.Total),
		FormatPercent(c.Poly15, c.Total),
		FormatPercent(c.Poly20, c.Total),
	}
}

// WriteText writes the tab-separated table: one fixed header line followed
// by one line per sample, in the given order.
func WriteText(w io.Writer, samples []Sample) error {
	labels := make([]string, len(Columns))
	for i, col := range Columns {
		labels[i] = col.Label
	}
	if _, err := fmt.Fprintln(w, strings.Join(labels, "\t")); err != nil {
		return err
	}
	for _, s := range samples {
		if _, err := fmt.Fprintln(w, strings.Join(Row(s), "\t")); err != nil {
			return err
		}
	}
	return nil
}
