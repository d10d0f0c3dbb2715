package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Clinical-Virology-Unit/polyat/internal/fastq"
	"github.com/Clinical-Virology-Unit/polyat/internal/polyat"

	gzip "github.com/klauspost/pgzip"
)

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		count, total int
		want         string
	}{
		{0, 0, "0.00"},
		{1, 3, "33.33"},
		{3, 3, "100.00"},
		{1, 2, "50.00"},
		{2, 3, "66.67"},
		{0, 5, "0.00"},
	}
	for _, c := range cases {
		if got := FormatPercent(c.count, c.total); got != c.want {
			t.Errorf("FormatPercent(%d, %d) = %q, want %q", c.count, c.total, got, c.want)
		}
	}
}

func TestWriteText(t *testing.T) {
	samples := []Sample{
		{Name: "a", Counts: polyat.Counts{Total: 2, Poly10: 1, Poly15: 1, Poly20: 0}},
		{Name: "b", Counts: polyat.Counts{Total: 1, Poly10: 1, Poly15: 0, Poly20: 0}},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, samples); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	want := "Sample\tTotal_Reads\tPolyA/T_10+\tPolyA/T_15+\tPolyA/T_20+\tPercent_10+\tPercent_15+\tPercent_20+\n" +
		"a\t2\t1\t1\t0\t50.00\t50.00\t0.00\n" +
		"b\t1\t1\t0\t0\t100.00\t0.00\t0.00\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteTextZeroReads(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, []Sample{{Name: "empty"}}); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if !strings.Contains(buf.String(), "empty\t0\t0\t0\t0\t0.00\t0.00\t0.00\n") {
		t.Fatalf("zero-read sample should format as 0.00 percentages:\n%s", buf.String())
	}
}

func TestWriteHTML(t *testing.T) {
	samples := []Sample{
		{Name: "s<1>&", Counts: polyat.Counts{Total: 3, Poly10: 1}},
	}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, samples); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	html := buf.String()

	if !strings.Contains(html, "<td>s&lt;1&gt;&amp;</td>") {
		t.Fatalf("sample name not escaped:\n%s", html)
	}
	if strings.Count(html, "data-col=") != len(Columns) {
		t.Fatalf("expected one filter input per column, got %d", strings.Count(html, "data-col="))
	}
	if strings.Count(html, `data-type="number"`) != 7 {
		t.Fatalf("expected 7 numeric filter inputs:\n%s", html)
	}
	if !strings.Contains(html, `data-type="text"`) {
		t.Fatalf("expected a text filter input for the sample column")
	}
	for _, frag := range []string{"<style>", "<script>", "min value", "33.33"} {
		if !strings.Contains(html, frag) {
			t.Fatalf("report missing %q:\n%s", frag, html)
		}
	}
	if strings.Contains(html, "http://") || strings.Contains(html, "https://") {
		t.Fatalf("report must be self-contained with no external resources")
	}
}

// Full pipeline over a real directory: discover, count, render, and compare
// the table byte for byte.
func TestSummaryEndToEnd(t *testing.T) {
	dir := t.TempDir()

	plain := "@r1\n" + strings.Repeat("A", 15) + "\n+\n" + strings.Repeat("I", 15) + "\n" +
		"@r2\nACGT\n+\nIIII\n"
	if err := os.WriteFile(filepath.Join(dir, "a.fastq"), []byte(plain), 0o644); err != nil {
		t.Fatalf("writing a.fastq: %v", err)
	}

	f, err := os.Create(filepath.Join(dir, "b.fastq.gz"))
	if err != nil {
		t.Fatalf("creating b.fastq.gz: %v", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte("@r1\n" + strings.Repeat("T", 10) + "\n+\n" + strings.Repeat("I", 10) + "\n")); err != nil {
		t.Fatalf("writing b.fastq.gz: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing b.fastq.gz: %v", err)
	}

	files, err := fastq.Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}

	var samples []Sample
	for _, path := range files {
		counts, err := polyat.CountFile(path)
		if err != nil {
			t.Fatalf("CountFile(%s) failed: %v", path, err)
		}
		samples = append(samples, Sample{Name: fastq.SampleName(path), Counts: counts})
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, samples); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	want := "Sample\tTotal_Reads\tPolyA/T_10+\tPolyA/T_15+\tPolyA/T_20+\tPercent_10+\tPercent_15+\tPercent_20+\n" +
		"a\t2\t1\t1\t0\t50.00\t50.00\t0.00\n" +
		"b\t1\t1\t0\t0\t100.00\t0.00\t0.00\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%q\nwant:\n%q", buf.String(), want)
	}

	// a rerun over unchanged input must be byte-identical
	var again bytes.Buffer
	var samples2 []Sample
	for _, path := range files {
		counts, err := polyat.CountFile(path)
		if err != nil {
			t.Fatalf("CountFile(%s) failed on rerun: %v", path, err)
		}
		samples2 = append(samples2, Sample{Name: fastq.SampleName(path), Counts: counts})
	}
	if err := WriteText(&again, samples2); err != nil {
		t.Fatalf("WriteText failed on rerun: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Fatalf("rerun output differs from first run")
	}
}
