package fastq

// Package fastq contains minimal helpers to discover and stream FASTQ
// formatted files used by the project. It intentionally keeps parsing simple
// and conservative: four lines are consumed per record and only the sequence
// line is interpreted.

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	gzip "github.com/klauspost/pgzip"
)

// suffixes recognized as FASTQ input, matched case-sensitively.
var suffixes = []string{".fastq", ".fastq.gz", ".fq", ".fq.gz"}

// sampleSuffixes is checked in order when deriving sample names, longest
// first so "x.fastq.gz" becomes "x" and not "x.fastq".
var sampleSuffixes = []string{".fastq.gz", ".fq.gz", ".fastq", ".fq"}

// HasFastqSuffix reports whether filename ends with a recognized FASTQ
// suffix.
func HasFastqSuffix(filename string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(filename, s) {
			return true
		}
	}
	return false
}

// SampleName derives the sample name from the base name of path by stripping
// the longest recognized suffix. A name without a recognized suffix is
// returned unchanged.
func SampleName(path string) string {
	name := filepath.Base(path)
	for _, s := range sampleSuffixes {
		if strings.HasSuffix(name, s) {
			return name[:len(name)-len(s)]
		}
	}
	return name
}

// Discover returns the paths of all recognized FASTQ files directly inside
// dir, in lexicographic filename order. Entries are stat-followed, so a
// symlink to a regular file counts while directories and dangling links are
// skipped.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !HasFastqSuffix(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// Reader streams the sequence line of each 4-line FASTQ record.
type Reader struct {
	scanner *bufio.Scanner
	closers []io.Closer
}

// NewReader returns a Reader over r. The scanner buffer is enlarged so long
// reads (e.g. nanopore) do not overflow the default line limit.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, 4*1024*1024)
	return &Reader{scanner: sc}
}

// Open opens the file at path for record streaming. A trailing .gz selects
// gzip decompression; anything else is read as plain text.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		r := NewReader(gz)
		r.closers = []io.Closer{gz, f}
		return r, nil
	}
	r := NewReader(f)
	r.closers = []io.Closer{f}
	return r, nil
}

// Next consumes one 4-line record and returns its sequence line with
// surrounding whitespace trimmed. It reports false once the header line can
// no longer be read. A stream ending mid-record yields whatever lines exist;
// separator and quality lines are never inspected.
func (r *Reader) Next() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	var seq string
	if r.scanner.Scan() {
		seq = strings.TrimSpace(r.scanner.Text())
	}
	r.scanner.Scan() // separator
	r.scanner.Scan() // quality
	return seq, true
}

// Err returns the first error encountered while scanning, if any. A corrupt
// gzip stream surfaces here when it is detected past the header.
func (r *Reader) Err() error {
	return r.scanner.Err()
}

// Close releases the underlying file and, for compressed input, the
// decompressor.
func (r *Reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
