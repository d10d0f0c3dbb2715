package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Clinical-Virology-Unit/polyat/internal/config"
	"github.com/Clinical-Virology-Unit/polyat/internal/fastq"
	"github.com/Clinical-Virology-Unit/polyat/internal/polyat"
	"github.com/Clinical-Virology-Unit/polyat/internal/report"

	"github.com/charmbracelet/log"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// timestampWriter prefixes each flushed line with an RFC3339 timestamp.
type timestampWriter struct {
	w   io.Writer
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write buffers bytes until a newline is found; for each full line, write a timestamped
// line to the underlying writer. Partial lines are kept in the buffer.
func (t *timestampWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.buf.Write(p)
	total := n
	for {
		line, err := t.buf.ReadString('\n')
		if err != nil {
			break
		}
		ts := time.Now().Format(time.RFC3339)
		if _, err := t.w.Write([]byte(ts + " " + line)); err != nil {
			return total, err
		}
	}
	return total, nil
}

// terminalWriter wraps an io.Writer and exposes an Fd method so libraries that
// inspect the file descriptor (for TTY detection) can work with wrapped writers.
type terminalWriter struct {
	w  io.Writer
	fd uintptr
}

func (tw *terminalWriter) Write(p []byte) (int, error) { return tw.w.Write(p) }

// Fd exposes the underlying file descriptor (e.g., os.Stderr.Fd()).
func (tw *terminalWriter) Fd() uintptr { return tw.fd }

func main() {
	// CLI flags; -i/-o are shorthands mirroring the long forms
	var inputFlag, outputFlag string
	flag.StringVar(&inputFlag, "input", "", "directory containing .fastq/.fastq.gz/.fq/.fq.gz files")
	flag.StringVar(&inputFlag, "i", "", "shorthand for -input")
	flag.StringVar(&outputFlag, "output", "", "directory where the summary table and HTML report are written")
	flag.StringVar(&outputFlag, "o", "", "shorthand for -output")
	configFlag := flag.String("config", "", "path to config.json (optional)")
	verbose := flag.Bool("verbose", false, "enable verbose (debug) logging")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("polyat", version)
		return
	}

	// load config (optional file); a decode error still yields usable
	// defaults and is reported once the logger exists
	cfg, cfgErr := config.LoadConfig(*configFlag)

	// merge CLI flags into config (flags override config when provided)
	if inputFlag != "" {
		cfg.InputDir = inputFlag
	}
	if outputFlag != "" {
		cfg.OutputDir = outputFlag
	}

	// configure logger output
	var loggerOut io.Writer = os.Stderr
	var logFileHandle *os.File
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			// write to both stderr and file so running interactively still shows logs
			loggerOut = io.MultiWriter(os.Stderr, f)
			logFileHandle = f
			defer func() { _ = logFileHandle.Close() }()
		}
	}
	// If stderr is a terminal-like device, force colors for libraries that honor FORCE_COLOR.
	if fi, err := os.Stderr.Stat(); err == nil {
		if fi.Mode()&os.ModeCharDevice != 0 {
			_ = os.Setenv("FORCE_COLOR", "1")
		}
	}
	// create logger backed by the timestamping writer and expose Fd so charm.log can detect TTY
	tw := &timestampWriter{w: loggerOut}
	termW := &terminalWriter{w: tw, fd: os.Stderr.Fd()}
	logger := log.New(termW)

	// apply log level from flags/config (flags override config)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		switch strings.ToLower(cfg.LogLevel) {
		case "debug":
			logger.SetLevel(log.DebugLevel)
		case "info", "":
			logger.SetLevel(log.InfoLevel)
		case "warn", "warning":
			logger.SetLevel(log.WarnLevel)
		case "error":
			logger.SetLevel(log.ErrorLevel)
		default:
			logger.SetLevel(log.InfoLevel)
			logger.Warn("unknown log_level in config.json, defaulting to info", "provided", cfg.LogLevel)
		}
	}

	if cfgErr != nil {
		logger.Fatal("cannot parse config file", "err", cfgErr)
	}

	logger.Debug("loaded config", "input_dir", cfg.InputDir, "output_dir", cfg.OutputDir, "log_file", cfg.LogFile, "log_level", cfg.LogLevel)
	if cfg.LogFile != "" && logFileHandle == nil {
		logger.Warn("log_file specified but could not be opened; logging to stderr only", "path", cfg.LogFile)
	}

	if cfg.InputDir == "" || cfg.OutputDir == "" {
		flag.Usage()
		logger.Fatal("both an input (-i) and an output (-o) directory are required")
	}

	inputDir, err := filepath.Abs(cfg.InputDir)
	if err != nil {
		logger.Fatal("cannot resolve input path", "path", cfg.InputDir, "err", err)
	}
	fi, err := os.Stat(inputDir)
	if err != nil {
		logger.Fatal("input path does not exist", "path", inputDir)
	}
	if !fi.IsDir() {
		logger.Fatal("input path is not a directory", "path", inputDir)
	}

	outputDir, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		logger.Fatal("cannot resolve output path", "path", cfg.OutputDir, "err", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logger.Fatal("cannot create output directory", "path", outputDir, "err", err)
	}

	files, err := fastq.Discover(inputDir)
	if err != nil {
		logger.Fatal("cannot list input directory", "path", inputDir, "err", err)
	}
	if len(files) == 0 {
		logger.Fatal("no FASTQ/FASTQ.GZ files found", "path", inputDir)
	}

	logger.Info("starting polyat", "files", len(files), "input_dir", inputDir, "output_dir", outputDir)

	// count every file before writing anything, so a failure mid-batch
	// leaves no partial output
	start := time.Now()
	samples := make([]report.Sample, 0, len(files))
	for _, path := range files {
		counts, err := polyat.CountFile(path)
		if err != nil {
			logger.Fatal("failed to read input file", "path", path, "err", err)
		}
		name := fastq.SampleName(path)
		logger.Info("counted sample", "sample", name, "total_reads", counts.Total, "poly10", counts.Poly10, "poly15", counts.Poly15, "poly20", counts.Poly20)
		samples = append(samples, report.Sample{Name: name, Counts: counts})
	}
	logger.Debug("all files counted", "elapsed_ms", time.Since(start).Milliseconds())

	textPath := filepath.Join(outputDir, report.TextFileName)
	htmlPath := filepath.Join(outputDir, report.HTMLFileName)
	if err := writeFile(textPath, func(w io.Writer) error { return report.WriteText(w, samples) }); err != nil {
		logger.Fatal("failed to write summary table", "path", textPath, "err", err)
	}
	if err := writeFile(htmlPath, func(w io.Writer) error { return report.WriteHTML(w, samples) }); err != nil {
		logger.Fatal("failed to write HTML report", "path", htmlPath, "err", err)
	}

	fmt.Printf("[polyat] Summary written to %s\n", textPath)
	fmt.Printf("[polyat] HTML summary written to %s\n", htmlPath)
}

// writeFile creates path and streams render into it, closing the file on all
// paths and reporting the close error of a successful render.
func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
