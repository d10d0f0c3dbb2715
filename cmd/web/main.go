package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Clinical-Virology-Unit/polyat/internal/report"
)

// statusResponseWriter captures status and bytes written for logging
type statusResponseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// loggingMiddleware logs each request with method, path, status, size and duration
func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		if srw.status == 0 {
			srw.status = http.StatusOK
		}
		duration := time.Since(start)
		logger.Printf("%s - %s %s %d %dB %s %q",
			r.RemoteAddr, r.Method, r.URL.RequestURI(), srw.status, srw.written, duration, r.UserAgent())
	})
}

// reportHandler serves the HTML report at the site root.
func reportHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(dir, report.HTMLFileName)
		if _, err := os.Stat(path); err != nil {
			http.Error(w, "report not found; run polyat first", http.StatusNotFound)
			return
		}
		http.ServeFile(w, r, path)
	}
}

// summaryHandler serves the raw tab-separated table for download.
func summaryHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, report.TextFileName)
		if _, err := os.Stat(path); err != nil {
			http.Error(w, "summary not found; run polyat first", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
		http.ServeFile(w, r, path)
	}
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dir := flag.String("dir", ".", "directory containing the polyat output files")
	logFile := flag.String("log", "", "path to write access logs (optional). If empty, logs go to stdout only")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/", reportHandler(*dir))
	mux.HandleFunc("/summary", summaryHandler(*dir))

	// configure logger
	var out io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	logger := log.New(out, "polyat: ", log.LstdFlags)

	// wrap mux with logging middleware
	handler := loggingMiddleware(logger, mux)

	srv := &http.Server{Addr: *addr, Handler: handler, ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second}
	fmt.Printf("serving polyA report at http://%s/ (dir=%s)\n", *addr, *dir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
