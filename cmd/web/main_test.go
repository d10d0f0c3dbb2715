package main

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Clinical-Virology-Unit/polyat/internal/report"
)

func TestReportHandler(t *testing.T) {
	dir := t.TempDir()
	html := "<html><body>report</body></html>"
	if err := os.WriteFile(filepath.Join(dir, report.HTMLFileName), []byte(html), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	h := reportHandler(dir)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for /, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "report") {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rec.Code)
	}
}

func TestReportHandlerMissingReport(t *testing.T) {
	h := reportHandler(t.TempDir())
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when report is absent, got %d", rec.Code)
	}
}

func TestLoggingMiddlewareCapturesStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	loggingMiddleware(logger, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("middleware altered status: %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "418") {
		t.Fatalf("expected access log to record status 418, got %q", buf.String())
	}
}
