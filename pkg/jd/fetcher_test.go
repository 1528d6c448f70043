package jd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetchFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jd.txt")

	content := "Senior Go Engineer\nBuild distributed systems."
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	got, err := Fetch(path)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got != content {
		t.Errorf("Expected file content, got %q", got)
	}
}

func TestFetchFromEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	err := os.WriteFile(path, []byte("   \n"), 0600)
	if err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err = Fetch(path)
	if err == nil {
		t.Error("Expected error for empty file")
	}
}

func TestFetchFromMissingFile(t *testing.T) {
	_, err := Fetch("/no/such/file.txt")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFetchFromURLStructuredData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected a User-Agent header")
		}
		fmt.Fprint(w, `<html><head>
<script type="application/ld+json">
{"@type":"JobPosting","title":"Platform Engineer","description":"<p>We need someone who knows <b>Kubernetes</b> and Go.</p>"}
</script>
</head><body>unrelated nav chrome</body></html>`)
	}))
	defer server.Close()

	got, err := Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(got, "Kubernetes") {
		t.Errorf("Expected posting description, got %q", got)
	}
	if strings.Contains(got, "unrelated nav chrome") {
		t.Error("Expected structured data to win over page body")
	}
}

func TestFetchFromURLGraphStructuredData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
<script type="application/ld+json">
{"@graph":[{"@type":"JobPosting","description":"Ship reliable backend services in Go."}]}
</script>
</head><body></body></html>`)
	}))
	defer server.Close()

	got, err := Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(got, "reliable backend services") {
		t.Errorf("Expected @graph description, got %q", got)
	}
}

func TestFetchFromURLFallsBackToPageText(t *testing.T) {
	body := strings.Repeat("We are hiring a staff engineer to own our data pipeline. ", 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><script>window.tracker()</script></head><body><h1>Job</h1><p>%s</p></body></html>`, body)
	}))
	defer server.Close()

	got, err := Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(got, "staff engineer") {
		t.Errorf("Expected page text, got %q", got)
	}
	if strings.Contains(got, "window.tracker") {
		t.Error("Expected script content stripped")
	}
}

func TestFetchFromURLNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := Fetch(server.URL)
	if err == nil {
		t.Error("Expected error for non-200 response")
	}
}

func TestFetchFromURLTooShort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>js required</body></html>`)
	}))
	defer server.Close()

	_, err := Fetch(server.URL)
	if err == nil {
		t.Error("Expected error for near-empty page")
	}
}

func TestBoundTruncatesLongContent(t *testing.T) {
	long := strings.Repeat("x", maxContentChars+500)
	got := bound(long)
	if len(got) != maxContentChars {
		t.Errorf("Expected %d chars, got %d", maxContentChars, len(got))
	}
}
